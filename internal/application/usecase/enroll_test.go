package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"codutopia/internal/domain"
)

func newEnrollFixture() (*EnrollUsecase, *fakeTx, *fakeUsers, *fakeCourses, *fakePayments) {
	tx := &fakeTx{}
	users := &fakeUsers{user: &domain.User{ID: primitive.NewObjectID()}}
	courses := &fakeCourses{}
	payments := &fakePayments{}
	uc := NewEnrollUsecase(tx, users, courses, payments, testLogger())
	return uc, tx, users, courses, payments
}

func TestEnrollChargesDiscountedPrice(t *testing.T) {
	uc, tx, users, courses, _ := newEnrollFixture()

	courses.course = &domain.Course{
		ID:       primitive.NewObjectID(),
		Price:    200,
		Discount: 0.25,
	}

	payment, err := uc.Enroll(context.Background(), users.user.ID, courses.course.ID, "card")
	require.NoError(t, err)

	require.Equal(t, 150.0, payment.Amount)
	require.NotEmpty(t, payment.OperationID)
	require.Equal(t, 1, users.count("Enroll"))
	require.Equal(t, 1, courses.count("IncrementStudents"))
	require.Equal(t, 1, tx.sess.commits)
}

func TestEnrollDuplicateAbortsBeforeCounter(t *testing.T) {
	uc, tx, users, courses, _ := newEnrollFixture()

	courses.course = &domain.Course{ID: primitive.NewObjectID(), Price: 100}
	cause := domain.NewConflict("You are already enrolled in this course")
	users.failOn = map[string]error{"Enroll": cause}

	_, err := uc.Enroll(context.Background(), users.user.ID, courses.course.ID, "card")
	require.Same(t, cause, err)

	require.Zero(t, courses.count("IncrementStudents"))
	require.Equal(t, 1, tx.sess.aborts)
	require.Zero(t, tx.sess.commits)
}

func TestEnrollUnknownCourseAborts(t *testing.T) {
	uc, tx, users, _, payments := newEnrollFixture()

	_, err := uc.Enroll(context.Background(), users.user.ID, primitive.NewObjectID(), "card")
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.Empty(t, payments.calls)
	require.Equal(t, 1, tx.sess.aborts)
}
