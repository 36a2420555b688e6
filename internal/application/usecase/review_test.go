package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"codutopia/internal/domain"
)

func newReviewFixture() (*ReviewUsecase, *fakeTx, *fakeReviews, *fakeCourses) {
	tx := &fakeTx{}
	reviews := &fakeReviews{}
	courses := &fakeCourses{}
	uc := NewReviewUsecase(tx, reviews, courses, testLogger())
	return uc, tx, reviews, courses
}

func TestCreateReviewRejectsRatingOutOfRange(t *testing.T) {
	uc, tx, _, _ := newReviewFixture()

	for _, rating := range []int{0, 6, -1} {
		_, err := uc.Create(context.Background(), CreateReviewInput{
			UserID:   primitive.NewObjectID(),
			CourseID: primitive.NewObjectID(),
			Rating:   rating,
		})
		require.ErrorIs(t, err, domain.ErrValidation)
	}
	require.Zero(t, tx.begins)
}

func TestCreateReviewFoldsRatingIntoCourse(t *testing.T) {
	uc, tx, _, courses := newReviewFixture()

	created, err := uc.Create(context.Background(), CreateReviewInput{
		UserID:   primitive.NewObjectID(),
		CourseID: primitive.NewObjectID(),
		Rating:   5,
		Comment:  "Отличный курс",
	})
	require.NoError(t, err)
	require.False(t, created.ID.IsZero())
	require.Equal(t, 1, courses.count("AddReview"))
	require.Equal(t, 1, tx.sess.commits)
}

func TestCreateDuplicateReviewSurfacesConflictUnchanged(t *testing.T) {
	uc, tx, reviews, courses := newReviewFixture()

	cause := domain.NewConflict("Review already exists")
	reviews.failOn = map[string]error{"Create": cause}

	_, err := uc.Create(context.Background(), CreateReviewInput{
		UserID:   primitive.NewObjectID(),
		CourseID: primitive.NewObjectID(),
		Rating:   4,
	})
	require.Same(t, cause, err)

	// агрегат курса не тронут
	require.Zero(t, courses.count("AddReview"))
	require.Equal(t, 1, tx.sess.aborts)
	require.Zero(t, tx.sess.commits)
}

func TestRemoveReviewFoldsRatingOut(t *testing.T) {
	uc, tx, reviews, courses := newReviewFixture()

	reviews.review = &domain.Review{
		ID:       primitive.NewObjectID(),
		CourseID: primitive.NewObjectID(),
		Rating:   3,
	}

	err := uc.Remove(context.Background(), reviews.review.ID)
	require.NoError(t, err)
	require.Equal(t, 1, reviews.count("Delete"))
	require.Equal(t, 1, courses.count("RemoveReview"))
	require.Equal(t, 1, tx.sess.commits)
}

func TestRemoveMissingReviewAborts(t *testing.T) {
	uc, tx, reviews, courses := newReviewFixture()

	err := uc.Remove(context.Background(), primitive.NewObjectID())
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.Zero(t, reviews.count("Delete"))
	require.Empty(t, courses.calls)
	require.Equal(t, 1, tx.sess.aborts)
}
