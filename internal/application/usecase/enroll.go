package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"codutopia/internal/domain"
)

type EnrollUsecase struct {
	tx       domain.TxManager
	users    domain.UserGateway
	courses  domain.CourseGateway
	payments domain.PaymentGateway
	log      zerolog.Logger
}

func NewEnrollUsecase(
	tx domain.TxManager,
	users domain.UserGateway,
	courses domain.CourseGateway,
	payments domain.PaymentGateway,
	log zerolog.Logger,
) *EnrollUsecase {
	return &EnrollUsecase{tx: tx, users: users, courses: courses, payments: payments, log: log}
}

// Enroll records the payment, appends the enrollment to the user and
// bumps the course student counter — one transaction for all three.
// Concurrent enrollments on the same course are left to the storage
// engine's isolation.
func (uc *EnrollUsecase) Enroll(ctx context.Context, userID, courseID primitive.ObjectID, method string) (*domain.Payment, error) {
	sess, err := uc.tx.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.End()
	comp := newCompensator(uc.log)

	if _, err := uc.users.GetByID(sess.Context(), userID); err != nil {
		return nil, rollback(ctx, uc.log, sess, comp, err)
	}
	course, err := uc.courses.GetByID(sess.Context(), courseID)
	if err != nil {
		return nil, rollback(ctx, uc.log, sess, comp, err)
	}

	payment, err := uc.payments.Create(sess.Context(), &domain.Payment{
		UserID:      userID,
		CourseID:    courseID,
		Method:      method,
		Amount:      course.DiscountedPrice(),
		OperationID: uuid.NewString(),
	})
	if err != nil {
		return nil, rollback(ctx, uc.log, sess, comp, err)
	}

	if err := uc.users.Enroll(sess.Context(), userID, domain.Enrollment{
		CourseID:  courseID,
		Progress:  0,
		PaymentID: payment.ID,
	}); err != nil {
		return nil, rollback(ctx, uc.log, sess, comp, err)
	}

	if err := uc.courses.IncrementStudents(sess.Context(), courseID); err != nil {
		return nil, rollback(ctx, uc.log, sess, comp, err)
	}

	if err := sess.Commit(); err != nil {
		return nil, err
	}
	return payment, nil
}

func (uc *EnrollUsecase) Payments(ctx context.Context, userID primitive.ObjectID) ([]domain.Payment, error) {
	return uc.payments.ListByUser(ctx, userID)
}
