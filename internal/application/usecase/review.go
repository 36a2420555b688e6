package usecase

import (
	"context"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"codutopia/internal/domain"
)

type ReviewUsecase struct {
	tx      domain.TxManager
	reviews domain.ReviewGateway
	courses domain.CourseGateway
	log     zerolog.Logger
}

func NewReviewUsecase(
	tx domain.TxManager,
	reviews domain.ReviewGateway,
	courses domain.CourseGateway,
	log zerolog.Logger,
) *ReviewUsecase {
	return &ReviewUsecase{tx: tx, reviews: reviews, courses: courses, log: log}
}

type CreateReviewInput struct {
	UserID   primitive.ObjectID `json:"userId"`
	CourseID primitive.ObjectID `json:"courseId"`
	Rating   int                `json:"rating"`
	Comment  string             `json:"comment"`
}

// Create writes the review and folds its rating into the course
// aggregate. A duplicate review aborts before the aggregate is touched
// and surfaces the conflict unchanged.
func (uc *ReviewUsecase) Create(ctx context.Context, in CreateReviewInput) (*domain.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, domain.NewInvalidField("rating", "Rating must be between 1 and 5")
	}

	sess, err := uc.tx.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.End()
	comp := newCompensator(uc.log)

	created, err := uc.reviews.Create(sess.Context(), &domain.Review{
		UserID:   in.UserID,
		CourseID: in.CourseID,
		Rating:   in.Rating,
		Comment:  in.Comment,
	})
	if err != nil {
		return nil, rollback(ctx, uc.log, sess, comp, err)
	}

	if err := uc.courses.AddReview(sess.Context(), in.CourseID, created.ID, in.Rating); err != nil {
		return nil, rollback(ctx, uc.log, sess, comp, err)
	}

	if err := sess.Commit(); err != nil {
		return nil, err
	}
	return created, nil
}

func (uc *ReviewUsecase) Remove(ctx context.Context, id primitive.ObjectID) error {
	sess, err := uc.tx.Begin(ctx)
	if err != nil {
		return err
	}
	defer sess.End()
	comp := newCompensator(uc.log)

	review, err := uc.reviews.GetByID(sess.Context(), id)
	if err != nil {
		return rollback(ctx, uc.log, sess, comp, err)
	}

	if err := uc.reviews.Delete(sess.Context(), id); err != nil {
		return rollback(ctx, uc.log, sess, comp, err)
	}

	if err := uc.courses.RemoveReview(sess.Context(), review.CourseID, id, review.Rating); err != nil {
		return rollback(ctx, uc.log, sess, comp, err)
	}

	return sess.Commit()
}
