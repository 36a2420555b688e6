package usecase

import (
	"context"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"codutopia/internal/domain"
)

type QuizUsecase struct {
	tx      domain.TxManager
	quizzes domain.QuizGateway
	lessons domain.LessonGateway
	log     zerolog.Logger
}

func NewQuizUsecase(
	tx domain.TxManager,
	quizzes domain.QuizGateway,
	lessons domain.LessonGateway,
	log zerolog.Logger,
) *QuizUsecase {
	return &QuizUsecase{tx: tx, quizzes: quizzes, lessons: lessons, log: log}
}

type CreateQuizInput struct {
	LessonID  primitive.ObjectID    `json:"lessonId"`
	Title     string                `json:"title"`
	Questions []domain.QuizQuestion `json:"questions"`
}

// Create writes the quiz and points the lesson at it; a lesson that
// already has a quiz surfaces a conflict and nothing sticks.
func (uc *QuizUsecase) Create(ctx context.Context, in CreateQuizInput) (*domain.Quiz, error) {
	sess, err := uc.tx.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.End()
	comp := newCompensator(uc.log)

	created, err := uc.quizzes.Create(sess.Context(), &domain.Quiz{
		LessonID:  in.LessonID,
		Title:     in.Title,
		Questions: in.Questions,
	})
	if err != nil {
		return nil, rollback(ctx, uc.log, sess, comp, err)
	}

	if err := uc.lessons.SetQuiz(sess.Context(), in.LessonID, created.ID); err != nil {
		return nil, rollback(ctx, uc.log, sess, comp, err)
	}

	if err := sess.Commit(); err != nil {
		return nil, err
	}
	return created, nil
}

func (uc *QuizUsecase) Get(ctx context.Context, id primitive.ObjectID) (*domain.Quiz, error) {
	return uc.quizzes.GetByID(ctx, id)
}

func (uc *QuizUsecase) Remove(ctx context.Context, id primitive.ObjectID) error {
	sess, err := uc.tx.Begin(ctx)
	if err != nil {
		return err
	}
	defer sess.End()
	comp := newCompensator(uc.log)

	quiz, err := uc.quizzes.GetByID(sess.Context(), id)
	if err != nil {
		return rollback(ctx, uc.log, sess, comp, err)
	}

	if err := uc.quizzes.Delete(sess.Context(), id); err != nil {
		return rollback(ctx, uc.log, sess, comp, err)
	}

	if err := uc.lessons.ClearQuiz(sess.Context(), quiz.LessonID); err != nil {
		return rollback(ctx, uc.log, sess, comp, err)
	}

	return sess.Commit()
}
