package usecase

import (
	"context"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"codutopia/internal/domain"
)

type LessonUsecase struct {
	tx       domain.TxManager
	lessons  domain.LessonGateway
	courses  domain.CourseGateway
	contents domain.ContentGateway
	quizzes  domain.QuizGateway
	store    domain.ObjectStore
	log      zerolog.Logger
}

func NewLessonUsecase(
	tx domain.TxManager,
	lessons domain.LessonGateway,
	courses domain.CourseGateway,
	contents domain.ContentGateway,
	quizzes domain.QuizGateway,
	store domain.ObjectStore,
	log zerolog.Logger,
) *LessonUsecase {
	return &LessonUsecase{
		tx:       tx,
		lessons:  lessons,
		courses:  courses,
		contents: contents,
		quizzes:  quizzes,
		store:    store,
		log:      log,
	}
}

type CreateLessonInput struct {
	CourseID    primitive.ObjectID `json:"courseId"`
	SectionID   string             `json:"sectionId"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Duration    int                `json:"duration"`
}

// Create persists the lesson and appends its id to the owning section
// in the same transaction.
func (uc *LessonUsecase) Create(ctx context.Context, in CreateLessonInput) (*domain.Lesson, error) {
	sess, err := uc.tx.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.End()
	comp := newCompensator(uc.log)

	created, err := uc.lessons.Create(sess.Context(), &domain.Lesson{
		CourseID:    in.CourseID,
		SectionID:   in.SectionID,
		Title:       in.Title,
		Description: in.Description,
		Duration:    in.Duration,
	})
	if err != nil {
		return nil, rollback(ctx, uc.log, sess, comp, err)
	}

	if err := uc.courses.AddLessonToSection(sess.Context(), in.CourseID, in.SectionID, created.ID); err != nil {
		return nil, rollback(ctx, uc.log, sess, comp, err)
	}

	if err := sess.Commit(); err != nil {
		return nil, err
	}
	return created, nil
}

func (uc *LessonUsecase) Get(ctx context.Context, id primitive.ObjectID) (*domain.Lesson, error) {
	return uc.lessons.GetByID(ctx, id)
}

func (uc *LessonUsecase) UpdateMetadata(ctx context.Context, id primitive.ObjectID, meta domain.LessonMetadata) error {
	sess, err := uc.tx.Begin(ctx)
	if err != nil {
		return err
	}
	defer sess.End()
	comp := newCompensator(uc.log)

	if err := uc.lessons.UpdateMetadata(sess.Context(), id, meta); err != nil {
		return rollback(ctx, uc.log, sess, comp, err)
	}
	return sess.Commit()
}

// Remove deletes the lesson and unlinks it from its section. Dependent
// cleanup runs only for children the lesson actually had: no content
// ids means the content gateway and the object store are never called,
// no quiz reference means the quiz gateway is never called.
func (uc *LessonUsecase) Remove(ctx context.Context, id primitive.ObjectID) error {
	sess, err := uc.tx.Begin(ctx)
	if err != nil {
		return err
	}
	defer sess.End()
	comp := newCompensator(uc.log)

	lesson, err := uc.lessons.GetByID(sess.Context(), id)
	if err != nil {
		return rollback(ctx, uc.log, sess, comp, err)
	}

	if err := uc.lessons.Delete(sess.Context(), id); err != nil {
		return rollback(ctx, uc.log, sess, comp, err)
	}

	if err := uc.courses.RemoveLessonFromSection(sess.Context(), lesson.CourseID, lesson.SectionID, id); err != nil {
		return rollback(ctx, uc.log, sess, comp, err)
	}

	if len(lesson.Content) > 0 {
		if _, err := uc.contents.DeleteByLessonIDs(sess.Context(), []primitive.ObjectID{id}); err != nil {
			return rollback(ctx, uc.log, sess, comp, err)
		}
		if err := cleanupObjects(ctx, uc.store, lesson.CourseID.Hex(), []primitive.ObjectID{id}); err != nil {
			return rollback(ctx, uc.log, sess, comp, err)
		}
	}

	if lesson.Quiz != nil {
		if err := uc.quizzes.Delete(sess.Context(), *lesson.Quiz); err != nil {
			return rollback(ctx, uc.log, sess, comp, err)
		}
	}

	return sess.Commit()
}
