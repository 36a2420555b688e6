package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"codutopia/internal/domain"
)

// CourseUsecase owns every workflow that starts at a course: creation,
// metadata updates, the section hierarchy and full removal with all
// dependent collections and bucket objects.
type CourseUsecase struct {
	tx       domain.TxManager
	courses  domain.CourseGateway
	lessons  domain.LessonGateway
	contents domain.ContentGateway
	reviews  domain.ReviewGateway
	quizzes  domain.QuizGateway
	users    domain.UserGateway
	store    domain.ObjectStore
	log      zerolog.Logger
}

func NewCourseUsecase(
	tx domain.TxManager,
	courses domain.CourseGateway,
	lessons domain.LessonGateway,
	contents domain.ContentGateway,
	reviews domain.ReviewGateway,
	quizzes domain.QuizGateway,
	users domain.UserGateway,
	store domain.ObjectStore,
	log zerolog.Logger,
) *CourseUsecase {
	return &CourseUsecase{
		tx:       tx,
		courses:  courses,
		lessons:  lessons,
		contents: contents,
		reviews:  reviews,
		quizzes:  quizzes,
		users:    users,
		store:    store,
		log:      log,
	}
}

type CreateCourseInput struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	AuthorID    primitive.ObjectID `json:"authorId"`
	Price       float64            `json:"price"`
	Discount    float64            `json:"discount"`
}

// Create persists the course, links it to its author and provisions the
// per-course bucket. Everything rolls back together.
func (uc *CourseUsecase) Create(ctx context.Context, in CreateCourseInput) (*domain.Course, error) {
	sess, err := uc.tx.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.End()
	comp := newCompensator(uc.log)

	created, err := uc.courses.Create(sess.Context(), &domain.Course{
		Title:       in.Title,
		Description: in.Description,
		AuthorID:    in.AuthorID,
		Price:       in.Price,
		Discount:    in.Discount,
	})
	if err != nil {
		return nil, rollback(ctx, uc.log, sess, comp, err)
	}

	if err := uc.users.AddCreatedCourse(sess.Context(), in.AuthorID, created.ID); err != nil {
		return nil, rollback(ctx, uc.log, sess, comp, err)
	}

	if err := uc.store.CreateBucket(ctx, created.ID.Hex()); err != nil {
		return nil, rollback(ctx, uc.log, sess, comp, err)
	}
	comp.push(func(ctx context.Context) error {
		return uc.store.RemoveBucket(ctx, created.ID.Hex())
	})

	if err := sess.Commit(); err != nil {
		comp.run(ctx)
		return nil, err
	}
	return created, nil
}

func (uc *CourseUsecase) Get(ctx context.Context, id primitive.ObjectID) (*domain.Course, error) {
	course, err := uc.courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if course.Image != "" {
		url, err := uc.store.PresignedURL(ctx, course.ID.Hex(), course.Image)
		if err != nil {
			uc.log.Warn().Err(err).Str("course", course.ID.Hex()).Msg("presign cover failed")
		} else {
			course.Image = url
		}
	}
	return course, nil
}

func (uc *CourseUsecase) List(ctx context.Context, search string, limit, offset int) ([]domain.Course, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return uc.courses.List(ctx, search, limit, offset)
}

// UpdateMetadata applies only the allowlisted fields; everything else
// in the payload never reaches the stored document.
func (uc *CourseUsecase) UpdateMetadata(ctx context.Context, id primitive.ObjectID, meta domain.CourseMetadata) error {
	sess, err := uc.tx.Begin(ctx)
	if err != nil {
		return err
	}
	defer sess.End()
	comp := newCompensator(uc.log)

	if err := uc.courses.UpdateMetadata(sess.Context(), id, meta); err != nil {
		return rollback(ctx, uc.log, sess, comp, err)
	}
	return sess.Commit()
}

// UploadCover stores the image under a fixed key and points the course
// at it. The upload is compensated if the database write fails.
func (uc *CourseUsecase) UploadCover(ctx context.Context, id primitive.ObjectID, file []byte, contentType string) error {
	if len(file) == 0 {
		return domain.NewFileRequired()
	}

	sess, err := uc.tx.Begin(ctx)
	if err != nil {
		return err
	}
	defer sess.End()
	comp := newCompensator(uc.log)

	const key = "cover"
	if err := uc.store.Put(ctx, id.Hex(), key, file, contentType); err != nil {
		return rollback(ctx, uc.log, sess, comp, err)
	}
	comp.push(func(ctx context.Context) error {
		return uc.store.Delete(ctx, id.Hex(), key)
	})

	if err := uc.courses.SetImage(sess.Context(), id, key); err != nil {
		return rollback(ctx, uc.log, sess, comp, err)
	}

	if err := sess.Commit(); err != nil {
		comp.run(ctx)
		return err
	}
	return nil
}

type SectionInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (uc *CourseUsecase) AddSection(ctx context.Context, courseID primitive.ObjectID, in SectionInput) (*domain.Section, error) {
	sess, err := uc.tx.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.End()
	comp := newCompensator(uc.log)

	section := domain.Section{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Lessons:     []primitive.ObjectID{},
	}
	if err := uc.courses.AddSection(sess.Context(), courseID, section); err != nil {
		return nil, rollback(ctx, uc.log, sess, comp, err)
	}
	if err := sess.Commit(); err != nil {
		return nil, err
	}
	return &section, nil
}

// RemoveSection pulls the section and, only when it actually referenced
// lessons, removes those lessons with their contents, quizzes and
// bucket objects. An empty section skips the dependent steps entirely.
func (uc *CourseUsecase) RemoveSection(ctx context.Context, courseID primitive.ObjectID, sectionID string) error {
	sess, err := uc.tx.Begin(ctx)
	if err != nil {
		return err
	}
	defer sess.End()
	comp := newCompensator(uc.log)

	course, err := uc.courses.GetByID(sess.Context(), courseID)
	if err != nil {
		return rollback(ctx, uc.log, sess, comp, err)
	}
	section := course.Section(sectionID)
	if section == nil {
		return rollback(ctx, uc.log, sess, comp, domain.NewNotFound("Section"))
	}

	if err := uc.courses.RemoveSection(sess.Context(), courseID, sectionID); err != nil {
		return rollback(ctx, uc.log, sess, comp, err)
	}

	if len(section.Lessons) > 0 {
		if err := uc.removeLessonTree(ctx, sess.Context(), courseID, section.Lessons); err != nil {
			return rollback(ctx, uc.log, sess, comp, err)
		}
	}

	return sess.Commit()
}

// Remove deletes the course document and every dependent resource:
// lessons with contents and quizzes, reviews, references held by users
// and the whole bucket.
func (uc *CourseUsecase) Remove(ctx context.Context, id primitive.ObjectID) error {
	sess, err := uc.tx.Begin(ctx)
	if err != nil {
		return err
	}
	defer sess.End()
	comp := newCompensator(uc.log)

	course, err := uc.courses.GetByID(sess.Context(), id)
	if err != nil {
		return rollback(ctx, uc.log, sess, comp, err)
	}
	if err := uc.courses.Delete(sess.Context(), id); err != nil {
		return rollback(ctx, uc.log, sess, comp, err)
	}

	if lessonIDs := course.LessonIDs(); len(lessonIDs) > 0 {
		if err := uc.removeLessonTree(ctx, sess.Context(), id, lessonIDs); err != nil {
			return rollback(ctx, uc.log, sess, comp, err)
		}
	}

	if len(course.Reviews) > 0 {
		if _, err := uc.reviews.DeleteByCourse(sess.Context(), id); err != nil {
			return rollback(ctx, uc.log, sess, comp, err)
		}
	}

	if _, err := uc.users.PullCourse(sess.Context(), id); err != nil {
		return rollback(ctx, uc.log, sess, comp, err)
	}

	if err := uc.store.RemoveBucket(ctx, id.Hex()); err != nil {
		return rollback(ctx, uc.log, sess, comp, err)
	}

	return sess.Commit()
}

// removeLessonTree deletes the given lessons together with their
// contents, quizzes and bucket objects. txCtx carries the transaction;
// object-store calls run on the plain context.
func (uc *CourseUsecase) removeLessonTree(ctx, txCtx context.Context, courseID primitive.ObjectID, lessonIDs []primitive.ObjectID) error {
	lessons, err := uc.lessons.GetByIDs(txCtx, lessonIDs)
	if err != nil {
		return err
	}

	if _, err := uc.contents.DeleteByLessonIDs(txCtx, lessonIDs); err != nil {
		return err
	}
	if quizIDs := collectQuizIDs(lessons); len(quizIDs) > 0 {
		if _, err := uc.quizzes.DeleteByIDs(txCtx, quizIDs); err != nil {
			return err
		}
	}
	if _, err := uc.lessons.DeleteMany(txCtx, lessonIDs); err != nil {
		return err
	}

	return cleanupObjects(ctx, uc.store, courseID.Hex(), lessonIDs)
}
