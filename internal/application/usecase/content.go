package usecase

import (
	"context"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"codutopia/internal/domain"
)

type ContentUsecase struct {
	tx       domain.TxManager
	contents domain.ContentGateway
	lessons  domain.LessonGateway
	store    domain.ObjectStore
	log      zerolog.Logger
}

func NewContentUsecase(
	tx domain.TxManager,
	contents domain.ContentGateway,
	lessons domain.LessonGateway,
	store domain.ObjectStore,
	log zerolog.Logger,
) *ContentUsecase {
	return &ContentUsecase{
		tx:       tx,
		contents: contents,
		lessons:  lessons,
		store:    store,
		log:      log,
	}
}

type CreateContentInput struct {
	LessonID primitive.ObjectID `json:"lessonId"`
	Title    string             `json:"title"`
	Kind     string             `json:"kind"`
	Value    string             `json:"value"`
}

// Create uploads the binary first (the document stores a reference to
// it), then writes the content document and links it to the lesson. A
// failing database step deletes the just-uploaded object before abort.
// The file check happens before any transaction is opened.
func (uc *ContentUsecase) Create(ctx context.Context, courseID primitive.ObjectID, in CreateContentInput, file []byte, contentType string) (*domain.LessonContent, error) {
	if in.Kind != domain.ContentText && len(file) == 0 {
		return nil, domain.NewFileRequired()
	}

	sess, err := uc.tx.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.End()
	comp := newCompensator(uc.log)

	content := &domain.LessonContent{
		LessonID: in.LessonID,
		Title:    in.Title,
		Kind:     in.Kind,
	}

	if in.Kind != domain.ContentText {
		key := in.LessonID.Hex() + "_" + in.Value
		if err := uc.store.Put(ctx, courseID.Hex(), key, file, contentType); err != nil {
			return nil, rollback(ctx, uc.log, sess, comp, err)
		}
		comp.push(func(ctx context.Context) error {
			return uc.store.Delete(ctx, courseID.Hex(), key)
		})
		content.StorageKey = key
	} else {
		content.Text = in.Value
	}

	created, err := uc.contents.Create(sess.Context(), content)
	if err != nil {
		return nil, rollback(ctx, uc.log, sess, comp, err)
	}

	if err := uc.lessons.AddContent(sess.Context(), in.LessonID, created.ID); err != nil {
		return nil, rollback(ctx, uc.log, sess, comp, err)
	}

	if err := sess.Commit(); err != nil {
		comp.run(ctx)
		return nil, err
	}
	return created, nil
}

// Get attaches a presigned URL for binary content.
func (uc *ContentUsecase) Get(ctx context.Context, courseID, id primitive.ObjectID) (*domain.LessonContent, error) {
	content, err := uc.contents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if content.IsBinary() {
		url, err := uc.store.PresignedURL(ctx, courseID.Hex(), content.StorageKey)
		if err != nil {
			return nil, err
		}
		content.URL = url
	}
	return content, nil
}

func (uc *ContentUsecase) Remove(ctx context.Context, courseID, id primitive.ObjectID) error {
	sess, err := uc.tx.Begin(ctx)
	if err != nil {
		return err
	}
	defer sess.End()
	comp := newCompensator(uc.log)

	content, err := uc.contents.GetByID(sess.Context(), id)
	if err != nil {
		return rollback(ctx, uc.log, sess, comp, err)
	}

	if err := uc.contents.Delete(sess.Context(), id); err != nil {
		return rollback(ctx, uc.log, sess, comp, err)
	}

	if err := uc.lessons.RemoveContent(sess.Context(), content.LessonID, id); err != nil {
		return rollback(ctx, uc.log, sess, comp, err)
	}

	if content.IsBinary() {
		if err := uc.store.Delete(ctx, courseID.Hex(), content.StorageKey); err != nil {
			return rollback(ctx, uc.log, sess, comp, err)
		}
	}

	return sess.Commit()
}
