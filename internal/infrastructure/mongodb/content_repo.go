package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"codutopia/internal/domain"
)

type ContentRepository struct {
	col *mongo.Collection
}

func NewContentRepository(db *mongo.Database) *ContentRepository {
	return &ContentRepository{col: db.Collection("lesson_contents")}
}

func (r *ContentRepository) Create(ctx context.Context, content *domain.LessonContent) (*domain.LessonContent, error) {
	if content.Title == "" {
		return nil, domain.NewValidation("title")
	}
	if content.LessonID.IsZero() {
		return nil, domain.NewValidation("lessonId")
	}
	if !domain.ValidContentKind(content.Kind) {
		return nil, domain.NewInvalidField("kind", "Unknown content kind: "+content.Kind)
	}

	content.ID = primitive.NewObjectID()
	content.CreatedAt = time.Now()

	if _, err := r.col.InsertOne(ctx, content); err != nil {
		return nil, err
	}
	return content, nil
}

func (r *ContentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.LessonContent, error) {
	var content domain.LessonContent
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&content)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NewNotFound("Content")
		}
		return nil, err
	}
	return &content, nil
}

func (r *ContentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.NewNotFound("Content")
	}
	return nil
}

func (r *ContentRepository) DeleteByLessonIDs(ctx context.Context, lessonIDs []primitive.ObjectID) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"lesson_id": bson.M{"$in": lessonIDs}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
