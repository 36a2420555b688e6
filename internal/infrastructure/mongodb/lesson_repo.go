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

type LessonRepository struct {
	col *mongo.Collection
}

func NewLessonRepository(db *mongo.Database) *LessonRepository {
	return &LessonRepository{col: db.Collection("lessons")}
}

func (r *LessonRepository) Create(ctx context.Context, lesson *domain.Lesson) (*domain.Lesson, error) {
	if lesson.Title == "" {
		return nil, domain.NewValidation("title")
	}
	if lesson.CourseID.IsZero() {
		return nil, domain.NewValidation("courseId")
	}
	if lesson.SectionID == "" {
		return nil, domain.NewValidation("sectionId")
	}

	lesson.ID = primitive.NewObjectID()
	lesson.CreatedAt = time.Now()
	lesson.UpdatedAt = lesson.CreatedAt
	if lesson.Content == nil {
		lesson.Content = []primitive.ObjectID{}
	}

	if _, err := r.col.InsertOne(ctx, lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (r *LessonRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Lesson, error) {
	var lesson domain.Lesson
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&lesson)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NewNotFound("Lesson")
		}
		return nil, err
	}
	return &lesson, nil
}

func (r *LessonRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Lesson, error) {
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var lessons []domain.Lesson
	if err := cur.All(ctx, &lessons); err != nil {
		return nil, err
	}
	return lessons, nil
}

func (r *LessonRepository) UpdateMetadata(ctx context.Context, id primitive.ObjectID, meta domain.LessonMetadata) error {
	if meta.Empty() {
		return domain.NewInvalidField("metadata", "No updatable fields provided")
	}

	set := bson.M{"updated_at": time.Now()}
	if meta.Title != nil {
		set["title"] = *meta.Title
	}
	if meta.Description != nil {
		set["description"] = *meta.Description
	}
	if meta.Duration != nil {
		set["duration"] = *meta.Duration
	}

	res, err := r.col.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.NewNotFound("Lesson")
	}
	return nil
}

func (r *LessonRepository) AddContent(ctx context.Context, lessonID, contentID primitive.ObjectID) error {
	res, err := r.col.UpdateByID(ctx, lessonID, bson.M{"$push": bson.M{"content": contentID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.NewNotFound("Lesson")
	}
	return nil
}

func (r *LessonRepository) RemoveContent(ctx context.Context, lessonID, contentID primitive.ObjectID) error {
	res, err := r.col.UpdateByID(ctx, lessonID, bson.M{"$pull": bson.M{"content": contentID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.NewNotFound("Lesson")
	}
	return nil
}

func (r *LessonRepository) SetQuiz(ctx context.Context, lessonID, quizID primitive.ObjectID) error {
	// Только один квиз на урок
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": lessonID, "quiz": nil},
		bson.M{"$set": bson.M{"quiz": quizID}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		exists, countErr := r.col.CountDocuments(ctx, bson.M{"_id": lessonID})
		if countErr == nil && exists > 0 {
			return domain.NewConflict("Lesson already has a quiz")
		}
		return domain.NewNotFound("Lesson")
	}
	return nil
}

func (r *LessonRepository) ClearQuiz(ctx context.Context, lessonID primitive.ObjectID) error {
	res, err := r.col.UpdateByID(ctx, lessonID, bson.M{"$unset": bson.M{"quiz": ""}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.NewNotFound("Lesson")
	}
	return nil
}

func (r *LessonRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.NewNotFound("Lesson")
	}
	return nil
}

func (r *LessonRepository) DeleteMany(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
