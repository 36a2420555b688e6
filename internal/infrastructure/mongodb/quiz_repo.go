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

type QuizRepository struct {
	col *mongo.Collection
}

func NewQuizRepository(db *mongo.Database) *QuizRepository {
	return &QuizRepository{col: db.Collection("quizzes")}
}

func (r *QuizRepository) Create(ctx context.Context, quiz *domain.Quiz) (*domain.Quiz, error) {
	if quiz.Title == "" {
		return nil, domain.NewValidation("title")
	}
	if quiz.LessonID.IsZero() {
		return nil, domain.NewValidation("lessonId")
	}
	if len(quiz.Questions) == 0 {
		return nil, domain.NewValidation("questions")
	}

	quiz.ID = primitive.NewObjectID()
	quiz.CreatedAt = time.Now()

	if _, err := r.col.InsertOne(ctx, quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (r *QuizRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Quiz, error) {
	var quiz domain.Quiz
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&quiz)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NewNotFound("Quiz")
		}
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.NewNotFound("Quiz")
	}
	return nil
}

func (r *QuizRepository) DeleteByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
