package mongodb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"codutopia/internal/domain"
)

type CourseRepository struct {
	col *mongo.Collection
	rdb *redis.Client
}

func NewCourseRepository(db *mongo.Database, rdb *redis.Client) *CourseRepository {
	return &CourseRepository{col: db.Collection("courses"), rdb: rdb}
}

func (r *CourseRepository) Create(ctx context.Context, course *domain.Course) (*domain.Course, error) {
	if course.Title == "" {
		return nil, domain.NewValidation("title")
	}
	if course.AuthorID.IsZero() {
		return nil, domain.NewValidation("authorId")
	}

	course.ID = primitive.NewObjectID()
	course.CreatedAt = time.Now()
	course.UpdatedAt = course.CreatedAt
	if course.Sections == nil {
		course.Sections = []domain.Section{}
	}
	if course.Reviews == nil {
		course.Reviews = []primitive.ObjectID{}
	}

	if _, err := r.col.InsertOne(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (r *CourseRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Course, error) {
	var course domain.Course
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&course)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NewNotFound("Course")
		}
		return nil, err
	}
	return &course, nil
}

// List is cached in redis: списки меняются редко, 10 минут TTL хватает.
func (r *CourseRepository) List(ctx context.Context, search string, limit, offset int) ([]domain.Course, int64, error) {
	key := fmt.Sprintf("courses:list:%s:%d:%d", search, limit, offset)

	if r.rdb != nil {
		if val, err := r.rdb.Get(ctx, key).Result(); err == nil {
			var cached struct {
				Courses []domain.Course
				Total   int64
			}
			if json.Unmarshal([]byte(val), &cached) == nil {
				return cached.Courses, cached.Total, nil
			}
		}
	}

	filter := bson.M{}
	if search != "" {
		filter["title"] = bson.M{"$regex": search, "$options": "i"}
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(int64(offset)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	var courses []domain.Course
	if err := cur.All(ctx, &courses); err != nil {
		return nil, 0, err
	}

	if r.rdb != nil {
		cached := struct {
			Courses []domain.Course
			Total   int64
		}{courses, total}
		if data, err := json.Marshal(cached); err == nil {
			r.rdb.Set(ctx, key, data, 10*time.Minute)
		}
	}

	return courses, total, nil
}

func (r *CourseRepository) UpdateMetadata(ctx context.Context, id primitive.ObjectID, meta domain.CourseMetadata) error {
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
	if meta.Price != nil {
		set["price"] = *meta.Price
	}
	if meta.Discount != nil {
		set["discount"] = *meta.Discount
	}

	res, err := r.col.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.NewNotFound("Course")
	}
	return nil
}

func (r *CourseRepository) SetImage(ctx context.Context, id primitive.ObjectID, key string) error {
	res, err := r.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{"image": key, "updated_at": time.Now()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.NewNotFound("Course")
	}
	return nil
}

func (r *CourseRepository) AddSection(ctx context.Context, id primitive.ObjectID, section domain.Section) error {
	if section.Title == "" {
		return domain.NewValidation("title")
	}
	if section.Lessons == nil {
		section.Lessons = []primitive.ObjectID{}
	}
	res, err := r.col.UpdateByID(ctx, id, bson.M{"$push": bson.M{"sections": section}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.NewNotFound("Course")
	}
	return nil
}

func (r *CourseRepository) RemoveSection(ctx context.Context, id primitive.ObjectID, sectionID string) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "sections.id": sectionID},
		bson.M{"$pull": bson.M{"sections": bson.M{"id": sectionID}}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.NewNotFound("Section")
	}
	return nil
}

func (r *CourseRepository) AddLessonToSection(ctx context.Context, courseID primitive.ObjectID, sectionID string, lessonID primitive.ObjectID) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": courseID, "sections.id": sectionID},
		bson.M{"$push": bson.M{"sections.$.lessons": lessonID}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.NewNotFound("Section")
	}
	return nil
}

func (r *CourseRepository) RemoveLessonFromSection(ctx context.Context, courseID primitive.ObjectID, sectionID string, lessonID primitive.ObjectID) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": courseID, "sections.id": sectionID},
		bson.M{"$pull": bson.M{"sections.$.lessons": lessonID}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.NewNotFound("Section")
	}
	return nil
}

func (r *CourseRepository) AddReview(ctx context.Context, courseID, reviewID primitive.ObjectID, rating int) error {
	res, err := r.col.UpdateByID(ctx, courseID, bson.M{
		"$push": bson.M{"reviews": reviewID},
		"$inc":  bson.M{"rating_sum": rating},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.NewNotFound("Course")
	}
	return nil
}

func (r *CourseRepository) RemoveReview(ctx context.Context, courseID, reviewID primitive.ObjectID, rating int) error {
	res, err := r.col.UpdateByID(ctx, courseID, bson.M{
		"$pull": bson.M{"reviews": reviewID},
		"$inc":  bson.M{"rating_sum": -rating},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.NewNotFound("Course")
	}
	return nil
}

func (r *CourseRepository) IncrementStudents(ctx context.Context, courseID primitive.ObjectID) error {
	res, err := r.col.UpdateByID(ctx, courseID, bson.M{"$inc": bson.M{"students": 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.NewNotFound("Course")
	}
	return nil
}

func (r *CourseRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.NewNotFound("Course")
	}
	// Кеш списков не чистим — TTL 10 минут, этого достаточно.
	return nil
}
