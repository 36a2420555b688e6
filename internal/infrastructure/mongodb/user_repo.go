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

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection("users")}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user.Name == "" {
		return nil, domain.NewValidation("name")
	}
	if user.Email == "" {
		return nil, domain.NewValidation("email")
	}
	if user.Password == "" {
		return nil, domain.NewValidation("password")
	}

	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	if user.Roles == nil {
		user.Roles = []string{domain.RoleStudent}
	}
	if user.Enrolled == nil {
		user.Enrolled = []domain.Enrollment{}
	}
	if user.Wishlist == nil {
		user.Wishlist = []primitive.ObjectID{}
	}
	if user.CreatedCourses == nil {
		user.CreatedCourses = []primitive.ObjectID{}
	}

	if _, err := r.col.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.NewConflict("User with this email already exists")
		}
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	var user domain.User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NewNotFound("User")
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NewNotFound("User")
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) AddCreatedCourse(ctx context.Context, userID, courseID primitive.ObjectID) error {
	res, err := r.col.UpdateByID(ctx, userID, bson.M{"$addToSet": bson.M{"created_courses": courseID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.NewNotFound("User")
	}
	return nil
}

// Enroll appends the enrollment unless one for the course already
// exists; the $ne guard makes the duplicate case visible as zero
// matches. Caller verifies the user exists beforehand.
func (r *UserRepository) Enroll(ctx context.Context, userID primitive.ObjectID, enrollment domain.Enrollment) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": userID, "enrolled.course_id": bson.M{"$ne": enrollment.CourseID}},
		bson.M{"$push": bson.M{"enrolled": enrollment}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.NewConflict("You are already enrolled in this course")
	}
	return nil
}

func (r *UserRepository) UpdateProgress(ctx context.Context, userID, courseID primitive.ObjectID, percent int) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": userID, "enrolled.course_id": courseID},
		bson.M{"$set": bson.M{"enrolled.$.progress": percent}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.NewNotFound("Enrollment")
	}
	return nil
}

func (r *UserRepository) WishlistAdd(ctx context.Context, userID, courseID primitive.ObjectID) error {
	res, err := r.col.UpdateByID(ctx, userID, bson.M{"$addToSet": bson.M{"wishlist": courseID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.NewNotFound("User")
	}
	return nil
}

func (r *UserRepository) WishlistRemove(ctx context.Context, userID, courseID primitive.ObjectID) error {
	res, err := r.col.UpdateByID(ctx, userID, bson.M{"$pull": bson.M{"wishlist": courseID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.NewNotFound("User")
	}
	return nil
}

func (r *UserRepository) PullCourse(ctx context.Context, courseID primitive.ObjectID) (int64, error) {
	res, err := r.col.UpdateMany(ctx, bson.M{}, bson.M{"$pull": bson.M{
		"enrolled":        bson.M{"course_id": courseID},
		"wishlist":        courseID,
		"created_courses": courseID,
	}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
