package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review holds one rating per (user, course) pair; uniqueness is
// enforced by an index on the collection.
type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"userId"`
	CourseID  primitive.ObjectID `bson:"course_id" json:"courseId"`
	Rating    int                `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment" json:"comment"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}
