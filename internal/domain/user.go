package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleStudent = "student"
	RoleAuthor  = "author"
	RoleAdmin   = "admin"
)

type User struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name           string               `bson:"name" json:"name"`
	Email          string               `bson:"email" json:"email"`
	Password       string               `bson:"password" json:"-"`
	Roles          []string             `bson:"roles" json:"roles"`
	Enrolled       []Enrollment         `bson:"enrolled" json:"enrolled"`
	Wishlist       []primitive.ObjectID `bson:"wishlist" json:"wishlist"`
	CreatedCourses []primitive.ObjectID `bson:"created_courses" json:"createdCourses"`
	CreatedAt      time.Time            `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time            `bson:"updated_at" json:"updatedAt"`
}

// Enrollment ties a user to a purchased course.
type Enrollment struct {
	CourseID  primitive.ObjectID `bson:"course_id" json:"courseId"`
	Progress  int                `bson:"progress" json:"progress"` // percent
	PaymentID primitive.ObjectID `bson:"payment_id" json:"paymentId"`
}

func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (u *User) EnrolledIn(courseID primitive.ObjectID) bool {
	for _, e := range u.Enrolled {
		if e.CourseID == courseID {
			return true
		}
	}
	return false
}
