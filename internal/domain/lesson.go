package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Lesson struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	CourseID    primitive.ObjectID   `bson:"course_id" json:"courseId"`
	SectionID   string               `bson:"section_id" json:"sectionId"`
	Title       string               `bson:"title" json:"title"`
	Description string               `bson:"description" json:"description"`
	Content     []primitive.ObjectID `bson:"content" json:"content"`
	Quiz        *primitive.ObjectID  `bson:"quiz,omitempty" json:"quiz,omitempty"`
	Duration    int                  `bson:"duration" json:"duration"` // minutes
	CreatedAt   time.Time            `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updated_at" json:"updatedAt"`
}

// HasChildren reports whether deleting this lesson requires any
// dependent cleanup at all.
func (l *Lesson) HasChildren() bool {
	return len(l.Content) > 0 || l.Quiz != nil
}

type LessonMetadata struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Duration    *int    `json:"duration"`
}

func (m LessonMetadata) Empty() bool {
	return m.Title == nil && m.Description == nil && m.Duration == nil
}
