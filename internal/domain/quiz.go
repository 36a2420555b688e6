package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Quiz struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LessonID  primitive.ObjectID `bson:"lesson_id" json:"lessonId"`
	Title     string             `bson:"title" json:"title"`
	Questions []QuizQuestion     `bson:"questions" json:"questions"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

type QuizQuestion struct {
	Text    string   `bson:"text" json:"text"`
	Options []string `bson:"options" json:"options"`
	Answer  int      `bson:"answer" json:"answer"` // index into Options
}
