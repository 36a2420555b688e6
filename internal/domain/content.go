package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Content kinds. Everything except text lives in the object store.
const (
	ContentText  = "text"
	ContentVideo = "video"
	ContentImage = "image"
	ContentPDF   = "pdf"
)

type LessonContent struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LessonID   primitive.ObjectID `bson:"lesson_id" json:"lessonId"`
	Title      string             `bson:"title" json:"title"`
	Kind       string             `bson:"kind" json:"kind"`
	Text       string             `bson:"text,omitempty" json:"text,omitempty"`
	StorageKey string             `bson:"storage_key,omitempty" json:"-"`
	URL        string             `bson:"-" json:"url,omitempty"` // presigned, filled on read
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
}

func ValidContentKind(kind string) bool {
	switch kind {
	case ContentText, ContentVideo, ContentImage, ContentPDF:
		return true
	}
	return false
}

// IsBinary reports whether the content is backed by a bucket object.
func (c *LessonContent) IsBinary() bool {
	return c.Kind != ContentText
}
