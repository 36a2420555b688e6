package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Course struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title       string               `bson:"title" json:"title"`
	Description string               `bson:"description" json:"description"`
	AuthorID    primitive.ObjectID   `bson:"author_id" json:"authorId"`
	Sections    []Section            `bson:"sections" json:"sections"`
	Price       float64              `bson:"price" json:"price"`
	Discount    float64              `bson:"discount" json:"discount"`
	Reviews     []primitive.ObjectID `bson:"reviews" json:"reviews"`
	RatingSum   int                  `bson:"rating_sum" json:"-"`
	Students    int64                `bson:"students" json:"students"`
	Image       string               `bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt   time.Time            `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updated_at" json:"updatedAt"`
}

type Section struct {
	ID          string               `bson:"id" json:"id"`
	Title       string               `bson:"title" json:"title"`
	Description string               `bson:"description" json:"description"`
	Lessons     []primitive.ObjectID `bson:"lessons" json:"lessons"`
}

// Rating is the average over all attached reviews.
func (c *Course) Rating() float64 {
	if len(c.Reviews) == 0 {
		return 0
	}
	return float64(c.RatingSum) / float64(len(c.Reviews))
}

func (c *Course) Section(id string) *Section {
	for i := range c.Sections {
		if c.Sections[i].ID == id {
			return &c.Sections[i]
		}
	}
	return nil
}

// LessonIDs collects lesson references across every section.
func (c *Course) LessonIDs() []primitive.ObjectID {
	var ids []primitive.ObjectID
	for _, s := range c.Sections {
		ids = append(ids, s.Lessons...)
	}
	return ids
}

// DiscountedPrice is what an enrollment actually costs.
func (c *Course) DiscountedPrice() float64 {
	return c.Price * (1 - c.Discount)
}

// CourseMetadata is the allowlist of fields a metadata update may touch.
// Nil pointers are left untouched in the stored document.
type CourseMetadata struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Discount    *float64 `json:"discount"`
}

func (m CourseMetadata) Empty() bool {
	return m.Title == nil && m.Description == nil && m.Price == nil && m.Discount == nil
}
