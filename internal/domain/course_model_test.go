package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCourseRating(t *testing.T) {
	c := &Course{}
	require.Zero(t, c.Rating())

	c.Reviews = []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()}
	c.RatingSum = 9
	require.Equal(t, 4.5, c.Rating())
}

func TestCourseLessonIDsSpansSections(t *testing.T) {
	a, b, c := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()
	course := &Course{Sections: []Section{
		{ID: "s1", Lessons: []primitive.ObjectID{a}},
		{ID: "s2", Lessons: []primitive.ObjectID{b, c}},
		{ID: "s3"},
	}}

	require.Equal(t, []primitive.ObjectID{a, b, c}, course.LessonIDs())
}

func TestCourseSectionLookup(t *testing.T) {
	course := &Course{Sections: []Section{{ID: "s1", Title: "Основы"}}}

	require.NotNil(t, course.Section("s1"))
	require.Nil(t, course.Section("s2"))
}

func TestDiscountedPrice(t *testing.T) {
	course := &Course{Price: 100, Discount: 0.3}
	require.InDelta(t, 70, course.DiscountedPrice(), 1e-9)

	free := &Course{Price: 100, Discount: 1}
	require.Zero(t, free.DiscountedPrice())
}

func TestMetadataEmpty(t *testing.T) {
	require.True(t, CourseMetadata{}.Empty())
	title := "new"
	require.False(t, CourseMetadata{Title: &title}.Empty())

	require.True(t, LessonMetadata{}.Empty())
	d := 30
	require.False(t, LessonMetadata{Duration: &d}.Empty())
}

func TestLessonHasChildren(t *testing.T) {
	require.False(t, (&Lesson{}).HasChildren())
	require.True(t, (&Lesson{Content: []primitive.ObjectID{primitive.NewObjectID()}}).HasChildren())
	q := primitive.NewObjectID()
	require.True(t, (&Lesson{Quiz: &q}).HasChildren())
}

func TestContentKind(t *testing.T) {
	require.True(t, ValidContentKind(ContentText))
	require.True(t, ValidContentKind(ContentVideo))
	require.False(t, ValidContentKind("audio"))

	require.False(t, (&LessonContent{Kind: ContentText}).IsBinary())
	require.True(t, (&LessonContent{Kind: ContentPDF}).IsBinary())
}

func TestUserEnrolledIn(t *testing.T) {
	courseID := primitive.NewObjectID()
	u := &User{Enrolled: []Enrollment{{CourseID: courseID}}}

	require.True(t, u.EnrolledIn(courseID))
	require.False(t, u.EnrolledIn(primitive.NewObjectID()))
}
