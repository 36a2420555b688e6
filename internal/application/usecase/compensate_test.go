package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCompensatorRunsInReverseOrder(t *testing.T) {
	comp := newCompensator(testLogger())

	var order []int
	for i := 1; i <= 3; i++ {
		i := i
		comp.push(func(ctx context.Context) error {
			order = append(order, i)
			return nil
		})
	}
	comp.run(context.Background())

	require.Equal(t, []int{3, 2, 1}, order)
}

func TestCompensatorKeepsGoingWhenStepFails(t *testing.T) {
	comp := newCompensator(testLogger())

	var ran []string
	comp.push(func(ctx context.Context) error {
		ran = append(ran, "first")
		return nil
	})
	comp.push(func(ctx context.Context) error {
		ran = append(ran, "second")
		return errors.New("delete failed")
	})
	comp.run(context.Background())

	// оба шага выполнены, ошибка второго проглочена
	require.Equal(t, []string{"second", "first"}, ran)
}

func TestCompensatorRunIsOneShot(t *testing.T) {
	comp := newCompensator(testLogger())

	runs := 0
	comp.push(func(ctx context.Context) error {
		runs++
		return nil
	})
	comp.run(context.Background())
	comp.run(context.Background())

	require.Equal(t, 1, runs)
}

func TestRollbackReturnsOriginalError(t *testing.T) {
	sess := &fakeSession{ctx: context.Background()}
	comp := newCompensator(testLogger())

	undone := 0
	comp.push(func(ctx context.Context) error {
		undone++
		return nil
	})

	cause := errors.New("insert failed")
	err := rollback(context.Background(), testLogger(), sess, comp, cause)

	require.Same(t, cause, err)
	require.Equal(t, 1, undone)
	require.Equal(t, 1, sess.aborts)
	require.Zero(t, sess.commits)
}

func TestCleanupObjectsPrefixFilter(t *testing.T) {
	lessonA := primitive.NewObjectID()
	lessonB := primitive.NewObjectID()
	other := primitive.NewObjectID()

	store := &fakeStore{objects: map[string][]string{
		"bucket": {
			lessonA.Hex() + "_video.mp4",
			lessonA.Hex() + "_slides.pdf",
			other.Hex() + "_keepme.mp4",
			"cover",
		},
	}}

	err := cleanupObjects(context.Background(), store, "bucket", []primitive.ObjectID{lessonA, lessonB})
	require.NoError(t, err)

	require.Equal(t, []objectRef{
		{bucket: "bucket", name: lessonA.Hex() + "_video.mp4"},
		{bucket: "bucket", name: lessonA.Hex() + "_slides.pdf"},
	}, store.deletes)
}

func TestCleanupObjectsStopsOnDeleteError(t *testing.T) {
	lesson := primitive.NewObjectID()
	boom := errors.New("storage down")

	store := &fakeStore{
		objects: map[string][]string{"bucket": {lesson.Hex() + "_a", lesson.Hex() + "_b"}},
	}
	store.failOn = map[string]error{"Delete": boom}

	err := cleanupObjects(context.Background(), store, "bucket", []primitive.ObjectID{lesson})
	require.ErrorIs(t, err, boom)
}
