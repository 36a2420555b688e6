package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"codutopia/internal/domain"
)

func newQuizFixture() (*QuizUsecase, *fakeTx, *fakeQuizzes, *fakeLessons) {
	tx := &fakeTx{}
	quizzes := &fakeQuizzes{}
	lessons := &fakeLessons{}
	uc := NewQuizUsecase(tx, quizzes, lessons, testLogger())
	return uc, tx, quizzes, lessons
}

func TestCreateQuizLinksLesson(t *testing.T) {
	uc, tx, _, lessons := newQuizFixture()

	created, err := uc.Create(context.Background(), CreateQuizInput{
		LessonID: primitive.NewObjectID(),
		Title:    "Проверка знаний",
		Questions: []domain.QuizQuestion{
			{Text: "Что выведет make(chan int)?", Options: []string{"nil", "канал"}, Answer: 1},
		},
	})
	require.NoError(t, err)
	require.False(t, created.ID.IsZero())
	require.Equal(t, 1, lessons.count("SetQuiz"))
	require.Equal(t, 1, tx.sess.commits)
}

func TestCreateSecondQuizSurfacesConflict(t *testing.T) {
	uc, tx, _, lessons := newQuizFixture()

	cause := domain.NewConflict("Lesson already has a quiz")
	lessons.failOn = map[string]error{"SetQuiz": cause}

	_, err := uc.Create(context.Background(), CreateQuizInput{LessonID: primitive.NewObjectID()})
	require.Same(t, cause, err)
	require.Equal(t, 1, tx.sess.aborts)
	require.Zero(t, tx.sess.commits)
}

func TestRemoveQuizClearsLessonReference(t *testing.T) {
	uc, tx, quizzes, lessons := newQuizFixture()

	quizzes.quiz = &domain.Quiz{
		ID:       primitive.NewObjectID(),
		LessonID: primitive.NewObjectID(),
	}

	err := uc.Remove(context.Background(), quizzes.quiz.ID)
	require.NoError(t, err)
	require.Equal(t, 1, quizzes.count("Delete"))
	require.Equal(t, 1, lessons.count("ClearQuiz"))
	require.Equal(t, 1, tx.sess.commits)
}
