package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TxManager opens one database transaction per workflow invocation.
// Gateways participate by receiving the session-bound context.
type TxManager interface {
	Begin(ctx context.Context) (TxSession, error)
}

// TxSession is owned by exactly one workflow invocation and must not
// be reused after Commit or Abort. Abort is safe to call even when no
// write happened yet.
type TxSession interface {
	// Context returns the session-bound context; every gateway call
	// that must be atomic with the others receives it.
	Context() context.Context
	Commit() error
	Abort() error
	End()
}

// CourseGateway touches only the courses collection.
type CourseGateway interface {
	Create(ctx context.Context, course *Course) (*Course, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*Course, error)
	List(ctx context.Context, search string, limit, offset int) ([]Course, int64, error)
	UpdateMetadata(ctx context.Context, id primitive.ObjectID, meta CourseMetadata) error
	SetImage(ctx context.Context, id primitive.ObjectID, key string) error
	AddSection(ctx context.Context, id primitive.ObjectID, section Section) error
	RemoveSection(ctx context.Context, id primitive.ObjectID, sectionID string) error
	AddLessonToSection(ctx context.Context, courseID primitive.ObjectID, sectionID string, lessonID primitive.ObjectID) error
	RemoveLessonFromSection(ctx context.Context, courseID primitive.ObjectID, sectionID string, lessonID primitive.ObjectID) error
	AddReview(ctx context.Context, courseID, reviewID primitive.ObjectID, rating int) error
	RemoveReview(ctx context.Context, courseID, reviewID primitive.ObjectID, rating int) error
	IncrementStudents(ctx context.Context, courseID primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type LessonGateway interface {
	Create(ctx context.Context, lesson *Lesson) (*Lesson, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*Lesson, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]Lesson, error)
	UpdateMetadata(ctx context.Context, id primitive.ObjectID, meta LessonMetadata) error
	AddContent(ctx context.Context, lessonID, contentID primitive.ObjectID) error
	RemoveContent(ctx context.Context, lessonID, contentID primitive.ObjectID) error
	SetQuiz(ctx context.Context, lessonID, quizID primitive.ObjectID) error
	ClearQuiz(ctx context.Context, lessonID primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteMany(ctx context.Context, ids []primitive.ObjectID) (int64, error)
}

type ContentGateway interface {
	Create(ctx context.Context, content *LessonContent) (*LessonContent, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*LessonContent, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByLessonIDs(ctx context.Context, lessonIDs []primitive.ObjectID) (int64, error)
}

type ReviewGateway interface {
	Create(ctx context.Context, review *Review) (*Review, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*Review, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByCourse(ctx context.Context, courseID primitive.ObjectID) (int64, error)
}

type UserGateway interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	AddCreatedCourse(ctx context.Context, userID, courseID primitive.ObjectID) error
	Enroll(ctx context.Context, userID primitive.ObjectID, enrollment Enrollment) error
	UpdateProgress(ctx context.Context, userID, courseID primitive.ObjectID, percent int) error
	WishlistAdd(ctx context.Context, userID, courseID primitive.ObjectID) error
	WishlistRemove(ctx context.Context, userID, courseID primitive.ObjectID) error
	// PullCourse removes every reference to the course (enrollments,
	// wishlists, created lists) across all users. Zero matches is fine.
	PullCourse(ctx context.Context, courseID primitive.ObjectID) (int64, error)
}

type PaymentGateway interface {
	Create(ctx context.Context, payment *Payment) (*Payment, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*Payment, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]Payment, error)
}

type QuizGateway interface {
	Create(ctx context.Context, quiz *Quiz) (*Quiz, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*Quiz, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error)
}

// ObjectStore is the per-course bucket space for binary assets.
// It has no transactional relationship with the database; Delete on a
// missing object succeeds.
type ObjectStore interface {
	CreateBucket(ctx context.Context, bucket string) error
	RemoveBucket(ctx context.Context, bucket string) error
	Put(ctx context.Context, bucket, name string, data []byte, contentType string) error
	Get(ctx context.Context, bucket, name string) ([]byte, error)
	Delete(ctx context.Context, bucket, name string) error
	List(ctx context.Context, bucket string) ([]string, error)
	PresignedURL(ctx context.Context, bucket, name string) (string, error)
}

// Hasher hides the password hashing scheme from the workflow layer.
type Hasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer signs and validates the access/refresh token pair.
type TokenIssuer interface {
	Generate(userID string) (access string, refresh string, err error)
	ValidateAccessToken(token string) (string, error)
	ValidateRefreshToken(token string) (string, error)
}

// TokenStore keeps issued refresh tokens until logout or expiry.
type TokenStore interface {
	SaveRefresh(ctx context.Context, userID, refreshToken string) error
	CheckRefresh(ctx context.Context, refreshToken string) (string, error)
	DropRefresh(ctx context.Context, refreshToken string) error
}

type Mailer interface {
	SendWelcomeEmail(toEmail, name string) error
}
