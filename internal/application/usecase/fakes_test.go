package usecase

import (
	"context"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"codutopia/internal/domain"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// recorder is embedded in every fake gateway; it remembers the call
// order and lets a test make a particular method fail.
type recorder struct {
	calls  []string
	failOn map[string]error
}

func (r *recorder) hit(name string) error {
	r.calls = append(r.calls, name)
	if r.failOn != nil {
		if err, ok := r.failOn[name]; ok {
			return err
		}
	}
	return nil
}

func (r *recorder) count(name string) int {
	n := 0
	for _, c := range r.calls {
		if c == name {
			n++
		}
	}
	return n
}

type fakeSession struct {
	ctx       context.Context
	commitErr error
	commits   int
	aborts    int
	ended     bool
}

func (s *fakeSession) Context() context.Context { return s.ctx }
func (s *fakeSession) Commit() error            { s.commits++; return s.commitErr }
func (s *fakeSession) Abort() error             { s.aborts++; return nil }
func (s *fakeSession) End()                     { s.ended = true }

type fakeTx struct {
	sess      *fakeSession
	begins    int
	beginErr  error
	commitErr error
}

func (t *fakeTx) Begin(ctx context.Context) (domain.TxSession, error) {
	t.begins++
	if t.beginErr != nil {
		return nil, t.beginErr
	}
	t.sess = &fakeSession{ctx: ctx, commitErr: t.commitErr}
	return t.sess, nil
}

type fakeCourses struct {
	recorder
	course *domain.Course
}

func (f *fakeCourses) Create(ctx context.Context, course *domain.Course) (*domain.Course, error) {
	if err := f.hit("Create"); err != nil {
		return nil, err
	}
	created := *course
	if created.ID.IsZero() {
		created.ID = primitive.NewObjectID()
	}
	return &created, nil
}

func (f *fakeCourses) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Course, error) {
	if err := f.hit("GetByID"); err != nil {
		return nil, err
	}
	if f.course == nil {
		return nil, domain.NewNotFound("Course")
	}
	return f.course, nil
}

func (f *fakeCourses) List(ctx context.Context, search string, limit, offset int) ([]domain.Course, int64, error) {
	if err := f.hit("List"); err != nil {
		return nil, 0, err
	}
	return nil, 0, nil
}

func (f *fakeCourses) UpdateMetadata(ctx context.Context, id primitive.ObjectID, meta domain.CourseMetadata) error {
	return f.hit("UpdateMetadata")
}

func (f *fakeCourses) SetImage(ctx context.Context, id primitive.ObjectID, key string) error {
	return f.hit("SetImage")
}

func (f *fakeCourses) AddSection(ctx context.Context, id primitive.ObjectID, section domain.Section) error {
	return f.hit("AddSection")
}

func (f *fakeCourses) RemoveSection(ctx context.Context, id primitive.ObjectID, sectionID string) error {
	return f.hit("RemoveSection")
}

func (f *fakeCourses) AddLessonToSection(ctx context.Context, courseID primitive.ObjectID, sectionID string, lessonID primitive.ObjectID) error {
	return f.hit("AddLessonToSection")
}

func (f *fakeCourses) RemoveLessonFromSection(ctx context.Context, courseID primitive.ObjectID, sectionID string, lessonID primitive.ObjectID) error {
	return f.hit("RemoveLessonFromSection")
}

func (f *fakeCourses) AddReview(ctx context.Context, courseID, reviewID primitive.ObjectID, rating int) error {
	return f.hit("AddReview")
}

func (f *fakeCourses) RemoveReview(ctx context.Context, courseID, reviewID primitive.ObjectID, rating int) error {
	return f.hit("RemoveReview")
}

func (f *fakeCourses) IncrementStudents(ctx context.Context, courseID primitive.ObjectID) error {
	return f.hit("IncrementStudents")
}

func (f *fakeCourses) Delete(ctx context.Context, id primitive.ObjectID) error {
	return f.hit("Delete")
}

type fakeLessons struct {
	recorder
	lesson  *domain.Lesson
	lessons []domain.Lesson
}

func (f *fakeLessons) Create(ctx context.Context, lesson *domain.Lesson) (*domain.Lesson, error) {
	if err := f.hit("Create"); err != nil {
		return nil, err
	}
	created := *lesson
	if created.ID.IsZero() {
		created.ID = primitive.NewObjectID()
	}
	return &created, nil
}

func (f *fakeLessons) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Lesson, error) {
	if err := f.hit("GetByID"); err != nil {
		return nil, err
	}
	if f.lesson == nil {
		return nil, domain.NewNotFound("Lesson")
	}
	return f.lesson, nil
}

func (f *fakeLessons) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Lesson, error) {
	if err := f.hit("GetByIDs"); err != nil {
		return nil, err
	}
	return f.lessons, nil
}

func (f *fakeLessons) UpdateMetadata(ctx context.Context, id primitive.ObjectID, meta domain.LessonMetadata) error {
	return f.hit("UpdateMetadata")
}

func (f *fakeLessons) AddContent(ctx context.Context, lessonID, contentID primitive.ObjectID) error {
	return f.hit("AddContent")
}

func (f *fakeLessons) RemoveContent(ctx context.Context, lessonID, contentID primitive.ObjectID) error {
	return f.hit("RemoveContent")
}

func (f *fakeLessons) SetQuiz(ctx context.Context, lessonID, quizID primitive.ObjectID) error {
	return f.hit("SetQuiz")
}

func (f *fakeLessons) ClearQuiz(ctx context.Context, lessonID primitive.ObjectID) error {
	return f.hit("ClearQuiz")
}

func (f *fakeLessons) Delete(ctx context.Context, id primitive.ObjectID) error {
	return f.hit("Delete")
}

func (f *fakeLessons) DeleteMany(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	if err := f.hit("DeleteMany"); err != nil {
		return 0, err
	}
	return int64(len(ids)), nil
}

type fakeContents struct {
	recorder
	content *domain.LessonContent
}

func (f *fakeContents) Create(ctx context.Context, content *domain.LessonContent) (*domain.LessonContent, error) {
	if err := f.hit("Create"); err != nil {
		return nil, err
	}
	created := *content
	if created.ID.IsZero() {
		created.ID = primitive.NewObjectID()
	}
	return &created, nil
}

func (f *fakeContents) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.LessonContent, error) {
	if err := f.hit("GetByID"); err != nil {
		return nil, err
	}
	if f.content == nil {
		return nil, domain.NewNotFound("Content")
	}
	return f.content, nil
}

func (f *fakeContents) Delete(ctx context.Context, id primitive.ObjectID) error {
	return f.hit("Delete")
}

func (f *fakeContents) DeleteByLessonIDs(ctx context.Context, lessonIDs []primitive.ObjectID) (int64, error) {
	if err := f.hit("DeleteByLessonIDs"); err != nil {
		return 0, err
	}
	return int64(len(lessonIDs)), nil
}

type fakeReviews struct {
	recorder
	review *domain.Review
}

func (f *fakeReviews) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	if err := f.hit("Create"); err != nil {
		return nil, err
	}
	created := *review
	if created.ID.IsZero() {
		created.ID = primitive.NewObjectID()
	}
	return &created, nil
}

func (f *fakeReviews) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Review, error) {
	if err := f.hit("GetByID"); err != nil {
		return nil, err
	}
	if f.review == nil {
		return nil, domain.NewNotFound("Review")
	}
	return f.review, nil
}

func (f *fakeReviews) Delete(ctx context.Context, id primitive.ObjectID) error {
	return f.hit("Delete")
}

func (f *fakeReviews) DeleteByCourse(ctx context.Context, courseID primitive.ObjectID) (int64, error) {
	if err := f.hit("DeleteByCourse"); err != nil {
		return 0, err
	}
	return 1, nil
}

type fakeQuizzes struct {
	recorder
	quiz *domain.Quiz
}

func (f *fakeQuizzes) Create(ctx context.Context, quiz *domain.Quiz) (*domain.Quiz, error) {
	if err := f.hit("Create"); err != nil {
		return nil, err
	}
	created := *quiz
	if created.ID.IsZero() {
		created.ID = primitive.NewObjectID()
	}
	return &created, nil
}

func (f *fakeQuizzes) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Quiz, error) {
	if err := f.hit("GetByID"); err != nil {
		return nil, err
	}
	if f.quiz == nil {
		return nil, domain.NewNotFound("Quiz")
	}
	return f.quiz, nil
}

func (f *fakeQuizzes) Delete(ctx context.Context, id primitive.ObjectID) error {
	return f.hit("Delete")
}

func (f *fakeQuizzes) DeleteByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	if err := f.hit("DeleteByIDs"); err != nil {
		return 0, err
	}
	return int64(len(ids)), nil
}

type fakeUsers struct {
	recorder
	user *domain.User
}

func (f *fakeUsers) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := f.hit("Create"); err != nil {
		return nil, err
	}
	created := *user
	if created.ID.IsZero() {
		created.ID = primitive.NewObjectID()
	}
	return &created, nil
}

func (f *fakeUsers) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	if err := f.hit("GetByID"); err != nil {
		return nil, err
	}
	if f.user == nil {
		return nil, domain.NewNotFound("User")
	}
	return f.user, nil
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if err := f.hit("GetByEmail"); err != nil {
		return nil, err
	}
	if f.user == nil {
		return nil, domain.NewNotFound("User")
	}
	return f.user, nil
}

func (f *fakeUsers) AddCreatedCourse(ctx context.Context, userID, courseID primitive.ObjectID) error {
	return f.hit("AddCreatedCourse")
}

func (f *fakeUsers) Enroll(ctx context.Context, userID primitive.ObjectID, enrollment domain.Enrollment) error {
	return f.hit("Enroll")
}

func (f *fakeUsers) UpdateProgress(ctx context.Context, userID, courseID primitive.ObjectID, percent int) error {
	return f.hit("UpdateProgress")
}

func (f *fakeUsers) WishlistAdd(ctx context.Context, userID, courseID primitive.ObjectID) error {
	return f.hit("WishlistAdd")
}

func (f *fakeUsers) WishlistRemove(ctx context.Context, userID, courseID primitive.ObjectID) error {
	return f.hit("WishlistRemove")
}

func (f *fakeUsers) PullCourse(ctx context.Context, courseID primitive.ObjectID) (int64, error) {
	if err := f.hit("PullCourse"); err != nil {
		return 0, err
	}
	return 1, nil
}

type fakePayments struct {
	recorder
	payments []domain.Payment
}

func (f *fakePayments) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	if err := f.hit("Create"); err != nil {
		return nil, err
	}
	created := *payment
	if created.ID.IsZero() {
		created.ID = primitive.NewObjectID()
	}
	f.payments = append(f.payments, created)
	return &created, nil
}

func (f *fakePayments) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Payment, error) {
	if err := f.hit("GetByID"); err != nil {
		return nil, err
	}
	return nil, domain.NewNotFound("Payment")
}

func (f *fakePayments) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Payment, error) {
	if err := f.hit("ListByUser"); err != nil {
		return nil, err
	}
	return f.payments, nil
}

// objectRef identifies one bucket object touched by the fake store.
type objectRef struct {
	bucket string
	name   string
}

type fakeStore struct {
	recorder
	objects        map[string][]string // bucket -> object names for List
	puts           []objectRef
	deletes        []objectRef
	createdBuckets []string
	removedBuckets []string
}

func (f *fakeStore) CreateBucket(ctx context.Context, bucket string) error {
	if err := f.hit("CreateBucket"); err != nil {
		return err
	}
	f.createdBuckets = append(f.createdBuckets, bucket)
	return nil
}

func (f *fakeStore) RemoveBucket(ctx context.Context, bucket string) error {
	if err := f.hit("RemoveBucket"); err != nil {
		return err
	}
	f.removedBuckets = append(f.removedBuckets, bucket)
	return nil
}

func (f *fakeStore) Put(ctx context.Context, bucket, name string, data []byte, contentType string) error {
	if err := f.hit("Put"); err != nil {
		return err
	}
	f.puts = append(f.puts, objectRef{bucket: bucket, name: name})
	return nil
}

func (f *fakeStore) Get(ctx context.Context, bucket, name string) ([]byte, error) {
	if err := f.hit("Get"); err != nil {
		return nil, err
	}
	return nil, domain.NewNotFound("Object")
}

func (f *fakeStore) Delete(ctx context.Context, bucket, name string) error {
	if err := f.hit("Delete"); err != nil {
		return err
	}
	f.deletes = append(f.deletes, objectRef{bucket: bucket, name: name})
	return nil
}

func (f *fakeStore) List(ctx context.Context, bucket string) ([]string, error) {
	if err := f.hit("List"); err != nil {
		return nil, err
	}
	return f.objects[bucket], nil
}

func (f *fakeStore) PresignedURL(ctx context.Context, bucket, name string) (string, error) {
	if err := f.hit("PresignedURL"); err != nil {
		return "", err
	}
	return "https://storage.local/" + bucket + "/" + name, nil
}

type fakeHasher struct {
	hashErr error
	compErr error
}

func (f *fakeHasher) Hash(password string) (string, error) {
	if f.hashErr != nil {
		return "", f.hashErr
	}
	return "hashed:" + password, nil
}

func (f *fakeHasher) Compare(hash, password string) error {
	if f.compErr != nil {
		return f.compErr
	}
	if hash != "hashed:"+password {
		return domain.NewInvalidField("credentials", "Invalid email or password")
	}
	return nil
}

type fakeTokens struct {
	generateErr error
	validateErr error
	userID      string
}

func (f *fakeTokens) Generate(userID string) (string, string, error) {
	if f.generateErr != nil {
		return "", "", f.generateErr
	}
	return "access-" + userID, "refresh-" + userID, nil
}

func (f *fakeTokens) ValidateAccessToken(token string) (string, error) {
	if f.validateErr != nil {
		return "", f.validateErr
	}
	return f.userID, nil
}

func (f *fakeTokens) ValidateRefreshToken(token string) (string, error) {
	if f.validateErr != nil {
		return "", f.validateErr
	}
	return f.userID, nil
}

type fakeTokenStore struct {
	recorder
	userID string
}

func (f *fakeTokenStore) SaveRefresh(ctx context.Context, userID, refreshToken string) error {
	if err := f.hit("SaveRefresh"); err != nil {
		return err
	}
	f.userID = userID
	return nil
}

func (f *fakeTokenStore) CheckRefresh(ctx context.Context, refreshToken string) (string, error) {
	if err := f.hit("CheckRefresh"); err != nil {
		return "", err
	}
	return f.userID, nil
}

func (f *fakeTokenStore) DropRefresh(ctx context.Context, refreshToken string) error {
	return f.hit("DropRefresh")
}

type fakeMailer struct {
	sent []string
	err  error
}

func (f *fakeMailer) SendWelcomeEmail(toEmail, name string) error {
	f.sent = append(f.sent, toEmail)
	return f.err
}
