package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"codutopia/config"
	"codutopia/internal/application/usecase"
	"codutopia/internal/infrastructure/cache"
	"codutopia/internal/infrastructure/email"
	"codutopia/internal/infrastructure/mongodb"
	"codutopia/internal/infrastructure/security"
	"codutopia/internal/infrastructure/storage"
	handlers "codutopia/internal/transport/http"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// 1. Конфиг
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	ctx := context.Background()

	// 2. MongoDB
	client, db, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("Failed to create indexes")
	}
	log.Info().Str("db", cfg.MongoDB).Msg("Connected to MongoDB")

	// 3. Redis
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	log.Info().Str("addr", cfg.RedisAddr).Msg("Connected to Redis")

	// 4. MinIO
	store, err := storage.NewMinioStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MinIO")
	}

	// 5. Инфраструктура
	txManager := mongodb.NewTxManager(client)
	courseRepo := mongodb.NewCourseRepository(db, rdb)
	lessonRepo := mongodb.NewLessonRepository(db)
	contentRepo := mongodb.NewContentRepository(db)
	reviewRepo := mongodb.NewReviewRepository(db)
	quizRepo := mongodb.NewQuizRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	paymentRepo := mongodb.NewPaymentRepository(db)

	hasher := security.NewPasswordHasher()
	tokens := security.NewTokenManager(cfg.AccessSecret, cfg.RefreshSecret)
	tokenCache := cache.NewTokenCache(rdb)
	mailer := email.NewEmailSender(cfg.SendGridKey, cfg.SMTPEmail, cfg.FrontendURL)

	// 6. Usecases
	courseUC := usecase.NewCourseUsecase(txManager, courseRepo, lessonRepo, contentRepo, reviewRepo, quizRepo, userRepo, store, log)
	lessonUC := usecase.NewLessonUsecase(txManager, lessonRepo, courseRepo, contentRepo, quizRepo, store, log)
	contentUC := usecase.NewContentUsecase(txManager, contentRepo, lessonRepo, store, log)
	reviewUC := usecase.NewReviewUsecase(txManager, reviewRepo, courseRepo, log)
	quizUC := usecase.NewQuizUsecase(txManager, quizRepo, lessonRepo, log)
	userUC := usecase.NewUserUsecase(txManager, userRepo, hasher, tokens, tokenCache, mailer, log)
	enrollUC := usecase.NewEnrollUsecase(txManager, userRepo, courseRepo, paymentRepo, log)

	// 7. Роутер
	router := handlers.NewRouter(
		handlers.NewAuthHandler(userUC),
		handlers.NewUserHandler(userUC, enrollUC),
		handlers.NewCourseHandler(courseUC, enrollUC),
		handlers.NewLessonHandler(lessonUC, quizUC),
		handlers.NewContentHandler(contentUC),
		handlers.NewReviewHandler(reviewUC),
		handlers.NewRateLimiter(rdb),
		tokens,
		cfg.FrontendURL,
	)

	srv := &http.Server{
		Addr:    cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("Server running")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to run server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	log.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Forced shutdown")
	}
}
