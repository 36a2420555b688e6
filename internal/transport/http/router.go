package handlers

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"codutopia/internal/domain"
)

func NewRouter(
	authHandler *AuthHandler,
	userHandler *UserHandler,
	courseHandler *CourseHandler,
	lessonHandler *LessonHandler,
	contentHandler *ContentHandler,
	reviewHandler *ReviewHandler,
	limiter *RateLimiter,
	tokens domain.TokenIssuer,
	frontendURL string,
) *gin.Engine {
	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = []string{frontendURL}
	config.AllowCredentials = true
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"}
	r.Use(cors.New(config))

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", limiter.Limit("register", 5, 5*time.Minute), authHandler.Register)
			auth.POST("/login", limiter.Limit("login", 5, 1*time.Minute), authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
			auth.POST("/logout", authHandler.Logout)
		}

		api.GET("/courses", courseHandler.List)
		api.GET("/courses/:id", courseHandler.GetOne)

		course := api.Group("/courses")
		course.Use(AuthMiddleware(tokens))
		{
			course.POST("", courseHandler.Create)
			course.PATCH("/:id", courseHandler.Update)
			course.DELETE("/:id", courseHandler.Delete)
			course.POST("/:id/cover", courseHandler.UploadCover)
			course.POST("/:id/sections", courseHandler.AddSection)
			course.DELETE("/:id/sections/:sectionId", courseHandler.RemoveSection)
			course.POST("/:id/enroll", courseHandler.Enroll)
			course.POST("/:id/contents", contentHandler.Create)
			course.GET("/:id/contents/:contentId", contentHandler.Get)
			course.DELETE("/:id/contents/:contentId", contentHandler.Delete)
		}

		lesson := api.Group("/lessons")
		lesson.Use(AuthMiddleware(tokens))
		{
			lesson.POST("", lessonHandler.Create)
			lesson.GET("/:id", lessonHandler.Get)
			lesson.PATCH("/:id", lessonHandler.Update)
			lesson.DELETE("/:id", lessonHandler.Delete)
		}

		quiz := api.Group("/quizzes")
		quiz.Use(AuthMiddleware(tokens))
		{
			quiz.POST("", lessonHandler.CreateQuiz)
			quiz.GET("/:id", lessonHandler.GetQuiz)
			quiz.DELETE("/:id", lessonHandler.DeleteQuiz)
		}

		review := api.Group("/reviews")
		review.Use(AuthMiddleware(tokens))
		{
			review.POST("", reviewHandler.Create)
			review.DELETE("/:id", reviewHandler.Delete)
		}

		user := api.Group("/users/me")
		user.Use(AuthMiddleware(tokens))
		{
			user.GET("", userHandler.Profile)
			user.PATCH("/progress/:courseId", userHandler.UpdateProgress)
			user.POST("/wishlist/:courseId", userHandler.WishlistAdd)
			user.DELETE("/wishlist/:courseId", userHandler.WishlistRemove)
			user.GET("/payments", userHandler.Payments)
		}
	}

	return r
}
