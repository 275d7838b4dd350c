package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/elimu-cbc/quiz-service/internal/services"
	"github.com/elimu-cbc/quiz-service/internal/utils"
)

type HandlerManager struct {
	quizHandler        *QuizHandler
	attemptHandler     *AttemptHandler
	performanceHandler *PerformanceHandler
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	validator *utils.Validator,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		quizHandler:        NewQuizHandler(serviceManager.Quiz(), serviceManager.Export(), validator, logger),
		attemptHandler:     NewAttemptHandler(serviceManager.Attempt(), serviceManager.Export(), validator, logger),
		performanceHandler: NewPerformanceHandler(serviceManager.Performance(), logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		quizzes := v1.Group("/quizzes")
		{
			quizzes.POST("/generate", hm.quizHandler.GenerateQuiz)
			quizzes.GET("", hm.quizHandler.ListQuizzes)
			quizzes.GET("/:id", hm.quizHandler.GetQuiz)
			quizzes.DELETE("/:id", hm.quizHandler.DeleteQuiz)
			quizzes.GET("/:id/export", hm.quizHandler.ExportQuiz)
		}

		attempts := v1.Group("/attempts")
		{
			attempts.POST("", hm.attemptHandler.StartAttempt)
			attempts.GET("/:id", hm.attemptHandler.GetAttempt)
			attempts.POST("/:id/responses", hm.attemptHandler.SubmitResponse)
			attempts.GET("/:id/results", hm.attemptHandler.GetResults)
			attempts.GET("/:id/export", hm.attemptHandler.ExportResults)
		}

		students := v1.Group("/students")
		{
			students.GET("/:id/performance", hm.performanceHandler.GetStudentPerformance)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "quiz-service",
		})
	})
}
