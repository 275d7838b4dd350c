package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/elimu-cbc/quiz-service/internal/services"
	"github.com/elimu-cbc/quiz-service/internal/utils"
)

type PerformanceHandler struct {
	BaseHandler
	performanceService services.PerformanceService
}

func NewPerformanceHandler(performanceService services.PerformanceService, logger utils.Logger) *PerformanceHandler {
	return &PerformanceHandler{
		BaseHandler:        NewBaseHandler(logger),
		performanceService: performanceService,
	}
}

// GetStudentPerformance summarizes a student's archived attempts
// @Summary Get student performance
// @Tags students
// @Produce json
// @Param id path string true "Student ID"
// @Param learning_area query string false "Learning area"
// @Success 200 {object} services.StudentPerformanceResponse
// @Failure 404 {object} ErrorResponse
// @Router /students/{id}/performance [get]
func (h *PerformanceHandler) GetStudentPerformance(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}
	learningArea := c.DefaultQuery("learning_area", "mathematics")

	response, err := h.performanceService.GetStudentPerformance(c.Request.Context(), id, learningArea)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
