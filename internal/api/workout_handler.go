package api

import (
	"net/http"

	"github.com/fitjourney/chronicle/internal/domain"
	"github.com/fitjourney/chronicle/internal/service"

	"github.com/gin-gonic/gin"
)

// WorkoutHandler serves workout templates.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// SaveWorkoutRequest defines the expected JSON for storing a custom template.
type SaveWorkoutRequest struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name" binding:"required"`
	Description string                 `json:"description"`
	Category    domain.WorkoutCategory `json:"category"`
	Exercises   []domain.Exercise      `json:"exercises"`
}

// ListWorkouts godoc
// @Summary List workout templates
// @Tags Workouts
// @Produce json
// @Success 200 {array} domain.Workout
// @Router /workouts [get]
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	workouts, err := h.workoutService.ListWorkouts(c.Request.Context())
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, workouts)
}

// GetWorkout godoc
// @Summary Get one workout template
// @Tags Workouts
// @Produce json
// @Param id path string true "Workout ID"
// @Success 200 {object} domain.Workout
// @Failure 404 {object} gin.H "Workout not found"
// @Router /workouts/{id} [get]
func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	workout, err := h.workoutService.GetWorkout(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, workout)
}

// SaveCustomWorkout stores a user-defined template.
func (h *WorkoutHandler) SaveCustomWorkout(c *gin.Context) {
	var req SaveWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	saved, err := h.workoutService.SaveCustomWorkout(c.Request.Context(), &domain.Workout{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Exercises:   req.Exercises,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}
