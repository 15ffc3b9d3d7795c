package api

import (
	"net/http"

	"github.com/fitjourney/chronicle/internal/domain"
	"github.com/fitjourney/chronicle/internal/service"

	"github.com/gin-gonic/gin"
)

type GoalHandler struct {
	goalService service.GoalService
}

func NewGoalHandler(goalService service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

type SaveGoalRequest struct {
	Frequency    int    `json:"frequency" binding:"required,min=1,max=7"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	IsActive     bool   `json:"isActive"`
	TargetStreak int    `json:"targetStreak" binding:"min=0"`
}

func (h *GoalHandler) ListGoals(c *gin.Context) {
	goals, err := h.goalService.ListGoals(c.Request.Context())
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, goals)
}

func (h *GoalHandler) GetActiveGoal(c *gin.Context) {
	goal, err := h.goalService.GetActiveGoal(c.Request.Context())
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

// SaveGoal handles both POST /goals and PUT /goals/:id.
func (h *GoalHandler) SaveGoal(c *gin.Context) {
	var req SaveGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	goal, err := h.goalService.SaveGoal(c.Request.Context(), domain.WorkoutGoal{
		ID:           c.Param("id"),
		Frequency:    req.Frequency,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		IsActive:     req.IsActive,
		TargetStreak: req.TargetStreak,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	status := http.StatusOK
	if c.Param("id") == "" {
		status = http.StatusCreated
	}
	c.JSON(status, goal)
}

func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	if err := h.goalService.DeleteGoal(c.Request.Context(), c.Param("id")); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
