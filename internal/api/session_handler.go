package api

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/fitjourney/chronicle/internal/session"

	"github.com/gin-gonic/gin"
)

// SessionHandler exposes live workout sessions.
type SessionHandler struct {
	manager *session.Manager
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(manager *session.Manager) *SessionHandler {
	return &SessionHandler{manager: manager}
}

// --- DTOs ---

type StartSessionRequest struct {
	WorkoutID string `json:"workoutId" binding:"required"`
}

type NotesRequest struct {
	Notes string `json:"notes"`
}

type AddExerciseRequest struct {
	Name              string `json:"name" binding:"required"`
	TargetMuscleGroup string `json:"targetMuscleGroup"`
	Sets              int    `json:"sets"`
	Reps              string `json:"reps"`
	Rest              int    `json:"rest"` // seconds
	Notes             string `json:"notes"`
}

// ReorderRequest carries either index positions or exercise ids.
type ReorderRequest struct {
	Order       []int    `json:"order"`
	ExerciseIDs []string `json:"exerciseIds"`
}

// EditResponse is returned by exercise list edits. Saved is false when the
// change was applied to the session but could not be stored.
type EditResponse struct {
	Session session.View `json:"session"`
	Saved   bool         `json:"saved"`
	Error   string       `json:"error,omitempty"`
}

// setFieldOrder fixes the order in which a PATCH body is applied, so that
// data lands before a state change.
var setFieldOrder = []string{"weight", "reps", "completed", "timerActive"}

// --- Handlers ---

// StartSession godoc
// @Summary Start a workout session from a template
// @Tags Sessions
// @Accept json
// @Produce json
// @Param request body StartSessionRequest true "Template to start"
// @Success 201 {object} session.View
// @Failure 404 {object} gin.H "Template not found"
// @Router /sessions [post]
func (h *SessionHandler) StartSession(c *gin.Context) {
	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	s, err := h.manager.Start(c.Request.Context(), req.WorkoutID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, s.Snapshot())
}

func (h *SessionHandler) GetSession(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

// DiscardSession drops a session without saving a log.
func (h *SessionHandler) DiscardSession(c *gin.Context) {
	if err := h.manager.Discard(c.Param("id")); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SessionHandler) SetNotes(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req NotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	if err := s.SetNotes(req.Notes); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

// Notifications returns and clears the notifications raised since the last call.
func (h *SessionHandler) Notifications(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Notifications())
}

// UpdateSet godoc
// @Summary Change weight, reps, completion or rest timer of a set
// @Description Body keys: weight, reps, completed, timerActive. Text values are coerced.
// @Tags Sessions
// @Accept json
// @Produce json
// @Success 200 {object} session.View
// @Failure 400 {object} gin.H "Unknown field or index out of range"
// @Failure 409 {object} gin.H "Transition not allowed"
// @Router /sessions/{id}/exercises/{exercise}/sets/{set} [patch]
func (h *SessionHandler) UpdateSet(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	ei, si, ok := setPosition(c)
	if !ok {
		return
	}

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	if len(body) == 0 {
		abortWithError(c, http.StatusBadRequest, "no set fields given")
		return
	}

	cmds := make([]session.Command, 0, len(body))
	for _, field := range setFieldOrder {
		value, present := body[field]
		if !present {
			continue
		}
		cmd, err := session.FieldCommand(ei, si, field, value)
		if err != nil {
			abortWithServiceError(c, err)
			return
		}
		cmds = append(cmds, cmd)
		delete(body, field)
	}
	if len(body) > 0 {
		unknown := make([]string, 0, len(body))
		for field := range body {
			unknown = append(unknown, field)
		}
		sort.Strings(unknown)
		abortWithError(c, http.StatusBadRequest, "unknown set fields: "+strings.Join(unknown, ", "))
		return
	}

	if err := s.ApplyAll(cmds...); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

func (h *SessionHandler) AddSet(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	ei, ok := pathIndex(c, "exercise")
	if !ok {
		return
	}
	if _, err := s.AddSet(ei); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, s.Snapshot())
}

// ControlRest pauses, resumes or skips the rest timer of a set.
func (h *SessionHandler) ControlRest(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	ei, si, ok := setPosition(c)
	if !ok {
		return
	}

	var err error
	switch c.Param("action") {
	case "pause":
		err = s.PauseRest(ei, si)
	case "resume":
		err = s.ResumeRest(ei, si)
	case "skip":
		err = s.SkipRest(ei, si)
	default:
		abortWithError(c, http.StatusNotFound, "unknown rest action")
		return
	}
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

func (h *SessionHandler) AddExercise(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req AddExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	_, err := s.AddExercise(c.Request.Context(), session.NewExercise{
		Name:              req.Name,
		TargetMuscleGroup: req.TargetMuscleGroup,
		Sets:              req.Sets,
		Reps:              req.Reps,
		Rest:              req.Rest,
		Notes:             req.Notes,
	})
	respondEdit(c, s, err, http.StatusCreated)
}

func (h *SessionHandler) RemoveExercise(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	ei, ok := pathIndex(c, "exercise")
	if !ok {
		return
	}
	respondEdit(c, s, s.RemoveExercise(c.Request.Context(), ei), http.StatusOK)
}

// ReorderExercises godoc
// @Summary Reorder the exercises of a session
// @Description Either order (order[i] is the current index moving to i) or exerciseIds in the new order.
// @Tags Sessions
// @Accept json
// @Produce json
// @Success 200 {object} EditResponse
// @Failure 400 {object} gin.H "Not a permutation"
// @Router /sessions/{id}/exercises/order [put]
func (h *SessionHandler) ReorderExercises(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	ctx := c.Request.Context()
	if req.ExerciseIDs != nil {
		respondEdit(c, s, s.ReorderByIDs(ctx, req.ExerciseIDs), http.StatusOK)
		return
	}
	respondEdit(c, s, s.ReorderExercises(ctx, req.Order), http.StatusOK)
}

func (h *SessionHandler) RestoreDefaults(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	respondEdit(c, s, s.RestoreDefaults(c.Request.Context()), http.StatusOK)
}

// FinishSession godoc
// @Summary Finish a session and store its log
// @Tags Sessions
// @Produce json
// @Success 201 {object} domain.WorkoutLog
// @Failure 503 {object} gin.H "Log could not be stored; the session stays open"
// @Router /sessions/{id}/finish [post]
func (h *SessionHandler) FinishSession(c *gin.Context) {
	wl, err := h.manager.Finish(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, wl)
}

// --- helpers ---

func (h *SessionHandler) session(c *gin.Context) (*session.Session, bool) {
	s, err := h.manager.Get(c.Param("id"))
	if err != nil {
		abortWithServiceError(c, err)
		return nil, false
	}
	return s, true
}

// respondEdit answers an exercise list edit. A persistence failure still
// returns the updated session because the edit stays applied.
func respondEdit(c *gin.Context, s *session.Session, err error, okStatus int) {
	switch {
	case err == nil:
		c.JSON(okStatus, EditResponse{Session: s.Snapshot(), Saved: true})
	case errors.Is(err, session.ErrPersistence):
		_ = c.Error(err)
		c.JSON(http.StatusOK, EditResponse{Session: s.Snapshot(), Saved: false, Error: err.Error()})
	default:
		abortWithServiceError(c, err)
	}
}

func pathIndex(c *gin.Context, name string) (int, bool) {
	idx, err := strconv.Atoi(c.Param(name))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid "+name+" index")
		return 0, false
	}
	return idx, true
}

func setPosition(c *gin.Context) (int, int, bool) {
	ei, ok := pathIndex(c, "exercise")
	if !ok {
		return 0, 0, false
	}
	si, ok := pathIndex(c, "set")
	if !ok {
		return 0, 0, false
	}
	return ei, si, true
}
