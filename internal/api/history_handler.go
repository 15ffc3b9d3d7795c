package api

import (
	"net/http"

	"github.com/fitjourney/chronicle/internal/service"

	"github.com/gin-gonic/gin"
)

// HistoryHandler serves finished workout logs and the numbers derived from them.
type HistoryHandler struct {
	historyService service.HistoryService
	exportService  service.ExportService
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(historyService service.HistoryService, exportService service.ExportService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService, exportService: exportService}
}

// ListLogs godoc
// @Summary List workout logs, newest first
// @Tags Logs
// @Produce json
// @Param date query string false "Only logs of this day (YYYY-MM-DD)"
// @Param month query string false "Only logs of this month (YYYY-MM)"
// @Success 200 {array} domain.WorkoutLog
// @Failure 400 {object} gin.H "Bad date or month"
// @Router /logs [get]
func (h *HistoryHandler) ListLogs(c *gin.Context) {
	filter := service.LogFilter{Date: c.Query("date"), Month: c.Query("month")}
	logs, err := h.historyService.ListLogs(c.Request.Context(), filter)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

func (h *HistoryHandler) GetLog(c *gin.Context) {
	wl, err := h.historyService.GetLog(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, wl)
}

func (h *HistoryHandler) DeleteLog(c *gin.Context) {
	if err := h.historyService.DeleteLog(c.Request.Context(), c.Param("id")); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Dashboard godoc
// @Summary Totals, weekly counts, lift progress, goal progress and streak
// @Tags Stats
// @Produce json
// @Success 200 {object} service.Dashboard
// @Router /stats [get]
func (h *HistoryHandler) Dashboard(c *gin.Context) {
	d, err := h.historyService.Dashboard(c.Request.Context())
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// ExportLogs godoc
// @Summary Archive every log to object storage
// @Tags Logs
// @Produce json
// @Success 201 {object} service.ExportResult
// @Failure 503 {object} gin.H "Export not configured"
// @Router /logs/export [post]
func (h *HistoryHandler) ExportLogs(c *gin.Context) {
	res, err := h.exportService.ExportLogs(c.Request.Context())
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}
