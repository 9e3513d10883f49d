package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tuition-center/center-service/internal/services"
	"github.com/tuition-center/center-service/internal/utils"
)

type ScheduleHandler struct {
	BaseHandler
	scheduleService services.ScheduleService
}

func NewScheduleHandler(scheduleService services.ScheduleService, logger utils.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		BaseHandler:     NewBaseHandler(logger),
		scheduleService: scheduleService,
	}
}

// CheckConflicts reports the instructor's slots overlapping a proposed slot.
// Conflicts are advisory: the response is 200 either way.
// @Summary Check schedule conflicts
// @Tags schedules
// @Accept json
// @Produce json
// @Param slot body services.CheckConflictRequest true "Proposed slot"
// @Success 200 {object} SuccessResponse{data=services.ConflictReport}
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /schedules/conflicts [post]
func (h *ScheduleHandler) CheckConflicts(c *gin.Context) {
	var req services.CheckConflictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	report, err := h.scheduleService.CheckConflict(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	message := "No conflicts"
	if report.HasConflict {
		message = report.Message
	}
	h.RespondWithSuccess(c, http.StatusOK, message, report)
}
