package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tuition-center/center-service/internal/services"
	"github.com/tuition-center/center-service/internal/utils"
)

type AchievementHandler struct {
	BaseHandler
	achievementService services.AchievementService
}

func NewAchievementHandler(achievementService services.AchievementService, logger utils.Logger) *AchievementHandler {
	return &AchievementHandler{
		BaseHandler:        NewBaseHandler(logger),
		achievementService: achievementService,
	}
}

// RecomputeAchievement recalculates a student's points from recent history
// @Summary Recompute achievement
// @Tags achievements
// @Produce json
// @Param id path uint true "Student ID"
// @Success 200 {object} SuccessResponse{data=models.AchievementState}
// @Failure 404 {object} ErrorResponse
// @Router /students/{id}/achievement/recompute [post]
func (h *AchievementHandler) RecomputeAchievement(c *gin.Context) {
	studentID := ParseUintParam(c, "id")
	if studentID == 0 {
		return
	}

	state, err := h.achievementService.Recompute(c.Request.Context(), studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Achievement recomputed", state)
}

// AwardBonus adds or removes manual bonus points
// @Summary Award bonus points
// @Tags achievements
// @Accept json
// @Produce json
// @Param id path uint true "Student ID"
// @Param bonus body services.AwardBonusRequest true "Bonus delta and reason"
// @Success 200 {object} SuccessResponse{data=models.AchievementState}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /students/{id}/achievement/bonus [post]
func (h *AchievementHandler) AwardBonus(c *gin.Context) {
	studentID := ParseUintParam(c, "id")
	if studentID == 0 {
		return
	}

	var req services.AwardBonusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	h.LogRequest(c, "Awarding bonus", "student_id", studentID, "delta", req.Delta)

	state, err := h.achievementService.AwardBonus(c.Request.Context(), studentID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Bonus awarded", state)
}

// GetLevelProgress reports the current tier and distance to the next
// @Summary Get level progress
// @Tags achievements
// @Produce json
// @Param id path uint true "Student ID"
// @Success 200 {object} SuccessResponse{data=models.LevelProgress}
// @Router /students/{id}/achievement/progress [get]
func (h *AchievementHandler) GetLevelProgress(c *gin.Context) {
	studentID := ParseUintParam(c, "id")
	if studentID == 0 {
		return
	}

	progress, err := h.achievementService.GetLevelProgress(c.Request.Context(), studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Level progress", progress)
}

// GetBonusHistory lists the most recent bonus ledger entries
// @Summary Get bonus history
// @Tags achievements
// @Produce json
// @Param id path uint true "Student ID"
// @Param limit query int false "Max entries"
// @Router /students/{id}/achievement/bonuses [get]
func (h *AchievementHandler) GetBonusHistory(c *gin.Context) {
	studentID := ParseUintParam(c, "id")
	if studentID == 0 {
		return
	}

	awards, err := h.achievementService.GetBonusHistory(c.Request.Context(), studentID, ParseIntQuery(c, "limit", 0))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Bonus history", awards)
}

// GetLeaderboard returns the top students by total points
// @Summary Get leaderboard
// @Tags achievements
// @Produce json
// @Param limit query int false "Number of entries (max 100)"
// @Router /achievements/leaderboard [get]
func (h *AchievementHandler) GetLeaderboard(c *gin.Context) {
	entries, err := h.achievementService.GetLeaderboard(c.Request.Context(), ParseIntQuery(c, "limit", 0))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Leaderboard", entries)
}

// RecomputeAll recalculates every active student
// @Summary Recompute all achievements
// @Tags achievements
// @Produce json
// @Success 200 {object} SuccessResponse{data=services.RecomputeSummary}
// @Router /achievements/recompute-all [post]
func (h *AchievementHandler) RecomputeAll(c *gin.Context) {
	h.LogRequest(c, "Recomputing all achievements")

	summary, err := h.achievementService.RecomputeAll(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Achievements recomputed", summary)
}
