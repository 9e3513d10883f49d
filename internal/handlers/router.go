package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tuition-center/center-service/internal/models"
	"github.com/tuition-center/center-service/internal/services"
	"github.com/tuition-center/center-service/internal/utils"
)

type HandlerManager struct {
	achievementHandler  *AchievementHandler
	scheduleHandler     *ScheduleHandler
	enforceCapabilities bool
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
	enforceCapabilities bool,
) *HandlerManager {
	return &HandlerManager{
		achievementHandler:  NewAchievementHandler(serviceManager.Achievement(), logger),
		scheduleHandler:     NewScheduleHandler(serviceManager.Schedule(), logger),
		enforceCapabilities: enforceCapabilities,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", HealthCheck)

	manageStudents := RequireCapability(models.CapManageStudents, hm.enforceCapabilities)
	manageGroups := RequireCapability(models.CapManageGroups, hm.enforceCapabilities)

	v1 := router.Group("/api/v1")
	v1.Use(RequestContext())
	{
		students := v1.Group("/students/:id/achievement")
		{
			students.POST("/recompute", hm.achievementHandler.RecomputeAchievement)
			students.POST("/bonus", manageStudents, hm.achievementHandler.AwardBonus)
			students.GET("/progress", hm.achievementHandler.GetLevelProgress)
			students.GET("/bonuses", hm.achievementHandler.GetBonusHistory)
		}

		achievements := v1.Group("/achievements")
		{
			achievements.GET("/leaderboard", hm.achievementHandler.GetLeaderboard)
			achievements.POST("/recompute-all", manageStudents, hm.achievementHandler.RecomputeAll)
		}

		schedules := v1.Group("/schedules")
		{
			schedules.POST("/conflicts", manageGroups, hm.scheduleHandler.CheckConflicts)
		}
	}
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "center-service",
	})
}
