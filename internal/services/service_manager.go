package services

import (
	"log/slog"

	"github.com/tuition-center/center-service/internal/cache"
	"github.com/tuition-center/center-service/internal/events"
	"github.com/tuition-center/center-service/internal/repositories"
	"github.com/tuition-center/center-service/internal/validator"
)

// ServiceManager hands out the service singletons to the HTTP layer.
type ServiceManager interface {
	Achievement() AchievementService
	Schedule() ScheduleService
}

type serviceManager struct {
	achievement AchievementService
	schedule    ScheduleService
}

func NewServiceManager(
	repo repositories.Repository,
	leaderboard cache.LeaderboardCache,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
) ServiceManager {
	return &serviceManager{
		achievement: NewAchievementService(repo, leaderboard, publisher, logger, validator),
		schedule:    NewScheduleService(repo, logger, validator),
	}
}

func (m *serviceManager) Achievement() AchievementService { return m.achievement }
func (m *serviceManager) Schedule() ScheduleService       { return m.schedule }
