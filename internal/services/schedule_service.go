package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/tuition-center/center-service/internal/models"
	"github.com/tuition-center/center-service/internal/repositories"
	"github.com/tuition-center/center-service/internal/validator"
)

type ScheduleService interface {
	// CheckConflict converts the clock-form request and reports the
	// instructor's existing slots that overlap it.
	CheckConflict(ctx context.Context, req *CheckConflictRequest) (*ConflictReport, error)
	CheckScheduleConflict(ctx context.Context, instructorID uint, day models.DayOfWeek, startMinute, endMinute int, excludeSlotID *uint) ([]models.ScheduleConflict, error)
}

// CheckConflictRequest is a proposed slot as entered on the schedule form.
// The clock fields are checked by ParseClockTime so malformed times always
// surface as ErrInvalidTimeFormat.
type CheckConflictRequest struct {
	InstructorID    uint   `json:"instructor_id" validate:"required"`
	DayOfWeek       string `json:"day_of_week" validate:"required,day_of_week"`
	Hour            string `json:"hour"`
	Minute          string `json:"minute"`
	Meridiem        string `json:"meridiem"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,gt=0"`
	ExcludeSlotID   *uint  `json:"exclude_slot_id,omitempty"`
}

type ConflictReport struct {
	StartMinute int                       `json:"start_minute"`
	EndMinute   int                       `json:"end_minute"`
	HasConflict bool                      `json:"has_conflict"`
	Conflicts   []models.ScheduleConflict `json:"conflicts"`
	Message     string                    `json:"message,omitempty"`
}

type scheduleService struct {
	repo      repositories.Repository
	log       *ServiceLogger
	validator *validator.Validator
}

func NewScheduleService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) ScheduleService {
	return &scheduleService{
		repo:      repo,
		log:       NewServiceLogger(logger, LogConfig{Service: "center-service", Component: "schedules"}),
		validator: validator,
	}
}

func (s *scheduleService) CheckConflict(ctx context.Context, req *CheckConflictRequest) (*ConflictReport, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	day, ok := models.ParseDayOfWeek(req.DayOfWeek)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDayOfWeek, req.DayOfWeek)
	}

	start, end, err := BuildSlotWindow(req.Hour, req.Minute, req.Meridiem, req.DurationMinutes)
	if err != nil {
		return nil, err
	}

	conflicts, err := s.CheckScheduleConflict(ctx, req.InstructorID, day, start, end, req.ExcludeSlotID)
	if err != nil {
		return nil, err
	}

	report := &ConflictReport{
		StartMinute: start,
		EndMinute:   end,
		HasConflict: len(conflicts) > 0,
		Conflicts:   conflicts,
	}
	if report.HasConflict {
		report.Message = ConflictMessage(conflicts)
	}
	return report, nil
}

func (s *scheduleService) CheckScheduleConflict(ctx context.Context, instructorID uint, day models.DayOfWeek, startMinute, endMinute int, excludeSlotID *uint) ([]models.ScheduleConflict, error) {
	op := s.log.WithOperation(ctx, "check_schedule_conflict")

	if err := validateMinuteRange(startMinute, endMinute); err != nil {
		op.LogResult(instructorID, "instructor", err)
		return nil, err
	}

	slots, err := s.repo.Schedule().GetByInstructorAndDay(ctx, instructorID, day, excludeSlotID)
	if err != nil {
		err = fmt.Errorf("failed to load schedule slots: %w", err)
		op.LogResult(instructorID, "instructor", err)
		return nil, err
	}

	conflicts := FindConflicts(slots, startMinute, endMinute, excludeSlotID)
	op.LogResult(instructorID, "instructor", nil)
	return conflicts, nil
}

// FindConflicts returns the slots overlapping [start, end), ordered by start
// minute. A slot whose id equals excludeSlotID is skipped.
func FindConflicts(slots []*models.ScheduleSlot, start, end int, excludeSlotID *uint) []models.ScheduleConflict {
	conflicts := make([]models.ScheduleConflict, 0)
	for _, slot := range slots {
		if excludeSlotID != nil && slot.ID == *excludeSlotID {
			continue
		}
		if !models.Overlaps(start, end, slot.StartMinute, slot.EndMinute) {
			continue
		}
		conflicts = append(conflicts, models.ScheduleConflict{
			SlotID:      slot.ID,
			GroupID:     slot.GroupID,
			GroupName:   slot.Group.Name,
			DayOfWeek:   slot.DayOfWeek,
			StartMinute: slot.StartMinute,
			EndMinute:   slot.EndMinute,
		})
	}

	sort.SliceStable(conflicts, func(i, j int) bool {
		return conflicts[i].StartMinute < conflicts[j].StartMinute
	})
	return conflicts
}

// ConflictMessage joins every conflict into one user-facing line.
func ConflictMessage(conflicts []models.ScheduleConflict) string {
	parts := make([]string, len(conflicts))
	for i, c := range conflicts {
		parts[i] = c.Describe()
	}
	return "Instructor already teaches at this time: " + strings.Join(parts, "; ")
}

// ===== CLOCK INPUT =====

// ParseClockTime converts a 12-hour clock reading into minute-of-day.
// 12 AM is midnight and 12 PM is noon.
func ParseClockTime(hour, minute, meridiem string) (int, error) {
	h, err := strconv.Atoi(strings.TrimSpace(hour))
	if err != nil || h < 1 || h > 12 {
		return 0, newTimeInputError("hour", hour, ErrInvalidTimeFormat)
	}

	m, err := strconv.Atoi(strings.TrimSpace(minute))
	if err != nil || m < 0 || m > 59 {
		return 0, newTimeInputError("minute", minute, ErrInvalidTimeFormat)
	}

	switch strings.ToUpper(strings.TrimSpace(meridiem)) {
	case "AM":
		if h == 12 {
			h = 0
		}
	case "PM":
		if h != 12 {
			h += 12
		}
	default:
		return 0, newTimeInputError("meridiem", meridiem, ErrInvalidTimeFormat)
	}

	return h*60 + m, nil
}

// BuildSlotWindow returns the half-open [start, end) minute range of a
// session. Sessions must end no later than midnight.
func BuildSlotWindow(hour, minute, meridiem string, durationMinutes int) (int, int, error) {
	start, err := ParseClockTime(hour, minute, meridiem)
	if err != nil {
		return 0, 0, err
	}
	if durationMinutes <= 0 {
		return 0, 0, fmt.Errorf("%w: %d minutes", ErrInvalidDuration, durationMinutes)
	}

	end := start + durationMinutes
	if end > models.MinutesPerDay {
		return 0, 0, NewBusinessRuleError("session_within_day", ErrSlotCrossesMidnight,
			fmt.Sprintf("a session starting at %s cannot run %d minutes", models.FormatMinute(start), durationMinutes),
			map[string]interface{}{
				"start_minute":     start,
				"duration_minutes": durationMinutes,
			})
	}
	return start, end, nil
}

// validateMinuteRange requires 0 <= start < end <= MinutesPerDay.
func validateMinuteRange(start, end int) error {
	if start < 0 || end > models.MinutesPerDay || start >= end {
		return fmt.Errorf("%w: minute range [%d, %d)", ErrInvalidTimeFormat, start, end)
	}
	return nil
}
