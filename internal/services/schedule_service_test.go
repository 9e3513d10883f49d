package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tuition-center/center-service/internal/models"
	"github.com/tuition-center/center-service/internal/validator"
)

func slot(id uint, group string, start, end int) *models.ScheduleSlot {
	return &models.ScheduleSlot{
		ID:           id,
		GroupID:      id * 10,
		InstructorID: 4,
		DayOfWeek:    models.Monday,
		StartMinute:  start,
		EndMinute:    end,
		Group:        models.Group{ID: id * 10, Name: group},
	}
}

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		hour, minute, meridiem string
		expected               int
	}{
		{"10", "00", "AM", 600},
		{"12", "00", "AM", 0},
		{"12", "30", "PM", 750},
		{"1", "05", "pm", 785},
		{"11", "59", "PM", 1439},
		{" 9", "0", "AM", 540},
	}
	for _, tt := range tests {
		got, err := ParseClockTime(tt.hour, tt.minute, tt.meridiem)
		require.NoError(t, err, "%s:%s %s", tt.hour, tt.minute, tt.meridiem)
		assert.Equal(t, tt.expected, got)
	}
}

func TestParseClockTime_Malformed(t *testing.T) {
	tests := []struct {
		hour, minute, meridiem string
		field                  string
	}{
		{"ten", "00", "AM", "hour"},
		{"0", "00", "AM", "hour"},
		{"13", "00", "PM", "hour"},
		{"10", "60", "AM", "minute"},
		{"10", "-1", "AM", "minute"},
		{"10", "00", "XM", "meridiem"},
	}
	for _, tt := range tests {
		_, err := ParseClockTime(tt.hour, tt.minute, tt.meridiem)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidTimeFormat)

		var timeErr *TimeInputError
		require.ErrorAs(t, err, &timeErr)
		assert.Equal(t, tt.field, timeErr.Field)
	}
}

func TestBuildSlotWindow(t *testing.T) {
	t.Run("end is start plus duration", func(t *testing.T) {
		start, end, err := BuildSlotWindow("10", "30", "AM", 60)
		require.NoError(t, err)
		assert.Equal(t, 630, start)
		assert.Equal(t, 690, end)
	})

	t.Run("ending exactly at midnight is allowed", func(t *testing.T) {
		start, end, err := BuildSlotWindow("11", "00", "PM", 60)
		require.NoError(t, err)
		assert.Equal(t, 1380, start)
		assert.Equal(t, models.MinutesPerDay, end)
	})

	t.Run("crossing midnight is rejected", func(t *testing.T) {
		_, _, err := BuildSlotWindow("11", "30", "PM", 60)
		assert.ErrorIs(t, err, ErrSlotCrossesMidnight)
		assert.True(t, IsBusinessRule(err))

		var ruleErr *BusinessRuleError
		require.ErrorAs(t, err, &ruleErr)
		assert.Equal(t, "session_within_day", ruleErr.Rule)
		assert.Equal(t, 1410, ruleErr.Context["start_minute"])
		assert.Equal(t, 60, ruleErr.Context["duration_minutes"])
	})

	t.Run("non positive duration", func(t *testing.T) {
		_, _, err := BuildSlotWindow("10", "00", "AM", 0)
		assert.ErrorIs(t, err, ErrInvalidDuration)
		assert.True(t, IsValidation(err))
	})
}

func TestFindConflicts(t *testing.T) {
	existing := []*models.ScheduleSlot{slot(1, "Math A", 600, 660)}

	t.Run("partial overlap conflicts", func(t *testing.T) {
		conflicts := FindConflicts(existing, 630, 690, nil)
		require.Len(t, conflicts, 1)
		assert.Equal(t, "Math A", conflicts[0].GroupName)
		assert.Equal(t, uint(1), conflicts[0].SlotID)
	})

	t.Run("touching boundary does not conflict", func(t *testing.T) {
		assert.Empty(t, FindConflicts(existing, 660, 720, nil))
		assert.Empty(t, FindConflicts(existing, 540, 600, nil))
	})

	t.Run("containment conflicts both ways", func(t *testing.T) {
		assert.Len(t, FindConflicts(existing, 610, 620, nil), 1)
		assert.Len(t, FindConflicts(existing, 500, 800, nil), 1)
	})

	t.Run("excluded slot is ignored", func(t *testing.T) {
		exclude := uint(1)
		assert.Empty(t, FindConflicts(existing, 600, 660, &exclude))
	})

	t.Run("ordered by start minute", func(t *testing.T) {
		slots := []*models.ScheduleSlot{
			slot(3, "Physics", 720, 780),
			slot(1, "Math A", 600, 660),
			slot(2, "Arabic", 650, 700),
		}
		conflicts := FindConflicts(slots, 600, 760, nil)
		require.Len(t, conflicts, 3)
		assert.Equal(t, []int{600, 650, 720}, []int{conflicts[0].StartMinute, conflicts[1].StartMinute, conflicts[2].StartMinute})
		assert.Contains(t, ConflictMessage(conflicts), "Arabic (monday 10:50 AM - 11:40 AM)")
	})
}

func TestScheduleService_CheckConflict(t *testing.T) {
	ctx := context.Background()

	newService := func() (*MockRepository, ScheduleService) {
		repo := NewMockRepository()
		return repo, NewScheduleService(repo, discardLogger(), validator.New())
	}

	t.Run("converts clock input and queries the instructor's day", func(t *testing.T) {
		repo, svc := newService()
		repo.schedule.On("GetByInstructorAndDay", mock.Anything, uint(4), models.Monday, (*uint)(nil)).
			Return([]*models.ScheduleSlot{slot(1, "Math A", 600, 660)}, nil)

		report, err := svc.CheckConflict(ctx, &CheckConflictRequest{
			InstructorID:    4,
			DayOfWeek:       "Monday",
			Hour:            "10",
			Minute:          "30",
			Meridiem:        "AM",
			DurationMinutes: 60,
		})
		require.NoError(t, err)
		assert.Equal(t, 630, report.StartMinute)
		assert.Equal(t, 690, report.EndMinute)
		assert.True(t, report.HasConflict)
		assert.Contains(t, report.Message, "Math A")
	})

	t.Run("no conflicts", func(t *testing.T) {
		repo, svc := newService()
		exclude := uint(1)
		repo.schedule.On("GetByInstructorAndDay", mock.Anything, uint(4), models.Tuesday, &exclude).
			Return([]*models.ScheduleSlot{}, nil)

		report, err := svc.CheckConflict(ctx, &CheckConflictRequest{
			InstructorID:    4,
			DayOfWeek:       "tuesday",
			Hour:            "2",
			Minute:          "00",
			Meridiem:        "PM",
			DurationMinutes: 90,
			ExcludeSlotID:   &exclude,
		})
		require.NoError(t, err)
		assert.False(t, report.HasConflict)
		assert.Empty(t, report.Conflicts)
	})

	t.Run("malformed hour never reaches storage", func(t *testing.T) {
		repo, svc := newService()

		_, err := svc.CheckConflict(ctx, &CheckConflictRequest{
			InstructorID:    4,
			DayOfWeek:       "monday",
			Hour:            "25",
			Minute:          "00",
			Meridiem:        "AM",
			DurationMinutes: 60,
		})
		assert.ErrorIs(t, err, ErrInvalidTimeFormat)
		repo.schedule.AssertNotCalled(t, "GetByInstructorAndDay", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("blank clock fields are time format errors", func(t *testing.T) {
		tests := []struct {
			hour, minute, meridiem, field string
		}{
			{"", "00", "AM", "hour"},
			{"10", "", "AM", "minute"},
			{"10", "00", "", "meridiem"},
		}
		for _, tt := range tests {
			repo, svc := newService()

			_, err := svc.CheckConflict(ctx, &CheckConflictRequest{
				InstructorID:    4,
				DayOfWeek:       "monday",
				Hour:            tt.hour,
				Minute:          tt.minute,
				Meridiem:        tt.meridiem,
				DurationMinutes: 60,
			})
			require.ErrorIs(t, err, ErrInvalidTimeFormat, tt.field)

			var timeErr *TimeInputError
			require.ErrorAs(t, err, &timeErr)
			assert.Equal(t, tt.field, timeErr.Field)
			repo.schedule.AssertNotCalled(t, "GetByInstructorAndDay", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		}
	})

	t.Run("invalid day fails validation", func(t *testing.T) {
		_, svc := newService()

		_, err := svc.CheckConflict(ctx, &CheckConflictRequest{
			InstructorID:    4,
			DayOfWeek:       "someday",
			Hour:            "10",
			Minute:          "00",
			Meridiem:        "AM",
			DurationMinutes: 60,
		})
		assert.True(t, IsValidation(err))
	})

	t.Run("storage errors propagate", func(t *testing.T) {
		repo, svc := newService()
		repo.schedule.On("GetByInstructorAndDay", mock.Anything, uint(4), models.Friday, (*uint)(nil)).
			Return(nil, errors.New("connection refused"))

		_, err := svc.CheckScheduleConflict(ctx, 4, models.Friday, 600, 660, nil)
		assert.Error(t, err)
	})

	t.Run("out of range minutes are rejected", func(t *testing.T) {
		ranges := [][2]int{
			{660, 600},
			{600, 600},
			{-30, 60},
			{1380, 1500},
		}
		for _, r := range ranges {
			repo, svc := newService()

			conflicts, err := svc.CheckScheduleConflict(ctx, 4, models.Monday, r[0], r[1], nil)
			assert.ErrorIs(t, err, ErrInvalidTimeFormat, "range %v", r)
			assert.True(t, IsValidation(err))
			assert.Nil(t, conflicts)
			repo.schedule.AssertNotCalled(t, "GetByInstructorAndDay", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		}
	})

	t.Run("full day range is accepted", func(t *testing.T) {
		repo, svc := newService()
		repo.schedule.On("GetByInstructorAndDay", mock.Anything, uint(4), models.Sunday, (*uint)(nil)).
			Return([]*models.ScheduleSlot{slot(1, "Math A", 600, 660)}, nil)

		conflicts, err := svc.CheckScheduleConflict(ctx, 4, models.Sunday, 0, models.MinutesPerDay, nil)
		require.NoError(t, err)
		assert.Len(t, conflicts, 1)
	})
}
