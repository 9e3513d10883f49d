package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

type DayOfWeek string

const (
	Saturday  DayOfWeek = "saturday"
	Sunday    DayOfWeek = "sunday"
	Monday    DayOfWeek = "monday"
	Tuesday   DayOfWeek = "tuesday"
	Wednesday DayOfWeek = "wednesday"
	Thursday  DayOfWeek = "thursday"
	Friday    DayOfWeek = "friday"
)

// Weekdays lists the days in the center's week order.
var Weekdays = []DayOfWeek{Saturday, Sunday, Monday, Tuesday, Wednesday, Thursday, Friday}

func (d DayOfWeek) IsValid() bool {
	for _, day := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

// ParseDayOfWeek accepts any letter case.
func ParseDayOfWeek(value string) (DayOfWeek, bool) {
	day := DayOfWeek(strings.ToLower(strings.TrimSpace(value)))
	return day, day.IsValid()
}

// MinutesPerDay bounds minute-of-day values: starts lie in [0, MinutesPerDay).
const MinutesPerDay = 24 * 60

type Group struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Name         string `json:"name" gorm:"not null;size:100"`
	InstructorID uint   `json:"instructor_id" gorm:"not null;index"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Group) TableName() string {
	return "groups"
}

// ScheduleSlot is one weekly meeting of a group. Times are minute-of-day and
// the interval is half-open: [StartMinute, EndMinute).
type ScheduleSlot struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	GroupID      uint      `json:"group_id" gorm:"not null;index"`
	InstructorID uint      `json:"instructor_id" gorm:"not null;index:idx_slot_instructor_day"`
	DayOfWeek    DayOfWeek `json:"day_of_week" gorm:"not null;size:10;index:idx_slot_instructor_day"`
	StartMinute  int       `json:"start_minute" gorm:"not null"`
	EndMinute    int       `json:"end_minute" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Group Group `json:"group" gorm:"foreignKey:GroupID"`
}

func (ScheduleSlot) TableName() string {
	return "schedule_slots"
}

// Overlaps reports whether two half-open intervals intersect. Touching
// boundaries do not overlap.
func Overlaps(start1, end1, start2, end2 int) bool {
	return start1 < end2 && start2 < end1
}

// FormatMinute renders a minute-of-day as a 12-hour clock label, e.g. "10:30 AM".
func FormatMinute(minute int) string {
	minute = ((minute % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	hour, min := minute/60, minute%60
	meridiem := "AM"
	if hour >= 12 {
		meridiem = "PM"
	}
	hour12 := hour % 12
	if hour12 == 0 {
		hour12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour12, min, meridiem)
}

// ScheduleConflict is an existing slot that overlaps a candidate slot.
type ScheduleConflict struct {
	SlotID      uint      `json:"slot_id"`
	GroupID     uint      `json:"group_id"`
	GroupName   string    `json:"group_name"`
	DayOfWeek   DayOfWeek `json:"day_of_week"`
	StartMinute int       `json:"start_minute"`
	EndMinute   int       `json:"end_minute"`
}

// Describe formats the conflict for a consolidated user-facing message.
func (c ScheduleConflict) Describe() string {
	return fmt.Sprintf("%s (%s %s - %s)", c.GroupName, c.DayOfWeek, FormatMinute(c.StartMinute), FormatMinute(c.EndMinute))
}
