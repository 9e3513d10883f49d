package services

import (
	"math"

	"github.com/tuition-center/center-service/internal/models"
)

// ScoringWindowDays is the trailing history read for each recompute.
const ScoringWindowDays = 30

type breakpoint struct {
	min      float64
	fraction float64
}

// Lower bounds are inclusive and scanned in order.
var attendanceBreakpoints = []breakpoint{
	{0.95, 1.00},
	{0.90, 0.90},
	{0.80, 0.70},
	{0.70, 0.50},
	{0.60, 0.30},
}

var gradeBreakpoints = []breakpoint{
	{95, 1.00},
	{90, 0.95},
	{85, 0.85},
	{80, 0.75},
	{75, 0.65},
	{70, 0.55},
	{65, 0.40},
	{60, 0.25},
}

const floorFraction = 0.10

func fractionFor(value float64, table []breakpoint) float64 {
	for _, bp := range table {
		if value >= bp.min {
			return bp.fraction
		}
	}
	return floorFraction
}

// AttendanceScore is (present + 0.5*late) / total, or 0 for no records.
func AttendanceScore(records []*models.AttendanceRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	var earned float64
	for _, r := range records {
		switch r.Status {
		case models.AttendancePresent:
			earned += 1.0
		case models.AttendanceLate:
			earned += 0.5
		}
	}
	return earned / float64(len(records))
}

// AttendancePoints maps the attendance score onto the profile's maximum.
func AttendancePoints(records []*models.AttendanceRecord, profile models.ScoringProfile) float64 {
	if len(records) == 0 {
		return 0
	}
	fraction := fractionFor(AttendanceScore(records), attendanceBreakpoints)
	return models.Round2(profile.MaxAttendancePoints * fraction)
}

// AverageGradePercentage is the unweighted mean of the grades that carry a
// percentage. ok is false when none do.
func AverageGradePercentage(grades []*models.GradeRecord) (avg float64, ok bool) {
	var sum float64
	var n int
	for _, g := range grades {
		if g.Percentage == nil {
			continue
		}
		sum += *g.Percentage
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// GradePoints maps the average grade percentage onto the profile's maximum.
func GradePoints(grades []*models.GradeRecord, profile models.ScoringProfile) float64 {
	avg, ok := AverageGradePercentage(grades)
	if !ok {
		return 0
	}
	return models.Round2(profile.MaxGradePoints * fractionFor(avg, gradeBreakpoints))
}

// ApplyTotals recomputes total points and tier together. It is the only
// place either field is written.
func ApplyTotals(state *models.AchievementState, profile models.ScoringProfile) {
	state.TotalPoints = state.AttendancePoints + state.GradePoints + state.BonusPoints
	state.Tier = profile.TierFor(state.TotalPoints).Name
}

// LevelProgressFor reports the next tier and the distance to it. An unknown
// stored tier is treated as the lowest tier.
func LevelProgressFor(state *models.AchievementState, profile models.ScoringProfile) *models.LevelProgress {
	current := profile.TierIndex(state.Tier)
	if current < 0 {
		current = 0
	}

	progress := &models.LevelProgress{
		StudentID:   state.StudentID,
		TotalPoints: state.TotalPoints,
		CurrentTier: profile.Tiers[current].Name,
		ProgressPct: 100,
	}

	if current+1 >= len(profile.Tiers) {
		return progress
	}

	next := profile.Tiers[current+1]
	nextName := next.Name
	progress.NextTier = &nextName
	progress.PointsNeeded = models.Round2(math.Max(0, next.MinPoints-state.TotalPoints))
	if next.MinPoints > 0 {
		progress.ProgressPct = models.Round2(math.Min(100, math.Max(0, state.TotalPoints/next.MinPoints*100)))
	}
	return progress
}
