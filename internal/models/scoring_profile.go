package models

// Tier is a named achievement level reached at MinPoints cumulative points.
type Tier struct {
	Name      string  `json:"name"`
	MinPoints float64 `json:"min_points"`
}

// ScoringProfile holds the static weights, maxima and tier thresholds for one
// educational stage. Tiers are ordered by ascending MinPoints.
type ScoringProfile struct {
	Stage               Stage   `json:"stage"`
	AttendanceWeight    float64 `json:"attendance_weight"`
	GradeWeight         float64 `json:"grade_weight"`
	MaxAttendancePoints float64 `json:"max_attendance_points"`
	MaxGradePoints      float64 `json:"max_grade_points"`
	Tiers               []Tier  `json:"tiers"`
}

const (
	TierBeginner = "beginner"
	TierBronze   = "bronze"
	TierSilver   = "silver"
	TierGold     = "gold"
	TierStar     = "star"
)

var scoringProfiles = map[Stage]ScoringProfile{
	StageKindergarten: {
		Stage:               StageKindergarten,
		AttendanceWeight:    0.7,
		GradeWeight:         0.3,
		MaxAttendancePoints: 70,
		MaxGradePoints:      30,
		Tiers: []Tier{
			{TierBeginner, 0},
			{TierBronze, 20},
			{TierSilver, 45},
			{TierGold, 70},
			{TierStar, 90},
		},
	},
	StagePrimary: {
		Stage:               StagePrimary,
		AttendanceWeight:    0.6,
		GradeWeight:         0.4,
		MaxAttendancePoints: 60,
		MaxGradePoints:      40,
		Tiers: []Tier{
			{TierBeginner, 0},
			{TierBronze, 25},
			{TierSilver, 50},
			{TierGold, 75},
			{TierStar, 95},
		},
	},
	StageMiddle: {
		Stage:               StageMiddle,
		AttendanceWeight:    0.5,
		GradeWeight:         0.5,
		MaxAttendancePoints: 50,
		MaxGradePoints:      50,
		Tiers: []Tier{
			{TierBeginner, 0},
			{TierBronze, 30},
			{TierSilver, 55},
			{TierGold, 80},
			{TierStar, 100},
		},
	},
	StageSecondary: {
		Stage:               StageSecondary,
		AttendanceWeight:    0.4,
		GradeWeight:         0.6,
		MaxAttendancePoints: 40,
		MaxGradePoints:      60,
		Tiers: []Tier{
			{TierBeginner, 0},
			{TierBronze, 30},
			{TierSilver, 60},
			{TierGold, 85},
			{TierStar, 110},
		},
	},
}

// ProfileFor returns the scoring profile of a stage, or the primary profile
// when the stage is unknown.
func ProfileFor(stage Stage) ScoringProfile {
	if profile, ok := scoringProfiles[stage]; ok {
		return profile
	}
	return scoringProfiles[DefaultStage]
}

// LowestTier is the fallback tier for totals below every threshold and for
// corrupted tier names.
func (p ScoringProfile) LowestTier() Tier {
	return p.Tiers[0]
}

// TierFor scans thresholds from highest to lowest and returns the first tier
// whose threshold is reached.
func (p ScoringProfile) TierFor(totalPoints float64) Tier {
	for i := len(p.Tiers) - 1; i >= 0; i-- {
		if p.Tiers[i].MinPoints <= totalPoints {
			return p.Tiers[i]
		}
	}
	return p.LowestTier()
}

// TierIndex returns the position of the named tier, or -1.
func (p ScoringProfile) TierIndex(name string) int {
	for i, tier := range p.Tiers {
		if tier.Name == name {
			return i
		}
	}
	return -1
}
