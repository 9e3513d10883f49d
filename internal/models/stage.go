package models

import "strings"

type Stage string

const (
	StageKindergarten Stage = "kindergarten"
	StagePrimary      Stage = "primary"
	StageMiddle       Stage = "middle"
	StageSecondary    Stage = "secondary"
)

// DefaultStage is used whenever a student's stage is missing or unrecognized.
const DefaultStage = StagePrimary

func (s Stage) IsValid() bool {
	switch s {
	case StageKindergarten, StagePrimary, StageMiddle, StageSecondary:
		return true
	}
	return false
}

// ParseStage normalizes a stored stage value. ok is false when the value
// names no known stage.
func ParseStage(value string) (Stage, bool) {
	stage := Stage(strings.ToLower(strings.TrimSpace(value)))
	return stage, stage.IsValid()
}

// stageKeywords maps fragments of free-text grade levels (Arabic and English)
// to an educational stage. Order matters: "kg" must win over later matches.
var stageKeywords = []struct {
	keyword string
	stage   Stage
}{
	{"رياض الأطفال", StageKindergarten},
	{"kg", StageKindergarten},
	{"kindergarten", StageKindergarten},
	{"ابتدائي", StagePrimary},
	{"primary", StagePrimary},
	{"إعدادي", StageMiddle},
	{"preparatory", StageMiddle},
	{"middle", StageMiddle},
	{"ثانوي", StageSecondary},
	{"secondary", StageSecondary},
}

// StageFromGradeLevel derives a stage from a grade level label such as
// "رياض الأطفال - KG1" or "الصف الأول الإعدادي".
func StageFromGradeLevel(gradeLevel string) Stage {
	label := strings.ToLower(strings.TrimSpace(gradeLevel))
	if label == "" {
		return DefaultStage
	}
	for _, kw := range stageKeywords {
		if strings.Contains(label, kw.keyword) {
			return kw.stage
		}
	}
	return DefaultStage
}
