package hydration

import (
	"math"
	"strings"
)

// Gender values as stored on the profile.
const (
	GenderFemale = "Female"
	GenderMale   = "Male"
	GenderOther  = "Other"
)

// Activity levels as stored on the profile.
const (
	ActivityNone     = "No Active"
	ActivityLight    = "Lightly Active"
	ActivityModerate = "Moderately Active"
	ActivityHigh     = "Highly Active"
)

// DefaultGoal is the fallback daily goal in ml for users without a
// profile.
const DefaultGoal = 3000

// ActivityBonus is the additive ml term per self-reported activity
// level. Unknown levels contribute nothing.
func ActivityBonus(level string) float64 {
	switch level {
	case ActivityLight:
		return 100
	case ActivityModerate:
		return 250
	case ActivityHigh:
		return 500
	default:
		return 0
	}
}

// GenderFactor scales the weight/height base. Only "female" (case
// insensitive) differs.
func GenderFactor(gender string) float64 {
	if strings.EqualFold(gender, GenderFemale) {
		return 0.8
	}
	return 0.85
}

// RecommendedIntake computes the recommended daily water intake in ml.
//
//	base     = (weightKg/30 + heightCm/100) * 1000 * genderFactor + activityBonus
//	adjusted = base * (1 + altitudeMeters/10000)
//
// Zero or negative inputs are accepted as-is; an unknown altitude is
// passed as 0, making the adjustment factor 1.
func RecommendedIntake(weightKg, heightCm float64, gender, activityLevel string, altitudeMeters float64) int {
	base := (weightKg/30+heightCm/100)*1000*GenderFactor(gender) + ActivityBonus(activityLevel)
	adjusted := base * (1 + altitudeMeters/10000)
	return int(math.Round(adjusted))
}

// GoalMode distinguishes a computed goal from a user-set override.
type GoalMode string

const (
	GoalComputed GoalMode = "computed"
	GoalManual   GoalMode = "manual"
)

// GoalSetting is the effective daily goal together with how it was
// determined. A manual goal wins over recomputation until explicitly
// reset.
type GoalSetting struct {
	Mode  GoalMode `json:"mode"`
	Value int      `json:"value"`
}

// ComputedGoal wraps an automatically derived goal value.
func ComputedGoal(ml int) GoalSetting {
	return GoalSetting{Mode: GoalComputed, Value: ml}
}

// ManualGoal wraps a user-set goal value.
func ManualGoal(ml int) GoalSetting {
	return GoalSetting{Mode: GoalManual, Value: ml}
}

// IsManual reports whether recomputation is currently suppressed.
func (g GoalSetting) IsManual() bool { return g.Mode == GoalManual }
