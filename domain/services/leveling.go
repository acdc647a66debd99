package services

import (
	"math"
)

// Leveling curve constants. Experience thresholds grow exponentially with
// level; the translation term keeps level 0 and 1 near zero.
const (
	expMultiplier  = 15566.0
	expTranslation = 15000.0
	expGrowthRate  = 0.0415
)

// LevelToExperience returns the minimum experience required for a level.
// Thresholds are rounded up to the next multiple of 100 to keep them
// human-readable; rounding up (rather than to nearest) keeps every stored
// threshold on or above the true curve, so ExperienceToLevel round-trips
// exactly for all levels. Negative curve values below level 1 clamp to 0.
func LevelToExperience(level int64) int64 {
	raw := expMultiplier*math.Exp(expGrowthRate*float64(level-1)) - expTranslation
	exp := roundUpTo100(int64(math.Round(raw)))
	if exp < 0 {
		return 0
	}
	return exp
}

// ExperienceToLevel derives the level an experience total corresponds to:
// the highest level whose threshold the total covers. The continuous inverse
// of the curve gives a starting guess, which is then adjusted against the
// rounded thresholds so both functions agree about every boundary.
func ExperienceToLevel(experience int64) int64 {
	if experience < 0 {
		return 0
	}

	inner := (float64(experience) + expTranslation) / expMultiplier
	level := int64(math.Floor(math.Log(inner)/expGrowthRate + 1))
	if level < 0 {
		level = 0
	}

	for LevelToExperience(level+1) <= experience {
		level++
	}
	for level > 0 && LevelToExperience(level) > experience {
		level--
	}
	return level
}

// IsConsistent reports whether an experience total lies within the range the
// stored level implies. Accounts written under an earlier curve fall outside
// the range; callers repair them by resetting experience to the level's
// threshold before applying a new delta.
func IsConsistent(level, experience int64) bool {
	return LevelToExperience(level) <= experience && experience <= LevelToExperience(level+1)
}

func roundUpTo100(n int64) int64 {
	if n >= 0 {
		if n%100 == 0 {
			return n
		}
		return (n/100 + 1) * 100
	}
	// Integer division already truncates toward zero for negatives.
	return (n / 100) * 100
}
