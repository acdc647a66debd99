package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelToExperience_KnownThresholds(t *testing.T) {
	tests := []struct {
		name     string
		level    int64
		expected int64
	}{
		{name: "level 0 clamps to zero", level: 0, expected: 0},
		{name: "level 1", level: 1, expected: 600},
		{name: "level 2", level: 2, expected: 1300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, LevelToExperience(tt.level))
		})
	}
}

func TestLevelToExperience_MultipleOf100(t *testing.T) {
	for level := int64(0); level <= 100; level++ {
		exp := LevelToExperience(level)
		assert.Zero(t, exp%100, "threshold for level %d is %d, not a multiple of 100", level, exp)
		assert.GreaterOrEqual(t, exp, int64(0))
	}
}

func TestLevelToExperience_StrictlyIncreasing(t *testing.T) {
	prev := LevelToExperience(0)
	for level := int64(1); level <= 100; level++ {
		exp := LevelToExperience(level)
		assert.Greater(t, exp, prev, "threshold for level %d does not exceed level %d", level, level-1)
		prev = exp
	}
}

func TestExperienceToLevel_RoundTripsThresholds(t *testing.T) {
	for _, level := range []int64{0, 1, 2, 5, 10, 50, 100} {
		exp := LevelToExperience(level)
		assert.Equal(t, level, ExperienceToLevel(exp), "threshold %d for level %d maps back to a different level", exp, level)
	}
}

func TestExperienceToLevel_BelowThreshold(t *testing.T) {
	// One experience point short of a threshold still counts as the
	// previous level.
	for _, level := range []int64{2, 5, 10, 50} {
		exp := LevelToExperience(level) - 1
		assert.Equal(t, level-1, ExperienceToLevel(exp))
	}
}

func TestExperienceToLevel_Monotonic(t *testing.T) {
	prev := ExperienceToLevel(0)
	for exp := int64(100); exp <= 50000; exp += 100 {
		level := ExperienceToLevel(exp)
		assert.GreaterOrEqual(t, level, prev, "level decreased at experience %d", exp)
		prev = level
	}
}

func TestIsConsistent(t *testing.T) {
	tests := []struct {
		name       string
		level      int64
		experience int64
		expected   bool
	}{
		{name: "fresh account", level: 0, experience: 0, expected: true},
		{name: "exactly at own threshold", level: 5, experience: LevelToExperience(5), expected: true},
		{name: "midway to next level", level: 5, experience: LevelToExperience(5) + 50, expected: true},
		{name: "exactly at next threshold", level: 5, experience: LevelToExperience(6), expected: true},
		{name: "experience far below level", level: 10, experience: 100, expected: false},
		{name: "experience far above level", level: 1, experience: LevelToExperience(20), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsConsistent(tt.level, tt.experience))
		})
	}
}
