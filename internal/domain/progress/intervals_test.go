package progress

import (
	"testing"
	"time"
)

func TestIntervalDays(t *testing.T) {
	t.Parallel() // Enable parallel execution

	testCases := []struct {
		name     string
		step     int
		expected float64
	}{
		{name: "step 0 is one minute", step: 0, expected: 1.0 / 1440.0},
		{name: "step 1 is ten minutes", step: 1, expected: 10.0 / 1440.0},
		{name: "step 2 is one hour", step: 2, expected: 60.0 / 1440.0},
		{name: "step 3 is one day", step: 3, expected: 1},
		{name: "step 4 is three days", step: 4, expected: 3},
		{name: "step 5 is seven days", step: 5, expected: 7},
		{name: "step 6 is twenty-one days", step: 6, expected: 21},
		{name: "step 7 is ninety days", step: 7, expected: 90},
		{name: "step 8 is practically permanent", step: 8, expected: 36500},
		{name: "negative step clamps to the top", step: -1, expected: 36500},
		{name: "overflow step clamps to the top", step: 20, expected: 36500},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := IntervalDays(tc.step)
			if got != tc.expected {
				t.Errorf("Expected interval %v days for step %d, got %v", tc.expected, tc.step, got)
			}
		})
	}
}

func TestIntervalMonotonicity(t *testing.T) {
	t.Parallel() // Enable parallel execution

	for step := 1; step <= 8; step++ {
		if IntervalDays(step) <= IntervalDays(step-1) {
			t.Errorf("Interval for step %d (%v) should exceed step %d (%v)",
				step, IntervalDays(step), step-1, IntervalDays(step-1))
		}
	}
}

func TestNextReviewAt(t *testing.T) {
	t.Parallel() // Enable parallel execution
	ref := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		step     int
		expected time.Time
	}{
		{name: "minute step adds minutes", step: 0, expected: ref.Add(time.Minute)},
		{name: "ten minute step", step: 1, expected: ref.Add(10 * time.Minute)},
		{name: "hour step stays on the minute ladder", step: 2, expected: ref.Add(60 * time.Minute)},
		{name: "day step adds calendar days", step: 3, expected: ref.AddDate(0, 0, 1)},
		{name: "three day step", step: 4, expected: ref.AddDate(0, 0, 3)},
		{name: "top step pushes out a century-scale horizon", step: 8, expected: ref.AddDate(0, 0, 36500)},
		{name: "out-of-range step clamps", step: 99, expected: ref.AddDate(0, 0, 36500)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := NextReviewAt(tc.step, ref)
			if !got.Equal(tc.expected) {
				t.Errorf("Expected next review at %v for step %d, got %v", tc.expected, tc.step, got)
			}
		})
	}
}
