package progress

import "time"

// interval is one rung of the spaced-repetition ladder.
type interval struct {
	magnitude int
	unit      time.Duration
}

const (
	unitMinute = time.Minute
	unitDay    = 24 * time.Hour
)

// ladder maps a learning step to the time until the next review. Step 8 is
// practically permanent; steps outside [0, 8] clamp to it.
var ladder = [9]interval{
	{1, unitMinute},
	{10, unitMinute},
	{60, unitMinute},
	{1, unitDay},
	{3, unitDay},
	{7, unitDay},
	{21, unitDay},
	{90, unitDay},
	{36500, unitDay},
}

// intervalForStep returns the ladder rung for the given step, clamping
// out-of-range steps to the final rung.
func intervalForStep(step int) interval {
	if step < 0 || step >= len(ladder) {
		return ladder[len(ladder)-1]
	}
	return ladder[step]
}

// IntervalDays returns the review interval for a step expressed in days.
// Minute-unit steps come back as day fractions.
func IntervalDays(step int) float64 {
	iv := intervalForStep(step)
	return float64(iv.magnitude) * float64(iv.unit) / float64(unitDay)
}

// NextReviewAt computes the next review timestamp for a step relative to an
// explicit reference time. Minute-unit steps add minutes; day-unit steps add
// whole calendar days. The reference time is always supplied by the caller so
// every transition in one batch shares a single clock reading.
func NextReviewAt(step int, ref time.Time) time.Time {
	iv := intervalForStep(step)
	if iv.unit == unitMinute {
		return ref.Add(time.Duration(iv.magnitude) * time.Minute)
	}
	return ref.AddDate(0, 0, iv.magnitude)
}
