package models

import (
	"fmt"
	"time"
)

// Duration bounds and slider geometry.
const (
	MaxMinutes = 720
	MaxSeconds = 59

	// SliderMax is the largest slider position; each position is SliderStep seconds.
	SliderMax  = 240
	SliderStep = 15
)

// Duration is the countdown length as entered by the operator.
type Duration struct {
	Minutes int `yaml:"minutes"`
	Seconds int `yaml:"seconds"`
}

// TotalSeconds returns Minutes*60 + Seconds.
func (d Duration) TotalSeconds() int {
	return d.Minutes*60 + d.Seconds
}

// Std converts d to a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d.TotalSeconds()) * time.Second
}

// Clamp forces both fields into their allowed ranges.
func (d Duration) Clamp() Duration {
	return Duration{
		Minutes: clampInt(d.Minutes, 0, MaxMinutes),
		Seconds: clampInt(d.Seconds, 0, MaxSeconds),
	}
}

// Valid reports whether both fields are already within range.
func (d Duration) Valid() bool {
	return d == d.Clamp()
}

// SliderValue maps d to the nearest slider position. Durations longer than
// the slider can express pin it at SliderMax.
func (d Duration) SliderValue() int {
	total := d.TotalSeconds()
	if total <= 0 {
		return 0
	}
	return clampInt((total+SliderStep/2)/SliderStep, 0, SliderMax)
}

func (d Duration) String() string {
	return fmt.Sprintf("%d:%02d", d.Minutes, d.Seconds)
}

// DurationFromSlider converts a slider position into a Duration.
func DurationFromSlider(v int) Duration {
	return DurationFromSeconds(clampInt(v, 0, SliderMax) * SliderStep)
}

// DurationFromSeconds splits total into minutes and seconds, clamped to the
// largest representable Duration.
func DurationFromSeconds(total int) Duration {
	if total <= 0 {
		return Duration{}
	}
	d := Duration{Minutes: total / 60, Seconds: total % 60}
	if d.Minutes > MaxMinutes {
		return Duration{Minutes: MaxMinutes, Seconds: MaxSeconds}
	}
	return d
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
