package animation

import (
	"math"
	"time"
)

// LoopMode controls what happens after one full duration.
type LoopMode string

const (
	LoopOnce      LoopMode = "once"
	LoopRepeat    LoopMode = "loop"
	LoopAlternate LoopMode = "alternate"
)

// State is the animation configuration plus playback status for one
// canvas session. It is a plain value: callers own it and pass it into
// Progress on every call. Progress is never stored.
type State struct {
	Style     string   `yaml:"style"`
	Duration  float64  `yaml:"duration"` // seconds per cycle
	Speed     float64  `yaml:"speed"`
	Intensity float64  `yaml:"intensity"` // 0..100
	Direction string   `yaml:"direction"`
	OffsetMs  float64  `yaml:"offsetMs"` // stagger between elements
	Loop      LoopMode `yaml:"loop"`
	Easing    string   `yaml:"easing"`
	FPS       int      `yaml:"fps"`

	// Enabled turns animation on for the scene; playback flags below are
	// runtime state and are not persisted.
	Enabled bool          `yaml:"enabled"`
	Start   time.Duration `yaml:"-"`
	Playing bool          `yaml:"-"`
	Paused  bool          `yaml:"-"`
}

// DefaultState returns the settings a new canvas starts with.
func DefaultState() State {
	return State{
		Style:     StyleFloat,
		Duration:  2,
		Speed:     1,
		Intensity: 50,
		Direction: DirectionUp,
		Loop:      LoopRepeat,
		Easing:    EaseInOut,
		FPS:       30,
	}
}

// Play starts playback from now. The start time is reset in the same step
// as the flag so progress never jumps.
func (s *State) Play(now time.Duration) {
	s.Start = now
	s.Playing = true
	s.Paused = false
}

// Pause freezes motion at the neutral pose.
func (s *State) Pause() {
	s.Paused = true
}

// Resume restarts playback from now after a pause.
func (s *State) Resume(now time.Duration) {
	if !s.Playing {
		return
	}
	s.Start = now
	s.Paused = false
}

// Stop ends playback.
func (s *State) Stop() {
	s.Playing = false
	s.Paused = false
}

// Active reports whether Progress would produce motion.
func (s State) Active() bool {
	return s.Playing && !s.Paused && s.Duration > 0
}

// Progress returns the eased progress of element index at time now.
// The second result is false when the animation is not running (or is
// degenerate); callers must then use the neutral pose.
//
//	elapsed   = (now - start) * speed
//	staggered = max(0, elapsed - offset*index)
//	raw       = staggered / duration
func Progress(now time.Duration, s State, index int) (float64, bool) {
	// Checked before touching Start so a stale start time never leaks into a resumed frame.
	if !s.Playing || s.Paused {
		return 0, false
	}
	if s.Duration <= 0 || math.IsNaN(s.Duration) {
		return 0, false
	}
	speed := s.Speed
	if speed <= 0 || math.IsNaN(speed) {
		speed = 1
	}

	elapsed := (now - s.Start).Seconds() * speed
	staggered := math.Max(0, elapsed-s.OffsetMs/1000*float64(index))
	raw := staggered / s.Duration

	return Ease(s.Easing, loop(s.Loop, raw)), true
}

func loop(mode LoopMode, raw float64) float64 {
	switch mode {
	case LoopOnce:
		return math.Min(raw, 1)
	case LoopAlternate:
		whole, frac := math.Modf(raw)
		if int64(whole)%2 == 0 {
			return frac
		}
		return 1 - frac
	default:
		_, frac := math.Modf(raw)
		return frac
	}
}
