package models

// CountdownPhase is the lifecycle position of a countdown.
type CountdownPhase int

const (
	PhaseIdle CountdownPhase = iota
	PhaseRunning
	PhasePaused
	PhaseFinished
)

func (p CountdownPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// CountdownState is the complete state of one countdown. Total and
// Remaining are whole seconds; Progress is the elapsed share in [0,100].
type CountdownState struct {
	Total     int
	Remaining int
	Phase     CountdownPhase
	Progress  float64
}

// NewCountdownState returns an Idle countdown configured for d.
func NewCountdownState(d Duration) CountdownState {
	total := d.Clamp().TotalSeconds()
	return CountdownState{Total: total, Remaining: total, Phase: PhaseIdle}
}

func (s CountdownState) Running() bool  { return s.Phase == PhaseRunning }
func (s CountdownState) Finished() bool { return s.Phase == PhaseFinished }
func (s CountdownState) Idle() bool     { return s.Phase == PhaseIdle }

// Configure sets a new duration. Only allowed while Idle.
func (s CountdownState) Configure(d Duration) (CountdownState, error) {
	if s.Phase != PhaseIdle {
		return s, ErrConfigureLocked
	}
	return NewCountdownState(d), nil
}

// StartOrPause starts an idle, paused or finished countdown and pauses a
// running one. A finished countdown restarts from its full duration.
func (s CountdownState) StartOrPause() (CountdownState, error) {
	if s.Total <= 0 {
		return s, ErrZeroDuration
	}

	switch s.Phase {
	case PhaseRunning:
		s.Phase = PhasePaused
	case PhaseFinished:
		s.Remaining = s.Total
		s.Progress = 0
		s.Phase = PhaseRunning
	default:
		s.Phase = PhaseRunning
	}
	return s, nil
}

// Reset returns to Idle with the full duration remaining.
func (s CountdownState) Reset() CountdownState {
	s.Remaining = s.Total
	s.Progress = 0
	s.Phase = PhaseIdle
	return s
}

// Tick consumes one second. It has no effect unless the countdown is running.
func (s CountdownState) Tick() CountdownState {
	if s.Phase != PhaseRunning {
		return s
	}

	s.Remaining--
	if s.Remaining <= 0 {
		s.Remaining = 0
		s.Progress = 100
		s.Phase = PhaseFinished
		return s
	}
	s.Progress = progress(s.Total, s.Remaining)
	return s
}

func progress(total, remaining int) float64 {
	if total <= 0 {
		return 0
	}
	return 100 * float64(total-remaining) / float64(total)
}
