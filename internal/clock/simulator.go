// Package clock simulates a running match clock between authoritative
// syncs. The last fetched snapshot is kept verbatim; a separately reset
// tick counter provides the display value, so extrapolation error never
// compounds past one fetch interval.
package clock

import (
	"context"
	"sync"
	"time"

	"github.com/chathedev/hhf-live/internal/timeline"
)

// Simulator holds one match's clock snapshot plus the ticks elapsed
// locally since that snapshot arrived. Safe for concurrent use.
type Simulator struct {
	mu        sync.Mutex
	state     State
	penalties []Penalty
	hasState  bool

	// gameTicks counts seconds of simulated match time; timeoutTicks
	// counts seconds inside an active timeout. Both reset on every
	// fresh snapshot.
	gameTicks    int
	timeoutTicks int
}

// NewSimulator creates a simulator with no snapshot yet.
func NewSimulator() *Simulator {
	return &Simulator{}
}

// SetSnapshot replaces the authoritative snapshot and resets the local
// tick counters, so drift never carries over between fetches.
func (s *Simulator) SetSnapshot(state State, penalties []Penalty) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.penalties = penalties
	s.hasState = true
	s.gameTicks = 0
	s.timeoutTicks = 0
}

// State returns the last authoritative snapshot and whether one exists.
func (s *Simulator) State() (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.hasState
}

// Active reports whether the local 1-second timer should be driving
// this simulator at all.
func (s *Simulator) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasState && (s.state.Running || s.state.Reason == ReasonTimeout)
}

// Tick advances the simulation by one second. The match clock only
// moves while the snapshot says it is running; the timeout countdown
// only moves during a timeout.
func (s *Simulator) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasState {
		return
	}
	if s.state.Running {
		s.gameTicks++
	}
	if s.state.Reason == ReasonTimeout {
		s.timeoutTicks++
	}
}

// Display renders the simulated match clock as "MM:SS". Without a
// snapshot it renders "00:00".
func (s *Simulator) Display() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasState {
		return timeline.FormatClock(0)
	}
	seconds := s.state.CurrentSeconds
	if s.state.Running {
		seconds += s.gameTicks
	}
	return timeline.FormatClock(seconds)
}

// TimeoutRemaining returns the simulated seconds left of an active
// timeout, floored at zero. Zero when no timeout is active.
func (s *Simulator) TimeoutRemaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasState || s.state.Reason != ReasonTimeout {
		return 0
	}
	remaining := s.state.TimeoutSecondsLeft - s.timeoutTicks
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ActivePenalties returns the penalties still running under the
// simulated clock. A penalty leaves the set once its simulated time has
// passed zero, independent of whether the backend has removed it yet,
// and penalties from another period are filtered out when period
// information is available.
func (s *Simulator) ActivePenalties() []Penalty {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasState {
		return nil
	}
	var out []Penalty
	for _, p := range s.penalties {
		if !p.Active {
			continue
		}
		if p.Period != 0 && s.state.Period != 0 && p.Period != s.state.Period {
			continue
		}
		remaining := p.RemainingSeconds - s.gameTicks
		if remaining < 0 {
			continue
		}
		p.RemainingSeconds = remaining
		out = append(out, p)
	}
	return out
}

// Run drives the simulator with a fixed 1-second ticker until the
// context is cancelled. Ticks are skipped while the snapshot says the
// clock is neither running nor in a timeout.
func (s *Simulator) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.Active() {
				s.Tick()
			}
		}
	}
}
