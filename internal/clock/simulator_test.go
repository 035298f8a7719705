package clock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatorDisplay(t *testing.T) {
	t.Run("running clock advances with ticks", func(t *testing.T) {
		sim := NewSimulator()
		sim.SetSnapshot(State{Running: true, Reason: ReasonRunning, CurrentSeconds: 1500}, nil)

		for i := 0; i < 7; i++ {
			sim.Tick()
		}

		assert.Equal(t, "25:07", sim.Display())
	})

	t.Run("stopped clock does not advance", func(t *testing.T) {
		sim := NewSimulator()
		sim.SetSnapshot(State{Running: false, Reason: ReasonStopped, CurrentSeconds: 900}, nil)

		for i := 0; i < 30; i++ {
			sim.Tick()
		}

		assert.Equal(t, "15:00", sim.Display())
	})

	t.Run("fresh snapshot resets local ticks immediately", func(t *testing.T) {
		sim := NewSimulator()
		sim.SetSnapshot(State{Running: true, Reason: ReasonRunning, CurrentSeconds: 1500}, nil)
		for i := 0; i < 42; i++ {
			sim.Tick()
		}

		sim.SetSnapshot(State{Running: true, Reason: ReasonRunning, CurrentSeconds: 1600}, nil)

		assert.Equal(t, "26:40", sim.Display(), "no drift carries over from before the snapshot")
	})

	t.Run("no snapshot renders zero", func(t *testing.T) {
		assert.Equal(t, "00:00", NewSimulator().Display())
	})
}

func TestSimulatorTimeout(t *testing.T) {
	t.Run("timeout counts down while the match clock is frozen", func(t *testing.T) {
		sim := NewSimulator()
		sim.SetSnapshot(State{Running: false, Reason: ReasonTimeout, CurrentSeconds: 1200, TimeoutSecondsLeft: 60}, nil)

		for i := 0; i < 10; i++ {
			sim.Tick()
		}

		assert.Equal(t, 50, sim.TimeoutRemaining())
		assert.Equal(t, "20:00", sim.Display())
	})

	t.Run("timeout floors at zero", func(t *testing.T) {
		sim := NewSimulator()
		sim.SetSnapshot(State{Reason: ReasonTimeout, TimeoutSecondsLeft: 5}, nil)

		for i := 0; i < 20; i++ {
			sim.Tick()
		}

		assert.Zero(t, sim.TimeoutRemaining())
	})

	t.Run("no timeout means zero remaining", func(t *testing.T) {
		sim := NewSimulator()
		sim.SetSnapshot(State{Running: true, Reason: ReasonRunning, TimeoutSecondsLeft: 30}, nil)

		assert.Zero(t, sim.TimeoutRemaining())
	})
}

func TestSimulatorPenalties(t *testing.T) {
	t.Run("countdown reaches zero then leaves the active set", func(t *testing.T) {
		sim := NewSimulator()
		sim.SetSnapshot(
			State{Running: true, Reason: ReasonRunning, Period: 2},
			[]Penalty{{Player: "J. Svensson", Period: 2, RemainingSeconds: 120, Active: true}},
		)

		for i := 0; i < 120; i++ {
			sim.Tick()
		}
		atZero := sim.ActivePenalties()
		require.Len(t, atZero, 1)
		assert.Zero(t, atZero[0].RemainingSeconds)

		sim.Tick()
		assert.Empty(t, sim.ActivePenalties(), "expired penalty is excluded regardless of backend state")
	})

	t.Run("penalties from another period are filtered", func(t *testing.T) {
		sim := NewSimulator()
		sim.SetSnapshot(
			State{Running: true, Reason: ReasonRunning, Period: 2},
			[]Penalty{
				{Player: "A", Period: 1, RemainingSeconds: 60, Active: true},
				{Player: "B", Period: 2, RemainingSeconds: 60, Active: true},
			},
		)

		active := sim.ActivePenalties()

		require.Len(t, active, 1)
		assert.Equal(t, "B", active[0].Player)
	})

	t.Run("inactive penalties are excluded", func(t *testing.T) {
		sim := NewSimulator()
		sim.SetSnapshot(
			State{Running: true, Reason: ReasonRunning},
			[]Penalty{{Player: "A", RemainingSeconds: 60, Active: false}},
		)

		assert.Empty(t, sim.ActivePenalties())
	})

	t.Run("snapshot values are never mutated", func(t *testing.T) {
		sim := NewSimulator()
		sim.SetSnapshot(
			State{Running: true, Reason: ReasonRunning},
			[]Penalty{{Player: "A", RemainingSeconds: 60, Active: true}},
		)

		for i := 0; i < 10; i++ {
			sim.Tick()
		}
		first := sim.ActivePenalties()
		second := sim.ActivePenalties()

		assert.Equal(t, first, second, "reads derive from the snapshot, not from prior reads")
		assert.Equal(t, 50, first[0].RemainingSeconds)
	})
}

func TestSimulatorActive(t *testing.T) {
	sim := NewSimulator()
	assert.False(t, sim.Active(), "no snapshot means nothing to tick")

	sim.SetSnapshot(State{Running: true, Reason: ReasonRunning}, nil)
	assert.True(t, sim.Active())

	sim.SetSnapshot(State{Running: false, Reason: ReasonTimeout}, nil)
	assert.True(t, sim.Active(), "timeout countdown still needs ticks")

	sim.SetSnapshot(State{Running: false, Reason: ReasonStopped}, nil)
	assert.False(t, sim.Active())
}
