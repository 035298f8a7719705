package clock

// Reason explains why the clock is, or is not, advancing.
type Reason string

const (
	ReasonRunning  Reason = "running"
	ReasonTimeout  Reason = "timeout"
	ReasonStopped  Reason = "stopped"
	ReasonNoEvents Reason = "no_events"
)

// State is the authoritative clock snapshot from the last successful
// detail fetch. It is replaced wholesale on every fetch and never
// mutated in between; local extrapolation happens on top of it.
type State struct {
	Running        bool
	Reason         Reason
	Period         int
	CurrentSeconds int

	// TimeoutSecondsLeft is the remaining time of an active timeout,
	// relative to the snapshot instant.
	TimeoutSecondsLeft int

	// DriftSeconds and UsedEventTime are diagnostic provenance: how far
	// the snapshot was extrapolated and whether it was derived from
	// event times.
	DriftSeconds  int
	UsedEventTime bool
}

// Penalty is an active time-based suspension.
type Penalty struct {
	Team             string
	Player           string
	PlayerNumber     string
	Period           int
	RemainingSeconds int
	Active           bool
}
