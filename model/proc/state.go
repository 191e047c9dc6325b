package proc

// State represents the lifecycle state of a simulated process.
type State string

// Process state constants
const (
	StateNew        State = "NEW"
	StateReady      State = "READY"
	StateRunning    State = "RUNNING"
	StateWaiting    State = "WAITING"
	StateTerminated State = "TERMINATED"
)

// IsTerminal reports whether no further transitions are allowed from s.
func (s State) IsTerminal() bool {
	return s == StateTerminated
}

// IsLive reports whether the process still participates in scheduling.
func (s State) IsLive() bool {
	return s != StateTerminated
}

// Short returns the abbreviated state label used by the fixed-width
// process table rendering.
func (s State) Short() string {
	if s == StateTerminated {
		return "TERM"
	}
	return string(s)
}
