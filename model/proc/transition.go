package proc

// Transition describes one state change of a process, reported to the
// event service as it happens. The engine is the only producer; sinks
// (log file, listeners) never feed anything back.
type Transition struct {
	PID    int    `json:"pid"`
	Name   string `json:"name"`
	From   State  `json:"from"`
	To     State  `json:"to"`
	Reason string `json:"reason,omitempty"`
	AtMs   int64  `json:"atMs"`
}
