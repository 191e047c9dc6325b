package proc

// Stats is the aggregated view of the process table computed on every
// scheduler tick. CPUUtilization is instantaneous: 100 when a process is
// RUNNING at the sampling instant, 0 otherwise.
type Stats struct {
	TotalProcesses      int     `json:"totalProcesses"`
	RunningProcesses    int     `json:"runningProcesses"`
	ReadyProcesses      int     `json:"readyProcesses"`
	WaitingProcesses    int     `json:"waitingProcesses"`
	TerminatedProcesses int     `json:"terminatedProcesses"`
	CPUUtilization      float64 `json:"cpuUtilization"`
	ContextSwitchCount  int     `json:"contextSwitchCount"`
	AverageWaitTimeMs   float64 `json:"averageWaitTimeMs"`
	AverageTurnaroundMs float64 `json:"averageTurnaroundMs"`
}

// Snapshot bundles immutable copies of the process table and the
// statistics captured at one instant. Consumers may retain it freely;
// nothing in it aliases engine-owned state.
type Snapshot struct {
	Processes      []Process `json:"processes"`
	Stats          Stats     `json:"stats"`
	TimeQuantumMs  int       `json:"timeQuantumMs"`
	AgingFactorSec int       `json:"agingFactorSec"`
}
