package procfs

import (
	"context"

	"github.com/viant/quantor/model/proc"
)

// Controller is the slice of the engine surface the text interface
// drives.
type Controller interface {
	CreateProcess(ctx context.Context, name string, priority, burstMs int) (proc.Process, error)
	WaitFor(ctx context.Context, pid, durationMs int) error
	Snapshot(ctx context.Context) proc.Snapshot
}

// Service translates line commands into controller calls and snapshots
// into status reports.
type Service struct {
	controller Controller
}

// New creates a procfs service over the supplied controller.
func New(controller Controller) *Service {
	return &Service{controller: controller}
}

// Write parses and executes one command line. The returned error doubles
// as the caller's diagnostic; a successful command returns nil.
func (s *Service) Write(ctx context.Context, line string) error {
	command, err := Parse([]byte(line))
	if err != nil {
		return err
	}
	switch command.Kind {
	case KindNew:
		_, err = s.controller.CreateProcess(ctx, command.Name, command.Priority, command.BurstMs)
	case KindWait:
		err = s.controller.WaitFor(ctx, command.PID, command.WaitMs)
	}
	return err
}

// Read renders the current scheduler status report.
func (s *Service) Read(ctx context.Context) string {
	return Render(s.controller.Snapshot(ctx))
}
