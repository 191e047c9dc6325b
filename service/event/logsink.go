package event

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/quantor/model/proc"
)

// LogSink renders every event as one timestamped line and persists the
// accumulated log through the abstract file storage. It is a sink only –
// nothing in the core ever reads the log back.
type LogSink struct {
	fs  afs.Service
	url string
	mu  sync.Mutex
	buf bytes.Buffer
}

// NewLogSink creates a sink writing to the given storage URL (e.g.
// file:///var/log/quantor/sched_stats.log or a relative path).
func NewLogSink(url string) *LogSink {
	return &LogSink{fs: afs.New(), url: url}
}

// Handle formats and buffers one event, then flushes the log. Designed
// to be registered via Service.SetListener.
func (s *LogSink) Handle(e *Event[any]) {
	if e == nil || e.Context == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	line := s.formatLine(e)
	s.buf.WriteString(line)
	s.buf.WriteByte('\n')
	// Storage upload replaces the object, so write the whole buffer.
	_ = s.fs.Upload(context.Background(), s.url, file.DefaultFileOsMode, bytes.NewReader(s.buf.Bytes()))
}

func (s *LogSink) formatLine(e *Event[any]) string {
	stamp := e.CreatedAt.Format("2006-01-02T15:04:05.000Z07:00")
	switch data := e.Data.(type) {
	case proc.Transition:
		return fmt.Sprintf("%s [%s] pid=%d name=%s %s -> %s %s",
			stamp, e.Context.EventType, data.PID, data.Name, data.From, data.To, data.Reason)
	default:
		return fmt.Sprintf("%s [%s] pid=%d %s.%s",
			stamp, e.Context.EventType, e.Context.PID, e.Context.Service, e.Context.Method)
	}
}

// Lines returns a copy of the buffered log content.
func (s *LogSink) Lines() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}
