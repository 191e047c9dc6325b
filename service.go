package quantor

import (
	"sync"

	"github.com/viant/quantor/model/proc"
	"github.com/viant/quantor/service/engine"
	"github.com/viant/quantor/service/event"
	"github.com/viant/quantor/service/procfs"
	"github.com/viant/quantor/tracing"
)

// Service represents the quantor simulator service: it assembles the
// scheduling engine, the event pipeline and the text command interface
// and exposes them through a Runtime façade.
type Service struct {
	config        *Config
	eventService  *event.Service
	eventLogURL   *string
	logSink       *event.LogSink
	engineOptions []engine.Option
	statsListener func(proc.Stats)
	runtime       *Runtime
}

// New creates a quantor service.
func New(options ...Option) (*Service, error) {
	s := &Service{runtime: &Runtime{}}
	for _, option := range options {
		option(s)
	}
	if err := s.init(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Service) init() error {
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if err := s.config.Validate(); err != nil {
		return err
	}
	if s.eventLogURL != nil {
		s.config.EventLogURL = *s.eventLogURL
	}
	if s.config.Tracing.Enabled {
		if err := tracing.Init(s.config.Tracing.ServiceName, s.config.Tracing.ServiceVersion, s.config.Tracing.OutputFile); err != nil {
			return err
		}
	}

	if s.eventService == nil {
		eventService, err := event.New("memory")
		if err != nil {
			return err
		}
		s.eventService = eventService
	}
	// The untyped mirror must always be drained, otherwise a full queue
	// would eventually stall publication.
	if s.config.EventLogURL != "" {
		s.logSink = event.NewLogSink(s.config.EventLogURL)
		s.eventService.SetListener(s.logSink.Handle)
	} else {
		s.eventService.SetListener(func(*event.Event[any]) {})
	}

	transitions := &transitionLog{limit: transitionLogLimit}
	if err := event.SetListenerOf(s.eventService, func(e *event.Event[proc.Transition]) {
		transitions.append(e.Data)
	}); err != nil {
		return err
	}
	publisher, err := event.PublisherOf[proc.Transition](s.eventService)
	if err != nil {
		return err
	}

	engineOptions := append([]engine.Option{
		engine.WithConfig(s.config.Engine),
		engine.WithTransitionPublisher(publisher),
	}, s.engineOptions...)
	core, err := engine.New(engineOptions...)
	if err != nil {
		return err
	}
	if s.statsListener != nil {
		core.Tracker().OnChange(s.statsListener)
	}

	s.runtime.engine = core
	s.runtime.procfs = procfs.New(core)
	s.runtime.eventService = s.eventService
	s.runtime.transitions = transitions
	return nil
}

// Runtime returns the runtime façade.
func (s *Service) Runtime() *Runtime {
	return s.runtime
}

// Config returns the effective configuration.
func (s *Service) Config() *Config {
	return s.config
}

// OnStats registers (or replaces) the statistics callback. Passing nil
// disables it.
func (s *Service) OnStats(listener func(proc.Stats)) {
	s.runtime.engine.Tracker().OnChange(listener)
}

// EventLog returns the buffered transition log content; empty when no
// log sink is configured.
func (s *Service) EventLog() string {
	if s.logSink == nil {
		return ""
	}
	return s.logSink.Lines()
}

// transitionLogLimit bounds the in-memory transition history.
const transitionLogLimit = 256

// transitionLog keeps the most recent transitions for inspection via
// the runtime.
type transitionLog struct {
	mu      sync.Mutex
	entries []proc.Transition
	limit   int
}

func (l *transitionLog) append(t proc.Transition) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, t)
	if len(l.entries) > l.limit {
		l.entries = l.entries[len(l.entries)-l.limit:]
	}
}

func (l *transitionLog) list() []proc.Transition {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]proc.Transition, len(l.entries))
	copy(out, l.entries)
	return out
}
