package quantor

import (
	"github.com/viant/quantor/model/proc"
	"github.com/viant/quantor/service/engine"
	"github.com/viant/quantor/service/event"
	"github.com/viant/quantor/tracing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option customizes the quantor service.
type Option func(s *Service)

// WithConfig sets the full configuration.
func WithConfig(config *Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithEventService sets the event service.
func WithEventService(service *event.Service) Option {
	return func(s *Service) {
		s.eventService = service
	}
}

// WithEngineOptions passes additional options to the engine constructor.
func WithEngineOptions(options ...engine.Option) Option {
	return func(s *Service) {
		s.engineOptions = append(s.engineOptions, options...)
	}
}

// WithEventLogURL overrides the transition log destination.
func WithEventLogURL(url string) Option {
	return func(s *Service) {
		s.eventLogURL = &url
	}
}

// WithStatsListener registers a callback invoked with every statistics
// refresh; typical consumers are display layers.
func WithStatsListener(listener func(proc.Stats)) Option {
	return func(s *Service) {
		s.statsListener = listener
	}
}

// WithTracing configures OpenTelemetry tracing. If outputFile is empty
// the stdout exporter is used; otherwise traces are written to the
// supplied file path. Safe to call multiple times – the first successful
// initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom
// SpanExporter, enabling backends other than the built-in stdout
// exporter.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
