package sink

import (
	"context"
	"log/slog"

	"github.com/jawish/lottiegrab/internal/lottie"
)

// Router fans out to all configured sinks. One sink error does not block
// the others; errors are logged and the first encountered is returned.
type Router struct {
	sinks  []Sink
	logger *slog.Logger
}

// NewRouter creates a fan-out router delivering to all sinks.
func NewRouter(logger *slog.Logger, sinks ...Sink) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{sinks: sinks, logger: logger}
}

func (r *Router) SendRecord(ctx context.Context, rec lottie.Record) error {
	var firstErr error
	for _, s := range r.sinks {
		if err := s.SendRecord(ctx, rec); err != nil {
			r.logger.Warn("sink: send record failed", "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (r *Router) SendCount(ctx context.Context, sessionID string, count int) error {
	var firstErr error
	for _, s := range r.sinks {
		if err := s.SendCount(ctx, sessionID, count); err != nil {
			r.logger.Warn("sink: send count failed", "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (r *Router) Close() error {
	var firstErr error
	for _, s := range r.sinks {
		if err := s.Close(); err != nil {
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
