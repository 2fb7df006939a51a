package lottiegrab

import (
	"context"
	"io"
	"log/slog"

	"github.com/jawish/lottiegrab/internal/lottie"
	"github.com/jawish/lottiegrab/internal/sink"
)

// Sink is the output interface for discovered animations and count updates.
type Sink = sink.Sink

// Record is a discovered animation record.
type Record = lottie.Record

// NewStdoutSink creates a stdout JSON-lines sink.
func NewStdoutSink(w io.Writer) Sink {
	return sink.NewStdout(w)
}

// NewWebhookSink creates a webhook POST sink with retry.
func NewWebhookSink(url string, logger *slog.Logger) Sink {
	return sink.NewWebhook(url, sink.WithWebhookLogger(logger))
}

// RecordFunc is called for each discovered animation.
type RecordFunc = sink.RecordFunc

// CountFunc is called for each debounced count update.
type CountFunc = sink.CountFunc

// NewCallbackSink creates an in-process callback sink for embedding
// lottiegrab in another program without serialisation.
func NewCallbackSink(
	onRecord func(ctx context.Context, rec lottie.Record) error,
	onCount func(ctx context.Context, sessionID string, count int) error,
) Sink {
	return sink.NewCallback(onRecord, onCount)
}
