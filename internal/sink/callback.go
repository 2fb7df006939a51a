package sink

import (
	"context"

	"github.com/jawish/lottiegrab/internal/lottie"
)

// RecordFunc is called for each committed record.
type RecordFunc func(ctx context.Context, rec lottie.Record) error

// CountFunc is called for each count display update.
type CountFunc func(ctx context.Context, sessionID string, count int) error

// Callback delivers events via Go function calls, the in-process path for
// embedding lottiegrab in a larger binary. Either handler may be nil.
type Callback struct {
	onRecord RecordFunc
	onCount  CountFunc
}

// NewCallback creates a Callback sink.
func NewCallback(onRecord RecordFunc, onCount CountFunc) *Callback {
	return &Callback{onRecord: onRecord, onCount: onCount}
}

func (c *Callback) SendRecord(ctx context.Context, rec lottie.Record) error {
	if c.onRecord != nil {
		return c.onRecord(ctx, rec)
	}
	return nil
}

func (c *Callback) SendCount(ctx context.Context, sessionID string, count int) error {
	if c.onCount != nil {
		return c.onCount(ctx, sessionID, count)
	}
	return nil
}

func (c *Callback) Close() error { return nil }
