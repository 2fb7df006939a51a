// Package sink defines output backends for discovered animations and count
// display updates.
package sink

import (
	"context"

	"github.com/jawish/lottiegrab/internal/lottie"
)

// Sink is the output interface. Implementations deliver committed records
// and per-session count updates to different backends (stdout, webhook,
// in-process callback).
type Sink interface {
	SendRecord(ctx context.Context, rec lottie.Record) error
	SendCount(ctx context.Context, sessionID string, count int) error
	Close() error
}

// envelope wraps every emitted payload with its kind.
type envelope struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// countUpdate is the wire shape of a count display update.
type countUpdate struct {
	SessionID string `json:"session_id"`
	Count     int    `json:"count"`
}
