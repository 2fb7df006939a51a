package sink

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"sync"

	"github.com/jawish/lottiegrab/internal/lottie"
)

// Stdout writes JSON lines to an io.Writer (default os.Stdout).
type Stdout struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewStdout creates a Stdout sink. If w is nil, os.Stdout is used.
func NewStdout(w io.Writer) *Stdout {
	if w == nil {
		w = os.Stdout
	}
	return &Stdout{enc: json.NewEncoder(w)}
}

func (s *Stdout) SendRecord(_ context.Context, rec lottie.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enc.Encode(envelope{Type: "record", Data: rec})
}

func (s *Stdout) SendCount(_ context.Context, sessionID string, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enc.Encode(envelope{Type: "count", Data: countUpdate{SessionID: sessionID, Count: count}})
}

func (s *Stdout) Close() error { return nil }
