// Package engine implements the response classification and deduplication
// core: it inspects completed exchanges observed in a browsing session,
// runs candidate bodies through one of two decode pipelines, and commits
// validated animation records into the session-scoped store.
package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jawish/lottiegrab/idgen"
	"github.com/jawish/lottiegrab/internal/lottie"
)

// RecordStore is the durable record store the engine commits into.
type RecordStore interface {
	Put(ctx context.Context, rec *lottie.Record) error
	Has(ctx context.Context, fingerprint string) (bool, error)
	CountForSession(ctx context.Context, sessionID string) (int, error)
	ClearSession(ctx context.Context, sessionID string) error
}

// BodyFetcher re-retrieves candidate response bodies.
type BodyFetcher interface {
	Bytes(ctx context.Context, url, method string) ([]byte, error)
	JSON(ctx context.Context, url, method string) (any, error)
}

// Sink receives committed records and count display updates.
type Sink interface {
	SendRecord(ctx context.Context, rec lottie.Record) error
	SendCount(ctx context.Context, sessionID string, count int) error
}

// Config assembles an Engine.
type Config struct {
	Store   RecordStore
	Fetcher BodyFetcher
	Sink    Sink
	// DebounceWindow is the count notifier's quiescence window.
	// Default: 500ms.
	DebounceWindow time.Duration
	Logger         *slog.Logger
}

// Engine is the orchestrator wiring classification, pipelines, dedup and
// notification. Per fingerprint it moves Idle → InFlight → {Committed |
// Idle}; a top-level navigation moves every Committed fingerprint of the
// session back to Idle in bulk.
type Engine struct {
	store    RecordStore
	fetch    BodyFetcher
	sink     Sink
	guard    *inFlight
	notifier *notifier
	logger   *slog.Logger
	wg       sync.WaitGroup
}

// New creates an Engine.
func New(cfg Config) *Engine {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.DebounceWindow <= 0 {
		cfg.DebounceWindow = 500 * time.Millisecond
	}

	e := &Engine{
		store:  cfg.Store,
		fetch:  cfg.Fetcher,
		sink:   cfg.Sink,
		guard:  newInFlight(),
		logger: cfg.Logger,
	}
	e.notifier = newNotifier(cfg.DebounceWindow, e.fireCount)
	return e
}

// OnResponse handles one completed exchange. Classification runs
// synchronously (so the in-flight marker is registered before the next
// event is handled); the chosen pipeline runs in its own goroutine.
func (e *Engine) OnResponse(ctx context.Context, ex Exchange) {
	v, fp := e.classify(ctx, ex)
	switch v {
	case rawCandidate:
		e.wg.Add(1)
		go func() {
			defer e.wg.Done()
			e.processRaw(ctx, ex, fp)
		}()
	case archiveCandidate:
		e.wg.Add(1)
		go func() {
			defer e.wg.Done()
			e.processArchive(ctx, ex, fp)
		}()
	}
}

// OnNavigate handles a navigation-start for a session. Only top-level
// navigations (frame depth 0) clear the session's records; in-flight
// pipelines for the old page are not aborted, so a late commit may linger
// until the next navigation.
func (e *Engine) OnNavigate(ctx context.Context, sessionID string, frameDepth int) {
	if frameDepth != 0 {
		return
	}
	if err := e.store.ClearSession(ctx, sessionID); err != nil {
		e.logger.Error("engine: clear session failed", "session", sessionID, "error", err)
		return
	}
	e.logger.Debug("engine: session cleared", "session", sessionID)
}

// Wait blocks until every in-flight pipeline has finished.
func (e *Engine) Wait() {
	e.wg.Wait()
}

// Close drains in-flight pipelines and stops the count notifier.
func (e *Engine) Close() {
	e.wg.Wait()
	e.notifier.Close()
}

// commit writes a fully-populated record, emits it, and touches the count
// notifier for the owning session.
func (e *Engine) commit(ctx context.Context, ex Exchange, fp string, rec *lottie.Record, fromArchive bool) {
	rec.ID = idgen.New()
	rec.Fingerprint = fp
	rec.SessionID = ex.SessionID
	rec.LottieURL = ex.URL
	rec.TabURL = ex.DocumentURL
	rec.FromArchive = fromArchive
	rec.DiscoveredAt = time.Now().UnixMilli()

	if err := e.store.Put(ctx, rec); err != nil {
		e.logger.Error("engine: commit failed", "fingerprint", fp, "error", err)
		return
	}
	if err := e.sink.SendRecord(ctx, *rec); err != nil {
		e.logger.Warn("engine: send record failed", "fingerprint", fp, "error", err)
	}
	e.notifier.Touch(ex.SessionID)

	e.logger.Info("engine: animation discovered",
		"url", ex.URL, "session", ex.SessionID, "archive", fromArchive)
}

func (e *Engine) fireCount(sessionID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	n, err := e.store.CountForSession(ctx, sessionID)
	if err != nil {
		e.logger.Warn("engine: count failed", "session", sessionID, "error", err)
		return
	}
	if err := e.sink.SendCount(ctx, sessionID, n); err != nil {
		e.logger.Warn("engine: send count failed", "session", sessionID, "error", err)
	}
}
