// Package lottiegrab discovers Lottie animation payloads in live browsing
// sessions. It drives Chrome via CDP, watches XHR and Fetch traffic in
// every tab, and routes qualifying responses through a classification
// engine that validates, deduplicates, and stores the animations it finds.
//
// lottiegrab observes, it does not interfere: candidate bodies are
// re-fetched out of band and the page never sees the difference.
package lottiegrab

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/jawish/lottiegrab/internal/browser"
	"github.com/jawish/lottiegrab/internal/engine"
	"github.com/jawish/lottiegrab/internal/fetcher"
	"github.com/jawish/lottiegrab/internal/sink"
	"github.com/jawish/lottiegrab/internal/store"
)

// Grabber is the top-level orchestrator. It manages the browser, the
// per-tab sessions, and the engine. Create one per lottiegrab instance.
type Grabber struct {
	cfg      *Config
	mgr      *browser.Manager
	st       *store.Store
	eng      *engine.Engine
	sinkR    *sink.Router
	mu       sync.Mutex
	sessions map[string]*browser.Session
	logger   *slog.Logger
}

// New creates a Grabber from configuration.
func New(cfg *Config, logger *slog.Logger, sinks ...sink.Sink) (*Grabber, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cfg.applyDefaults()

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("lottiegrab: open store: %w", err)
	}

	sinkR := sink.NewRouter(logger, sinks...)

	fopts := []fetcher.Option{
		fetcher.WithTimeout(cfg.Fetch.Timeout),
		fetcher.WithMaxBody(cfg.Fetch.MaxBody),
		fetcher.WithLogger(logger),
	}
	if cfg.Fetch.UserAgent != "" {
		fopts = append(fopts, fetcher.WithUserAgent(cfg.Fetch.UserAgent))
	}
	fetch := fetcher.New(fopts...)

	eng := engine.New(engine.Config{
		Store:          st,
		Fetcher:        fetch,
		Sink:           sinkR,
		DebounceWindow: cfg.Debounce.Window,
		Logger:         logger,
	})

	mgr := browser.NewManager(browser.Config{
		RemoteURL: cfg.Browser.Remote,
		Headful:   cfg.Browser.Headful,
		Logger:    logger,
	})

	return &Grabber{
		cfg:      cfg,
		mgr:      mgr,
		st:       st,
		eng:      eng,
		sinkR:    sinkR,
		sessions: make(map[string]*browser.Session),
		logger:   logger,
	}, nil
}

// Start launches the browser, adopts every existing tab, and begins
// watching for new ones. Configured URLs are opened in fresh tabs.
func (g *Grabber) Start(ctx context.Context) error {
	b, err := g.mgr.Start(ctx)
	if err != nil {
		return fmt.Errorf("lottiegrab: start browser: %w", err)
	}

	pages, err := b.Pages()
	if err != nil {
		g.logger.Warn("lottiegrab: list pages failed", "error", err)
	}
	for _, page := range pages {
		g.adopt(ctx, page)
	}

	go g.watchTargets(ctx, b)

	for _, u := range g.cfg.Browser.Open {
		if err := g.OpenAndWatch(ctx, u); err != nil {
			g.logger.Error("lottiegrab: open page failed", "url", u, "error", err)
		}
	}

	return nil
}

// OpenAndWatch opens a new tab on the URL and attaches a session to it.
func (g *Grabber) OpenAndWatch(ctx context.Context, pageURL string) error {
	page, err := g.mgr.OpenTab(ctx, pageURL)
	if err != nil {
		return err
	}
	g.adopt(ctx, page)
	g.logger.Info("lottiegrab: watching page", "url", pageURL)
	return nil
}

// Store exposes the record store for the presentation layer.
func (g *Grabber) Store() *store.Store {
	return g.st
}

// Stop drains in-flight pipelines and shuts everything down.
func (g *Grabber) Stop() {
	g.mgr.Close()
	g.eng.Close()
	g.sinkR.Close()
	if err := g.st.Close(); err != nil {
		g.logger.Warn("lottiegrab: close store", "error", err)
	}
}

// adopt attaches a session to a page unless one is already attached.
func (g *Grabber) adopt(ctx context.Context, page *rod.Page) {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := string(page.TargetID)
	if _, ok := g.sessions[id]; ok {
		return
	}
	g.sessions[id] = browser.AttachSession(ctx, page, g.logger,
		g.eng.OnResponse, g.eng.OnNavigate)
	g.logger.Debug("lottiegrab: session adopted", "session", id)
}

// watchTargets adopts tabs the user opens after startup.
func (g *Grabber) watchTargets(ctx context.Context, b *rod.Browser) {
	wait := b.Context(ctx).EachEvent(func(e *proto.TargetTargetCreated) {
		if e.TargetInfo.Type != proto.TargetTargetInfoTypePage {
			return
		}
		page, err := b.PageFromTarget(e.TargetInfo.TargetID)
		if err != nil {
			g.logger.Warn("lottiegrab: attach new tab failed",
				"target", e.TargetInfo.TargetID, "error", err)
			return
		}
		g.adopt(ctx, page)
	})
	wait()
}
