package browser

import (
	"context"
	"log/slog"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/jawish/lottiegrab/internal/engine"
)

// ResponseHandler receives one completed exchange observed in a session.
type ResponseHandler func(ctx context.Context, ex engine.Exchange)

// NavigateHandler receives a navigation-start for a session. frameDepth is
// 0 for the top-level frame, 1 for sub-frames.
type NavigateHandler func(ctx context.Context, sessionID string, frameDepth int)

// Pending request methods are capped per session; Chrome reuses request IDs
// rarely enough that overflow just drops dedup accuracy, not correctness.
const maxPendingRequests = 4096

// Session observes one tab's CDP event stream and translates it into
// exchanges. CDP reports the request method on requestWillBeSent and the
// response on responseReceived, so the method is held per request ID until
// the response (or a load failure) arrives.
type Session struct {
	id     string
	page   *rod.Page
	logger *slog.Logger

	mu      sync.Mutex
	methods map[proto.NetworkRequestID]string
	docURL  string
}

// AttachSession starts observing a page's network and frame events. The
// handlers are invoked from the event loop goroutine; it stops when ctx is
// cancelled or the page closes.
func AttachSession(ctx context.Context, page *rod.Page, logger *slog.Logger, onResponse ResponseHandler, onNavigate NavigateHandler) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{
		id:      string(page.TargetID),
		page:    page,
		logger:  logger,
		methods: make(map[proto.NetworkRequestID]string),
	}

	info, err := page.Info()
	if err == nil {
		s.docURL = info.URL
	}

	wait := page.Context(ctx).EachEvent(
		func(e *proto.NetworkRequestWillBeSent) { s.onRequest(e) },
		func(e *proto.NetworkLoadingFailed) { s.forget(e.RequestID) },
		func(e *proto.NetworkResponseReceived) { s.onResponse(ctx, e, onResponse) },
		func(e *proto.PageFrameNavigated) { s.onFrameNavigated(ctx, e, onNavigate) },
	)
	// wait blocks until ctx is cancelled or the page closes.
	go wait()

	logger.Debug("browser: session attached", "session", s.id)
	return s
}

// ID returns the session identifier (the CDP target ID).
func (s *Session) ID() string {
	return s.id
}

func (s *Session) onRequest(e *proto.NetworkRequestWillBeSent) {
	if e.Request == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.methods) >= maxPendingRequests {
		clear(s.methods)
	}
	s.methods[e.RequestID] = e.Request.Method
}

func (s *Session) forget(id proto.NetworkRequestID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.methods, id)
}

func (s *Session) onResponse(ctx context.Context, e *proto.NetworkResponseReceived, handler ResponseHandler) {
	// Only XHR and Fetch traffic can carry animation payloads worth
	// classifying; documents, scripts and media are noise here.
	if e.Type != proto.NetworkResourceTypeXHR && e.Type != proto.NetworkResourceTypeFetch {
		return
	}
	if e.Response == nil {
		return
	}

	s.mu.Lock()
	method, ok := s.methods[e.RequestID]
	if ok {
		delete(s.methods, e.RequestID)
	}
	docURL := s.docURL
	s.mu.Unlock()
	if !ok {
		method = "GET"
	}

	handler(ctx, engine.Exchange{
		SessionID:   s.id,
		URL:         e.Response.URL,
		Method:      method,
		StatusCode:  e.Response.Status,
		Headers:     []engine.Header{{Name: "Content-Type", Value: e.Response.MIMEType}},
		DocumentURL: docURL,
	})
}

func (s *Session) onFrameNavigated(ctx context.Context, e *proto.PageFrameNavigated, handler NavigateHandler) {
	if e.Frame == nil {
		return
	}

	depth := 1
	if e.Frame.ParentID == "" {
		depth = 0
		s.mu.Lock()
		s.docURL = e.Frame.URL
		clear(s.methods)
		s.mu.Unlock()
		s.logger.Debug("browser: top-level navigation", "session", s.id, "url", e.Frame.URL)
	}
	handler(ctx, s.id, depth)
}
