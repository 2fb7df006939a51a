package engine

import "strings"

// Header is one response header. Lookups are case-insensitive and the first
// match wins when a name is duplicated.
type Header struct {
	Name  string
	Value string
}

// Exchange describes one completed HTTP request/response pair observed in a
// browsing session. It is supplied per event and not retained by the engine.
type Exchange struct {
	// SessionID identifies the owning tab (CDP target).
	SessionID  string
	URL        string
	Method     string
	StatusCode int
	Headers    []Header
	// FrameDepth is 0 for the top-level frame, 1 for sub-frames.
	FrameDepth int
	// DocumentURL is the tab's document URL at the time the exchange was
	// observed.
	DocumentURL string
}

func headerValue(headers []Header, name string) string {
	for _, h := range headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}
