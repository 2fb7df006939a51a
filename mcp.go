package lottiegrab

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jawish/lottiegrab/kit"
)

// RegisterMCP registers lottiegrab tools on an MCP server.
func (g *Grabber) RegisterMCP(srv *mcp.Server) {
	g.registerListTool(srv)
	g.registerGetTool(srv)
	g.registerCountTool(srv)
	g.registerClearTool(srv)
}

// inputSchema builds a JSON Schema object with type "object".
func inputSchema(properties map[string]any, required []string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

// --- list ---

type listRequest struct {
	SessionID string `json:"session_id,omitempty"`
}

func (g *Grabber) registerListTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "lottie_list",
		Description: "List discovered Lottie animations, newest first. Optionally scoped to one browsing session.",
		InputSchema: inputSchema(map[string]any{
			"session_id": map[string]any{"type": "string", "description": "Filter by browsing session (tab) ID"},
		}, nil),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*listRequest)
		if r.SessionID != "" {
			return g.st.AllForSession(ctx, r.SessionID)
		}
		return g.st.All(ctx)
	}

	decode := func(req *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var r listRequest
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		return &kit.MCPDecodeResult{Request: &r}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}

// --- get ---

type getRequest struct {
	Fingerprint string `json:"fingerprint"`
}

func (g *Grabber) registerGetTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "lottie_get",
		Description: "Get one discovered animation by fingerprint, including its decoded metadata.",
		InputSchema: inputSchema(map[string]any{
			"fingerprint": map[string]any{"type": "string", "description": "Animation fingerprint"},
		}, []string{"fingerprint"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*getRequest)
		rec, err := g.st.Get(ctx, r.Fingerprint)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			return map[string]string{"error": "animation not found"}, nil
		}
		return rec, nil
	}

	decode := func(req *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var r getRequest
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		return &kit.MCPDecodeResult{Request: &r}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}

// --- count ---

type countRequest struct {
	SessionID string `json:"session_id"`
}

func (g *Grabber) registerCountTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "lottie_count",
		Description: "Count animations discovered in one browsing session.",
		InputSchema: inputSchema(map[string]any{
			"session_id": map[string]any{"type": "string", "description": "Browsing session (tab) ID"},
		}, []string{"session_id"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*countRequest)
		n, err := g.st.CountForSession(ctx, r.SessionID)
		if err != nil {
			return nil, err
		}
		return map[string]any{"session_id": r.SessionID, "count": n}, nil
	}

	decode := func(req *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var r countRequest
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		return &kit.MCPDecodeResult{Request: &r}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}

// --- clear ---

type clearRequest struct {
	SessionID string `json:"session_id,omitempty"`
}

func (g *Grabber) registerClearTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "lottie_clear",
		Description: "Clear discovered animations for one browsing session, or everything when no session is given.",
		InputSchema: inputSchema(map[string]any{
			"session_id": map[string]any{"type": "string", "description": "Browsing session (tab) ID. Omit to clear all sessions."},
		}, nil),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*clearRequest)
		if r.SessionID != "" {
			if err := g.st.ClearSession(ctx, r.SessionID); err != nil {
				return nil, err
			}
			return map[string]string{"status": "cleared", "session_id": r.SessionID}, nil
		}
		if err := g.st.ClearAll(ctx); err != nil {
			return nil, err
		}
		return map[string]string{"status": "cleared"}, nil
	}

	decode := func(req *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var r clearRequest
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		return &kit.MCPDecodeResult{Request: &r}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}
