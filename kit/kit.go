// Package kit holds small transport adapters shared by lottiegrab surfaces.
package kit

import "context"

// Endpoint is a transport-agnostic handler: a typed request in, a
// JSON-marshallable response out. Transport adapters decode their wire
// format and dispatch to an Endpoint.
type Endpoint func(ctx context.Context, req any) (any, error)
