package protocol

import "context"

// Handler serves one request kind. The returned response carries only the
// kind-specific payload; the dispatcher fills in ResponseID, State and Hash.
type Handler interface {
	Handle(ctx context.Context, req *Request) (*Response, error)
}

// Router binds handlers to request ids.
type Router interface {
	Register(id RequestID, handler Handler)
}
