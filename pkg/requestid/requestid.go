// ABOUTME: Request ID propagation through context
// ABOUTME: Set by the logging middleware and read by outgoing HTTP logging

package requestid

import (
	"context"

	"github.com/google/uuid"
)

// Header is the response and outgoing request header carrying the id.
const Header = "X-Request-ID"

type contextKey struct{}

// New returns a fresh request id.
func New() string {
	return uuid.New().String()
}

// WithID stores the request id in the context.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the request id stored in ctx, or "".
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}
