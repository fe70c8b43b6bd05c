// Package logging keeps the rest of the server decoupled from a concrete
// logging backend. Components receive a Logger and derive child loggers
// with With("module", ...).
package logging

import "context"

// Logger is a leveled, structured logger. The trailing arguments are
// alternating key/value pairs; the context travels with every record so
// handler-installed attributes are not lost.
type Logger interface {
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a logger whose records always carry the given pairs.
	With(args ...any) Logger
}
