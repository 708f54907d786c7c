package soter

import (
	"context"

	"github.com/tendermint/tendermint/libs/log"

	"github.com/soter-one/soter/errors"
)

// DefaultLogger is used for all contexts that have not set anything
// themselves.
var DefaultLogger = log.NewNopLogger()

// MaxCallDepth bounds re-entrant extension calls. A module install
// callback registering hooks is depth 2; anything past the bound is
// treated as runaway re-entry.
const MaxCallDepth = 8

type contextKey int

const (
	contextKeyCaller contextKey = iota
	contextKeyDepth
	contextKeyLogger
)

// WithCaller binds the apparent caller of the current operation.
// Setting the caller replaces any previously bound identity, so
// nested extension calls cannot retain the rights of their parent
// frame.
func WithCaller(ctx context.Context, addr Address) context.Context {
	return context.WithValue(ctx, contextKeyCaller, addr)
}

// GetCaller returns the apparent caller bound to this context.
// May be nil when no caller was set.
func GetCaller(ctx context.Context) Address {
	val, _ := ctx.Value(contextKeyCaller).(Address)
	return val
}

// WithNestedCall returns a context for a nested extension call made
// on behalf of addr. It rebinds the caller and increments the call
// depth, failing when the depth bound is exhausted.
func WithNestedCall(ctx context.Context, addr Address) (context.Context, error) {
	depth := GetCallDepth(ctx) + 1
	if depth > MaxCallDepth {
		return nil, errors.ErrLimit.Newf("call depth %d", depth)
	}
	ctx = context.WithValue(ctx, contextKeyDepth, depth)
	return WithCaller(ctx, addr), nil
}

// GetCallDepth returns the number of nested extension calls above the
// current frame. Zero for a direct call.
func GetCallDepth(ctx context.Context) int {
	val, _ := ctx.Value(contextKeyDepth).(int)
	return val
}

// WithLogger sets the logger for this context
func WithLogger(ctx context.Context, logger log.Logger) context.Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// GetLogger returns the logger bound to this context, or
// DefaultLogger when unset.
func GetLogger(ctx context.Context) log.Logger {
	if logger, ok := ctx.Value(contextKeyLogger).(log.Logger); ok {
		return logger
	}
	return DefaultLogger
}
