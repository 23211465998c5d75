package ratelimiter

import (
	"context"

	"go.uber.org/zap"
)

// loggerKey is an unexported context key, following the teacher's
// "logger lives on the context" convention (wpool.go's lg.FromContext
// call sites) without needing the teacher's own zlog wrapper package,
// whose API isn't present in the retrieval pack — go.uber.org/zap,
// the library zlog itself wraps, is used directly instead.
type loggerKey struct{}

// withLogger attaches l to ctx. The key is unexported, so only this
// package can read the logger back, through loggerFrom, from ctx or any
// context derived from it (including each job's context).
func withLogger(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFrom returns the logger attached to ctx, or a no-op logger if
// none was attached.
func loggerFrom(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok && l != nil {
		return l
	}
	return zap.NewNop()
}
