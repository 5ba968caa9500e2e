// Package abort terminates the process on conditions that cannot be reported to a caller.
//
// It is reserved for refcount overflow and impossible allocation sizes. Returning a
// handle after either condition would risk a wrapped counter and a use-after-free,
// so the only safe outcome is to stop the process.
package abort

import (
	"context"
	"log/slog"
	"sync/atomic"

	"go.trai.ch/zerr"
)

var (
	logger atomic.Pointer[slog.Logger]
	hook   atomic.Pointer[func(error)]
)

// SetLogger sets the logger used to report the fatal condition before terminating.
// A nil logger restores slog.Default.
func SetLogger(l *slog.Logger) {
	logger.Store(l)
}

// SetHook installs fn to run after logging and before terminating, returning a func
// that restores the previous hook. Tests install a hook that panics so the fatal path
// can be observed without killing the test binary. If fn returns, the process still
// terminates.
func SetHook(fn func(error)) (restore func()) {
	var p *func(error)
	if fn != nil {
		p = &fn
	}
	prev := hook.Swap(p)
	return func() {
		hook.Store(prev)
	}
}

// Now reports err and terminates the process. It never returns.
func Now(err error) {
	l := logger.Load()
	if l == nil {
		l = slog.Default()
	}
	zerr.Log(context.Background(), l, zerr.Wrap(err, "arcstr: fatal"))

	if fn := hook.Load(); fn != nil {
		(*fn)(err)
	}

	terminate()
}
