package pager

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// expireEditTimeout bounds the disable edit performed when the idle
// timer fires.
const expireEditTimeout = 10 * time.Second

// watchdog disables a paginator's controls after an idle interval. It
// runs as a single background goroutine per paginator. The ping signal
// is level-triggered: rapid pings before the wait resumes collapse into
// one timer reset.
type watchdog struct {
	interval time.Duration
	expire   func(ctx context.Context) error
	logger   *slog.Logger

	ping    chan struct{} // 1-buffered; send = set, receive = clear
	stopped atomic.Bool
}

func newWatchdog(interval time.Duration, expire func(ctx context.Context) error, logger *slog.Logger) *watchdog {
	return &watchdog{
		interval: interval,
		expire:   expire,
		logger:   logger,
		ping:     make(chan struct{}, 1),
	}
}

// Ping resets the idle timer. Safe to call from any goroutine; pings
// while one is already pending coalesce.
func (w *watchdog) Ping() {
	select {
	case w.ping <- struct{}{}:
	default:
	}
}

// Stop invalidates the watchdog and wakes its wait immediately so the
// loop exits without sitting out a stale timer. Idempotent.
func (w *watchdog) Stop() {
	w.stopped.Store(true)
	w.Ping()
}

// run is the suspend-wait loop: wait up to interval for a ping; restart
// the wait on ping, disable the message on timeout. The loop exits
// terminally after a timeout or a Stop — a stopped watchdog honors no
// further pings.
func (w *watchdog) run() {
	timer := time.NewTimer(w.interval)
	defer timer.Stop()

	for {
		select {
		case <-w.ping:
			if w.stopped.Load() {
				return
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.interval)

		case <-timer.C:
			// Lose the race against Stop cleanly: whoever flips the flag
			// first owns the disable edit.
			if !w.stopped.CompareAndSwap(false, true) {
				return
			}
			ctx, cancel := context.WithTimeout(context.Background(), expireEditTimeout)
			err := w.expire(ctx)
			cancel()
			if err != nil {
				w.logger.Error("idle disable edit failed", "error", err)
			}
			return
		}
	}
}
