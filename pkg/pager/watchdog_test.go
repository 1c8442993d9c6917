package pager

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pagekit-go/pagekit/pkg/pagertest"
)

// idleTestTimeout sits just above the watchdog activation threshold.
const idleTestTimeout = 1100 * time.Millisecond

// idleMessenger signals the first recorded edit on a channel.
type idleMessenger struct {
	*pagertest.Messenger
	edited chan struct{}
	once   sync.Once
}

func newTestIdleMessenger() *idleMessenger {
	m := &idleMessenger{
		Messenger: pagertest.NewMessenger(),
		edited:    make(chan struct{}),
	}
	m.OnEdit = func(pagertest.Edit) {
		m.once.Do(func() { close(m.edited) })
	}
	return m
}

// sendIdlePaginator sends a paginator whose watchdog is armed with
// idleTestTimeout.
func sendIdlePaginator(t *testing.T, m *idleMessenger) *Paginator {
	t.Helper()
	p := New(m, []Item{
		ItemFromPage(pageOf("one")),
		ItemFromPage(pageOf("two")),
	}, WithIdleTimeout(idleTestTimeout))
	if _, err := p.Send(context.Background(), Trigger{Author: owner, ChannelID: "c1"}); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	return p
}

// TestWatchdogExpiresOnce tests that an idle watchdog fires its expire
// action exactly once and then exits.
func TestWatchdogExpiresOnce(t *testing.T) {
	var fired atomic.Int32
	done := make(chan struct{})
	w := newWatchdog(20*time.Millisecond, func(context.Context) error {
		fired.Add(1)
		close(done)
		return nil
	}, slog.Default())
	go w.run()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watchdog never fired")
	}

	// A late ping must not revive the loop or refire.
	w.Ping()
	time.Sleep(60 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Errorf("expire fired %d times, want 1", got)
	}
}

// TestWatchdogPingResets tests that activity pushes the deadline out.
func TestWatchdogPingResets(t *testing.T) {
	var fired atomic.Int32
	w := newWatchdog(80*time.Millisecond, func(context.Context) error {
		fired.Add(1)
		return nil
	}, slog.Default())
	go w.run()

	// Keep pinging inside the interval; the timer must not fire.
	for i := 0; i < 5; i++ {
		time.Sleep(40 * time.Millisecond)
		w.Ping()
	}
	if got := fired.Load(); got != 0 {
		t.Fatalf("expire fired %d times during activity, want 0", got)
	}

	// Go idle; now it must fire.
	deadline := time.After(2 * time.Second)
	for fired.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("watchdog never fired after activity stopped")
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
}

// TestWatchdogStopPreventsExpire tests that Stop wakes the wait and the
// expire action never runs.
func TestWatchdogStopPreventsExpire(t *testing.T) {
	var fired atomic.Int32
	w := newWatchdog(50*time.Millisecond, func(context.Context) error {
		fired.Add(1)
		return nil
	}, slog.Default())

	loopDone := make(chan struct{})
	go func() {
		w.run()
		close(loopDone)
	}()

	w.Stop()
	select {
	case <-loopDone:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not wake the watchdog loop")
	}
	time.Sleep(80 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Errorf("expire fired %d times after Stop, want 0", got)
	}
}

// TestWatchdogStopIsIdempotent tests that stopping twice is harmless.
func TestWatchdogStopIsIdempotent(t *testing.T) {
	w := newWatchdog(time.Hour, func(context.Context) error { return nil }, slog.Default())
	go w.run()
	w.Stop()
	w.Stop()
}

// TestWatchdogCoalescesPings tests that rapid pings collapse into a
// single pending wakeup instead of queueing.
func TestWatchdogCoalescesPings(t *testing.T) {
	w := newWatchdog(time.Hour, func(context.Context) error { return nil }, slog.Default())
	for i := 0; i < 100; i++ {
		w.Ping() // must never block, even with no consumer
	}
	if got := len(w.ping); got != 1 {
		t.Errorf("pending pings = %d, want 1", got)
	}
}

// TestPaginatorIdleTimeoutDisables tests the full idle flow: a paginator
// with an idle timeout and no interactions gets its controls disabled by
// a single edit.
func TestPaginatorIdleTimeoutDisables(t *testing.T) {
	if testing.Short() {
		t.Skip("idle timeout flow needs real time")
	}

	m := newTestIdleMessenger()
	p := sendIdlePaginator(t, m)

	select {
	case <-m.edited:
	case <-time.After(5 * time.Second):
		t.Fatal("idle timeout never disabled the message")
	}

	edit := m.LastEdit()
	for _, role := range []string{RoleFirst, RoleBack, RoleNext, RoleLast} {
		if b := findButton(t, edit.Payload, role); b == nil || !b.Disabled {
			t.Errorf("%s button not disabled after idle timeout", role)
		}
	}
	// No second edit may follow.
	time.Sleep(100 * time.Millisecond)
	if got := m.EditCount(); got != 1 {
		t.Errorf("edit count = %d after timeout, want 1", got)
	}
	if got := p.PageIndex(); got != 0 {
		t.Errorf("PageIndex() = %d, want 0", got)
	}
}

// TestStopThenTimeoutEditsOnce tests that a Stop racing a pending
// timeout disables the message exactly once from the watchdog's side.
func TestStopThenTimeoutEditsOnce(t *testing.T) {
	if testing.Short() {
		t.Skip("idle timeout flow needs real time")
	}

	m := newTestIdleMessenger()
	p := sendIdlePaginator(t, m)

	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	stopEdits := m.EditCount()

	// Wait out the original interval; the invalidated watchdog must not
	// add an edit of its own.
	time.Sleep(idleTestTimeout + 300*time.Millisecond)
	if got := m.EditCount(); got != stopEdits {
		t.Errorf("edit count grew from %d to %d after Stop", stopEdits, got)
	}
}
