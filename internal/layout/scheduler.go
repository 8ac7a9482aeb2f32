package layout

import (
	"sync"
	"time"
)

// Scheduler hands out frame subscriptions. A simulation holds at most one.
type Scheduler interface {
	Subscribe() Subscription
}

type Subscription interface {
	C() <-chan time.Time
	// Cancel is synchronous, no frame is delivered on C after it returns.
	Cancel()
}

// DefaultFrameInterval is roughly one display refresh.
const DefaultFrameInterval = 16 * time.Millisecond

// FrameClock delivers frames at a fixed interval using a time.Ticker per subscriber.
type FrameClock struct {
	interval time.Duration
}

func NewFrameClock(interval time.Duration) *FrameClock {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &FrameClock{interval: interval}
}

func (f *FrameClock) Subscribe() Subscription {
	return &tickerSub{t: time.NewTicker(f.interval)}
}

type tickerSub struct {
	t *time.Ticker
}

func (s *tickerSub) C() <-chan time.Time {
	return s.t.C
}

func (s *tickerSub) Cancel() {
	s.t.Stop()
}

// ManualClock only delivers a frame when Fire is called. Used in tests and by
// anything that wants to step a live view by hand.
type ManualClock struct {
	mu   sync.Mutex
	subs map[*manualSub]struct{}
}

func NewManualClock() *ManualClock {
	return &ManualClock{subs: make(map[*manualSub]struct{})}
}

func (m *ManualClock) Subscribe() Subscription {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := &manualSub{clock: m, c: make(chan time.Time, 1)}
	m.subs[s] = struct{}{}
	return s
}

// Fire offers one frame to every live subscriber. A subscriber that hasn't consumed
// its last frame doesn't get a second one.
func (m *ManualClock) Fire() {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	for s := range m.subs {
		select {
		case s.c <- now:
		default:
		}
	}
}

// Subscribers returns the number of live subscriptions.
func (m *ManualClock) Subscribers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subs)
}

type manualSub struct {
	clock *ManualClock
	c     chan time.Time
}

func (s *manualSub) C() <-chan time.Time {
	return s.c
}

func (s *manualSub) Cancel() {
	s.clock.mu.Lock()
	defer s.clock.mu.Unlock()
	delete(s.clock.subs, s)
	// Drop a frame that was already queued.
	select {
	case <-s.c:
	default:
	}
}
