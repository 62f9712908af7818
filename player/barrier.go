package player

import (
	"sync"
	"sync/atomic"
)

type CompletionMode int

const (
	// CompleteOnLast reports a chord finished once every note has finished.
	CompleteOnLast CompletionMode = iota
	// CompleteOnFirst reports a chord finished as soon as any note has.
	CompleteOnFirst
)

func ParseCompletionMode(s string) CompletionMode {
	if s == "first" {
		return CompleteOnFirst
	}
	return CompleteOnLast
}

func (m CompletionMode) String() string {
	if m == CompleteOnFirst {
		return "first"
	}
	return "all"
}

// barrier turns n note completions into one chord completion.
type barrier struct {
	mode      CompletionMode
	remaining atomic.Int64
	fired     atomic.Bool
}

func newBarrier(mode CompletionMode, n int) *barrier {
	b := &barrier{mode: mode}
	b.remaining.Store(int64(n))
	return b
}

// arriver returns the callback for one note. Repeated calls from the same
// note count once. The returned func reports whether this arrival completed
// the chord.
func (b *barrier) arriver() func() bool {
	var once sync.Once
	return func() bool {
		completed := false
		once.Do(func() {
			completed = b.arrive()
		})
		return completed
	}
}

func (b *barrier) arrive() bool {
	left := b.remaining.Add(-1)
	if b.mode == CompleteOnFirst || left == 0 {
		return b.fired.CompareAndSwap(false, true)
	}
	return false
}
