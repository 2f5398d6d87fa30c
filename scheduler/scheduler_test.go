package scheduler

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestAddCallEveryFiresRepeatedly(t *testing.T) {
	s := New(Config{})
	defer s.Close()

	var count int64
	s.AddCallEvery(10*time.Millisecond, func() { atomic.AddInt64(&count, 1) })

	time.Sleep(55 * time.Millisecond)

	if atomic.LoadInt64(&count) < 3 {
		t.Fatalf("expected at least 3 ticks, got %d", count)
	}
}

func TestRemoveStopsFutureTicks(t *testing.T) {
	s := New(Config{})
	defer s.Close()

	var count int64
	h := s.AddCallEvery(10*time.Millisecond, func() { atomic.AddInt64(&count, 1) })

	time.Sleep(25 * time.Millisecond)
	s.Remove(h)
	after := atomic.LoadInt64(&count)

	time.Sleep(40 * time.Millisecond)
	if got := atomic.LoadInt64(&count); got != after {
		t.Fatalf("expected no further ticks after Remove, before=%d after=%d", after, got)
	}
}

func TestRemoveNilHandleIsNoOp(t *testing.T) {
	s := New(Config{})
	defer s.Close()
	s.Remove(0)
	s.Remove(12345)
}

func TestIndependentHandles(t *testing.T) {
	s := New(Config{})
	defer s.Close()

	var a, b int64
	h1 := s.AddCallEvery(10*time.Millisecond, func() { atomic.AddInt64(&a, 1) })
	s.AddCallEvery(10*time.Millisecond, func() { atomic.AddInt64(&b, 1) })

	time.Sleep(25 * time.Millisecond)
	s.Remove(h1)
	aAfterRemove := atomic.LoadInt64(&a)

	time.Sleep(40 * time.Millisecond)
	if atomic.LoadInt64(&a) != aAfterRemove {
		t.Fatal("removed handle kept firing")
	}
	if atomic.LoadInt64(&b) <= aAfterRemove {
		t.Fatal("independent handle stopped firing too")
	}
}
