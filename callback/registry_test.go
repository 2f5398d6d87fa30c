package callback

import "testing"

func TestSubscribeInvokeOrder(t *testing.T) {
	var r Registry[func(int)]
	var got []int

	r.Subscribe(func(v int) { got = append(got, v*10) })
	r.Subscribe(func(v int) { got = append(got, v*100) })

	r.Each(func(fn func(int)) { fn(1) })

	if len(got) != 2 || got[0] != 10 || got[1] != 100 {
		t.Fatalf("unexpected invocation order/results: %v", got)
	}
}

func TestUnsubscribeNoOp(t *testing.T) {
	var r Registry[func()]
	r.Unsubscribe(0)
	r.Unsubscribe(999)
	if !r.Empty() {
		t.Fatal("expected empty registry")
	}
}

func TestUnsubscribeRemovesSubscriber(t *testing.T) {
	var r Registry[func()]
	h := r.Subscribe(func() {})
	if r.Empty() {
		t.Fatal("expected non-empty after subscribe")
	}
	r.Unsubscribe(h)
	if !r.Empty() {
		t.Fatal("expected empty after unsubscribe")
	}
}

func TestSubscribeDuringIterationIsDeferred(t *testing.T) {
	var r Registry[func()]
	var calls int

	r.Subscribe(func() {
		calls++
		r.Subscribe(func() { calls++ })
	})

	r.Each(func(fn func()) { fn() })
	if calls != 1 {
		t.Fatalf("expected added subscriber to be deferred, calls=%d", calls)
	}

	calls = 0
	r.Each(func(fn func()) { fn() })
	if calls != 2 {
		t.Fatalf("expected deferred subscriber to run on next iteration, calls=%d", calls)
	}
}

func TestUnsubscribeDuringIterationTakesEffectImmediately(t *testing.T) {
	var r Registry[func()]
	var secondCalled bool
	var h2 Handle

	r.Subscribe(func() { r.Unsubscribe(h2) })
	h2 = r.Subscribe(func() { secondCalled = true })

	r.Each(func(fn func()) { fn() })

	if secondCalled {
		t.Fatal("expected second subscriber to be skipped after immediate unsubscribe")
	}
	if r.Len() != 1 {
		t.Fatalf("expected only the first subscriber left registered, len=%d", r.Len())
	}
}
