package cache

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestGetMissingKey(t *testing.T) {
	c := New()

	if _, found := c.Get("nope"); found {
		t.Fatal("expected miss for key that was never set")
	}
}

func TestSetGet(t *testing.T) {
	c := New()
	c.Set("k", "v", time.Minute, 0)

	v, found := c.Get("k")
	if !found {
		t.Fatal("expected hit")
	}
	if v.(string) != "v" {
		t.Fatalf("got %v, want v", v)
	}
}

func TestAbsoluteExpiration(t *testing.T) {
	c := New()
	c.Set("k", "v", 30*time.Millisecond, 0)

	if _, found := c.Get("k"); !found {
		t.Fatal("expected hit before the absolute deadline")
	}

	time.Sleep(50 * time.Millisecond)

	if _, found := c.Get("k"); found {
		t.Fatal("expected miss after the absolute deadline")
	}
}

func TestSlidingKeptAliveByReads(t *testing.T) {
	c := New()
	c.Set("k", "v", time.Second, 100*time.Millisecond)

	// Touch well inside the idle window three times; the entry must
	// survive past its original sliding deadline.
	for i := 0; i < 3; i++ {
		time.Sleep(50 * time.Millisecond)
		if _, found := c.Get("k"); !found {
			t.Fatalf("expected hit on touch %d", i)
		}
	}
}

func TestSlidingExpiresWhenIdle(t *testing.T) {
	c := New()
	c.Set("k", "v", time.Second, 50*time.Millisecond)

	time.Sleep(100 * time.Millisecond)

	if _, found := c.Get("k"); found {
		t.Fatal("expected miss after sitting idle past the sliding deadline")
	}
}

func TestSlidingNeverOutlivesAbsolute(t *testing.T) {
	c := New()
	c.Set("k", "v", 150*time.Millisecond, 100*time.Millisecond)

	// Keep touching; the absolute deadline must still evict.
	deadline := time.Now().Add(300 * time.Millisecond)
	for time.Now().Before(deadline) {
		c.Get("k")
		time.Sleep(40 * time.Millisecond)
	}

	if _, found := c.Get("k"); found {
		t.Fatal("reads must not extend the absolute deadline")
	}
}

// A reader holding an entry with a sliding deadline refreshes it on the
// way out. That refresh must not re-insert a key the invalidator removed
// in between, or stale data would outlive the eviction.
func TestRemoveWinsOverConcurrentSlidingRefresh(t *testing.T) {
	c := New()

	stop := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					c.Get("k")
				}
			}
		}()
	}
	defer func() {
		close(stop)
		wg.Wait()
	}()

	for i := 0; i < 10000; i++ {
		c.Set("k", i, time.Minute, 30*time.Second)
		c.Remove("k")
		if _, found := c.Get("k"); found {
			t.Fatalf("iteration %d: entry came back after Remove", i)
		}
	}
}

func TestRemove(t *testing.T) {
	c := New()
	c.Set("a", 1, time.Minute, 0)
	c.Set("b", 2, time.Minute, 0)

	c.Remove("a", "never_existed")

	if _, found := c.Get("a"); found {
		t.Fatal("expected a to be evicted")
	}
	if _, found := c.Get("b"); !found {
		t.Fatal("expected b to survive")
	}
}

func TestFlush(t *testing.T) {
	c := New()
	c.Set("a", 1, time.Minute, 0)
	c.Set("b", 2, time.Minute, 0)

	c.Flush()

	if _, found := c.Get("a"); found {
		t.Fatal("expected empty cache after flush")
	}
}

func TestFetchComputesOnce(t *testing.T) {
	c := New()
	calls := 0
	fn := func() ([]string, error) {
		calls++
		return []string{"x"}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := Fetch(c, "k", time.Minute, 0, fn)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0] != "x" {
			t.Fatalf("got %v, want [x]", got)
		}
	}

	if calls != 1 {
		t.Fatalf("fn ran %d times, want 1", calls)
	}
}

func TestFetchErrorsAreNotCached(t *testing.T) {
	c := New()
	calls := 0
	fn := func() (int, error) {
		calls++
		return 0, errors.New("store down")
	}

	for i := 0; i < 2; i++ {
		if _, err := Fetch(c, "k", time.Minute, 0, fn); err == nil {
			t.Fatal("expected error")
		}
	}

	if calls != 2 {
		t.Fatalf("fn ran %d times, want 2 (errors must not be cached)", calls)
	}
	if _, found := c.Get("k"); found {
		t.Fatal("a failed fetch must leave no entry behind")
	}
}

func TestFetchTypeMismatchRecomputes(t *testing.T) {
	c := New()
	c.Set("k", "a string", time.Minute, 0)

	got, err := Fetch(c, "k", time.Minute, 0, func() (int, error) {
		return 42, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 42 {
		t.Fatalf("got %d, want 42", got)
	}
}
