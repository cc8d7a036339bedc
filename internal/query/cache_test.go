package query

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestGetFetchesOncePerStaleWindow(t *testing.T) {
	c := NewCache()
	now := time.Now()
	c.now = func() time.Time { return now }

	var calls int
	fetch := func(ctx context.Context) (any, error) {
		calls++
		return "payload", nil
	}

	for i := 0; i < 5; i++ {
		data, err := c.Get(context.Background(), "employees", DefaultStaleTime, fetch)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if data != "payload" {
			t.Fatalf("expected payload, got %v", data)
		}
	}
	if calls != 1 {
		t.Fatalf("expected 1 fetch within the stale window, got %d", calls)
	}

	now = now.Add(DefaultStaleTime + time.Second)
	if _, err := c.Get(context.Background(), "employees", DefaultStaleTime, fetch); err != nil {
		t.Fatalf("get after stale: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected refetch once stale, got %d calls", calls)
	}
}

func TestConcurrentGetsShareOneFetch(t *testing.T) {
	c := NewCache()

	var calls int32
	release := make(chan struct{})
	fetch := func(ctx context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return 42, nil
	}

	const n = 8
	var wg sync.WaitGroup
	results := make([]any, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			data, err := c.Get(context.Background(), "tasks", time.Minute, fetch)
			if err != nil {
				t.Errorf("get: %v", err)
			}
			results[i] = data
		}(i)
	}

	// Let every goroutine reach the cache before releasing the fetch.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected a single in-flight fetch, got %d", got)
	}
	for i, r := range results {
		if r != 42 {
			t.Fatalf("caller %d got %v, want 42", i, r)
		}
	}
}

func TestStaleResponseNeverOverwritesNewer(t *testing.T) {
	c := NewCache()

	block := make(chan struct{})
	started := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.Get(context.Background(), "risks", time.Minute, func(ctx context.Context) (any, error) {
			close(started)
			<-block
			return "old", nil
		})
	}()
	<-started

	// The mutation lands while the first fetch is still in flight.
	c.Invalidate("risks")

	data, err := c.Get(context.Background(), "risks", time.Minute, func(ctx context.Context) (any, error) {
		return "new", nil
	})
	if err != nil || data != "new" {
		t.Fatalf("post-invalidation get: %v, %v", data, err)
	}

	close(block)
	wg.Wait()

	res, ok := c.Peek("risks")
	if !ok {
		t.Fatal("expected a cached entry")
	}
	if res.Data != "new" {
		t.Fatalf("stale response overwrote fresh data: got %v", res.Data)
	}
}

func TestInvalidateForcesRefetch(t *testing.T) {
	c := NewCache()

	var calls int
	fetch := func(ctx context.Context) (any, error) {
		calls++
		return calls, nil
	}

	if _, err := c.Get(context.Background(), "alerts", time.Minute, fetch); err != nil {
		t.Fatalf("get: %v", err)
	}
	c.Invalidate("alerts")

	data, err := c.Get(context.Background(), "alerts", time.Minute, fetch)
	if err != nil {
		t.Fatalf("get after invalidate: %v", err)
	}
	if calls != 2 || data != 2 {
		t.Fatalf("expected a fresh fetch after invalidation, calls=%d data=%v", calls, data)
	}
}

func TestFailedRefreshKeepsStaleData(t *testing.T) {
	c := NewCache()

	if _, err := c.Get(context.Background(), "summary", time.Minute, func(ctx context.Context) (any, error) {
		return "good", nil
	}); err != nil {
		t.Fatalf("get: %v", err)
	}

	boom := errors.New("backend down")
	if _, err := c.Refresh(context.Background(), "summary", func(ctx context.Context) (any, error) {
		return nil, boom
	}); !errors.Is(err, boom) {
		t.Fatalf("expected refresh error, got %v", err)
	}

	res, ok := c.Peek("summary")
	if !ok {
		t.Fatal("expected a cached entry")
	}
	if res.Data != "good" {
		t.Fatalf("failed refresh dropped stale data: got %v", res.Data)
	}
	if !errors.Is(res.Err, boom) {
		t.Fatalf("expected the entry to surface the refresh error, got %v", res.Err)
	}
}

func TestMutateInvalidatesOnlyOnSuccess(t *testing.T) {
	c := NewCache()

	var calls int
	fetch := func(ctx context.Context) (any, error) {
		calls++
		return calls, nil
	}
	if _, err := c.Get(context.Background(), "tasks", time.Minute, fetch); err != nil {
		t.Fatalf("get: %v", err)
	}

	boom := errors.New("complete failed")
	err := c.Mutate(context.Background(), func(ctx context.Context) error { return boom }, "tasks")
	if !errors.Is(err, boom) {
		t.Fatalf("expected mutation error, got %v", err)
	}
	if _, err := c.Get(context.Background(), "tasks", time.Minute, fetch); err != nil {
		t.Fatalf("get: %v", err)
	}
	if calls != 1 {
		t.Fatalf("failed mutation must not invalidate, got %d fetches", calls)
	}

	if err := c.Mutate(context.Background(), func(ctx context.Context) error { return nil }, "tasks"); err != nil {
		t.Fatalf("mutate: %v", err)
	}
	if _, err := c.Get(context.Background(), "tasks", time.Minute, fetch); err != nil {
		t.Fatalf("get: %v", err)
	}
	if calls != 2 {
		t.Fatalf("successful mutation must invalidate, got %d fetches", calls)
	}
}

func TestClearDropsEverything(t *testing.T) {
	c := NewCache()
	if _, err := c.Get(context.Background(), "employees", time.Minute, func(ctx context.Context) (any, error) {
		return "x", nil
	}); err != nil {
		t.Fatalf("get: %v", err)
	}

	c.Clear()
	if _, ok := c.Peek("employees"); ok {
		t.Fatal("expected an empty cache after Clear")
	}
}

func TestTypedGet(t *testing.T) {
	c := NewCache()
	got, err := Get(context.Background(), c, "stats", time.Minute, func(ctx context.Context) ([]string, error) {
		return []string{"a", "b"}, nil
	})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 2 || got[0] != "a" {
		t.Fatalf("unexpected typed result: %v", got)
	}
}
