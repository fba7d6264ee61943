package currency

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

type fakeFetcher struct {
	calls int
	rates map[string]Rate
	err   error
}

func (f *fakeFetcher) Fetch(ctx context.Context, base string, currencies []string) (map[string]Rate, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.rates, nil
}

func liveRates() map[string]Rate {
	return map[string]Rate{
		"USD": {Code: "USD", Value: decimal.RequireFromString("1")},
		"EUR": {Code: "EUR", Value: decimal.RequireFromString("0.95")},
		"GBP": {Code: "GBP", Value: decimal.RequireFromString("0.81")},
		"INR": {Code: "INR", Value: decimal.RequireFromString("82.50")},
	}
}

func TestCacheHitAvoidsSecondFetch(t *testing.T) {
	fetcher := &fakeFetcher{rates: liveRates()}
	cache := NewCache(fetcher, "USD", time.Hour, testLogger())

	first := cache.GetRates(context.Background())
	second := cache.GetRates(context.Background())

	if fetcher.calls != 1 {
		t.Fatalf("expected exactly 1 fetch, got %d", fetcher.calls)
	}
	if !first.Success || first.Fallback {
		t.Fatalf("unexpected snapshot flags: %+v", first)
	}
	if !second.LastUpdated.Equal(first.LastUpdated) {
		t.Fatalf("cache hit returned a different snapshot: %v vs %v", second.LastUpdated, first.LastUpdated)
	}
}

func TestCacheRefreshesAfterWindow(t *testing.T) {
	fetcher := &fakeFetcher{rates: liveRates()}
	cache := NewCache(fetcher, "USD", time.Hour, testLogger())

	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return current }

	cache.GetRates(context.Background())
	current = current.Add(59 * time.Minute)
	cache.GetRates(context.Background())
	if fetcher.calls != 1 {
		t.Fatalf("fetch inside freshness window: got %d calls, want 1", fetcher.calls)
	}

	current = current.Add(2 * time.Minute)
	snap := cache.GetRates(context.Background())
	if fetcher.calls != 2 {
		t.Fatalf("expected refetch after expiry, got %d calls", fetcher.calls)
	}
	if !snap.LastUpdated.Equal(current) {
		t.Fatalf("refreshed snapshot timestamp = %v, want %v", snap.LastUpdated, current)
	}
}

func TestCacheServesFallbackOnFetchFailure(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("provider down")}
	cache := NewCache(fetcher, "USD", time.Hour, testLogger())

	snap := cache.GetRates(context.Background())

	if snap.Success {
		t.Fatalf("fallback snapshot must have Success=false")
	}
	if !snap.Fallback {
		t.Fatalf("fallback snapshot must have Fallback=true")
	}
	want := map[string]string{"USD": "1", "EUR": "0.92", "GBP": "0.79", "INR": "83.12"}
	if len(snap.Rates) != len(want) {
		t.Fatalf("fallback has %d rates, want %d", len(snap.Rates), len(want))
	}
	for code, value := range want {
		rate, ok := snap.Rates[code]
		if !ok {
			t.Fatalf("fallback missing %s", code)
		}
		if !rate.Value.Equal(decimal.RequireFromString(value)) {
			t.Fatalf("fallback %s = %s, want %s", code, rate.Value, value)
		}
	}
}

func TestCacheDoesNotCacheFallback(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("provider down")}
	cache := NewCache(fetcher, "USD", time.Hour, testLogger())

	cache.GetRates(context.Background())

	// provider recovers; the next call must retry instead of serving the
	// fallback for the rest of the window
	fetcher.err = nil
	fetcher.rates = liveRates()
	snap := cache.GetRates(context.Background())

	if fetcher.calls != 2 {
		t.Fatalf("expected retry after failure, got %d calls", fetcher.calls)
	}
	if !snap.Success || snap.Fallback {
		t.Fatalf("recovered snapshot flags wrong: %+v", snap)
	}
}

func TestCacheConcurrentReaders(t *testing.T) {
	fetcher := &fakeFetcher{rates: liveRates()}
	cache := NewCache(fetcher, "USD", time.Hour, testLogger())
	cache.GetRates(context.Background())

	done := make(chan Snapshot, 16)
	for i := 0; i < 16; i++ {
		go func() {
			done <- cache.GetRates(context.Background())
		}()
	}
	for i := 0; i < 16; i++ {
		snap := <-done
		if !snap.Success || len(snap.Rates) != 4 {
			t.Fatalf("reader observed incomplete snapshot: %+v", snap)
		}
	}
}
