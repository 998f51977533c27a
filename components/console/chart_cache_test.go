package console

import (
	"errors"
	"testing"
	"time"
)

func TestChartCacheMemoizesRenders(t *testing.T) {
	cache := NewChartCache(time.Minute)
	calls := 0
	render := func() (string, error) {
		calls++
		return "<div>chart</div>", nil
	}
	for i := 0; i < 3; i++ {
		html, err := cache.GetOrRender("k", render)
		if err != nil {
			t.Fatalf("GetOrRender returned error: %v", err)
		}
		if html != "<div>chart</div>" {
			t.Fatalf("unexpected html %q", html)
		}
	}
	if calls != 1 {
		t.Fatalf("expected single render, got %d", calls)
	}
}

func TestChartCachePropagatesRenderErrors(t *testing.T) {
	cache := NewChartCache(time.Minute)
	wantErr := errors.New("render failed")
	if _, err := cache.GetOrRender("k", func() (string, error) { return "", wantErr }); !errors.Is(err, wantErr) {
		t.Fatalf("expected render error, got %v", err)
	}
	// Errors are never cached.
	html, err := cache.GetOrRender("k", func() (string, error) { return "ok", nil })
	if err != nil || html != "ok" {
		t.Fatalf("expected retry to succeed, got %q %v", html, err)
	}
}

func TestChartCacheZeroTTLDisablesCaching(t *testing.T) {
	cache := NewChartCache(0)
	calls := 0
	render := func() (string, error) {
		calls++
		return "x", nil
	}
	_, _ = cache.GetOrRender("k", render)
	_, _ = cache.GetOrRender("k", render)
	if calls != 2 {
		t.Fatalf("expected renders to bypass cache, got %d calls", calls)
	}
}

func TestConfigHashIsDeterministic(t *testing.T) {
	a := configHash(map[string]any{"label": "A", "floor": 1})
	b := configHash(map[string]any{"label": "A", "floor": 1})
	if a != b {
		t.Fatalf("expected deterministic hash, got %q vs %q", a, b)
	}
	if configHash(nil) != "empty" {
		t.Fatalf("expected empty sentinel for nil config")
	}
	if configHash(map[string]any{"label": "B"}) == a {
		t.Fatalf("expected different configs to hash differently")
	}
}
