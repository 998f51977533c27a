package console

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestStaticActivityFeedLimits(t *testing.T) {
	feed := StaticActivityFeed{Items: []ActivityItem{
		{User: "a"}, {User: "b"}, {User: "c"},
	}}
	items, err := feed.Recent(context.Background(), ViewerContext{}, 2)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(items) != 2 || items[0].User != "a" {
		t.Fatalf("unexpected items %#v", items)
	}

	all, _ := feed.Recent(context.Background(), ViewerContext{}, 0)
	if len(all) != 3 {
		t.Fatalf("expected full list for non-positive limit, got %d", len(all))
	}
}

func TestActivityItemAgo(t *testing.T) {
	item := ActivityItem{At: time.Now().Add(-22 * time.Minute)}
	if !strings.Contains(item.Ago(), "minutes ago") {
		t.Fatalf("unexpected relative label %q", item.Ago())
	}
}

func TestDefaultActivityFeedHasEntries(t *testing.T) {
	items, err := DefaultActivityFeed().Recent(context.Background(), ViewerContext{}, 10)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(items) == 0 {
		t.Fatalf("expected demo entries")
	}
}
