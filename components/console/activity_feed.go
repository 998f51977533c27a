package console

import (
	"context"
	"time"

	"github.com/dustin/go-humanize"
)

// ActivityItem represents a recent operator action displayed by the feed panel.
type ActivityItem struct {
	User    string
	Action  string
	Details string
	At      time.Time
}

// Ago renders the item timestamp as a relative label ("22 minutes ago").
func (item ActivityItem) Ago() string {
	return humanize.Time(item.At)
}

// ActivityFeed fetches recent activity entries for the current viewer.
type ActivityFeed interface {
	Recent(ctx context.Context, viewer ViewerContext, limit int) ([]ActivityItem, error)
}

// StaticActivityFeed returns fixed entries useful for demos/tests.
type StaticActivityFeed struct {
	Items []ActivityItem
}

// Recent returns up to limit items from the static list.
func (f StaticActivityFeed) Recent(_ context.Context, _ ViewerContext, limit int) ([]ActivityItem, error) {
	if limit <= 0 || limit >= len(f.Items) {
		return append([]ActivityItem{}, f.Items...), nil
	}
	return append([]ActivityItem{}, f.Items[:limit]...), nil
}

// DefaultActivityFeed provides placeholder entries for the demo panel.
func DefaultActivityFeed() ActivityFeed {
	now := time.Now()
	return StaticActivityFeed{
		Items: []ActivityItem{
			{User: "Operations Duty Officer", Action: "acknowledged a DRAD escalation", Details: "DRAD · Disinformation cluster #4411", At: now.Add(-4 * time.Minute)},
			{User: "Analyst Cell Bravo", Action: "pinned the CEIS composite index", Details: "CEIS · Economic instability watch", At: now.Add(-18 * time.Minute)},
			{User: "Compliance Desk", Action: "exported the quarterly audit trail", Details: "Compliance · SOC2 evidence pack", At: now.Add(-47 * time.Minute)},
			{User: "Simulation Runner", Action: "completed a QESO optimization pass", Details: "QESO · Portfolio scenario 12", At: now.Add(-2 * time.Hour)},
			{User: "Watch Floor", Action: "closed geopolitical alert #9021", Details: "Geopolitical · Strait shipping lane", At: now.Add(-5 * time.Hour)},
		},
	}
}
