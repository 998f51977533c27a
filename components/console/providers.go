package console

import (
	"context"
)

var defaultProviders = map[string]Provider{
	"console.panel.metric_band":    NewBandMetricProvider(),
	"console.panel.metric_walk":    NewWalkMetricProvider(),
	"console.panel.status_grid":    NewStatusGridProvider(),
	"console.panel.alert_feed":     NewAlertFeedProvider(DemoAlertRepository{}),
	"console.panel.activity_feed":  newActivityFeedProvider(nil),
	"console.panel.headline_morph": NewHeadlineMorphProvider(),
	"console.panel.predictions":    NewPredictionTableProvider(DemoPredictionRepository{}),
	"console.panel.line_chart":     NewEChartsProvider("line"),
	"console.panel.bar_chart":      NewEChartsProvider("bar"),
	"console.panel.pie_chart":      NewEChartsProvider("pie"),
	"console.panel.gauge_chart":    NewEChartsProvider("gauge"),
	"console.panel.quick_actions": ProviderFunc(func(ctx context.Context, meta PanelContext) (PanelData, error) {
		simulateLabel := translateOrFallback(ctx, meta.Translator, "console.panel.quick_actions.run_simulation", meta.Viewer.Locale, "Run simulation", nil)
		briefLabel := translateOrFallback(ctx, meta.Translator, "console.panel.quick_actions.generate_brief", meta.Viewer.Locale, "Generate brief", nil)
		return PanelData{
			"actions": []map[string]any{
				{"label": simulateLabel, "route": "/console/simulations/new", "icon": "play"},
				{"label": briefLabel, "route": "/console/briefs/new", "icon": "file-text"},
			},
		}, nil
	}),
}

func newActivityFeedProvider(feed ActivityFeed) Provider {
	return ProviderFunc(func(ctx context.Context, meta PanelContext) (PanelData, error) {
		if feed == nil {
			feed = DefaultActivityFeed()
		}
		limit := intValue(meta.Instance.Configuration["limit"], 10)
		items, err := feed.Recent(ctx, meta.Viewer, limit)
		if err != nil {
			return nil, err
		}
		payload := make([]map[string]any, 0, len(items))
		for _, item := range items {
			payload = append(payload, map[string]any{
				"user":    item.User,
				"action":  item.Action,
				"details": item.Details,
				"ago":     item.Ago(),
			})
		}
		return PanelData{"items": payload}, nil
	})
}
