package console

import (
	"time"

	"github.com/go-echarts/go-echarts/v2/types"
)

var defaultPageDefinitions = []PageDefinition{
	{Code: "console.page.arpe", Name: "ARPE", Description: "Autonomous Regulatory Prediction Engine"},
	{Code: "console.page.ceis", Name: "CEIS", Description: "Composite Economic Intelligence System"},
	{Code: "console.page.pscdo", Name: "PSCDO", Description: "Predictive Supply Chain Disruption Oracle"},
	{Code: "console.page.qeso", Name: "QESO", Description: "Quantum-Enhanced Strategy Optimizer"},
	{Code: "console.page.snse", Name: "SNSE", Description: "Strategic Narrative Sentiment Engine"},
	{Code: "console.page.abme", Name: "ABME", Description: "Adaptive Behavioral Modeling Engine"},
	{Code: "console.page.drad", Name: "DRAD", Description: "Disinformation Risk Analysis & Detection"},
	{Code: "console.page.geopolitical", Name: "Geopolitical", Description: "Geopolitical risk monitoring"},
	{Code: "console.page.military", Name: "Military", Description: "Defense readiness overview"},
	{Code: "console.page.educational", Name: "Educational", Description: "Education sector intelligence"},
	{Code: "console.page.corporate", Name: "Corporate", Description: "Corporate strategy dashboards"},
	{Code: "console.page.compliance", Name: "Compliance", Description: "Compliance posture and audits"},
	{Code: "console.page.agents", Name: "Agents", Description: "Autonomous agent fleet"},
	{Code: "console.page.analytics", Name: "Analytics", Description: "Cross-domain analytics"},
}

var defaultPanelDefinitions = []PanelDefinition{
	{
		Code: "console.panel.metric_band",
		Name: "Band Metric",
		NameLocalized: map[string]string{
			"es": "Métrica de banda",
		},
		Description: "Single value re-randomized inside a fixed band",
		Category:    "metrics",
		Schema: map[string]any{
			"type":     "object",
			"required": []string{"label", "floor", "ceiling"},
			"properties": map[string]any{
				"label":           map[string]any{"type": "string", "minLength": 1},
				"unit":            map[string]any{"type": "string"},
				"floor":           map[string]any{"type": "number"},
				"ceiling":         map[string]any{"type": "number"},
				"refresh_seconds": refreshSecondsSchema(),
			},
			"additionalProperties": false,
		},
	},
	{
		Code: "console.panel.metric_walk",
		Name: "Walk Metric",
		NameLocalized: map[string]string{
			"es": "Métrica de deriva",
		},
		Description: "Clamped random-walk value with trend indicator",
		Category:    "metrics",
		Schema: map[string]any{
			"type":     "object",
			"required": []string{"label", "min", "max"},
			"properties": map[string]any{
				"label":           map[string]any{"type": "string", "minLength": 1},
				"unit":            map[string]any{"type": "string"},
				"start":           map[string]any{"type": "number"},
				"min":             map[string]any{"type": "number"},
				"max":             map[string]any{"type": "number"},
				"step":            map[string]any{"type": "number", "minimum": 0},
				"refresh_seconds": refreshSecondsSchema(),
			},
			"additionalProperties": false,
		},
	},
	{
		Code:        "console.panel.status_grid",
		Name:        "Status Grid",
		Description: "Component health grid",
		Category:    "status",
		Schema: map[string]any{
			"type":     "object",
			"required": []string{"components"},
			"properties": map[string]any{
				"components": map[string]any{
					"type":     "array",
					"minItems": 1,
					"items":    map[string]any{"type": "string"},
				},
				"refresh_seconds": refreshSecondsSchema(),
			},
			"additionalProperties": false,
		},
	},
	{
		Code:        "console.panel.alert_feed",
		Name:        "Alert Feed",
		Description: "Recent alerts across engines",
		Category:    "alerts",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"limit": map[string]any{"type": "integer", "minimum": 1, "maximum": 50, "default": 8},
				"severity": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string", "enum": []string{"info", "warning", "critical"}},
					"uniqueItems": true,
				},
			},
			"additionalProperties": false,
		},
	},
	{
		Code: "console.panel.activity_feed",
		Name: "Recent Activity",
		NameLocalized: map[string]string{
			"es": "Actividad reciente",
		},
		Description: "Latest operator actions",
		Category:    "activity",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"limit": map[string]any{"type": "integer", "minimum": 1, "maximum": 50, "default": 10},
			},
		},
	},
	{
		Code:        "console.panel.headline_morph",
		Name:        "Morphing Headline",
		Description: "Hero text cross-fading through a rotation",
		Category:    "shell",
		Schema: map[string]any{
			"type":     "object",
			"required": []string{"texts"},
			"properties": map[string]any{
				"texts": map[string]any{
					"type":     "array",
					"minItems": 2,
					"items":    map[string]any{"type": "string", "minLength": 1},
				},
				"morph_seconds":    map[string]any{"type": "number", "minimum": 0.1, "default": 1},
				"cooldown_seconds": map[string]any{"type": "number", "minimum": 0, "default": 0.5},
			},
			"additionalProperties": false,
		},
	},
	{
		Code:        "console.panel.predictions",
		Name:        "Prediction Table",
		Description: "Upstream forecasts ranked by probability",
		Category:    "intel",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"domain": map[string]any{
					"type":    "string",
					"enum":    []string{"regulatory", "economic", "supply_chain", "geopolitical", "behavioral"},
					"default": "regulatory",
				},
				"horizon_days": map[string]any{"type": "integer", "minimum": 1, "maximum": 365, "default": 30},
				"limit":        map[string]any{"type": "integer", "minimum": 1, "maximum": 20, "default": 5},
			},
			"additionalProperties": false,
		},
	},
	{
		Code:        "console.panel.line_chart",
		Name:        "Line Chart",
		Description: "Interactive line chart visualization.",
		Category:    "charts",
		Schema:      chartConfigSchema(true),
	},
	{
		Code:        "console.panel.bar_chart",
		Name:        "Bar Chart",
		Description: "Interactive bar chart visualization.",
		Category:    "charts",
		Schema:      chartConfigSchema(true),
	},
	{
		Code:        "console.panel.pie_chart",
		Name:        "Pie Chart",
		Description: "Interactive pie chart visualization.",
		Category:    "charts",
		Schema:      chartConfigSchema(false),
	},
	{
		Code:        "console.panel.gauge_chart",
		Name:        "Gauge Chart",
		Description: "Single-value gauge visualization.",
		Category:    "charts",
		Schema:      chartConfigSchema(false),
	},
	{
		Code: "console.panel.quick_actions",
		Name: "Quick Actions",
		NameLocalized: map[string]string{
			"es": "Acciones rápidas",
		},
		Description: "Common operator shortcuts",
		Category:    "actions",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"actions": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "object"},
				},
			},
		},
	},
}

func refreshSecondsSchema() map[string]any {
	return map[string]any{
		"type":    "integer",
		"minimum": 2,
		"maximum": 12,
		"default": 5,
	}
}

func chartSeriesSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"name", "data"},
		"properties": map[string]any{
			"name": map[string]any{
				"type":    "string",
				"default": "Series",
			},
			"data": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"oneOf": []map[string]any{
						{"type": "number"},
						{
							"type":     "object",
							"required": []string{"value"},
							"properties": map[string]any{
								"name":  map[string]any{"type": "string"},
								"value": map[string]any{"type": "number"},
							},
						},
					},
				},
			},
		},
	}
}

func chartConfigSchema(includeAxis bool) map[string]any {
	props := map[string]any{
		"title": map[string]any{
			"type":    "string",
			"default": "Chart",
		},
		"subtitle": map[string]any{
			"type": "string",
		},
		"series": map[string]any{
			"type":     "array",
			"items":    chartSeriesSchema(),
			"minItems": 1,
		},
		"theme": map[string]any{
			"type": "string",
			"enum": []string{
				string(types.ThemeWesteros),
				string(types.ThemeWalden),
				string(types.ThemeWonderland),
				string(types.ThemeChalk),
			},
		},
		"dynamic": map[string]any{
			"type":    "boolean",
			"default": false,
		},
		"refresh_endpoint": map[string]any{
			"type": "string",
		},
	}
	if includeAxis {
		props["x_axis"] = map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "string",
			},
			"default": []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
		}
	}
	return map[string]any{
		"type":       "object",
		"required":   []string{"series"},
		"properties": props,
	}
}

var defaultSeedConfigs = []AddPanelRequest{
	// ARPE
	{DefinitionID: "console.panel.predictions", PageCode: "console.page.arpe", Configuration: map[string]any{"domain": "regulatory", "horizon_days": 30, "limit": 5}},
	{DefinitionID: "console.panel.metric_band", PageCode: "console.page.arpe", Configuration: map[string]any{"label": "Prediction Accuracy", "unit": "%", "floor": 60, "ceiling": 80, "refresh_seconds": 4}},
	{DefinitionID: "console.panel.line_chart", PageCode: "console.page.arpe", Configuration: map[string]any{"title": "Regulatory Pressure Index", "series": []map[string]any{{"name": "Pressure", "data": []float64{42, 48, 51, 47, 55, 61, 58}}}}},

	// CEIS
	{DefinitionID: "console.panel.metric_walk", PageCode: "console.page.ceis", Configuration: map[string]any{"label": "Instability Score", "min": 20, "max": 80, "start": 45, "step": 3, "refresh_seconds": 6}},
	{DefinitionID: "console.panel.bar_chart", PageCode: "console.page.ceis", Configuration: map[string]any{"title": "Sector Exposure", "x_axis": []string{"Energy", "Finance", "Tech", "Agri", "Logistics"}, "series": []map[string]any{{"name": "Exposure", "data": []float64{62, 48, 71, 35, 54}}}}},
	{DefinitionID: "console.panel.alert_feed", PageCode: "console.page.ceis", Configuration: map[string]any{"limit": 6}},

	// PSCDO
	{DefinitionID: "console.panel.status_grid", PageCode: "console.page.pscdo", Configuration: map[string]any{"components": []string{"Tier-1 Suppliers", "Shipping Lanes", "Port Throughput", "Rail Corridors"}, "refresh_seconds": 8}},
	{DefinitionID: "console.panel.metric_band", PageCode: "console.page.pscdo", Configuration: map[string]any{"label": "Disruption Probability", "unit": "%", "floor": 10, "ceiling": 35, "refresh_seconds": 5}},
	{DefinitionID: "console.panel.predictions", PageCode: "console.page.pscdo", Configuration: map[string]any{"domain": "supply_chain", "horizon_days": 14, "limit": 4}},

	// QESO
	{DefinitionID: "console.panel.metric_walk", PageCode: "console.page.qeso", Configuration: map[string]any{"label": "Optimization Convergence", "unit": "%", "min": 70, "max": 99, "start": 85, "step": 2, "refresh_seconds": 3}},
	{DefinitionID: "console.panel.gauge_chart", PageCode: "console.page.qeso", Configuration: map[string]any{"title": "Solver Utilization", "series": []map[string]any{{"name": "Utilization", "data": []float64{72}}}}},
	{DefinitionID: "console.panel.quick_actions", PageCode: "console.page.qeso", Configuration: map[string]any{}},

	// SNSE
	{DefinitionID: "console.panel.status_grid", PageCode: "console.page.snse", Configuration: map[string]any{"components": []string{"Ingest Nodes", "Sentiment Models", "Narrative Graph", "Publisher Mesh"}, "refresh_seconds": 10}},
	{DefinitionID: "console.panel.metric_band", PageCode: "console.page.snse", Configuration: map[string]any{"label": "Narrative Volatility", "floor": 30, "ceiling": 70, "refresh_seconds": 4}},
	{DefinitionID: "console.panel.line_chart", PageCode: "console.page.snse", Configuration: map[string]any{"title": "Sentiment Drift", "series": []map[string]any{{"name": "Drift", "data": []float64{-2, 1, 4, 3, 7, 5, 9}}}}},

	// ABME
	{DefinitionID: "console.panel.metric_walk", PageCode: "console.page.abme", Configuration: map[string]any{"label": "Behavioral Drift", "min": 0, "max": 100, "start": 40, "step": 5, "refresh_seconds": 7}},
	{DefinitionID: "console.panel.pie_chart", PageCode: "console.page.abme", Configuration: map[string]any{"title": "Cohort Mix", "series": []map[string]any{{"name": "Cohorts", "data": []map[string]any{{"name": "Early Adopters", "value": 28}, {"name": "Mainstream", "value": 52}, {"name": "Laggards", "value": 20}}}}}},

	// DRAD
	{DefinitionID: "console.panel.alert_feed", PageCode: "console.page.drad", Configuration: map[string]any{"limit": 8, "severity": []string{"warning", "critical"}}},
	{DefinitionID: "console.panel.metric_band", PageCode: "console.page.drad", Configuration: map[string]any{"label": "Narrative Velocity", "floor": 40, "ceiling": 90, "refresh_seconds": 3}},
	{DefinitionID: "console.panel.bar_chart", PageCode: "console.page.drad", Configuration: map[string]any{"title": "Cluster Volume", "x_axis": []string{"Cluster A", "Cluster B", "Cluster C", "Cluster D"}, "series": []map[string]any{{"name": "Posts", "data": []float64{1240, 860, 610, 340}}}}},

	// Geopolitical
	{DefinitionID: "console.panel.metric_walk", PageCode: "console.page.geopolitical", Configuration: map[string]any{"label": "Flashpoint Index", "min": 10, "max": 90, "start": 55, "step": 4, "refresh_seconds": 6}},
	{DefinitionID: "console.panel.alert_feed", PageCode: "console.page.geopolitical", Configuration: map[string]any{"limit": 6, "severity": []string{"critical"}}},
	{DefinitionID: "console.panel.predictions", PageCode: "console.page.geopolitical", Configuration: map[string]any{"domain": "geopolitical", "horizon_days": 60, "limit": 5}},

	// Military
	{DefinitionID: "console.panel.status_grid", PageCode: "console.page.military", Configuration: map[string]any{"components": []string{"Theater North", "Theater Pacific", "Logistics Wing", "Cyber Command"}, "refresh_seconds": 12}},
	{DefinitionID: "console.panel.metric_band", PageCode: "console.page.military", Configuration: map[string]any{"label": "Readiness Index", "unit": "%", "floor": 75, "ceiling": 95, "refresh_seconds": 9}},
	{DefinitionID: "console.panel.gauge_chart", PageCode: "console.page.military", Configuration: map[string]any{"title": "Sortie Capacity", "series": []map[string]any{{"name": "Capacity", "data": []float64{81}}}}},

	// Educational
	{DefinitionID: "console.panel.metric_band", PageCode: "console.page.educational", Configuration: map[string]any{"label": "Cohort Engagement", "unit": "%", "floor": 55, "ceiling": 85, "refresh_seconds": 11}},
	{DefinitionID: "console.panel.line_chart", PageCode: "console.page.educational", Configuration: map[string]any{"title": "Completion Trend", "series": []map[string]any{{"name": "Completion", "data": []float64{64, 66, 69, 71, 70, 74, 78}}}}},

	// Corporate
	{DefinitionID: "console.panel.metric_walk", PageCode: "console.page.corporate", Configuration: map[string]any{"label": "Deal Flow Index", "min": 30, "max": 120, "start": 75, "step": 6, "refresh_seconds": 8}},
	{DefinitionID: "console.panel.bar_chart", PageCode: "console.page.corporate", Configuration: map[string]any{"title": "Pipeline by Region", "x_axis": []string{"AMER", "EMEA", "APAC"}, "series": []map[string]any{{"name": "Pipeline", "data": []float64{48, 37, 29}}}}},
	{DefinitionID: "console.panel.activity_feed", PageCode: "console.page.corporate", Configuration: map[string]any{"limit": 5}},

	// Compliance
	{DefinitionID: "console.panel.status_grid", PageCode: "console.page.compliance", Configuration: map[string]any{"components": []string{"SOC2", "GDPR", "AI Act", "Export Controls"}, "refresh_seconds": 12}},
	{DefinitionID: "console.panel.predictions", PageCode: "console.page.compliance", Configuration: map[string]any{"domain": "regulatory", "horizon_days": 90, "limit": 4}},
	{DefinitionID: "console.panel.metric_band", PageCode: "console.page.compliance", Configuration: map[string]any{"label": "Audit Coverage", "unit": "%", "floor": 80, "ceiling": 98, "refresh_seconds": 10}},

	// Agents
	{DefinitionID: "console.panel.status_grid", PageCode: "console.page.agents", Configuration: map[string]any{"components": []string{"Collector Fleet", "Analyst Agents", "Briefing Agents", "Watchdog"}, "refresh_seconds": 5}},
	{DefinitionID: "console.panel.metric_walk", PageCode: "console.page.agents", Configuration: map[string]any{"label": "Active Agents", "min": 40, "max": 160, "start": 96, "step": 8, "refresh_seconds": 4}},
	{DefinitionID: "console.panel.activity_feed", PageCode: "console.page.agents", Configuration: map[string]any{"limit": 8}},

	// Analytics
	{DefinitionID: "console.panel.line_chart", PageCode: "console.page.analytics", Configuration: map[string]any{"title": "Cross-Domain Signal", "series": []map[string]any{{"name": "Signal", "data": []float64{12, 19, 17, 24, 28, 26, 31}}}}},
	{DefinitionID: "console.panel.pie_chart", PageCode: "console.page.analytics", Configuration: map[string]any{"title": "Query Mix", "series": []map[string]any{{"name": "Queries", "data": []map[string]any{{"name": "Predictions", "value": 41}, {"name": "Simulations", "value": 33}, {"name": "Briefs", "value": 26}}}}}},
	{DefinitionID: "console.panel.gauge_chart", PageCode: "console.page.analytics", Configuration: map[string]any{"title": "Platform Load", "series": []map[string]any{{"name": "Load", "data": []float64{64}}}}},
	{DefinitionID: "console.panel.quick_actions", PageCode: "console.page.analytics", Configuration: map[string]any{}},
}

// DefaultPageDefinitions returns copies of built-in page definitions.
func DefaultPageDefinitions() []PageDefinition {
	out := make([]PageDefinition, len(defaultPageDefinitions))
	copy(out, defaultPageDefinitions)
	return out
}

// DefaultPageCodes returns the built-in page codes in display order.
func DefaultPageCodes() []string {
	out := make([]string, len(defaultPageDefinitions))
	for i, page := range defaultPageDefinitions {
		out[i] = page.Code
	}
	return out
}

// DefaultPanelDefinitions returns copies of built-in panel definitions.
func DefaultPanelDefinitions() []PanelDefinition {
	out := make([]PanelDefinition, len(defaultPanelDefinitions))
	copy(out, defaultPanelDefinitions)
	return out
}

// DefaultSeedPanels returns starter panel configurations.
func DefaultSeedPanels() []AddPanelRequest {
	out := make([]AddPanelRequest, len(defaultSeedConfigs))
	for i, cfg := range defaultSeedConfigs {
		copyCfg := cfg
		if cfg.StartAt != nil {
			start := *cfg.StartAt
			copyCfg.StartAt = &start
		}
		if cfg.EndAt != nil {
			end := *cfg.EndAt
			copyCfg.EndAt = &end
		}
		out[i] = copyCfg
	}
	return out
}

// DefaultPanelVisibility returns a permissive visibility configuration for
// seeds.
func DefaultPanelVisibility() PanelVisibility {
	now := time.Now().UTC()
	return PanelVisibility{
		StartAt: &now,
	}
}
