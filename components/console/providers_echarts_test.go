package console

import (
	"context"
	"strings"
	"testing"
)

type countingCache struct {
	hits map[string]int
}

func (c *countingCache) GetOrRender(key string, render func() (string, error)) (string, error) {
	if c.hits == nil {
		c.hits = map[string]int{}
	}
	c.hits[key]++
	return render()
}

func TestEChartsProviderRendersLineChart(t *testing.T) {
	cache := &countingCache{}
	provider := NewEChartsProvider("line", WithChartCache(cache))
	meta := PanelContext{
		Instance: PanelInstance{
			ID:           "chart-1",
			DefinitionID: "console.panel.line_chart",
			Configuration: map[string]any{
				"title": "Regulatory Pressure Index",
				"series": []any{
					map[string]any{
						"name": "Index",
						"data": []any{42.0, 47.5, 51.0},
					},
				},
				"x_axis": []any{"Jun", "Jul", "Aug"},
			},
		},
	}
	data, err := provider.Fetch(context.Background(), meta)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	html, ok := data["chart_html"].(string)
	if !ok || !strings.Contains(html, "echarts") {
		t.Fatalf("expected rendered chart html, got %#v", data["chart_html"])
	}
	if data["chart_type"] != "line" {
		t.Fatalf("expected chart_type line, got %v", data["chart_type"])
	}
	if len(cache.hits) != 1 {
		t.Fatalf("expected one cache key, got %#v", cache.hits)
	}
}

func TestEChartsProviderRequiresSeries(t *testing.T) {
	provider := NewEChartsProvider("bar")
	meta := PanelContext{
		Instance: PanelInstance{
			ID:            "chart-2",
			Configuration: map[string]any{"title": "Empty"},
		},
	}
	if _, err := provider.Fetch(context.Background(), meta); err == nil {
		t.Fatalf("expected error for missing series")
	}
}

func TestEChartsProviderRejectsUnknownChartType(t *testing.T) {
	provider := NewEChartsProvider("treemap")
	meta := PanelContext{
		Instance: PanelInstance{
			ID: "chart-3",
			Configuration: map[string]any{
				"series": []any{
					map[string]any{"name": "S", "data": []any{1}},
				},
			},
		},
	}
	if _, err := provider.Fetch(context.Background(), meta); err == nil {
		t.Fatalf("expected error for unsupported chart type")
	}
}

func TestParseChartSeriesShapes(t *testing.T) {
	series := parseChartSeries([]any{
		map[string]any{
			"name": "Threats",
			"data": []any{
				map[string]any{"name": "Cyber", "value": 12},
				map[string]any{"name": "Supply", "value": 7},
			},
		},
	})
	if len(series) != 1 || series[0].Name != "Threats" {
		t.Fatalf("unexpected series %#v", series)
	}
	if series[0].Points[0].Label != "Cyber" || series[0].Points[0].Value != 12 {
		t.Fatalf("unexpected point %#v", series[0].Points[0])
	}

	if got := parseChartSeries("not a series"); got != nil {
		t.Fatalf("expected nil for scalar input, got %#v", got)
	}
}

func TestInferredAxisLabels(t *testing.T) {
	labels := inferredAxisLabels([]ChartSeries{
		{Points: []ChartPoint{{Label: "Q1", Value: 1}, {Value: 2}, {Label: "Q3", Value: 3}}},
	})
	if len(labels) != 3 || labels[0] != "Q1" || labels[1] != "2" || labels[2] != "Q3" {
		t.Fatalf("unexpected labels %#v", labels)
	}
}

func TestValueHelpers(t *testing.T) {
	if stringValue(nil, "fallback") != "fallback" {
		t.Fatalf("stringValue fallback failed")
	}
	if float64Value("12.5") != 12.5 {
		t.Fatalf("float64Value string parse failed")
	}
	if intValue(7.0, 0) != 7 {
		t.Fatalf("intValue float conversion failed")
	}
	if !boolValue("TRUE") || boolValue("nope") {
		t.Fatalf("boolValue string handling failed")
	}
	if got := stringSliceValue([]any{"a", 1, "b"}); len(got) != 2 || got[1] != "b" {
		t.Fatalf("stringSliceValue filtering failed: %#v", got)
	}
}
