package console

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// PredictionRepository loads forecasts from the upstream intelligence
// platform (or a demo stand-in).
type PredictionRepository interface {
	FetchPredictions(ctx context.Context, query PredictionQuery) (PredictionReport, error)
}

// AlertRepository loads recent alerts per domain.
type AlertRepository interface {
	FetchAlerts(ctx context.Context, query AlertQuery) ([]Alert, error)
}

// PredictionQuery describes the requested forecast slice.
type PredictionQuery struct {
	Domain      string
	HorizonDays int
	Limit       int
}

// Prediction is a single upstream forecast row.
type Prediction struct {
	Subject     string
	Probability float64
	Impact      string
	Horizon     time.Time
}

// PredictionReport carries forecast rows plus aggregate confidence.
type PredictionReport struct {
	Domain     string
	Confidence float64
	Rows       []Prediction
}

// AlertQuery filters the alert feed.
type AlertQuery struct {
	Severities []string
	Limit      int
}

// Alert is one feed entry.
type Alert struct {
	Severity string
	Title    string
	Source   string
	At       time.Time
}

type predictionProvider struct {
	repo PredictionRepository
}

// NewPredictionTableProvider renders upstream forecasts as a table panel.
func NewPredictionTableProvider(repo PredictionRepository) Provider {
	return &predictionProvider{repo: repo}
}

func (p *predictionProvider) Fetch(ctx context.Context, meta PanelContext) (PanelData, error) {
	if p.repo == nil {
		return nil, fmt.Errorf("prediction provider: repository is required")
	}
	cfg := meta.Instance.Configuration
	query := PredictionQuery{
		Domain:      strings.ToLower(stringValue(cfg["domain"], "regulatory")),
		HorizonDays: intValue(cfg["horizon_days"], 30),
		Limit:       intValue(cfg["limit"], 5),
	}
	report, err := p.repo.FetchPredictions(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("prediction provider: %w", err)
	}
	rows := make([]map[string]any, 0, len(report.Rows))
	for _, row := range report.Rows {
		rows = append(rows, map[string]any{
			"subject":     row.Subject,
			"probability": row.Probability,
			"impact":      row.Impact,
			"horizon":     row.Horizon,
		})
	}
	return PanelData{
		"domain":     report.Domain,
		"confidence": report.Confidence,
		"rows":       rows,
	}, nil
}

type alertFeedProvider struct {
	repo AlertRepository
}

// NewAlertFeedProvider renders the alert feed panel.
func NewAlertFeedProvider(repo AlertRepository) Provider {
	return &alertFeedProvider{repo: repo}
}

func (p *alertFeedProvider) Fetch(ctx context.Context, meta PanelContext) (PanelData, error) {
	if p.repo == nil {
		return nil, fmt.Errorf("alert feed provider: repository is required")
	}
	cfg := meta.Instance.Configuration
	query := AlertQuery{
		Severities: stringSliceValue(cfg["severity"]),
		Limit:      intValue(cfg["limit"], 8),
	}
	alerts, err := p.repo.FetchAlerts(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("alert feed provider: %w", err)
	}
	items := make([]map[string]any, 0, len(alerts))
	for _, alert := range alerts {
		items = append(items, map[string]any{
			"severity": alert.Severity,
			"title":    alert.Title,
			"source":   alert.Source,
			"at":       alert.At,
		})
	}
	return PanelData{"items": items}, nil
}

// DemoPredictionRepository serves canned forecasts for demo deployments.
type DemoPredictionRepository struct{}

// FetchPredictions returns a deterministic slice per domain.
func (DemoPredictionRepository) FetchPredictions(_ context.Context, query PredictionQuery) (PredictionReport, error) {
	horizon := time.Now().AddDate(0, 0, query.HorizonDays)
	rows := []Prediction{
		{Subject: "EU AI Act enforcement wave", Probability: 0.87, Impact: "high", Horizon: horizon},
		{Subject: "Semiconductor export control update", Probability: 0.74, Impact: "high", Horizon: horizon.AddDate(0, 0, -7)},
		{Subject: "Carbon disclosure rule expansion", Probability: 0.61, Impact: "medium", Horizon: horizon.AddDate(0, 0, -12)},
		{Subject: "Cross-border data transfer ruling", Probability: 0.55, Impact: "medium", Horizon: horizon.AddDate(0, 0, -3)},
		{Subject: "Biotech licensing framework revision", Probability: 0.42, Impact: "low", Horizon: horizon.AddDate(0, 0, -18)},
	}
	if query.Limit > 0 && query.Limit < len(rows) {
		rows = rows[:query.Limit]
	}
	return PredictionReport{
		Domain:     query.Domain,
		Confidence: 0.81,
		Rows:       rows,
	}, nil
}

// DemoAlertRepository serves canned alerts for demo deployments.
type DemoAlertRepository struct{}

// FetchAlerts returns recent demo alerts filtered by severity.
func (DemoAlertRepository) FetchAlerts(_ context.Context, query AlertQuery) ([]Alert, error) {
	now := time.Now()
	all := []Alert{
		{Severity: "critical", Title: "SNSE oracle detected tier-1 supplier outage", Source: "SNSE", At: now.Add(-9 * time.Minute)},
		{Severity: "warning", Title: "ARPE confidence drift on regulatory model", Source: "ARPE", At: now.Add(-26 * time.Minute)},
		{Severity: "warning", Title: "DRAD narrative cluster gaining velocity", Source: "DRAD", At: now.Add(-41 * time.Minute)},
		{Severity: "info", Title: "QESO optimization queue drained", Source: "QESO", At: now.Add(-1 * time.Hour)},
		{Severity: "critical", Title: "Geopolitical flashpoint index above threshold", Source: "Geopolitical", At: now.Add(-2 * time.Hour)},
		{Severity: "info", Title: "ABME behavioral baseline refreshed", Source: "ABME", At: now.Add(-3 * time.Hour)},
	}
	filtered := make([]Alert, 0, len(all))
	for _, alert := range all {
		if len(query.Severities) > 0 && !containsFold(query.Severities, alert.Severity) {
			continue
		}
		filtered = append(filtered, alert)
	}
	if query.Limit > 0 && query.Limit < len(filtered) {
		filtered = filtered[:query.Limit]
	}
	return filtered, nil
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(v, target) {
			return true
		}
	}
	return false
}
