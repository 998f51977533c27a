package intel

import (
	"context"
	"fmt"
	"strings"

	console "github.com/strategicai/console/components/console"
)

// Repository adapts the platform client to the console panel repositories so
// prediction and alert panels render live data instead of demo rows.
type Repository struct {
	client Client
}

// NewRepository wraps the client.
func NewRepository(client Client) *Repository {
	return &Repository{client: client}
}

var (
	_ console.PredictionRepository = (*Repository)(nil)
	_ console.AlertRepository      = (*Repository)(nil)
)

// FetchPredictions routes per domain: supply-chain queries hit the PSCDO
// forecast endpoint, everything else the ARPE prediction engine.
func (r *Repository) FetchPredictions(ctx context.Context, query console.PredictionQuery) (console.PredictionReport, error) {
	if r.client == nil {
		return console.PredictionReport{}, fmt.Errorf("intel: client is required")
	}
	var (
		report PredictionReport
		err    error
	)
	if strings.EqualFold(query.Domain, "supply_chain") {
		report, err = r.client.PSCDOForecast(ctx, query.HorizonDays)
	} else {
		report, err = r.client.ARPEPredictions(ctx, PredictionQuery{
			Domain:      query.Domain,
			HorizonDays: query.HorizonDays,
			Limit:       query.Limit,
		})
	}
	if err != nil {
		return console.PredictionReport{}, err
	}
	rows := report.Rows
	if query.Limit > 0 && query.Limit < len(rows) {
		rows = rows[:query.Limit]
	}
	out := console.PredictionReport{
		Domain:     report.Domain,
		Confidence: report.Confidence,
		Rows:       make([]console.Prediction, len(rows)),
	}
	for i, row := range rows {
		out.Rows[i] = console.Prediction{
			Subject:     row.Subject,
			Probability: row.Probability,
			Impact:      row.Impact,
			Horizon:     row.Horizon,
		}
	}
	return out, nil
}

// FetchAlerts serves the console alert feed from DRAD.
func (r *Repository) FetchAlerts(ctx context.Context, query console.AlertQuery) ([]console.Alert, error) {
	if r.client == nil {
		return nil, fmt.Errorf("intel: client is required")
	}
	alerts, err := r.client.DRADAlerts(ctx, AlertQuery{
		Severities: query.Severities,
		Limit:      query.Limit,
	})
	if err != nil {
		return nil, err
	}
	out := make([]console.Alert, len(alerts))
	for i, alert := range alerts {
		out[i] = console.Alert{
			Severity: alert.Severity,
			Title:    alert.Title,
			Source:   alert.Source,
			At:       alert.At,
		}
	}
	return out, nil
}
