package intel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// TokenSource supplies the bearer token for outgoing requests. It runs per
// request so rotated tokens take effect without rebuilding the client.
type TokenSource func(ctx context.Context) (string, error)

// StaticToken returns a TokenSource for a fixed token.
func StaticToken(token string) TokenSource {
	return func(context.Context) (string, error) {
		return token, nil
	}
}

// HTTPConfig configures the HTTP intel client.
type HTTPConfig struct {
	BaseURL    string
	Token      TokenSource
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// HTTPClient talks to the Strategic AI Platform via REST endpoints.
type HTTPClient struct {
	baseURL string
	token   TokenSource
	client  *http.Client
	logger  *zap.Logger
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client capable of hitting the live platform API.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("intel: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		client:  httpClient,
		logger:  logger,
	}, nil
}

// ARPEPredictions queries the regulatory prediction engine.
func (c *HTTPClient) ARPEPredictions(ctx context.Context, query PredictionQuery) (PredictionReport, error) {
	var resp predictionResponse
	if err := c.do(ctx, http.MethodPost, "/api/arpe/predictions", query, &resp); err != nil {
		return PredictionReport{}, err
	}
	return resp.toReport(), nil
}

// CEISIndex fetches the current composite economic index.
func (c *HTTPClient) CEISIndex(ctx context.Context) (IndexReport, error) {
	var resp IndexReport
	if err := c.do(ctx, http.MethodGet, "/api/ceis/index", nil, &resp); err != nil {
		return IndexReport{}, err
	}
	return resp, nil
}

// PSCDOForecast fetches supply-chain disruption forecasts.
func (c *HTTPClient) PSCDOForecast(ctx context.Context, horizonDays int) (PredictionReport, error) {
	req := PredictionQuery{Domain: "supply_chain", HorizonDays: horizonDays}
	var resp predictionResponse
	if err := c.do(ctx, http.MethodPost, "/api/pscdo/forecast", req, &resp); err != nil {
		return PredictionReport{}, err
	}
	return resp.toReport(), nil
}

// SNSEStatus fetches subsystem health for the narrative sentiment engine.
func (c *HTTPClient) SNSEStatus(ctx context.Context) (StatusReport, error) {
	var resp StatusReport
	if err := c.do(ctx, http.MethodGet, "/api/snse/status", nil, &resp); err != nil {
		return StatusReport{}, err
	}
	return resp, nil
}

// QESOOptimizations lists the optimizer's current recommendations.
func (c *HTTPClient) QESOOptimizations(ctx context.Context, limit int) ([]Optimization, error) {
	var resp struct {
		Optimizations []Optimization `json:"optimizations"`
	}
	path := fmt.Sprintf("/api/qeso/optimizations?limit=%d", limit)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Optimizations, nil
}

// DRADAlerts fetches recent disinformation alerts.
func (c *HTTPClient) DRADAlerts(ctx context.Context, query AlertQuery) ([]Alert, error) {
	var resp struct {
		Alerts []Alert `json:"alerts"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/drad/alerts", query, &resp); err != nil {
		return nil, err
	}
	return resp.Alerts, nil
}

// RunSimulation queues a scenario run and returns its handle.
func (c *HTTPClient) RunSimulation(ctx context.Context, req SimulationRequest) (SimulationRun, error) {
	var resp SimulationRun
	if err := c.do(ctx, http.MethodPost, "/api/simulations", req, &resp); err != nil {
		return SimulationRun{}, err
	}
	return resp, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, payload any, target any) error {
	var body *bytes.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("intel: encode payload: %w", err)
		}
		body = bytes.NewReader(encoded)
	} else {
		body = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("intel: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != nil {
		token, err := c.token(ctx)
		if err != nil {
			return fmt.Errorf("intel: resolve token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("intel request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return fmt.Errorf("intel: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		c.logger.Warn("intel request rejected",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return fmt.Errorf("intel: remote error %d: %s", resp.StatusCode, buf.String())
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("intel: decode response: %w", err)
	}
	return nil
}

type predictionRow struct {
	Subject     string  `json:"subject"`
	Probability float64 `json:"probability"`
	Impact      string  `json:"impact"`
	Horizon     string  `json:"horizon"`
}

type predictionResponse struct {
	Domain     string          `json:"domain"`
	Confidence float64         `json:"confidence"`
	Rows       []predictionRow `json:"rows"`
}

func (r predictionResponse) toReport() PredictionReport {
	rows := make([]Prediction, len(r.Rows))
	for i, row := range r.Rows {
		horizon, err := time.Parse(time.RFC3339, row.Horizon)
		if err != nil {
			if day, dayErr := time.Parse(time.DateOnly, row.Horizon); dayErr == nil {
				horizon = day
			}
		}
		rows[i] = Prediction{
			Subject:     row.Subject,
			Probability: row.Probability,
			Impact:      row.Impact,
			Horizon:     horizon,
		}
	}
	return PredictionReport{
		Domain:     r.Domain,
		Confidence: r.Confidence,
		Rows:       rows,
	}
}
