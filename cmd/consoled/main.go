package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	console "github.com/strategicai/console/components/console"
	"github.com/strategicai/console/components/console/commands"
	"github.com/strategicai/console/components/console/gate"
	"github.com/strategicai/console/components/console/gorouter"
	"github.com/strategicai/console/components/console/httpapi"
	"github.com/strategicai/console/components/console/morph"
	"github.com/strategicai/console/components/console/simulate"
	"github.com/strategicai/console/pkg/intel"
	"github.com/strategicai/console/pkg/session"
)

type cli struct {
	Config   string `type:"path" help:"Optional YAML config file; flags override file values."`
	Listen   string `default:":8080" help:"Listen address for the HTTP server."`
	Database string `default:"console.db" help:"Path to the SQLite session database."`
	APIBase  string `name:"api-base" help:"Base URL of the Strategic AI Platform API."`
	APIToken string `name:"api-token" help:"Bearer token for the platform API."`
	Demo     bool   `default:"true" negatable:"" help:"Serve canned intel data instead of the live API."`
	Debug    bool   `help:"Enable debug logging."`
}

type fileConfig struct {
	Listen   string `yaml:"listen"`
	Database string `yaml:"database"`
	Demo     *bool  `yaml:"demo"`
	API      struct {
		BaseURL string `yaml:"base_url"`
		Token   string `yaml:"token"`
	} `yaml:"api"`
}

func main() {
	args := &cli{}
	kctx := kong.Parse(args,
		kong.Description("Strategic console server."),
		kong.UsageOnError(),
	)
	kctx.FatalIfErrorf(run(args))
}

func run(args *cli) error {
	if err := applyFileConfig(args); err != nil {
		return err
	}

	logger, err := buildLogger(args.Debug)
	if err != nil {
		return fmt.Errorf("consoled: build logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessions, err := session.Open(args.Database)
	if err != nil {
		return err
	}
	defer sessions.Close()

	telemetry := zapTelemetry{logger: logger}
	visitorGate := gate.New(sessions, telemetry)

	registry := console.NewRegistry()
	wireIntel(args, logger, registry)

	store := console.NewMemoryPanelStore()
	hook := console.NewBroadcastHook()
	service := console.NewService(console.Options{
		PanelStore:  store,
		Providers:   registry,
		RefreshHook: hook,
		Telemetry:   telemetry,
	})

	seed := commands.NewSeedConsoleCommand(store, registry, service, telemetry)
	if err := seed.Execute(ctx, commands.SeedConsoleInput{SeedLayout: true}); err != nil {
		return fmt.Errorf("consoled: seed layout: %w", err)
	}

	sim := buildSimulator(hook, logger)
	sim.Start()
	defer sim.Stop()

	animator, err := buildAnimator(hook)
	if err != nil {
		return fmt.Errorf("consoled: morph animator: %w", err)
	}
	animator.Start()
	defer animator.Stop()

	renderer, err := console.NewTemplateRenderer()
	if err != nil {
		return fmt.Errorf("consoled: template renderer: %w", err)
	}
	controller := console.NewController(service,
		console.WithRenderer(renderer),
		console.WithControllerProviders(registry),
	)
	executor := httpapi.NewCommandExecutor(service, telemetry)

	server := router.NewFiberAdapter()
	if err := gorouter.Register(gorouter.Config[*fiber.App]{
		Router:     server.Router(),
		Controller: controller,
		API:        executor,
		Broadcast:  hook,
		Gate:       visitorGate,
	}); err != nil {
		return fmt.Errorf("consoled: register routes: %w", err)
	}

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		sim.Stop()
		animator.Stop()
		_ = server.Shutdown(context.Background())
	}()

	logger.Info("console ready",
		zap.String("listen", args.Listen),
		zap.Bool("demo", args.Demo))
	if err := server.Serve(args.Listen); err != nil {
		return fmt.Errorf("consoled: server: %w", err)
	}
	return nil
}

func applyFileConfig(args *cli) error {
	if args.Config == "" {
		return nil
	}
	raw, err := os.ReadFile(args.Config)
	if err != nil {
		return fmt.Errorf("consoled: read config: %w", err)
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return fmt.Errorf("consoled: parse config: %w", err)
	}
	if cfg.Listen != "" && args.Listen == ":8080" {
		args.Listen = cfg.Listen
	}
	if cfg.Database != "" && args.Database == "console.db" {
		args.Database = cfg.Database
	}
	if cfg.API.BaseURL != "" && args.APIBase == "" {
		args.APIBase = cfg.API.BaseURL
	}
	if cfg.API.Token != "" && args.APIToken == "" {
		args.APIToken = cfg.API.Token
	}
	if cfg.Demo != nil {
		args.Demo = *cfg.Demo
	}
	return nil
}

func buildLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// wireIntel swaps the demo repositories for live platform-backed ones when a
// base URL is configured.
func wireIntel(args *cli, logger *zap.Logger, registry *console.Registry) {
	var client intel.Client = intel.MockClient{}
	if !args.Demo && args.APIBase != "" {
		httpClient, err := intel.NewHTTPClient(intel.HTTPConfig{
			BaseURL: args.APIBase,
			Token:   intel.StaticToken(args.APIToken),
			Logger:  logger,
		})
		if err != nil {
			logger.Warn("intel client unavailable, falling back to demo data", zap.Error(err))
		} else {
			client = httpClient
		}
	}
	repo := intel.NewRepository(client)
	registry.RegisterProvider("console.panel.predictions", console.NewPredictionTableProvider(repo))
	registry.RegisterProvider("console.panel.alert_feed", console.NewAlertFeedProvider(repo))
}

// buildSimulator registers one feed per seeded signal panel so connected
// clients see page refresh events at each panel's cadence.
func buildSimulator(hook *console.BroadcastHook, logger *zap.Logger) *simulate.Simulator {
	sim := simulate.New(func(ctx context.Context, snap simulate.Snapshot) {
		_ = hook.PanelUpdated(ctx, console.PanelEvent{
			PageCode: snap.Feed,
			Reason:   "refresh",
			Payload: map[string]any{
				"feed":    snap.Feed,
				"reading": snap.Reading,
			},
		})
	}, logger)

	for _, req := range console.DefaultSeedPanels() {
		feed, ok := feedForSeed(req)
		if !ok {
			continue
		}
		if err := sim.Register(feed); err != nil {
			logger.Warn("skipping feed", zap.String("feed", feed.Name), zap.Error(err))
		}
	}
	return sim
}

func feedForSeed(req console.AddPanelRequest) (simulate.Feed, bool) {
	cfg := req.Configuration
	every := simulate.ClampPeriod(time.Duration(intFromConfig(cfg, "refresh_seconds", 5)) * time.Second)
	switch req.DefinitionID {
	case "console.panel.metric_band":
		floor := floatFromConfig(cfg, "floor", 0)
		ceiling := floatFromConfig(cfg, "ceiling", 100)
		unit, _ := cfg["unit"].(string)
		return simulate.Feed{
			Name:   req.PageCode,
			Source: simulate.NewBandSource(floor, ceiling, unit),
			Every:  every,
		}, true
	case "console.panel.metric_walk":
		min := floatFromConfig(cfg, "min", 0)
		max := floatFromConfig(cfg, "max", 100)
		start := floatFromConfig(cfg, "start", (min+max)/2)
		step := floatFromConfig(cfg, "step", (max-min)/20)
		unit, _ := cfg["unit"].(string)
		return simulate.Feed{
			Name:   req.PageCode,
			Source: simulate.NewWalkSource(start, min, max, step, unit),
			Every:  every,
		}, true
	default:
		return simulate.Feed{}, false
	}
}

// buildAnimator drives the landing-page headline morph and mirrors frames to
// subscribers as morph events.
func buildAnimator(hook *console.BroadcastHook) (*morph.Animator, error) {
	cycle := morph.Cycle{
		Texts: []string{
			"Strategic Intelligence",
			"Predictive Analytics",
			"Autonomous Agents",
			"Decision Advantage",
		},
		Morph:    time.Second,
		Cooldown: 500 * time.Millisecond,
	}
	return morph.NewAnimator(cycle, morph.DefaultFrameInterval, func(ctx context.Context, frame morph.Frame) {
		_ = hook.PanelUpdated(ctx, console.PanelEvent{
			Reason:  "morph",
			Payload: map[string]any{"frame": frame},
		})
	})
}

func intFromConfig(cfg map[string]any, key string, fallback int) int {
	switch v := cfg[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return fallback
	}
}

func floatFromConfig(cfg map[string]any, key string, fallback float64) float64 {
	switch v := cfg[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return fallback
	}
}

// zapTelemetry adapts the structured logger to the console telemetry seam.
type zapTelemetry struct {
	logger *zap.Logger
}

func (t zapTelemetry) Record(_ context.Context, event string, payload map[string]any) {
	t.logger.Info("telemetry", zap.String("event", event), zap.Any("payload", payload))
}
