package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aretw0/cmdbot"
	"github.com/aretw0/cmdbot/internal/presentation/tui"
	httpadapter "github.com/aretw0/cmdbot/pkg/adapters/http"
	"github.com/aretw0/cmdbot/pkg/adapters/redis"
	"github.com/aretw0/cmdbot/pkg/domain"
	"github.com/aretw0/cmdbot/pkg/observability"
	"github.com/aretw0/cmdbot/pkg/ports"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	lockWait      = 2 * time.Second
	lockRetry     = 100 * time.Millisecond
	shutdownGrace = 5 * time.Second
)

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	ConfigPath string
	Debug      bool
	Console    bool
	Mode       string
	Out        io.Writer
}

// RunSimulation runs the simulated robot in real time until ctx is done.
// Redis and the HTTP dashboard are enabled by their config addresses.
func RunSimulation(ctx context.Context, opts RunOptions) error {
	cfg, logger, closer, err := loadConfig(opts.ConfigPath, opts.Debug)
	if err != nil {
		return err
	}
	defer closer.Close()

	initial := domain.ModeDisabled
	if opts.Mode != "" {
		if initial, err = domain.ParseMode(opts.Mode); err != nil {
			return fmt.Errorf("--mode %q: %w", opts.Mode, err)
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var sinks []ports.TelemetrySink
	var vision ports.NumberTable
	if cfg.Redis.Addr != "" {
		store := redis.New(cfg.Redis.Addr, "", 0,
			redis.WithPrefix(cfg.Redis.Prefix),
			redis.WithTTL(cfg.Redis.TTL),
		)
		defer store.Close()
		if err := store.Ping(ctx); err != nil {
			return err
		}
		lockCtx, lockCancel := context.WithTimeout(ctx, lockWait)
		unlock, err := store.Lock(lockCtx, "robot", cfg.Redis.TTL, lockRetry)
		lockCancel()
		if err != nil {
			return fmt.Errorf("another robot owns prefix %q: %w", cfg.Redis.Prefix, err)
		}
		defer unlock(context.Background())
		vision = store.Table(cfg.Vision.Table)
		sinks = append(sinks, store)
		logger.Info("Redis telemetry enabled", "addr", cfg.Redis.Addr, "prefix", cfg.Redis.Prefix)
	}

	rig, err := NewRig(cfg, logger, vision)
	if err != nil {
		return err
	}
	rig.Station.SetMode(initial)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	metrics := observability.NewMetrics(reg)
	hooks := metrics.Hooks().Merge(observability.LogHooks(logger))

	errCh := make(chan error, 2)
	if cfg.HTTP.Addr != "" {
		srvOpts := []httpadapter.Option{
			httpadapter.WithLogger(logger),
			httpadapter.WithOperators(rig.Driver, rig.Board),
			httpadapter.WithMetrics(reg),
		}
		if cfg.HTTP.AuthSecret != "" {
			v, err := httpadapter.NewVerifier(cfg.HTTP.AuthSecret)
			if err != nil {
				return err
			}
			srvOpts = append(srvOpts, httpadapter.WithVerifier(v))
		}
		dashboard := httpadapter.NewServer(rig.Container, rig.Station, srvOpts...)
		sinks = append(sinks, dashboard)

		srv := &http.Server{Addr: cfg.HTTP.Addr, Handler: dashboard.Handler()}
		go func() {
			logger.Info("Dashboard listening", "addr", cfg.HTTP.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("dashboard: %w", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	bot, err := cmdbot.New(ctx, rig.Container,
		cmdbot.WithLogger(logger),
		cmdbot.WithLifecycleHooks(hooks),
		cmdbot.WithPeriod(cfg.Period),
		cmdbot.WithDriverStation(rig.Station),
		cmdbot.WithSimulation(rig.Steppers()...),
		cmdbot.WithTelemetry(sinks...),
	)
	if err != nil {
		return err
	}

	go func() {
		errCh <- bot.Run(ctx)
	}()

	if opts.Console {
		console := tui.NewConsole(rig.Station, rig.Board, rig.ButtonLabels(), bot.Scheduler().Snapshot, cfg.Period*5)
		if _, err := tea.NewProgram(console, tea.WithContext(ctx), tea.WithAltScreen()).Run(); err != nil {
			cancel()
			<-errCh
			if errors.Is(err, tea.ErrProgramKilled) {
				return nil
			}
			return err
		}
		cancel()
		return handleExecutionError(<-errCh)
	}

	if opts.Out != nil {
		printSystemMessage(opts.Out, "Robot running in %s mode. Press Ctrl+C to stop.", initial)
	}
	return handleExecutionError(<-errCh)
}
