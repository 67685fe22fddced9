package daemon

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/tempo-track/tempo/internal/api"
	"github.com/tempo-track/tempo/internal/app/achievement"
	"github.com/tempo-track/tempo/internal/app/notify"
	"github.com/tempo-track/tempo/internal/app/tracker"
	"github.com/tempo-track/tempo/internal/health"
	_ "github.com/tempo-track/tempo/internal/infra/metrics" // Register Prometheus metrics
	"github.com/tempo-track/tempo/internal/infra/sqlite"
	"github.com/tempo-track/tempo/internal/infra/store"
)

// Daemon is the core Tempo runtime. It wires together all services.
type Daemon struct {
	Config Config
	Log    *zap.Logger
	DB     *sqlite.DB

	Engine       *achievement.Engine
	Tracker      *tracker.Service
	Notification *notify.Service
	Health       *health.Checker
	Server       *api.Server

	cancel context.CancelFunc
}

// New creates and initializes a Daemon with all services wired.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	logger, err := newLogger(cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	db, err := sqlite.Open(tempoHome())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Notification dispatcher over the sqlite log
	policy := notify.Policy{
		MaxPerDay:  cfg.Notifications.MaxPerDay,
		QuietStart: cfg.Notifications.QuietStart,
		QuietEnd:   cfg.Notifications.QuietEnd,
	}
	notifier := notify.NewServiceWithPolicy(db, policy, logger)

	// Achievement engine over a retrying record store
	records := store.NewRetrying(db, cfg.Store.MaxRetries, logger)
	engine := achievement.NewEngine(records, notifier, logger)

	trk := tracker.NewService(db, engine, logger)

	d := &Daemon{
		Config:       cfg,
		Log:          logger,
		DB:           db,
		Engine:       engine,
		Tracker:      trk,
		Notification: notifier,
		Health:       health.NewChecker(db, tempoHome(), logger),
		Server:       api.NewServer(trk, engine, notifier, logger),
	}

	if cfg.Telemetry.Prometheus {
		d.Server.EnableMetrics()
	}

	return d, nil
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	// Health checker (always runs)
	go d.Health.Run(ctx)

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	d.Log.Info("tempo serving", zap.String("addr", addr))
	if d.Config.Telemetry.Prometheus {
		d.Log.Info("metrics enabled", zap.String("url", "http://"+addr+"/metrics"))
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
	if d.Log != nil {
		_ = d.Log.Sync()
	}
}

// newLogger builds the daemon logger at the configured level.
func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	lvl, err := zap.ParseAtomicLevel(level)
	if err == nil {
		cfg.Level = lvl
	}
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
