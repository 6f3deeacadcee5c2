package daemon

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/curie-network/curie/internal/api"
	"github.com/curie-network/curie/internal/app/recognition"
	"github.com/curie-network/curie/internal/app/reward"
	"github.com/curie-network/curie/internal/app/scoring"
	"github.com/curie-network/curie/internal/infra/ledgerstore"
	_ "github.com/curie-network/curie/internal/infra/metrics" // Register Prometheus metrics
	"github.com/curie-network/curie/internal/infra/sqlite"
)

// Daemon is the Curie runtime. It wires the scoring engine, reward
// allocator, recognition ledger, and storage together.
type Daemon struct {
	Config      Config
	DB          *sqlite.DB
	Store       *ledgerstore.Store
	Scoring     *scoring.Engine
	Allocator   *reward.Allocator
	Recognition *recognition.Service
	Server      *api.Server
	cancel      context.CancelFunc
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
	dataDir := cfg.Ledger.Dir
	if dataDir == "" {
		dataDir = curieHome()
	}

	db, err := sqlite.Open(dataDir)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	store, err := ledgerstore.New(dataDir)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("open ledger store: %w", err)
	}

	launch, err := cfg.LaunchTime()
	if err != nil {
		db.Close()
		return nil, err
	}

	ledger, err := recognition.NewService(store, launch)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("load recognition ledger: %w", err)
	}

	engine := scoring.NewEngine()
	allocator := reward.NewAllocator(cfg.Rewards.BaseReward)

	srv := api.NewServer(engine, allocator, ledger, db, cfg.Rewards.CurrentEpoch)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}

	return &Daemon{
		Config:      cfg,
		DB:          db,
		Store:       store,
		Scoring:     engine,
		Allocator:   allocator,
		Recognition: ledger,
		Server:      srv,
	}, nil
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
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

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	fmt.Printf("Curie serving on http://%s\n", addr)
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
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
}
