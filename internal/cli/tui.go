package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rovshanmuradov/swap-widget/internal/config"
	"github.com/rovshanmuradov/swap-widget/internal/logger"
	"github.com/rovshanmuradov/swap-widget/internal/price"
	"github.com/rovshanmuradov/swap-widget/internal/swap"
	"github.com/rovshanmuradov/swap-widget/internal/ui"
	"github.com/rovshanmuradov/swap-widget/internal/ui/layout"
	"github.com/rovshanmuradov/swap-widget/internal/ui/router"
	"github.com/rovshanmuradov/swap-widget/internal/ui/screen"
	"github.com/rovshanmuradov/swap-widget/internal/ui/state"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The terminal belongs to the TUI, so logs go to a file.
	logFile, err := logger.OpenFileWriter(cfg.LogFile, logger.DefaultFlushInterval)
	if err != nil {
		return err
	}
	defer logFile.Close()

	appLogger, err := logger.CreateTUILogger(cfg.DebugLogging, logFile)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	appLogger = appLogger.With(zap.String("session", uuid.NewString()))
	defer func() {
		_ = appLogger.Sync()
	}()

	pair, err := cfg.DefaultPair()
	if err != nil {
		return err
	}
	client := price.NewClient(cfg.PriceOptions(), appLogger)

	appLogger.Info("Starting swap widget",
		zap.String("pair", pair.String()),
		zap.String("currency", client.Currency()),
		zap.Duration("cache_retention", cfg.CacheRetention))

	if cfg.MetricsAddr != "" {
		shutdown := serveMetrics(cfg.MetricsAddr, client, appLogger)
		defer shutdown()
	}
	if cfg.CacheRetention > 0 {
		go cleanupLoop(ctx, client.Cache(), cfg.CacheRetention)
	}

	createUI := func() (tea.Model, []tea.ProgramOption) {
		return newShell(cfg, pair, client, appLogger), []tea.ProgramOption{
			tea.WithContext(ctx),
			tea.WithAltScreen(),
			tea.WithMouseCellMotion(),
		}
	}

	handler := ui.NewRecoveryHandler(appLogger, createUI)
	if err := handler.RunWithRecovery(ctx); err != nil {
		appLogger.Error("TUI application failed", zap.Error(err))
		return err
	}

	entries, hits, misses := client.Cache().Stats()
	appLogger.Info("Shutting down swap widget",
		zap.Uint64("cached_prices", entries),
		zap.Uint64("cache_hits", hits),
		zap.Uint64("cache_misses", misses))
	return nil
}

// newShell builds a fresh model graph around new state handles.
func newShell(cfg *config.Config, pair swap.TokenPair, prices screen.PriceSource, log *zap.Logger) tea.Model {
	uiState := state.NewUI()
	tokens := state.NewTokens(pair)

	formatter := swap.NewFormatter(cfg.CurrencySymbol)
	formatter.Fraction = cfg.FractionDigits

	page := screen.NewSwapScreen(uiState, tokens, prices, log, screen.SwapOptions{
		Formatter:    formatter,
		Timeout:      cfg.RequestTimeout,
		Fraction:     cfg.FractionDigits,
		RateFraction: cfg.RateFractionDigits,
	})
	modals := router.New().
		Register(state.ViewSelectToken, screen.SelectTokenFactory(cfg.Catalog(), uiState, tokens))

	return ui.NewSafeModel(layout.NewShell(uiState, tokens, page, modals, log), log)
}

// serveMetrics exposes the price client collectors and returns a shutdown func.
func serveMetrics(addr string, client *price.Client, log *zap.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(client.Metrics().Registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Metrics server failed", zap.String("addr", addr), zap.Error(err))
		}
	}()
	log.Info("Metrics server listening", zap.String("addr", addr))

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

// cleanupLoop drops expired prices until ctx is done.
func cleanupLoop(ctx context.Context, cache *price.Cache, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			cache.CleanupStale()
		case <-ctx.Done():
			return
		}
	}
}
