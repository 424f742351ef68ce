package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cosmossdk.io/log"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/atomiclabs/bridge/relayer/config"
	"github.com/atomiclabs/bridge/relayer/watcher"
	"github.com/atomiclabs/bridge/server"
	"github.com/atomiclabs/bridge/x/bridge/custody"
	"github.com/atomiclabs/bridge/x/bridge/keeper"
	"github.com/atomiclabs/bridge/x/bridge/types"
)

const version = "0.1.0"

var configPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bridged",
	Short: "Atomic bridge initiator daemon",
	Long: `bridged hosts the hashed-timelock transfer ledger: it locks value under
hash commitments, completes transfers on secret reveal, refunds expired
transfers, and streams ledger events to off-chain relayers.`,
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the bridge daemon",
	RunE:  runStart,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("bridged v" + version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to configuration file")
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initiateCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(refundCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(listCmd)
}

func newLogger(level string) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zcfg.Level = lvl
	return zcfg.Build()
}

func openDB(cfg config.DatabaseConfig) (dbm.DB, error) {
	backend := dbm.BackendType(cfg.Backend)
	if backend == dbm.MemDBBackend {
		return dbm.NewMemDB(), nil
	}
	return dbm.NewDB("bridge", backend, cfg.Dir)
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := newLogger(cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, err := openDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	hub := server.NewHub(logger)
	defer hub.Close()

	custodian := custody.New(db)
	k := keeper.NewKeeper(
		db,
		custodian,
		custody.IdentityResolver{},
		keeper.SystemClock{},
		log.NewLogger(os.Stderr),
		keeper.WithEventEmitter(hub),
	)
	if cfg.Ledger.Owner != "" {
		params := types.NewParams(cfg.Ledger.Owner, cfg.Ledger.TimeLockMultiplier)
		if err := k.SetParams(params); err != nil {
			return fmt.Errorf("failed to set ledger params: %w", err)
		}
	}

	registry := prometheus.NewRegistry()
	svc := server.NewService(k, logger, server.NewMetrics(registry))

	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: server.NewRouter(svc, hub, registry),
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	errCh := make(chan error, 2)
	go func() {
		logger.Info("serving", zap.String("addr", cfg.ListenAddr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	if cfg.Watcher.Enabled {
		w, err := watcher.New(cfg.Watcher, svc, logger)
		if err != nil {
			return err
		}
		go func() {
			if err := w.Run(ctx); err != nil && err != context.Canceled {
				errCh <- err
			}
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.Error("fatal", zap.Error(err))
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return httpServer.Shutdown(shutdownCtx)
}
