package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/user-administration/internal/core/events"
	"github.com/frahmantamala/user-administration/internal/employee"
	employeePostgres "github.com/frahmantamala/user-administration/internal/employee/postgres"
	"github.com/frahmantamala/user-administration/internal/rosterclient"
	"github.com/frahmantamala/user-administration/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start background workers",
	Long:  `Start and manage background workers like roster synchronization and event processing.`,
}

// Roster sync worker command
var rosterWorkerCmd = &cobra.Command{
	Use:   "roster",
	Short: "Start roster synchronization worker",
	Long:  `Periodically fetch the employee roster from the HR system and refresh the local mirror`,
	Run: func(cmd *cobra.Command, args []string) {
		startRosterWorker()
	},
}

// Event bus worker command
var eventWorkerCmd = &cobra.Command{
	Use:   "events",
	Short: "Start event bus worker",
	Long:  `Start the event bus`,
	Run: func(cmd *cobra.Command, args []string) {
		startEventWorker()
	},
}

var (
	rosterURL    string
	rosterAPIKey string
	syncInterval time.Duration
)

func startRosterWorker() {
	config, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	log := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize database: %v\n", err)
		os.Exit(1)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize gorm: %v\n", err)
		os.Exit(1)
	}

	// Use command line flags if provided, otherwise use config values
	rosterConfig := rosterclient.Config{
		BaseURL: getStringFlag(rosterURL, config.Roster.BaseURL),
		APIKey:  getStringFlag(rosterAPIKey, config.Roster.APIKey),
		Timeout: config.Roster.HTTPTimeout,
	}

	interval := config.Roster.SyncInterval
	if syncInterval > 0 {
		interval = syncInterval
	}

	log.Info("starting roster worker",
		"base_url", rosterConfig.BaseURL,
		"sync_interval", interval.String())

	client := rosterclient.NewClient(rosterConfig, log)
	employeeRepo := employeePostgres.NewEmployeeRepository(gormDB)
	employeeService := employee.NewService(employeeRepo, log)

	syncer := rosterclient.NewSyncer(client, employeeService, interval, log)
	syncer.Start()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	log.Info("roster worker is running. Press Ctrl+C to stop.")

	sig := <-sigChan
	log.Info("received signal, shutting down roster worker", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	shutdownDone := make(chan struct{})
	go func() {
		syncer.Shutdown()
		_ = db.Close()
		close(shutdownDone)
	}()

	select {
	case <-shutdownDone:
		log.Info("roster worker shutdown complete")
	case <-ctx.Done():
		log.Warn("shutdown timeout reached, forcing exit")
	}
}

func startEventWorker() {
	config, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	log := logger.LoggerWrapper()

	eventBus := events.NewEventBus(log)
	registerAuditSubscribers(eventBus, log)

	log.Info("event bus worker started. Waiting for events...")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	log.Info("event bus is running. Press Ctrl+C to stop.")

	sig := <-sigChan
	log.Info("received signal, shutting down event bus", "signal", sig)
	log.Info("event bus shutdown complete")
}

func getStringFlag(flagValue, configValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return configValue
}

func init() {
	rosterWorkerCmd.Flags().StringVar(&rosterURL, "roster-url", "", "HR roster API URL (overrides config)")
	rosterWorkerCmd.Flags().StringVar(&rosterAPIKey, "api-key", "", "HR roster API key (overrides config)")
	rosterWorkerCmd.Flags().DurationVar(&syncInterval, "sync-interval", 0, "Roster sync interval (overrides config)")

	workerCmd.AddCommand(rosterWorkerCmd)
	workerCmd.AddCommand(eventWorkerCmd)
}
