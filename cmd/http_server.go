package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/user-administration/internal"
	"github.com/frahmantamala/user-administration/internal/auth"
	authPostgres "github.com/frahmantamala/user-administration/internal/auth/postgres"
	"github.com/frahmantamala/user-administration/internal/core/events"
	"github.com/frahmantamala/user-administration/internal/employee"
	employeePostgres "github.com/frahmantamala/user-administration/internal/employee/postgres"
	"github.com/frahmantamala/user-administration/internal/project"
	projectPostgres "github.com/frahmantamala/user-administration/internal/project/postgres"
	"github.com/frahmantamala/user-administration/internal/transport/rest"
	"github.com/frahmantamala/user-administration/internal/transport/swagger"
	"github.com/frahmantamala/user-administration/internal/user"
	userPostgres "github.com/frahmantamala/user-administration/internal/user/postgres"
	"github.com/frahmantamala/user-administration/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config          *internal.Config
	DB              *sqlx.DB
	GormDB          *gorm.DB
	Router          *chi.Mux
	Logger          *slog.Logger
	AuthHandler     *auth.Handler
	UserHandler     *user.Handler
	EmployeeHandler *employee.Handler
	ProjectHandler  *project.Handler
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) {
	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.AuthHandler, deps.UserHandler, deps.EmployeeHandler, deps.ProjectHandler, deps.Logger)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	log := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	if err := swagger.ValidateSpec(context.Background(), "./api/openapi.yml"); err != nil {
		log.Warn("OpenAPI spec validation failed, Swagger UI may be broken", "error", err)
	}

	eventBus := events.NewEventBus(log)
	registerAuditSubscribers(eventBus, log)

	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)

	authRepo := authPostgres.NewRepository(gormDB)
	authService := auth.NewService(authRepo, tokenGen, config.Security.BCryptCost)
	authHandler := auth.NewHandler(authService)

	projectRepo := projectPostgres.NewProjectRepository(gormDB)
	projectService := project.NewService(projectRepo, log)
	projectHandler := project.NewHandler(projectService)

	employeeRepo := employeePostgres.NewEmployeeRepository(gormDB)
	employeeService := employee.NewService(employeeRepo, log)

	userRepo := userPostgres.NewUserRepository(gormDB)
	userService := user.NewService(userRepo, employeeService, projectService, authService, eventBus, log)
	userHandler := user.NewHandler(userService)

	employeeHandler := employee.NewHandler(employeeService, userService)

	return &Dependencies{
		Config:          config,
		Logger:          log,
		DB:              db,
		GormDB:          gormDB,
		Router:          chi.NewRouter(),
		AuthHandler:     authHandler,
		UserHandler:     userHandler,
		EmployeeHandler: employeeHandler,
		ProjectHandler:  projectHandler,
	}, nil
}

// registerAuditSubscribers logs account lifecycle events for audit trails.
func registerAuditSubscribers(bus *events.EventBus, log *slog.Logger) {
	auditLog := func(ctx context.Context, event events.Event) error {
		log.Info("audit event",
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"payload", event.Payload())
		return nil
	}

	bus.Subscribe(events.EventTypeUserCreated, auditLog)
	bus.Subscribe(events.EventTypeUserUpdated, auditLog)
	bus.Subscribe(events.EventTypeUserDeleted, auditLog)
	bus.Subscribe(events.EventTypeUserPasswordReset, auditLog)
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm wraps the existing pgx connection so both query layers share a pool
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormPostgres.New(gormPostgres.Config{
		Conn: db.DB,
	}), &gorm.Config{})
}
