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

	"github.com/frahmantamala/office-management/internal"
	"github.com/frahmantamala/office-management/internal/auth"
	authPostgres "github.com/frahmantamala/office-management/internal/auth/postgres"
	"github.com/frahmantamala/office-management/internal/department"
	departmentPostgres "github.com/frahmantamala/office-management/internal/department/postgres"
	"github.com/frahmantamala/office-management/internal/employee"
	employeePostgres "github.com/frahmantamala/office-management/internal/employee/postgres"
	"github.com/frahmantamala/office-management/internal/geography"
	"github.com/frahmantamala/office-management/internal/transport/middleware"
	"github.com/frahmantamala/office-management/internal/transport/rest"
	"github.com/frahmantamala/office-management/pkg/logger"

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
	Config *internal.Config
	DB     *sqlx.DB
	GormDB *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger

	AuthHandler       *auth.Handler
	DepartmentHandler *department.Handler
	EmployeeHandler   *employee.Handler
	GeographyHandler  *geography.Handler
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
	// Request/response body logging stays off in production
	if !deps.Config.Server.IsProduction() {
		deps.Router.Use(middleware.LoggingMiddleware(deps.Logger))
	}

	rest.RegisterAllRoutes(
		deps.Router,
		deps.DB.DB,
		rest.RouterConfig{AllowedOrigins: deps.Config.Server.AllowedOrigins},
		deps.AuthHandler,
		deps.DepartmentHandler,
		deps.EmployeeHandler,
		deps.GeographyHandler,
		deps.Logger,
	)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Server.Environment)
	lg := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	tokenGen := auth.NewJWTTokenGenerator(config.Security.JWTSecret, config.Security.TokenDuration)
	authRepo := authPostgres.NewRepository(gormDB)
	authService := auth.NewService(authRepo, tokenGen, config.Security.BCryptCost)
	authHandler := auth.NewHandler(authService)

	deptRepo := departmentPostgres.NewRepository(gormDB)
	deptService := department.NewService(deptRepo, lg)
	deptHandler := department.NewHandler(deptService)

	geoClient := geography.NewClient(geography.Config{
		BaseURL:        config.Geography.BaseURL,
		RequestTimeout: config.Geography.RequestTimeout,
	}, lg)
	geoHandler := geography.NewHandler(geoClient)

	empRepo := employeePostgres.NewRepository(gormDB)
	empDirectory := employeePostgres.NewDepartmentDirectory(gormDB)
	empService := employee.NewService(empRepo, empDirectory, geoClient, lg)
	empHandler := employee.NewHandler(empService)

	// outside production, 500 envelopes carry the underlying error text
	exposeErrors := !config.Server.IsProduction()
	authHandler.ExposeErrors = exposeErrors
	deptHandler.ExposeErrors = exposeErrors
	geoHandler.ExposeErrors = exposeErrors
	empHandler.ExposeErrors = exposeErrors

	return &Dependencies{
		Config: config,
		Logger: lg,
		DB:     db,
		GormDB: gormDB,
		Router: chi.NewRouter(),

		AuthHandler:       authHandler,
		DepartmentHandler: deptHandler,
		EmployeeHandler:   empHandler,
		GeographyHandler:  geoHandler,
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
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

// initGorm wraps the existing connection pool so sqlx and gorm share it.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
}
