package bootstrap

import (
	"context"
	"fmt"

	"taskflow/internal/api"
	"taskflow/internal/api/handler"
	"taskflow/internal/pkg/config"
	"taskflow/internal/pkg/logger"
	"taskflow/internal/pkg/password"
	"taskflow/internal/pkg/postgres"
	"taskflow/internal/pkg/token"
	"taskflow/internal/repository"
	"taskflow/internal/service"
)

type Application struct {
	Config   *config.Config
	Logger   *logger.Logger
	Postgres *postgres.Connection
	Migrator *postgres.Migrator

	Tokens *token.Manager
	Hasher *password.Hasher

	UserRepo repository.UserRepository
	TaskRepo repository.TaskRepository

	AuthService *service.AuthService
	TaskService *service.TaskService
	UserService *service.UserService

	AuthHandler *handler.AuthHandler
	TaskHandler *handler.TaskHandler
	UserHandler *handler.UserHandler

	HTTPServer *api.HTTPServer
}

func New() (*Application, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(&logger.Config{
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		AddSource: cfg.LogAddSource,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	pg, err := postgres.New(log, &postgres.Config{
		Host:              cfg.DatabaseHost,
		Port:              cfg.DatabasePort,
		Username:          cfg.DatabaseUser,
		Password:          cfg.DatabasePassword,
		Database:          cfg.DatabaseName,
		Schema:            cfg.DatabaseSchema,
		SSLMode:           cfg.DatabaseSSLMode,
		MaxConns:          cfg.DatabaseMaxConns,
		MinConns:          cfg.DatabaseMinConns,
		MaxConnLifetime:   cfg.DatabaseMaxConnLifetime,
		MaxConnIdleTime:   cfg.DatabaseMaxConnIdleTime,
		HealthCheckPeriod: cfg.DatabaseHealthCheckPeriod,
		ConnectTimeout:    cfg.DatabaseConnectTimeout,
		AcquireTimeout:    cfg.DatabaseAcquireTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres connection: %w", err)
	}

	tokens, err := token.NewManager(&token.Config{
		Secret: cfg.JWTSecret,
		TTL:    cfg.JWTTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create token manager: %w", err)
	}

	return &Application{
		Config:   cfg,
		Logger:   log,
		Postgres: pg,
		Tokens:   tokens,
		Hasher:   password.NewHasher(cfg.BcryptCost),
	}, nil
}

func (app *Application) Init(ctx context.Context) error {
	app.Logger.Info("initializing application")

	if err := app.Postgres.Connect(ctx); err != nil {
		return fmt.Errorf("postgres connection failed: %w", err)
	}

	app.Migrator = postgres.NewMigrator(app.Postgres.Pool(), &postgres.MigrationConfig{
		Timeout:   app.Config.DatabaseMigrationTimeout,
		TableName: app.Config.DatabaseMigrationTable,
		Enabled:   app.Config.DatabaseMigrationEnabled,
	}, app.Logger)

	if err := app.Migrator.RunMigrations(ctx); err != nil {
		return fmt.Errorf("database migrations failed: %w", err)
	}

	app.UserRepo = repository.NewUserRepo(app.Postgres.Pool(), app.Logger)
	app.TaskRepo = repository.NewTaskRepo(app.Postgres.Pool(), app.Logger)

	app.AuthService = service.NewAuthService(app.UserRepo, app.Hasher, app.Tokens, app.Logger)
	app.TaskService = service.NewTaskService(app.TaskRepo, app.UserRepo, app.Logger)
	app.UserService = service.NewUserService(app.UserRepo, app.Logger)

	// explicit idempotent bootstrap: the first start of a fresh database
	// provisions the default admin, later starts are no-ops
	if err := app.AuthService.EnsureAdmin(ctx,
		app.Config.AdminEmail, app.Config.AdminName, app.Config.AdminPassword); err != nil {
		return fmt.Errorf("admin bootstrap failed: %w", err)
	}

	app.AuthHandler = handler.NewAuthHandler(app.AuthService, app.Logger)
	app.TaskHandler = handler.NewTaskHandler(app.TaskService, app.Logger)
	app.UserHandler = handler.NewUserHandler(app.UserService, app.Logger)

	serverConfig := &api.ServerConfig{
		Host:         app.Config.ServerHost,
		Port:         app.Config.ServerPort,
		ReadTimeout:  app.Config.ServerReadTimeout,
		WriteTimeout: app.Config.ServerWriteTimeout,
		IdleTimeout:  app.Config.ServerIdleTimeout,
	}

	app.HTTPServer = api.NewHTTPServer(
		serverConfig,
		app.Tokens,
		app.AuthHandler,
		app.TaskHandler,
		app.UserHandler,
		app.Logger,
	)

	if err := app.HTTPServer.Start(ctx); err != nil {
		return fmt.Errorf("failed to start http server: %w", err)
	}

	app.Logger.Info("application initialized successfully")
	return nil
}

func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("shutting down application")

	if app.HTTPServer != nil {
		if err := app.HTTPServer.Stop(ctx); err != nil {
			app.Logger.Error("error stopping http server", "error", err)
		}
	}

	app.Postgres.Close()

	app.Logger.Info("application shutdown completed")
	return nil
}

func (app *Application) Health(ctx context.Context) error {
	if err := app.Postgres.Health(ctx); err != nil {
		return fmt.Errorf("postgres health check failed: %w", err)
	}
	if err := app.Migrator.Health(ctx); err != nil {
		return fmt.Errorf("migrator health check failed: %w", err)
	}
	return nil
}
