package server

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"gst-invoice-api/internal/config"
	"gst-invoice-api/internal/database"
	"gst-invoice-api/internal/middleware"
	"gst-invoice-api/internal/repositories"
	"gst-invoice-api/internal/repositories/sqlite"
	"gst-invoice-api/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *logrus.Logger
	Services    *services.ServiceContainer
	AuthService *middleware.AuthService

	connection  *database.ConnectionManager
	repoManager repositories.RepositoryManager
}

// NewContainer wires the database, repositories and services together
func NewContainer(cfg *config.Config) (*Container, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Environment == "development" {
		logger.SetLevel(logrus.DebugLevel)
	}

	connection := database.NewConnectionManager(&database.ConnectionConfig{
		DatabasePath:    cfg.Database.Path,
		MigrationsPath:  cfg.Database.MigrationsPath,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		Logger:          logger,
	})

	if err := connection.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	scope := repositories.TenantScope{CompanyID: cfg.CompanyID}
	repoManager := sqlite.NewRepositoryManager(connection.GetDB(), scope, logger)

	serviceContainer, err := services.NewServiceContainer(repoManager, logger)
	if err != nil {
		connection.Close()
		return nil, fmt.Errorf("failed to create service container: %w", err)
	}

	authService := middleware.NewAuthService(&middleware.AuthConfig{
		JWTSecret:     cfg.JWT.Secret,
		TokenDuration: time.Duration(cfg.JWT.ExpiryHours) * time.Hour,
	})

	return &Container{
		Config:      cfg,
		Logger:      logger,
		Services:    serviceContainer,
		AuthService: authService,
		connection:  connection,
		repoManager: repoManager,
	}, nil
}

// Health checks the database connection
func (c *Container) Health() error {
	return c.connection.HealthCheck()
}

// Close cleans up all resources
func (c *Container) Close() error {
	if c.connection != nil {
		if err := c.connection.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}
	return nil
}
