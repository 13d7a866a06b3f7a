package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/contactdesk/contacts-api/internal/config"
	"github.com/contactdesk/contacts-api/internal/platform/postgres"
	"github.com/contactdesk/contacts-api/internal/service"
	"github.com/contactdesk/contacts-api/internal/service/auth"
	"github.com/contactdesk/contacts-api/internal/store"
)

// application holds the shared application dependencies so wiring happens in
// one place and cleanup is straightforward on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore    store.UserStore
	contactStore store.ContactStore
	addressStore store.AddressStore

	jwtService auth.JWTService
	hasher     auth.PasswordHasher

	userService    *service.UserService
	contactService *service.ContactService
	addressService *service.AddressService
}

// newApplication creates an application instance with all dependencies
// initialized. Configuration, logger and database connection must already be
// established.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.hasher = auth.NewBcryptHasher(bcrypt.DefaultCost)

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.contactStore = postgres.NewPostgresContactStore(db, logger)
	app.addressStore = postgres.NewPostgresAddressStore(db, logger)

	app.userService, err = service.NewUserService(app.userStore, app.jwtService, app.hasher, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize user service: %w", err)
	}

	app.contactService, err = service.NewContactService(app.contactStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize contact service: %w", err)
	}

	app.addressService, err = service.NewAddressService(db, app.contactStore, app.addressStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize address service: %w", err)
	}

	return app, nil
}
