package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/contactdesk/contacts-api/internal/domain"
	"github.com/contactdesk/contacts-api/internal/platform/logger"
	"github.com/contactdesk/contacts-api/internal/redact"
	"github.com/contactdesk/contacts-api/internal/store"
)

// addressColumns is the projection shared by every address query.
const addressColumns = "id, contact_id, street, city, province, country, postal_code, created_at, updated_at"

// PostgresAddressStore implements the store.AddressStore interface
// using a PostgreSQL database as the storage backend.
type PostgresAddressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAddressStore creates a new PostgreSQL implementation of the AddressStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresAddressStore(db store.DBTX, logger *slog.Logger) *PostgresAddressStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAddressStore{
		db:     db,
		logger: logger.With(slog.String("component", "address_store")),
	}
}

// Ensure PostgresAddressStore implements store.AddressStore interface
var _ store.AddressStore = (*PostgresAddressStore)(nil)

// scanAddress reads one address row from the given scanner, mapping NULL
// optional columns to empty strings.
func scanAddress(row interface{ Scan(dest ...any) error }) (*domain.Address, error) {
	var address domain.Address
	var street, city, province sql.NullString

	err := row.Scan(
		&address.ID,
		&address.ContactID,
		&street,
		&city,
		&province,
		&address.Country,
		&address.PostalCode,
		&address.CreatedAt,
		&address.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	address.Street = street.String
	address.City = city.String
	address.Province = province.String
	return &address, nil
}

// Create implements store.AddressStore.Create
// It saves a new address and assigns the generated ID to address.ID.
// Returns store.ErrInvalidEntity if the contact does not exist.
func (s *PostgresAddressStore) Create(ctx context.Context, address *domain.Address) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := address.Validate(); err != nil {
		log.Warn("address validation failed during create",
			slog.String("error", err.Error()),
			slog.Int64("contact_id", address.ContactID))
		return err
	}

	query := `
		INSERT INTO addresses (contact_id, street, city, province, country, postal_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		address.ContactID,
		nullableString(address.Street),
		nullableString(address.City),
		nullableString(address.Province),
		address.Country,
		address.PostalCode,
		address.CreatedAt,
		address.UpdatedAt,
	).Scan(&address.ID)

	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during address creation",
				slog.Int64("contact_id", address.ContactID))
			return fmt.Errorf("%w: contact %d not found", store.ErrInvalidEntity, address.ContactID)
		}

		log.Error("failed to create address",
			slog.String("error", redact.Error(err)),
			slog.Int64("contact_id", address.ContactID))
		return err
	}

	log.Info("address created successfully",
		slog.Int64("address_id", address.ID),
		slog.Int64("contact_id", address.ContactID))
	return nil
}

// Get implements store.AddressStore.Get
// Returns store.ErrAddressNotFound if the address is absent or belongs to a
// different contact.
func (s *PostgresAddressStore) Get(ctx context.Context, contactID, addressID int64) (*domain.Address, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + addressColumns + `
		FROM addresses
		WHERE id = $1 AND contact_id = $2
	`

	address, err := scanAddress(s.db.QueryRowContext(ctx, query, addressID, contactID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("address not found",
				slog.Int64("address_id", addressID),
				slog.Int64("contact_id", contactID))
			return nil, store.ErrAddressNotFound
		}
		log.Error("failed to get address",
			slog.String("error", redact.Error(err)),
			slog.Int64("address_id", addressID))
		return nil, err
	}

	return address, nil
}

// ListByContact implements store.AddressStore.ListByContact
func (s *PostgresAddressStore) ListByContact(ctx context.Context, contactID int64) ([]*domain.Address, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + addressColumns + `
		FROM addresses
		WHERE contact_id = $1
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query, contactID)
	if err != nil {
		log.Error("failed to list addresses",
			slog.String("error", redact.Error(err)),
			slog.Int64("contact_id", contactID))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	addresses := []*domain.Address{}
	for rows.Next() {
		address, err := scanAddress(rows)
		if err != nil {
			log.Error("failed to scan address row",
				slog.String("error", err.Error()))
			return nil, err
		}
		addresses = append(addresses, address)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	return addresses, nil
}

// Update implements store.AddressStore.Update
// The contact predicate is part of the UPDATE itself, so the parent check and
// the write are a single statement; a zero-row result means not found.
func (s *PostgresAddressStore) Update(
	ctx context.Context,
	contactID, addressID int64,
	update store.AddressUpdate,
) (*domain.Address, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	sets := []string{"country = $1", "postal_code = $2", "updated_at = $3"}
	args := []any{update.Country, update.PostalCode, time.Now().UTC()}

	if update.Street != nil {
		args = append(args, nullableString(*update.Street))
		sets = append(sets, fmt.Sprintf("street = $%d", len(args)))
	}
	if update.City != nil {
		args = append(args, nullableString(*update.City))
		sets = append(sets, fmt.Sprintf("city = $%d", len(args)))
	}
	if update.Province != nil {
		args = append(args, nullableString(*update.Province))
		sets = append(sets, fmt.Sprintf("province = $%d", len(args)))
	}

	args = append(args, addressID, contactID)
	query := fmt.Sprintf(`
		UPDATE addresses
		SET %s
		WHERE id = $%d AND contact_id = $%d
		RETURNING `+addressColumns+`
	`, strings.Join(sets, ", "), len(args)-1, len(args))

	address, err := scanAddress(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("address not found for update",
				slog.Int64("address_id", addressID),
				slog.Int64("contact_id", contactID))
			return nil, store.ErrAddressNotFound
		}
		log.Error("failed to update address",
			slog.String("error", redact.Error(err)),
			slog.Int64("address_id", addressID))
		return nil, err
	}

	log.Info("address updated successfully",
		slog.Int64("address_id", addressID),
		slog.Int64("contact_id", contactID))
	return address, nil
}

// Delete implements store.AddressStore.Delete
func (s *PostgresAddressStore) Delete(ctx context.Context, contactID, addressID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM addresses
		WHERE id = $1 AND contact_id = $2
	`

	result, err := s.db.ExecContext(ctx, query, addressID, contactID)
	if err != nil {
		log.Error("failed to delete address",
			slog.String("error", redact.Error(err)),
			slog.Int64("address_id", addressID))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("address_id", addressID))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("address not found for delete",
			slog.Int64("address_id", addressID),
			slog.Int64("contact_id", contactID))
		return store.ErrAddressNotFound
	}

	log.Info("address deleted successfully",
		slog.Int64("address_id", addressID),
		slog.Int64("contact_id", contactID))
	return nil
}

// WithTx implements store.AddressStore.WithTx
func (s *PostgresAddressStore) WithTx(tx *sql.Tx) store.AddressStore {
	return &PostgresAddressStore{
		db:     tx,
		logger: s.logger,
	}
}
