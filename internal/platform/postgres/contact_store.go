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

// contactColumns is the projection shared by every contact query.
const contactColumns = "id, username, first_name, last_name, email, phone, created_at, updated_at"

// PostgresContactStore implements the store.ContactStore interface
// using a PostgreSQL database as the storage backend.
type PostgresContactStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresContactStore creates a new PostgreSQL implementation of the ContactStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresContactStore(db store.DBTX, logger *slog.Logger) *PostgresContactStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresContactStore{
		db:     db,
		logger: logger.With(slog.String("component", "contact_store")),
	}
}

// Ensure PostgresContactStore implements store.ContactStore interface
var _ store.ContactStore = (*PostgresContactStore)(nil)

// buildContactWhere compiles a store.ContactFilter into a WHERE clause with
// positional arguments. The owner scope is always the first condition; the
// optional substring filters are ANDed after it, with the name filter
// matching first OR last name.
func buildContactWhere(filter store.ContactFilter) (string, []any) {
	conds := []string{"username = $1"}
	args := []any{filter.Username}

	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(first_name LIKE $%d OR last_name LIKE $%d)", n, n))
	}
	if filter.Email != "" {
		args = append(args, "%"+filter.Email+"%")
		conds = append(conds, fmt.Sprintf("email LIKE $%d", len(args)))
	}
	if filter.Phone != "" {
		args = append(args, "%"+filter.Phone+"%")
		conds = append(conds, fmt.Sprintf("phone LIKE $%d", len(args)))
	}

	return strings.Join(conds, " AND "), args
}

// scanContact reads one contact row from the given scanner, mapping NULL
// optional columns to empty strings.
func scanContact(row interface{ Scan(dest ...any) error }) (*domain.Contact, error) {
	var contact domain.Contact
	var lastName, email, phone sql.NullString

	err := row.Scan(
		&contact.ID,
		&contact.Username,
		&contact.FirstName,
		&lastName,
		&email,
		&phone,
		&contact.CreatedAt,
		&contact.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	contact.LastName = lastName.String
	contact.Email = email.String
	contact.Phone = phone.String
	return &contact, nil
}

// Create implements store.ContactStore.Create
// It saves a new contact and assigns the generated ID to contact.ID.
// Returns store.ErrInvalidEntity if the owner user does not exist.
func (s *PostgresContactStore) Create(ctx context.Context, contact *domain.Contact) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := contact.Validate(); err != nil {
		log.Warn("contact validation failed during create",
			slog.String("error", err.Error()),
			slog.String("username", contact.Username))
		return err
	}

	query := `
		INSERT INTO contacts (username, first_name, last_name, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		contact.Username,
		contact.FirstName,
		nullableString(contact.LastName),
		nullableString(contact.Email),
		nullableString(contact.Phone),
		contact.CreatedAt,
		contact.UpdatedAt,
	).Scan(&contact.ID)

	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during contact creation",
				slog.String("username", contact.Username))
			return fmt.Errorf("%w: user %s not found", store.ErrInvalidEntity, contact.Username)
		}

		log.Error("failed to create contact",
			slog.String("error", redact.Error(err)),
			slog.String("username", contact.Username))
		return err
	}

	log.Info("contact created successfully",
		slog.Int64("contact_id", contact.ID),
		slog.String("username", contact.Username))
	return nil
}

// Get implements store.ContactStore.Get
// Returns store.ErrContactNotFound if the contact is absent or owned by
// someone else.
func (s *PostgresContactStore) Get(ctx context.Context, username string, id int64) (*domain.Contact, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + contactColumns + `
		FROM contacts
		WHERE id = $1 AND username = $2
	`

	contact, err := scanContact(s.db.QueryRowContext(ctx, query, id, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("contact not found",
				slog.Int64("contact_id", id),
				slog.String("username", username))
			return nil, store.ErrContactNotFound
		}
		log.Error("failed to get contact",
			slog.String("error", redact.Error(err)),
			slog.Int64("contact_id", id))
		return nil, err
	}

	return contact, nil
}

// Exists implements store.ContactStore.Exists
func (s *PostgresContactStore) Exists(ctx context.Context, username string, id int64) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM contacts WHERE id = $1 AND username = $2
		)
	`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, id, username).Scan(&exists); err != nil {
		log.Error("failed to check contact existence",
			slog.String("error", redact.Error(err)),
			slog.Int64("contact_id", id),
			slog.String("username", username))
		return false, err
	}

	return exists, nil
}

// Update implements store.ContactStore.Update
// The owner predicate is part of the UPDATE itself, so the ownership check
// and the write are a single statement; a zero-row result means not found.
func (s *PostgresContactStore) Update(
	ctx context.Context,
	username string,
	id int64,
	update store.ContactUpdate,
) (*domain.Contact, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	sets := []string{"first_name = $1", "updated_at = $2"}
	args := []any{update.FirstName, time.Now().UTC()}

	if update.LastName != nil {
		args = append(args, nullableString(*update.LastName))
		sets = append(sets, fmt.Sprintf("last_name = $%d", len(args)))
	}
	if update.Email != nil {
		args = append(args, nullableString(*update.Email))
		sets = append(sets, fmt.Sprintf("email = $%d", len(args)))
	}
	if update.Phone != nil {
		args = append(args, nullableString(*update.Phone))
		sets = append(sets, fmt.Sprintf("phone = $%d", len(args)))
	}

	args = append(args, id, username)
	query := fmt.Sprintf(`
		UPDATE contacts
		SET %s
		WHERE id = $%d AND username = $%d
		RETURNING `+contactColumns+`
	`, strings.Join(sets, ", "), len(args)-1, len(args))

	contact, err := scanContact(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("contact not found for update",
				slog.Int64("contact_id", id),
				slog.String("username", username))
			return nil, store.ErrContactNotFound
		}
		log.Error("failed to update contact",
			slog.String("error", redact.Error(err)),
			slog.Int64("contact_id", id))
		return nil, err
	}

	log.Info("contact updated successfully",
		slog.Int64("contact_id", id),
		slog.String("username", username))
	return contact, nil
}

// Delete implements store.ContactStore.Delete
// Addresses under the contact are removed by the ON DELETE CASCADE constraint.
func (s *PostgresContactStore) Delete(ctx context.Context, username string, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM contacts
		WHERE id = $1 AND username = $2
	`

	result, err := s.db.ExecContext(ctx, query, id, username)
	if err != nil {
		log.Error("failed to delete contact",
			slog.String("error", redact.Error(err)),
			slog.Int64("contact_id", id))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("contact_id", id))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("contact not found for delete",
			slog.Int64("contact_id", id),
			slog.String("username", username))
		return store.ErrContactNotFound
	}

	log.Info("contact deleted successfully",
		slog.Int64("contact_id", id),
		slog.String("username", username))
	return nil
}

// List implements store.ContactStore.List
func (s *PostgresContactStore) List(
	ctx context.Context,
	filter store.ContactFilter,
	page store.Page,
) ([]*domain.Contact, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	where, args := buildContactWhere(filter)
	args = append(args, page.Size, page.Offset())
	query := fmt.Sprintf(`
		SELECT `+contactColumns+`
		FROM contacts
		WHERE %s
		ORDER BY id
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list contacts",
			slog.String("error", redact.Error(err)),
			slog.String("username", filter.Username))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	contacts := []*domain.Contact{}
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			log.Error("failed to scan contact row",
				slog.String("error", err.Error()))
			return nil, err
		}
		contacts = append(contacts, contact)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	return contacts, nil
}

// Count implements store.ContactStore.Count
func (s *PostgresContactStore) Count(ctx context.Context, filter store.ContactFilter) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	where, args := buildContactWhere(filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM contacts WHERE %s`, where)

	var total int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		log.Error("failed to count contacts",
			slog.String("error", redact.Error(err)),
			slog.String("username", filter.Username))
		return 0, err
	}

	return total, nil
}

// WithTx implements store.ContactStore.WithTx
func (s *PostgresContactStore) WithTx(tx *sql.Tx) store.ContactStore {
	return &PostgresContactStore{
		db:     tx,
		logger: s.logger,
	}
}
