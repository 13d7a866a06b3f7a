package store

import (
	"context"
	"database/sql"

	"github.com/contactdesk/contacts-api/internal/domain"
)

// ContactFilter is an explicit, typed filter set for contact searches.
// Username is the mandatory owner scope; the optional filters are substring
// matches combined with AND, where Name matches first OR last name.
// Store implementations compile it to their own query form.
type ContactFilter struct {
	Username string
	Name     string
	Email    string
	Phone    string
}

// Page describes a pagination window. Number is 1-based.
type Page struct {
	Number int
	Size   int
}

// Offset returns the number of rows to skip for this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// ContactUpdate carries the fields of a contact update. FirstName is always
// applied; nil pointer fields are left unchanged.
type ContactUpdate struct {
	FirstName string
	LastName  *string
	Email     *string
	Phone     *string
}

// ContactStore defines the interface for contact data persistence.
// Every read and mutation is scoped by the owner username; an id that exists
// but belongs to another user behaves exactly like a missing row.
type ContactStore interface {
	// Create saves a new contact and assigns its generated ID.
	// Returns ErrInvalidEntity if the owner user does not exist.
	Create(ctx context.Context, contact *domain.Contact) error

	// Get retrieves a contact by (owner, id).
	// Returns ErrContactNotFound if absent or not owned by username.
	Get(ctx context.Context, username string, id int64) (*domain.Contact, error)

	// Exists reports whether a contact with the given id is owned by username.
	Exists(ctx context.Context, username string, id int64) (bool, error)

	// Update applies the given changes to the contact matching (owner, id)
	// in a single statement and returns the updated row.
	// Returns ErrContactNotFound if no row matched.
	Update(ctx context.Context, username string, id int64, update ContactUpdate) (*domain.Contact, error)

	// Delete removes the contact matching (owner, id). Addresses under the
	// contact are removed with it.
	// Returns ErrContactNotFound if no row matched.
	Delete(ctx context.Context, username string, id int64) error

	// List returns the contacts matching the filter within the page window,
	// ordered by id.
	List(ctx context.Context, filter ContactFilter, page Page) ([]*domain.Contact, error)

	// Count returns the total number of contacts matching the filter,
	// ignoring any page window.
	Count(ctx context.Context, filter ContactFilter) (int64, error)

	// WithTx returns a new ContactStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) ContactStore
}
