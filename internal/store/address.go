package store

import (
	"context"
	"database/sql"

	"github.com/contactdesk/contacts-api/internal/domain"
)

// AddressUpdate carries the fields of an address update. Country and
// PostalCode are always applied; nil pointer fields are left unchanged.
type AddressUpdate struct {
	Street     *string
	City       *string
	Province   *string
	Country    string
	PostalCode string
}

// AddressStore defines the interface for address data persistence.
// Every read and mutation is scoped by the parent contact id; an address id
// that exists under a different contact behaves exactly like a missing row.
// Callers are responsible for verifying contact ownership first.
type AddressStore interface {
	// Create saves a new address and assigns its generated ID.
	// Returns ErrInvalidEntity if the contact does not exist.
	Create(ctx context.Context, address *domain.Address) error

	// Get retrieves an address by (contact id, address id).
	// Returns ErrAddressNotFound if absent or not under the contact.
	Get(ctx context.Context, contactID, addressID int64) (*domain.Address, error)

	// ListByContact returns all addresses under the contact, ordered by id.
	ListByContact(ctx context.Context, contactID int64) ([]*domain.Address, error)

	// Update applies the given changes to the address matching
	// (contact id, address id) in a single statement and returns the
	// updated row. Returns ErrAddressNotFound if no row matched.
	Update(ctx context.Context, contactID, addressID int64, update AddressUpdate) (*domain.Address, error)

	// Delete removes the address matching (contact id, address id).
	// Returns ErrAddressNotFound if no row matched.
	Delete(ctx context.Context, contactID, addressID int64) error

	// WithTx returns a new AddressStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) AddressStore
}
