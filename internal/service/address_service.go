package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/contactdesk/contacts-api/internal/domain"
	"github.com/contactdesk/contacts-api/internal/store"
)

// AddressInput carries the validated fields of an address create request.
type AddressInput struct {
	Street     string
	City       string
	Province   string
	Country    string
	PostalCode string
}

// AddressUpdateInput carries the fields of an address update.
// Nil pointer fields are left unchanged.
type AddressUpdateInput struct {
	Street     *string
	City       *string
	Province   *string
	Country    string
	PostalCode string
}

// AddressService implements CRUD on addresses nested under a contact.
// Every operation first re-derives the ownership chain: the named contact
// must exist and be owned by the requester before the address is even
// considered, so a wrong or foreign contact id yields a contact NotFound
// regardless of whether the address row exists.
type AddressService struct {
	db           *sql.DB
	contactStore store.ContactStore
	addressStore store.AddressStore
	logger       *slog.Logger
}

// NewAddressService creates a new AddressService with the given dependencies.
// The database handle is used to run the contact check and the address write
// in one transaction where that closes a race window.
func NewAddressService(
	db *sql.DB,
	contactStore store.ContactStore,
	addressStore store.AddressStore,
	logger *slog.Logger,
) (*AddressService, error) {
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	if contactStore == nil {
		return nil, fmt.Errorf("contact store cannot be nil")
	}
	if addressStore == nil {
		return nil, fmt.Errorf("address store cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	return &AddressService{
		db:           db,
		contactStore: contactStore,
		addressStore: addressStore,
		logger:       logger.With(slog.String("component", "address_service")),
	}, nil
}

// checkContactMustExist verifies that the contact exists and is owned by the
// user. Returns store.ErrContactNotFound otherwise. Called at the top of
// every address operation; ownership is never carried over from a previous
// call.
func checkContactMustExist(ctx context.Context, contacts store.ContactStore, user *domain.User, contactID int64) error {
	exists, err := contacts.Exists(ctx, user.Username, contactID)
	if err != nil {
		return err
	}
	if !exists {
		return store.ErrContactNotFound
	}
	return nil
}

// Create stores a new address under the contact. The ownership check and the
// insert run in a single transaction so a concurrent contact delete cannot
// slip between them.
func (s *AddressService) Create(
	ctx context.Context,
	user *domain.User,
	contactID int64,
	input AddressInput,
) (*domain.Address, error) {
	address, err := domain.NewAddress(contactID, input.Street, input.City, input.Province, input.Country, input.PostalCode)
	if err != nil {
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := checkContactMustExist(ctx, s.contactStore.WithTx(tx), user, contactID); err != nil {
			return err
		}
		return s.addressStore.WithTx(tx).Create(ctx, address)
	})
	if err != nil {
		return nil, err
	}

	return address, nil
}

// Get fetches the address by (contact, id) after re-checking contact
// ownership. Returns store.ErrContactNotFound or store.ErrAddressNotFound.
func (s *AddressService) Get(
	ctx context.Context,
	user *domain.User,
	contactID, addressID int64,
) (*domain.Address, error) {
	if err := checkContactMustExist(ctx, s.contactStore, user, contactID); err != nil {
		return nil, err
	}
	return s.addressStore.Get(ctx, contactID, addressID)
}

// List returns all addresses under the contact after re-checking contact
// ownership.
func (s *AddressService) List(ctx context.Context, user *domain.User, contactID int64) ([]*domain.Address, error) {
	if err := checkContactMustExist(ctx, s.contactStore, user, contactID); err != nil {
		return nil, err
	}
	return s.addressStore.ListByContact(ctx, contactID)
}

// Update applies the given changes to the address after re-checking contact
// ownership. The store writes with a combined (id, contact) predicate, so an
// address id under a different contact is not found rather than touched.
func (s *AddressService) Update(
	ctx context.Context,
	user *domain.User,
	contactID, addressID int64,
	input AddressUpdateInput,
) (*domain.Address, error) {
	if err := checkContactMustExist(ctx, s.contactStore, user, contactID); err != nil {
		return nil, err
	}
	return s.addressStore.Update(ctx, contactID, addressID, store.AddressUpdate{
		Street:     input.Street,
		City:       input.City,
		Province:   input.Province,
		Country:    input.Country,
		PostalCode: input.PostalCode,
	})
}

// Remove deletes the address after re-checking contact ownership.
func (s *AddressService) Remove(ctx context.Context, user *domain.User, contactID, addressID int64) error {
	if err := checkContactMustExist(ctx, s.contactStore, user, contactID); err != nil {
		return err
	}
	return s.addressStore.Delete(ctx, contactID, addressID)
}
