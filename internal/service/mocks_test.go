package service

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"time"

	"github.com/contactdesk/contacts-api/internal/domain"
	"github.com/contactdesk/contacts-api/internal/store"
)

// In-memory store fakes for service tests. They enforce the same ownership
// scoping as the real stores so the services can be tested without a
// database.

type fakeUserStore struct {
	users map[string]domain.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]domain.User)}
}

func (s *fakeUserStore) Create(ctx context.Context, user *domain.User) error {
	if _, exists := s.users[user.Username]; exists {
		return store.ErrUsernameExists
	}
	s.users[user.Username] = *user
	return nil
}

func (s *fakeUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, ok := s.users[username]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return &user, nil
}

func (s *fakeUserStore) Update(ctx context.Context, user *domain.User) error {
	if _, ok := s.users[user.Username]; !ok {
		return store.ErrUserNotFound
	}
	s.users[user.Username] = *user
	return nil
}

func (s *fakeUserStore) WithTx(tx *sql.Tx) store.UserStore { return s }

type fakeContactStore struct {
	nextID   int64
	contacts map[int64]domain.Contact
}

func newFakeContactStore() *fakeContactStore {
	return &fakeContactStore{contacts: make(map[int64]domain.Contact)}
}

func (s *fakeContactStore) Create(ctx context.Context, contact *domain.Contact) error {
	s.nextID++
	contact.ID = s.nextID
	s.contacts[contact.ID] = *contact
	return nil
}

func (s *fakeContactStore) Get(ctx context.Context, username string, id int64) (*domain.Contact, error) {
	contact, ok := s.contacts[id]
	if !ok || contact.Username != username {
		return nil, store.ErrContactNotFound
	}
	return &contact, nil
}

func (s *fakeContactStore) Exists(ctx context.Context, username string, id int64) (bool, error) {
	contact, ok := s.contacts[id]
	return ok && contact.Username == username, nil
}

func (s *fakeContactStore) Update(
	ctx context.Context,
	username string,
	id int64,
	update store.ContactUpdate,
) (*domain.Contact, error) {
	contact, ok := s.contacts[id]
	if !ok || contact.Username != username {
		return nil, store.ErrContactNotFound
	}
	contact.FirstName = update.FirstName
	if update.LastName != nil {
		contact.LastName = *update.LastName
	}
	if update.Email != nil {
		contact.Email = *update.Email
	}
	if update.Phone != nil {
		contact.Phone = *update.Phone
	}
	contact.UpdatedAt = time.Now().UTC()
	s.contacts[id] = contact
	return &contact, nil
}

func (s *fakeContactStore) Delete(ctx context.Context, username string, id int64) error {
	contact, ok := s.contacts[id]
	if !ok || contact.Username != username {
		return store.ErrContactNotFound
	}
	delete(s.contacts, id)
	return nil
}

func (s *fakeContactStore) matching(filter store.ContactFilter) []domain.Contact {
	var out []domain.Contact
	for _, c := range s.contacts {
		if c.Username != filter.Username {
			continue
		}
		if filter.Name != "" &&
			!strings.Contains(c.FirstName, filter.Name) &&
			!strings.Contains(c.LastName, filter.Name) {
			continue
		}
		if filter.Email != "" && !strings.Contains(c.Email, filter.Email) {
			continue
		}
		if filter.Phone != "" && !strings.Contains(c.Phone, filter.Phone) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *fakeContactStore) List(
	ctx context.Context,
	filter store.ContactFilter,
	page store.Page,
) ([]*domain.Contact, error) {
	matched := s.matching(filter)

	start := page.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + page.Size
	if end > len(matched) {
		end = len(matched)
	}

	out := make([]*domain.Contact, 0, end-start)
	for i := start; i < end; i++ {
		contact := matched[i]
		out = append(out, &contact)
	}
	return out, nil
}

func (s *fakeContactStore) Count(ctx context.Context, filter store.ContactFilter) (int64, error) {
	return int64(len(s.matching(filter))), nil
}

func (s *fakeContactStore) WithTx(tx *sql.Tx) store.ContactStore { return s }

type fakeAddressStore struct {
	nextID    int64
	addresses map[int64]domain.Address
}

func newFakeAddressStore() *fakeAddressStore {
	return &fakeAddressStore{addresses: make(map[int64]domain.Address)}
}

func (s *fakeAddressStore) Create(ctx context.Context, address *domain.Address) error {
	s.nextID++
	address.ID = s.nextID
	s.addresses[address.ID] = *address
	return nil
}

func (s *fakeAddressStore) Get(ctx context.Context, contactID, addressID int64) (*domain.Address, error) {
	address, ok := s.addresses[addressID]
	if !ok || address.ContactID != contactID {
		return nil, store.ErrAddressNotFound
	}
	return &address, nil
}

func (s *fakeAddressStore) ListByContact(ctx context.Context, contactID int64) ([]*domain.Address, error) {
	var out []*domain.Address
	var ids []int64
	for id, a := range s.addresses {
		if a.ContactID == contactID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		address := s.addresses[id]
		out = append(out, &address)
	}
	return out, nil
}

func (s *fakeAddressStore) Update(
	ctx context.Context,
	contactID, addressID int64,
	update store.AddressUpdate,
) (*domain.Address, error) {
	address, ok := s.addresses[addressID]
	if !ok || address.ContactID != contactID {
		return nil, store.ErrAddressNotFound
	}
	if update.Street != nil {
		address.Street = *update.Street
	}
	if update.City != nil {
		address.City = *update.City
	}
	if update.Province != nil {
		address.Province = *update.Province
	}
	address.Country = update.Country
	address.PostalCode = update.PostalCode
	address.UpdatedAt = time.Now().UTC()
	s.addresses[addressID] = address
	return &address, nil
}

func (s *fakeAddressStore) Delete(ctx context.Context, contactID, addressID int64) error {
	address, ok := s.addresses[addressID]
	if !ok || address.ContactID != contactID {
		return store.ErrAddressNotFound
	}
	delete(s.addresses, addressID)
	return nil
}

func (s *fakeAddressStore) WithTx(tx *sql.Tx) store.AddressStore { return s }
