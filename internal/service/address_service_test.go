package service

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contactdesk/contacts-api/internal/domain"
	"github.com/contactdesk/contacts-api/internal/store"
)

type addressServiceFixture struct {
	svc       *AddressService
	contacts  *fakeContactStore
	addresses *fakeAddressStore
	mock      sqlmock.Sqlmock
}

func newAddressServiceFixture(t *testing.T) *addressServiceFixture {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	contacts := newFakeContactStore()
	addresses := newFakeAddressStore()

	svc, err := NewAddressService(db, contacts, addresses, testLogger())
	require.NoError(t, err)

	return &addressServiceFixture{svc: svc, contacts: contacts, addresses: addresses, mock: mock}
}

func (f *addressServiceFixture) createContact(t *testing.T, username string) *domain.Contact {
	t.Helper()
	contact, err := domain.NewContact(username, "John", "Doe", "", "")
	require.NoError(t, err)
	require.NoError(t, f.contacts.Create(context.Background(), contact))
	return contact
}

func (f *addressServiceFixture) createAddress(t *testing.T, user *domain.User, contactID int64) *domain.Address {
	t.Helper()
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	address, err := f.svc.Create(context.Background(), user, contactID, AddressInput{
		Street:     "Main St 1",
		City:       "Springfield",
		Country:    "USA",
		PostalCode: "12345",
	})
	require.NoError(t, err)
	return address
}

func TestCreateAddress(t *testing.T) {
	f := newAddressServiceFixture(t)
	alice := testUser("alice")
	contact := f.createContact(t, "alice")

	address := f.createAddress(t, alice, contact.ID)
	assert.NotZero(t, address.ID)
	assert.Equal(t, contact.ID, address.ContactID)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestCreateAddressContactMissing(t *testing.T) {
	f := newAddressServiceFixture(t)
	alice := testUser("alice")

	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	_, err := f.svc.Create(context.Background(), alice, 42, AddressInput{
		Country:    "USA",
		PostalCode: "12345",
	})
	assert.ErrorIs(t, err, store.ErrContactNotFound)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestCreateAddressForeignContact(t *testing.T) {
	f := newAddressServiceFixture(t)
	contact := f.createContact(t, "alice")

	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	_, err := f.svc.Create(context.Background(), testUser("bob"), contact.ID, AddressInput{
		Country:    "USA",
		PostalCode: "12345",
	})
	assert.ErrorIs(t, err, store.ErrContactNotFound)
}

func TestGetAddress(t *testing.T) {
	f := newAddressServiceFixture(t)
	alice := testUser("alice")
	contact := f.createContact(t, "alice")
	address := f.createAddress(t, alice, contact.ID)

	got, err := f.svc.Get(context.Background(), alice, contact.ID, address.ID)
	require.NoError(t, err)
	assert.Equal(t, address.ID, got.ID)
}

func TestGetAddressManipulatedContactID(t *testing.T) {
	f := newAddressServiceFixture(t)
	alice := testUser("alice")
	contact := f.createContact(t, "alice")
	address := f.createAddress(t, alice, contact.ID)

	// The address row exists, but the path names a contact that does not.
	_, err := f.svc.Get(context.Background(), alice, contact.ID+1, address.ID)
	assert.ErrorIs(t, err, store.ErrContactNotFound)
}

func TestGetAddressUnderSiblingContact(t *testing.T) {
	f := newAddressServiceFixture(t)
	alice := testUser("alice")
	contactA := f.createContact(t, "alice")
	contactB := f.createContact(t, "alice")
	address := f.createAddress(t, alice, contactA.ID)

	// Both contacts are owned, but the address lives under the other one.
	_, err := f.svc.Get(context.Background(), alice, contactB.ID, address.ID)
	assert.ErrorIs(t, err, store.ErrAddressNotFound)
}

func TestListAddresses(t *testing.T) {
	f := newAddressServiceFixture(t)
	alice := testUser("alice")
	contact := f.createContact(t, "alice")
	f.createAddress(t, alice, contact.ID)
	f.createAddress(t, alice, contact.ID)

	addresses, err := f.svc.List(context.Background(), alice, contact.ID)
	require.NoError(t, err)
	assert.Len(t, addresses, 2)
}

func TestListAddressesForeignContact(t *testing.T) {
	f := newAddressServiceFixture(t)
	contact := f.createContact(t, "alice")

	_, err := f.svc.List(context.Background(), testUser("bob"), contact.ID)
	assert.ErrorIs(t, err, store.ErrContactNotFound)
}

func TestUpdateAddressPartial(t *testing.T) {
	f := newAddressServiceFixture(t)
	alice := testUser("alice")
	contact := f.createContact(t, "alice")
	address := f.createAddress(t, alice, contact.ID)

	city := "Shelbyville"
	updated, err := f.svc.Update(context.Background(), alice, contact.ID, address.ID, AddressUpdateInput{
		City:       &city,
		Country:    "USA",
		PostalCode: "54321",
	})
	require.NoError(t, err)
	assert.Equal(t, "Shelbyville", updated.City)
	assert.Equal(t, "54321", updated.PostalCode)
	assert.Equal(t, "Main St 1", updated.Street, "omitted field must keep its value")
}

func TestRemoveAddressTwice(t *testing.T) {
	f := newAddressServiceFixture(t)
	alice := testUser("alice")
	contact := f.createContact(t, "alice")
	address := f.createAddress(t, alice, contact.ID)

	require.NoError(t, f.svc.Remove(context.Background(), alice, contact.ID, address.ID))
	assert.ErrorIs(t, f.svc.Remove(context.Background(), alice, contact.ID, address.ID),
		store.ErrAddressNotFound)
}
