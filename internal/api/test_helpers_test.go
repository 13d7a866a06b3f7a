package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apiMiddleware "github.com/contactdesk/contacts-api/internal/api/middleware"
	"github.com/contactdesk/contacts-api/internal/config"
	"github.com/contactdesk/contacts-api/internal/domain"
	"github.com/contactdesk/contacts-api/internal/service"
	"github.com/contactdesk/contacts-api/internal/service/auth"
	"github.com/contactdesk/contacts-api/internal/store"
)

// memUserStore is a minimal in-memory UserStore for handler tests.
type memUserStore struct {
	users map[string]domain.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]domain.User)}
}

func (s *memUserStore) Create(ctx context.Context, user *domain.User) error {
	if _, exists := s.users[user.Username]; exists {
		return store.ErrUsernameExists
	}
	s.users[user.Username] = *user
	return nil
}

func (s *memUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, ok := s.users[username]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return &user, nil
}

func (s *memUserStore) Update(ctx context.Context, user *domain.User) error {
	if _, ok := s.users[user.Username]; !ok {
		return store.ErrUserNotFound
	}
	s.users[user.Username] = *user
	return nil
}

func (s *memUserStore) WithTx(tx *sql.Tx) store.UserStore { return s }

// userAPIFixture wires the user endpoints onto a real router with a real JWT
// service and bcrypt hasher, backed by the in-memory store.
type userAPIFixture struct {
	router    http.Handler
	userStore *memUserStore
}

func newUserAPIFixture(t *testing.T) *userAPIFixture {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	userStore := newMemUserStore()

	jwtService, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            "test-secret-key-that-is-32-chars-long!!",
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)

	userService, err := service.NewUserService(userStore, jwtService, auth.NewBcryptHasher(bcrypt.MinCost), log)
	require.NoError(t, err)

	userHandler := NewUserHandler(userService, log)
	authMiddleware := apiMiddleware.NewAuthMiddleware(jwtService, userStore, log)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/users", userHandler.Register)
		r.Post("/users/login", userHandler.Login)
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Get("/users/current", userHandler.Current)
			r.Patch("/users/current", userHandler.Update)
			r.Delete("/users/logout", userHandler.Logout)
		})
	})

	return &userAPIFixture{router: r, userStore: userStore}
}

// envelope mirrors the response body shape for decoding in tests.
type envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors json.RawMessage `json:"errors"`
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

// memContactStore is a minimal in-memory ContactStore for handler tests.
type memContactStore struct {
	nextID   int64
	contacts map[int64]domain.Contact
}

func newMemContactStore() *memContactStore {
	return &memContactStore{contacts: make(map[int64]domain.Contact)}
}

func (s *memContactStore) Create(ctx context.Context, contact *domain.Contact) error {
	s.nextID++
	contact.ID = s.nextID
	s.contacts[contact.ID] = *contact
	return nil
}

func (s *memContactStore) Get(ctx context.Context, username string, id int64) (*domain.Contact, error) {
	contact, ok := s.contacts[id]
	if !ok || contact.Username != username {
		return nil, store.ErrContactNotFound
	}
	return &contact, nil
}

func (s *memContactStore) Exists(ctx context.Context, username string, id int64) (bool, error) {
	contact, ok := s.contacts[id]
	return ok && contact.Username == username, nil
}

func (s *memContactStore) Update(
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
	s.contacts[id] = contact
	return &contact, nil
}

func (s *memContactStore) Delete(ctx context.Context, username string, id int64) error {
	contact, ok := s.contacts[id]
	if !ok || contact.Username != username {
		return store.ErrContactNotFound
	}
	delete(s.contacts, id)
	return nil
}

func (s *memContactStore) owned(username string) []domain.Contact {
	var out []domain.Contact
	for id := int64(1); id <= s.nextID; id++ {
		if contact, ok := s.contacts[id]; ok && contact.Username == username {
			out = append(out, contact)
		}
	}
	return out
}

func (s *memContactStore) List(
	ctx context.Context,
	filter store.ContactFilter,
	page store.Page,
) ([]*domain.Contact, error) {
	matched := s.owned(filter.Username)

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

func (s *memContactStore) Count(ctx context.Context, filter store.ContactFilter) (int64, error) {
	return int64(len(s.owned(filter.Username))), nil
}

func (s *memContactStore) WithTx(tx *sql.Tx) store.ContactStore { return s }

// contactAPIFixture extends the user fixture with the contact endpoints.
type contactAPIFixture struct {
	*userAPIFixture
	contactStore *memContactStore
}

func newContactAPIFixture(t *testing.T) *contactAPIFixture {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	userStore := newMemUserStore()
	contactStore := newMemContactStore()

	jwtService, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            "test-secret-key-that-is-32-chars-long!!",
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)

	userService, err := service.NewUserService(userStore, jwtService, auth.NewBcryptHasher(bcrypt.MinCost), log)
	require.NoError(t, err)
	contactService, err := service.NewContactService(contactStore, log)
	require.NoError(t, err)

	userHandler := NewUserHandler(userService, log)
	contactHandler := NewContactHandler(contactService, log)
	authMiddleware := apiMiddleware.NewAuthMiddleware(jwtService, userStore, log)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/users", userHandler.Register)
		r.Post("/users/login", userHandler.Login)
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Post("/contacts", contactHandler.Create)
			r.Get("/contacts", contactHandler.Search)
			r.Get("/contacts/{contactID}", contactHandler.Get)
			r.Put("/contacts/{contactID}", contactHandler.Update)
			r.Delete("/contacts/{contactID}", contactHandler.Delete)
		})
	})

	return &contactAPIFixture{
		userAPIFixture: &userAPIFixture{router: r, userStore: userStore},
		contactStore:   contactStore,
	}
}

// memAddressStore is a minimal in-memory AddressStore for handler tests.
type memAddressStore struct {
	nextID    int64
	addresses map[int64]domain.Address
}

func newMemAddressStore() *memAddressStore {
	return &memAddressStore{addresses: make(map[int64]domain.Address)}
}

func (s *memAddressStore) Create(ctx context.Context, address *domain.Address) error {
	s.nextID++
	address.ID = s.nextID
	s.addresses[address.ID] = *address
	return nil
}

func (s *memAddressStore) Get(ctx context.Context, contactID, addressID int64) (*domain.Address, error) {
	address, ok := s.addresses[addressID]
	if !ok || address.ContactID != contactID {
		return nil, store.ErrAddressNotFound
	}
	return &address, nil
}

func (s *memAddressStore) ListByContact(ctx context.Context, contactID int64) ([]*domain.Address, error) {
	var out []*domain.Address
	for id := int64(1); id <= s.nextID; id++ {
		if address, ok := s.addresses[id]; ok && address.ContactID == contactID {
			out = append(out, &address)
		}
	}
	return out, nil
}

func (s *memAddressStore) Update(
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
	s.addresses[addressID] = address
	return &address, nil
}

func (s *memAddressStore) Delete(ctx context.Context, contactID, addressID int64) error {
	address, ok := s.addresses[addressID]
	if !ok || address.ContactID != contactID {
		return store.ErrAddressNotFound
	}
	delete(s.addresses, addressID)
	return nil
}

func (s *memAddressStore) WithTx(tx *sql.Tx) store.AddressStore { return s }

// addressAPIFixture extends the contact fixture with the address endpoints.
// The address service runs creates inside a transaction, so the fixture
// carries a mocked database handle; tests expect a Begin/Commit pair per
// create.
type addressAPIFixture struct {
	*contactAPIFixture
	addressStore *memAddressStore
	mock         sqlmock.Sqlmock
}

func newAddressAPIFixture(t *testing.T) *addressAPIFixture {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	userStore := newMemUserStore()
	contactStore := newMemContactStore()
	addressStore := newMemAddressStore()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	jwtService, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            "test-secret-key-that-is-32-chars-long!!",
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)

	userService, err := service.NewUserService(userStore, jwtService, auth.NewBcryptHasher(bcrypt.MinCost), log)
	require.NoError(t, err)
	contactService, err := service.NewContactService(contactStore, log)
	require.NoError(t, err)
	addressService, err := service.NewAddressService(db, contactStore, addressStore, log)
	require.NoError(t, err)

	userHandler := NewUserHandler(userService, log)
	contactHandler := NewContactHandler(contactService, log)
	addressHandler := NewAddressHandler(addressService, log)
	authMiddleware := apiMiddleware.NewAuthMiddleware(jwtService, userStore, log)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/users", userHandler.Register)
		r.Post("/users/login", userHandler.Login)
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Post("/contacts", contactHandler.Create)
			r.Get("/contacts/{contactID}", contactHandler.Get)
			r.Post("/contacts/{contactID}/addresses", addressHandler.Create)
			r.Get("/contacts/{contactID}/addresses", addressHandler.List)
			r.Get("/contacts/{contactID}/addresses/{addressID}", addressHandler.Get)
			r.Put("/contacts/{contactID}/addresses/{addressID}", addressHandler.Update)
			r.Delete("/contacts/{contactID}/addresses/{addressID}", addressHandler.Delete)
		})
	})

	return &addressAPIFixture{
		contactAPIFixture: &contactAPIFixture{
			userAPIFixture: &userAPIFixture{router: r, userStore: userStore},
			contactStore:   contactStore,
		},
		addressStore: addressStore,
		mock:         mock,
	}
}

func newRecorderFor(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func authedGet(t *testing.T, path, token string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func registerAndLogin(t *testing.T, f *userAPIFixture) string {
	t.Helper()

	rec, _ := doJSON(t, f.router, http.MethodPost, "/api/users", "", RegisterRequest{
		Username: "test",
		Password: "testpassword",
		Name:     "testuser",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env := doJSON(t, f.router, http.MethodPost, "/api/users/login", "", LoginRequest{
		Username: "test",
		Password: "testpassword",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var login LoginResponse
	require.NoError(t, json.Unmarshal(env.Data, &login))
	require.NotEmpty(t, login.Token)
	return login.Token
}
