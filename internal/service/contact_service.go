package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/contactdesk/contacts-api/internal/domain"
	"github.com/contactdesk/contacts-api/internal/store"
)

// ContactInput carries the validated fields of a contact create request.
type ContactInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// ContactUpdateInput carries the fields of a contact update.
// Nil pointer fields are left unchanged.
type ContactUpdateInput struct {
	FirstName string
	LastName  *string
	Email     *string
	Phone     *string
}

// SearchInput carries the validated parameters of a contact search.
// Empty filter strings mean "no filter"; Page and Size already have their
// defaults applied.
type SearchInput struct {
	Name  string
	Email string
	Phone string
	Page  int
	Size  int
}

// Paging describes the pagination window of a search result.
type Paging struct {
	Page      int   `json:"page"`
	TotalItem int64 `json:"total_item"`
	TotalPage int64 `json:"total_page"`
}

// ContactPage is one page of search results together with its paging info.
type ContactPage struct {
	Contacts []*domain.Contact
	Paging   Paging
}

// ContactService implements ownership-scoped CRUD and search on contacts.
// Every operation is filtered by the authenticated user's username; a contact
// id owned by someone else is indistinguishable from a missing one.
type ContactService struct {
	contactStore store.ContactStore
	logger       *slog.Logger
}

// NewContactService creates a new ContactService with the given dependencies.
func NewContactService(contactStore store.ContactStore, logger *slog.Logger) (*ContactService, error) {
	if contactStore == nil {
		return nil, fmt.Errorf("contact store cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	return &ContactService{
		contactStore: contactStore,
		logger:       logger.With(slog.String("component", "contact_service")),
	}, nil
}

// Create stores a new contact owned by the user.
func (s *ContactService) Create(ctx context.Context, user *domain.User, input ContactInput) (*domain.Contact, error) {
	contact, err := domain.NewContact(user.Username, input.FirstName, input.LastName, input.Email, input.Phone)
	if err != nil {
		return nil, err
	}

	if err := s.contactStore.Create(ctx, contact); err != nil {
		return nil, err
	}

	return contact, nil
}

// Get fetches the contact by (id, owner).
// Returns store.ErrContactNotFound if absent or not owned by the user.
func (s *ContactService) Get(ctx context.Context, user *domain.User, id int64) (*domain.Contact, error) {
	return s.contactStore.Get(ctx, user.Username, id)
}

// Update applies the given changes to the contact. The store performs the
// write with a combined (id, owner) predicate, so the ownership check and the
// mutation are a single atomic statement.
// Returns store.ErrContactNotFound if absent or not owned by the user.
func (s *ContactService) Update(
	ctx context.Context,
	user *domain.User,
	id int64,
	input ContactUpdateInput,
) (*domain.Contact, error) {
	return s.contactStore.Update(ctx, user.Username, id, store.ContactUpdate{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
	})
}

// Remove deletes the contact and, through the schema's cascade, all of its
// addresses. Returns store.ErrContactNotFound if absent or not owned.
func (s *ContactService) Remove(ctx context.Context, user *domain.User, id int64) error {
	return s.contactStore.Delete(ctx, user.Username, id)
}

// Search returns one page of the user's contacts matching the filters.
// The owner scope is mandatory and unconditional; the optional name, email
// and phone filters are combined with AND, where the name filter matches
// first OR last name. The total count is computed under the same filter set
// without the page window.
func (s *ContactService) Search(ctx context.Context, user *domain.User, input SearchInput) (*ContactPage, error) {
	filter := store.ContactFilter{
		Username: user.Username,
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
	}
	page := store.Page{Number: input.Page, Size: input.Size}

	contacts, err := s.contactStore.List(ctx, filter, page)
	if err != nil {
		return nil, err
	}

	total, err := s.contactStore.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ContactPage{
		Contacts: contacts,
		Paging: Paging{
			Page:      input.Page,
			TotalItem: total,
			TotalPage: totalPages(total, input.Size),
		},
	}, nil
}

// totalPages computes ceil(total/size); an empty result set yields 0.
func totalPages(total int64, size int) int64 {
	if size <= 0 {
		return 0
	}
	return (total + int64(size) - 1) / int64(size)
}
