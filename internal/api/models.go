package api

import (
	"github.com/contactdesk/contacts-api/internal/domain"
)

// Request models

// RegisterRequest is the payload for user registration.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=100"`
	Name     string `json:"name" validate:"required,max=100"`
}

// LoginRequest is the payload for credential login.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=100"`
}

// UpdateUserRequest is the payload for a partial profile update.
// Absent fields are left unchanged.
type UpdateUserRequest struct {
	Password *string `json:"password" validate:"omitempty,min=1,max=100"`
	Name     *string `json:"name" validate:"omitempty,min=1,max=100"`
}

// CreateContactRequest is the payload for creating a contact.
type CreateContactRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"omitempty,max=100"`
	Email     string `json:"email" validate:"omitempty,email,max=100"`
	Phone     string `json:"phone" validate:"omitempty,max=20"`
}

// UpdateContactRequest is the payload for a full contact update.
// first_name is mandatory; absent optional fields are left unchanged.
type UpdateContactRequest struct {
	FirstName string  `json:"first_name" validate:"required,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
	Email     *string `json:"email" validate:"omitempty,email,max=100"`
	Phone     *string `json:"phone" validate:"omitempty,max=20"`
}

// CreateAddressRequest is the payload for creating an address.
type CreateAddressRequest struct {
	Street     string `json:"street" validate:"omitempty,max=256"`
	City       string `json:"city" validate:"omitempty,max=100"`
	Province   string `json:"province" validate:"omitempty,max=100"`
	Country    string `json:"country" validate:"required,max=100"`
	PostalCode string `json:"postal_code" validate:"required,max=10"`
}

// UpdateAddressRequest is the payload for an address update.
// country and postal_code stay mandatory; absent optional fields are left
// unchanged.
type UpdateAddressRequest struct {
	Street     *string `json:"street" validate:"omitempty,max=256"`
	City       *string `json:"city" validate:"omitempty,max=100"`
	Province   *string `json:"province" validate:"omitempty,max=100"`
	Country    string  `json:"country" validate:"required,max=100"`
	PostalCode string  `json:"postal_code" validate:"required,max=10"`
}

// SearchContactsQuery holds the parsed search query parameters with defaults
// already applied.
type SearchContactsQuery struct {
	Name  string `json:"name" validate:"omitempty,max=100"`
	Email string `json:"email" validate:"omitempty,max=100"`
	Phone string `json:"phone" validate:"omitempty,max=20"`
	Page  int    `json:"page" validate:"gte=1"`
	Size  int    `json:"size" validate:"gte=1,lte=100"`
}

// Response models. These are projections of the domain entities: credentials
// and ownership columns never appear in a response body.

// UserResponse is the public view of a user.
type UserResponse struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

// LoginResponse is the body of a successful login.
type LoginResponse struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

// ContactResponse is the public view of a contact.
type ContactResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// AddressResponse is the public view of an address.
type AddressResponse struct {
	ID         int64  `json:"id"`
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	Province   string `json:"province,omitempty"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

func userToResponse(u *domain.User) UserResponse {
	return UserResponse{Username: u.Username, Name: u.Name}
}

func contactToResponse(c *domain.Contact) ContactResponse {
	return ContactResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
	}
}

func contactsToResponse(contacts []*domain.Contact) []ContactResponse {
	out := make([]ContactResponse, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, contactToResponse(c))
	}
	return out
}

func addressToResponse(a *domain.Address) AddressResponse {
	return AddressResponse{
		ID:         a.ID,
		Street:     a.Street,
		City:       a.City,
		Province:   a.Province,
		Country:    a.Country,
		PostalCode: a.PostalCode,
	}
}

func addressesToResponse(addresses []*domain.Address) []AddressResponse {
	out := make([]AddressResponse, 0, len(addresses))
	for _, a := range addresses {
		out = append(out, addressToResponse(a))
	}
	return out
}
