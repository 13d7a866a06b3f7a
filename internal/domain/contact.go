package domain

import (
	"fmt"
	"time"
)

// Common contact validation errors. All wrap ErrValidation so callers can
// match the whole category with errors.Is.
var (
	ErrEmptyContactOwner   = fmt.Errorf("%w: contact owner cannot be empty", ErrValidation)
	ErrEmptyFirstName      = fmt.Errorf("%w: first name cannot be empty", ErrValidation)
	ErrFirstNameTooLong    = fmt.Errorf("%w: first name must be at most 100 characters long", ErrValidation)
	ErrLastNameTooLong     = fmt.Errorf("%w: last name must be at most 100 characters long", ErrValidation)
	ErrContactEmailTooLong = fmt.Errorf("%w: email must be at most 100 characters long", ErrValidation)
	ErrPhoneTooLong        = fmt.Errorf("%w: phone must be at most 20 characters long", ErrValidation)
)

// Contact is a single address-book entry. Every contact belongs to exactly
// one user, referenced by Username; all access is filtered by that owner.
type Contact struct {
	ID        int64     `json:"id"`
	Username  string    `json:"-"` // Owner reference, never serialized
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewContact creates a contact owned by the given username.
// The ID is assigned by the store on insert.
// Returns an error if validation fails.
func NewContact(username, firstName, lastName, email, phone string) (*Contact, error) {
	now := time.Now().UTC()
	contact := &Contact{
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Phone:     phone,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := contact.Validate(); err != nil {
		return nil, err
	}

	return contact, nil
}

// Validate checks if the Contact has valid data.
func (c *Contact) Validate() error {
	if c.Username == "" {
		return ErrEmptyContactOwner
	}
	if c.FirstName == "" {
		return ErrEmptyFirstName
	}
	if len(c.FirstName) > 100 {
		return ErrFirstNameTooLong
	}
	if len(c.LastName) > 100 {
		return ErrLastNameTooLong
	}
	if len(c.Email) > 100 {
		return ErrContactEmailTooLong
	}
	if len(c.Phone) > 20 {
		return ErrPhoneTooLong
	}
	return nil
}
