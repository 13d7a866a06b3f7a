package domain

import (
	"fmt"
	"time"
)

// Common address validation errors. All wrap ErrValidation so callers can
// match the whole category with errors.Is.
var (
	ErrEmptyAddressContact = fmt.Errorf("%w: address contact reference cannot be empty", ErrValidation)
	ErrStreetTooLong       = fmt.Errorf("%w: street must be at most 256 characters long", ErrValidation)
	ErrCityTooLong         = fmt.Errorf("%w: city must be at most 100 characters long", ErrValidation)
	ErrProvinceTooLong     = fmt.Errorf("%w: province must be at most 100 characters long", ErrValidation)
	ErrEmptyCountry        = fmt.Errorf("%w: country cannot be empty", ErrValidation)
	ErrCountryTooLong      = fmt.Errorf("%w: country must be at most 100 characters long", ErrValidation)
	ErrEmptyPostalCode     = fmt.Errorf("%w: postal code cannot be empty", ErrValidation)
	ErrPostalCodeTooLong   = fmt.Errorf("%w: postal code must be at most 10 characters long", ErrValidation)
)

// Address belongs to a contact and is only reachable through a contact owned
// by the requesting user; the ownership chain is re-checked on every access.
type Address struct {
	ID         int64     `json:"id"`
	ContactID  int64     `json:"-"` // Parent reference, never serialized
	Street     string    `json:"street,omitempty"`
	City       string    `json:"city,omitempty"`
	Province   string    `json:"province,omitempty"`
	Country    string    `json:"country"`
	PostalCode string    `json:"postal_code"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewAddress creates an address under the given contact.
// The ID is assigned by the store on insert.
// Returns an error if validation fails.
func NewAddress(contactID int64, street, city, province, country, postalCode string) (*Address, error) {
	now := time.Now().UTC()
	address := &Address{
		ContactID:  contactID,
		Street:     street,
		City:       city,
		Province:   province,
		Country:    country,
		PostalCode: postalCode,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := address.Validate(); err != nil {
		return nil, err
	}

	return address, nil
}

// Validate checks if the Address has valid data.
func (a *Address) Validate() error {
	if a.ContactID <= 0 {
		return ErrEmptyAddressContact
	}
	if len(a.Street) > 256 {
		return ErrStreetTooLong
	}
	if len(a.City) > 100 {
		return ErrCityTooLong
	}
	if len(a.Province) > 100 {
		return ErrProvinceTooLong
	}
	if a.Country == "" {
		return ErrEmptyCountry
	}
	if len(a.Country) > 100 {
		return ErrCountryTooLong
	}
	if a.PostalCode == "" {
		return ErrEmptyPostalCode
	}
	if len(a.PostalCode) > 10 {
		return ErrPostalCodeTooLong
	}
	return nil
}
