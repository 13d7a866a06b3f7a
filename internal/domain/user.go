package domain

import (
	"fmt"
	"time"
)

// Common user validation errors. All wrap ErrValidation so callers can match
// the whole category with errors.Is.
var (
	ErrEmptyUsername   = fmt.Errorf("%w: username cannot be empty", ErrValidation)
	ErrUsernameTooLong = fmt.Errorf("%w: username must be at most 100 characters long", ErrValidation)
	ErrEmptyName       = fmt.Errorf("%w: name cannot be empty", ErrValidation)
	ErrNameTooLong     = fmt.Errorf("%w: name must be at most 100 characters long", ErrValidation)
	ErrEmptyPassword   = fmt.Errorf("%w: password cannot be empty", ErrValidation)
)

// User represents a registered account. The username is the unique,
// immutable identifier; the password is only ever stored hashed.
type User struct {
	Username       string    `json:"username"`
	Name           string    `json:"name"`
	HashedPassword string    `json:"-"` // Never expose the password hash in JSON
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given username, name and hashed
// password, setting the creation/update timestamps.
// Returns an error if validation fails.
func NewUser(username, name, hashedPassword string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		Username:       username,
		Name:           name,
		HashedPassword: hashedPassword,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.Username == "" {
		return ErrEmptyUsername
	}
	if len(u.Username) > 100 {
		return ErrUsernameTooLong
	}
	if u.Name == "" {
		return ErrEmptyName
	}
	if len(u.Name) > 100 {
		return ErrNameTooLong
	}
	if u.HashedPassword == "" {
		return ErrEmptyPassword
	}
	return nil
}
