package api

import (
	"errors"
	"net/http"

	"github.com/contactdesk/contacts-api/internal/api/shared"
	"github.com/contactdesk/contacts-api/internal/domain"
	"github.com/contactdesk/contacts-api/internal/service"
	"github.com/contactdesk/contacts-api/internal/service/auth"
	"github.com/contactdesk/contacts-api/internal/store"
)

// MapErrorToStatusCode translates service and store errors into HTTP status
// codes. Unknown errors are a 500.
func MapErrorToStatusCode(err error) int {
	var valErr *domain.ValidationError

	switch {
	case errors.As(err, &valErr),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrDuplicate),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return http.StatusUnauthorized
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// errorPayload builds the value for the errors envelope field. Validation
// failures carry their field map; everything else is a single message safe to
// show a client.
func errorPayload(err error) any {
	var valErr *domain.ValidationError
	if errors.As(err, &valErr) {
		return valErr.Fields
	}

	switch {
	case errors.Is(err, domain.ErrInvalidID):
		return err.Error()
	case errors.Is(err, domain.ErrValidation):
		return err.Error()
	case errors.Is(err, store.ErrUsernameExists):
		return "username already exists"
	case errors.Is(err, store.ErrInvalidEntity):
		return "referenced record does not exist"
	case errors.Is(err, service.ErrInvalidCredentials):
		return "invalid username or password"
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return "Unauthorized"
	case errors.Is(err, store.ErrUserNotFound):
		return "user not found"
	case errors.Is(err, store.ErrContactNotFound):
		return "contact not found"
	case errors.Is(err, store.ErrAddressNotFound):
		return "address not found"
	case errors.Is(err, store.ErrNotFound):
		return "not found"
	default:
		return "internal server error"
	}
}

// HandleServiceError maps an error from the service layer onto the wire:
// status code plus errors envelope, with the raw error logged server-side.
func HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	shared.RespondWithErrorAndLog(w, r, status, errorPayload(err), err)
}
