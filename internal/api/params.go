package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/contactdesk/contacts-api/internal/domain"
)

// pathID reads a numeric path parameter. Anything that is not a positive
// integer is a client error, not a lookup miss.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidID, name)
	}
	return id, nil
}

// parseSearchQuery reads the search query parameters and applies the paging
// defaults. Absent page and size fall back to 1 and 10; non-numeric values
// are a client error.
func parseSearchQuery(r *http.Request) (SearchContactsQuery, error) {
	q := r.URL.Query()

	query := SearchContactsQuery{
		Name:  q.Get("name"),
		Email: q.Get("email"),
		Phone: q.Get("phone"),
		Page:  1,
		Size:  10,
	}

	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return query, domain.NewValidationError("page", "must be an integer")
		}
		query.Page = page
	}
	if raw := q.Get("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			return query, domain.NewValidationError("size", "must be an integer")
		}
		query.Size = size
	}

	return query, nil
}
