package api

import (
	"log/slog"
	"net/http"

	"github.com/contactdesk/contacts-api/internal/api/shared"
	"github.com/contactdesk/contacts-api/internal/domain"
	"github.com/contactdesk/contacts-api/internal/service"
)

// ContactHandler serves the contact endpoints. All of them operate strictly
// within the authenticated user's own contacts.
type ContactHandler struct {
	contactService *service.ContactService
	logger         *slog.Logger
}

// NewContactHandler creates a new ContactHandler with the given dependencies.
func NewContactHandler(contactService *service.ContactService, log *slog.Logger) *ContactHandler {
	if log == nil {
		log = slog.Default()
	}
	return &ContactHandler{
		contactService: contactService,
		logger:         log.With(slog.String("component", "contact_handler")),
	}
}

// Create handles POST /api/contacts.
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.UserFromContext(r.Context())
	if !ok {
		HandleServiceError(w, r, domain.ErrUnauthorized)
		return
	}

	var req CreateContactRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleServiceError(w, r, err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	contact, err := h.contactService.Create(r.Context(), user, service.ContactInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, contactToResponse(contact))
}

// Get handles GET /api/contacts/{contactID}.
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.UserFromContext(r.Context())
	if !ok {
		HandleServiceError(w, r, domain.ErrUnauthorized)
		return
	}

	id, err := pathID(r, "contactID")
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	contact, err := h.contactService.Get(r.Context(), user, id)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, contactToResponse(contact))
}

// Update handles PUT /api/contacts/{contactID}.
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.UserFromContext(r.Context())
	if !ok {
		HandleServiceError(w, r, domain.ErrUnauthorized)
		return
	}

	id, err := pathID(r, "contactID")
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	var req UpdateContactRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleServiceError(w, r, err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	contact, err := h.contactService.Update(r.Context(), user, id, service.ContactUpdateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, contactToResponse(contact))
}

// Delete handles DELETE /api/contacts/{contactID}. The contact's addresses
// go with it.
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.UserFromContext(r.Context())
	if !ok {
		HandleServiceError(w, r, domain.ErrUnauthorized)
		return
	}

	id, err := pathID(r, "contactID")
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	if err := h.contactService.Remove(r.Context(), user, id); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "OK")
}

// Search handles GET /api/contacts.
func (h *ContactHandler) Search(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.UserFromContext(r.Context())
	if !ok {
		HandleServiceError(w, r, domain.ErrUnauthorized)
		return
	}

	query, err := parseSearchQuery(r)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	if err := shared.ValidateRequest(query); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	page, err := h.contactService.Search(r.Context(), user, service.SearchInput{
		Name:  query.Name,
		Email: query.Email,
		Phone: query.Phone,
		Page:  query.Page,
		Size:  query.Size,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithPage(w, r, contactsToResponse(page.Contacts), page.Paging)
}
