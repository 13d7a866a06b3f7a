package api

import (
	"log/slog"
	"net/http"

	"github.com/contactdesk/contacts-api/internal/api/shared"
	"github.com/contactdesk/contacts-api/internal/domain"
	"github.com/contactdesk/contacts-api/internal/service"
)

// AddressHandler serves the address endpoints, all nested under a contact.
// The contact id in the path is validated against the authenticated user on
// every call.
type AddressHandler struct {
	addressService *service.AddressService
	logger         *slog.Logger
}

// NewAddressHandler creates a new AddressHandler with the given dependencies.
func NewAddressHandler(addressService *service.AddressService, log *slog.Logger) *AddressHandler {
	if log == nil {
		log = slog.Default()
	}
	return &AddressHandler{
		addressService: addressService,
		logger:         log.With(slog.String("component", "address_handler")),
	}
}

// Create handles POST /api/contacts/{contactID}/addresses.
func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.UserFromContext(r.Context())
	if !ok {
		HandleServiceError(w, r, domain.ErrUnauthorized)
		return
	}

	contactID, err := pathID(r, "contactID")
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	var req CreateAddressRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleServiceError(w, r, err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	address, err := h.addressService.Create(r.Context(), user, contactID, service.AddressInput{
		Street:     req.Street,
		City:       req.City,
		Province:   req.Province,
		Country:    req.Country,
		PostalCode: req.PostalCode,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, addressToResponse(address))
}

// List handles GET /api/contacts/{contactID}/addresses.
func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.UserFromContext(r.Context())
	if !ok {
		HandleServiceError(w, r, domain.ErrUnauthorized)
		return
	}

	contactID, err := pathID(r, "contactID")
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	addresses, err := h.addressService.List(r.Context(), user, contactID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, addressesToResponse(addresses))
}

// Get handles GET /api/contacts/{contactID}/addresses/{addressID}.
func (h *AddressHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.UserFromContext(r.Context())
	if !ok {
		HandleServiceError(w, r, domain.ErrUnauthorized)
		return
	}

	contactID, err := pathID(r, "contactID")
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	addressID, err := pathID(r, "addressID")
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	address, err := h.addressService.Get(r.Context(), user, contactID, addressID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, addressToResponse(address))
}

// Update handles PUT /api/contacts/{contactID}/addresses/{addressID}.
func (h *AddressHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.UserFromContext(r.Context())
	if !ok {
		HandleServiceError(w, r, domain.ErrUnauthorized)
		return
	}

	contactID, err := pathID(r, "contactID")
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	addressID, err := pathID(r, "addressID")
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	var req UpdateAddressRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleServiceError(w, r, err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	address, err := h.addressService.Update(r.Context(), user, contactID, addressID, service.AddressUpdateInput{
		Street:     req.Street,
		City:       req.City,
		Province:   req.Province,
		Country:    req.Country,
		PostalCode: req.PostalCode,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, addressToResponse(address))
}

// Delete handles DELETE /api/contacts/{contactID}/addresses/{addressID}.
func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.UserFromContext(r.Context())
	if !ok {
		HandleServiceError(w, r, domain.ErrUnauthorized)
		return
	}

	contactID, err := pathID(r, "contactID")
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	addressID, err := pathID(r, "addressID")
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	if err := h.addressService.Remove(r.Context(), user, contactID, addressID); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "OK")
}
