// Package api contains the HTTP handlers, request and response models, and
// the error-to-status mapping for the contacts service. Handlers decode and
// validate the request, delegate to the service layer, and render the
// data/errors envelopes; they hold no business rules of their own.
package api
