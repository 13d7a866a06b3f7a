package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/contactdesk/contacts-api/internal/redact"
)

// DataResponse is the standard success envelope.
type DataResponse struct {
	Data any `json:"data"`
}

// PagedResponse is the success envelope for search results, carrying the
// paging block alongside the data.
type PagedResponse struct {
	Data   any `json:"data"`
	Paging any `json:"paging"`
}

// ErrorResponse is the standard failure envelope. Errors is either a single
// message string or a field -> message map for validation failures.
type ErrorResponse struct {
	Errors any `json:"errors"`
}

// RespondWithJSON writes a JSON response with the given status code and body.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithData writes the success envelope with the given status and data.
func RespondWithData(w http.ResponseWriter, r *http.Request, status int, data any) {
	RespondWithJSON(w, r, status, DataResponse{Data: data})
}

// RespondWithPage writes the success envelope for one page of search results.
func RespondWithPage(w http.ResponseWriter, r *http.Request, data, paging any) {
	RespondWithJSON(w, r, http.StatusOK, PagedResponse{Data: data, Paging: paging})
}

// RespondWithError writes the failure envelope with the given status.
// The errors value is either a message string or a field map.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, errs any) {
	traceID := GetTraceID(r.Context())

	slog.Debug("sending error response",
		"status_code", status,
		"errors", fmt.Sprintf("%v", errs),
		"trace_id", traceID,
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, status, ErrorResponse{Errors: errs})
}

// RespondWithErrorAndLog writes the failure envelope and logs the underlying
// error. The client only ever sees the sanitized errs value; the raw error is
// redacted and goes to the log stream, at ERROR level for 5xx and DEBUG
// otherwise.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	errs any,
	err error,
) {
	traceID := GetTraceID(r.Context())

	logAttrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
	}
	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}
	slog.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithJSON(w, r, status, ErrorResponse{Errors: errs})
}
