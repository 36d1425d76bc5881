package apierror

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/danielgtaylor/huma/v2"
)

const GenericMessage = "Something went wrong!"

var development atomic.Bool

// Envelope is the JSON body of every failed request: {success:false, message, error?}.
// Detail is only filled for server errors in development.
type Envelope struct {
	status int
	cause  error

	Success bool   `json:"success"`
	Message string `json:"message"`
	Detail  string `json:"error,omitempty"`
}

var _ huma.StatusError = (*Envelope)(nil)

func (e *Envelope) Error() string  { return e.Message }
func (e *Envelope) GetStatus() int { return e.status }
func (e *Envelope) Unwrap() error  { return e.cause }

func newEnvelope(status int, message string, cause error) *Envelope {
	env := &Envelope{status: status, cause: cause, Message: message}
	if status >= http.StatusInternalServerError {
		env.Message = GenericMessage
		if development.Load() {
			env.Detail = message
			if cause != nil {
				env.Detail = cause.Error()
			}
		}
	}
	return env
}

// Install routes huma's error constructor through Envelope so schema validation failures
// share the API's error shape. Call it before registering operations.
func Install(isDevelopment bool) {
	development.Store(isDevelopment)
	huma.NewError = newHumaError
}

func newHumaError(status int, msg string, errs ...error) huma.StatusError {
	// Schema validation failures are client errors like any other bad input.
	if status == http.StatusUnprocessableEntity {
		status = http.StatusBadRequest
	}

	var cause error
	details := make([]string, 0, len(errs))
	for _, err := range errs {
		if err == nil {
			continue
		}
		if cause == nil {
			cause = err
		}
		var detailer huma.ErrorDetailer
		if errors.As(err, &detailer) {
			details = append(details, formatDetail(detailer.ErrorDetail()))
		}
	}

	// Schema errors carry their own location, which says more than huma's summary.
	if len(details) > 0 && status < http.StatusInternalServerError {
		msg = strings.Join(details, "; ")
	}
	return newEnvelope(status, msg, cause)
}

func formatDetail(d *huma.ErrorDetail) string {
	if d == nil {
		return ""
	}
	if d.Location == "" {
		return d.Message
	}
	return d.Location + ": " + d.Message
}

// Write sends an envelope from plain net/http code. Encoding failures are dropped since the
// status line is already on the wire.
func Write(w http.ResponseWriter, status int, message string) {
	writeEnvelope(w, newEnvelope(status, message, nil))
}

func writeEnvelope(w http.ResponseWriter, env *Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(env.status)
	_ = json.NewEncoder(w).Encode(env)
}

func NotFound(w http.ResponseWriter, _ *http.Request) {
	Write(w, http.StatusNotFound, "Route not found")
}

func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	Write(w, http.StatusMethodNotAllowed, "Method not allowed")
}
