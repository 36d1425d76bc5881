package apierror

import (
	"context"
	"errors"
	"net/http"

	"github.com/carson-networks/expense-tracker/internal/logging"
	"github.com/carson-networks/expense-tracker/internal/service"
)

type options struct {
	notFoundStatus int
}

type Option func(*options)

// NotFoundAsUnauthorized reports a missing record as 401, for credential checks.
func NotFoundAsUnauthorized() Option {
	return func(o *options) { o.notFoundStatus = http.StatusUnauthorized }
}

// From converts a service error into the envelope returned by a huma handler and records the
// failure on the request's LogData.
func From(ctx context.Context, err error, opts ...Option) error {
	o := options{notFoundStatus: http.StatusNotFound}
	for _, opt := range opts {
		opt(&o)
	}

	status := StatusOf(err)
	if status == http.StatusNotFound {
		status = o.notFoundStatus
	}

	message := service.Message(err)
	if message == "" {
		message = err.Error()
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("error", err.Error())
	}

	return newEnvelope(status, message, err)
}

// StatusOf maps a service error kind to its HTTP status.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
