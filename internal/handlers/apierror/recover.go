package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/expense-tracker/internal/logging"
)

// Recoverer turns a panic in any later handler into the 500 envelope.
func Recoverer(log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if err, ok := rvr.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rvr)
				}

				err := fmt.Errorf("panic: %v", rvr)
				if logData := logging.GetLogData(req.Context()); logData != nil {
					logData.AddData("error", err.Error())
				}
				log.WithFields(logrus.Fields{
					"method": req.Method,
					"path":   req.URL.Path,
					"stack":  string(debug.Stack()),
				}).WithError(err).Error("Handler.Recoverer.panic")

				writeEnvelope(w, newEnvelope(http.StatusInternalServerError, err.Error(), err))
			}()

			next.ServeHTTP(w, req)
		})
	}
}
