package auth

import (
	"net/http"
	"strings"

	"github.com/carson-networks/expense-tracker/internal/handlers/apierror"
	"github.com/carson-networks/expense-tracker/internal/logging"
)

type tokenParser interface {
	Parse(tokenString string) (string, error)
}

// Middleware authenticates requests carrying "Authorization: Bearer <token>". Requests without
// the header continue unauthenticated; a header with a bad token is rejected with 401.
func Middleware(tokens tokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			header := req.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, req)
				return
			}

			scheme, tokenString, found := strings.Cut(header, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(tokenString) == "" {
				apierror.Write(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			userID, err := tokens.Parse(strings.TrimSpace(tokenString))
			if err != nil {
				if logData := logging.GetLogData(req.Context()); logData != nil {
					logData.AddData("authError", err.Error())
				}
				apierror.Write(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			if logData := logging.GetLogData(req.Context()); logData != nil {
				logData.AddData("userID", userID)
			}
			next.ServeHTTP(w, req.WithContext(WithUserID(req.Context(), userID)))
		})
	}
}
