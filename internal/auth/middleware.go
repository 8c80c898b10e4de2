package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pfinance/WalletManager/internal/user"
)

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// CookieAuthMiddleware authenticates requests by the signed token cookie
// and injects the user's ID and role into the request context.
func (s *service) CookieAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		userID, role, err := s.jwtManager.ValidateToken(cookie.Value)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		// The account may have been deleted since the token was issued.
		_, err = s.userService.GetUserByID(userID)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				writeJSONError(w, http.StatusUnauthorized, ErrUserNotFound.Error())
				return
			}
			writeJSONError(w, http.StatusInternalServerError, ErrInternalError.Error())
			return
		}

		ctx := context.WithValue(r.Context(), "userID", userID)
		ctx = context.WithValue(ctx, "userRole", role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Status:  "error",
		Message: message,
	})
}
