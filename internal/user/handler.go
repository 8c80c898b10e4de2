package user

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/pfinance/WalletManager/web"
)

type Handler struct {
	userService Service
}

func NewHandler(userService Service) *Handler {
	return &Handler{
		userService: userService,
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		log.Printf("JSON encoding error: %v", err)
		return
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	})
}

// requireSelfOrAdmin allows admins to target any user and regular users to
// target only themselves.
func requireSelfOrAdmin(requesterID, requesterRole, targetID string) error {
	if requesterID != targetID && requesterRole != RoleAdmin {
		return ErrUnauthorizedAccess
	}
	return nil
}

func requestPrincipal(r *http.Request) (string, string, bool) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		return "", "", false
	}
	role, ok := r.Context().Value("userRole").(string)
	if !ok {
		return "", "", false
	}
	return userID, role, true
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Login    string `json:"login"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.userService.Register(req.Email, req.Login, req.Password, r.Host)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) || errors.Is(err, ErrLoginAlreadyExists) {
			respondError(w, http.StatusConflict, err.Error())
			return
		} else if errors.Is(err, ErrInvalidEmail) || errors.Is(err, ErrEmailLength) || errors.Is(err, ErrLoginLength) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "Could not register user")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status": "success",
		"data": map[string]string{
			"user_id": user.ID,
		},
	})
}

// HandleVerifyUser renders an HTML status page rather than JSON: the link in
// the verification email is opened in a browser, not by an API client.
func (h *Handler) HandleVerifyUser(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		web.RenderStatusPage(w, http.StatusBadRequest, "Verification token is missing.")
		return
	}

	err := h.userService.VerifyEmail(token)
	if err != nil {
		log.Printf("Error while user email verification: %v", err)
		switch {
		case errors.Is(err, ErrInvalidToken):
			web.RenderStatusPage(w, http.StatusUnauthorized, "Invalid verification link.")
		case errors.Is(err, ErrTokenExpired):
			web.RenderStatusPage(w, http.StatusGone, "Verification link expired, please register again.")
		case errors.Is(err, ErrUserAlreadyActive):
			web.RenderStatusPage(w, http.StatusConflict, "User already verified, you can log in.")
		default:
			web.RenderStatusPage(w, http.StatusInternalServerError, "Could not verify your account, please try again later.")
		}
		return
	}

	web.RenderStatusPage(w, http.StatusOK, "User verification successful, now you can log in!")
}

func (h *Handler) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.userService.ForgotPassword(req.Email, r.Host); err != nil {
		log.Printf("Error while sending the reset password email: %v", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "If there is a registered email address, you will receive an email containing the necessary instructions.",
	})
}

func (h *Handler) HandleResetPasswordPage(w http.ResponseWriter, r *http.Request) {
	web.RenderResetPasswordPage(w, r.URL.Query().Get("token"))
}

func (h *Handler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	var token, password string

	// The reset form posts urlencoded; API clients post JSON.
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req struct {
			Token    string `json:"token"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		token, password = req.Token, req.Password
	} else {
		if err := r.ParseForm(); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		token, password = r.FormValue("token"), r.FormValue("password")
	}

	if token == "" || password == "" {
		respondError(w, http.StatusBadRequest, "Token and password are required")
		return
	}

	if err := h.userService.ResetPassword(token, password); err != nil {
		switch {
		case errors.Is(err, ErrInvalidToken):
			respondError(w, http.StatusUnauthorized, "Invalid reset token")
		case errors.Is(err, ErrTokenExpired):
			respondError(w, http.StatusGone, "Reset token expired")
		default:
			respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Password reset successful, you can now login",
	})
}

func (h *Handler) HandleGetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := requestPrincipal(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Could not fetch user data")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   user,
	})
}

func (h *Handler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.GetAll()
	if err != nil {
		log.Printf("Error while getting users list: %v", err)
		respondError(w, http.StatusInternalServerError, "Could not fetch users")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   users,
	})
}

func (h *Handler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	requesterID, role, ok := requestPrincipal(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	targetID := r.PathValue("id")
	if err := requireSelfOrAdmin(requesterID, role, targetID); err != nil {
		respondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	user, err := h.userService.GetUserByID(targetID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Could not fetch user data")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   user,
	})
}

func (h *Handler) HandleUpdateUser(w http.ResponseWriter, r *http.Request) {
	requesterID, role, ok := requestPrincipal(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	targetID := r.PathValue("id")
	if err := requireSelfOrAdmin(requesterID, role, targetID); err != nil {
		respondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req struct {
		Login string `json:"login"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.userService.Update(targetID, req.Login)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "User not found")
			return
		} else if errors.Is(err, ErrLoginLength) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "Could not update user")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   user,
	})
}

func (h *Handler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	requesterID, role, ok := requestPrincipal(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	targetID := r.PathValue("id")
	if err := requireSelfOrAdmin(requesterID, role, targetID); err != nil {
		respondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	if err := h.userService.Delete(targetID); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Could not delete user")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "User successfully deleted",
	})
}
