package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/paydivvy/paydivvy/internal/auth"
	"github.com/paydivvy/paydivvy/internal/rest"
	log "github.com/sirupsen/logrus"
)

type CredentialsDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserDTO struct {
	Uid         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Provider    string `json:"provider"`
}

type SessionDTO struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var credentials CredentialsDTO
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		rest.WriteError(w, rest.NewValidationError("body", "invalid request body"))
		return
	}

	user, token, err := h.service.SignUp(r.Context(), credentials.Email, credentials.Password)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(SessionDTO{User: toDTO(user), Token: token}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var credentials CredentialsDTO
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		rest.WriteError(w, rest.NewValidationError("body", "invalid request body"))
		return
	}

	user, token, err := h.service.SignIn(r.Context(), credentials.Email, credentials.Password)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(SessionDTO{User: toDTO(user), Token: token}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// SignOut exists for client symmetry. Session tokens are stateless, so the
// server has nothing to revoke; the client discards its token.
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	user, err := CurrentUser(r.Context())
	if err != nil {
		rest.WriteError(w, rest.ErrUnauthenticated)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(toDTO(user)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// writeAuthError maps identity failures to the messages clients display.
func writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrEmailExists):
		rest.WriteError(w, rest.NewValidationError("email", "This email is already registered"))
	case errors.Is(err, ErrInvalidEmail):
		rest.WriteError(w, rest.NewValidationError("email", "Invalid email address"))
	case errors.Is(err, auth.ErrWeakPassword):
		rest.WriteError(w, rest.NewValidationError("password", "Password should be at least 6 characters"))
	case errors.Is(err, ErrInvalidCredentials):
		log.Debugf("rejected sign-in: %v", err)
		rest.WriteError(w, rest.ErrUnauthenticated)
	default:
		rest.WriteError(w, err)
	}
}

func toDTO(user User) UserDTO {
	return UserDTO{
		Uid:         user.Uid,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Provider:    string(user.Provider),
	}
}
