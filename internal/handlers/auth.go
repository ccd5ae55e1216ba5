package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/clubhub/backend/internal/apperrors"
	"github.com/clubhub/backend/internal/logger"
	services "github.com/clubhub/backend/internal/service/auth"
)

type AuthHandler struct {
	Service *services.AuthService
	Log     *logger.Logger
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// NewAuthHandler creates a new instance of AuthHandler
func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{Service: service, Log: logger.NewLogger("auth-handler")}
}

// Register handles the user registration request
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respond(w, http.StatusBadRequest, map[string]string{"message": "Invalid request payload"})
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		h.respond(w, http.StatusBadRequest, map[string]string{"message": "username, email and password are required"})
		return
	}

	if _, err := h.Service.Signup(r.Context(), req.Username, req.Email, req.Password); err != nil {
		h.respondError(w, err)
		return
	}

	h.respond(w, http.StatusCreated, map[string]string{"message": "User registered successfully"})
}

// Login handles the user authentication request
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respond(w, http.StatusBadRequest, map[string]string{"message": "Invalid request payload"})
		return
	}

	token, user, err := h.Service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respond(w, http.StatusOK, map[string]interface{}{
		"message": "Logged in successfully",
		"token":   token,
		"user":    user,
	})
}

func (h *AuthHandler) respondError(w http.ResponseWriter, err error) {
	code := apperrors.HTTPStatus(err)
	if code == http.StatusInternalServerError {
		h.Log.Error("auth request failed", "error", err)
	}
	h.respond(w, code, map[string]string{"message": apperrors.Message(err)})
}

func (h *AuthHandler) respond(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
