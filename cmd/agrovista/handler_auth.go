package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/agrovista/agrovista/pkg/models"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success   bool      `json:"success"`
	Token     string    `json:"token,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
	User      UserInfo  `json:"user,omitempty"`
	Message   string    `json:"message,omitempty"`
}

type UserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (rm *RouteManager) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(LoginResponse{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	// Validate credentials
	user, err := rm.dbManager.ValidateUser(r.Context(), req.Email, req.Password)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(LoginResponse{
			Success: false,
			Message: "Invalid email or password",
		})
		return
	}

	rm.writeTokenResponse(w, user, http.StatusOK)
}

func (rm *RouteManager) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(LoginResponse{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	if req.Email == "" || len(req.Password) < 6 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(LoginResponse{
			Success: false,
			Message: "Email and a password of at least 6 characters are required",
		})
		return
	}

	user, err := rm.dbManager.CreateUser(r.Context(), req.Email, req.Password)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		if models.CodeOf(err) == models.ErrConflict {
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(LoginResponse{
				Success: false,
				Message: "Email is already registered",
			})
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(LoginResponse{
			Success: false,
			Message: "Failed to create user",
		})
		return
	}

	rm.writeTokenResponse(w, user, http.StatusCreated)
}

func (rm *RouteManager) handleLogout(w http.ResponseWriter, r *http.Request) {
	// With JWT, logout is handled client-side by removing the token
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

func (rm *RouteManager) handleMe(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(UserInfo{
		ID:    user.ID.String(),
		Email: user.Email,
	})
}

func (rm *RouteManager) handleRefreshToken(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	rm.writeTokenResponse(w, user, http.StatusOK)
}

// writeTokenResponse signs a fresh token for the user and writes the
// success payload
func (rm *RouteManager) writeTokenResponse(w http.ResponseWriter, user *models.User, status int) {
	token, expiresAt, err := GenerateJWT(user)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(LoginResponse{
			Success: false,
			Message: "Failed to generate token",
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(LoginResponse{
		Success:   true,
		Token:     token,
		ExpiresAt: expiresAt,
		User: UserInfo{
			ID:    user.ID.String(),
			Email: user.Email,
		},
	})
}
