package handlers

import (
	"net/http"

	"github.com/bhujal/registry/internal/api/middleware"
	"github.com/bhujal/registry/internal/api/types"
	"github.com/bhujal/registry/internal/services"
	"github.com/bhujal/registry/internal/validation"
)

type AuthHandler struct {
	auth services.AuthService
}

func NewAuthHandler(auth services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req services.SignupInput
	if err := types.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	sess, err := h.auth.Signup(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, types.APIResponse{
		Success: true,
		Message: "Customer registered successfully",
		Data:    sess,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req services.LoginInput
	if err := types.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	sess, err := h.auth.Login(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, types.APIResponse{
		Success: true,
		Message: "Login successful",
		Data:    sess,
	})
}

// Me returns the customer the auth gate resolved for this request.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFrom(r.Context())
	writeJSON(w, http.StatusOK, types.APIResponse{
		Success: true,
		Data:    map[string]any{"customer": id.Customer()},
	})
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req validation.ProfileInput
	if err := types.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	c, err := h.auth.UpdateProfile(r.Context(), middleware.GetCustomerID(r.Context()), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, types.APIResponse{
		Success: true,
		Message: "Profile updated successfully",
		Data:    map[string]any{"customer": c},
	})
}
