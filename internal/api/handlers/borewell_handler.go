package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bhujal/registry/internal/api/middleware"
	"github.com/bhujal/registry/internal/api/types"
	"github.com/bhujal/registry/internal/services"
	"github.com/bhujal/registry/internal/validation"
)

type BorewellHandler struct {
	borewells services.BorewellService
}

func NewBorewellHandler(borewells services.BorewellService) *BorewellHandler {
	return &BorewellHandler{borewells: borewells}
}

func (h *BorewellHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req validation.BorewellInput
	if err := types.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	id, _ := middleware.IdentityFrom(r.Context())
	owner := id.Customer()
	b, err := h.borewells.Register(r.Context(), owner, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, types.APIResponse{
		Success: true,
		Message: "Borewell registered successfully",
		Data: map[string]any{
			"borewell": map[string]any{
				"id":          b.ID,
				"latitude":    b.Latitude,
				"longitude":   b.Longitude,
				"name":        owner.Name,
				"phoneNumber": owner.PhoneNumber,
			},
		},
	})
}

func (h *BorewellHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFrom(r.Context())
	items, err := h.borewells.ListMine(r.Context(), id.CustomerID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, types.APIResponse{
		Success: true,
		Count:   types.Counted(len(items)),
		Data:    map[string]any{"borewells": items},
	})
}

// ListAll is the public map listing.
func (h *BorewellHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	entries, err := h.borewells.ListMap(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeListing(w, r, types.APIResponse{
		Success: true,
		Count:   types.Counted(len(entries)),
		Data:    entries,
	})
}

// ListOwners serves the same entries as ListAll without the envelope.
func (h *BorewellHandler) ListOwners(w http.ResponseWriter, r *http.Request) {
	entries, err := h.borewells.ListMap(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeListing(w, r, entries)
}

func (h *BorewellHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.borewells.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{
		Success: true,
		Data:    map[string]any{"borewell": b},
	})
}

func (h *BorewellHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req validation.BorewellInput
	if err := types.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	b, err := h.borewells.Update(r.Context(), middleware.GetCustomerID(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{
		Success: true,
		Message: "Borewell updated successfully",
		Data:    map[string]any{"borewell": b},
	})
}

func (h *BorewellHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.borewells.Delete(r.Context(), middleware.GetCustomerID(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{
		Success: true,
		Message: "Borewell deleted successfully",
	})
}
