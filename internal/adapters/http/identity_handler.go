package http

import (
	"net/http"
	"strings"

	"openconference/internal/ports/input"
)

type identityHandler struct {
	service input.IdentityUseCase
	rs      responder
}

func (h *identityHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.CurrentUser(r.Context())
	if err != nil {
		h.rs.writeError(w, r, err)
		return
	}
	h.rs.writeJSON(r.Context(), w, http.StatusOK, toUserDTO(user))
}

func (h *identityHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := decodeJSON(r, &req); err != nil {
		h.rs.badRequest(w, r, "body", err.Error())
		return
	}
	user, err := h.service.UpdateProfile(r.Context(), req.Name, req.Bio)
	if err != nil {
		h.rs.writeError(w, r, err)
		return
	}
	h.rs.writeJSON(r.Context(), w, http.StatusOK, toUserDTO(user))
}

func (h *identityHandler) DeleteTestUser(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		h.rs.badRequest(w, r, "name", "name is required")
		return
	}
	if err := h.service.DeleteTestUser(r.Context(), name); err != nil {
		h.rs.writeError(w, r, err)
		return
	}
	h.rs.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}
