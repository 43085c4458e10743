package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"openconference/internal/domain"
	"openconference/internal/ports/input"
)

type meetingHandler struct {
	service input.MeetingUseCase
	rs      responder
}

func (h *meetingHandler) Get(w http.ResponseWriter, r *http.Request) {
	meeting, err := h.service.Get(r.Context(), chi.URLParam(r, "meetingID"))
	if err != nil {
		h.rs.writeError(w, r, err)
		return
	}
	h.rs.writeJSON(r.Context(), w, http.StatusOK, toMeetingDetailDTO(meeting))
}

func (h *meetingHandler) Respond(w http.ResponseWriter, r *http.Request) {
	var req respondRequest
	if err := decodeJSON(r, &req); err != nil {
		h.rs.badRequest(w, r, "body", err.Error())
		return
	}
	status, err := domain.ParseResponseStatus(req.Status)
	if err != nil {
		h.rs.writeError(w, r, err)
		return
	}
	if err := h.service.Respond(r.Context(), chi.URLParam(r, "meetingID"), status); err != nil {
		h.rs.writeError(w, r, err)
		return
	}
	h.rs.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *meetingHandler) Join(w http.ResponseWriter, r *http.Request) {
	if err := h.service.JoinPublic(r.Context(), chi.URLParam(r, "meetingID")); err != nil {
		h.rs.writeError(w, r, err)
		return
	}
	h.rs.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *meetingHandler) Leave(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Leave(r.Context(), chi.URLParam(r, "meetingID")); err != nil {
		h.rs.writeError(w, r, err)
		return
	}
	h.rs.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}
