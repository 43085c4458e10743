package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"openconference/internal/ports/input"
)

type conferenceHandler struct {
	service  input.ConferenceUseCase
	meetings input.MeetingUseCase
	rs       responder
}

func (h *conferenceHandler) List(w http.ResponseWriter, r *http.Request) {
	conferences, err := h.service.List(r.Context())
	if err != nil {
		h.rs.writeError(w, r, err)
		return
	}
	out := make([]conferenceDTO, len(conferences))
	for i := range conferences {
		out[i] = toConferenceDTO(conferences[i])
	}
	h.rs.writeJSON(r.Context(), w, http.StatusOK, out)
}

func (h *conferenceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createConferenceRequest
	if err := decodeJSON(r, &req); err != nil {
		h.rs.badRequest(w, r, "body", err.Error())
		return
	}
	id, err := h.service.Create(r.Context(), req.toInput())
	if err != nil {
		h.rs.writeError(w, r, err)
		return
	}
	h.rs.writeJSON(r.Context(), w, http.StatusCreated, idResponse{ID: id})
}

func (h *conferenceHandler) Get(w http.ResponseWriter, r *http.Request) {
	conference, err := h.service.Get(r.Context(), chi.URLParam(r, "conferenceID"))
	if err != nil {
		h.rs.writeError(w, r, err)
		return
	}
	h.rs.writeJSON(r.Context(), w, http.StatusOK, toConferenceDTO(*conference))
}

func (h *conferenceHandler) Attendees(w http.ResponseWriter, r *http.Request) {
	attendees, err := h.service.ListAttendees(r.Context(), chi.URLParam(r, "conferenceID"))
	if err != nil {
		h.rs.writeError(w, r, err)
		return
	}
	out := make([]attendeeDTO, len(attendees))
	for i, a := range attendees {
		out[i] = attendeeDTO{ID: a.AttendeeID, UserID: a.UserID, Name: a.Name, Bio: a.Bio}
	}
	h.rs.writeJSON(r.Context(), w, http.StatusOK, out)
}

func (h *conferenceHandler) Attending(w http.ResponseWriter, r *http.Request) {
	attending, err := h.service.IsAttending(r.Context(), chi.URLParam(r, "conferenceID"))
	if err != nil {
		h.rs.writeError(w, r, err)
		return
	}
	h.rs.writeJSON(r.Context(), w, http.StatusOK, attendingResponse{Attending: attending})
}

func (h *conferenceHandler) Join(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Join(r.Context(), chi.URLParam(r, "conferenceID")); err != nil {
		h.rs.writeError(w, r, err)
		return
	}
	h.rs.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *conferenceHandler) Leave(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Leave(r.Context(), chi.URLParam(r, "conferenceID")); err != nil {
		h.rs.writeError(w, r, err)
		return
	}
	h.rs.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *conferenceHandler) PublicMeetings(w http.ResponseWriter, r *http.Request) {
	meetings, err := h.meetings.PublicMeetings(r.Context(), chi.URLParam(r, "conferenceID"))
	if err != nil {
		h.rs.writeError(w, r, err)
		return
	}
	out := make([]meetingDTO, len(meetings))
	for i := range meetings {
		out[i] = toMeetingSummaryDTO(meetings[i])
	}
	h.rs.writeJSON(r.Context(), w, http.StatusOK, out)
}

func (h *conferenceHandler) MyMeetings(w http.ResponseWriter, r *http.Request) {
	meetings, err := h.meetings.MyMeetings(r.Context(), chi.URLParam(r, "conferenceID"))
	if err != nil {
		h.rs.writeError(w, r, err)
		return
	}
	out := make([]meetingDTO, len(meetings))
	for i := range meetings {
		out[i] = toMyMeetingDTO(meetings[i])
	}
	h.rs.writeJSON(r.Context(), w, http.StatusOK, out)
}

func (h *conferenceHandler) CreateMeeting(w http.ResponseWriter, r *http.Request) {
	var req createMeetingRequest
	if err := decodeJSON(r, &req); err != nil {
		h.rs.badRequest(w, r, "body", err.Error())
		return
	}
	id, err := h.meetings.Create(r.Context(), req.toInput(chi.URLParam(r, "conferenceID")))
	if err != nil {
		h.rs.writeError(w, r, err)
		return
	}
	h.rs.writeJSON(r.Context(), w, http.StatusCreated, idResponse{ID: id})
}
