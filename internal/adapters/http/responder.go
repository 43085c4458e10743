package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"openconference/internal/application"
	"openconference/internal/domain"
	"openconference/internal/logging"
	"openconference/internal/ports/output"
)

var errBadRequestBody = errors.New("invalid request body")

type responder struct {
	logger     *slog.Logger
	translator output.Translator
}

func newResponder(logger *slog.Logger, translator output.Translator) responder {
	if logger == nil {
		logger = slog.Default()
	}
	return responder{logger: logger, translator: translator}
}

type errorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func (rs responder) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	if status == http.StatusNoContent || payload == nil {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.FromContext(ctx, rs.logger).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// writeError renders err with a localized message. Errors without a domain
// code become a 500 with a generic message; their detail is only logged.
func (rs responder) writeError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	status := statusFor(err)
	body := errorBody{Code: domain.Code(err)}
	if body.Code == "" {
		body.Code = "unexpected"
	}

	if rs.translator != nil {
		body.Message = rs.translator.ErrorMessage(requestLocale(r), err)
	} else {
		body.Message = http.StatusText(status)
	}

	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		body.Fields = vErr.FieldErrors
	}

	logger := logging.FromContext(ctx, rs.logger)
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(ctx, "request failed", "status", status, "error", err, "error_kind", application.ErrorKind(err))
	} else {
		logger.DebugContext(ctx, "request rejected", "status", status, "error_kind", application.ErrorKind(err))
	}
	rs.writeJSON(ctx, w, status, errorResponse{Error: body})
}

func (rs responder) badRequest(w http.ResponseWriter, r *http.Request, field, message string) {
	vErr := &domain.ValidationError{}
	vErr.Add(field, message)
	rs.writeError(w, r, vErr)
}

func statusFor(err error) int {
	switch domain.Code(err) {
	case "":
		return http.StatusInternalServerError
	case domain.CodeValidation, domain.ErrInvalidStatus.Code, domain.ErrUserNotFound.Code:
		return http.StatusBadRequest
	case domain.ErrUnauthenticated.Code:
		return http.StatusUnauthorized
	case domain.ErrNotConferenceMember.Code, domain.ErrOwnerImmutable.Code, domain.ErrOwnerCannotLeave.Code,
		domain.ErrMeetingNotPublic.Code, domain.ErrNotInvited.Code, domain.ErrTestingDisabled.Code:
		return http.StatusForbidden
	case domain.ErrMeetingNotFound.Code, domain.ErrConferenceNotFound.Code:
		return http.StatusNotFound
	case domain.ErrAlreadyMember.Code, domain.ErrAlreadyJoined.Code, domain.ErrNotMember.Code, domain.ErrNotInMeeting.Code:
		return http.StatusConflict
	}
	return http.StatusBadRequest
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errBadRequestBody
	}
	return nil
}
