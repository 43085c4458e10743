package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"openconference/internal/ports/input"
	"openconference/internal/ports/output"
)

type RouterConfig struct {
	Identity       input.IdentityUseCase
	Conferences    input.ConferenceUseCase
	Meetings       input.MeetingUseCase
	Verifier       TokenVerifier
	Translator     output.Translator
	Logger         *slog.Logger
	CORSOrigins    []string
	TestingEnabled bool
	// Timeout bounds each request; zero means 30s.
	Timeout time.Duration
}

func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	rs := newResponder(cfg.Logger, cfg.Translator)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(RequestLogger(cfg.Logger))
	router.Use(middleware.Recoverer)
	router.Use(CORS(cfg.CORSOrigins))
	router.Use(middleware.Timeout(cfg.Timeout))
	router.Use(Authenticate(cfg.Verifier))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		rs.writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
	})

	users := &identityHandler{service: cfg.Identity, rs: rs}
	router.Get("/me", users.Me)
	router.Put("/me", users.UpdateProfile)
	if cfg.TestingEnabled {
		router.Delete("/testing/users", users.DeleteTestUser)
	}

	conferences := &conferenceHandler{service: cfg.Conferences, meetings: cfg.Meetings, rs: rs}
	router.Route("/conferences", func(r chi.Router) {
		r.Get("/", conferences.List)
		r.Post("/", conferences.Create)
		r.Route("/{conferenceID}", func(r chi.Router) {
			r.Get("/", conferences.Get)
			r.Get("/attendees", conferences.Attendees)
			r.Get("/attending", conferences.Attending)
			r.Post("/join", conferences.Join)
			r.Post("/leave", conferences.Leave)
			r.Get("/meetings/public", conferences.PublicMeetings)
			r.Get("/meetings/mine", conferences.MyMeetings)
			r.Post("/meetings", conferences.CreateMeeting)
		})
	})

	meetings := &meetingHandler{service: cfg.Meetings, rs: rs}
	router.Route("/meetings/{meetingID}", func(r chi.Router) {
		r.Get("/", meetings.Get)
		r.Post("/respond", meetings.Respond)
		r.Post("/join", meetings.Join)
		r.Post("/leave", meetings.Leave)
	})

	return router
}
