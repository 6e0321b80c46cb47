package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/presensia/timetrack-backend-go/internal/config"
	"github.com/presensia/timetrack-backend-go/internal/handler/http/middleware"
	"github.com/presensia/timetrack-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth       AuthHandler
	Attendance AttendanceHandler
	Holiday    HolidayHandler
	Logbook    LogbookHandler
	User       UserHandler
	Dashboard  DashboardHandler
	File       FileHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timetrack-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	// Locally stored uploads (logbook attachments, generic files)
	if cfg.Storage.Type == "local" {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Storage.BasePath)))
		r.Get("/uploads/*", fileServer.ServeHTTP)
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/logout", h.Auth.Logout)
			if cfg.GoogleLoginEnabled() {
				r.Get("/login/oauth/google", h.Auth.LoginWithGoogle)
				r.Get("/oauth/callback/google", h.Auth.OAuthCallbackGoogle)
			}
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(middleware.Verifier(jwtService))
			r.Use(middleware.AuthRequired(jwtService))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", h.Attendance.CheckIn)
				r.Post("/check-out", h.Attendance.CheckOut)
				r.Get("/", h.Attendance.History)

				r.Route("/manual", func(r chi.Router) {
					r.Post("/", h.Attendance.CreateManual)
					r.Patch("/{id}", h.Attendance.UpdateManual)
					r.Delete("/{id}", h.Attendance.DeleteManual)
				})
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", h.Holiday.List)
				r.Post("/", h.Holiday.Create)
				r.Delete("/{id}", h.Holiday.Delete)
			})

			r.Route("/logbook", func(r chi.Router) {
				r.Get("/", h.Logbook.List)
				r.Post("/", h.Logbook.Create)
				r.Put("/{id}", h.Logbook.Update)
				r.Patch("/{id}/confirm", h.Logbook.Confirm)
				r.Delete("/{id}", h.Logbook.Delete)
			})

			r.Route("/users/me", func(r chi.Router) {
				r.Get("/", h.User.GetProfile)
				r.Put("/", h.User.UpdateProfile)
				r.Get("/targets", h.User.GetTargets)
				r.Put("/targets", h.User.UpdateTargets)
			})

			r.Post("/files", h.File.Upload)

			r.Get("/dashboard", h.Dashboard.GetDashboard)
		})
	})
	return r
}
