package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/staffhold/hr-backoffice-go/internal/handler/http/middleware"
	"github.com/staffhold/hr-backoffice-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	attendanceHandler AttendanceHandler,
	payrollHandler PayrollHandler,
	deviceHandler DeviceHandler,
) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hr-backoffice"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// The device channel is unauthenticated by design: controllers on
		// the office network cannot carry tokens, and the endpoint never
		// reveals whether a payload was accepted.
		r.Post("/device/events", deviceHandler.HandleEvent)

		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/events", attendanceHandler.RegisterEvent)
				r.Get("/events", attendanceHandler.ListEventsByDate)

				r.Route("/summaries", func(r chi.Router) {
					r.Get("/", attendanceHandler.ListSummariesByDate)
					r.Get("/employee/{id}", attendanceHandler.ListEmployeeMonth)
					r.Patch("/{id}/correction", attendanceHandler.ApplyCorrection)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Post("/calculate", payrollHandler.Calculate)

				r.Route("/records", func(r chi.Router) {
					r.Get("/", payrollHandler.ListForPeriod)
					r.Get("/employee/{id}", payrollHandler.ListForEmployeeYear)
					r.Patch("/{id}", payrollHandler.UpdateLine)
				})
			})
		})
	})

	return r
}
