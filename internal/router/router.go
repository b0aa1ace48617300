package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/GregMSThompson/expense-tracker/internal/handlers"
	"github.com/GregMSThompson/expense-tracker/internal/middleware"
)

const defaultRequestTimeout = 60 * time.Second

type Options struct {
	RequestTimeout time.Duration
}

func NewRouter(deps *handlers.Deps, opts Options) chi.Router {
	r := chi.NewRouter()

	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggerMiddleware(deps.Log).LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins(deps.AllowedOrigins),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	hh := handlers.NewHealthHandlers(deps)
	r.Get("/healthz", hh.Healthz)

	exh := handlers.NewExpenseHandlers(deps)
	rph := handlers.NewReportHandlers(deps)
	sth := handlers.NewSettingsHandlers(deps)

	r.Route("/api", func(api chi.Router) {
		api.Use(chimiddleware.Timeout(timeout))
		if deps.AuthEnabled {
			mw := middleware.NewMiddleware(deps.Firebase, deps.ResponseHandler)
			api.Use(mw.FirebaseAuth)
		}
		api.Mount("/expenses", exh.ExpenseRoutes())
		api.Mount("/reports", rph.ReportRoutes())
		api.Mount("/settings", sth.SettingsRoutes())
	})

	if deps.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(deps.StaticDir)))
	}
	return r
}

func allowedOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
