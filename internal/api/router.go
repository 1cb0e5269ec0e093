package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/meridian-legal/insights-backend/internal/api/handlers"
	"github.com/meridian-legal/insights-backend/internal/config"
	"github.com/meridian-legal/insights-backend/internal/metrics"
	"github.com/meridian-legal/insights-backend/internal/middleware"
	"github.com/meridian-legal/insights-backend/internal/upload"
)

type Deps struct {
	Cfg        config.Config
	Guard      *middleware.AuthGuard
	Insights   *handlers.InsightHandler
	Auth       *handlers.AuthHandler
	Uploads    *handlers.UploadHandler
	UploadsDir string
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics, middleware.RateLimit(d.Cfg.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	// uploaded images are served straight off disk
	fs := http.StripPrefix(upload.URLPrefix+"/", http.FileServer(http.Dir(d.UploadsDir)))
	r.Get(upload.URLPrefix+"/*", fs.ServeHTTP)

	r.Route("/insights", func(r chi.Router) {
		r.Get("/", d.Insights.List)
		r.Get("/recent/{limit}", d.Insights.Recent)
		r.Get("/search/{term}", d.Insights.Search)
		r.Get("/{slug}", d.Insights.GetBySlug)

		r.Group(func(r chi.Router) {
			r.Use(d.Guard.Require)
			r.Post("/", d.Insights.Create)
			r.Put("/{id}", d.Insights.Update)
			r.Delete("/{id}", d.Insights.Delete)
		})
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", d.Auth.Login)
		r.Post("/register", d.Auth.Register)

		r.Group(func(r chi.Router) {
			r.Use(d.Guard.Require)
			r.Get("/me", d.Auth.Me)
			r.Post("/logout", d.Auth.Logout)
		})
	})

	r.Route("/upload", func(r chi.Router) {
		r.Use(d.Guard.Require)
		r.Post("/insight", d.Uploads.Upload)
		r.Delete("/insight/{filename}", d.Uploads.Delete)
	})

	return r
}
