// Package api wires the HTTP boundary: routes, middleware and handler
// construction. All domain behavior lives behind the handlers.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/Mateuus/Applio/internal/api/handlers"
	"github.com/Mateuus/Applio/internal/api/middleware"
	"github.com/Mateuus/Applio/internal/auth"
	"github.com/Mateuus/Applio/internal/config"
	"github.com/Mateuus/Applio/internal/engine"
	"github.com/Mateuus/Applio/internal/rvc"
	"github.com/Mateuus/Applio/internal/synth"
	"github.com/Mateuus/Applio/internal/voices"
)

type Router struct {
	mux     *chi.Mux
	cfg     *config.Config
	eng     engine.Engine
	catalog *voices.Catalog
}

func NewRouter(cfg *config.Config, eng engine.Engine, catalog *voices.Catalog) *Router {
	return &Router{
		mux:     chi.NewRouter(),
		cfg:     cfg,
		eng:     eng,
		catalog: catalog,
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(rt.cfg.HTTP.CORSOrigins))

	rl := middleware.NewRateLimiter(rt.cfg.HTTP.RateLimitRPS, rt.cfg.HTTP.RateLimitBurst)
	r.Use(rl.Limit)

	resolver := rvc.NewResolver(rt.cfg.Paths.ModelsDir, rt.eng)
	adapter := synth.NewAdapter(rt.eng, rt.catalog, resolver, rt.cfg.Paths.OutputDir)

	info := handlers.NewInfoHandler(rt.eng)
	voicesH := handlers.NewVoicesHandler(rt.catalog)
	modelsH := handlers.NewModelsHandler(resolver)
	ttsH := handlers.NewTTSHandler(adapter, rt.cfg.Paths.OutputDir)

	// Liveness/info endpoints (no auth)
	r.Get("/", info.Root)
	r.Get("/health", info.Health)

	// Everything else sits behind the optional API key.
	r.Group(func(r chi.Router) {
		apikey := auth.NewAPIKeyMiddleware(rt.cfg.Auth.Key, rt.cfg.Auth.KeyHeader)
		r.Use(apikey.Authenticate)

		r.Get("/gpu/status", info.GPUStatus)
		r.Get("/voices", voicesH.List)

		r.Get("/models", modelsH.List)
		r.Get("/models/*", modelsH.Lookup)

		r.Route("/tts", func(r chi.Router) {
			r.Post("/generate", ttsH.Generate)
			r.Post("/inference", ttsH.Inference)
			r.Get("/download/{filename}", ttsH.Download)
		})
	})

	return r
}
