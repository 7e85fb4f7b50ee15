package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"

	"github.com/bhujal/registry/internal/api/handlers"
	mw "github.com/bhujal/registry/internal/api/middleware"
	"github.com/bhujal/registry/internal/services"
)

type Dependencies struct {
	AuthService     services.AuthService
	BorewellService services.BorewellService
	Tokens          mw.TokenVerifier
	// Ready backs /readyz. Nil reports ready.
	Ready   handlers.Pinger
	Metrics *mw.Metrics

	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()

	rps, burst := dep.RateLimitRPS, dep.RateLimitBurst
	if rps <= 0 {
		rps = 10
	}
	if burst <= 0 {
		burst = 20
	}

	// Built-in middleware
	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logging)
	r.Use(mw.CORS(dep.CORSOrigins))
	r.Use(mw.RateLimit(rps, burst))
	if dep.Metrics != nil {
		r.Use(dep.Metrics.Middleware)
	}
	r.Use(chimid.Compress(5))

	// Health endpoints
	hh := handlers.NewHealthHandler(dep.Ready)
	r.Get("/healthz", hh.Liveness)
	r.Get("/readyz", hh.Readiness)
	if dep.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", dep.Metrics.Handler())
	}

	gate := mw.Auth(dep.Tokens, dep.AuthService)
	ah := handlers.NewAuthHandler(dep.AuthService)
	bh := handlers.NewBorewellHandler(dep.BorewellService)

	r.Route("/api", func(api chi.Router) {
		api.Route("/auth", func(ar chi.Router) {
			ar.Post("/signup", ah.Signup)
			ar.Post("/login", ah.Login)

			ar.Group(func(protected chi.Router) {
				protected.Use(gate)
				protected.Get("/me", ah.Me)
				protected.Put("/profile", ah.UpdateProfile)
			})
		})

		api.Route("/borewell", func(br chi.Router) {
			// Public map listings
			br.Get("/all", bh.ListAll)
			br.Get("/owners", bh.ListOwners)

			br.Group(func(protected chi.Router) {
				protected.Use(gate)
				protected.Post("/register", bh.Register)
				protected.Get("/my-borewells", bh.ListMine)
				protected.Put("/{id}", bh.Update)
				protected.Delete("/{id}", bh.Delete)
			})

			br.Get("/{id}", bh.Get)
		})
	})

	return r
}
