package router

import (
	"net/http"
	"time"

	"pet-adoption/internal/config"
	_ "pet-adoption/internal/docs"
	"pet-adoption/internal/domain/applications"
	"pet-adoption/internal/domain/favorites"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/shelters"
	"pet-adoption/internal/domain/users"
	"pet-adoption/internal/middleware"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/platform/metrics"
	"pet-adoption/internal/ports/auth"
	"pet-adoption/internal/seed"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

const defaultSessionTTL = 7 * 24 * time.Hour

type Options struct {
	Config *config.Config
	Log    logger.Logger

	// Si Backend viene vacío se usan repos in-memory.
	Backend Backend

	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)
	Publisher    applications.Publisher
	Images       pets.ImageStore
	RateLimiter  *middleware.RateLimiter
}

func NewRouter(opts Options) http.Handler {
	cfg := opts.Config
	if cfg == nil {
		cfg = &config.Config{}
	}
	log := opts.Log
	if log == nil {
		log = logger.NewNop()
	}
	backend := opts.Backend
	if backend.Pets == nil {
		backend = NewMemoryBackend()
	}

	svc := NewServices(backend)
	if opts.Images != nil {
		svc.Pets.WithImageStore(opts.Images)
	}
	if opts.Publisher != nil {
		svc.Applications.WithPublisher(opts.Publisher, log)
	}

	cookieName := cfg.Session.CookieName
	if cookieName == "" {
		cookieName = "sid"
	}
	ttl := cfg.Session.TTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(metrics.InstrumentHandler)

	r.Use(middleware.AuthContext(middleware.AuthOptions{
		Verifier:   opts.AuthVerifier,
		Sessions:   backend.Sessions,
		CookieName: cookieName,
		Syncer:     svc.Users,
		Log:        log,
	}))
	// Después de AuthContext para poder loguear user_id.
	r.Use(middleware.RequestLogger(log))
	if opts.RateLimiter != nil {
		r.Use(opts.RateLimiter.Handler)
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Rutas por módulo
	pets.RegisterRoutes(r, svc.Pets, log)
	shelters.RegisterRoutes(r, svc.Shelters, log)
	favorites.RegisterRoutes(r, svc.Favorites, log)
	applications.RegisterRoutes(r, svc.Applications, log)
	users.RegisterRoutes(r, svc.Users, users.SessionOptions{
		Store:      backend.Sessions,
		TTL:        ttl,
		CookieName: cookieName,
		Secure:     cfg.Session.CookieSecure,
	}, log)

	r.Route("/api/admin", func(ar chi.Router) {
		ar.Use(middleware.RequireAdmin(cfg.AdminUserIDs))
		shelters.RegisterAdminRoutes(ar, svc.Shelters, log)
		pets.RegisterAdminRoutes(ar, svc.Pets, log)
		applications.RegisterAdminRoutes(ar, svc.Applications, log)
	})

	if cfg.EnableSeed {
		seed.RegisterRoutes(r, svc.Shelters, svc.Pets, log)
	}

	return r
}
