// Package api assembles the HTTP surface.
//
// Routes:
//
//	GET    /                        status ping
//	GET    /lookup/{barcode}        Discogs lookup
//	POST   /api/auth/register       create an account
//	POST   /api/auth/login          start a session (cookie + bearer token)
//	POST   /api/auth/logout         end the session
//	GET    /api/records             list the collection (auth)
//	POST   /api/records             add a record (auth)
//	DELETE /api/records/{id}        remove a record (auth)
//	PUT    /api/records/{id}/notes  replace notes (auth)
//	GET    /metrics                 Prometheus exposition
package api

import (
	"io"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/exp/slog"

	healthAPI "vinylscan/internal/app/server/api/http/health"
	lookupAPI "vinylscan/internal/app/server/api/http/lookup"
	"vinylscan/internal/app/server/api/http/middleware"
	"vinylscan/internal/app/server/api/http/middleware/auth"
	"vinylscan/internal/app/server/api/http/middleware/logger"
	metricsMW "vinylscan/internal/app/server/api/http/middleware/metrics"
	"vinylscan/internal/app/server/api/http/middleware/recoverer"
	recordAPI "vinylscan/internal/app/server/api/http/record"
	"vinylscan/internal/app/server/api/http/response"
	userAPI "vinylscan/internal/app/server/api/http/user"
	"vinylscan/internal/app/server/config"
	"vinylscan/internal/domain/lookup"
	"vinylscan/internal/domain/record"
	"vinylscan/internal/domain/session"
	"vinylscan/internal/domain/user"
)

// Services are the domain services the handlers delegate to.
type Services struct {
	Lookup  lookup.Servicer
	Users   user.Servicer
	Session session.Servicer
	Records record.Servicer
}

type Handlers struct {
	Health *healthAPI.Handler
	Lookup *lookupAPI.Handler
	User   *userAPI.Handler
	Record *recordAPI.Handler
}

// New builds the router with every operation registered through huma.
func New(cfg *config.Config, svc Services, log *slog.Logger) *chi.Mux {
	huma.NewError = response.NewError

	mux := chi.NewMux()
	mux.Use(chimw.RequestID)
	mux.Use(chimw.RealIP)
	mux.Use(chimw.Recoverer)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: !allowsAnyOrigin(cfg.CORS.AllowedOrigins),
		MaxAge:           300,
	}))

	mux.Handle("/metrics", promhttp.Handler())

	hcfg := huma.DefaultConfig("VinylScan API", "1.0.0")
	hcfg.CreateHooks = nil
	hcfg.Formats = map[string]huma.Format{
		"application/json": jsonFormat,
		"json":             jsonFormat,
	}
	hcfg.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer", BearerFormat: "JWT"},
		"cookie": {Type: "apiKey", In: "cookie", Name: auth.CookieName},
	}

	API := humachi.New(mux, hcfg)

	h := handlers(cfg, svc, log)
	h.Health.SetupRoutes(API)
	h.Lookup.SetupRoutes(API)
	h.User.SetupRoutes(API)
	h.Record.SetupRoutes(API)

	return mux
}

func handlers(cfg *config.Config, svc Services, log *slog.Logger) *Handlers {
	recoverMW := recoverer.New(log)
	loggerMW := logger.New(log)
	authMW := auth.New(svc.Session, log)
	middlewares := middleware.NewContainer()

	public := func() huma.Middlewares {
		middlewares.Add(recoverMW.Middleware(), loggerMW.Middleware(), metricsMW.Middleware())
		return middlewares.GetAllAndClear()
	}

	healthHandler := healthAPI.NewHandler(log, public())
	lookupHandler := lookupAPI.NewHandler(svc.Lookup, log, public())
	userHandler := userAPI.NewHandler(svc.Users, svc.Session, cfg.Env == config.EnvProd, log, public())

	middlewares.Add(recoverMW.Middleware(), loggerMW.Middleware(), metricsMW.Middleware(), authMW.Middleware())
	recordHandler := recordAPI.NewHandler(svc.Records, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health: healthHandler,
		Lookup: lookupHandler,
		User:   userHandler,
		Record: recordHandler,
	}
}

var jsonFormat = huma.Format{
	Marshal: func(w io.Writer, v any) error {
		return json.NewEncoder(w).Encode(v)
	},
	Unmarshal: json.Unmarshal,
}

func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
