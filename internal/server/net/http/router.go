// Package http собирает HTTP-роутер сервера.
//
// Пакет отвечает за:
//   - регистрацию маршрутов API, админки и служебных эндпоинтов (chi);
//   - порядок middleware: request id, recovery, логирование, метрики, CORS, rate limit;
//   - JSON-ответы 404/405.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/aaronsummercloud/recipe-api-project/internal/server/api"
	"github.com/aaronsummercloud/recipe-api-project/internal/server/config"
	"github.com/aaronsummercloud/recipe-api-project/internal/server/middleware"

	// регистрирует swagger.json в swag
	_ "github.com/aaronsummercloud/recipe-api-project/swagger/docs"
)

// Options — необязательные части роутера.
type Options struct {
	// Admin — HTML-админка, монтируется на /admin. nil — без админки.
	Admin http.Handler
	// Limiter — rate limit по IP для /api. nil — без ограничения.
	Limiter *middleware.IPRateLimiter

	// TrustProxy — доверять X-Forwarded-For/X-Real-IP (chi RealIP).
	// Без него rate limit считает по адресу TCP-соединения.
	TrustProxy bool

	CORS    config.CORSConfig
	Metrics config.MetricsConfig
	Pprof   config.PprofConfig
}

// NewRouter создаёт и настраивает HTTP-роутер сервера.
//
// Маршруты:
//   - /api/user/...     пользователи и токены
//   - /api/recipe/...   рецепты текущего пользователя
//   - /admin/...        админка (если передана)
//   - /healthz, /readyz, /metrics, /swagger/*, pprof
//
// Завершающий слэш необязателен: /api/user/me и /api/user/me/ равнозначны.
func NewRouter(h *api.Handler, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	if opts.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.LoggerMiddleware(h.Log))
	r.Use(middleware.Recoverer(h.Log))
	r.Use(middleware.Metrics)
	r.Use(chimw.StripSlashes)

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	// служебное
	r.Get("/healthz", h.Healthz)
	r.Get("/readyz", h.Readyz)
	if opts.Metrics.Enabled {
		r.Handle(opts.Metrics.Path, promhttp.Handler())
	}
	if opts.Pprof.Enabled {
		r.Mount(opts.Pprof.PathPrefix, chimw.Profiler())
	}
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api", func(r chi.Router) {
		if opts.CORS.Enabled {
			r.Use(newCORS(opts.CORS).Handler)
		}
		if opts.Limiter != nil {
			r.Use(opts.Limiter.Middleware)
		}

		r.Route("/user", func(r chi.Router) {
			// публичные
			r.Post("/create", h.CreateUser)
			r.Post("/token", h.CreateToken)

			// по токену
			r.Group(func(r chi.Router) {
				r.Use(middleware.TokenAuth(h.Svc.Auth))

				r.Delete("/token", h.RevokeToken)
				r.Get("/me", h.Me)
				r.Put("/me", h.UpdateMe)
				r.Patch("/me", h.PatchMe)
			})
		})

		r.Route("/recipe", func(r chi.Router) {
			r.Use(middleware.TokenAuth(h.Svc.Auth))

			r.Get("/recipes", h.ListRecipes)
			r.Post("/recipes", h.CreateRecipe)
			r.Get("/recipes/{id}", h.GetRecipe)
			r.Put("/recipes/{id}", h.UpdateRecipe)
			r.Patch("/recipes/{id}", h.PatchRecipe)
			r.Delete("/recipes/{id}", h.DeleteRecipe)
		})
	})

	if opts.Admin != nil {
		r.Mount("/admin", opts.Admin)
	}

	return r
}

func newCORS(c config.CORSConfig) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: c.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders:   []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: c.AllowCredentials,
		MaxAge:           c.MaxAge,
	})
}
