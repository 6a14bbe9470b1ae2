package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Ansan-Yabesh/BookAPI/internal/domain"
	"github.com/Ansan-Yabesh/BookAPI/internal/transport/http/middleware"
	"github.com/Ansan-Yabesh/BookAPI/internal/transport/http/response"
)

type HealthHandler interface {
	Healthz(w http.ResponseWriter, r *http.Request)
	Readyz(w http.ResponseWriter, r *http.Request)
}

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	VerifyOTP(w http.ResponseWriter, r *http.Request)
	ResendOTP(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	UpdateProfile(w http.ResponseWriter, r *http.Request)

	// Moderation (manager and above)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	ListAccounts(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)

	// Admin only
	CreateManager(w http.ResponseWriter, r *http.Request)
}

type BookHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)

	AddFavorite(w http.ResponseWriter, r *http.Request)
	RemoveFavorite(w http.ResponseWriter, r *http.Request)
	ListFavorites(w http.ResponseWriter, r *http.Request)
}

// RateConfig tunes the per-IP global throttle and the stricter
// redis-backed windows on the mail-sending auth routes.
type RateConfig struct {
	Enabled bool
	Limit   int
	Window  time.Duration

	LoginLimit  int
	ResendLimit int
	AuthWindow  time.Duration
}

type Deps struct {
	Health HealthHandler
	Auth   AuthHandler
	Books  BookHandler

	Verifier middleware.TokenVerifier
	Limiter  middleware.RateLimiter

	Rate RateConfig
}

func New(deps Deps) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.Auth == nil {
		return nil, fmt.Errorf("nil Auth handler")
	}
	if deps.Books == nil {
		return nil, fmt.Errorf("nil Books handler")
	}
	if deps.Verifier == nil {
		return nil, fmt.Errorf("nil token verifier")
	}

	writeErr := middleware.WriteErrFunc(response.WriteError)

	authMW := middleware.Auth(deps.Verifier, writeErr)
	modMW := middleware.RequireAtLeast(string(domain.RoleManager), writeErr)
	adminMW := middleware.RequireAtLeast(string(domain.RoleAdmin), writeErr)
	userMW := middleware.RequireRole(string(domain.RoleUser), writeErr)

	loginRL := middleware.RateLimitFixedWindow(deps.Limiter, middleware.FixedWindowConfig{
		RouteKey: "login",
		Limit:    deps.Rate.LoginLimit,
		Window:   deps.Rate.AuthWindow,
	}, writeErr)
	resendRL := middleware.RateLimitFixedWindow(deps.Limiter, middleware.FixedWindowConfig{
		RouteKey: "resend_otp",
		Limit:    deps.Rate.ResendLimit,
		Window:   deps.Rate.AuthWindow,
	}, writeErr)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)

	if deps.Rate.Enabled {
		r.Use(httprate.LimitByIP(deps.Rate.Limit, deps.Rate.Window))
	}

	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", deps.Auth.Register)
		r.Post("/verify-otp", deps.Auth.VerifyOTP)
		r.With(resendRL).Post("/resend-otp", deps.Auth.ResendOTP)
		r.With(loginRL).Post("/login", deps.Auth.Login)

		r.With(authMW).Put("/profile", deps.Auth.UpdateProfile)

		// moderation surface
		r.Group(func(r chi.Router) {
			r.Use(authMW)
			r.Use(modMW)

			r.Put("/approve/{id}", deps.Auth.Approve)
			r.Put("/reject/{id}", deps.Auth.Reject)
			r.Get("/users", deps.Auth.ListAccounts)
			r.Get("/users/pending", deps.Auth.ListPending)
		})

		r.With(authMW, adminMW).Post("/managers", deps.Auth.CreateManager)
	})

	r.Route("/api/books", func(r chi.Router) {
		// catalog reads are public
		r.Get("/", deps.Books.List)

		// favorites are a reader feature, exactly role user
		r.Group(func(r chi.Router) {
			r.Use(authMW)
			r.Use(userMW)

			r.Get("/favorites", deps.Books.ListFavorites)
			r.Post("/{id}/favorites", deps.Books.AddFavorite)
			r.Delete("/{id}/favorites", deps.Books.RemoveFavorite)
		})

		r.Get("/{id}", deps.Books.Get)

		r.Group(func(r chi.Router) {
			r.Use(authMW)
			r.Use(modMW)

			r.Post("/", deps.Books.Create)
			r.Put("/{id}", deps.Books.Update)
			r.Delete("/{id}", deps.Books.Delete)
		})
	})

	return r, nil
}
