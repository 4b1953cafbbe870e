package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ultimatetechie/ecommerce-api/internal/metrics"
)

type HealthHandler interface {
	Healthz(w http.ResponseWriter, r *http.Request)
	Readyz(w http.ResponseWriter, r *http.Request)
}

type UserHandler interface {
	SignUp(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Refresh(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	UpdateProfile(w http.ResponseWriter, r *http.Request)
	UpdatePassword(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
}

type ProductHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type Deps struct {
	Health   HealthHandler
	Users    UserHandler
	Products ProductHandler

	RequestIDMW func(http.Handler) http.Handler
	MetricsMW   func(http.Handler) http.Handler
	AuthMW      func(http.Handler) http.Handler

	// Optional throttles; nil leaves the route unthrottled.
	LoginLimitMW  func(http.Handler) http.Handler
	SignupLimitMW func(http.Handler) http.Handler
}

func New(deps Deps) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.Users == nil {
		return nil, fmt.Errorf("nil Users handler")
	}
	if deps.Products == nil {
		return nil, fmt.Errorf("nil Products handler")
	}
	if deps.RequestIDMW == nil {
		return nil, fmt.Errorf("nil RequestID middleware")
	}
	if deps.MetricsMW == nil {
		return nil, fmt.Errorf("nil Metrics middleware")
	}
	if deps.AuthMW == nil {
		return nil, fmt.Errorf("nil Auth middleware")
	}

	loginLimit := deps.LoginLimitMW
	if loginLimit == nil {
		loginLimit = passthrough
	}
	signupLimit := deps.SignupLimitMW
	if signupLimit == nil {
		signupLimit = passthrough
	}

	r := chi.NewRouter()
	r.Use(deps.RequestIDMW)
	r.Use(deps.MetricsMW)

	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/user", func(r chi.Router) {
		r.With(signupLimit).Post("/signup", deps.Users.SignUp)
		r.With(loginLimit).Post("/login", deps.Users.Login)
		r.Get("/refresh", deps.Users.Refresh)
		r.Post("/logout", deps.Users.Logout)

		r.Get("/", deps.Users.List)
		r.Get("/{id}", deps.Users.Get)
		r.Put("/{id}", deps.Users.UpdateProfile)
		r.Put("/{id}/password", deps.Users.UpdatePassword)
		r.Delete("/{id}", deps.Users.Deactivate)
	})

	r.Route("/api/product", func(r chi.Router) {
		r.Get("/", deps.Products.List)
		r.Get("/{id}", deps.Products.Get)

		r.Group(func(r chi.Router) {
			r.Use(deps.AuthMW)
			r.Post("/", deps.Products.Create)
			r.Put("/{id}", deps.Products.Update)
			r.Delete("/{id}", deps.Products.Delete)
		})
	})

	return r, nil
}

func passthrough(next http.Handler) http.Handler { return next }
