package website

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	_ "github.com/magabrotheeeer/cirec-website/docs"
	admarticles "github.com/magabrotheeeer/cirec-website/internal/http/handlers/admin/articles"
	admdashboard "github.com/magabrotheeeer/cirec-website/internal/http/handlers/admin/dashboard"
	"github.com/magabrotheeeer/cirec-website/internal/http/handlers/admin/upload"
	admusers "github.com/magabrotheeeer/cirec-website/internal/http/handlers/admin/users"
	"github.com/magabrotheeeer/cirec-website/internal/http/handlers/api/apisearch"
	"github.com/magabrotheeeer/cirec-website/internal/http/handlers/auth/forgotpassword"
	"github.com/magabrotheeeer/cirec-website/internal/http/handlers/auth/form"
	"github.com/magabrotheeeer/cirec-website/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/cirec-website/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/cirec-website/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/cirec-website/internal/http/handlers/auth/resetpassword"
	"github.com/magabrotheeeer/cirec-website/internal/http/handlers/health"
	"github.com/magabrotheeeer/cirec-website/internal/http/handlers/home"
	"github.com/magabrotheeeer/cirec-website/internal/http/handlers/search/preview"
	"github.com/magabrotheeeer/cirec-website/internal/http/handlers/search/search"
	"github.com/magabrotheeeer/cirec-website/internal/http/handlers/search/suggestions"
	"github.com/magabrotheeeer/cirec-website/internal/http/handlers/user/article"
	usrarticles "github.com/magabrotheeeer/cirec-website/internal/http/handlers/user/articles"
	usrdashboard "github.com/magabrotheeeer/cirec-website/internal/http/handlers/user/dashboard"
	"github.com/magabrotheeeer/cirec-website/internal/http/handlers/user/profile"
	usrsubscription "github.com/magabrotheeeer/cirec-website/internal/http/handlers/user/subscription"
	"github.com/magabrotheeeer/cirec-website/internal/http/handlers/user/upgrade"
	"github.com/magabrotheeeer/cirec-website/internal/http/middlewarectx"
	"github.com/magabrotheeeer/cirec-website/internal/lib/metrics"
	adminservice "github.com/magabrotheeeer/cirec-website/internal/services/admin"
	articleservice "github.com/magabrotheeeer/cirec-website/internal/services/articles"
	authservice "github.com/magabrotheeeer/cirec-website/internal/services/auth"
	subservice "github.com/magabrotheeeer/cirec-website/internal/services/subscription"
)

// Вход, регистрация и восстановление пароля: 5 запросов в минуту с запасом 5 на IP.
const (
	authRateLimit = rate.Limit(5.0 / 60.0)
	authRateBurst = 5
)

// Services сервисы бизнес-логики.
type Services struct {
	Auth         *authservice.Service
	Articles     *articleservice.Service
	Subscription *subservice.Service
	Admin        *adminservice.Service
}

// Deps зависимости маршрутов.
type Deps struct {
	Services      Services
	Metrics       *metrics.Metrics
	Database      health.Pinger
	Cache         health.Pinger
	Cookie        middlewarectx.SessionCookie
	AuthLimiter   *middlewarectx.ClientLimiter
	MaxUploadSize int64
}

// RegisterRoutes регистрирует все маршруты сайта.
func RegisterRoutes(r chi.Router, logger *slog.Logger, d Deps) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middlewarectx.Metrics(d.Metrics),
		middlewarectx.Session(d.Services.Auth, d.Cookie, logger),
	)

	r.Get("/", home.New().ServeHTTP)

	r.Route("/auth", func(r chi.Router) {
		r.Get("/login", form.New(form.Login).ServeHTTP)
		r.Get("/register", form.New(form.Register).ServeHTTP)
		r.Get("/forgot-password", form.New(form.ForgotPassword).ServeHTTP)
		r.Get("/reset-password/{token}", form.New(form.ResetPassword).ServeHTTP)
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimit(d.AuthLimiter, logger))
			r.Post("/login", login.New(logger, d.Services.Auth, d.Cookie).ServeHTTP)
			r.Post("/register", register.New(logger, d.Services.Auth).ServeHTTP)
			r.Post("/forgot-password", forgotpassword.New(logger, d.Services.Auth).ServeHTTP)
		})
		r.Post("/reset-password/{token}", resetpassword.New(logger, d.Services.Auth).ServeHTTP)
		r.With(middlewarectx.LoginRequired(logger)).
			Get("/logout", logout.New(logger, d.Services.Auth, d.Cookie).ServeHTTP)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(middlewarectx.LoginRequired(logger))
		r.Use(middlewarectx.AdminRequired(logger))
		r.Get("/dashboard", admdashboard.New(logger, d.Services.Admin).ServeHTTP)
		r.Get("/users", admusers.New(logger, d.Services.Admin).ServeHTTP)
		r.Get("/articles", admarticles.New(logger, d.Services.Admin).ServeHTTP)
		r.Post("/content/upload", upload.New(logger, d.Services.Admin, d.MaxUploadSize).ServeHTTP)
	})

	r.Route("/search", func(r chi.Router) {
		r.Get("/", search.New(logger, d.Services.Articles).ServeHTTP)
		r.Get("/preview/{id}", preview.New(logger, d.Services.Articles).ServeHTTP)
		r.Get("/suggestions", suggestions.New(logger, d.Services.Articles).ServeHTTP)
	})

	r.Get("/api/search", apisearch.New(logger, d.Services.Articles).ServeHTTP)

	r.Route("/user", func(r chi.Router) {
		r.Use(middlewarectx.LoginRequired(logger))
		r.Get("/dashboard", usrdashboard.New(logger, d.Services.Articles).ServeHTTP)
		r.Get("/profile", profile.New().ServeHTTP)
		r.Get("/subscription", usrsubscription.New(d.Services.Subscription).ServeHTTP)
		r.Get("/articles", usrarticles.New(logger, d.Services.Articles).ServeHTTP)
		r.Get("/article/{id}", article.New(logger, d.Services.Articles).ServeHTTP)
		r.Post("/subscription/upgrade", upgrade.New(logger, d.Services.Subscription).ServeHTTP)
	})

	r.Handle("/metrics", d.Metrics.Handler())
	r.Get("/health", health.New(logger, d.Database, d.Cache).ServeHTTP)
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
