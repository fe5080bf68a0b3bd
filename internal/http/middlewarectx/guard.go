package middlewarectx

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/cirec-website/internal/http/flash"
)

const (
	// LoginPath страница входа.
	LoginPath = "/auth/login"

	msgLoginRequired = "Please log in to access this page."
	msgAdminRequired = "Admin access required"
)

// LoginRequired пропускает только запросы с сессией. Анонимный пользователь
// перенаправляется на страницу входа с параметром next.
func LoginRequired(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := UserFromContext(r.Context()); ok {
				next.ServeHTTP(w, r)
				return
			}

			log.Info("anonymous request to protected page",
				slog.String("op", "middlewarectx.LoginRequired"),
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.String("path", r.URL.Path),
			)
			flash.Add(w, r, flash.Info, msgLoginRequired)
			target := LoginPath + "?next=" + url.QueryEscape(r.URL.RequestURI())
			http.Redirect(w, r, target, http.StatusSeeOther)
		})
	}
}

// AdminRequired пропускает только администраторов. Остальные, включая анонимных,
// перенаправляются на страницу входа.
func AdminRequired(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user, ok := UserFromContext(r.Context()); ok && user.IsAdmin {
				next.ServeHTTP(w, r)
				return
			}

			log.Warn("admin access denied",
				slog.String("op", "middlewarectx.AdminRequired"),
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.String("path", r.URL.Path),
			)
			flash.Add(w, r, flash.Error, msgAdminRequired)
			http.Redirect(w, r, LoginPath, http.StatusSeeOther)
		})
	}
}
