package form

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/cirec-website/internal/http/flash"
)

func TestFormHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name     string
		form     string
		target   string
		token    string
		wantBody string
	}{
		{
			name:     "login echoes local next",
			form:     Login,
			target:   "/auth/login?next=%2Fuser%2Fdashboard",
			wantBody: `{"status":"OK","data":{"form":"login","next":"/user/dashboard"}}`,
		},
		{
			name:     "login drops external next",
			form:     Login,
			target:   "/auth/login?next=https%3A%2F%2Fevil.example",
			wantBody: `{"status":"OK","data":{"form":"login"}}`,
		},
		{
			name:     "register",
			form:     Register,
			target:   "/auth/register",
			wantBody: `{"status":"OK","data":{"form":"register"}}`,
		},
		{
			name:     "reset password carries token",
			form:     ResetPassword,
			target:   "/auth/reset-password/abc",
			token:    "abc",
			wantBody: `{"status":"OK","data":{"form":"reset_password","token":"abc"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.token != "" {
				rctx := chi.NewRouteContext()
				rctx.URLParams.Add("token", tt.token)
				req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			}
			rec := httptest.NewRecorder()

			New(tt.form).ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestFormHandler_PopsFlashes(t *testing.T) {
	payload, err := json.Marshal([]flash.Message{{Category: flash.Info, Text: "Please log in to access this page."}})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
	req.AddCookie(&http.Cookie{Name: flash.CookieName, Value: base64.RawURLEncoding.EncodeToString(payload)})
	rec := httptest.NewRecorder()

	New(Login).ServeHTTP(rec, req)

	assert.JSONEq(t, `{"status":"OK","data":{"form":"login"},
		"flashes":[{"category":"info","message":"Please log in to access this page."}]}`, rec.Body.String())

	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == flash.CookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}
