package logout

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/cirec-website/internal/http/middlewarectx"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Logout(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestLogoutHandler_ServeHTTP(t *testing.T) {
	for _, revokeErr := range []error{nil, errors.New("redis down")} {
		svc := new(AuthServiceMock)
		svc.On("Logout", mock.Anything, "tok").Return(revokeErr).Once()
		cookie := middlewarectx.SessionCookie{Name: "session"}

		req := httptest.NewRequest(http.MethodGet, "/auth/logout", nil)
		req.AddCookie(&http.Cookie{Name: "session", Value: "tok"})
		rec := httptest.NewRecorder()

		New(newNoopLogger(), svc, cookie).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))

		cleared := false
		for _, c := range rec.Result().Cookies() {
			if c.Name == "session" && c.MaxAge < 0 {
				cleared = true
			}
		}
		assert.True(t, cleared, "session cookie must be cleared even if revocation fails")
		svc.AssertExpectations(t)
	}
}
