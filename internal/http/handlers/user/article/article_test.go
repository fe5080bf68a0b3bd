package article

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/cirec-website/internal/http/middlewarectx"
	"github.com/magabrotheeeer/cirec-website/internal/models"
	"github.com/magabrotheeeer/cirec-website/internal/services/articles"
)

type ArticleServiceMock struct {
	mock.Mock
}

func (m *ArticleServiceMock) View(ctx context.Context, id int64, viewer *models.User) (*models.Article, error) {
	args := m.Called(ctx, id, viewer)
	res, _ := args.Get(0).(*models.Article)
	return res, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func request(id string, viewer *models.User) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/user/article/"+id, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	return req.WithContext(middlewarectx.WithUser(ctx, viewer))
}

func TestArticleHandler_ServeHTTP(t *testing.T) {
	viewer := &models.User{ID: 5}
	svc := new(ArticleServiceMock)
	svc.On("View", mock.Anything, int64(1), viewer).
		Return(&models.Article{ID: 1, Title: "LUKOIL", ViewCount: 4}, nil).Once()
	svc.On("View", mock.Anything, int64(2), viewer).Return(nil, articles.ErrArticleNotFound).Once()

	h := New(newNoopLogger(), svc)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, request("1", viewer))
	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		Data models.Article `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, int64(4), got.Data.ViewCount)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, request("2", viewer))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, request("x", viewer))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	svc.AssertExpectations(t)
}
