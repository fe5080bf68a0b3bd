package search

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/cirec-website/internal/models"
)

type SearchServiceMock struct {
	mock.Mock
}

func (m *SearchServiceMock) Search(ctx context.Context, f models.SearchFilter) ([]*models.Article, error) {
	args := m.Called(ctx, f)
	res, _ := args.Get(0).([]*models.Article)
	return res, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestSearchHandler_ServeHTTP(t *testing.T) {
	t.Run("passes every filter", func(t *testing.T) {
		svc := new(SearchServiceMock)
		want := models.SearchFilter{Query: "polymer", DateRange: "3_months", Company: "Sibur", Product: "PVC"}
		svc.On("Search", mock.Anything, want).
			Return([]*models.Article{{ID: 1, Title: "Polymer market"}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/search/?q=polymer&date_range=3_months&company=Sibur&product=PVC", nil)
		rec := httptest.NewRecorder()
		New(newNoopLogger(), svc).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var got struct {
			Status string `json:"status"`
			Data   Result `json:"data"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, "OK", got.Status)
		assert.Equal(t, "polymer", got.Data.Query)
		require.Len(t, got.Data.Results, 1)
		assert.Equal(t, "Polymer market", got.Data.Results[0].Title)
		svc.AssertExpectations(t)
	})

	t.Run("empty results are an empty list", func(t *testing.T) {
		svc := new(SearchServiceMock)
		svc.On("Search", mock.Anything, models.SearchFilter{}).Return(nil, nil).Once()

		rec := httptest.NewRecorder()
		New(newNoopLogger(), svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search/", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"results":[]`)
	})

	t.Run("service error", func(t *testing.T) {
		svc := new(SearchServiceMock)
		svc.On("Search", mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()

		rec := httptest.NewRecorder()
		New(newNoopLogger(), svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search/?q=x", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
