package admin_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/cirec-website/internal/models"
	"github.com/magabrotheeeer/cirec-website/internal/services/admin"
	"github.com/magabrotheeeer/cirec-website/internal/storage"
)

type UserStoreMock struct {
	mock.Mock
}

func (m *UserStoreMock) CountUsers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *UserStoreMock) RecentUsers(ctx context.Context, limit int) ([]*models.User, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *UserStoreMock) ListUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

type ArticleStoreMock struct {
	mock.Mock
}

func (m *ArticleStoreMock) CountArticles(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ArticleStoreMock) ListArticles(ctx context.Context) ([]*models.Article, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Article), args.Error(1)
}

func (m *ArticleStoreMock) CreateArticle(ctx context.Context, a models.NewArticle) (int64, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(int64), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestService_Dashboard(t *testing.T) {
	users := new(UserStoreMock)
	articles := new(ArticleStoreMock)
	svc := admin.New(newNoopLogger(), users, articles, t.TempDir(), 1024)

	recent := []*models.User{{ID: 3}, {ID: 2}}
	users.On("CountUsers", mock.Anything).Return(int64(12), nil).Once()
	articles.On("CountArticles", mock.Anything).Return(int64(40), nil).Once()
	users.On("RecentUsers", mock.Anything, 5).Return(recent, nil).Once()

	d, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), d.TotalUsers)
	assert.Equal(t, int64(40), d.TotalArticles)
	assert.Equal(t, recent, d.RecentUsers)
	users.AssertExpectations(t)
	articles.AssertExpectations(t)
}

func TestService_Dashboard_Error(t *testing.T) {
	users := new(UserStoreMock)
	svc := admin.New(newNoopLogger(), users, new(ArticleStoreMock), t.TempDir(), 1024)
	users.On("CountUsers", mock.Anything).Return(int64(0), errors.New("db down"))

	_, err := svc.Dashboard(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "admin.Dashboard")
}

func TestService_Lists(t *testing.T) {
	users := new(UserStoreMock)
	articles := new(ArticleStoreMock)
	svc := admin.New(newNoopLogger(), users, articles, t.TempDir(), 1024)

	users.On("ListUsers", mock.Anything).Return([]*models.User{{ID: 1}}, nil).Once()
	articles.On("ListArticles", mock.Anything).Return([]*models.Article{{ID: 1}, {ID: 2, IsPublished: false}}, nil).Once()

	u, err := svc.Users(context.Background())
	require.NoError(t, err)
	assert.Len(t, u, 1)

	a, err := svc.Articles(context.Background())
	require.NoError(t, err)
	assert.Len(t, a, 2)
}

func TestService_Upload(t *testing.T) {
	t.Run("text file becomes article content", func(t *testing.T) {
		dir := t.TempDir()
		articles := new(ArticleStoreMock)
		svc := admin.New(newNoopLogger(), new(UserStoreMock), articles, dir, 1024)

		var saved models.NewArticle
		articles.On("CreateArticle", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { saved = args.Get(1).(models.NewArticle) }).
			Return(int64(9), nil).Once()

		id, err := svc.Upload(context.Background(), admin.UploadRequest{
			Title:       " Ethylene report ",
			Author:      "CIREC",
			Filename:    "../../etc/report.txt",
			File:        strings.NewReader("Ethylene production Russia 2025"),
			IsPublished: true,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(9), id)

		assert.Equal(t, "Ethylene report", saved.Title)
		require.NotNil(t, saved.Content)
		assert.Equal(t, "Ethylene production Russia 2025", *saved.Content)
		assert.Nil(t, saved.Summary)
		require.NotNil(t, saved.Author)
		assert.Equal(t, "CIREC", *saved.Author)
		require.NotNil(t, saved.SourceFile)
		assert.Equal(t, "report.txt", *saved.SourceFile)
		require.NotNil(t, saved.FilePath)
		assert.Equal(t, dir, filepath.Dir(*saved.FilePath))
		assert.True(t, saved.IsPublished)

		data, err := os.ReadFile(*saved.FilePath)
		require.NoError(t, err)
		assert.Equal(t, "Ethylene production Russia 2025", string(data))
	})

	t.Run("binary document has no content", func(t *testing.T) {
		articles := new(ArticleStoreMock)
		svc := admin.New(newNoopLogger(), new(UserStoreMock), articles, t.TempDir(), 1024)
		articles.On("CreateArticle", mock.Anything, mock.MatchedBy(func(a models.NewArticle) bool {
			return a.Content == nil && a.SourceFile != nil && *a.SourceFile == "scan.pdf"
		})).Return(int64(1), nil).Once()

		_, err := svc.Upload(context.Background(), admin.UploadRequest{
			Title:    "Scan",
			Filename: "scan.pdf",
			File:     strings.NewReader("%PDF-1.4"),
		})
		require.NoError(t, err)
		articles.AssertExpectations(t)
	})

	t.Run("validation", func(t *testing.T) {
		dir := t.TempDir()
		svc := admin.New(newNoopLogger(), new(UserStoreMock), new(ArticleStoreMock), dir, 4)

		_, err := svc.Upload(context.Background(), admin.UploadRequest{Title: " ", Filename: "a.txt", File: strings.NewReader("x")})
		assert.ErrorIs(t, err, admin.ErrEmptyTitle)

		_, err = svc.Upload(context.Background(), admin.UploadRequest{Title: "T", Filename: "a.exe", File: strings.NewReader("x")})
		assert.ErrorIs(t, err, admin.ErrUnsupportedFile)

		_, err = svc.Upload(context.Background(), admin.UploadRequest{Title: "T", Filename: "a.txt", File: strings.NewReader("too long")})
		assert.ErrorIs(t, err, admin.ErrFileTooLarge)

		_, err = svc.Upload(context.Background(), admin.UploadRequest{Title: strings.Repeat("э", 201), Filename: "a.txt", File: strings.NewReader("x")})
		assert.ErrorIs(t, err, admin.ErrFieldTooLong)

		_, err = svc.Upload(context.Background(), admin.UploadRequest{Title: "T", Author: strings.Repeat("a", 101), Filename: "a.txt", File: strings.NewReader("x")})
		assert.ErrorIs(t, err, admin.ErrFieldTooLong)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("title of exactly 200 runes is accepted", func(t *testing.T) {
		articles := new(ArticleStoreMock)
		svc := admin.New(newNoopLogger(), new(UserStoreMock), articles, t.TempDir(), 1024)
		articles.On("CreateArticle", mock.Anything, mock.Anything).Return(int64(2), nil).Once()

		_, err := svc.Upload(context.Background(), admin.UploadRequest{Title: strings.Repeat("э", 200), Filename: "a.txt", File: strings.NewReader("x")})
		require.NoError(t, err)
	})

	t.Run("column overflow at insert", func(t *testing.T) {
		dir := t.TempDir()
		articles := new(ArticleStoreMock)
		svc := admin.New(newNoopLogger(), new(UserStoreMock), articles, dir, 1024)
		articles.On("CreateArticle", mock.Anything, mock.Anything).Return(int64(0), storage.ErrValueTooLong).Once()

		_, err := svc.Upload(context.Background(), admin.UploadRequest{Title: "T", Filename: "a.txt", File: strings.NewReader("x")})
		assert.ErrorIs(t, err, admin.ErrFieldTooLong)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("storage failure removes file", func(t *testing.T) {
		dir := t.TempDir()
		articles := new(ArticleStoreMock)
		svc := admin.New(newNoopLogger(), new(UserStoreMock), articles, dir, 1024)
		articles.On("CreateArticle", mock.Anything, mock.Anything).Return(int64(0), errors.New("db down")).Once()

		_, err := svc.Upload(context.Background(), admin.UploadRequest{Title: "T", Filename: "a.txt", File: strings.NewReader("x")})
		require.Error(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
