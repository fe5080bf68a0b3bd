// Package admin реализует сводку для панели администратора и загрузку документов.
package admin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/cirec-website/internal/lib/sl"
	"github.com/magabrotheeeer/cirec-website/internal/models"
	"github.com/magabrotheeeer/cirec-website/internal/storage"
)

var (
	ErrFileTooLarge    = errors.New("file too large")
	ErrUnsupportedFile = errors.New("unsupported file type")
	ErrEmptyTitle      = errors.New("title is required")
	ErrFieldTooLong    = errors.New("field too long")
)

var (
	allowedExtensions   = map[string]bool{".txt": true, ".md": true, ".pdf": true, ".doc": true, ".docx": true}
	plainTextExtensions = map[string]bool{".txt": true, ".md": true}
)

const recentUsersLimit = 5

// Длины колонок articles.
const (
	maxTitleRunes    = 200
	maxAuthorRunes   = 100
	maxFilenameRunes = 255
)

// UserStore хранилище пользователей.
type UserStore interface {
	CountUsers(ctx context.Context) (int64, error)
	RecentUsers(ctx context.Context, limit int) ([]*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
}

// ArticleStore хранилище статей.
type ArticleStore interface {
	CountArticles(ctx context.Context) (int64, error)
	ListArticles(ctx context.Context) ([]*models.Article, error)
	CreateArticle(ctx context.Context, a models.NewArticle) (int64, error)
}

// Dashboard сводка для панели администратора.
type Dashboard struct {
	TotalUsers    int64          `json:"total_users"`
	TotalArticles int64          `json:"total_articles"`
	RecentUsers   []*models.User `json:"recent_users"`
}

// UploadRequest загружаемый документ и метаданные статьи.
type UploadRequest struct {
	Title       string
	Summary     string
	Author      string
	Filename    string
	File        io.Reader
	IsPublished bool
}

// Service сервис администратора.
type Service struct {
	log          *slog.Logger
	users        UserStore
	articles     ArticleStore
	uploadFolder string
	maxFileSize  int64
}

// New создает сервис администратора.
func New(log *slog.Logger, users UserStore, articles ArticleStore, uploadFolder string, maxFileSize int64) *Service {
	return &Service{
		log:          log,
		users:        users,
		articles:     articles,
		uploadFolder: uploadFolder,
		maxFileSize:  maxFileSize,
	}
}

// Dashboard возвращает число пользователей и статей и пять последних регистраций.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	const op = "admin.Dashboard"

	users, err := s.users.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	articles, err := s.articles.CountArticles(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	recent, err := s.users.RecentUsers(ctx, recentUsersLimit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Dashboard{TotalUsers: users, TotalArticles: articles, RecentUsers: recent}, nil
}

// Users возвращает всех пользователей.
func (s *Service) Users(ctx context.Context) ([]*models.User, error) {
	const op = "admin.Users"
	res, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Articles возвращает все статьи, включая неопубликованные.
func (s *Service) Articles(ctx context.Context) ([]*models.Article, error) {
	const op = "admin.Articles"
	res, err := s.articles.ListArticles(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Upload сохраняет документ в каталог загрузок и создает по нему статью.
// Текст статьи заполняется только для текстовых файлов в UTF-8.
func (s *Service) Upload(ctx context.Context, req UploadRequest) (int64, error) {
	const op = "admin.Upload"
	log := s.log.With(slog.String("op", op))

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return 0, ErrEmptyTitle
	}
	original := filepath.Base(req.Filename)
	ext := strings.ToLower(filepath.Ext(original))
	if !allowedExtensions[ext] {
		return 0, ErrUnsupportedFile
	}
	switch {
	case utf8.RuneCountInString(title) > maxTitleRunes:
		return 0, fmt.Errorf("title: %w", ErrFieldTooLong)
	case utf8.RuneCountInString(strings.TrimSpace(req.Author)) > maxAuthorRunes:
		return 0, fmt.Errorf("author: %w", ErrFieldTooLong)
	case utf8.RuneCountInString(original) > maxFilenameRunes:
		return 0, fmt.Errorf("file name: %w", ErrFieldTooLong)
	}

	if err := os.MkdirAll(s.uploadFolder, 0o755); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	path := filepath.Join(s.uploadFolder, uuid.NewString()+ext)

	data, err := s.store(path, req.File)
	if err != nil {
		if !errors.Is(err, ErrFileTooLarge) {
			err = fmt.Errorf("%s: %w", op, err)
		}
		return 0, err
	}

	article := models.NewArticle{
		Title:       title,
		Summary:     optional(req.Summary),
		Author:      optional(req.Author),
		SourceFile:  &original,
		FilePath:    &path,
		IsPublished: req.IsPublished,
	}
	if plainTextExtensions[ext] && utf8.Valid(data) {
		article.Content = optional(string(data))
	}

	id, err := s.articles.CreateArticle(ctx, article)
	if err != nil {
		if rmErr := os.Remove(path); rmErr != nil {
			log.Warn("failed to remove orphaned upload", slog.String("path", path), sl.Err(rmErr))
		}
		if errors.Is(err, storage.ErrValueTooLong) {
			return 0, fmt.Errorf("%s: %w", op, ErrFieldTooLong)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	log.Info("article uploaded", slog.Int64("article_id", id), slog.String("source_file", original))
	return id, nil
}

// store пишет файл на диск, не превышая maxFileSize, и возвращает его содержимое.
func (s *Service) store(path string, r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxFileSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > s.maxFileSize {
		return nil, ErrFileTooLarge
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, err
	}
	return data, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
