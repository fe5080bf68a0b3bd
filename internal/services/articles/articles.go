// Package articles реализует поиск, подсказки, превью и просмотр статей.
package articles

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/magabrotheeeer/cirec-website/internal/lib/metrics"
	"github.com/magabrotheeeer/cirec-website/internal/lib/period"
	"github.com/magabrotheeeer/cirec-website/internal/lib/sl"
	"github.com/magabrotheeeer/cirec-website/internal/models"
	"github.com/magabrotheeeer/cirec-website/internal/storage"
)

var ErrArticleNotFound = errors.New("article not found")

const (
	searchLimit          = 50
	apiSearchLimit       = 20
	dashboardLimit       = 10
	suggestionTitleLimit = 10
	maxSuggestions       = 8
	minSuggestionRunes   = 2

	previewSummaryRunes = 200
	previewContentRunes = 300
	apiSummaryRunes     = 100

	previewTTL     = 10 * time.Minute
	suggestionsTTL = 5 * time.Minute
)

// Фиксированные темы, которые дополняют подсказки из заголовков.
var topics = []string{
	"Russian petrochemical industry",
	"Gazprom chemical production",
	"Sibur polymer market",
	"LUKOIL refinery capacity",
	"Russian fertilizer exports",
	"Chemical industry Moscow",
	"Ethylene production Russia",
	"Polymer market analysis",
}

// ArticleStore хранилище статей.
type ArticleStore interface {
	GetArticle(ctx context.Context, id int64) (*models.Article, error)
	IncrementViewCount(ctx context.Context, id int64) (*models.Article, error)
	SearchArticles(ctx context.Context, q models.ArticleQuery) ([]*models.Article, error)
	SearchTitleOrContent(ctx context.Context, text string, limit uint64) ([]*models.Article, error)
	SuggestTitles(ctx context.Context, text string, limit uint64) ([]string, error)
	ListPublished(ctx context.Context, limit uint64) ([]*models.Article, error)
}

// Cache кэш превью и подсказок.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// Service сервис статей.
type Service struct {
	log      *slog.Logger
	articles ArticleStore
	cache    Cache
	metrics  *metrics.Metrics
	now      func() time.Time
}

// New создает сервис статей. metrics может быть nil.
func New(log *slog.Logger, articles ArticleStore, cache Cache, m *metrics.Metrics) *Service {
	return &Service{
		log:      log,
		articles: articles,
		cache:    cache,
		metrics:  m,
		now:      time.Now,
	}
}

// Search ищет опубликованные статьи по фильтру. Без строки запроса поиск не выполняется.
func (s *Service) Search(ctx context.Context, f models.SearchFilter) ([]*models.Article, error) {
	const op = "articles.Search"
	if f.Query == "" {
		return []*models.Article{}, nil
	}

	q := models.ArticleQuery{Text: f.Query, Limit: searchLimit}
	if since, ok := period.Since(s.now(), f.DateRange); ok {
		q.CreatedSince = &since
	}
	for _, term := range []string{f.Company, f.Product} {
		if term != "" {
			q.Terms = append(q.Terms, term)
		}
	}

	res, err := s.articles.SearchArticles(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.metrics.SearchExecuted()
	return res, nil
}

// Suggestions возвращает до восьми подсказок для автодополнения.
// Пробелы в запросе значимы и учитываются в длине.
func (s *Service) Suggestions(ctx context.Context, raw string) ([]string, error) {
	const op = "articles.Suggestions"
	q := strings.ToLower(raw)
	if utf8.RuneCountInString(q) < minSuggestionRunes {
		return []string{}, nil
	}

	titles, err := s.suggestTitles(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]string, 0, maxSuggestions)
	seen := make(map[string]struct{}, maxSuggestions)
	add := func(v string) {
		if len(result) >= maxSuggestions {
			return
		}
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	for _, title := range titles {
		if strings.Contains(strings.ToLower(title), q) {
			add(title)
		}
	}
	for _, topic := range topics {
		if strings.Contains(strings.ToLower(topic), q) {
			add(topic)
		}
	}
	return result, nil
}

func (s *Service) suggestTitles(ctx context.Context, q string) ([]string, error) {
	key := "suggestions:" + q
	var titles []string
	found, err := s.cache.Get(ctx, key, &titles)
	if err != nil {
		s.log.Warn("suggestions cache read failed", slog.String("key", key), sl.Err(err))
	}
	if found {
		return titles, nil
	}

	titles, err = s.articles.SuggestTitles(ctx, q, suggestionTitleLimit)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, titles, suggestionsTTL); err != nil {
		s.log.Warn("suggestions cache write failed", slog.String("key", key), sl.Err(err))
	}
	return titles, nil
}

// APISearch ищет статьи для JSON API по заголовку и тексту.
func (s *Service) APISearch(ctx context.Context, q string) ([]models.APIResult, error) {
	const op = "articles.APISearch"
	if q == "" {
		return []models.APIResult{}, nil
	}

	found, err := s.articles.SearchTitleOrContent(ctx, q, apiSearchLimit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.metrics.SearchExecuted()

	res := make([]models.APIResult, 0, len(found))
	for _, a := range found {
		res = append(res, models.APIResult{
			ID:      a.ID,
			Title:   a.Title,
			Summary: apiSummary(a),
			Author:  a.Author,
		})
	}
	return res, nil
}

// apiSummary возвращает summary или, если его нет, начало текста статьи.
func apiSummary(a *models.Article) string {
	if a.Summary != nil && *a.Summary != "" {
		return *a.Summary
	}
	if a.Content != nil && *a.Content != "" {
		return truncate(*a.Content, apiSummaryRunes) + "..."
	}
	return ""
}

// Preview возвращает публичное превью опубликованной статьи.
func (s *Service) Preview(ctx context.Context, id int64) (*models.Preview, error) {
	const op = "articles.Preview"
	key := "preview:" + strconv.FormatInt(id, 10)

	var cached models.Preview
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn("preview cache read failed", slog.String("key", key), sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	a, err := s.articles.GetArticle(ctx, id)
	if errors.Is(err, storage.ErrArticleNotFound) {
		return nil, ErrArticleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !a.IsPublished {
		return nil, ErrArticleNotFound
	}

	p := &models.Preview{
		ID:        a.ID,
		Title:     a.Title,
		Author:    a.Author,
		CreatedAt: a.CreatedAt,
		Summary:   ellipsis(a.Summary, previewSummaryRunes),
		Content:   ellipsis(a.Content, previewContentRunes),
		IsPreview: true,
	}
	if err := s.cache.Set(ctx, key, p, previewTTL); err != nil {
		s.log.Warn("preview cache write failed", slog.String("key", key), sl.Err(err))
	}
	return p, nil
}

// View отдает статью целиком и увеличивает счетчик просмотров на единицу.
// Неопубликованные статьи видят только администраторы.
func (s *Service) View(ctx context.Context, id int64, viewer *models.User) (*models.Article, error) {
	const op = "articles.View"

	a, err := s.articles.GetArticle(ctx, id)
	if errors.Is(err, storage.ErrArticleNotFound) {
		return nil, ErrArticleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !a.IsPublished && (viewer == nil || !viewer.IsAdmin) {
		return nil, ErrArticleNotFound
	}

	a, err = s.articles.IncrementViewCount(ctx, id)
	if errors.Is(err, storage.ErrArticleNotFound) {
		return nil, ErrArticleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.metrics.ArticleViewed()
	return a, nil
}

// Recent возвращает последние опубликованные статьи для кабинета пользователя.
func (s *Service) Recent(ctx context.Context) ([]*models.Article, error) {
	const op = "articles.Recent"
	res, err := s.articles.ListPublished(ctx, dashboardLimit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Published возвращает все опубликованные статьи.
func (s *Service) Published(ctx context.Context) ([]*models.Article, error) {
	const op = "articles.Published"
	res, err := s.articles.ListPublished(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func ellipsis(s *string, n int) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := truncate(*s, n) + "..."
	return &v
}
