package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/magabrotheeeer/cirec-website/internal/models"
)

func scanArticle(row rowScanner) (*models.Article, error) {
	var (
		a                        models.Article
		content, summary, author sql.NullString
		sourceFile, filePath     sql.NullString
	)
	err := row.Scan(&a.ID, &a.Title, &content, &summary, &author, &sourceFile, &filePath,
		&a.CreatedAt, &a.UpdatedAt, &a.IsPublished, &a.ViewCount)
	if err != nil {
		return nil, err
	}
	a.Content = nullStringPtr(content)
	a.Summary = nullStringPtr(summary)
	a.Author = nullStringPtr(author)
	a.SourceFile = nullStringPtr(sourceFile)
	a.FilePath = nullStringPtr(filePath)
	return &a, nil
}

// GetArticle возвращает статью по ID независимо от статуса публикации.
func (s *Storage) GetArticle(ctx context.Context, id int64) (*models.Article, error) {
	const op = "storage.GetArticle"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`
	a, err := scanArticle(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrArticleNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

// IncrementViewCount увеличивает счетчик просмотров на единицу одним UPDATE
// и возвращает статью с новым значением счетчика.
func (s *Storage) IncrementViewCount(ctx context.Context, id int64) (*models.Article, error) {
	const op = "storage.IncrementViewCount"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE articles SET view_count = view_count + 1 WHERE id = $1 RETURNING ` + articleColumns
	a, err := scanArticle(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrArticleNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

// SearchArticles выполняет поиск по опубликованным статьям.
func (s *Storage) SearchArticles(ctx context.Context, q models.ArticleQuery) ([]*models.Article, error) {
	return s.queryArticles(ctx, "storage.SearchArticles", searchQuery(q))
}

// SearchTitleOrContent ищет подстроку в заголовке или тексте опубликованных статей.
func (s *Storage) SearchTitleOrContent(ctx context.Context, text string, limit uint64) ([]*models.Article, error) {
	return s.queryArticles(ctx, "storage.SearchTitleOrContent", titleOrContentQuery(text, limit))
}

// ListPublished возвращает опубликованные статьи, новые первыми. limit 0 снимает ограничение.
func (s *Storage) ListPublished(ctx context.Context, limit uint64) ([]*models.Article, error) {
	return s.queryArticles(ctx, "storage.ListPublished", searchQuery(models.ArticleQuery{Limit: limit}))
}

// ListArticles возвращает все статьи, включая неопубликованные.
func (s *Storage) ListArticles(ctx context.Context) ([]*models.Article, error) {
	b := psql.Select(articleColumns).From("articles").OrderBy("created_at DESC", "id DESC")
	return s.queryArticles(ctx, "storage.ListArticles", b)
}

func (s *Storage) queryArticles(ctx context.Context, op string, b sq.SelectBuilder) ([]*models.Article, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	result := make([]*models.Article, 0)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// SuggestTitles возвращает до limit заголовков опубликованных статей,
// содержащих text без учета регистра.
func (s *Storage) SuggestTitles(ctx context.Context, text string, limit uint64) ([]string, error) {
	const op = "storage.SuggestTitles"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query, args, err := titleSuggestionsQuery(text, limit).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	titles := make([]string, 0)
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		titles = append(titles, title)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return titles, nil
}

// CountArticles возвращает общее число статей.
func (s *Storage) CountArticles(ctx context.Context) (int64, error) {
	const op = "storage.CountArticles"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var n int64
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM articles`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// CreateArticle сохраняет статью и возвращает ее ID.
func (s *Storage) CreateArticle(ctx context.Context, a models.NewArticle) (int64, error) {
	const op = "storage.CreateArticle"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO articles (title, content, summary, author, source_file, file_path, is_published)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	var id int64
	err := s.DB.QueryRowContext(ctx, query, a.Title, ptrToNull(a.Content), ptrToNull(a.Summary),
		ptrToNull(a.Author), ptrToNull(a.SourceFile), ptrToNull(a.FilePath), a.IsPublished).Scan(&id)
	if valueTooLong(err) {
		return 0, fmt.Errorf("%s: %w", op, ErrValueTooLong)
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}
