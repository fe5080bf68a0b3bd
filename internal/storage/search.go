package storage

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/magabrotheeeer/cirec-website/internal/models"
)

const articleColumns = `id, title, content, summary, author, source_file, file_path,
	created_at, updated_at, is_published, view_count`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern строит LIKE-шаблон для поиска s как подстроки.
// Символы % и _ из пользовательского ввода экранируются.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func publishedArticles() sq.SelectBuilder {
	return psql.Select(articleColumns).
		From("articles").
		Where(sq.Eq{"is_published": true})
}

// searchQuery собирает запрос поиска по опубликованным статьям.
func searchQuery(q models.ArticleQuery) sq.SelectBuilder {
	b := publishedArticles()

	if q.Text != "" {
		p := containsPattern(q.Text)
		b = b.Where(sq.Or{
			sq.Like{"title": p},
			sq.Like{"content": p},
			sq.Like{"summary": p},
		})
	}
	if q.CreatedSince != nil {
		b = b.Where(sq.GtOrEq{"created_at": *q.CreatedSince})
	}
	for _, term := range q.Terms {
		p := containsPattern(term)
		b = b.Where(sq.Or{
			sq.Like{"title": p},
			sq.Like{"content": p},
		})
	}

	b = b.OrderBy("created_at DESC")
	if q.Limit > 0 {
		b = b.Limit(q.Limit)
	}
	return b
}

// titleOrContentQuery собирает запрос для JSON API: совпадение в заголовке или тексте.
func titleOrContentQuery(text string, limit uint64) sq.SelectBuilder {
	p := containsPattern(text)
	return publishedArticles().
		Where(sq.Or{
			sq.Like{"title": p},
			sq.Like{"content": p},
		}).
		OrderBy("created_at DESC").
		Limit(limit)
}

// titleSuggestionsQuery собирает запрос заголовков для автодополнения без учета регистра.
func titleSuggestionsQuery(text string, limit uint64) sq.SelectBuilder {
	return psql.Select("title").
		From("articles").
		Where(sq.Eq{"is_published": true}).
		Where(sq.ILike{"title": containsPattern(text)}).
		OrderBy("created_at DESC").
		Limit(limit)
}
