package models

import "time"

// SearchFilter параметры поиска по статьям, как они приходят из строки запроса.
type SearchFilter struct {
	Query     string // Подстрока для title/content/summary
	DateRange string // 1_month, 3_months, 6_months, 1_year или пусто
	Company   string // Подстрока для title/content
	Product   string // Подстрока для title/content
}

// ArticleQuery фильтр, который передаётся в слой доступа к данным.
// CreatedSince равен nil, если ограничения по дате нет.
type ArticleQuery struct {
	Text         string
	CreatedSince *time.Time
	Terms        []string
	Limit        uint64
}
