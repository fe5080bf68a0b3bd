package models

import "time"

// Article статья, импортированная из загруженного документа.
// Content, Summary и Author могут отсутствовать.
type Article struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Content     *string   `json:"content,omitempty"`
	Summary     *string   `json:"summary,omitempty"`
	Author      *string   `json:"author,omitempty"`
	SourceFile  *string   `json:"source_file,omitempty"`
	FilePath    *string   `json:"file_path,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	IsPublished bool      `json:"is_published"`
	ViewCount   int64     `json:"view_count"`
}

// Preview урезанное представление статьи, доступное без авторизации.
type Preview struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Author    *string   `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	Summary   *string   `json:"summary"`
	Content   *string   `json:"content"`
	IsPreview bool      `json:"is_preview"`
}

// APIResult элемент ответа /api/search.
type APIResult struct {
	ID      int64   `json:"id"`
	Title   string  `json:"title"`
	Summary string  `json:"summary"`
	Author  *string `json:"author"`
}

// NewArticle данные для создания статьи при загрузке документа.
type NewArticle struct {
	Title       string
	Content     *string
	Summary     *string
	Author      *string
	SourceFile  *string
	FilePath    *string
	IsPublished bool
}
