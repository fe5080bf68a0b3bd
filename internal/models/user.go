// Package models содержит доменные структуры пользователей и статей,
// а также вспомогательные типы для фильтрации и входных данных запросов.
package models

import "time"

// Статусы подписки, которые хранятся в базе.
// Статус expired никогда не записывается, он вычисляется по SubscriptionEnd.
const (
	SubscriptionPending = "pending"
	SubscriptionActive  = "active"
	SubscriptionExpired = "expired"
)

// User представляет зарегистрированного пользователя сайта.
type User struct {
	ID                 int64      `json:"id"`
	Email              string     `json:"email"`
	Username           string     `json:"username"`
	PasswordHash       string     `json:"-"`
	FirstName          string     `json:"first_name"`
	LastName           string     `json:"last_name"`
	Company            string     `json:"company"`
	Telephone          string     `json:"telephone"`
	AccountType        string     `json:"account_type"`
	MonthlyNews        bool       `json:"monthly_news"`
	SearchAccess       bool       `json:"search_access"`
	DatabaseAccess     bool       `json:"database_access"`
	IsAdmin            bool       `json:"is_admin"`
	SubscriptionStatus string     `json:"subscription_status"`
	SubscriptionStart  *time.Time `json:"subscription_start,omitempty"`
	SubscriptionEnd    *time.Time `json:"subscription_end,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	LastLogin          *time.Time `json:"last_login,omitempty"`
}

// RegisterRequest данные формы регистрации.
// Поля подписки приходят из той же формы, что и контактные данные.
// Здесь проверяется только наличие полей, формат и длины проверяет сервис
// после поиска дубликатов.
type RegisterRequest struct {
	FirstName       string `json:"first_name" form:"first_name"`
	LastName        string `json:"last_name" form:"last_name"`
	Email           string `json:"email" form:"email" validate:"required"`
	Company         string `json:"company" form:"company"`
	Telephone       string `json:"telephone" form:"telephone"`
	AccountType     string `json:"account_type" form:"account_type"`
	MonthlyNews     string `json:"monthly_news" form:"monthly_news"`
	SearchAccess    string `json:"search_access" form:"search_access"`
	DatabaseAccess  string `json:"database_access" form:"database_access"`
	Username        string `json:"username" form:"username" validate:"required"`
	Password        string `json:"password" form:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

// Checked интерпретирует значение чекбокса формы.
func Checked(v string) bool {
	switch v {
	case "", "0", "false", "off", "no":
		return false
	}
	return true
}
