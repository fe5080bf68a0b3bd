// Package flash хранит одноразовые сообщения для пользователя в cookie
// до следующего ответа, который их покажет.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

// CookieName имя cookie с сообщениями.
const CookieName = "flash"

// Категории сообщений.
const (
	Info    = "info"
	Success = "success"
	Error   = "error"
)

// Message сообщение для пользователя.
type Message struct {
	Category string `json:"category"`
	Text     string `json:"message"`
}

// Add добавляет сообщение к ожидающим показа, пришедшим в cookie запроса.
func Add(w http.ResponseWriter, r *http.Request, category, text string) {
	msgs := append(read(r), Message{Category: category, Text: text})
	data, err := json.Marshal(msgs)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    base64.RawURLEncoding.EncodeToString(data),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop возвращает ожидающие сообщения и удаляет cookie.
func Pop(w http.ResponseWriter, r *http.Request) []Message {
	msgs := read(r)
	if len(msgs) == 0 {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return msgs
}

func read(r *http.Request) []Message {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return nil
	}
	data, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	var msgs []Message
	if err := json.Unmarshal(data, &msgs); err != nil {
		return nil
	}
	return msgs
}
