// Package auth реализует вход, регистрацию, сессии и сброс пароля пользователей сайта.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/cirec-website/internal/lib/jwt"
	"github.com/magabrotheeeer/cirec-website/internal/lib/metrics"
	"github.com/magabrotheeeer/cirec-website/internal/lib/password"
	"github.com/magabrotheeeer/cirec-website/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/cirec-website/internal/lib/sl"
	"github.com/magabrotheeeer/cirec-website/internal/models"
	"github.com/magabrotheeeer/cirec-website/internal/storage"
)

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrEmailTaken          = errors.New("email already registered")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrPasswordMismatch    = errors.New("passwords do not match")
	ErrRegistrationFailed  = errors.New("registration failed")
	ErrInvalidRegistration = errors.New("invalid registration data")
	ErrInvalidSession      = errors.New("invalid session")
	ErrInvalidResetToken   = errors.New("invalid or expired reset token")
)

const (
	revokedPrefix = "session_revoked:"
	resetPrefix   = "password_reset:"
)

// UserStore хранилище пользователей.
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	CreateUser(ctx context.Context, u models.User) (int64, error)
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	SetAdmin(ctx context.Context, id int64, isAdmin bool) error
}

// TokenStore хранилище одноразовых токенов и отозванных сессий.
type TokenStore interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
	Take(ctx context.Context, key string, result any) (bool, error)
}

// Publisher публикует события аккаунтов.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// registrationRules ограничения полей регистрации, длины совпадают со схемой users.
type registrationRules struct {
	Email       string `validate:"email,max=120"`
	Username    string `validate:"min=3,max=80"`
	Password    string `validate:"min=6"`
	FirstName   string `validate:"max=50"`
	LastName    string `validate:"max=50"`
	Company     string `validate:"max=100"`
	Telephone   string `validate:"max=20"`
	AccountType string `validate:"max=20"`
}

// Session выданная при входе сессия.
type Session struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

// RegisteredEvent публикуется после успешной регистрации.
type RegisteredEvent struct {
	UserID   int64  `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// ResetRequestedEvent публикуется при запросе сброса пароля.
type ResetRequestedEvent struct {
	UserID    int64     `json:"user_id"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Service отвечает за аутентификацию пользователей.
type Service struct {
	log      *slog.Logger
	users    UserStore
	tokens   TokenStore
	events   Publisher
	jwtMaker jwt.Maker
	metrics  *metrics.Metrics
	resetTTL time.Duration
	validate *validator.Validate
	now      func() time.Time
}

// New создает сервис аутентификации. metrics может быть nil.
func New(log *slog.Logger, users UserStore, tokens TokenStore, events Publisher, jwtMaker jwt.Maker,
	m *metrics.Metrics, resetTTL time.Duration) *Service {
	return &Service{
		log:      log,
		users:    users,
		tokens:   tokens,
		events:   events,
		jwtMaker: jwtMaker,
		metrics:  m,
		resetTTL: resetTTL,
		validate: validator.New(),
		now:      time.Now,
	}
}

// Login проверяет email и пароль, обновляет last_login и выдает токен сессии.
// Неизвестный email и неверный пароль неразличимы для вызывающего.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (*Session, error) {
	const op = "auth.Login"

	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, storage.ErrUserNotFound) {
		s.metrics.LoginResult(false)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := password.Compare(user.PasswordHash, rawPassword); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			s.metrics.LoginResult(false)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user.LastLogin = &now

	token, claims, err := s.jwtMaker.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.metrics.LoginResult(true)

	return &Session{User: user, Token: token, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// Register создает пользователя со статусом подписки pending.
// Проверки выполняются по порядку: email, username, совпадение паролей,
// затем формат и длины полей. Ошибка формата оборачивает validator.ValidationErrors.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	const op = "auth.Register"
	log := s.log.With(slog.String("op", op))

	taken, err := s.users.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if taken {
		s.metrics.RegistrationResult(false)
		return nil, ErrEmailTaken
	}

	taken, err = s.users.UsernameExists(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if taken {
		s.metrics.RegistrationResult(false)
		return nil, ErrUsernameTaken
	}

	if req.Password != req.ConfirmPassword {
		s.metrics.RegistrationResult(false)
		return nil, ErrPasswordMismatch
	}

	if err := s.validate.Struct(registrationRules{
		Email:       req.Email,
		Username:    req.Username,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Company:     req.Company,
		Telephone:   req.Telephone,
		AccountType: req.AccountType,
	}); err != nil {
		s.metrics.RegistrationResult(false)
		return nil, fmt.Errorf("%w: %w", ErrInvalidRegistration, err)
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		Email:              req.Email,
		Username:           req.Username,
		PasswordHash:       hash,
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Company:            req.Company,
		Telephone:          req.Telephone,
		AccountType:        req.AccountType,
		MonthlyNews:        models.Checked(req.MonthlyNews),
		SearchAccess:       models.Checked(req.SearchAccess),
		DatabaseAccess:     models.Checked(req.DatabaseAccess),
		SubscriptionStatus: models.SubscriptionPending,
		CreatedAt:          s.now().UTC(),
	}

	id, err := s.users.CreateUser(ctx, user)
	switch {
	case errors.Is(err, storage.ErrEmailExists):
		s.metrics.RegistrationResult(false)
		return nil, ErrEmailTaken
	case errors.Is(err, storage.ErrUsernameExists):
		s.metrics.RegistrationResult(false)
		return nil, ErrUsernameTaken
	case errors.Is(err, storage.ErrValueTooLong):
		s.metrics.RegistrationResult(false)
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidRegistration)
	case err != nil:
		log.Error("failed to create user", sl.Err(err))
		s.metrics.RegistrationResult(false)
		return nil, fmt.Errorf("%s: %w", op, ErrRegistrationFailed)
	}
	user.ID = id
	s.metrics.RegistrationResult(true)
	log.Info("user registered", slog.Int64("user_id", id))

	event := RegisteredEvent{UserID: id, Email: user.Email, Username: user.Username}
	if err := s.events.Publish(ctx, rabbitmq.EventAccountRegistered, event); err != nil {
		log.Warn("failed to publish registration event", sl.Err(err))
	}
	return &user, nil
}

// Authenticate проверяет токен сессии и загружает пользователя.
func (s *Service) Authenticate(ctx context.Context, token string) (*models.User, error) {
	const op = "auth.Authenticate"

	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidSession)
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidSession)
	}

	revoked, err := s.tokens.Exists(ctx, revokedPrefix+claims.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if revoked {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidSession)
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if errors.Is(err, storage.ErrUserNotFound) {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidSession)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// Logout отзывает сессию до истечения срока действия токена.
// Невалидный токен отзывать не нужно.
func (s *Service) Logout(ctx context.Context, token string) error {
	const op = "auth.Logout"

	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil
	}
	ttl := claims.Remaining(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.tokens.Set(ctx, revokedPrefix+claims.ID, true, ttl); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ForgotPassword создает токен сброса пароля, если аккаунт существует.
// Для неизвестного email ничего не происходит, ошибка не возвращается.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	const op = "auth.ForgotPassword"
	log := s.log.With(slog.String("op", op))

	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, storage.ErrUserNotFound) {
		log.Info("password reset requested for unknown email")
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	token := uuid.NewString()
	if err := s.tokens.Set(ctx, resetPrefix+token, user.ID, s.resetTTL); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	event := ResetRequestedEvent{
		UserID:    user.ID,
		Email:     user.Email,
		Token:     token,
		ExpiresAt: s.now().UTC().Add(s.resetTTL),
	}
	if err := s.events.Publish(ctx, rabbitmq.EventPasswordResetRequested, event); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	log.Info("password reset requested", slog.Int64("user_id", user.ID))
	return nil
}

// ResetPassword меняет пароль по одноразовому токену.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword, confirm string) error {
	const op = "auth.ResetPassword"

	if newPassword != confirm {
		return ErrPasswordMismatch
	}

	var userID int64
	found, err := s.tokens.Take(ctx, resetPrefix+token, &userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return ErrInvalidResetToken
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	err = s.users.UpdatePassword(ctx, userID, hash)
	if errors.Is(err, storage.ErrUserNotFound) {
		return ErrInvalidResetToken
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("password reset", slog.String("op", op), slog.Int64("user_id", userID))
	return nil
}

// EnsureAdmin создает администратора с заданными учетными данными или выдает права
// существующему пользователю. Пустой email или пароль отключают создание.
func (s *Service) EnsureAdmin(ctx context.Context, email, username, rawPassword string) error {
	const op = "auth.EnsureAdmin"
	if email == "" || rawPassword == "" {
		return nil
	}
	log := s.log.With(slog.String("op", op), slog.String("email", email))

	user, err := s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		if user.IsAdmin {
			return nil
		}
		if err := s.users.SetAdmin(ctx, user.ID, true); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		log.Info("admin rights granted", slog.Int64("user_id", user.ID))
		return nil
	case !errors.Is(err, storage.ErrUserNotFound):
		return fmt.Errorf("%s: %w", op, err)
	}

	hash, err := password.Hash(rawPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	id, err := s.users.CreateUser(ctx, models.User{
		Email:              email,
		Username:           username,
		PasswordHash:       hash,
		IsAdmin:            true,
		SubscriptionStatus: models.SubscriptionPending,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	log.Info("admin created", slog.Int64("user_id", id))
	return nil
}
