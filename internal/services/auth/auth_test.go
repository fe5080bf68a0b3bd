package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/cirec-website/internal/lib/jwt"
	"github.com/magabrotheeeer/cirec-website/internal/lib/password"
	"github.com/magabrotheeeer/cirec-website/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/cirec-website/internal/models"
	"github.com/magabrotheeeer/cirec-website/internal/storage"
)

type UserStoreMock struct {
	mock.Mock
}

func (m *UserStoreMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserStoreMock) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserStoreMock) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *UserStoreMock) UsernameExists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *UserStoreMock) CreateUser(ctx context.Context, u models.User) (int64, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(int64), args.Error(1)
}

func (m *UserStoreMock) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *UserStoreMock) UpdatePassword(ctx context.Context, id int64, hash string) error {
	return m.Called(ctx, id, hash).Error(0)
}

func (m *UserStoreMock) SetAdmin(ctx context.Context, id int64, isAdmin bool) error {
	return m.Called(ctx, id, isAdmin).Error(0)
}

// memTokens простое хранилище токенов в памяти.
type memTokens struct {
	values map[string]any
	ttls   map[string]time.Duration
	err    error
}

func newMemTokens() *memTokens {
	return &memTokens{values: map[string]any{}, ttls: map[string]time.Duration{}}
}

func (m *memTokens) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	if m.err != nil {
		return m.err
	}
	m.values[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *memTokens) Exists(_ context.Context, key string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.values[key]
	return ok, nil
}

func (m *memTokens) Take(_ context.Context, key string, result any) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	v, ok := m.values[key]
	if !ok {
		return false, nil
	}
	delete(m.values, key)
	*(result.(*int64)) = v.(int64)
	return true, nil
}

type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) Publish(ctx context.Context, routingKey string, message any) error {
	return m.Called(ctx, routingKey, message).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var fixedNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	svc    *Service
	users  *UserStoreMock
	tokens *memTokens
	events *PublisherMock
	maker  *jwt.MakerImpl
}

func newFixture() *fixture {
	f := &fixture{
		users:  new(UserStoreMock),
		tokens: newMemTokens(),
		events: new(PublisherMock),
		maker:  jwt.NewJWTMaker("test-secret", time.Hour),
	}
	f.svc = New(newNoopLogger(), f.users, f.tokens, f.events, f.maker, nil, time.Hour)
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func mustHash(t *testing.T, pw string) string {
	t.Helper()
	h, err := password.Hash(pw)
	require.NoError(t, err)
	return h
}

func TestService_Login(t *testing.T) {
	hash := mustHash(t, "correctpassword")

	tests := []struct {
		name    string
		email   string
		pw      string
		setup   func(u *UserStoreMock)
		wantErr error
		anyErr  bool
	}{
		{
			name:  "success",
			email: "ivan@cirec.net",
			pw:    "correctpassword",
			setup: func(u *UserStoreMock) {
				u.On("GetUserByEmail", mock.Anything, "ivan@cirec.net").
					Return(&models.User{ID: 7, Username: "ivan", PasswordHash: hash}, nil).Once()
				u.On("UpdateLastLogin", mock.Anything, int64(7), fixedNow).Return(nil).Once()
			},
		},
		{
			name:  "unknown email",
			email: "nobody@cirec.net",
			pw:    "whatever",
			setup: func(u *UserStoreMock) {
				u.On("GetUserByEmail", mock.Anything, "nobody@cirec.net").
					Return(nil, storage.ErrUserNotFound).Once()
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:  "wrong password",
			email: "ivan@cirec.net",
			pw:    "wrong",
			setup: func(u *UserStoreMock) {
				u.On("GetUserByEmail", mock.Anything, "ivan@cirec.net").
					Return(&models.User{ID: 7, PasswordHash: hash}, nil).Once()
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:  "storage failure",
			email: "ivan@cirec.net",
			pw:    "correctpassword",
			setup: func(u *UserStoreMock) {
				u.On("GetUserByEmail", mock.Anything, "ivan@cirec.net").
					Return(nil, errors.New("db down")).Once()
			},
			anyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			tt.setup(f.users)

			sess, err := f.svc.Login(context.Background(), tt.email, tt.pw)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, sess)
			case tt.anyErr:
				assert.Error(t, err)
				assert.NotErrorIs(t, err, ErrInvalidCredentials)
			default:
				require.NoError(t, err)
				require.NotNil(t, sess.User.LastLogin)
				assert.Equal(t, fixedNow, *sess.User.LastLogin)

				claims, err := f.maker.ParseToken(sess.Token)
				require.NoError(t, err)
				id, err := claims.UserID()
				require.NoError(t, err)
				assert.Equal(t, int64(7), id)
				assert.NotEmpty(t, claims.ID)
			}
			f.users.AssertExpectations(t)
		})
	}
}

func validRequest() models.RegisterRequest {
	return models.RegisterRequest{
		Email:           "new@cirec.net",
		Username:        "newuser",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		Company:         "CIREC",
		MonthlyNews:     "on",
	}
}

func TestService_Register(t *testing.T) {
	tests := []struct {
		name    string
		req     func() models.RegisterRequest
		setup   func(u *UserStoreMock, p *PublisherMock)
		wantErr error
	}{
		{
			name: "success stores pending user and publishes event",
			req:  validRequest,
			setup: func(u *UserStoreMock, p *PublisherMock) {
				u.On("EmailExists", mock.Anything, "new@cirec.net").Return(false, nil).Once()
				u.On("UsernameExists", mock.Anything, "newuser").Return(false, nil).Once()
				u.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
					return u.Email == "new@cirec.net" &&
						u.Username == "newuser" &&
						u.PasswordHash != "" && u.PasswordHash != "secret1" &&
						u.SubscriptionStatus == models.SubscriptionPending &&
						u.MonthlyNews && !u.SearchAccess &&
						!u.IsAdmin
				})).Return(int64(11), nil).Once()
				p.On("Publish", mock.Anything, rabbitmq.EventAccountRegistered,
					RegisteredEvent{UserID: 11, Email: "new@cirec.net", Username: "newuser"}).Return(nil).Once()
			},
		},
		{
			name: "email taken is checked first",
			req: func() models.RegisterRequest {
				r := validRequest()
				r.ConfirmPassword = "different"
				return r
			},
			setup: func(u *UserStoreMock, _ *PublisherMock) {
				u.On("EmailExists", mock.Anything, "new@cirec.net").Return(true, nil).Once()
			},
			wantErr: ErrEmailTaken,
		},
		{
			name: "email taken before field rules",
			req: func() models.RegisterRequest {
				r := validRequest()
				r.Username = "nu"
				r.Password = "abc"
				r.ConfirmPassword = "abc"
				return r
			},
			setup: func(u *UserStoreMock, _ *PublisherMock) {
				u.On("EmailExists", mock.Anything, "new@cirec.net").Return(true, nil).Once()
			},
			wantErr: ErrEmailTaken,
		},
		{
			name: "field rules after duplicate checks",
			req: func() models.RegisterRequest {
				r := validRequest()
				r.Password = "abc"
				r.ConfirmPassword = "abc"
				return r
			},
			setup: func(u *UserStoreMock, _ *PublisherMock) {
				u.On("EmailExists", mock.Anything, "new@cirec.net").Return(false, nil).Once()
				u.On("UsernameExists", mock.Anything, "newuser").Return(false, nil).Once()
			},
			wantErr: ErrInvalidRegistration,
		},
		{
			name: "malformed email after duplicate checks",
			req: func() models.RegisterRequest {
				r := validRequest()
				r.Email = "not-an-email"
				return r
			},
			setup: func(u *UserStoreMock, _ *PublisherMock) {
				u.On("EmailExists", mock.Anything, "not-an-email").Return(false, nil).Once()
				u.On("UsernameExists", mock.Anything, "newuser").Return(false, nil).Once()
			},
			wantErr: ErrInvalidRegistration,
		},
		{
			name: "telephone longer than column",
			req: func() models.RegisterRequest {
				r := validRequest()
				r.Telephone = "+7 (495) 123-45-67 ext. 890"
				return r
			},
			setup: func(u *UserStoreMock, _ *PublisherMock) {
				u.On("EmailExists", mock.Anything, "new@cirec.net").Return(false, nil).Once()
				u.On("UsernameExists", mock.Anything, "newuser").Return(false, nil).Once()
			},
			wantErr: ErrInvalidRegistration,
		},
		{
			name: "value too long at insert",
			req:  validRequest,
			setup: func(u *UserStoreMock, _ *PublisherMock) {
				u.On("EmailExists", mock.Anything, "new@cirec.net").Return(false, nil).Once()
				u.On("UsernameExists", mock.Anything, "newuser").Return(false, nil).Once()
				u.On("CreateUser", mock.Anything, mock.Anything).Return(int64(0), storage.ErrValueTooLong).Once()
			},
			wantErr: ErrInvalidRegistration,
		},
		{
			name: "username taken before mismatch",
			req: func() models.RegisterRequest {
				r := validRequest()
				r.ConfirmPassword = "different"
				return r
			},
			setup: func(u *UserStoreMock, _ *PublisherMock) {
				u.On("EmailExists", mock.Anything, "new@cirec.net").Return(false, nil).Once()
				u.On("UsernameExists", mock.Anything, "newuser").Return(true, nil).Once()
			},
			wantErr: ErrUsernameTaken,
		},
		{
			name: "password mismatch",
			req: func() models.RegisterRequest {
				r := validRequest()
				r.ConfirmPassword = "different"
				return r
			},
			setup: func(u *UserStoreMock, _ *PublisherMock) {
				u.On("EmailExists", mock.Anything, "new@cirec.net").Return(false, nil).Once()
				u.On("UsernameExists", mock.Anything, "newuser").Return(false, nil).Once()
			},
			wantErr: ErrPasswordMismatch,
		},
		{
			name: "unique violation at insert maps to duplicate",
			req:  validRequest,
			setup: func(u *UserStoreMock, _ *PublisherMock) {
				u.On("EmailExists", mock.Anything, "new@cirec.net").Return(false, nil).Once()
				u.On("UsernameExists", mock.Anything, "newuser").Return(false, nil).Once()
				u.On("CreateUser", mock.Anything, mock.Anything).Return(int64(0), storage.ErrUsernameExists).Once()
			},
			wantErr: ErrUsernameTaken,
		},
		{
			name: "insert failure",
			req:  validRequest,
			setup: func(u *UserStoreMock, _ *PublisherMock) {
				u.On("EmailExists", mock.Anything, "new@cirec.net").Return(false, nil).Once()
				u.On("UsernameExists", mock.Anything, "newuser").Return(false, nil).Once()
				u.On("CreateUser", mock.Anything, mock.Anything).Return(int64(0), errors.New("disk full")).Once()
			},
			wantErr: ErrRegistrationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			tt.setup(f.users, f.events)

			user, err := f.svc.Register(context.Background(), tt.req())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(11), user.ID)
			}
			f.users.AssertExpectations(t)
			f.events.AssertExpectations(t)
		})
	}
}

func TestService_Register_FieldErrorsAreExposed(t *testing.T) {
	f := newFixture()
	f.users.On("EmailExists", mock.Anything, mock.Anything).Return(false, nil)
	f.users.On("UsernameExists", mock.Anything, mock.Anything).Return(false, nil)

	req := validRequest()
	req.Username = "nu"
	_, err := f.svc.Register(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidRegistration)

	var fieldErrs validator.ValidationErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "Username", fieldErrs[0].Field())
	assert.Equal(t, "min", fieldErrs[0].Tag())
	f.users.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestService_Register_PublishFailureIsNotFatal(t *testing.T) {
	f := newFixture()
	f.users.On("EmailExists", mock.Anything, mock.Anything).Return(false, nil)
	f.users.On("UsernameExists", mock.Anything, mock.Anything).Return(false, nil)
	f.users.On("CreateUser", mock.Anything, mock.Anything).Return(int64(3), nil)
	f.events.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down"))

	user, err := f.svc.Register(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(3), user.ID)
}

func TestService_AuthenticateAndLogout(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	token, _, err := f.maker.GenerateToken(5, "ivan")
	require.NoError(t, err)

	f.users.On("GetUserByID", mock.Anything, int64(5)).Return(&models.User{ID: 5, Username: "ivan"}, nil).Once()

	user, err := f.svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, int64(5), user.ID)

	require.NoError(t, f.svc.Logout(ctx, token))

	_, err = f.svc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidSession)
	f.users.AssertExpectations(t)
}

func TestService_Authenticate_Invalid(t *testing.T) {
	t.Run("garbage token", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Authenticate(context.Background(), "garbage")
		assert.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("deleted user", func(t *testing.T) {
		f := newFixture()
		token, _, err := f.maker.GenerateToken(9, "ghost")
		require.NoError(t, err)
		f.users.On("GetUserByID", mock.Anything, int64(9)).Return(nil, storage.ErrUserNotFound).Once()

		_, err = f.svc.Authenticate(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("token store failure is not an invalid session", func(t *testing.T) {
		f := newFixture()
		f.tokens.err = errors.New("redis down")
		token, _, err := f.maker.GenerateToken(9, "ivan")
		require.NoError(t, err)

		_, err = f.svc.Authenticate(context.Background(), token)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidSession)
	})
}

func TestService_Logout_InvalidTokenIsNoop(t *testing.T) {
	f := newFixture()
	assert.NoError(t, f.svc.Logout(context.Background(), "not-a-token"))
	assert.Empty(t, f.tokens.values)
}

func TestService_ForgotAndResetPassword(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.users.On("GetUserByEmail", mock.Anything, "ivan@cirec.net").
		Return(&models.User{ID: 4, Email: "ivan@cirec.net"}, nil).Once()

	var published ResetRequestedEvent
	f.events.On("Publish", mock.Anything, rabbitmq.EventPasswordResetRequested, mock.Anything).
		Run(func(args mock.Arguments) { published = args.Get(2).(ResetRequestedEvent) }).
		Return(nil).Once()

	require.NoError(t, f.svc.ForgotPassword(ctx, "ivan@cirec.net"))
	require.NotEmpty(t, published.Token)
	assert.Equal(t, int64(4), published.UserID)
	assert.Equal(t, fixedNow.Add(time.Hour), published.ExpiresAt)
	assert.Equal(t, time.Hour, f.tokens.ttls[resetPrefix+published.Token])

	assert.ErrorIs(t, f.svc.ResetPassword(ctx, published.Token, "newpass", "other"), ErrPasswordMismatch)

	f.users.On("UpdatePassword", mock.Anything, int64(4), mock.MatchedBy(func(h string) bool {
		return password.Compare(h, "newpass") == nil
	})).Return(nil).Once()
	require.NoError(t, f.svc.ResetPassword(ctx, published.Token, "newpass", "newpass"))

	assert.ErrorIs(t, f.svc.ResetPassword(ctx, published.Token, "newpass", "newpass"), ErrInvalidResetToken)
	f.users.AssertExpectations(t)
	f.events.AssertExpectations(t)
}

func TestService_ForgotPassword_UnknownEmail(t *testing.T) {
	f := newFixture()
	f.users.On("GetUserByEmail", mock.Anything, "nobody@cirec.net").Return(nil, storage.ErrUserNotFound).Once()

	assert.NoError(t, f.svc.ForgotPassword(context.Background(), "nobody@cirec.net"))
	assert.Empty(t, f.tokens.values)
	f.events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_EnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled without credentials", func(t *testing.T) {
		f := newFixture()
		assert.NoError(t, f.svc.EnsureAdmin(ctx, "", "admin", ""))
		f.users.AssertNotCalled(t, "GetUserByEmail", mock.Anything, mock.Anything)
	})

	t.Run("creates missing admin", func(t *testing.T) {
		f := newFixture()
		f.users.On("GetUserByEmail", mock.Anything, "admin@cirec.net").Return(nil, storage.ErrUserNotFound).Once()
		f.users.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
			return u.IsAdmin && u.Username == "admin" && u.Email == "admin@cirec.net"
		})).Return(int64(1), nil).Once()

		require.NoError(t, f.svc.EnsureAdmin(ctx, "admin@cirec.net", "admin", "admin123"))
		f.users.AssertExpectations(t)
	})

	t.Run("promotes existing user", func(t *testing.T) {
		f := newFixture()
		f.users.On("GetUserByEmail", mock.Anything, "admin@cirec.net").
			Return(&models.User{ID: 2, IsAdmin: false}, nil).Once()
		f.users.On("SetAdmin", mock.Anything, int64(2), true).Return(nil).Once()

		require.NoError(t, f.svc.EnsureAdmin(ctx, "admin@cirec.net", "admin", "admin123"))
		f.users.AssertExpectations(t)
	})

	t.Run("existing admin untouched", func(t *testing.T) {
		f := newFixture()
		f.users.On("GetUserByEmail", mock.Anything, "admin@cirec.net").
			Return(&models.User{ID: 2, IsAdmin: true}, nil).Once()

		require.NoError(t, f.svc.EnsureAdmin(ctx, "admin@cirec.net", "admin", "admin123"))
		f.users.AssertNotCalled(t, "SetAdmin", mock.Anything, mock.Anything, mock.Anything)
	})
}
