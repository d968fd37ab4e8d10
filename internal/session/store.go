package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/multierr"

	"github.com/bookhaven/bookhaven-client/internal/api"
	pkgerrors "github.com/bookhaven/bookhaven-client/pkg/errors"
	"github.com/bookhaven/bookhaven-client/pkg/logger"
	"github.com/bookhaven/bookhaven-client/pkg/notify"
	"github.com/bookhaven/bookhaven-client/pkg/types"
	"github.com/bookhaven/bookhaven-client/pkg/validate"
)

// AuthAPI is the slice of the backend client the session store needs.
type AuthAPI interface {
	Login(ctx context.Context, creds api.LoginCredentials) (api.AuthResult, error)
	Register(ctx context.Context, upload api.RegisterUpload) (api.AuthResult, error)
}

// RegisterInput is validated before the registration call goes out.
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=buyer seller"`
	Avatar   *api.FileField
}

// StoreParams groups dependencies for the session store.
type StoreParams struct {
	API         AuthAPI
	Credentials CredentialStore
	Navigator   Navigator
	Notifier    notify.Notifier
	Logger      *logger.Logger
	LoginURL    string
}

// Store is the single source of truth for who is logged in. It is the only
// writer of the persisted credentials; everything else reads the user
// through it.
type Store struct {
	api      AuthAPI
	creds    CredentialStore
	nav      Navigator
	notifier notify.Notifier
	logg     *logger.Logger
	loginURL string

	mu          sync.RWMutex
	user        *types.User
	subscribers []func(user *types.User)
}

// NewStore builds a session store with the required dependencies.
func NewStore(params StoreParams) (*Store, error) {
	if params.API == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "auth api is required")
	}
	if params.Credentials == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "credential store is required")
	}
	notifier := params.Notifier
	if notifier == nil {
		notifier = notify.Noop{}
	}
	loginURL := params.LoginURL
	if loginURL == "" {
		loginURL = "/login"
	}
	return &Store{
		api:      params.API,
		creds:    params.Credentials,
		nav:      params.Navigator,
		notifier: notifier,
		logg:     params.Logger,
		loginURL: loginURL,
	}, nil
}

// CurrentUser returns a copy of the logged-in user, or nil when absent.
func (s *Store) CurrentUser() *types.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	copied := *s.user
	return &copied
}

// Subscribe registers a callback for user presence transitions. The cart
// store listens here to drop its items the moment the user goes away.
func (s *Store) Subscribe(fn func(user *types.User)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// CheckAuth restores the user from the persisted session. Corrupted or
// expired credentials are cleared and reported as absent; this never
// returns an error the caller has to handle.
func (s *Store) CheckAuth(ctx context.Context) {
	creds, err := s.creds.Read()
	if err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, "persisted session unreadable, clearing")
		}
		s.discardSession(ctx)
		return
	}
	if creds == nil {
		s.setUser(nil)
		return
	}
	if creds.Expired(time.Now()) || tokenExpired(creds.Token, time.Now()) {
		s.discardSession(ctx)
		return
	}

	var user types.User
	if err := json.Unmarshal([]byte(creds.UserData), &user); err != nil || user.ID == "" {
		if s.logg != nil {
			s.logg.Warn(ctx, "persisted user snapshot corrupted, clearing")
		}
		s.discardSession(ctx)
		return
	}
	s.setUser(&user)
}

// Login exchanges credentials for a session. It reports success without
// ever raising; the caller decides the UI messaging on failure.
func (s *Store) Login(ctx context.Context, username, password string) bool {
	creds := api.LoginCredentials{Username: username, Password: password}
	if err := validate.Struct(struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}{username, password}); err != nil {
		return false
	}

	result, err := s.api.Login(ctx, creds)
	if err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, "login rejected")
		}
		return false
	}
	if err := s.persist(result); err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "persist session", err)
		}
		return false
	}
	s.setUser(&result.User)
	return true
}

// Register creates an account and opens a session. On failure it returns
// ok=false plus a human-readable message for the form.
func (s *Store) Register(ctx context.Context, input RegisterInput) (bool, string) {
	if err := validate.Struct(input); err != nil {
		return false, pkgerrors.As(err).Message()
	}

	result, err := s.api.Register(ctx, api.RegisterUpload{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
		Role:     input.Role,
		Avatar:   input.Avatar,
	})
	if err != nil {
		s.notifier.Error(ctx, "Registration failed")
		if typed := pkgerrors.As(err); typed != nil {
			return false, typed.Message()
		}
		return false, "an unexpected error occurred"
	}
	if err := s.persist(result); err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "persist session", err)
		}
		return false, "could not store the new session"
	}
	s.setUser(&result.User)
	s.notifier.Success(ctx, "New user created")
	return true, ""
}

// Logout navigates to the login surface and clears the session. Both
// steps always run; the credentials are unreadable afterwards no matter
// what the navigation did.
func (s *Store) Logout(ctx context.Context) error {
	var err error
	if s.nav != nil {
		err = multierr.Append(err, s.nav.Navigate(ctx, s.loginURL))
	}
	err = multierr.Append(err, s.creds.Clear())
	s.setUser(nil)
	return err
}

// Token implements the API client's TokenSource. It re-reads the
// persisted session on every call instead of caching an authenticated
// flag, since the store file is the shared, externally-visible resource.
func (s *Store) Token(ctx context.Context) (string, bool) {
	creds, err := s.creds.Read()
	if err != nil || creds == nil || creds.Token == "" {
		return "", false
	}
	if creds.Expired(time.Now()) {
		return "", false
	}
	return creds.Token, true
}

// HandleSessionExpired is wired into the API client as the global 401/403
// handler: clear everything and move to the login surface.
func (s *Store) HandleSessionExpired(ctx context.Context) {
	s.discardSession(ctx)
	if s.nav != nil {
		if err := s.nav.Navigate(ctx, s.loginURL); err != nil && s.logg != nil {
			s.logg.Error(ctx, "navigate to login", err)
		}
	}
}

func (s *Store) persist(result api.AuthResult) error {
	snapshot, err := json.Marshal(result.User)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode user snapshot")
	}
	return s.creds.Write(Credentials{
		Token:    result.Token,
		UserData: string(snapshot),
	})
}

func (s *Store) discardSession(ctx context.Context) {
	if err := s.creds.Clear(); err != nil && s.logg != nil {
		s.logg.Error(ctx, "clear persisted session", err)
	}
	s.setUser(nil)
}

func (s *Store) setUser(user *types.User) {
	s.mu.Lock()
	prevPresent := s.user != nil
	s.user = user
	subscribers := make([]func(*types.User), len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.Unlock()

	if prevPresent == (user != nil) {
		return
	}
	for _, fn := range subscribers {
		fn(user)
	}
}

// tokenExpired inspects the exp claim without verifying the signature;
// the signing secret belongs to the backend. A token we cannot parse at
// all is treated as expired.
func tokenExpired(token string, now time.Time) bool {
	if token == "" {
		return true
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return true
	}
	if exp == nil {
		return false
	}
	return exp.Before(now)
}
