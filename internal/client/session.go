package client

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Navigator receives redirect requests from the session. In a browser this
// would be the router; the CLI prints a hint instead.
type Navigator interface {
	ToLogin()
	ToDashboard()
}

// NavigatorFuncs adapts two funcs to the Navigator interface.
type NavigatorFuncs struct {
	Login     func()
	Dashboard func()
}

func (n NavigatorFuncs) ToLogin() {
	if n.Login != nil {
		n.Login()
	}
}

func (n NavigatorFuncs) ToDashboard() {
	if n.Dashboard != nil {
		n.Dashboard()
	}
}

// Session owns the device-local authentication state. It cycles between
// Anonymous and Authenticated for the life of the process:
//
//	Bootstrapping --token cached--> Authenticated
//	Bootstrapping --no token-----> Anonymous (redirect to login)
//	Anonymous     --Login ok-----> Authenticated (redirect to dashboard)
//	Authenticated --Logout-------> Anonymous (redirect to login)
//
// The session is an explicit object: construct it once and hand it to
// whatever needs it. There is no package-level instance.
type Session struct {
	api       *Client
	cache     TokenCache
	nav       Navigator
	logger    *slog.Logger
	retention time.Duration

	mu      sync.Mutex
	token   string
	loading bool
}

// SessionOption customizes a Session.
type SessionOption func(*Session)

// WithRetention overrides how long the token cache keeps a copy.
func WithRetention(d time.Duration) SessionOption {
	return func(s *Session) {
		if d > 0 {
			s.retention = d
		}
	}
}

// NewSession wires the session to its collaborators. The session starts in
// the Bootstrapping state: Loading reports true until Bootstrap runs.
func NewSession(api *Client, cache TokenCache, nav Navigator, logger *slog.Logger, opts ...SessionOption) *Session {
	s := &Session{
		api:       api,
		cache:     cache,
		nav:       nav,
		logger:    logger,
		retention: DefaultRetention,
		loading:   true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// API exposes the underlying client for calls that need the raw token,
// such as profile and product fetches.
func (s *Session) API() *Client {
	return s.api
}

// Loading reports whether a bootstrap or auth call is in flight. Callers
// must not render protected content while it is true.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Token returns the current bearer token and whether one is held. Empty
// means Anonymous; callers must redirect rather than render protected views.
func (s *Session) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != ""
}

// Bootstrap resolves the initial state from the persisted cache. With a
// cached token the session becomes Authenticated; without one it becomes
// Anonymous and redirects to the login screen.
func (s *Session) Bootstrap() {
	value, ok, err := s.cache.Load()
	if err != nil {
		// Treat an unreadable cache like an absent token, but leave a trace.
		s.logger.Warn("token cache unreadable", slog.String("op", "session.bootstrap"), slog.Any("error", err))
		ok = false
	}

	s.mu.Lock()
	s.loading = false
	if ok {
		s.token = value
	}
	s.mu.Unlock()

	if !ok {
		s.nav.ToLogin()
	}
}

// Login authenticates against the server. On success the token is
// persisted and the session redirects to the dashboard. On declined
// credentials or network failure the session stays Anonymous and the error
// is returned for display.
func (s *Session) Login(ctx context.Context, email, password string) error {
	s.setLoading(true)
	defer s.setLoading(false)

	value, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.logger.Info("login declined", slog.String("op", "session.login"), slog.Any("error", err))
		return err
	}

	if err := s.cache.Save(value, s.retention); err != nil {
		// The session still works for this process; it just won't survive
		// a restart.
		s.logger.Warn("token persist failed", slog.String("op", "session.login"), slog.Any("error", err))
	}

	s.mu.Lock()
	s.token = value
	s.mu.Unlock()

	s.nav.ToDashboard()
	return nil
}

// Register creates an account. By design it does not log the user in.
func (s *Session) Register(ctx context.Context, name, email, password, passwordConfirmation string) error {
	s.setLoading(true)
	defer s.setLoading(false)
	return s.api.Register(ctx, name, email, password, passwordConfirmation)
}

// Logout signs the user out. Server-side revocation is best-effort: a
// failed call is logged and ignored, because local sign-out must always
// succeed. Local state and the persisted token are cleared unconditionally
// and the session redirects to login.
func (s *Session) Logout(ctx context.Context) {
	s.mu.Lock()
	value := s.token
	s.token = ""
	s.mu.Unlock()

	if value != "" {
		if err := s.api.Logout(ctx, value); err != nil {
			s.logger.Warn("server-side logout failed", slog.String("op", "session.logout"), slog.Any("error", err))
		}
	}

	if err := s.cache.Clear(); err != nil {
		s.logger.Warn("token cache clear failed", slog.String("op", "session.logout"), slog.Any("error", err))
	}

	s.nav.ToLogin()
}

func (s *Session) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}
