// Package app composes the API client, session store and navigator into the
// single application state shared by every command.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/d9705996/hubclient/internal/apiclient"
	"github.com/d9705996/hubclient/internal/config"
	"github.com/d9705996/hubclient/internal/route"
	"github.com/d9705996/hubclient/internal/session"
)

// App is the application state. It is built once per process and passed by
// reference to whatever needs it.
type App struct {
	Config  *config.Config
	Log     *slog.Logger
	API     *apiclient.Client
	Session *session.Store
	Nav     *route.Navigator

	storage session.Storage
	closers []func() error
}

// Option customises New.
type Option func(*options)

type options struct {
	storage    session.Storage
	httpClient *http.Client
	location   string
}

// WithStorage overrides the session storage selected by the config.
func WithStorage(st session.Storage) Option {
	return func(o *options) { o.storage = st }
}

// WithHTTPClient overrides the HTTP client used for API calls.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithLocation sets the initial navigator location (default "/").
func WithLocation(loc string) Option {
	return func(o *options) { o.location = loc }
}

// New opens the session storage, seeds the session and builds the client.
func New(cfg *config.Config, log *slog.Logger, opts ...Option) (*App, error) {
	if log == nil {
		log = slog.Default()
	}
	o := &options{location: "/"}
	for _, opt := range opts {
		opt(o)
	}

	a := &App{Config: cfg, Log: log}

	st := o.storage
	if st == nil {
		var err error
		st, err = a.openStorage(cfg.Session)
		if err != nil {
			return nil, err
		}
	}
	a.storage = st

	store, err := session.Open(st, log)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("open session: %w", err)
	}
	a.Session = store

	clientOpts := []apiclient.Option{apiclient.WithLogger(log)}
	if o.httpClient != nil {
		clientOpts = append(clientOpts, apiclient.WithHTTPClient(o.httpClient))
	}
	a.API = apiclient.New(cfg.API.BaseURL, clientOpts...)
	a.Nav = route.NewNavigator(o.location, log)
	return a, nil
}

func (a *App) openStorage(cfg config.SessionConfig) (session.Storage, error) {
	switch cfg.Driver {
	case "sqlite":
		st, err := session.OpenSQLStorage(cfg.DBFile)
		if err != nil {
			return nil, fmt.Errorf("open session db: %w", err)
		}
		a.closers = append(a.closers, st.Close)
		a.Log.Debug("session storage", "driver", "sqlite", "file", cfg.DBFile)
		return st, nil
	case "memory":
		return session.NewMemoryStorage(), nil
	default:
		a.Log.Debug("session storage", "driver", "file", "file", cfg.File)
		return session.NewFileStorage(cfg.File), nil
	}
}

// Close releases storage handles.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// Token returns the stored bearer token, possibly "". Commands pass it
// through unchanged; the server decides whether it is acceptable.
func (a *App) Token() string { return a.Session.Token() }

// SignIn authenticates and stores the returned token together with the user
// object when the response includes one.
func (a *App) SignIn(ctx context.Context, email, password string) (apiclient.Envelope, error) {
	env, err := a.API.Tokens.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	token := env.String("authentication_token", "token")
	if token == "" {
		return env, errors.New("authentication response carried no token")
	}
	var user any
	if u, ok := env["user"]; ok {
		user = u
	}
	if err := a.Session.SignIn(token, user); err != nil {
		return env, fmt.Errorf("persist session: %w", err)
	}
	a.Log.Info("signed in", "email", email)
	return env, nil
}

// SignOut clears the local session. The server is not contacted.
func (a *App) SignOut() error {
	if err := a.Session.SignOut(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Checks returns the dependencies worth probing for readiness: the API and,
// when it has a connection, the session storage.
func (a *App) Checks() map[string]session.Pinger {
	checks := map[string]session.Pinger{"api": a.API}
	if p, ok := a.storage.(session.Pinger); ok {
		checks["session_storage"] = p
	}
	return checks
}
