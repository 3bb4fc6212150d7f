// Package session holds the signed-in state of the client: a bearer token
// and the user it belongs to. Both values are seeded from persistent storage
// when the Store is opened and written back on every change.
//
// Nothing here validates the token. It is trusted until an API call using it
// fails.
package session

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/d9705996/hubclient/internal/observe"
)

// Store is the session state shared by the application.
// Observers run after each cell releases its lock, so they may write back
// into the Store.
type Store struct {
	storage Storage
	token   *observe.Cell[string]
	user    *observe.Cell[json.RawMessage]
	log     *slog.Logger
}

// Open reads the persisted token and user from storage and subscribes the
// mirroring observers. Absent keys yield an empty session.
func Open(storage Storage, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}

	token, _, err := storage.Get(TokenKey)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", TokenKey, err)
	}
	rawUser, ok, err := storage.Get(UserKey)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", UserKey, err)
	}
	var user json.RawMessage
	if ok {
		if !json.Valid([]byte(rawUser)) {
			return nil, fmt.Errorf("read %s: stored value is not valid JSON", UserKey)
		}
		user = json.RawMessage(rawUser)
	}

	s := &Store{
		storage: storage,
		token:   observe.NewCell(token),
		user:    observe.NewCell(user),
		log:     log,
	}
	if _, err := s.token.Subscribe(s.mirrorToken); err != nil {
		return nil, err
	}
	if _, err := s.user.Subscribe(s.mirrorUser); err != nil {
		return nil, err
	}
	log.Debug("session loaded", "authenticated", token != "")
	return s, nil
}

func (s *Store) mirrorToken(v string) error {
	if v == "" {
		return s.storage.Remove(TokenKey)
	}
	return s.storage.Set(TokenKey, v)
}

func (s *Store) mirrorUser(v json.RawMessage) error {
	if isNull(v) {
		return s.storage.Remove(UserKey)
	}
	return s.storage.Set(UserKey, string(v))
}

// Token returns the bearer token, or "" when signed out.
func (s *Store) Token() string { return s.token.Get() }

// User returns the stored user JSON, or nil when absent.
func (s *Store) User() json.RawMessage { return s.user.Get() }

// DecodeUser unmarshals the stored user into v. It returns false when no user
// is stored.
func (s *Store) DecodeUser(v any) (bool, error) {
	raw := s.user.Get()
	if isNull(raw) {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return true, fmt.Errorf("decode stored user: %w", err)
	}
	return true, nil
}

// IsAuthenticated reports whether a token is held.
func (s *Store) IsAuthenticated() bool { return s.token.Get() != "" }

// SetToken replaces the token. An empty token removes it from storage.
func (s *Store) SetToken(token string) error {
	return s.token.Set(token)
}

// SetUser replaces the user with the JSON encoding of v. A nil v removes it.
func (s *Store) SetUser(v any) error {
	raw, err := marshalUser(v)
	if err != nil {
		return err
	}
	return s.user.Set(raw)
}

// SignIn sets the token, then the user.
func (s *Store) SignIn(token string, user any) error {
	raw, err := marshalUser(user)
	if err != nil {
		return err
	}
	return errors.Join(s.token.Set(token), s.user.Set(raw))
}

// SignOut clears the token and the user, removing both storage entries.
func (s *Store) SignOut() error {
	err := errors.Join(s.token.Set(""), s.user.Set(nil))
	s.log.Debug("signed out")
	return err
}

// SubscribeToken observes token changes; fn is called immediately with the
// current value.
func (s *Store) SubscribeToken(fn func(string)) func() {
	unsub, _ := s.token.Subscribe(func(v string) error { fn(v); return nil })
	return unsub
}

// SubscribeUser observes user changes; fn is called immediately with the
// current value.
func (s *Store) SubscribeUser(fn func(json.RawMessage)) func() {
	unsub, _ := s.user.Subscribe(func(v json.RawMessage) error { fn(v); return nil })
	return unsub
}

func marshalUser(v any) (json.RawMessage, error) {
	switch u := v.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		if isNull(u) {
			return nil, nil
		}
		if !json.Valid(u) {
			return nil, errors.New("user is not valid JSON")
		}
		return u, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode user: %w", err)
	}
	if isNull(b) {
		return nil, nil
	}
	return b, nil
}

func isNull(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}
