package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/okian/antekhub/pkg/logger"
	"github.com/okian/antekhub/pkg/session"
)

// AuthService manages the locally stored session. Logging in happens
// outside this package; SaveSession records its outcome.
type AuthService service

// SaveSession stores token and, when user is non-nil, the JSON-encoded
// profile.
func (s *AuthService) SaveSession(ctx context.Context, token string, user any) error {
	if token == "" {
		return ErrUnauthenticated
	}
	store := s.client.store
	if err := store.Set(ctx, session.KeyAuthToken, token); err != nil {
		return err
	}
	if user == nil {
		return store.Remove(ctx, session.KeyCurrentUser)
	}
	profile, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return store.Set(ctx, session.KeyCurrentUser, string(profile))
}

// Logout removes the token and cached profile.
func (s *AuthService) Logout(ctx context.Context) error {
	store := s.client.store
	err := errors.Join(
		store.Remove(ctx, session.KeyAuthToken),
		store.Remove(ctx, session.KeyCurrentUser),
	)
	if err != nil {
		s.client.logger.Error(ctx, "logout failed", logger.Error(err))
		return err
	}
	s.client.logger.Info(ctx, "logged out")
	return nil
}

// LoggedIn reports whether a token is available.
func (s *AuthService) LoggedIn(ctx context.Context) (bool, error) {
	tok, err := s.client.tokens.Token(ctx)
	if err != nil {
		return false, err
	}
	return tok != "", nil
}

// CurrentUser decodes the cached profile into v. It returns
// session.ErrNotFound when no profile is stored.
func (s *AuthService) CurrentUser(ctx context.Context, v any) error {
	raw, err := s.client.store.Get(ctx, session.KeyCurrentUser)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("%w: current user: %w", ErrDecode, err)
	}
	return nil
}
