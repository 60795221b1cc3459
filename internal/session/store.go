package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"apparel-backoffice/internal/model"
	"apparel-backoffice/internal/repository"
)

// durableKey is the single row the durable tier occupies. The store holds
// one operator credential at a time.
const durableKey = "admin"

// Store is the session context handed to the gateway at startup. It owns
// both credential tiers: the durable tier ("remember me") persisted in
// SQLite, and the session tier held in process memory and lost on
// restart. Token prefers the durable tier. Writes only happen at login,
// logout and on a 401 from the commerce API.
type Store struct {
	mu    sync.Mutex
	creds repository.CredentialRepository
	mem   *model.Credential
}

func NewStore(creds repository.CredentialRepository) *Store {
	return &Store{
		creds: creds,
	}
}

// Set records a credential after login. remember selects the durable
// tier; either way the other tier is cleared so at most one copy exists.
func (s *Store) Set(ctx context.Context, token string, roles []string, remember bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cred := &model.Credential{
		Key:   durableKey,
		Token: token,
		Roles: strings.Join(roles, ","),
	}

	if remember {
		s.mem = nil
		if err := s.creds.Save(ctx, cred); err != nil {
			return fmt.Errorf("save durable credential: %w", err)
		}
		return nil
	}

	s.mem = cred
	if err := s.creds.Delete(ctx, durableKey); err != nil {
		return fmt.Errorf("drop durable credential: %w", err)
	}
	return nil
}

// Token implements gateway.TokenSource.
func (s *Store) Token(ctx context.Context) (string, bool) {
	cred := s.current(ctx)
	if cred == nil || cred.Token == "" {
		return "", false
	}
	return cred.Token, true
}

// Roles returns the role names recorded at login.
func (s *Store) Roles(ctx context.Context) []string {
	cred := s.current(ctx)
	if cred == nil || cred.Roles == "" {
		return nil
	}
	return strings.Split(cred.Roles, ",")
}

// Clear drops both tiers. Called at logout and by the gateway on 401.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mem = nil
	if err := s.creds.Delete(ctx, durableKey); err != nil {
		return fmt.Errorf("delete durable credential: %w", err)
	}
	return nil
}

func (s *Store) current(ctx context.Context) *model.Credential {
	s.mu.Lock()
	defer s.mu.Unlock()

	cred, err := s.creds.Get(ctx, durableKey)
	if err == nil && cred != nil {
		return cred
	}
	return s.mem
}
