package service

import (
	"context"
	"fmt"

	"apparel-backoffice/internal/client"
	"apparel-backoffice/internal/dto"
	"apparel-backoffice/internal/session"
)

type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResult, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (*dto.SessionInfo, error)
}

type authServiceImpl struct {
	accounts client.AccountClient
	sessions *session.Store
}

func NewAuthService(accounts client.AccountClient, sessions *session.Store) AuthService {
	return &authServiceImpl{
		accounts: accounts,
		sessions: sessions,
	}
}

func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResult, error) {
	data, err := s.accounts.Login(ctx, req.PhoneNumber, req.Password)
	if err != nil {
		return nil, fmt.Errorf("commerce api login: %w", err)
	}

	if err := s.sessions.Set(ctx, data.Token, data.Roles, req.RememberMe); err != nil {
		return nil, fmt.Errorf("store credential: %w", err)
	}

	return &dto.LoginResult{
		UserID: session.UserID(data.Token),
		Roles:  data.Roles,
	}, nil
}

func (s *authServiceImpl) Logout(ctx context.Context) error {
	return s.sessions.Clear(ctx)
}

func (s *authServiceImpl) Current(ctx context.Context) (*dto.SessionInfo, error) {
	token, ok := s.sessions.Token(ctx)
	if !ok {
		return &dto.SessionInfo{Authenticated: false}, nil
	}

	return &dto.SessionInfo{
		Authenticated: true,
		UserID:        session.UserID(token),
		Roles:         s.sessions.Roles(ctx),
		Expired:       session.Expired(token),
	}, nil
}
