// Package services contains application services for the bereal client.
// This file defines the authentication service: register, login, logout and
// restoring a saved session from the local store.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bereal/internal/client/client"
	"github.com/dmitrijs2005/bereal/internal/client/models"
	"github.com/dmitrijs2005/bereal/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/bereal/internal/common"
	"github.com/dmitrijs2005/bereal/internal/logging"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register / Login: authenticate against the backend and persist the
//     session token locally.
//   - Logout: end the backend session and forget the local one.
//   - Restore: resume a saved session, validated with the backend.
//   - Refresh: reload the signed-in user (e.g. its last post time).
//   - Current: the signed-in user, nil when signed out.
//
// Passwords are passed as byte slices so callers can wipe them after use.
type AuthService interface {
	Register(ctx context.Context, username, email string, password []byte) (*models.User, error)
	Login(ctx context.Context, username string, password []byte) (*models.User, error)
	Logout(ctx context.Context) error
	Restore(ctx context.Context) (*models.User, error)
	Refresh(ctx context.Context) (*models.User, error)
	Current() *models.User
	Ping(ctx context.Context) error
}

type authService struct {
	client   client.Client
	metadata metadata.Repository
	log      logging.Logger
	current  *models.User
}

func NewAuthService(c client.Client, repo metadata.Repository, log logging.Logger) AuthService {
	return &authService{client: c, metadata: repo, log: log}
}

func validateCredentials(username string, password []byte) error {
	if strings.TrimSpace(username) == "" {
		return common.InputError("username is required")
	}
	if len(password) == 0 {
		return common.InputError("password is required")
	}
	return nil
}

func (a *authService) Register(ctx context.Context, username, email string, password []byte) (*models.User, error) {
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}

	u, err := a.client.SignUp(ctx, strings.TrimSpace(username), strings.TrimSpace(email), string(password))
	if err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}
	if err := a.saveSession(ctx, u); err != nil {
		return nil, err
	}
	a.log.Info(ctx, "user registered", "username", u.Username)
	return u, nil
}

func (a *authService) Login(ctx context.Context, username string, password []byte) (*models.User, error) {
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}

	u, err := a.client.LogIn(ctx, strings.TrimSpace(username), string(password))
	if err != nil {
		return nil, fmt.Errorf("log in: %w", err)
	}
	if err := a.saveSession(ctx, u); err != nil {
		return nil, err
	}
	a.log.Info(ctx, "user logged in", "username", u.Username)
	return u, nil
}

// Logout ends the session. The local session is forgotten even when the
// backend call fails; that error is still returned.
func (a *authService) Logout(ctx context.Context) error {
	if a.current == nil {
		return common.ErrNotLoggedIn
	}

	remoteErr := a.client.LogOut(ctx)
	if remoteErr != nil {
		a.log.Warn(ctx, "backend logout failed", "error", remoteErr)
	}

	a.current = nil
	if err := a.clearSession(ctx); err != nil {
		return err
	}
	if remoteErr != nil {
		return fmt.Errorf("log out: %w", remoteErr)
	}
	return nil
}

// Restore resumes the saved session. It returns common.ErrNotLoggedIn when
// nothing is saved or the backend rejects the token; the rejected token is
// forgotten. Other failures keep the saved session for a later attempt.
func (a *authService) Restore(ctx context.Context) (*models.User, error) {
	token, ok, err := a.metadata.Get(ctx, metadata.KeySessionToken)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if !ok || token == "" {
		return nil, common.ErrNotLoggedIn
	}

	a.client.SetSessionToken(token)

	u, err := a.client.Me(ctx)
	if errors.Is(err, common.ErrUnauthorized) {
		a.log.Info(ctx, "saved session rejected", "error", err)
		a.client.SetSessionToken("")
		if cerr := a.clearSession(ctx); cerr != nil {
			return nil, cerr
		}
		return nil, fmt.Errorf("%w: session expired", common.ErrNotLoggedIn)
	}
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}

	if u.SessionToken == "" {
		u.SessionToken = token
	}
	a.current = u
	return u, nil
}

func (a *authService) Refresh(ctx context.Context) (*models.User, error) {
	if a.current == nil {
		return nil, common.ErrNotLoggedIn
	}
	u, err := a.client.Me(ctx)
	if err != nil {
		return nil, fmt.Errorf("refresh user: %w", err)
	}
	if u.SessionToken == "" {
		u.SessionToken = a.current.SessionToken
	}
	a.current = u
	return u, nil
}

func (a *authService) Current() *models.User {
	return a.current
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) saveSession(ctx context.Context, u *models.User) error {
	a.current = u
	err := a.metadata.SetMany(ctx, map[string]string{
		metadata.KeySessionToken: u.SessionToken,
		metadata.KeyUserID:       u.ID,
		metadata.KeyUsername:     u.Username,
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (a *authService) clearSession(ctx context.Context) error {
	if err := a.metadata.Delete(ctx, metadata.KeySessionToken, metadata.KeyUserID, metadata.KeyUsername); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
