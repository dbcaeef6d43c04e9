// Package auth establishes engine sessions through the remote auth
// collaborator. Credential verification and token issuance happen there;
// this package only decides whether a session may be established.
package auth

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/farmchainx/trace-engine/internal/model"
	"github.com/farmchainx/trace-engine/internal/remote/dto"
	"github.com/farmchainx/trace-engine/internal/store"
)

// ErrLoginFailed covers both rejected credentials and a non-success
// backend response.
var ErrLoginFailed = errors.New("login failed")

// demoPasswords unlock the seeded demo accounts when the backend is down.
var demoPasswords = map[string]string{
	"admin@example.com": "password123",
}

// Client is the slice of the backend client the service needs.
type Client interface {
	Login(ctx context.Context, email, password string, role model.Role) (dto.AuthResponse, error)
	Register(ctx context.Context, req dto.AuthRequest) (dto.AuthResponse, error)
}

// Service logs users in and out of the engine session.
type Service struct {
	store  *store.Store
	client Client
	logger *zap.Logger
}

func NewService(st *store.Store, client Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: st, client: client, logger: logger}
}

// Login authenticates against the backend and establishes the session. When
// the backend is unreachable it falls back to the locally seeded demo
// accounts. Any non-success backend message fails the login; no session is
// established.
func (s *Service) Login(ctx context.Context, email, password string, role model.Role) (model.User, error) {
	if s.client != nil {
		res, err := s.client.Login(ctx, email, password, role)
		if err == nil {
			return s.establish(res, role)
		}
		s.logger.Warn("backend login unavailable, trying demo accounts", zap.Error(err))
	}
	return s.demoLogin(email, password, role)
}

// Register creates a backend account and establishes the session on success.
func (s *Service) Register(ctx context.Context, name, email, password string, role model.Role) (model.User, error) {
	if s.client == nil {
		return model.User{}, ErrLoginFailed
	}
	res, err := s.client.Register(ctx, dto.AuthRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     string(role),
	})
	if err != nil {
		return model.User{}, err
	}
	return s.establish(res, role)
}

// Logout clears the active session.
func (s *Service) Logout() {
	s.store.ClearSession()
}

// Session returns the active session user, or nil when nobody is signed in.
func (s *Service) Session() *model.User {
	return s.store.Session()
}

func (s *Service) establish(res dto.AuthResponse, role model.Role) (model.User, error) {
	if !strings.Contains(strings.ToLower(res.Message), "success") {
		return model.User{}, ErrLoginFailed
	}
	user := model.User{
		ID:       strconv.FormatInt(res.ID, 10),
		Name:     res.Name,
		Email:    res.Email,
		Role:     role,
		IsActive: true,
		Token:    res.Token,
	}
	s.store.SetSession(user)
	return user, nil
}

func (s *Service) demoLogin(email, password string, role model.Role) (model.User, error) {
	wanted := strings.ToLower(strings.TrimSpace(email))
	expected, ok := demoPasswords[wanted]
	if !ok || expected != password {
		return model.User{}, ErrLoginFailed
	}
	for _, u := range s.store.Users() {
		if strings.ToLower(u.Email) == wanted && (u.Role == role || u.Role.Display() == string(role)) {
			u.Token = "demo-token-" + u.ID
			s.store.SetSession(u)
			return u, nil
		}
	}
	return model.User{}, ErrLoginFailed
}
