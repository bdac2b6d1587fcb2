package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/taxwiser/internal/auth"
	"github.com/mmynk/taxwiser/internal/knowledge"
	"github.com/mmynk/taxwiser/internal/middleware"
	"github.com/mmynk/taxwiser/internal/rpc"
	"github.com/mmynk/taxwiser/internal/session"
)

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	authenticator *auth.Authenticator
	jwtManager    *auth.JWTManager
	sessions      *session.Manager
	logger        *slog.Logger
}

var _ rpc.AuthServiceHandler = (*AuthService)(nil)

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator *auth.Authenticator, jwtManager *auth.JWTManager, sessions *session.Manager, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		sessions:      sessions,
		logger:        logger,
	}
}

// Login signs a filer in by email and first name and returns a JWT token.
// The first login for an email creates the user.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[rpc.LoginRequest]) (*connect.Response[rpc.LoginResponse], error) {
	s.logger.Info("Login request", "email", req.Msg.Email)

	user, err := s.authenticator.Login(ctx, req.Msg.Email, req.Msg.FirstName)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidEmail) || errors.Is(err, auth.ErrMissingName) {
			s.logger.Warn("Login rejected", "email", req.Msg.Email, "error", err)
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		s.logger.Error("Login failed", "email", req.Msg.Email, "error", err)
		return nil, connect.NewError(connect.CodeUnavailable, err)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	response := &rpc.LoginResponse{
		Token: token,
		User: &rpc.User{
			ID:          user.ID,
			Email:       user.Email,
			DisplayName: user.DisplayName,
		},
		Greeting: knowledge.Greeting(user.DisplayName),
	}

	s.logger.Info("User logged in successfully", "user_id", user.ID, "email", user.Email)
	return connect.NewResponse(response), nil
}

// Logout discards the filer's return in progress. The token itself is
// stateless and is dropped by the client.
func (s *AuthService) Logout(ctx context.Context, req *connect.Request[rpc.LogoutRequest]) (*connect.Response[rpc.LogoutResponse], error) {
	email := middleware.GetEmail(ctx)
	if email == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	ended := s.sessions.End(email)
	s.logger.Info("Logout request", "email", email, "ended_session", ended)
	return connect.NewResponse(&rpc.LogoutResponse{EndedSession: ended}), nil
}
