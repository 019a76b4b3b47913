package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/groceries/internal/auth"
	"github.com/mmynk/groceries/internal/metrics"
	"github.com/mmynk/groceries/internal/middleware"
	"github.com/mmynk/groceries/internal/models"
	"github.com/mmynk/groceries/pkg/api"
	"github.com/mmynk/groceries/pkg/api/apiconnect"
)

// customerLookup is implemented by authenticators that can fetch a customer.
type customerLookup interface {
	Customer(ctx context.Context, id string) (*models.Customer, error)
}

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	apiconnect.UnimplementedAuthServiceHandler

	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	logger        *slog.Logger
	metrics       *metrics.Metrics
	onLogout      func(ownerID string)
}

// AuthOption configures an AuthService.
type AuthOption func(*AuthService)

// WithLoginMetrics counts login attempts on m.
func WithLoginMetrics(m *metrics.Metrics) AuthOption {
	return func(s *AuthService) {
		s.metrics = m
	}
}

// OnLogout registers fn to run with the owner id of every logout.
func OnLogout(fn func(ownerID string)) AuthOption {
	return func(s *AuthService) {
		s.onLogout = fn
	}
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, logger *slog.Logger, opts ...AuthOption) *AuthService {
	s := &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		logger:        logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *AuthService) observeLogin(err error) {
	if s.metrics != nil {
		s.metrics.ObserveLogin(err)
	}
}

// Login authenticates a customer and returns a JWT token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	s.logger.Info("Login request", "customer_id", req.Msg.CustomerID)

	if req.Msg.CustomerID == "" || req.Msg.AppToken == "" {
		s.observeLogin(auth.ErrInvalidCredentials)
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidCredentials)
	}

	customer, err := s.authenticator.Authenticate(ctx, req.Msg.CustomerID, req.Msg.AppToken)
	s.observeLogin(err)
	if err != nil {
		s.logger.Warn("Login failed", "customer_id", req.Msg.CustomerID, "error", err)
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
	}

	token, err := s.jwtManager.Generate(customer)
	if err != nil {
		s.logger.Error("Failed to generate token", "customer_id", customer.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("Customer logged in successfully", "customer_id", customer.ID)
	return connect.NewResponse(&api.LoginResponse{
		Customer:  api.Customer{ID: customer.ID, CreatedAt: customer.CreatedAt},
		Token:     token,
		ExpiresAt: time.Now().Add(s.jwtManager.TokenDuration()).Unix(),
	}), nil
}

// Logout ends the session. JWTs are stateless, so the client discards its
// token; the server only drops the owner's in-memory list.
func (s *AuthService) Logout(ctx context.Context, req *connect.Request[api.LogoutRequest]) (*connect.Response[api.LogoutResponse], error) {
	ownerID := middleware.GetOwnerID(ctx)
	s.logger.Info("Logout request", "owner_id", ownerID)

	if ownerID != "" && s.onLogout != nil {
		s.onLogout(ownerID)
	}
	return connect.NewResponse(&api.LogoutResponse{}), nil
}

// GetCurrentUser returns the currently authenticated customer.
func (s *AuthService) GetCurrentUser(ctx context.Context, req *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error) {
	ownerID := middleware.GetOwnerID(ctx)
	if ownerID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	resp := &api.GetCurrentUserResponse{Customer: api.Customer{ID: ownerID}}

	if lookup, ok := s.authenticator.(customerLookup); ok {
		customer, err := lookup.Customer(ctx, ownerID)
		if err != nil {
			s.logger.Error("Failed to fetch customer", "owner_id", ownerID, "error", err)
			return nil, connect.NewError(connect.CodeInternal, err)
		}
		if customer == nil {
			// Token outlived the customer record.
			return nil, connect.NewError(connect.CodeUnauthenticated, errors.New("customer no longer exists"))
		}
		resp.Customer.CreatedAt = customer.CreatedAt
	}

	return connect.NewResponse(resp), nil
}
