package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"localbiz-backend/internal/domains/user"
	"localbiz-backend/pkg/jwt"
	"localbiz-backend/pkg/logger"
)

// DefaultBcryptCost balance giữa security và performance
const DefaultBcryptCost = 12

// userService implement user.Service interface
type userService struct {
	repo   user.Repository
	tokens *jwt.Manager
	cost   int
	now    func() time.Time

	// dummyHash is compared against when the username is unknown, keeping timing flat.
	dummyHash []byte
}

// NewUserService tạo service instance
func NewUserService(repo user.Repository, tokens *jwt.Manager) user.Service {
	return NewUserServiceWithCost(repo, tokens, DefaultBcryptCost)
}

// NewUserServiceWithCost lets tests use bcrypt.MinCost.
func NewUserServiceWithCost(repo user.Repository, tokens *jwt.Manager, cost int) user.Service {
	dummy, _ := bcrypt.GenerateFromPassword([]byte("localbiz-dummy-password"), cost)
	return &userService{
		repo:      repo,
		tokens:    tokens,
		cost:      cost,
		now:       time.Now,
		dummyHash: dummy,
	}
}

// ========================================
// AUTHENTICATION
// ========================================

func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.User, error) {
	// 1. VALIDATE INPUT
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. HASH PASSWORD
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 3. CREATE USER ENTITY
	u := &user.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		IsActive:     true,
		DateJoined:   s.now(),
	}

	// 4. PERSIST (unique constraint decides duplicates)
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrUsernameTaken) {
			return nil, validation.Errors{"username": user.ErrUsernameTaken}
		}
		return nil, err
	}

	logger.Info("user registered", map[string]interface{}{
		"user_id":  u.ID.String(),
		"username": u.Username,
	})
	return u, nil
}

func (s *userService) Authenticate(ctx context.Context, req user.LoginRequest) (*user.User, error) {
	if err := req.Validate(); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	u, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(req.Password))
			return nil, user.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	if !u.IsActive {
		return nil, user.ErrInvalidCredentials
	}

	now := s.now()
	if err := s.repo.UpdateLastLogin(ctx, u.ID, now); err != nil {
		// Non-critical
		logger.Error("failed to update last login", err)
	} else {
		u.LastLogin = &now
	}

	return u, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !u.IsActive {
		return nil, user.ErrUserInactive
	}
	return u, nil
}

// IssueToken tạo JWT access token cho API clients
func (s *userService) IssueToken(ctx context.Context, req user.LoginRequest) (*user.TokenResponse, error) {
	u, err := s.Authenticate(ctx, req)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.tokens.GenerateAccessToken(u.ID.String(), u.Username, u.IsStaff)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	return &user.TokenResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      u.ToDTO(),
	}, nil
}

// ========================================
// STAFF PROVISIONING
// ========================================

func (s *userService) EnsureStaff(ctx context.Context, req user.RegisterRequest) (*user.User, bool, error) {
	existing, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, user.ErrUserNotFound) {
		return nil, false, fmt.Errorf("find user: %w", err)
	}

	if existing == nil {
		if err := req.Validate(); err != nil {
			return nil, false, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
		if err != nil {
			return nil, false, fmt.Errorf("hash password: %w", err)
		}
		u := &user.User{
			ID:           uuid.New(),
			Username:     req.Username,
			Email:        req.Email,
			PasswordHash: string(hash),
			IsStaff:      true,
			IsActive:     true,
			DateJoined:   s.now(),
		}
		if err := s.repo.Create(ctx, u); err != nil {
			return nil, false, err
		}
		return u, true, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, false, fmt.Errorf("hash password: %w", err)
	}
	if err := s.repo.SetPassword(ctx, existing.ID, string(hash)); err != nil {
		return nil, false, err
	}
	if err := s.repo.SetStaff(ctx, existing.ID, true); err != nil {
		return nil, false, err
	}
	existing.IsStaff = true
	existing.PasswordHash = string(hash)
	return existing, false, nil
}
