package usecase

import (
	"context"
	"errors"

	"transfer-portal/internal/domain/user"
	"transfer-portal/internal/pkg/jwt"
	"transfer-portal/internal/pkg/password"
	"transfer-portal/internal/usecase/queries"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrUserInactive         = errors.New("user account is inactive")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrTokenGeneration      = errors.New("token generation failed")
	ErrTokenValidation      = errors.New("token validation failed")
)

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	UpdateLastLogin(ctx context.Context, userID uuid.UUID) error
}

type AuthUseCase interface {
	Login(ctx context.Context, email, plainPassword string) (string, *queries.AuthorizedUserView, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*queries.AuthorizedUserView, error)
	ValidateToken(tokenString string) (uuid.UUID, user.Role, *uuid.UUID, error)
}

type authUseCaseImpl struct {
	userRepo   UserRepository
	jwtService *jwt.Service
}

func NewAuthUseCase(userRepo UserRepository, jwtService *jwt.Service) AuthUseCase {
	return &authUseCaseImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

func (a *authUseCaseImpl) Login(ctx context.Context, email, plainPassword string) (string, *queries.AuthorizedUserView, error) {
	u, err := a.validateUser(ctx, email, plainPassword)
	if err != nil {
		return "", nil, err
	}

	token, err := a.jwtService.GenerateToken(u.ID(), u.Role(), u.CompanyID())
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	if err := a.userRepo.UpdateLastLogin(ctx, u.ID()); err != nil {
		return "", nil, err
	}

	return token, userToView(u), nil
}

func (a *authUseCaseImpl) validateUser(ctx context.Context, email, plainPassword string) (*user.User, error) {
	u, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}

	if !u.IsActive() {
		return nil, ErrUserInactive
	}

	if err := password.ComparePassword(u.PasswordHash(), plainPassword); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

func (a *authUseCaseImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*queries.AuthorizedUserView, error) {
	u, err := a.userRepo.FindByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}

	if !u.IsActive() {
		return nil, ErrUserInactive
	}

	return userToView(u), nil
}

func (a *authUseCaseImpl) ValidateToken(tokenString string) (uuid.UUID, user.Role, *uuid.UUID, error) {
	claims, err := a.jwtService.ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, "", nil, ErrTokenValidation
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return uuid.Nil, "", nil, ErrTokenValidation
	}

	return claims.UserID, role, claims.CompanyID, nil
}

func userToView(u *user.User) *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:        u.ID(),
		Email:     u.Email(),
		Role:      u.Role().String(),
		CompanyID: u.CompanyID(),
		IsActive:  u.IsActive(),
	}
}
