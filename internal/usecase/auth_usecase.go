package usecase

import (
	"context"
	"errors"

	"studentshub/internal/domain/user"
	"studentshub/internal/pkg/jwt"
	"studentshub/internal/repository"
	ucauth "studentshub/internal/usecase/auth"

	"github.com/google/uuid"
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthUsecase interface {
	Register(ctx context.Context, in ucauth.RegisterInput) (user.User, TokenPair, error)
	Login(ctx context.Context, in ucauth.LoginInput) (user.User, TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
	Me(ctx context.Context, userID uuid.UUID) (user.User, error)
}

type Auth struct {
	authSvc *ucauth.Service
	users   repository.UserRepository
	jwt     jwt.Service
}

func NewAuthUsecase(authSvc *ucauth.Service, users repository.UserRepository, jwtSvc jwt.Service) *Auth {
	return &Auth{authSvc: authSvc, users: users, jwt: jwtSvc}
}

func (u *Auth) Register(ctx context.Context, in ucauth.RegisterInput) (user.User, TokenPair, error) {
	usr, err := u.authSvc.Register(ctx, in)
	if err != nil {
		return user.User{}, TokenPair{}, mapAuthError(err)
	}
	pair, err := u.issue(usr)
	if err != nil {
		return user.User{}, TokenPair{}, err
	}
	return usr, pair, nil
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (user.User, TokenPair, error) {
	usr, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return user.User{}, TokenPair{}, mapAuthError(err)
	}
	pair, err := u.issue(usr)
	if err != nil {
		return user.User{}, TokenPair{}, err
	}
	return usr, pair, nil
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	if refreshToken == "" {
		return TokenPair{}, ErrUnauthorized
	}

	claims, err := u.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return TokenPair{}, ErrRefreshTokenExpired
		}
		return TokenPair{}, ErrInvalidRefreshToken
	}

	usr, err := u.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return TokenPair{}, ErrInvalidRefreshToken
		}
		return TokenPair{}, internal("refresh: load user", err)
	}
	if !usr.IsActive {
		return TokenPair{}, ErrInvalidRefreshToken
	}

	return u.issue(usr)
}

func (u *Auth) Me(ctx context.Context, userID uuid.UUID) (user.User, error) {
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, storeErr("me", "user", err)
	}
	usr.PasswordHash = ""
	return usr, nil
}

func (u *Auth) issue(usr user.User) (TokenPair, error) {
	access, err := u.jwt.GenerateAccessToken(usr.ID, usr.Email, string(usr.Role))
	if err != nil {
		return TokenPair{}, internal("issue access token", err)
	}
	refresh, err := u.jwt.GenerateRefreshToken(usr.ID)
	if err != nil {
		return TokenPair{}, internal("issue refresh token", err)
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func mapAuthError(err error) error {
	switch {
	case errors.Is(err, ucauth.ErrInvalidInput):
		return invalid("email, password (min 8 chars) and role student|company are required")
	case errors.Is(err, ucauth.ErrEmailAlreadyRegistered):
		return ErrEmailTaken
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return ErrInvalidCredentials
	default:
		return internal("auth", err)
	}
}
