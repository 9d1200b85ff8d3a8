package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/movienight/server/internal/domain"
	"github.com/movienight/server/internal/repository"
)

const minimumAge = 18

var (
	ErrUsernameExists = repository.ErrUsernameExists
	ErrBlankUsername  = errors.New("username must not be blank")
	ErrBlankPassword  = errors.New("password must not be blank")
	ErrUnderage       = errors.New("user must be at least 18 years old")
	ErrWrongPassword  = errors.New("wrong password")
)

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
}

type AuthService struct {
	repo AuthUserRepository
}

func NewAuthService(repo AuthUserRepository) *AuthService {
	return &AuthService{
		repo: repo,
	}
}

// Signup registers a new account. Blank credentials and underage users are
// rejected here; a duplicate username is rejected by the storage constraint
// and surfaces as ErrUsernameExists.
func (s *AuthService) Signup(ctx context.Context, user domain.User) (domain.User, error) {
	if strings.TrimSpace(user.Username) == "" {
		return domain.User{}, ErrBlankUsername
	}
	if strings.TrimSpace(user.Password) == "" {
		return domain.User{}, ErrBlankPassword
	}
	if user.Age < minimumAge {
		return domain.User{}, ErrUnderage
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}
	user.Password = string(hash)

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (domain.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByUsername -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, ErrWrongPassword
	}

	return user, nil
}
