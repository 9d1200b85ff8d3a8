package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/movienight/server/internal/domain"
	"github.com/movienight/server/internal/repository"
)

var (
	ErrUserNotFound = repository.ErrUserNotFound
)

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	UpdatePassword(ctx context.Context, id uint, password string) error
	UpdateName(ctx context.Context, id uint, firstName, lastName string) error
	Delete(ctx context.Context, id uint) error
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

func (s *UserService) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByUsername -> %w", err)
	}

	return user, nil
}

func (s *UserService) UsernameExists(ctx context.Context, username string) (bool, error) {
	exists, err := s.repo.UsernameExists(ctx, username)
	if err != nil {
		return false, fmt.Errorf("s.repo.UsernameExists -> %w", err)
	}

	return exists, nil
}

func (s *UserService) UpdatePassword(ctx context.Context, id uint, password string) error {
	if strings.TrimSpace(password) == "" {
		return ErrBlankPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err = s.repo.UpdatePassword(ctx, id, string(hash)); err != nil {
		return fmt.Errorf("s.repo.UpdatePassword -> %w", err)
	}

	return nil
}

func (s *UserService) UpdateName(ctx context.Context, id uint, firstName, lastName string) error {
	if err := s.repo.UpdateName(ctx, id, firstName, lastName); err != nil {
		return fmt.Errorf("s.repo.UpdateName -> %w", err)
	}

	return nil
}

func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
