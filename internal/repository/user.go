package repository

import (
	"context"
	"fmt"

	"github.com/movienight/server/internal/domain"
	"github.com/movienight/server/internal/repository/dao"
)

var (
	ErrUsernameExists = dao.ErrUsernameExists
	ErrUserNotFound   = dao.ErrUserNotFound
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByUsername(ctx context.Context, username string) (dao.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	UpdatePassword(ctx context.Context, id uint, password string) error
	UpdateName(ctx context.Context, id uint, firstName, lastName string) error
	Delete(ctx context.Context, id uint) error
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, dao.User{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Username:  user.Username,
		Password:  user.Password,
		Age:       user.Age,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	found, err := r.dao.FindByUsername(ctx, username)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByUsername -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	exists, err := r.dao.UsernameExists(ctx, username)
	if err != nil {
		return false, fmt.Errorf("r.dao.UsernameExists -> %w", err)
	}

	return exists, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uint, password string) error {
	if err := r.dao.UpdatePassword(ctx, id, password); err != nil {
		return fmt.Errorf("r.dao.UpdatePassword -> %w", err)
	}

	return nil
}

func (r *UserRepository) UpdateName(ctx context.Context, id uint, firstName, lastName string) error {
	if err := r.dao.UpdateName(ctx, id, firstName, lastName); err != nil {
		return fmt.Errorf("r.dao.UpdateName -> %w", err)
	}

	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	return domain.User{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
		Password:  u.Password,
		Age:       u.Age,
		CreatedAt: u.CreatedAt,
	}
}
