package repository

import (
	"context"
	"fmt"

	"github.com/movienight/server/internal/domain"
	"github.com/movienight/server/internal/repository/dao"
)

var (
	ErrMovieNotFound = dao.ErrMovieNotFound
	ErrGenreNotFound = dao.ErrGenreNotFound
	ErrGenreAssigned = dao.ErrGenreAssigned
)

type MovieDAO interface {
	Insert(ctx context.Context, movie dao.Movie) (dao.Movie, error)
	FindByID(ctx context.Context, id uint) (dao.Movie, error)
	FindByTitle(ctx context.Context, title string) (dao.Movie, error)
	List(ctx context.Context) ([]dao.Movie, error)
	Delete(ctx context.Context, id uint) error
	InsertGenre(ctx context.Context, genre dao.Genre) (dao.Genre, error)
	FindGenreByName(ctx context.Context, name string) (dao.Genre, error)
	ListGenres(ctx context.Context) ([]dao.Genre, error)
	AssignGenre(ctx context.Context, movieID, genreID uint) error
	GenresOfMovie(ctx context.Context, movieID uint) ([]dao.Genre, error)
	FindIDsByGenres(ctx context.Context, genreNames []string) ([]uint, error)
}

type MovieRepository struct {
	dao MovieDAO
}

func NewMovieRepository(dao MovieDAO) *MovieRepository {
	return &MovieRepository{
		dao: dao,
	}
}

func (r *MovieRepository) Create(ctx context.Context, movie domain.Movie) (domain.Movie, error) {
	created, err := r.dao.Insert(ctx, dao.Movie{
		Title:       movie.Title,
		Description: movie.Description,
		TrailerPath: movie.TrailerPath,
	})
	if err != nil {
		return domain.Movie{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *MovieRepository) FindByID(ctx context.Context, id uint) (domain.Movie, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Movie{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *MovieRepository) FindByTitle(ctx context.Context, title string) (domain.Movie, error) {
	found, err := r.dao.FindByTitle(ctx, title)
	if err != nil {
		return domain.Movie{}, fmt.Errorf("r.dao.FindByTitle -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *MovieRepository) List(ctx context.Context) ([]domain.Movie, error) {
	movies, err := r.dao.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	converted := make([]domain.Movie, len(movies))
	for i, m := range movies {
		converted[i] = r.daoToDomain(m)
	}

	return converted, nil
}

func (r *MovieRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *MovieRepository) CreateGenre(ctx context.Context, genre domain.Genre) (domain.Genre, error) {
	created, err := r.dao.InsertGenre(ctx, dao.Genre{Name: genre.Name})
	if err != nil {
		return domain.Genre{}, fmt.Errorf("r.dao.InsertGenre -> %w", err)
	}

	return domain.Genre{ID: created.ID, Name: created.Name}, nil
}

func (r *MovieRepository) FindGenreByName(ctx context.Context, name string) (domain.Genre, error) {
	found, err := r.dao.FindGenreByName(ctx, name)
	if err != nil {
		return domain.Genre{}, fmt.Errorf("r.dao.FindGenreByName -> %w", err)
	}

	return domain.Genre{ID: found.ID, Name: found.Name}, nil
}

func (r *MovieRepository) ListGenres(ctx context.Context) ([]domain.Genre, error) {
	genres, err := r.dao.ListGenres(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListGenres -> %w", err)
	}

	return r.genresDaoToDomain(genres), nil
}

func (r *MovieRepository) AssignGenre(ctx context.Context, movieID, genreID uint) error {
	if err := r.dao.AssignGenre(ctx, movieID, genreID); err != nil {
		return fmt.Errorf("r.dao.AssignGenre -> %w", err)
	}

	return nil
}

func (r *MovieRepository) GenresOfMovie(ctx context.Context, movieID uint) ([]domain.Genre, error) {
	genres, err := r.dao.GenresOfMovie(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.GenresOfMovie -> %w", err)
	}

	return r.genresDaoToDomain(genres), nil
}

func (r *MovieRepository) FindIDsByGenres(ctx context.Context, genreNames []string) ([]uint, error) {
	movieIDs, err := r.dao.FindIDsByGenres(ctx, genreNames)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindIDsByGenres -> %w", err)
	}

	return movieIDs, nil
}

func (r *MovieRepository) daoToDomain(m dao.Movie) domain.Movie {
	return domain.Movie{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		TrailerPath: m.TrailerPath,
	}
}

func (r *MovieRepository) genresDaoToDomain(genres []dao.Genre) []domain.Genre {
	converted := make([]domain.Genre, len(genres))
	for i, g := range genres {
		converted[i] = domain.Genre{ID: g.ID, Name: g.Name}
	}

	return converted
}
