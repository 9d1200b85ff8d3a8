package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/movienight/server/internal/domain"
	"github.com/movienight/server/internal/repository"
)

var (
	ErrMovieNotFound = repository.ErrMovieNotFound
	ErrGenreNotFound = repository.ErrGenreNotFound
	ErrGenreAssigned = repository.ErrGenreAssigned
)

type MovieRepository interface {
	Create(ctx context.Context, movie domain.Movie) (domain.Movie, error)
	FindByID(ctx context.Context, id uint) (domain.Movie, error)
	FindByTitle(ctx context.Context, title string) (domain.Movie, error)
	List(ctx context.Context) ([]domain.Movie, error)
	Delete(ctx context.Context, id uint) error
	CreateGenre(ctx context.Context, genre domain.Genre) (domain.Genre, error)
	FindGenreByName(ctx context.Context, name string) (domain.Genre, error)
	ListGenres(ctx context.Context) ([]domain.Genre, error)
	AssignGenre(ctx context.Context, movieID, genreID uint) error
	GenresOfMovie(ctx context.Context, movieID uint) ([]domain.Genre, error)
	FindIDsByGenres(ctx context.Context, genreNames []string) ([]uint, error)
}

type MovieService struct {
	repo MovieRepository
}

func NewMovieService(repo MovieRepository) *MovieService {
	return &MovieService{
		repo: repo,
	}
}

func (s *MovieService) ImportMovie(ctx context.Context, movie domain.Movie) (domain.Movie, error) {
	created, err := s.repo.Create(ctx, movie)
	if err != nil {
		return domain.Movie{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *MovieService) GetMovie(ctx context.Context, id uint) (domain.Movie, error) {
	movie, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Movie{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return movie, nil
}

func (s *MovieService) GetMovieByTitle(ctx context.Context, title string) (domain.Movie, error) {
	movie, err := s.repo.FindByTitle(ctx, title)
	if err != nil {
		return domain.Movie{}, fmt.Errorf("s.repo.FindByTitle -> %w", err)
	}

	return movie, nil
}

func (s *MovieService) ListMovies(ctx context.Context) ([]domain.Movie, error) {
	movies, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return movies, nil
}

func (s *MovieService) DeleteMovie(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *MovieService) CreateGenre(ctx context.Context, name string) (domain.Genre, error) {
	genre, err := s.repo.CreateGenre(ctx, domain.Genre{Name: name})
	if err != nil {
		return domain.Genre{}, fmt.Errorf("s.repo.CreateGenre -> %w", err)
	}

	return genre, nil
}

func (s *MovieService) ListGenres(ctx context.Context) ([]domain.Genre, error) {
	genres, err := s.repo.ListGenres(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListGenres -> %w", err)
	}

	return genres, nil
}

// TagMovie assigns a genre to a movie by genre name.
func (s *MovieService) TagMovie(ctx context.Context, movieID uint, genreName string) error {
	genre, err := s.repo.FindGenreByName(ctx, genreName)
	if err != nil {
		return fmt.Errorf("s.repo.FindGenreByName -> %w", err)
	}

	if err = s.repo.AssignGenre(ctx, movieID, genre.ID); err != nil {
		return fmt.Errorf("s.repo.AssignGenre -> %w", err)
	}

	return nil
}

// GenreLabel renders the movie's genres as a single comma-separated string.
func (s *MovieService) GenreLabel(ctx context.Context, movieID uint) (string, error) {
	genres, err := s.repo.GenresOfMovie(ctx, movieID)
	if err != nil {
		return "", fmt.Errorf("s.repo.GenresOfMovie -> %w", err)
	}

	names := make([]string, len(genres))
	for i, g := range genres {
		names[i] = g.Name
	}

	return strings.Join(names, ", "), nil
}

// FilterByGenres returns movies tagged with every one of the given genres.
func (s *MovieService) FilterByGenres(ctx context.Context, genreNames []string) ([]domain.Movie, error) {
	if len(genreNames) == 0 {
		return s.ListMovies(ctx)
	}

	movieIDs, err := s.repo.FindIDsByGenres(ctx, genreNames)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindIDsByGenres -> %w", err)
	}

	movies := make([]domain.Movie, 0, len(movieIDs))
	for _, id := range movieIDs {
		movie, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("s.repo.FindByID -> %w", err)
		}
		movies = append(movies, movie)
	}

	return movies, nil
}
