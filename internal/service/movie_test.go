package service

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/movienight/server/internal/domain"
	"github.com/movienight/server/internal/repository"
)

type genreAssignment struct {
	movieID uint
	genreID uint
}

type fakeMovieRepository struct {
	nextMovieID uint
	nextGenreID uint
	movies      map[uint]domain.Movie
	genres      map[uint]domain.Genre
	assignments map[genreAssignment]bool
}

func newFakeMovieRepository() *fakeMovieRepository {
	return &fakeMovieRepository{
		nextMovieID: 1,
		nextGenreID: 1,
		movies:      make(map[uint]domain.Movie),
		genres:      make(map[uint]domain.Genre),
		assignments: make(map[genreAssignment]bool),
	}
}

func (f *fakeMovieRepository) Create(_ context.Context, movie domain.Movie) (domain.Movie, error) {
	movie.ID = f.nextMovieID
	f.nextMovieID++
	f.movies[movie.ID] = movie

	return movie, nil
}

func (f *fakeMovieRepository) FindByID(_ context.Context, id uint) (domain.Movie, error) {
	movie, ok := f.movies[id]
	if !ok {
		return domain.Movie{}, repository.ErrMovieNotFound
	}

	return movie, nil
}

func (f *fakeMovieRepository) FindByTitle(_ context.Context, title string) (domain.Movie, error) {
	for _, movie := range f.movies {
		if movie.Title == title {
			return movie, nil
		}
	}

	return domain.Movie{}, repository.ErrMovieNotFound
}

func (f *fakeMovieRepository) List(_ context.Context) ([]domain.Movie, error) {
	movies := make([]domain.Movie, 0, len(f.movies))
	for _, movie := range f.movies {
		movies = append(movies, movie)
	}
	sort.Slice(movies, func(i, j int) bool { return movies[i].ID < movies[j].ID })

	return movies, nil
}

func (f *fakeMovieRepository) Delete(_ context.Context, id uint) error {
	if _, ok := f.movies[id]; !ok {
		return repository.ErrMovieNotFound
	}

	delete(f.movies, id)
	for assignment := range f.assignments {
		if assignment.movieID == id {
			delete(f.assignments, assignment)
		}
	}

	return nil
}

func (f *fakeMovieRepository) CreateGenre(_ context.Context, genre domain.Genre) (domain.Genre, error) {
	genre.ID = f.nextGenreID
	f.nextGenreID++
	f.genres[genre.ID] = genre

	return genre, nil
}

func (f *fakeMovieRepository) FindGenreByName(_ context.Context, name string) (domain.Genre, error) {
	for _, genre := range f.genres {
		if genre.Name == name {
			return genre, nil
		}
	}

	return domain.Genre{}, repository.ErrGenreNotFound
}

func (f *fakeMovieRepository) ListGenres(_ context.Context) ([]domain.Genre, error) {
	genres := make([]domain.Genre, 0, len(f.genres))
	for _, genre := range f.genres {
		genres = append(genres, genre)
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i].Name < genres[j].Name })

	return genres, nil
}

func (f *fakeMovieRepository) AssignGenre(_ context.Context, movieID, genreID uint) error {
	assignment := genreAssignment{movieID: movieID, genreID: genreID}
	if f.assignments[assignment] {
		return repository.ErrGenreAssigned
	}

	f.assignments[assignment] = true

	return nil
}

func (f *fakeMovieRepository) GenresOfMovie(_ context.Context, movieID uint) ([]domain.Genre, error) {
	var genres []domain.Genre
	for assignment := range f.assignments {
		if assignment.movieID == movieID {
			genres = append(genres, f.genres[assignment.genreID])
		}
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i].Name < genres[j].Name })

	return genres, nil
}

func (f *fakeMovieRepository) FindIDsByGenres(_ context.Context, genreNames []string) ([]uint, error) {
	wanted := make(map[uint]bool, len(genreNames))
	for _, name := range genreNames {
		for id, genre := range f.genres {
			if genre.Name == name {
				wanted[id] = true
			}
		}
	}

	var ids []uint
	for id := range f.movies {
		matched := 0
		for genreID := range wanted {
			if f.assignments[genreAssignment{movieID: id, genreID: genreID}] {
				matched++
			}
		}
		if matched == len(genreNames) && len(genreNames) > 0 {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids, nil
}

func TestMovieService_GetMovieByTitle(t *testing.T) {
	svc := NewMovieService(newFakeMovieRepository())

	alien, err := svc.ImportMovie(context.Background(), domain.Movie{Title: "Alien"})
	require.NoError(t, err)

	t.Run("finds the movie by its exact title", func(t *testing.T) {
		movie, err := svc.GetMovieByTitle(context.Background(), "Alien")
		require.NoError(t, err)
		assert.Equal(t, alien.ID, movie.ID)
	})

	t.Run("unknown title is not found", func(t *testing.T) {
		_, err := svc.GetMovieByTitle(context.Background(), "Heat")
		assert.ErrorIs(t, err, ErrMovieNotFound)
	})
}

func TestMovieService_DeleteMovie(t *testing.T) {
	svc := NewMovieService(newFakeMovieRepository())

	movie, err := svc.ImportMovie(context.Background(), domain.Movie{Title: "Alien"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteMovie(context.Background(), movie.ID))

	_, err = svc.GetMovie(context.Background(), movie.ID)
	assert.ErrorIs(t, err, ErrMovieNotFound)

	err = svc.DeleteMovie(context.Background(), movie.ID)
	assert.ErrorIs(t, err, ErrMovieNotFound)
}

func TestMovieService_TagMovie(t *testing.T) {
	t.Run("assigns an existing genre by name", func(t *testing.T) {
		repo := newFakeMovieRepository()
		svc := NewMovieService(repo)

		movie, err := svc.ImportMovie(context.Background(), domain.Movie{Title: "Alien"})
		require.NoError(t, err)
		_, err = svc.CreateGenre(context.Background(), "Horror")
		require.NoError(t, err)

		require.NoError(t, svc.TagMovie(context.Background(), movie.ID, "Horror"))

		label, err := svc.GenreLabel(context.Background(), movie.ID)
		require.NoError(t, err)
		assert.Equal(t, "Horror", label)
	})

	t.Run("rejects an unknown genre", func(t *testing.T) {
		svc := NewMovieService(newFakeMovieRepository())

		err := svc.TagMovie(context.Background(), 1, "Jazz")
		assert.ErrorIs(t, err, ErrGenreNotFound)
	})

	t.Run("rejects assigning the same genre twice", func(t *testing.T) {
		svc := NewMovieService(newFakeMovieRepository())

		movie, err := svc.ImportMovie(context.Background(), domain.Movie{Title: "Alien"})
		require.NoError(t, err)
		_, err = svc.CreateGenre(context.Background(), "Horror")
		require.NoError(t, err)
		require.NoError(t, svc.TagMovie(context.Background(), movie.ID, "Horror"))

		err = svc.TagMovie(context.Background(), movie.ID, "Horror")
		assert.ErrorIs(t, err, ErrGenreAssigned)
	})
}

func TestMovieService_GenreLabel(t *testing.T) {
	t.Run("joins genre names with commas", func(t *testing.T) {
		svc := NewMovieService(newFakeMovieRepository())

		movie, err := svc.ImportMovie(context.Background(), domain.Movie{Title: "Alien"})
		require.NoError(t, err)
		for _, name := range []string{"Horror", "Sci-Fi"} {
			_, err = svc.CreateGenre(context.Background(), name)
			require.NoError(t, err)
			require.NoError(t, svc.TagMovie(context.Background(), movie.ID, name))
		}

		label, err := svc.GenreLabel(context.Background(), movie.ID)

		require.NoError(t, err)
		assert.Equal(t, "Horror, Sci-Fi", label)
	})

	t.Run("an untagged movie has an empty label", func(t *testing.T) {
		svc := NewMovieService(newFakeMovieRepository())

		movie, err := svc.ImportMovie(context.Background(), domain.Movie{Title: "Alien"})
		require.NoError(t, err)

		label, err := svc.GenreLabel(context.Background(), movie.ID)

		require.NoError(t, err)
		assert.Empty(t, label)
	})
}

func TestMovieService_FilterByGenres(t *testing.T) {
	setup := func(t *testing.T) (*MovieService, domain.Movie, domain.Movie) {
		t.Helper()

		svc := NewMovieService(newFakeMovieRepository())

		alien, err := svc.ImportMovie(context.Background(), domain.Movie{Title: "Alien"})
		require.NoError(t, err)
		heat, err := svc.ImportMovie(context.Background(), domain.Movie{Title: "Heat"})
		require.NoError(t, err)

		for _, name := range []string{"Horror", "Sci-Fi", "Crime"} {
			_, err = svc.CreateGenre(context.Background(), name)
			require.NoError(t, err)
		}
		require.NoError(t, svc.TagMovie(context.Background(), alien.ID, "Horror"))
		require.NoError(t, svc.TagMovie(context.Background(), alien.ID, "Sci-Fi"))
		require.NoError(t, svc.TagMovie(context.Background(), heat.ID, "Crime"))

		return svc, alien, heat
	}

	t.Run("matches movies carrying every requested genre", func(t *testing.T) {
		svc, alien, _ := setup(t)

		movies, err := svc.FilterByGenres(context.Background(), []string{"Horror", "Sci-Fi"})

		require.NoError(t, err)
		require.Len(t, movies, 1)
		assert.Equal(t, alien.ID, movies[0].ID)
	})

	t.Run("a partial match is not enough", func(t *testing.T) {
		svc, _, _ := setup(t)

		movies, err := svc.FilterByGenres(context.Background(), []string{"Horror", "Crime"})

		require.NoError(t, err)
		assert.Empty(t, movies)
	})

	t.Run("no filter lists everything", func(t *testing.T) {
		svc, _, _ := setup(t)

		movies, err := svc.FilterByGenres(context.Background(), nil)

		require.NoError(t, err)
		assert.Len(t, movies, 2)
	})
}
