package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrMovieNotFound = errors.New("movie not found")
	ErrGenreNotFound = errors.New("genre not found")
	ErrGenreAssigned = errors.New("genre already assigned to movie")
)

type Movie struct {
	ID uint `gorm:"primaryKey"`

	Title       string `gorm:"size:100;not null"`
	Description string
	TrailerPath string `gorm:"size:200"`
}

type Genre struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:255;unique;not null"`
}

type HasGenre struct {
	MovieID uint `gorm:"primaryKey;autoIncrement:false"`
	GenreID uint `gorm:"primaryKey;autoIncrement:false"`
}

func (HasGenre) TableName() string {
	return "has_genre"
}

type MovieDAO struct {
	db *gorm.DB
}

func NewMovieDAO(db *gorm.DB) *MovieDAO {
	return &MovieDAO{
		db: db,
	}
}

func (d *MovieDAO) Insert(ctx context.Context, movie Movie) (Movie, error) {
	result := d.db.WithContext(ctx).Create(&movie)
	if result.Error != nil {
		return Movie{}, result.Error
	}

	return movie, nil
}

func (d *MovieDAO) FindByID(ctx context.Context, id uint) (Movie, error) {
	var movie Movie

	result := d.db.WithContext(ctx).First(&movie, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Movie{}, ErrMovieNotFound
		}

		return Movie{}, result.Error
	}

	return movie, nil
}

func (d *MovieDAO) FindByTitle(ctx context.Context, title string) (Movie, error) {
	var movie Movie

	result := d.db.WithContext(ctx).First(&movie, "title = ?", title)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Movie{}, ErrMovieNotFound
		}

		return Movie{}, result.Error
	}

	return movie, nil
}

func (d *MovieDAO) List(ctx context.Context) ([]Movie, error) {
	var movies []Movie

	result := d.db.WithContext(ctx).Find(&movies)
	if result.Error != nil {
		return nil, result.Error
	}

	return movies, nil
}

func (d *MovieDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("movie_id = ?", id).Delete(&Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("movie_id = ?", id).Delete(&Suggestion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("movie_id = ?", id).Delete(&HasGenre{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&Movie{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrMovieNotFound
		}

		return nil
	})
}

func (d *MovieDAO) InsertGenre(ctx context.Context, genre Genre) (Genre, error) {
	result := d.db.WithContext(ctx).Create(&genre)
	if result.Error != nil {
		return Genre{}, result.Error
	}

	return genre, nil
}

func (d *MovieDAO) FindGenreByName(ctx context.Context, name string) (Genre, error) {
	var genre Genre

	result := d.db.WithContext(ctx).First(&genre, "name = ?", name)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Genre{}, ErrGenreNotFound
		}

		return Genre{}, result.Error
	}

	return genre, nil
}

func (d *MovieDAO) ListGenres(ctx context.Context) ([]Genre, error) {
	var genres []Genre

	result := d.db.WithContext(ctx).Order("name").Find(&genres)
	if result.Error != nil {
		return nil, result.Error
	}

	return genres, nil
}

func (d *MovieDAO) AssignGenre(ctx context.Context, movieID, genreID uint) error {
	result := d.db.WithContext(ctx).Create(&HasGenre{MovieID: movieID, GenreID: genreID})
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return ErrGenreAssigned
		}

		return result.Error
	}

	return nil
}

func (d *MovieDAO) GenresOfMovie(ctx context.Context, movieID uint) ([]Genre, error) {
	var genres []Genre

	result := d.db.WithContext(ctx).Model(&Genre{}).
		Joins("JOIN has_genre ON has_genre.genre_id = genres.id").
		Where("has_genre.movie_id = ?", movieID).
		Order("genres.name").
		Find(&genres)
	if result.Error != nil {
		return nil, result.Error
	}

	return genres, nil
}

// FindIDsByGenres returns the ids of movies tagged with every one of the
// given genre names.
func (d *MovieDAO) FindIDsByGenres(ctx context.Context, genreNames []string) ([]uint, error) {
	var movieIDs []uint

	result := d.db.WithContext(ctx).Model(&HasGenre{}).
		Joins("JOIN genres ON genres.id = has_genre.genre_id").
		Where("genres.name IN ?", genreNames).
		Group("has_genre.movie_id").
		Having("COUNT(DISTINCT has_genre.genre_id) = ?", len(genreNames)).
		Pluck("has_genre.movie_id", &movieIDs)
	if result.Error != nil {
		return nil, result.Error
	}

	return movieIDs, nil
}
