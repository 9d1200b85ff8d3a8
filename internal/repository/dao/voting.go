package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrSuggestionExists   = errors.New("movie already suggested in this lobby")
	ErrSuggestionNotFound = errors.New("suggestion not found")
	ErrVoteExists         = errors.New("vote already cast")
	ErrVoteNotFound       = errors.New("vote not found")
)

// Suggestion holds one slot per (lobby, movie). SuggestedBy records who
// claimed the slot first and carries no identity of its own.
type Suggestion struct {
	LobbyID     uint `gorm:"primaryKey;autoIncrement:false"`
	MovieID     uint `gorm:"primaryKey;autoIncrement:false"`
	SuggestedBy uint `gorm:"not null"`
}

type Vote struct {
	LobbyID uint `gorm:"primaryKey;autoIncrement:false"`
	UserID  uint `gorm:"primaryKey;autoIncrement:false"`
	MovieID uint `gorm:"primaryKey;autoIncrement:false"`
}

// MovieVotes is one row of the winners query: a movie joined with its vote
// count.
type MovieVotes struct {
	MovieID   uint
	Title     string
	VoteCount int
}

type SuggestionDAO struct {
	db *gorm.DB
}

func NewSuggestionDAO(db *gorm.DB) *SuggestionDAO {
	return &SuggestionDAO{
		db: db,
	}
}

// Insert relies on the composite primary key to reject a second suggestion
// for the same (lobby, movie); the unique violation from the driver is the
// duplicate signal, not any pre-check.
func (d *SuggestionDAO) Insert(ctx context.Context, suggestion Suggestion) error {
	result := d.db.WithContext(ctx).Create(&suggestion)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return ErrSuggestionExists
		}

		return result.Error
	}

	return nil
}

// Delete withdraws the suggestion and drops every vote cast for the movie in
// the lobby inside one transaction, so vote rows never outlive their
// candidate.
func (d *SuggestionDAO) Delete(ctx context.Context, lobbyID, movieID uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lobby_id = ? AND movie_id = ?", lobbyID, movieID).Delete(&Vote{}).Error; err != nil {
			return err
		}

		result := tx.Where("lobby_id = ? AND movie_id = ?", lobbyID, movieID).Delete(&Suggestion{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrSuggestionNotFound
		}

		return nil
	})
}

func (d *SuggestionDAO) ListByLobby(ctx context.Context, lobbyID uint) ([]Suggestion, error) {
	var suggestions []Suggestion

	result := d.db.WithContext(ctx).Where("lobby_id = ?", lobbyID).Find(&suggestions)
	if result.Error != nil {
		return nil, result.Error
	}

	return suggestions, nil
}

func (d *SuggestionDAO) Exists(ctx context.Context, lobbyID, suggestedBy, movieID uint) (bool, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Suggestion{}).
		Where("lobby_id = ? AND suggested_by = ? AND movie_id = ?", lobbyID, suggestedBy, movieID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

// SuggestedBy returns the id of the user who holds the suggestion slot for
// the movie in the lobby.
func (d *SuggestionDAO) SuggestedBy(ctx context.Context, lobbyID, movieID uint) (uint, error) {
	var suggestion Suggestion

	result := d.db.WithContext(ctx).
		First(&suggestion, "lobby_id = ? AND movie_id = ?", lobbyID, movieID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return 0, ErrSuggestionNotFound
		}

		return 0, result.Error
	}

	return suggestion.SuggestedBy, nil
}

func (d *SuggestionDAO) Empty(ctx context.Context, lobbyID uint) error {
	return d.db.WithContext(ctx).Where("lobby_id = ?", lobbyID).Delete(&Suggestion{}).Error
}

type VoteDAO struct {
	db *gorm.DB
}

func NewVoteDAO(db *gorm.DB) *VoteDAO {
	return &VoteDAO{
		db: db,
	}
}

func (d *VoteDAO) Insert(ctx context.Context, vote Vote) error {
	result := d.db.WithContext(ctx).Create(&vote)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return ErrVoteExists
		}

		return result.Error
	}

	return nil
}

func (d *VoteDAO) Delete(ctx context.Context, lobbyID, userID, movieID uint) error {
	result := d.db.WithContext(ctx).
		Where("lobby_id = ? AND user_id = ? AND movie_id = ?", lobbyID, userID, movieID).
		Delete(&Vote{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVoteNotFound
	}

	return nil
}

func (d *VoteDAO) ListByUser(ctx context.Context, lobbyID, userID uint) ([]Vote, error) {
	var votes []Vote

	result := d.db.WithContext(ctx).
		Where("lobby_id = ? AND user_id = ?", lobbyID, userID).
		Find(&votes)
	if result.Error != nil {
		return nil, result.Error
	}

	return votes, nil
}

func (d *VoteDAO) Empty(ctx context.Context, lobbyID uint) error {
	return d.db.WithContext(ctx).Where("lobby_id = ?", lobbyID).Delete(&Vote{}).Error
}

// Tally counts vote rows grouped by movie. Movies without votes are absent
// here; the service layer seeds suggested movies with zero.
func (d *VoteDAO) Tally(ctx context.Context, lobbyID uint) (map[uint]int, error) {
	var rows []struct {
		MovieID   uint
		VoteCount int
	}

	result := d.db.WithContext(ctx).Model(&Vote{}).
		Select("movie_id, COUNT(*) AS vote_count").
		Where("lobby_id = ?", lobbyID).
		Group("movie_id").
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	tally := make(map[uint]int, len(rows))
	for _, row := range rows {
		tally[row.MovieID] = row.VoteCount
	}

	return tally, nil
}

// Winners joins votes against movies grouped by movie, ordered by vote count
// descending with ascending movie id as the deterministic tie-break.
func (d *VoteDAO) Winners(ctx context.Context, lobbyID uint) ([]MovieVotes, error) {
	var rows []MovieVotes

	result := d.db.WithContext(ctx).Model(&Vote{}).
		Select("votes.movie_id, movies.title, COUNT(*) AS vote_count").
		Joins("JOIN movies ON movies.id = votes.movie_id").
		Where("votes.lobby_id = ?", lobbyID).
		Group("votes.movie_id, movies.title").
		Order("vote_count DESC, votes.movie_id ASC").
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}
