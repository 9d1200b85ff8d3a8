package repository

import (
	"context"
	"fmt"

	"github.com/movienight/server/internal/domain"
	"github.com/movienight/server/internal/repository/dao"
)

var (
	ErrSuggestionExists   = dao.ErrSuggestionExists
	ErrSuggestionNotFound = dao.ErrSuggestionNotFound
	ErrVoteExists         = dao.ErrVoteExists
	ErrVoteNotFound       = dao.ErrVoteNotFound
)

type SuggestionDAO interface {
	Insert(ctx context.Context, suggestion dao.Suggestion) error
	Delete(ctx context.Context, lobbyID, movieID uint) error
	ListByLobby(ctx context.Context, lobbyID uint) ([]dao.Suggestion, error)
	Exists(ctx context.Context, lobbyID, suggestedBy, movieID uint) (bool, error)
	SuggestedBy(ctx context.Context, lobbyID, movieID uint) (uint, error)
	Empty(ctx context.Context, lobbyID uint) error
}

type VoteDAO interface {
	Insert(ctx context.Context, vote dao.Vote) error
	Delete(ctx context.Context, lobbyID, userID, movieID uint) error
	ListByUser(ctx context.Context, lobbyID, userID uint) ([]dao.Vote, error)
	Empty(ctx context.Context, lobbyID uint) error
	Tally(ctx context.Context, lobbyID uint) (map[uint]int, error)
	Winners(ctx context.Context, lobbyID uint) ([]dao.MovieVotes, error)
}

type VotingRepository struct {
	suggestions SuggestionDAO
	votes       VoteDAO
}

func NewVotingRepository(suggestions SuggestionDAO, votes VoteDAO) *VotingRepository {
	return &VotingRepository{
		suggestions: suggestions,
		votes:       votes,
	}
}

func (r *VotingRepository) CreateSuggestion(ctx context.Context, suggestion domain.Suggestion) error {
	err := r.suggestions.Insert(ctx, dao.Suggestion{
		LobbyID:     suggestion.LobbyID,
		MovieID:     suggestion.MovieID,
		SuggestedBy: suggestion.SuggestedBy,
	})
	if err != nil {
		return fmt.Errorf("r.suggestions.Insert -> %w", err)
	}

	return nil
}

// DeleteSuggestion removes the suggestion together with every vote for the
// movie; the storage layer runs both deletes in one transaction.
func (r *VotingRepository) DeleteSuggestion(ctx context.Context, lobbyID, movieID uint) error {
	if err := r.suggestions.Delete(ctx, lobbyID, movieID); err != nil {
		return fmt.Errorf("r.suggestions.Delete -> %w", err)
	}

	return nil
}

func (r *VotingRepository) SuggestionsByLobby(ctx context.Context, lobbyID uint) ([]domain.Suggestion, error) {
	suggestions, err := r.suggestions.ListByLobby(ctx, lobbyID)
	if err != nil {
		return nil, fmt.Errorf("r.suggestions.ListByLobby -> %w", err)
	}

	converted := make([]domain.Suggestion, len(suggestions))
	for i, s := range suggestions {
		converted[i] = domain.Suggestion{
			LobbyID:     s.LobbyID,
			SuggestedBy: s.SuggestedBy,
			MovieID:     s.MovieID,
		}
	}

	return converted, nil
}

func (r *VotingRepository) SuggestionExists(ctx context.Context, lobbyID, suggestedBy, movieID uint) (bool, error) {
	exists, err := r.suggestions.Exists(ctx, lobbyID, suggestedBy, movieID)
	if err != nil {
		return false, fmt.Errorf("r.suggestions.Exists -> %w", err)
	}

	return exists, nil
}

func (r *VotingRepository) SuggestedBy(ctx context.Context, lobbyID, movieID uint) (uint, error) {
	suggestedBy, err := r.suggestions.SuggestedBy(ctx, lobbyID, movieID)
	if err != nil {
		return 0, fmt.Errorf("r.suggestions.SuggestedBy -> %w", err)
	}

	return suggestedBy, nil
}

func (r *VotingRepository) EmptySuggestions(ctx context.Context, lobbyID uint) error {
	if err := r.suggestions.Empty(ctx, lobbyID); err != nil {
		return fmt.Errorf("r.suggestions.Empty -> %w", err)
	}

	return nil
}

func (r *VotingRepository) CreateVote(ctx context.Context, vote domain.Vote) error {
	err := r.votes.Insert(ctx, dao.Vote{
		LobbyID: vote.LobbyID,
		UserID:  vote.UserID,
		MovieID: vote.MovieID,
	})
	if err != nil {
		return fmt.Errorf("r.votes.Insert -> %w", err)
	}

	return nil
}

func (r *VotingRepository) DeleteVote(ctx context.Context, lobbyID, userID, movieID uint) error {
	if err := r.votes.Delete(ctx, lobbyID, userID, movieID); err != nil {
		return fmt.Errorf("r.votes.Delete -> %w", err)
	}

	return nil
}

func (r *VotingRepository) VotesOfUser(ctx context.Context, lobbyID, userID uint) ([]domain.Vote, error) {
	votes, err := r.votes.ListByUser(ctx, lobbyID, userID)
	if err != nil {
		return nil, fmt.Errorf("r.votes.ListByUser -> %w", err)
	}

	converted := make([]domain.Vote, len(votes))
	for i, v := range votes {
		converted[i] = domain.Vote{
			LobbyID: v.LobbyID,
			UserID:  v.UserID,
			MovieID: v.MovieID,
		}
	}

	return converted, nil
}

func (r *VotingRepository) EmptyVotes(ctx context.Context, lobbyID uint) error {
	if err := r.votes.Empty(ctx, lobbyID); err != nil {
		return fmt.Errorf("r.votes.Empty -> %w", err)
	}

	return nil
}

func (r *VotingRepository) Tally(ctx context.Context, lobbyID uint) (map[uint]int, error) {
	tally, err := r.votes.Tally(ctx, lobbyID)
	if err != nil {
		return nil, fmt.Errorf("r.votes.Tally -> %w", err)
	}

	return tally, nil
}

func (r *VotingRepository) Winners(ctx context.Context, lobbyID uint) ([]domain.MovieResult, error) {
	rows, err := r.votes.Winners(ctx, lobbyID)
	if err != nil {
		return nil, fmt.Errorf("r.votes.Winners -> %w", err)
	}

	results := make([]domain.MovieResult, len(rows))
	for i, row := range rows {
		results[i] = domain.MovieResult{
			MovieID:   row.MovieID,
			Title:     row.Title,
			VoteCount: row.VoteCount,
		}
	}

	return results, nil
}
