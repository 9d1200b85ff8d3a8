package service

import (
	"context"
	"fmt"

	"github.com/movienight/server/internal/domain"
	"github.com/movienight/server/internal/repository"
)

var (
	ErrSuggestionExists   = repository.ErrSuggestionExists
	ErrSuggestionNotFound = repository.ErrSuggestionNotFound
	ErrVoteExists         = repository.ErrVoteExists
	ErrVoteNotFound       = repository.ErrVoteNotFound
)

type VotingRepository interface {
	CreateSuggestion(ctx context.Context, suggestion domain.Suggestion) error
	DeleteSuggestion(ctx context.Context, lobbyID, movieID uint) error
	SuggestionsByLobby(ctx context.Context, lobbyID uint) ([]domain.Suggestion, error)
	SuggestionExists(ctx context.Context, lobbyID, suggestedBy, movieID uint) (bool, error)
	SuggestedBy(ctx context.Context, lobbyID, movieID uint) (uint, error)
	EmptySuggestions(ctx context.Context, lobbyID uint) error
	CreateVote(ctx context.Context, vote domain.Vote) error
	DeleteVote(ctx context.Context, lobbyID, userID, movieID uint) error
	VotesOfUser(ctx context.Context, lobbyID, userID uint) ([]domain.Vote, error)
	EmptyVotes(ctx context.Context, lobbyID uint) error
	Tally(ctx context.Context, lobbyID uint) (map[uint]int, error)
	Winners(ctx context.Context, lobbyID uint) ([]domain.MovieResult, error)
}

type VotingLobbyRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Lobby, error)
}

type VotingService struct {
	repo      VotingRepository
	lobbyRepo VotingLobbyRepository
}

func NewVotingService(repo VotingRepository, lobbyRepo VotingLobbyRepository) *VotingService {
	return &VotingService{
		repo:      repo,
		lobbyRepo: lobbyRepo,
	}
}

// requireVoting rejects mutation once the lobby is finalized. Finalization
// only means something if suggestions and votes stop moving afterwards.
func (s *VotingService) requireVoting(ctx context.Context, lobbyID uint) error {
	lobby, err := s.lobbyRepo.FindByID(ctx, lobbyID)
	if err != nil {
		return fmt.Errorf("s.lobbyRepo.FindByID -> %w", err)
	}
	if lobby.IsReady {
		return ErrLobbyAlreadyReady
	}

	return nil
}

// SuggestMovie claims the lobby's single suggestion slot for the movie.
// A second suggestion for the same movie fails with ErrSuggestionExists no
// matter who proposed it first.
func (s *VotingService) SuggestMovie(ctx context.Context, lobbyID, userID, movieID uint) error {
	if err := s.requireVoting(ctx, lobbyID); err != nil {
		return err
	}

	err := s.repo.CreateSuggestion(ctx, domain.Suggestion{
		LobbyID:     lobbyID,
		SuggestedBy: userID,
		MovieID:     movieID,
	})
	if err != nil {
		return fmt.Errorf("s.repo.CreateSuggestion -> %w", err)
	}

	return nil
}

// RemoveSuggestion withdraws the movie from the lobby and drops every vote
// cast for it. The storage layer deletes both in one transaction, so the
// tally never counts votes for a non-candidate even when the removal fails
// midway.
func (s *VotingService) RemoveSuggestion(ctx context.Context, lobbyID, movieID uint) error {
	if err := s.requireVoting(ctx, lobbyID); err != nil {
		return err
	}

	if err := s.repo.DeleteSuggestion(ctx, lobbyID, movieID); err != nil {
		return fmt.Errorf("s.repo.DeleteSuggestion -> %w", err)
	}

	return nil
}

func (s *VotingService) GetSuggestions(ctx context.Context, lobbyID uint) ([]domain.Suggestion, error) {
	if _, err := s.lobbyRepo.FindByID(ctx, lobbyID); err != nil {
		return nil, fmt.Errorf("s.lobbyRepo.FindByID -> %w", err)
	}

	suggestions, err := s.repo.SuggestionsByLobby(ctx, lobbyID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.SuggestionsByLobby -> %w", err)
	}

	return suggestions, nil
}

func (s *VotingService) SuggestionExists(ctx context.Context, lobbyID, suggestedBy, movieID uint) (bool, error) {
	exists, err := s.repo.SuggestionExists(ctx, lobbyID, suggestedBy, movieID)
	if err != nil {
		return false, fmt.Errorf("s.repo.SuggestionExists -> %w", err)
	}

	return exists, nil
}

func (s *VotingService) GetSuggestedBy(ctx context.Context, lobbyID, movieID uint) (uint, error) {
	suggestedBy, err := s.repo.SuggestedBy(ctx, lobbyID, movieID)
	if err != nil {
		return 0, fmt.Errorf("s.repo.SuggestedBy -> %w", err)
	}

	return suggestedBy, nil
}

func (s *VotingService) CastVote(ctx context.Context, lobbyID, userID, movieID uint) error {
	if err := s.requireVoting(ctx, lobbyID); err != nil {
		return err
	}

	err := s.repo.CreateVote(ctx, domain.Vote{
		LobbyID: lobbyID,
		UserID:  userID,
		MovieID: movieID,
	})
	if err != nil {
		return fmt.Errorf("s.repo.CreateVote -> %w", err)
	}

	return nil
}

func (s *VotingService) RetractVote(ctx context.Context, lobbyID, userID, movieID uint) error {
	if err := s.requireVoting(ctx, lobbyID); err != nil {
		return err
	}

	if err := s.repo.DeleteVote(ctx, lobbyID, userID, movieID); err != nil {
		return fmt.Errorf("s.repo.DeleteVote -> %w", err)
	}

	return nil
}

func (s *VotingService) VotesOfUser(ctx context.Context, lobbyID, userID uint) ([]domain.Vote, error) {
	votes, err := s.repo.VotesOfUser(ctx, lobbyID, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.VotesOfUser -> %w", err)
	}

	return votes, nil
}

// Tally maps every candidate movie to its vote count. Every currently
// suggested movie is present, with 0 when nobody voted for it; movies that
// collected votes are present regardless.
func (s *VotingService) Tally(ctx context.Context, lobbyID uint) (map[uint]int, error) {
	if _, err := s.lobbyRepo.FindByID(ctx, lobbyID); err != nil {
		return nil, fmt.Errorf("s.lobbyRepo.FindByID -> %w", err)
	}

	suggestions, err := s.repo.SuggestionsByLobby(ctx, lobbyID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.SuggestionsByLobby -> %w", err)
	}

	counts, err := s.repo.Tally(ctx, lobbyID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Tally -> %w", err)
	}

	tally := make(map[uint]int, len(suggestions))
	for _, suggestion := range suggestions {
		tally[suggestion.MovieID] = 0
	}
	for movieID, count := range counts {
		tally[movieID] = count
	}

	return tally, nil
}

// ResolveWinners ranks the lobby's movies by vote count, highest first,
// ties broken by ascending movie id. A lobby without votes yields an empty
// ranking, not an error.
func (s *VotingService) ResolveWinners(ctx context.Context, lobbyID uint) ([]domain.MovieResult, error) {
	if _, err := s.lobbyRepo.FindByID(ctx, lobbyID); err != nil {
		return nil, fmt.Errorf("s.lobbyRepo.FindByID -> %w", err)
	}

	winners, err := s.repo.Winners(ctx, lobbyID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Winners -> %w", err)
	}

	return winners, nil
}

func (s *VotingService) EmptySuggestions(ctx context.Context, lobbyID uint) error {
	if err := s.repo.EmptySuggestions(ctx, lobbyID); err != nil {
		return fmt.Errorf("s.repo.EmptySuggestions -> %w", err)
	}

	return nil
}

func (s *VotingService) EmptyVotes(ctx context.Context, lobbyID uint) error {
	if err := s.repo.EmptyVotes(ctx, lobbyID); err != nil {
		return fmt.Errorf("s.repo.EmptyVotes -> %w", err)
	}

	return nil
}
