package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/movienight/server/internal/domain"
	"github.com/movienight/server/internal/repository"
)

var (
	ErrLobbyExists        = repository.ErrLobbyExists
	ErrLobbyNotFound      = repository.ErrLobbyNotFound
	ErrLobbyAlreadyReady  = repository.ErrLobbyAlreadyReady
	ErrMembershipExists   = repository.ErrMembershipExists
	ErrMembershipNotFound = repository.ErrMembershipNotFound
	ErrInvitationExists   = repository.ErrInvitationExists
	ErrInvitationNotFound = repository.ErrInvitationNotFound
	ErrNotLobbyOwner      = errors.New("user does not own the lobby")
	ErrNotLobbyMember     = errors.New("user is not a member of the lobby")
)

type LobbyRepository interface {
	Create(ctx context.Context, lobby domain.Lobby) (domain.Lobby, error)
	FindByID(ctx context.Context, id uint) (domain.Lobby, error)
	FindByOwnerID(ctx context.Context, ownerID uint) (domain.Lobby, error)
	SetReady(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
	AddMember(ctx context.Context, lobbyID, userID uint) error
	RemoveMember(ctx context.Context, lobbyID, userID uint) error
	Members(ctx context.Context, lobbyID uint) ([]domain.User, error)
	IsMember(ctx context.Context, lobbyID, userID uint) (bool, error)
	MemberCount(ctx context.Context, lobbyID uint) (int64, error)
	CreateInvitation(ctx context.Context, invitation domain.Invitation) error
	AcceptInvitation(ctx context.Context, invitation domain.Invitation) error
	DeleteInvitation(ctx context.Context, invitation domain.Invitation) error
	InvitationsByReceiver(ctx context.Context, receiverID uint) ([]domain.Invitation, error)
	InvitationsBySender(ctx context.Context, senderID uint) ([]domain.Invitation, error)
	EmptyInvitations(ctx context.Context, lobbyID uint) error
}

type LobbyService struct {
	repo LobbyRepository
}

func NewLobbyService(repo LobbyRepository) *LobbyService {
	return &LobbyService{
		repo: repo,
	}
}

// CreateLobby opens a lobby for the owner and puts the owner inside it; the
// storage layer writes both rows atomically, so a failed create never leaves
// a memberless lobby blocking the owner. One lobby per owner; a second
// create fails with ErrLobbyExists.
func (s *LobbyService) CreateLobby(ctx context.Context, ownerID uint) (domain.Lobby, error) {
	lobby, err := s.repo.Create(ctx, domain.Lobby{OwnerID: ownerID})
	if err != nil {
		return domain.Lobby{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return lobby, nil
}

func (s *LobbyService) GetLobby(ctx context.Context, id uint) (domain.Lobby, error) {
	lobby, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Lobby{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return lobby, nil
}

func (s *LobbyService) GetLobbyByOwner(ctx context.Context, ownerID uint) (domain.Lobby, error) {
	lobby, err := s.repo.FindByOwnerID(ctx, ownerID)
	if err != nil {
		return domain.Lobby{}, fmt.Errorf("s.repo.FindByOwnerID -> %w", err)
	}

	return lobby, nil
}

func (s *LobbyService) IsStillVoting(ctx context.Context, lobbyID uint) (bool, error) {
	lobby, err := s.repo.FindByID(ctx, lobbyID)
	if err != nil {
		return false, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return !lobby.IsReady, nil
}

// SetReady finalizes voting. Only the owner may finalize; a second call
// reports ErrLobbyAlreadyReady instead of silently re-succeeding.
func (s *LobbyService) SetReady(ctx context.Context, lobbyID, callerID uint) error {
	lobby, err := s.repo.FindByID(ctx, lobbyID)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if lobby.OwnerID != callerID {
		return ErrNotLobbyOwner
	}

	if err = s.repo.SetReady(ctx, lobbyID); err != nil {
		return fmt.Errorf("s.repo.SetReady -> %w", err)
	}

	return nil
}

// DeleteLobby tears down the lobby and every dependent row. Owner only.
func (s *LobbyService) DeleteLobby(ctx context.Context, lobbyID, callerID uint) error {
	lobby, err := s.repo.FindByID(ctx, lobbyID)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if lobby.OwnerID != callerID {
		return ErrNotLobbyOwner
	}

	if err = s.repo.Delete(ctx, lobbyID); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *LobbyService) JoinLobby(ctx context.Context, lobbyID, userID uint) error {
	if _, err := s.repo.FindByID(ctx, lobbyID); err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err := s.repo.AddMember(ctx, lobbyID, userID); err != nil {
		return fmt.Errorf("s.repo.AddMember -> %w", err)
	}

	return nil
}

// LeaveLobby removes the member; the last member out tears the lobby down.
func (s *LobbyService) LeaveLobby(ctx context.Context, lobbyID, userID uint) error {
	if err := s.repo.RemoveMember(ctx, lobbyID, userID); err != nil {
		return fmt.Errorf("s.repo.RemoveMember -> %w", err)
	}

	count, err := s.repo.MemberCount(ctx, lobbyID)
	if err != nil {
		return fmt.Errorf("s.repo.MemberCount -> %w", err)
	}
	if count == 0 {
		if err = s.repo.Delete(ctx, lobbyID); err != nil {
			return fmt.Errorf("s.repo.Delete -> %w", err)
		}
		zap.L().Info("deleted empty lobby", zap.Uint("lobby_id", lobbyID))
	}

	return nil
}

func (s *LobbyService) GetMembers(ctx context.Context, lobbyID uint) ([]domain.User, error) {
	if _, err := s.repo.FindByID(ctx, lobbyID); err != nil {
		return nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	members, err := s.repo.Members(ctx, lobbyID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Members -> %w", err)
	}

	return members, nil
}

// SendInvitation requires the sender to be inside the lobby.
func (s *LobbyService) SendInvitation(ctx context.Context, invitation domain.Invitation) error {
	isMember, err := s.repo.IsMember(ctx, invitation.LobbyID, invitation.SenderID)
	if err != nil {
		return fmt.Errorf("s.repo.IsMember -> %w", err)
	}
	if !isMember {
		return ErrNotLobbyMember
	}

	if err = s.repo.CreateInvitation(ctx, invitation); err != nil {
		return fmt.Errorf("s.repo.CreateInvitation -> %w", err)
	}

	return nil
}

// AcceptInvitation consumes the invitation and joins the receiver. Both rows
// move in one storage transaction; if the join fails the invitation stays.
func (s *LobbyService) AcceptInvitation(ctx context.Context, invitation domain.Invitation) error {
	if err := s.repo.AcceptInvitation(ctx, invitation); err != nil {
		return fmt.Errorf("s.repo.AcceptInvitation -> %w", err)
	}

	return nil
}

// DeclineInvitation discards an invitation the receiver does not want.
func (s *LobbyService) DeclineInvitation(ctx context.Context, invitation domain.Invitation) error {
	if err := s.repo.DeleteInvitation(ctx, invitation); err != nil {
		return fmt.Errorf("s.repo.DeleteInvitation -> %w", err)
	}

	return nil
}

// CancelInvitation withdraws an invitation the sender no longer stands by.
func (s *LobbyService) CancelInvitation(ctx context.Context, invitation domain.Invitation) error {
	if err := s.repo.DeleteInvitation(ctx, invitation); err != nil {
		return fmt.Errorf("s.repo.DeleteInvitation -> %w", err)
	}

	return nil
}

func (s *LobbyService) ReceivedInvitations(ctx context.Context, receiverID uint) ([]domain.Invitation, error) {
	invitations, err := s.repo.InvitationsByReceiver(ctx, receiverID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.InvitationsByReceiver -> %w", err)
	}

	return invitations, nil
}

func (s *LobbyService) SentInvitations(ctx context.Context, senderID uint) ([]domain.Invitation, error) {
	invitations, err := s.repo.InvitationsBySender(ctx, senderID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.InvitationsBySender -> %w", err)
	}

	return invitations, nil
}

func (s *LobbyService) EmptyInvitations(ctx context.Context, lobbyID uint) error {
	if err := s.repo.EmptyInvitations(ctx, lobbyID); err != nil {
		return fmt.Errorf("s.repo.EmptyInvitations -> %w", err)
	}

	return nil
}
