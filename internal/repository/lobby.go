package repository

import (
	"context"
	"fmt"

	"github.com/movienight/server/internal/domain"
	"github.com/movienight/server/internal/repository/dao"
)

var (
	ErrLobbyExists        = dao.ErrLobbyExists
	ErrLobbyNotFound      = dao.ErrLobbyNotFound
	ErrLobbyAlreadyReady  = dao.ErrLobbyAlreadyReady
	ErrMembershipExists   = dao.ErrMembershipExists
	ErrMembershipNotFound = dao.ErrMembershipNotFound
	ErrInvitationExists   = dao.ErrInvitationExists
	ErrInvitationNotFound = dao.ErrInvitationNotFound
)

type LobbyDAO interface {
	Insert(ctx context.Context, lobby dao.Lobby) (dao.Lobby, error)
	FindByID(ctx context.Context, id uint) (dao.Lobby, error)
	FindByOwnerID(ctx context.Context, ownerID uint) (dao.Lobby, error)
	SetReady(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
	AddMember(ctx context.Context, membership dao.Membership) error
	RemoveMember(ctx context.Context, lobbyID, userID uint) error
	Members(ctx context.Context, lobbyID uint) ([]dao.User, error)
	IsMember(ctx context.Context, lobbyID, userID uint) (bool, error)
	MemberCount(ctx context.Context, lobbyID uint) (int64, error)
	InsertInvitation(ctx context.Context, invitation dao.Invitation) error
	AcceptInvitation(ctx context.Context, invitation dao.Invitation) error
	DeleteInvitation(ctx context.Context, invitation dao.Invitation) error
	InvitationsByReceiver(ctx context.Context, receiverID uint) ([]dao.Invitation, error)
	InvitationsBySender(ctx context.Context, senderID uint) ([]dao.Invitation, error)
	EmptyInvitations(ctx context.Context, lobbyID uint) error
}

type LobbyRepository struct {
	dao LobbyDAO
}

func NewLobbyRepository(dao LobbyDAO) *LobbyRepository {
	return &LobbyRepository{
		dao: dao,
	}
}

// Create opens the lobby with the owner already seated; the storage layer
// writes both rows in one transaction.
func (r *LobbyRepository) Create(ctx context.Context, lobby domain.Lobby) (domain.Lobby, error) {
	created, err := r.dao.Insert(ctx, dao.Lobby{
		OwnerID: lobby.OwnerID,
	})
	if err != nil {
		return domain.Lobby{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *LobbyRepository) FindByID(ctx context.Context, id uint) (domain.Lobby, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Lobby{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *LobbyRepository) FindByOwnerID(ctx context.Context, ownerID uint) (domain.Lobby, error) {
	found, err := r.dao.FindByOwnerID(ctx, ownerID)
	if err != nil {
		return domain.Lobby{}, fmt.Errorf("r.dao.FindByOwnerID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *LobbyRepository) SetReady(ctx context.Context, id uint) error {
	if err := r.dao.SetReady(ctx, id); err != nil {
		return fmt.Errorf("r.dao.SetReady -> %w", err)
	}

	return nil
}

func (r *LobbyRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *LobbyRepository) AddMember(ctx context.Context, lobbyID, userID uint) error {
	err := r.dao.AddMember(ctx, dao.Membership{LobbyID: lobbyID, UserID: userID})
	if err != nil {
		return fmt.Errorf("r.dao.AddMember -> %w", err)
	}

	return nil
}

func (r *LobbyRepository) RemoveMember(ctx context.Context, lobbyID, userID uint) error {
	if err := r.dao.RemoveMember(ctx, lobbyID, userID); err != nil {
		return fmt.Errorf("r.dao.RemoveMember -> %w", err)
	}

	return nil
}

func (r *LobbyRepository) Members(ctx context.Context, lobbyID uint) ([]domain.User, error) {
	members, err := r.dao.Members(ctx, lobbyID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.Members -> %w", err)
	}

	converted := make([]domain.User, len(members))
	for i, m := range members {
		converted[i] = domain.User{
			ID:        m.ID,
			FirstName: m.FirstName,
			LastName:  m.LastName,
			Username:  m.Username,
			Age:       m.Age,
			CreatedAt: m.CreatedAt,
		}
	}

	return converted, nil
}

func (r *LobbyRepository) IsMember(ctx context.Context, lobbyID, userID uint) (bool, error) {
	isMember, err := r.dao.IsMember(ctx, lobbyID, userID)
	if err != nil {
		return false, fmt.Errorf("r.dao.IsMember -> %w", err)
	}

	return isMember, nil
}

func (r *LobbyRepository) MemberCount(ctx context.Context, lobbyID uint) (int64, error) {
	count, err := r.dao.MemberCount(ctx, lobbyID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.MemberCount -> %w", err)
	}

	return count, nil
}

func (r *LobbyRepository) CreateInvitation(ctx context.Context, invitation domain.Invitation) error {
	err := r.dao.InsertInvitation(ctx, r.invitationDomainToDao(invitation))
	if err != nil {
		return fmt.Errorf("r.dao.InsertInvitation -> %w", err)
	}

	return nil
}

func (r *LobbyRepository) AcceptInvitation(ctx context.Context, invitation domain.Invitation) error {
	err := r.dao.AcceptInvitation(ctx, r.invitationDomainToDao(invitation))
	if err != nil {
		return fmt.Errorf("r.dao.AcceptInvitation -> %w", err)
	}

	return nil
}

func (r *LobbyRepository) DeleteInvitation(ctx context.Context, invitation domain.Invitation) error {
	err := r.dao.DeleteInvitation(ctx, r.invitationDomainToDao(invitation))
	if err != nil {
		return fmt.Errorf("r.dao.DeleteInvitation -> %w", err)
	}

	return nil
}

func (r *LobbyRepository) InvitationsByReceiver(ctx context.Context, receiverID uint) ([]domain.Invitation, error) {
	invitations, err := r.dao.InvitationsByReceiver(ctx, receiverID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.InvitationsByReceiver -> %w", err)
	}

	return r.invitationsDaoToDomain(invitations), nil
}

func (r *LobbyRepository) InvitationsBySender(ctx context.Context, senderID uint) ([]domain.Invitation, error) {
	invitations, err := r.dao.InvitationsBySender(ctx, senderID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.InvitationsBySender -> %w", err)
	}

	return r.invitationsDaoToDomain(invitations), nil
}

func (r *LobbyRepository) EmptyInvitations(ctx context.Context, lobbyID uint) error {
	if err := r.dao.EmptyInvitations(ctx, lobbyID); err != nil {
		return fmt.Errorf("r.dao.EmptyInvitations -> %w", err)
	}

	return nil
}

func (r *LobbyRepository) daoToDomain(l dao.Lobby) domain.Lobby {
	return domain.Lobby{
		ID:        l.ID,
		OwnerID:   l.OwnerID,
		IsReady:   l.IsReady,
		CreatedAt: l.CreatedAt,
	}
}

func (r *LobbyRepository) invitationDomainToDao(i domain.Invitation) dao.Invitation {
	return dao.Invitation{
		SenderID:   i.SenderID,
		LobbyID:    i.LobbyID,
		ReceiverID: i.ReceiverID,
	}
}

func (r *LobbyRepository) invitationsDaoToDomain(invitations []dao.Invitation) []domain.Invitation {
	converted := make([]domain.Invitation, len(invitations))
	for i, inv := range invitations {
		converted[i] = domain.Invitation{
			SenderID:   inv.SenderID,
			LobbyID:    inv.LobbyID,
			ReceiverID: inv.ReceiverID,
		}
	}

	return converted
}
