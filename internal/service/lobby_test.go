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

type membershipKey struct {
	lobbyID uint
	userID  uint
}

// fakeLobbyRepository mirrors the constraint behavior of the real storage
// layer: unique owner, unique membership, composite-key invitations.
type fakeLobbyRepository struct {
	nextID      uint
	lobbies     map[uint]domain.Lobby
	members     map[membershipKey]bool
	invitations map[domain.Invitation]bool
}

func newFakeLobbyRepository() *fakeLobbyRepository {
	return &fakeLobbyRepository{
		nextID:      1,
		lobbies:     make(map[uint]domain.Lobby),
		members:     make(map[membershipKey]bool),
		invitations: make(map[domain.Invitation]bool),
	}
}

// Create seats the owner along with the lobby row, the way the real storage
// transaction does.
func (f *fakeLobbyRepository) Create(_ context.Context, lobby domain.Lobby) (domain.Lobby, error) {
	for _, existing := range f.lobbies {
		if existing.OwnerID == lobby.OwnerID {
			return domain.Lobby{}, repository.ErrLobbyExists
		}
	}

	lobby.ID = f.nextID
	f.nextID++
	f.lobbies[lobby.ID] = lobby
	f.members[membershipKey{lobbyID: lobby.ID, userID: lobby.OwnerID}] = true

	return lobby, nil
}

func (f *fakeLobbyRepository) FindByID(_ context.Context, id uint) (domain.Lobby, error) {
	lobby, ok := f.lobbies[id]
	if !ok {
		return domain.Lobby{}, repository.ErrLobbyNotFound
	}

	return lobby, nil
}

func (f *fakeLobbyRepository) FindByOwnerID(_ context.Context, ownerID uint) (domain.Lobby, error) {
	for _, lobby := range f.lobbies {
		if lobby.OwnerID == ownerID {
			return lobby, nil
		}
	}

	return domain.Lobby{}, repository.ErrLobbyNotFound
}

func (f *fakeLobbyRepository) SetReady(_ context.Context, id uint) error {
	lobby, ok := f.lobbies[id]
	if !ok {
		return repository.ErrLobbyNotFound
	}
	if lobby.IsReady {
		return repository.ErrLobbyAlreadyReady
	}

	lobby.IsReady = true
	f.lobbies[id] = lobby

	return nil
}

func (f *fakeLobbyRepository) Delete(_ context.Context, id uint) error {
	if _, ok := f.lobbies[id]; !ok {
		return repository.ErrLobbyNotFound
	}

	delete(f.lobbies, id)
	for key := range f.members {
		if key.lobbyID == id {
			delete(f.members, key)
		}
	}
	for invitation := range f.invitations {
		if invitation.LobbyID == id {
			delete(f.invitations, invitation)
		}
	}

	return nil
}

func (f *fakeLobbyRepository) AddMember(_ context.Context, lobbyID, userID uint) error {
	key := membershipKey{lobbyID: lobbyID, userID: userID}
	if f.members[key] {
		return repository.ErrMembershipExists
	}

	f.members[key] = true

	return nil
}

func (f *fakeLobbyRepository) RemoveMember(_ context.Context, lobbyID, userID uint) error {
	key := membershipKey{lobbyID: lobbyID, userID: userID}
	if !f.members[key] {
		return repository.ErrMembershipNotFound
	}

	delete(f.members, key)

	return nil
}

func (f *fakeLobbyRepository) Members(_ context.Context, lobbyID uint) ([]domain.User, error) {
	var users []domain.User
	for key := range f.members {
		if key.lobbyID == lobbyID {
			users = append(users, domain.User{ID: key.userID})
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })

	return users, nil
}

func (f *fakeLobbyRepository) IsMember(_ context.Context, lobbyID, userID uint) (bool, error) {
	return f.members[membershipKey{lobbyID: lobbyID, userID: userID}], nil
}

func (f *fakeLobbyRepository) MemberCount(_ context.Context, lobbyID uint) (int64, error) {
	var count int64
	for key := range f.members {
		if key.lobbyID == lobbyID {
			count++
		}
	}

	return count, nil
}

func (f *fakeLobbyRepository) CreateInvitation(_ context.Context, invitation domain.Invitation) error {
	if f.invitations[invitation] {
		return repository.ErrInvitationExists
	}

	f.invitations[invitation] = true

	return nil
}

func (f *fakeLobbyRepository) DeleteInvitation(_ context.Context, invitation domain.Invitation) error {
	if !f.invitations[invitation] {
		return repository.ErrInvitationNotFound
	}

	delete(f.invitations, invitation)

	return nil
}

// AcceptInvitation keeps the invitation when the membership cannot be
// created, mirroring the rollback of the real storage transaction.
func (f *fakeLobbyRepository) AcceptInvitation(_ context.Context, invitation domain.Invitation) error {
	if !f.invitations[invitation] {
		return repository.ErrInvitationNotFound
	}

	key := membershipKey{lobbyID: invitation.LobbyID, userID: invitation.ReceiverID}
	if f.members[key] {
		return repository.ErrMembershipExists
	}

	delete(f.invitations, invitation)
	f.members[key] = true

	return nil
}

func (f *fakeLobbyRepository) InvitationsByReceiver(_ context.Context, receiverID uint) ([]domain.Invitation, error) {
	var result []domain.Invitation
	for invitation := range f.invitations {
		if invitation.ReceiverID == receiverID {
			result = append(result, invitation)
		}
	}

	return result, nil
}

func (f *fakeLobbyRepository) InvitationsBySender(_ context.Context, senderID uint) ([]domain.Invitation, error) {
	var result []domain.Invitation
	for invitation := range f.invitations {
		if invitation.SenderID == senderID {
			result = append(result, invitation)
		}
	}

	return result, nil
}

func (f *fakeLobbyRepository) EmptyInvitations(_ context.Context, lobbyID uint) error {
	for invitation := range f.invitations {
		if invitation.LobbyID == lobbyID {
			delete(f.invitations, invitation)
		}
	}

	return nil
}

func TestLobbyService_CreateLobby(t *testing.T) {
	t.Run("creates the lobby with the owner inside", func(t *testing.T) {
		repo := newFakeLobbyRepository()
		svc := NewLobbyService(repo)

		lobby, err := svc.CreateLobby(context.Background(), 7)

		require.NoError(t, err)
		assert.Equal(t, uint(7), lobby.OwnerID)
		assert.False(t, lobby.IsReady)

		members, err := svc.GetMembers(context.Background(), lobby.ID)
		require.NoError(t, err)
		require.Len(t, members, 1)
		assert.Equal(t, uint(7), members[0].ID)
	})

	t.Run("rejects a second lobby for the same owner", func(t *testing.T) {
		svc := NewLobbyService(newFakeLobbyRepository())

		_, err := svc.CreateLobby(context.Background(), 7)
		require.NoError(t, err)

		_, err = svc.CreateLobby(context.Background(), 7)
		assert.ErrorIs(t, err, ErrLobbyExists)
	})
}

func TestLobbyService_SetReady(t *testing.T) {
	t.Run("finalizes voting once", func(t *testing.T) {
		svc := NewLobbyService(newFakeLobbyRepository())
		lobby, err := svc.CreateLobby(context.Background(), 1)
		require.NoError(t, err)

		require.NoError(t, svc.SetReady(context.Background(), lobby.ID, 1))

		stillVoting, err := svc.IsStillVoting(context.Background(), lobby.ID)
		require.NoError(t, err)
		assert.False(t, stillVoting)
	})

	t.Run("reports an already finalized lobby", func(t *testing.T) {
		svc := NewLobbyService(newFakeLobbyRepository())
		lobby, err := svc.CreateLobby(context.Background(), 1)
		require.NoError(t, err)

		require.NoError(t, svc.SetReady(context.Background(), lobby.ID, 1))

		err = svc.SetReady(context.Background(), lobby.ID, 1)
		assert.ErrorIs(t, err, ErrLobbyAlreadyReady)
	})

	t.Run("only the owner may finalize", func(t *testing.T) {
		svc := NewLobbyService(newFakeLobbyRepository())
		lobby, err := svc.CreateLobby(context.Background(), 1)
		require.NoError(t, err)

		err = svc.SetReady(context.Background(), lobby.ID, 2)
		assert.ErrorIs(t, err, ErrNotLobbyOwner)
	})

	t.Run("missing lobby is reported as not found", func(t *testing.T) {
		svc := NewLobbyService(newFakeLobbyRepository())

		err := svc.SetReady(context.Background(), 99, 1)
		assert.ErrorIs(t, err, ErrLobbyNotFound)
	})
}

func TestLobbyService_Membership(t *testing.T) {
	t.Run("join adds the user", func(t *testing.T) {
		svc := NewLobbyService(newFakeLobbyRepository())
		lobby, err := svc.CreateLobby(context.Background(), 1)
		require.NoError(t, err)

		require.NoError(t, svc.JoinLobby(context.Background(), lobby.ID, 2))

		members, err := svc.GetMembers(context.Background(), lobby.ID)
		require.NoError(t, err)
		assert.Len(t, members, 2)
	})

	t.Run("joining twice fails", func(t *testing.T) {
		svc := NewLobbyService(newFakeLobbyRepository())
		lobby, err := svc.CreateLobby(context.Background(), 1)
		require.NoError(t, err)

		require.NoError(t, svc.JoinLobby(context.Background(), lobby.ID, 2))

		err = svc.JoinLobby(context.Background(), lobby.ID, 2)
		assert.ErrorIs(t, err, ErrMembershipExists)
	})

	t.Run("joining a missing lobby fails", func(t *testing.T) {
		svc := NewLobbyService(newFakeLobbyRepository())

		err := svc.JoinLobby(context.Background(), 99, 2)
		assert.ErrorIs(t, err, ErrLobbyNotFound)
	})

	t.Run("the last member leaving deletes the lobby", func(t *testing.T) {
		svc := NewLobbyService(newFakeLobbyRepository())
		lobby, err := svc.CreateLobby(context.Background(), 1)
		require.NoError(t, err)

		require.NoError(t, svc.LeaveLobby(context.Background(), lobby.ID, 1))

		_, err = svc.GetLobby(context.Background(), lobby.ID)
		assert.ErrorIs(t, err, ErrLobbyNotFound)
	})

	t.Run("leaving keeps a non-empty lobby alive", func(t *testing.T) {
		svc := NewLobbyService(newFakeLobbyRepository())
		lobby, err := svc.CreateLobby(context.Background(), 1)
		require.NoError(t, err)
		require.NoError(t, svc.JoinLobby(context.Background(), lobby.ID, 2))

		require.NoError(t, svc.LeaveLobby(context.Background(), lobby.ID, 2))

		_, err = svc.GetLobby(context.Background(), lobby.ID)
		assert.NoError(t, err)
	})
}

func TestLobbyService_Invitations(t *testing.T) {
	setup := func(t *testing.T) (*LobbyService, domain.Lobby) {
		t.Helper()

		svc := NewLobbyService(newFakeLobbyRepository())
		lobby, err := svc.CreateLobby(context.Background(), 1)
		require.NoError(t, err)

		return svc, lobby
	}

	t.Run("a member can invite", func(t *testing.T) {
		svc, lobby := setup(t)

		invitation := domain.Invitation{SenderID: 1, LobbyID: lobby.ID, ReceiverID: 2}
		require.NoError(t, svc.SendInvitation(context.Background(), invitation))

		received, err := svc.ReceivedInvitations(context.Background(), 2)
		require.NoError(t, err)
		assert.Len(t, received, 1)
	})

	t.Run("a non-member cannot invite", func(t *testing.T) {
		svc, lobby := setup(t)

		invitation := domain.Invitation{SenderID: 5, LobbyID: lobby.ID, ReceiverID: 2}
		err := svc.SendInvitation(context.Background(), invitation)

		assert.ErrorIs(t, err, ErrNotLobbyMember)
	})

	t.Run("duplicate invitation fails", func(t *testing.T) {
		svc, lobby := setup(t)

		invitation := domain.Invitation{SenderID: 1, LobbyID: lobby.ID, ReceiverID: 2}
		require.NoError(t, svc.SendInvitation(context.Background(), invitation))

		err := svc.SendInvitation(context.Background(), invitation)
		assert.ErrorIs(t, err, ErrInvitationExists)
	})

	t.Run("accept joins the receiver and consumes the invitation", func(t *testing.T) {
		svc, lobby := setup(t)

		invitation := domain.Invitation{SenderID: 1, LobbyID: lobby.ID, ReceiverID: 2}
		require.NoError(t, svc.SendInvitation(context.Background(), invitation))

		require.NoError(t, svc.AcceptInvitation(context.Background(), invitation))

		members, err := svc.GetMembers(context.Background(), lobby.ID)
		require.NoError(t, err)
		assert.Len(t, members, 2)

		received, err := svc.ReceivedInvitations(context.Background(), 2)
		require.NoError(t, err)
		assert.Empty(t, received)
	})

	t.Run("decline consumes the invitation without joining", func(t *testing.T) {
		svc, lobby := setup(t)

		invitation := domain.Invitation{SenderID: 1, LobbyID: lobby.ID, ReceiverID: 2}
		require.NoError(t, svc.SendInvitation(context.Background(), invitation))

		require.NoError(t, svc.DeclineInvitation(context.Background(), invitation))

		members, err := svc.GetMembers(context.Background(), lobby.ID)
		require.NoError(t, err)
		assert.Len(t, members, 1)
	})

	t.Run("accepting a missing invitation fails without joining", func(t *testing.T) {
		svc, lobby := setup(t)

		invitation := domain.Invitation{SenderID: 1, LobbyID: lobby.ID, ReceiverID: 2}
		err := svc.AcceptInvitation(context.Background(), invitation)
		assert.ErrorIs(t, err, ErrInvitationNotFound)

		members, err := svc.GetMembers(context.Background(), lobby.ID)
		require.NoError(t, err)
		assert.Len(t, members, 1)
	})

	t.Run("accepting while already a member keeps the invitation", func(t *testing.T) {
		svc, lobby := setup(t)

		invitation := domain.Invitation{SenderID: 1, LobbyID: lobby.ID, ReceiverID: 2}
		require.NoError(t, svc.SendInvitation(context.Background(), invitation))
		require.NoError(t, svc.JoinLobby(context.Background(), lobby.ID, 2))

		err := svc.AcceptInvitation(context.Background(), invitation)
		assert.ErrorIs(t, err, ErrMembershipExists)

		received, err := svc.ReceivedInvitations(context.Background(), 2)
		require.NoError(t, err)
		assert.Len(t, received, 1)
	})

	t.Run("cancel withdraws the sender's invitation", func(t *testing.T) {
		svc, lobby := setup(t)

		invitation := domain.Invitation{SenderID: 1, LobbyID: lobby.ID, ReceiverID: 2}
		require.NoError(t, svc.SendInvitation(context.Background(), invitation))

		require.NoError(t, svc.CancelInvitation(context.Background(), invitation))

		received, err := svc.ReceivedInvitations(context.Background(), 2)
		require.NoError(t, err)
		assert.Empty(t, received)
	})

	t.Run("cancelling a missing invitation fails", func(t *testing.T) {
		svc, lobby := setup(t)

		invitation := domain.Invitation{SenderID: 1, LobbyID: lobby.ID, ReceiverID: 2}
		err := svc.CancelInvitation(context.Background(), invitation)

		assert.ErrorIs(t, err, ErrInvitationNotFound)
	})

	t.Run("emptying drops every invitation of the lobby", func(t *testing.T) {
		svc, lobby := setup(t)

		require.NoError(t, svc.SendInvitation(context.Background(), domain.Invitation{SenderID: 1, LobbyID: lobby.ID, ReceiverID: 2}))
		require.NoError(t, svc.SendInvitation(context.Background(), domain.Invitation{SenderID: 1, LobbyID: lobby.ID, ReceiverID: 3}))

		require.NoError(t, svc.EmptyInvitations(context.Background(), lobby.ID))

		received, err := svc.ReceivedInvitations(context.Background(), 2)
		require.NoError(t, err)
		assert.Empty(t, received)

		received, err = svc.ReceivedInvitations(context.Background(), 3)
		require.NoError(t, err)
		assert.Empty(t, received)
	})
}
