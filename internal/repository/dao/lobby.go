package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrLobbyExists        = errors.New("owner already has a lobby")
	ErrLobbyNotFound      = errors.New("lobby not found")
	ErrLobbyAlreadyReady  = errors.New("lobby is already ready")
	ErrMembershipExists   = errors.New("user is already in the lobby")
	ErrMembershipNotFound = errors.New("user is not in the lobby")
	ErrInvitationExists   = errors.New("invitation already sent")
	ErrInvitationNotFound = errors.New("invitation not found")
)

type Lobby struct {
	ID uint `gorm:"primaryKey"`

	OwnerID uint `gorm:"uniqueIndex;not null"`
	IsReady bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null"`
}

type Membership struct {
	LobbyID uint `gorm:"primaryKey;autoIncrement:false"`
	UserID  uint `gorm:"primaryKey;autoIncrement:false"`
}

func (Membership) TableName() string {
	return "in_lobby"
}

type Invitation struct {
	SenderID   uint `gorm:"primaryKey;autoIncrement:false"`
	LobbyID    uint `gorm:"primaryKey;autoIncrement:false"`
	ReceiverID uint `gorm:"primaryKey;autoIncrement:false"`
}

type LobbyDAO struct {
	db *gorm.DB
}

func NewLobbyDAO(db *gorm.DB) *LobbyDAO {
	return &LobbyDAO{
		db: db,
	}
}

// Insert creates the lobby and seats the owner inside it in one transaction;
// a lobby row without its owner membership never becomes visible.
func (d *LobbyDAO) Insert(ctx context.Context, lobby Lobby) (Lobby, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&lobby).Error; err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return ErrLobbyExists
			}

			return err
		}

		return tx.Create(&Membership{LobbyID: lobby.ID, UserID: lobby.OwnerID}).Error
	})
	if err != nil {
		return Lobby{}, err
	}

	return lobby, nil
}

func (d *LobbyDAO) FindByID(ctx context.Context, id uint) (Lobby, error) {
	var lobby Lobby

	result := d.db.WithContext(ctx).First(&lobby, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Lobby{}, ErrLobbyNotFound
		}

		return Lobby{}, result.Error
	}

	return lobby, nil
}

func (d *LobbyDAO) FindByOwnerID(ctx context.Context, ownerID uint) (Lobby, error) {
	var lobby Lobby

	result := d.db.WithContext(ctx).First(&lobby, "owner_id = ?", ownerID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Lobby{}, ErrLobbyNotFound
		}

		return Lobby{}, result.Error
	}

	return lobby, nil
}

// SetReady flips the ready flag with a single compare-and-set UPDATE so two
// concurrent finalizations cannot both report the first transition.
func (d *LobbyDAO) SetReady(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Model(&Lobby{}).
		Where("id = ? AND is_ready = ?", id, false).
		Update("is_ready", true)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := d.db.WithContext(ctx).Model(&Lobby{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrLobbyNotFound
		}

		return ErrLobbyAlreadyReady
	}

	return nil
}

// Delete tears the lobby down: votes, suggestions, invitations and
// memberships go with it inside one transaction so no orphans survive a
// partial failure.
func (d *LobbyDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lobby_id = ?", id).Delete(&Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("lobby_id = ?", id).Delete(&Suggestion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("lobby_id = ?", id).Delete(&Invitation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("lobby_id = ?", id).Delete(&Membership{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&Lobby{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrLobbyNotFound
		}

		return nil
	})
}

func (d *LobbyDAO) AddMember(ctx context.Context, membership Membership) error {
	result := d.db.WithContext(ctx).Create(&membership)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return ErrMembershipExists
		}

		return result.Error
	}

	return nil
}

func (d *LobbyDAO) RemoveMember(ctx context.Context, lobbyID, userID uint) error {
	result := d.db.WithContext(ctx).
		Where("lobby_id = ? AND user_id = ?", lobbyID, userID).
		Delete(&Membership{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMembershipNotFound
	}

	return nil
}

func (d *LobbyDAO) Members(ctx context.Context, lobbyID uint) ([]User, error) {
	var users []User

	result := d.db.WithContext(ctx).Model(&User{}).
		Joins("JOIN in_lobby ON in_lobby.user_id = users.id").
		Where("in_lobby.lobby_id = ?", lobbyID).
		Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

func (d *LobbyDAO) IsMember(ctx context.Context, lobbyID, userID uint) (bool, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Membership{}).
		Where("lobby_id = ? AND user_id = ?", lobbyID, userID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

func (d *LobbyDAO) MemberCount(ctx context.Context, lobbyID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Membership{}).
		Where("lobby_id = ?", lobbyID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *LobbyDAO) InsertInvitation(ctx context.Context, invitation Invitation) error {
	result := d.db.WithContext(ctx).Create(&invitation)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return ErrInvitationExists
		}

		return result.Error
	}

	return nil
}

// AcceptInvitation consumes the invitation and seats the receiver in the
// lobby inside one transaction. A missing invitation or an existing
// membership rolls the whole thing back, so the invitation is never burned
// without the join happening.
func (d *LobbyDAO) AcceptInvitation(ctx context.Context, invitation Invitation) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("sender_id = ? AND lobby_id = ? AND receiver_id = ?",
			invitation.SenderID, invitation.LobbyID, invitation.ReceiverID).
			Delete(&Invitation{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInvitationNotFound
		}

		err := tx.Create(&Membership{LobbyID: invitation.LobbyID, UserID: invitation.ReceiverID}).Error
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return ErrMembershipExists
			}

			return err
		}

		return nil
	})
}

func (d *LobbyDAO) DeleteInvitation(ctx context.Context, invitation Invitation) error {
	result := d.db.WithContext(ctx).
		Where("sender_id = ? AND lobby_id = ? AND receiver_id = ?",
			invitation.SenderID, invitation.LobbyID, invitation.ReceiverID).
		Delete(&Invitation{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInvitationNotFound
	}

	return nil
}

func (d *LobbyDAO) InvitationsByReceiver(ctx context.Context, receiverID uint) ([]Invitation, error) {
	var invitations []Invitation

	result := d.db.WithContext(ctx).Where("receiver_id = ?", receiverID).Find(&invitations)
	if result.Error != nil {
		return nil, result.Error
	}

	return invitations, nil
}

func (d *LobbyDAO) InvitationsBySender(ctx context.Context, senderID uint) ([]Invitation, error) {
	var invitations []Invitation

	result := d.db.WithContext(ctx).Where("sender_id = ?", senderID).Find(&invitations)
	if result.Error != nil {
		return nil, result.Error
	}

	return invitations, nil
}

func (d *LobbyDAO) EmptyInvitations(ctx context.Context, lobbyID uint) error {
	return d.db.WithContext(ctx).Where("lobby_id = ?", lobbyID).Delete(&Invitation{}).Error
}
