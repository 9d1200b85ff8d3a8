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
	ErrUsernameExists = errors.New("username already taken")
	ErrUserNotFound   = errors.New("user not found")
)

type User struct {
	ID uint `gorm:"primaryKey"`

	FirstName string `gorm:"size:50"`
	LastName  string `gorm:"size:50"`
	Username  string `gorm:"size:50;unique;not null"`
	Password  string `gorm:"not null"`
	Age       int    `gorm:"not null;check:age >= 18"`

	CreatedAt time.Time `gorm:"not null"`
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

func (d *UserDAO) Insert(ctx context.Context, user User) (User, error) {
	result := d.db.WithContext(ctx).Create(&user)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return User{}, ErrUsernameExists
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByUsername(ctx context.Context, username string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, "username = ?", username)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&User{}).Where("username = ?", username).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

func (d *UserDAO) UpdatePassword(ctx context.Context, id uint, password string) error {
	result := d.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Update("password", password)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (d *UserDAO) UpdateName(ctx context.Context, id uint, firstName, lastName string) error {
	result := d.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"first_name": firstName,
		"last_name":  lastName,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// Delete removes the user and every row that references it, in one
// transaction. Lobbies owned by the user are torn down first.
func (d *UserDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lobbyIDs []uint
		if err := tx.Model(&Lobby{}).Where("owner_id = ?", id).Pluck("id", &lobbyIDs).Error; err != nil {
			return err
		}

		if len(lobbyIDs) > 0 {
			if err := tx.Where("lobby_id IN ?", lobbyIDs).Delete(&Vote{}).Error; err != nil {
				return err
			}
			if err := tx.Where("lobby_id IN ?", lobbyIDs).Delete(&Suggestion{}).Error; err != nil {
				return err
			}
			if err := tx.Where("lobby_id IN ?", lobbyIDs).Delete(&Invitation{}).Error; err != nil {
				return err
			}
			if err := tx.Where("lobby_id IN ?", lobbyIDs).Delete(&Membership{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", lobbyIDs).Delete(&Lobby{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", id).Delete(&Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("suggested_by = ?", id).Delete(&Suggestion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("sender_id = ? OR receiver_id = ?", id, id).Delete(&Invitation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&Membership{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&User{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}

		return nil
	})
}
