package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Movie{},
		&Genre{},
		&HasGenre{},
		&Lobby{},
		&Membership{},
		&Invitation{},
		&Suggestion{},
		&Vote{},
	)
}
