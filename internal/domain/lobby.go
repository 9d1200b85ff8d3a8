package domain

import "time"

// Lobby is a voting session owned by one user. Ready means voting is
// finalized and suggestions/votes are frozen.
type Lobby struct {
	ID        uint      `json:"id"`
	OwnerID   uint      `json:"owner_id"`
	IsReady   bool      `json:"is_ready"`
	CreatedAt time.Time `json:"created_at"`
}

type Membership struct {
	LobbyID uint `json:"lobby_id"`
	UserID  uint `json:"user_id"`
}

type Invitation struct {
	SenderID   uint `json:"sender_id"`
	LobbyID    uint `json:"lobby_id"`
	ReceiverID uint `json:"receiver_id"`
}
