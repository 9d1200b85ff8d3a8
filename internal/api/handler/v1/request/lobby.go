package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type SendInvitationRequest struct {
	ReceiverID uint `json:"receiver_id"`
}

func (req *SendInvitationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ReceiverID, validation.Required),
	)
}

// RespondInvitationRequest identifies a pending invitation to the caller by
// its remaining key parts; the receiver is the caller.
type RespondInvitationRequest struct {
	SenderID uint `json:"sender_id"`
	LobbyID  uint `json:"lobby_id"`
}

func (req *RespondInvitationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.SenderID, validation.Required),
		validation.Field(&req.LobbyID, validation.Required),
	)
}
