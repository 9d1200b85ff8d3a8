package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type UpdateNameRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (req *UpdateNameRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.FirstName, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.LastName, validation.Required, validation.Length(1, 50)),
	)
}
