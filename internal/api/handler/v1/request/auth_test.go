package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignupRequest_Validate(t *testing.T) {
	valid := func() SignupRequest {
		return SignupRequest{
			FirstName:       "Alice",
			LastName:        "Smith",
			Username:        "alice",
			Password:        "secretpw1",
			ConfirmPassword: "secretpw1",
			Age:             30,
		}
	}

	t.Run("accepts a valid request", func(t *testing.T) {
		req := valid()
		assert.NoError(t, req.Validate())
	})

	t.Run("rejects a missing username", func(t *testing.T) {
		req := valid()
		req.Username = ""
		assert.Error(t, req.Validate())
	})

	t.Run("rejects a password without a digit", func(t *testing.T) {
		req := valid()
		req.Password = "onlyletters"
		req.ConfirmPassword = "onlyletters"
		assert.ErrorIs(t, req.Validate(), errInvalidPassword)
	})

	t.Run("rejects a password without a letter", func(t *testing.T) {
		req := valid()
		req.Password = "12345678"
		req.ConfirmPassword = "12345678"
		assert.ErrorIs(t, req.Validate(), errInvalidPassword)
	})

	t.Run("rejects a short password", func(t *testing.T) {
		req := valid()
		req.Password = "abc1"
		req.ConfirmPassword = "abc1"
		assert.ErrorIs(t, req.Validate(), errInvalidPassword)
	})

	t.Run("rejects mismatched confirmation", func(t *testing.T) {
		req := valid()
		req.ConfirmPassword = "different1"
		assert.ErrorIs(t, req.Validate(), errConfirmPasswordMismatch)
	})
}

func TestLoginRequest_Validate(t *testing.T) {
	t.Run("accepts credentials", func(t *testing.T) {
		req := LoginRequest{Username: "alice", Password: "secretpw1"}
		assert.NoError(t, req.Validate())
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		req := LoginRequest{}
		assert.Error(t, req.Validate())
	})
}
