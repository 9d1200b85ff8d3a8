package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type SuggestMovieRequest struct {
	MovieID uint `json:"movie_id"`
}

func (req *SuggestMovieRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.MovieID, validation.Required),
	)
}

type CastVoteRequest struct {
	MovieID uint `json:"movie_id"`
}

func (req *CastVoteRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.MovieID, validation.Required),
	)
}
