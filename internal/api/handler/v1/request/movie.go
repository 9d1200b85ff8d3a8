package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type ImportMovieRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	TrailerPath string `json:"trailer_path"`
}

func (req *ImportMovieRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Description, validation.Length(0, 2000)),
		validation.Field(&req.TrailerPath, validation.Length(0, 200)),
	)
}

type CreateGenreRequest struct {
	Name string `json:"name"`
}

func (req *CreateGenreRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 255)),
	)
}

type TagMovieRequest struct {
	Genre string `json:"genre"`
}

func (req *TagMovieRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Genre, validation.Required),
	)
}
