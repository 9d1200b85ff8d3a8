package response

import "github.com/movienight/server/internal/domain"

// TallyResponse maps movie id to vote count. Suggested movies nobody voted
// for are present with 0.
type TallyResponse struct {
	LobbyID uint         `json:"lobby_id"`
	Tally   map[uint]int `json:"tally"`
}

type WinnersResponse struct {
	LobbyID uint                 `json:"lobby_id"`
	Winners []domain.MovieResult `json:"winners"`
}

type MovieWithGenres struct {
	domain.Movie
	Genres string `json:"genres"`
}
