package domain

// Suggestion proposes a movie as a candidate in a lobby. There is at most
// one suggestion per (lobby, movie); SuggestedBy is informational only.
type Suggestion struct {
	LobbyID     uint `json:"lobby_id"`
	SuggestedBy uint `json:"suggested_by"`
	MovieID     uint `json:"movie_id"`
}

// Vote is one user's endorsement of one movie within a lobby. A user may
// vote for multiple distinct movies in the same lobby.
type Vote struct {
	LobbyID uint `json:"lobby_id"`
	UserID  uint `json:"user_id"`
	MovieID uint `json:"movie_id"`
}

// MovieResult is one row of a resolved ranking: a movie and its vote count.
type MovieResult struct {
	MovieID   uint   `json:"movie_id"`
	Title     string `json:"title"`
	VoteCount int    `json:"vote_count"`
}
