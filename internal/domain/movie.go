package domain

type Movie struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	TrailerPath string `json:"trailer_path"`
}

type Genre struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
