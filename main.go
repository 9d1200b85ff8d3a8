package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/movienight/server/cmd/app"
)

// @title        MovieNight API
// @description  Social movie-selection server: lobbies, suggestions, voting.
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
