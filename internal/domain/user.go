package domain

import "time"

type User struct {
	ID        uint      `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	Age       int       `json:"age"`
	CreatedAt time.Time `json:"created_at"`
}
