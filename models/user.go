package models

import "time"

// User is an organizer account. Organizers upload survey exports and trigger
// match runs; participants themselves never log in.
type User struct {
	ID           int       `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

const UserRoleOrganizer = "organizer"

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
