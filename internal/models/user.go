package models

import "github.com/google/uuid"

const (
	AdminRole  = "admin"
	WriterRole = "writer"
	ClientRole = "client"
)

var Roles = []string{AdminRole, WriterRole, ClientRole}

func ValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

type User struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Password string    `json:"-"`
	Role     string    `json:"role"`
}
