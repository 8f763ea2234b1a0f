// README: User account model and roles.
package user

import (
	"errors"
	"time"

	"rideshare/internal/types"
)

type Role string

const (
	RoleRider  Role = "RIDER"
	RoleDriver Role = "DRIVER"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrBadRequest         = errors.New("bad request")
)

// User is never deleted; wallet balance lives in the wallet module.
type User struct {
	ID           types.ID  `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

func ValidRole(r Role) bool {
	return r == RoleRider || r == RoleDriver
}
