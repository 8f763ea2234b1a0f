// README: User store contract.
package user

import (
	"context"

	"rideshare/internal/types"
)

// Store persists accounts. Emails are unique case-insensitively; Create
// returns ErrEmailTaken on a duplicate.
type Store interface {
	Create(ctx context.Context, u *User) error
	Get(ctx context.Context, id types.ID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
