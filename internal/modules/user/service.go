// README: Registration and authentication.
package user

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	logrus "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"rideshare/internal/types"
)

// Wallets is the slice of the wallet ledger the user module needs: every
// registered user starts with an empty wallet.
type Wallets interface {
	CreateWallet(ctx context.Context, userID types.ID) error
}

type Service struct {
	store   Store
	wallets Wallets
}

func NewService(store Store, wallets Wallets) *Service {
	return &Service{store: store, wallets: wallets}
}

type RegisterCommand struct {
	Name     string
	Email    string
	Password string
	Role     Role
}

// Register creates an account and its zero-balance wallet.
func (s *Service) Register(ctx context.Context, cmd RegisterCommand) (*User, error) {
	name := strings.TrimSpace(cmd.Name)
	email := strings.TrimSpace(cmd.Email)
	if name == "" || email == "" || !strings.Contains(email, "@") || len(cmd.Password) < 6 || !ValidRole(cmd.Role) {
		return nil, ErrBadRequest
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		ID:           types.ID(uuid.New().String()),
		Name:         name,
		Email:        strings.ToLower(email),
		Role:         cmd.Role,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := s.store.Create(ctx, u); err != nil {
		return nil, err
	}
	if err := s.wallets.CreateWallet(ctx, u.ID); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"user_id": u.ID, "role": u.Role}).Info("user registered")
	return u, nil
}

// Authenticate checks credentials and returns the account. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*User, error) {
	return s.store.Get(ctx, id)
}

// Name resolves a display name; used by ride history for counterparties.
func (s *Service) Name(ctx context.Context, id types.ID) (string, error) {
	u, err := s.store.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return u.Name, nil
}
