package provision

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	domain "github.com/BruksfildServices01/nail-studio/internal/domain/appointment"
	"github.com/BruksfildServices01/nail-studio/internal/models"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Credentials interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Authenticate confere e-mail e senha de um usuário ativo.
func Authenticate(ctx context.Context, store Credentials, email, password string) (*models.User, error) {
	user, err := store.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.Active {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
