package service

import (
	"context"
	"time"

	"github.com/allinone/manager/internal/model"
	appErr "github.com/allinone/manager/internal/pkg/errors"
	"github.com/allinone/manager/internal/pkg/jwt"
	"github.com/allinone/manager/internal/pkg/password"
	"github.com/allinone/manager/internal/repo"
)

type AuthService struct {
	users     *repo.UserRepo
	jwtSecret []byte
	jwtTTL    time.Duration
}

func NewAuthService(users *repo.UserRepo, secret []byte, ttl time.Duration) *AuthService {
	return &AuthService{users: users, jwtSecret: secret, jwtTTL: ttl}
}

// Login deliberately returns the same ErrInvalidCredentials for an unknown
// email, a deactivated account and a wrong password, so callers cannot
// enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email, plainPassword string) (*model.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if appErr.IsNotFound(err) {
			return nil, "", appErr.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !user.Active {
		return nil, "", appErr.ErrInvalidCredentials
	}
	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		return nil, "", appErr.ErrInvalidCredentials
	}
	token, err := jwt.GenerateToken(user.ID, user.Role, user.Name, user.Email, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
