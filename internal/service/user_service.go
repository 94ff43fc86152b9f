package service

import (
	"context"

	"github.com/allinone/manager/internal/model"
	appErr "github.com/allinone/manager/internal/pkg/errors"
	"github.com/allinone/manager/internal/pkg/password"
	"github.com/allinone/manager/internal/repo"
)

type UserService struct {
	users *repo.UserRepo
}

func NewUserService(users *repo.UserRepo) *UserService {
	return &UserService{users: users}
}

type CreateUserParams struct {
	Email    string
	Password string
	Name     string
	Role     string
}

// UserUpdate carries a partial update; nil fields are left untouched.
type UserUpdate struct {
	Name     *string
	Role     *string
	Active   *bool
	Password *string
}

func (s *UserService) Create(ctx context.Context, params CreateUserParams) (*model.User, error) {
	if params.Email == "" || params.Password == "" {
		return nil, appErr.ErrInvalid
	}
	if params.Role == "" {
		params.Role = model.RoleUser
	}
	if !model.ValidRole(params.Role) {
		return nil, appErr.ErrInvalid
	}
	hash, err := password.Hash(params.Password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Email:        params.Email,
		PasswordHash: hash,
		Name:         params.Name,
		Role:         params.Role,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) Update(ctx context.Context, id int64, update UserUpdate) (*model.User, error) {
	fields := map[string]interface{}{}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.Role != nil {
		if !model.ValidRole(*update.Role) {
			return nil, appErr.ErrInvalid
		}
		fields["role"] = *update.Role
	}
	if update.Active != nil {
		fields["active"] = *update.Active
	}
	if update.Password != nil {
		if *update.Password == "" {
			return nil, appErr.ErrInvalid
		}
		hash, err := password.Hash(*update.Password)
		if err != nil {
			return nil, err
		}
		fields["password_hash"] = hash
	}
	if len(fields) == 0 {
		return nil, appErr.ErrInvalid
	}
	if err := s.users.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, id)
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.users.Delete(ctx, id)
}
