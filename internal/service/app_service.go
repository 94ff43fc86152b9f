package service

import (
	"context"
	"encoding/json"

	"github.com/allinone/manager/internal/model"
	appErr "github.com/allinone/manager/internal/pkg/errors"
	"github.com/allinone/manager/internal/repo"
)

type AppService struct {
	apps *repo.AppRepo
}

func NewAppService(apps *repo.AppRepo) *AppService {
	return &AppService{apps: apps}
}

type CreateAppParams struct {
	Name        string
	Slug        string
	Description string
	OwnerID     *int64
	Meta        json.RawMessage
}

type AppUpdate struct {
	Name        *string
	Description *string
	Meta        json.RawMessage
}

func (s *AppService) Create(ctx context.Context, params CreateAppParams) (*model.App, error) {
	if params.Name == "" || params.Slug == "" {
		return nil, appErr.ErrInvalid
	}
	app := &model.App{
		Name:        params.Name,
		Slug:        params.Slug,
		Description: params.Description,
		OwnerID:     params.OwnerID,
		Meta:        params.Meta,
	}
	if err := s.apps.Create(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *AppService) List(ctx context.Context) ([]model.App, error) {
	return s.apps.List(ctx)
}

func (s *AppService) Get(ctx context.Context, id int64) (*model.App, error) {
	return s.apps.GetByID(ctx, id)
}

func (s *AppService) Update(ctx context.Context, id int64, update AppUpdate) (*model.App, error) {
	fields := map[string]interface{}{}
	if update.Name != nil {
		if *update.Name == "" {
			return nil, appErr.ErrInvalid
		}
		fields["name"] = *update.Name
	}
	if update.Description != nil {
		fields["description"] = *update.Description
	}
	if len(update.Meta) > 0 {
		fields["meta"] = string(update.Meta)
	}
	if len(fields) == 0 {
		return nil, appErr.ErrInvalid
	}
	if err := s.apps.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.apps.GetByID(ctx, id)
}

func (s *AppService) Delete(ctx context.Context, id int64) error {
	return s.apps.Delete(ctx, id)
}
