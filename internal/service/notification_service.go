package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/allinone/manager/internal/model"
	appErr "github.com/allinone/manager/internal/pkg/errors"
	"github.com/allinone/manager/internal/repo"
)

type NotificationService struct {
	notifications *repo.NotificationRepo
}

func NewNotificationService(notifications *repo.NotificationRepo) *NotificationService {
	return &NotificationService{notifications: notifications}
}

type CreateNotificationParams struct {
	Title    string
	Message  string
	Type     string
	Priority int
	UserID   string
	Meta     json.RawMessage
}

func (s *NotificationService) Create(ctx context.Context, params CreateNotificationParams) (*model.Notification, error) {
	if params.Title == "" {
		return nil, appErr.ErrInvalid
	}
	if params.Type == "" {
		params.Type = "info"
	}
	n := &model.Notification{
		Title:    params.Title,
		Message:  params.Message,
		Type:     params.Type,
		Priority: params.Priority,
		UserID:   params.UserID,
		Meta:     params.Meta,
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *NotificationService) List(ctx context.Context, filter repo.NotificationFilter) ([]model.Notification, error) {
	return s.notifications.List(ctx, filter)
}

func (s *NotificationService) MarkRead(ctx context.Context, id int64) (*model.Notification, error) {
	if err := s.notifications.MarkRead(ctx, id, time.Now()); err != nil {
		return nil, err
	}
	return s.notifications.GetByID(ctx, id)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return s.notifications.MarkAllRead(ctx, userID, time.Now())
}

func (s *NotificationService) Delete(ctx context.Context, id int64) error {
	return s.notifications.Delete(ctx, id)
}

// PurgeRead removes read notifications older than the retention window.
func (s *NotificationService) PurgeRead(ctx context.Context, retentionDays int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	return s.notifications.DeleteReadBefore(ctx, cutoff)
}
