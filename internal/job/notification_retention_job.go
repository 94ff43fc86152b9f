package job

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/allinone/manager/internal/service"
)

// NotificationRetentionJob purges read notifications older than the
// configured number of days.
type NotificationRetentionJob struct {
	notifications *service.NotificationService
	retentionDays int
}

func NewNotificationRetentionJob(notifications *service.NotificationService, retentionDays int) *NotificationRetentionJob {
	return &NotificationRetentionJob{notifications: notifications, retentionDays: retentionDays}
}

func (j *NotificationRetentionJob) Name() string {
	return "notification_retention"
}

func (j *NotificationRetentionJob) Run(ctx context.Context) error {
	deleted, err := j.notifications.PurgeRead(ctx, j.retentionDays)
	if err != nil {
		return err
	}
	if deleted > 0 {
		logutil.GetLogger(ctx).Info("purged read notifications", zap.Int64("deleted", deleted))
	}
	return nil
}
