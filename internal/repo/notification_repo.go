package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/didi/gendry/builder"

	"github.com/allinone/manager/internal/model"
	"github.com/allinone/manager/internal/pkg/dbutil"
	appErr "github.com/allinone/manager/internal/pkg/errors"
)

var notificationColumns = []string{"id", "title", "message", "type", "priority", "user_id", "read", "read_at", "meta", "created_at"}

type NotificationFilter struct {
	UserID     string
	UnreadOnly bool
}

type NotificationRepo struct {
	db *sql.DB
}

func NewNotificationRepo(db *sql.DB) *NotificationRepo {
	return &NotificationRepo{db: db}
}

func scanNotification(rows *sql.Rows) (*model.Notification, error) {
	var n model.Notification
	var meta []byte
	if err := rows.Scan(&n.ID, &n.Title, &n.Message, &n.Type, &n.Priority, &n.UserID, &n.Read, &n.ReadAt, &meta, &n.CreatedAt); err != nil {
		return nil, err
	}
	n.Meta = json.RawMessage(meta)
	return &n, nil
}

func (r *NotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	meta := n.Meta
	if len(meta) == 0 {
		meta = json.RawMessage("{}")
		n.Meta = meta
	}
	data := map[string]interface{}{
		"title":    n.Title,
		"message":  n.Message,
		"type":     n.Type,
		"priority": n.Priority,
		"user_id":  n.UserID,
		"read":     n.Read,
		"meta":     string(meta),
	}
	sqlStr, args, err := builder.BuildInsert("notifications", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	sqlStr += " RETURNING id, created_at"
	return r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&n.ID, &n.CreatedAt)
}

func (r *NotificationRepo) List(ctx context.Context, filter NotificationFilter) ([]model.Notification, error) {
	where := map[string]interface{}{"_orderby": "id desc"}
	if filter.UserID != "" {
		where["user_id"] = filter.UserID
	}
	if filter.UnreadOnly {
		where["read"] = false
	}
	sqlStr, args, err := builder.BuildSelect("notifications", where, notificationColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *n)
	}
	return items, rows.Err()
}

func (r *NotificationRepo) GetByID(ctx context.Context, id int64) (*model.Notification, error) {
	sqlStr, args, err := builder.BuildSelect("notifications", map[string]interface{}{"id": id}, notificationColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, appErr.ErrNotFound
	}
	return scanNotification(rows)
}

func (r *NotificationRepo) MarkRead(ctx context.Context, id int64, at time.Time) error {
	where := map[string]interface{}{"id": id}
	update := map[string]interface{}{"read": true, "read_at": at}
	sqlStr, args, err := builder.BuildUpdate("notifications", where, update)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

// MarkAllRead flips every unread row, optionally scoped to one recipient,
// and returns how many rows changed. Zero matches is not an error.
func (r *NotificationRepo) MarkAllRead(ctx context.Context, userID string, at time.Time) (int64, error) {
	where := map[string]interface{}{"read": false}
	if userID != "" {
		where["user_id"] = userID
	}
	update := map[string]interface{}{"read": true, "read_at": at}
	sqlStr, args, err := builder.BuildUpdate("notifications", where, update)
	if err != nil {
		return 0, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *NotificationRepo) Delete(ctx context.Context, id int64) error {
	sqlStr, args, err := builder.BuildDelete("notifications", map[string]interface{}{"id": id})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

// DeleteReadBefore purges read notifications older than the cutoff. Used by
// the retention job.
func (r *NotificationRepo) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	where := map[string]interface{}{
		"read":          true,
		"created_at <": cutoff,
	}
	sqlStr, args, err := builder.BuildDelete("notifications", where)
	if err != nil {
		return 0, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
