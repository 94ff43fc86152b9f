package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/allinone/manager/internal/model"
	appErr "github.com/allinone/manager/internal/pkg/errors"
	"github.com/allinone/manager/internal/repo"
)

var notificationCols = []string{"id", "title", "message", "type", "priority", "user_id", "read", "read_at", "meta", "created_at"}

func TestNotificationRepoCreateDefaultsMeta(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("INSERT INTO notifications").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), now))

	notifications := repo.NewNotificationRepo(db)
	n := &model.Notification{Title: "Disk almost full", Type: "warning"}
	require.NoError(t, notifications.Create(context.Background(), n))
	require.Equal(t, int64(1), n.ID)
	require.JSONEq(t, "{}", string(n.Meta))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepoListUnreadForUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(notificationCols).
		AddRow(int64(3), "Hello", "", "info", 0, "jan.kowalski", false, nil, []byte("{}"), now)
	mock.ExpectQuery("SELECT (.+) FROM notifications WHERE").WillReturnRows(rows)

	notifications := repo.NewNotificationRepo(db)
	list, err := notifications.List(context.Background(), repo.NotificationFilter{UserID: "jan.kowalski", UnreadOnly: true})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.False(t, list[0].Read)
	require.Nil(t, list[0].ReadAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepoMarkReadMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE notifications SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	notifications := repo.NewNotificationRepo(db)
	err = notifications.MarkRead(context.Background(), 5, time.Now())
	require.ErrorIs(t, err, appErr.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepoMarkAllRead(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE notifications SET").
		WillReturnResult(sqlmock.NewResult(0, 4))

	notifications := repo.NewNotificationRepo(db)
	updated, err := notifications.MarkAllRead(context.Background(), "", time.Now())
	require.NoError(t, err)
	require.Equal(t, int64(4), updated)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepoDeleteReadBefore(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM notifications WHERE").
		WillReturnResult(sqlmock.NewResult(0, 2))

	notifications := repo.NewNotificationRepo(db)
	deleted, err := notifications.DeleteReadBefore(context.Background(), time.Now().AddDate(0, 0, -30))
	require.NoError(t, err)
	require.Equal(t, int64(2), deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}
