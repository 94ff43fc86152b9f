package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/allinone/manager/internal/model"
	appErr "github.com/allinone/manager/internal/pkg/errors"
	"github.com/allinone/manager/internal/repo"
)

func TestAppRepoCreateDuplicateSlug(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO apps").
		WillReturnError(&pq.Error{Code: "23505"})

	apps := repo.NewAppRepo(db)
	err = apps.Create(context.Background(), &model.App{Name: "Billing", Slug: "billing"})
	require.ErrorIs(t, err, appErr.ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAppRepoGetByIDNullOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "slug", "description", "owner_id", "meta", "created_at", "updated_at"}).
		AddRow(int64(1), "Billing", "billing", "", nil, []byte(`{"tier":"gold"}`), now, now)
	mock.ExpectQuery("SELECT (.+) FROM apps WHERE").WillReturnRows(rows)

	apps := repo.NewAppRepo(db)
	app, err := apps.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.Nil(t, app.OwnerID)
	require.JSONEq(t, `{"tier":"gold"}`, string(app.Meta))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAppRepoUpdateRefreshesUpdatedAt(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE apps SET (.+)updated_at=\$`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	apps := repo.NewAppRepo(db)
	err = apps.UpdateFields(context.Background(), 1, map[string]interface{}{"name": "Billing v2"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAppRepoDeleteMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM apps WHERE").
		WillReturnResult(sqlmock.NewResult(0, 0))

	apps := repo.NewAppRepo(db)
	require.ErrorIs(t, apps.Delete(context.Background(), 42), appErr.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
