package db_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/allinone/manager/internal/db"
)

func TestSeedAdminCreatesMissingAccount(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("admin@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("INSERT INTO users").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, db.SeedAdmin(context.Background(), conn, "admin@example.com", "change-me"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedAdminSkipsExistingAccount(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("admin@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	require.NoError(t, db.SeedAdmin(context.Background(), conn, "admin@example.com", "change-me"))
	require.NoError(t, mock.ExpectationsWereMet())
}
