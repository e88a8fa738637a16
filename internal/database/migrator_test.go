package database

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withFastRetries(t *testing.T, retries int) {
	t.Helper()
	originalRetries, originalInterval := maxRetries, retryInterval
	maxRetries = retries
	retryInterval = 10 * time.Millisecond
	t.Cleanup(func() {
		maxRetries = originalRetries
		retryInterval = originalInterval
	})
}

func TestNewMigrationRunner_DefaultPath(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, defaultMigrationsPath, NewMigrationRunner(db, "").migrationsPath)
	assert.Equal(t, "/srv/migrations", NewMigrationRunner(db, "/srv/migrations").migrationsPath)
}

func TestWaitForDatabase_FailureThenSuccess(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	withFastRetries(t, 3)

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectPing().WillReturnError(nil)

	err = NewMigrationRunner(db, "").WaitForDatabase()

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWaitForDatabase_AlwaysFails(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	withFastRetries(t, 2)

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	err = NewMigrationRunner(db, "").WaitForDatabase()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "database not ready after 2 attempts")
}

func TestUp_MissingDirectoryIsSkipped(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	assert.NoError(t, NewMigrationRunner(db, "/nonexistent/migrations").Up())
}

func TestStatusAndDown_MissingDirectory(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	runner := NewMigrationRunner(db, "/nonexistent/migrations")

	_, _, err = runner.Status()
	assert.ErrorIs(t, err, ErrMigrationsNotFound)

	assert.ErrorIs(t, runner.Down(1), ErrMigrationsNotFound)
	assert.NoError(t, runner.Down(0))
}

func TestRunMigrationsIfEnabled(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()

		assert.NoError(t, RunMigrationsIfEnabled(db, false, ""))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database never ready", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()
		withFastRetries(t, 2)

		mock.ExpectPing().WillReturnError(errors.New("connection refused"))
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))

		err = RunMigrationsIfEnabled(db, true, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database readiness check failed")
	})
}
