package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/exercise-tracker/internal/models"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestUserReadRepository_GetByID_Mock(t *testing.T) {
	id := models.NewUserID()
	createdAt := time.Date(2023, 1, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		setup     func(mock sqlmock.Sqlmock)
		wantUser  bool
		wantErr   bool
		wantCount int
	}{
		{
			name: "found with logs",
			setup: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"user_id", "username", "logs", "created_at"}).
					AddRow(id, "alice", []byte(`[{"description":"run","duration":30,"date":"2023-01-15"}]`), createdAt)
				mock.ExpectQuery(`FROM users\s+WHERE user_id = \$1`).WithArgs(id).WillReturnRows(rows)
			},
			wantUser:  true,
			wantCount: 1,
		},
		{
			name: "not found",
			setup: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"user_id", "username", "logs", "created_at"})
				mock.ExpectQuery(`FROM users\s+WHERE user_id = \$1`).WithArgs(id).WillReturnRows(rows)
			},
		},
		{
			name: "query error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM users\s+WHERE user_id = \$1`).WithArgs(id).WillReturnError(errors.New("connection reset"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			tt.setup(mock)

			user, err := NewUserReadRepository(db).GetByID(context.Background(), id)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
			}
			if tt.wantUser {
				require.NotNil(t, user)
				assert.Equal(t, "alice", user.Username)
				require.Len(t, user.Logs, tt.wantCount)
				assert.Equal(t, "run", user.Logs[0].Description)
				assert.Equal(t, 30.0, user.Logs[0].Duration)
				assert.Equal(t, "2023-01-15", user.Logs[0].Date.String())
			} else {
				assert.Nil(t, user)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserWriteRepository_Save_Mock(t *testing.T) {
	id := models.NewUserID()

	t.Run("success", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec("INSERT INTO users").WithArgs(id, "alice", "[]").WillReturnResult(sqlmock.NewResult(0, 1))

		err := NewUserWriteRepository(db).Save(context.Background(), id, "alice")
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec("INSERT INTO users").WithArgs(id, "alice", "[]").
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

		err := NewUserWriteRepository(db).Save(context.Background(), id, "alice")
		assert.ErrorIs(t, err, models.ErrUsernameTaken)
	})

	t.Run("other error", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec("INSERT INTO users").WithArgs(id, "alice", "[]").WillReturnError(errors.New("disk full"))

		err := NewUserWriteRepository(db).Save(context.Background(), id, "alice")
		assert.EqualError(t, err, "disk full")
	})
}

func TestUserReadRepository_List_Mock(t *testing.T) {
	db, mock := newMockDB(t)
	rows := sqlmock.NewRows([]string{"user_id", "username", "created_at"}).
		AddRow(models.NewUserID(), "alice", time.Now()).
		AddRow(models.NewUserID(), "bob", time.Now())
	mock.ExpectQuery(`ORDER BY created_at`).WillReturnRows(rows)

	users, err := NewUserReadRepository(db).List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)
}

func TestUserRepositories_Postgres(t *testing.T) {
	db, teardown := setupPostgres(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db)
	readRepo := NewUserReadRepository(db)
	ctx := context.Background()

	aliceID := models.NewUserID()
	bobID := models.NewUserID()
	require.NoError(t, writeRepo.Save(ctx, aliceID, "alice"))
	require.NoError(t, writeRepo.Save(ctx, bobID, "bob"))

	t.Run("GetByID", func(t *testing.T) {
		user, err := readRepo.GetByID(ctx, aliceID)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, aliceID, user.UserID)
		assert.Equal(t, "alice", user.Username)
		assert.Empty(t, user.Logs)
	})

	t.Run("GetByUsername", func(t *testing.T) {
		user, err := readRepo.GetByUsername(ctx, "bob")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, bobID, user.UserID)
	})

	t.Run("NotFound", func(t *testing.T) {
		user, err := readRepo.GetByID(ctx, models.NewUserID())
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		err := writeRepo.Save(ctx, models.NewUserID(), "alice")
		assert.ErrorIs(t, err, models.ErrUsernameTaken)
	})

	t.Run("List", func(t *testing.T) {
		users, err := readRepo.List(ctx)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "alice", users[0].Username)
		assert.Equal(t, "bob", users[1].Username)
	})
}
