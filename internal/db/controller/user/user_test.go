package user

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sciencemesh/sciencemesh-admin/internal/db/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	require.NoError(t, db.AutoMigrate(&models.User{}), "failed to migrate test database")

	return db
}

func TestCreate(t *testing.T) {
	db := setupTestDB(t)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		username      string
		password      string
		admin         bool
		expectedError error
	}{
		{name: "nil database", dbParam: nil, username: "a", password: "p", expectedError: ErrDBNil},
		{name: "empty username", dbParam: db, username: "", password: "p", expectedError: ErrUsernameEmpty},
		{name: "empty password", dbParam: db, username: "a", password: "", expectedError: ErrPasswordEmpty},
		{name: "admin", dbParam: db, username: "admin", password: "secret", admin: true},
		{name: "duplicate", dbParam: db, username: "admin", password: "other", expectedError: ErrUserAlreadyExists},
		{name: "plain user", dbParam: db, username: "alice", password: "wonderland"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			u, err := Create(tc.dbParam, tc.username, tc.password, tc.admin)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, u)

				return
			}

			require.NoError(t, err)
			assert.NotZero(t, u.ID)
			assert.True(t, u.Active)
			assert.Equal(t, tc.admin, u.Admin)
			assert.NotEqual(t, tc.password, u.Password)
			assert.True(t, u.VerifyPassword(tc.password))
			assert.False(t, u.VerifyPassword(tc.password+"x"))
		})
	}
}

func TestGetByUsername(t *testing.T) {
	db := setupTestDB(t)

	_, err := Create(db, "bob", "builder", false)
	require.NoError(t, err)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		username      string
		expectedError error
	}{
		{name: "nil database", dbParam: nil, username: "bob", expectedError: ErrDBNil},
		{name: "empty username", dbParam: db, username: "", expectedError: ErrUsernameEmpty},
		{name: "not found", dbParam: db, username: "nobody", expectedError: ErrUserNotFound},
		{name: "found", dbParam: db, username: "bob"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			u, err := GetByUsername(tc.dbParam, tc.username)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, u)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.username, u.Username)
		})
	}
}

func TestCount(t *testing.T) {
	db := setupTestDB(t)

	_, err := Count(nil)
	require.ErrorIs(t, err, ErrDBNil)

	count, err := Count(db)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = Create(db, "carol", "pw", false)
	require.NoError(t, err)

	count, err = Count(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
