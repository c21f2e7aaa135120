package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"github.com/productify/productify/internal/user/domain"
	"github.com/productify/productify/internal/user/repository"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	dbConn, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(&domain.User{}))

	svc := New(Params{
		DB:   dbConn,
		Log:  zaptest.NewLogger(t),
		Repo: repository.Provide(),
	})
	return svc, dbConn
}

func TestGetProfileKnownUser(t *testing.T) {
	svc, dbConn := newTestService(t)

	err := dbConn.Exec(
		`INSERT INTO users (id, name, email, image_url) VALUES (?, ?, ?, ?)`,
		"user-1", "Alice", "alice@example.com", "http://localhost/uploads/avatar.png",
	).Error
	require.NoError(t, err)

	profile, err := svc.GetProfile(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "Alice", profile.Name)
	assert.Equal(t, "http://localhost/uploads/avatar.png", profile.ImageURL)
}

func TestGetProfileAbsentUserIsNilNotError(t *testing.T) {
	svc, _ := newTestService(t)

	profile, err := svc.GetProfile(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, profile)
}
