package service

import (
	"testing"

	"go-pos-sync/internal/model"
	"go-pos-sync/internal/repository"
	"go-pos-sync/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, db *gorm.DB, active bool) *model.User {
	t.Helper()
	u := &model.User{
		UserName:    "kasir1",
		FullName:    "Kasir Satu",
		Role:        "cashier",
		WarehouseID: "WH-01",
		IsActive:    active,
	}
	require.NoError(t, u.SetPassword("rahasia123"))
	markSynced(&u.SyncMeta)
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, true)
	svc := NewAuthService(repository.NewUserRepo(db))

	res, err := svc.Login("kasir1", "rahasia123")
	require.NoError(t, err)

	assert.Equal(t, "kasir1", res.User.UserName)
	assert.Equal(t, "cashier", res.User.Role)
	assert.Equal(t, "WH-01", res.User.WarehouseID)

	claims, err := jwt.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "kasir1", claims.UserName)
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, true)
	svc := NewAuthService(repository.NewUserRepo(db))

	_, err := svc.Login("kasir1", "salah")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(repository.NewUserRepo(db))

	_, err := svc.Login("hantu", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, false)
	svc := NewAuthService(repository.NewUserRepo(db))

	// the inactive state must survive the insert; a column default must not
	// overwrite it
	var persisted model.User
	require.NoError(t, db.First(&persisted, "username = ?", "kasir1").Error)
	require.False(t, persisted.IsActive)

	_, err := svc.Login("kasir1", "rahasia123")
	assert.ErrorIs(t, err, ErrUserInactive)
}
