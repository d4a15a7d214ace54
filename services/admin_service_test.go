package services

import (
	"testing"

	"elder-guardian-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDefaultAdminCreatesOnce(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAdminService(db, testConfig())

	require.NoError(t, svc.EnsureDefaultAdmin())

	var count int64
	require.NoError(t, db.Model(&models.Admin{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// 再次调用不重复创建
	require.NoError(t, svc.EnsureDefaultAdmin())
	require.NoError(t, db.Model(&models.Admin{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAuthenticateDefaultAdmin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAdminService(db, testConfig())

	require.NoError(t, svc.EnsureDefaultAdmin())

	admin, err := svc.Authenticate("admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.Username)
	assert.Equal(t, "系统管理员", admin.Name)
	// 密码入库时被哈希，不是明文
	assert.NotEqual(t, "admin123", admin.Password)

	_, err = svc.Authenticate("admin", "wrong-password")
	assert.ErrorIs(t, err, ErrPasswordIncorrect)

	_, err = svc.Authenticate("nobody", "admin123")
	assert.ErrorIs(t, err, ErrAdminNotFound)
}

func TestAdminPasswordHashedExactlyOnce(t *testing.T) {
	db := setupTestDB(t)

	admin := &models.Admin{Username: "ops", Password: "secret123", Name: "运维"}
	require.NoError(t, db.Create(admin).Error)
	assert.True(t, models.CheckPasswordHash("secret123", admin.Password))

	// 更新其他字段时已哈希的密码不被二次哈希
	require.NoError(t, db.Model(admin).Update("name", "运维二号").Error)

	var reloaded models.Admin
	require.NoError(t, db.First(&reloaded, admin.ID).Error)
	assert.True(t, models.CheckPasswordHash("secret123", reloaded.Password))
}
