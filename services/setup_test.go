package services

import (
	"testing"
	"time"

	"elder-guardian-service/config"
	"elder-guardian-service/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB 创建内存SQLite数据库并迁移所有模型
// 连接数限制为1，避免多连接各自拿到独立的内存库
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Admin{},
		&models.ElderlyUser{},
		&models.GuardianUser{},
		&models.GuardianElderlyRelation{},
		&models.MonitoringDevice{},
		&models.ActivityRecord{},
		&models.LocationRecord{},
		&models.AlertRecord{},
	))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecretKey:         "test-secret-key",
		DefaultAdminPassword: "admin123",
		LowBatteryThreshold:  20,
	}
}

func createTestElderly(t *testing.T, db *gorm.DB, name, phone string) *models.ElderlyUser {
	t.Helper()
	elderly := &models.ElderlyUser{
		Name:         name,
		Phone:        phone,
		HealthStatus: models.HealthStatusGood,
	}
	require.NoError(t, db.Create(elderly).Error)
	return elderly
}

func createTestGuardian(t *testing.T, db *gorm.DB, name, phone string) *models.GuardianUser {
	t.Helper()
	guardian := &models.GuardianUser{
		Name:  name,
		Phone: phone,
	}
	require.NoError(t, db.Create(guardian).Error)
	return guardian
}

func createTestDevice(t *testing.T, db *gorm.DB, serial string, elderlyID *uint) *models.MonitoringDevice {
	t.Helper()
	device := &models.MonitoringDevice{
		SerialNumber: serial,
		Name:         "测试手环",
		ElderlyID:    elderlyID,
		BatteryLevel: 100,
		Status:       models.DeviceStatusNormal,
	}
	if elderlyID != nil {
		now := time.Now()
		device.BindTime = &now
	}
	require.NoError(t, db.Create(device).Error)
	return device
}
