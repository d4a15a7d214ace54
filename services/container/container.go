package container

import (
	"context"
	"log"
	"sync"
	"time"

	"elder-guardian-service/config"
	"elder-guardian-service/services"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// ServiceContainer 管理所有服务的依赖注入
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config
	redis  *redis.Client

	// 基础服务
	jwtService   services.InterfaceJWTService
	redisService services.InterfaceRedisService

	// 业务服务
	elderlyService  services.InterfaceElderlyService
	guardianService services.InterfaceGuardianService
	relationService services.InterfaceRelationService
	deviceService   services.InterfaceDeviceService
	activityService services.InterfaceActivityService
	alertService    services.InterfaceAlertService
	statsService    services.InterfaceStatsService
	adminService    services.InterfaceAdminService
	seedService     services.InterfaceSeedService

	mu sync.RWMutex
}

// NewServiceContainer 创建新的服务容器
func NewServiceContainer(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *ServiceContainer {
	if db == nil {
		panic("数据库连接为空")
	}

	if cfg == nil {
		panic("配置为空")
	}

	// 测试Redis连接
	if redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("Redis连接测试失败: %v，将不使用Redis缓存", err)
			redisClient = nil
		}
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
		redis:  redisClient,
	}
	container.initializeServices()
	return container
}

// initializeServices 初始化所有服务
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 初始化基础服务
	c.jwtService = services.NewJWTService(c.config)
	if c.redis != nil {
		c.redisService = services.NewRedisServiceWithClient(c.redis)
	}

	// 初始化业务服务，注意依赖顺序：报警依赖活动流水，设备和统计依赖报警
	c.elderlyService = services.NewElderlyService(c.db, c.config)
	c.guardianService = services.NewGuardianService(c.db, c.config)
	c.relationService = services.NewRelationService(c.db, c.config)
	c.activityService = services.NewActivityService(c.db, c.config)
	c.alertService = services.NewAlertService(c.db, c.config, c.activityService, c.redisService)
	c.deviceService = services.NewDeviceService(c.db, c.config, c.alertService)
	c.statsService = services.NewStatsService(c.db, c.config, c.activityService, c.alertService, c.redisService)
	c.adminService = services.NewAdminService(c.db, c.config)
	c.seedService = services.NewSeedService(c.db, c.config)
}

// GetService 获取指定名称的服务
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "jwt":
		return c.jwtService
	case "redis":
		return c.redisService
	case "elderly":
		return c.elderlyService
	case "guardian":
		return c.guardianService
	case "relation":
		return c.relationService
	case "device":
		return c.deviceService
	case "activity":
		return c.activityService
	case "alert":
		return c.alertService
	case "stats":
		return c.statsService
	case "admin":
		return c.adminService
	case "seed":
		return c.seedService
	default:
		return nil
	}
}

// GetDB 获取数据库连接
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}

// GetConfig 获取配置
func (c *ServiceContainer) GetConfig() *config.Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}
