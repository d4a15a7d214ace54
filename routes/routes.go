package routes

import (
	"elder-guardian-service/config"
	"elder-guardian-service/controllers"
	"elder-guardian-service/middleware"
	"elder-guardian-service/services/container"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter 初始化并返回配置好的路由
func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// 初始化 Gin
	r := gin.Default()

	// 添加 CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})
	// 设置正确的Content-Type，确保UTF-8编码
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
		c.Next()
	})
	// 可选的Redis客户端，连接不上时容器会降级为不使用缓存
	var redisClient *redis.Client
	if cfg.RedisHost != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr: cfg.GetRedisAddr(),
			DB:   cfg.RedisDB,
		})
	}
	// 创建服务容器
	serviceContainer := container.NewServiceContainer(db, cfg, redisClient)
	// 初始化中间件
	middleware.InitAuthMiddleware(cfg)
	// 添加 Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册路由
	registerRoutes(r, serviceContainer)
	return r
}

// registerRoutes 配置所有API路由
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	// API 路由根路径
	api := r.Group("/api")
	// 注册公共路由
	registerPublicRoutes(api, container)
	// 注册老人端路由
	registerElderlyRoutes(api, container)
	// 注册监护人端路由
	registerGuardianRoutes(api, container)
	// 注册历史查询路由（老人、监护人、管理员均可访问）
	registerMonitorRoutes(api, container)
	// 注册管理后台路由
	registerAdminRoutes(api, container)
}

// registerPublicRoutes 注册公共路由
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 健康检查
	api.GET("/ping", controllers.Ping)

	// 认证路由
	api.POST("/auth/login/elderly", controllers.HandleJWTFunc(container, "loginElderly"))
	api.POST("/auth/login/guardian", controllers.HandleJWTFunc(container, "loginGuardian"))
	api.POST("/auth/login/admin", controllers.HandleJWTFunc(container, "loginAdmin"))
}

// registerElderlyRoutes 注册老人端路由
func registerElderlyRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	elderly := api.Group("/elderly")
	elderly.Use(middleware.AuthenticateElderly())

	elderly.GET("/profile", controllers.HandleElderlyAppFunc(container, "getProfile"))
	elderly.PUT("/profile", controllers.HandleElderlyAppFunc(container, "updateProfile"))
	elderly.GET("/guardians", controllers.HandleElderlyAppFunc(container, "getGuardians"))
	// 上报类接口限流，防止设备异常刷写
	elderly.POST("/status", middleware.RateLimitByIP(5, 10), controllers.HandleElderlyAppFunc(container, "reportStatus"))
	elderly.POST("/location", middleware.RateLimitByIP(5, 10), controllers.HandleElderlyAppFunc(container, "reportLocation"))
	elderly.POST("/sos", controllers.HandleElderlyAppFunc(container, "triggerSos"))
	elderly.POST("/bind", controllers.HandleElderlyAppFunc(container, "bindGuardian"))
	elderly.POST("/unbind", controllers.HandleElderlyAppFunc(container, "unbindGuardian"))
	elderly.POST("/update_relation", controllers.HandleElderlyAppFunc(container, "updateRelation"))
}

// registerGuardianRoutes 注册监护人端路由
func registerGuardianRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	guardian := api.Group("/guardian")
	guardian.Use(middleware.AuthenticateGuardian())

	guardian.GET("/elderly", controllers.HandleGuardianAppFunc(container, "getBoundElderly"))
	guardian.GET("/elderly/:id", controllers.HandleGuardianAppFunc(container, "getElderlyDetail"))
	guardian.GET("/alerts", controllers.HandleGuardianAppFunc(container, "getAlerts"))
	guardian.POST("/bind", controllers.HandleGuardianAppFunc(container, "bindElderly"))
	guardian.POST("/unbind", controllers.HandleGuardianAppFunc(container, "unbindElderly"))
	guardian.POST("/update_relation", controllers.HandleGuardianAppFunc(container, "updateRelation"))
}

// registerMonitorRoutes 注册历史查询路由
func registerMonitorRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	monitor := api.Group("/stats")
	monitor.Use(middleware.AuthenticateMonitor())

	monitor.GET("/history/:elderlyId", controllers.HandleStatsFunc(container, "getHistory"))
}

// registerAdminRoutes 注册管理后台路由
func registerAdminRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 添加认证中间件
	auth := api.Group("/")
	auth.Use(middleware.AuthenticateAdmin())

	// 老人档案路由
	auth.Group("/elderly-users").GET("", controllers.HandleElderlyFunc(container, "getElderlyList"))
	auth.Group("/elderly-users").GET("/:id", controllers.HandleElderlyFunc(container, "getElderly"))
	auth.Group("/elderly-users").POST("", controllers.HandleElderlyFunc(container, "createElderly"))
	auth.Group("/elderly-users").PUT("/:id", controllers.HandleElderlyFunc(container, "updateElderly"))
	auth.Group("/elderly-users").DELETE("/:id", controllers.HandleElderlyFunc(container, "deleteElderly"))

	// 监护人账户路由
	auth.Group("/guardians").GET("", controllers.HandleGuardianFunc(container, "getGuardianList"))
	auth.Group("/guardians").GET("/:id", controllers.HandleGuardianFunc(container, "getGuardian"))
	auth.Group("/guardians").POST("", controllers.HandleGuardianFunc(container, "createGuardian"))
	auth.Group("/guardians").PUT("/:id", controllers.HandleGuardianFunc(container, "updateGuardian"))
	auth.Group("/guardians").DELETE("/:id", controllers.HandleGuardianFunc(container, "deleteGuardian"))

	// 设备路由
	auth.Group("/devices").GET("", controllers.HandleDeviceFunc(container, "getDeviceList"))
	auth.Group("/devices").GET("/:id", controllers.HandleDeviceFunc(container, "getDevice"))
	auth.Group("/devices").POST("", controllers.HandleDeviceFunc(container, "createDevice"))
	auth.Group("/devices").PUT("/:id", controllers.HandleDeviceFunc(container, "updateDevice"))
	auth.Group("/devices").DELETE("/:id", controllers.HandleDeviceFunc(container, "deleteDevice"))
	auth.Group("/devices").POST("/:id/assign", controllers.HandleDeviceFunc(container, "assignDevice"))
	auth.Group("/devices").POST("/:id/report", middleware.RateLimitByIP(5, 10), controllers.HandleDeviceFunc(container, "reportStatus"))

	// 监护关系路由
	auth.Group("/guardian-relations").GET("", controllers.HandleRelationFunc(container, "getRelationList"))
	auth.Group("/guardian-relations").POST("", controllers.HandleRelationFunc(container, "createRelation"))
	auth.Group("/guardian-relations").DELETE("/:id", controllers.HandleRelationFunc(container, "deleteRelation"))

	// 报警记录路由
	auth.Group("/alerts").GET("", controllers.HandleAlertFunc(container, "getAlertList"))
	auth.Group("/alerts").GET("/:id", controllers.HandleAlertFunc(container, "getAlert"))
	auth.Group("/alerts").PUT("/:id", controllers.HandleAlertFunc(container, "updateAlertStatus"))

	// 仪表盘统计路由
	auth.Group("/stats").GET("/dashboard", controllers.HandleStatsFunc(container, "getDashboard"))
	auth.Group("/stats").GET("/statuses", controllers.HandleStatsFunc(container, "getAllStatuses"))
}
