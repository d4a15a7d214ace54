package middleware

import (
	"net/http"
	"strings"

	"elder-guardian-service/config"
	"elder-guardian-service/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

var jwtService services.InterfaceJWTService

// InitAuthMiddleware 初始化认证中间件
func InitAuthMiddleware(cfg *config.Config) {
	jwtService = services.NewJWTService(cfg)
}

// extractToken 从授权头中提取token
func extractToken(authHeader string) string {
	// 检查并移除 "Bearer " 前缀
	if len(authHeader) > 7 && strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[7:]
	}
	return authHeader
}

// authenticate 校验令牌并检查角色是否在允许范围内
func authenticate(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "Authorization header is required",
				"data":    nil,
			})
			c.Abort()
			return
		}

		// 提取token
		tokenString := extractToken(authHeader)
		token, err := jwtService.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "Invalid or expired token",
				"data":    nil,
			})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "Invalid token claims",
				"data":    nil,
			})
			c.Abort()
			return
		}

		role, _ := claims["role"].(string)
		allowed := false
		for _, allowedRole := range allowedRoles {
			if role == allowedRole {
				allowed = true
				break
			}
		}
		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{
				"code":    403,
				"message": "Insufficient permissions",
				"data":    nil,
			})
			c.Abort()
			return
		}

		// 存储claims到上下文
		if userID, ok := claims["user_id"].(float64); ok {
			c.Set("userID", uint(userID))
		}
		c.Set("role", role)
		c.Set("claims", claims)
		c.Next()
	}
}

// AuthenticateElderly 验证老人端权限
func AuthenticateElderly() gin.HandlerFunc {
	return authenticate(services.RoleElderly)
}

// AuthenticateGuardian 验证监护人端权限
func AuthenticateGuardian() gin.HandlerFunc {
	return authenticate(services.RoleGuardian)
}

// AuthenticateAdmin 验证系统管理员权限
func AuthenticateAdmin() gin.HandlerFunc {
	return authenticate(services.RoleAdmin)
}

// AuthenticateMonitor 历史查询对监护人和老人本人都开放，管理员也可访问
func AuthenticateMonitor() gin.HandlerFunc {
	return authenticate(services.RoleElderly, services.RoleGuardian, services.RoleAdmin)
}
