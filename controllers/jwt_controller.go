package controllers

import (
	"net/http"

	"elder-guardian-service/services"
	"elder-guardian-service/services/container"

	"github.com/gin-gonic/gin"
)

// InterfaceJWTController 定义认证控制器接口
type InterfaceJWTController interface {
	LoginElderly()
	LoginGuardian()
	LoginAdmin()
}

// JWTController 处理登录相关的请求
type JWTController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewJWTController 创建一个新的认证控制器
func NewJWTController(ctx *gin.Context, container *container.ServiceContainer) *JWTController {
	return &JWTController{
		Ctx:       ctx,
		Container: container,
	}
}

// PhoneLoginRequest 手机号登录请求
// 演示环境不校验短信验证码，手机号存在即登录成功
type PhoneLoginRequest struct {
	Phone string `json:"phone" binding:"required" example:"13800000001"`
	Code  string `json:"code" example:"123456"`
}

// AdminLoginRequest 管理员登录请求
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"admin123"`
}

// LoginElderly 老人端登录
// @Summary      老人端手机号登录
// @Description  按手机号查找老人账户并签发JWT令牌
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body PhoneLoginRequest true "登录参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /auth/login/elderly [post]
func (c *JWTController) LoginElderly() {
	var req PhoneLoginRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		Fail(c.Ctx, http.StatusBadRequest, "无效的请求参数")
		return
	}

	elderlyService := c.Container.GetService("elderly").(services.InterfaceElderlyService)
	elderly, err := elderlyService.GetElderlyByPhone(req.Phone)
	if err != nil {
		FailWithError(c.Ctx, err)
		return
	}

	jwtService := c.Container.GetService("jwt").(services.InterfaceJWTService)
	token, err := jwtService.GenerateToken(elderly.ID, services.RoleElderly)
	if err != nil {
		Fail(c.Ctx, http.StatusInternalServerError, "生成令牌失败")
		return
	}

	Success(c.Ctx, gin.H{
		"token": token,
		"user": gin.H{
			"id":              elderly.ID,
			"name":            elderly.Name,
			"phone":           elderly.Phone,
			"role":            services.RoleElderly,
			"emergency_phone": elderly.EmergencyPhone,
			"address":         elderly.Address,
			"avatar":          elderly.Avatar,
		},
	})
}

// LoginGuardian 监护人端登录
// @Summary      监护人手机号登录
// @Description  按手机号查找监护人账户并签发JWT令牌
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body PhoneLoginRequest true "登录参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /auth/login/guardian [post]
func (c *JWTController) LoginGuardian() {
	var req PhoneLoginRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		Fail(c.Ctx, http.StatusBadRequest, "无效的请求参数")
		return
	}

	guardianService := c.Container.GetService("guardian").(services.InterfaceGuardianService)
	guardian, err := guardianService.GetGuardianByPhone(req.Phone)
	if err != nil {
		FailWithError(c.Ctx, err)
		return
	}

	jwtService := c.Container.GetService("jwt").(services.InterfaceJWTService)
	token, err := jwtService.GenerateToken(guardian.ID, services.RoleGuardian)
	if err != nil {
		Fail(c.Ctx, http.StatusInternalServerError, "生成令牌失败")
		return
	}

	Success(c.Ctx, gin.H{
		"token": token,
		"user": gin.H{
			"id":     guardian.ID,
			"name":   guardian.Name,
			"phone":  guardian.Phone,
			"role":   services.RoleGuardian,
			"avatar": guardian.Avatar,
		},
	})
}

// LoginAdmin 管理员登录
// @Summary      管理员登录
// @Description  校验用户名密码并签发JWT令牌
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body AdminLoginRequest true "登录参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Router       /auth/login/admin [post]
func (c *JWTController) LoginAdmin() {
	var req AdminLoginRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		Fail(c.Ctx, http.StatusBadRequest, "无效的请求参数")
		return
	}

	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)
	admin, err := adminService.Authenticate(req.Username, req.Password)
	if err != nil {
		FailWithError(c.Ctx, err)
		return
	}

	jwtService := c.Container.GetService("jwt").(services.InterfaceJWTService)
	token, err := jwtService.GenerateToken(admin.ID, services.RoleAdmin)
	if err != nil {
		Fail(c.Ctx, http.StatusInternalServerError, "生成令牌失败")
		return
	}

	Success(c.Ctx, gin.H{
		"token": token,
		"user": gin.H{
			"id":       admin.ID,
			"username": admin.Username,
			"name":     admin.Name,
			"role":     services.RoleAdmin,
		},
	})
}

// HandleJWTFunc 返回一个处理认证请求的Gin处理函数
func HandleJWTFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewJWTController(ctx, container)

		switch method {
		case "loginElderly":
			controller.LoginElderly()
		case "loginGuardian":
			controller.LoginGuardian()
		case "loginAdmin":
			controller.LoginAdmin()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
