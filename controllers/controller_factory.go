package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"elder-guardian-service/services"
	"elder-guardian-service/services/container"

	"github.com/gin-gonic/gin"
)

// BaseController 是所有控制器的基础接口
type BaseController interface {
	// 获取服务容器
	GetContainer() *container.ServiceContainer
	// 获取Gin上下文
	GetContext() *gin.Context
}

// BaseControllerImpl 是控制器的基础实现
type BaseControllerImpl struct {
	Container *container.ServiceContainer
	Context   *gin.Context
}

// GetContainer 实现 BaseController 接口
func (c *BaseControllerImpl) GetContainer() *container.ServiceContainer {
	return c.Container
}

// GetContext 实现 BaseController 接口
func (c *BaseControllerImpl) GetContext() *gin.Context {
	return c.Context
}

// ErrorResponse 错误响应体（swagger文档用）
type ErrorResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Success 统一成功响应
func Success(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data":    data,
	})
}

// Fail 统一失败响应
func Fail(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{
		"code":    status,
		"message": message,
		"data":    nil,
	})
}

// FailWithError 把业务错误映射为HTTP状态码
func FailWithError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrElderlyNotFound),
		errors.Is(err, services.ErrGuardianNotFound),
		errors.Is(err, services.ErrDeviceNotFound),
		errors.Is(err, services.ErrAlertNotFound),
		errors.Is(err, services.ErrRelationNotFound),
		errors.Is(err, services.ErrAdminNotFound),
		errors.Is(err, services.ErrPhoneNotRegistered):
		Fail(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrAlreadyBound),
		errors.Is(err, services.ErrPhoneAlreadyUsed),
		errors.Is(err, services.ErrSerialAlreadyUsed),
		errors.Is(err, services.ErrInvalidTransition):
		Fail(ctx, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrPasswordIncorrect):
		Fail(ctx, http.StatusUnauthorized, err.Error())
	default:
		Fail(ctx, http.StatusInternalServerError, err.Error())
	}
}

// CurrentUserID 从上下文中取当前登录用户ID（认证中间件写入）
func CurrentUserID(ctx *gin.Context) (uint, bool) {
	value, exists := ctx.Get("userID")
	if !exists {
		return 0, false
	}
	userID, ok := value.(uint)
	return userID, ok
}

// ParseIDParam 解析路径中的数字ID参数
func ParseIDParam(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		Fail(ctx, http.StatusBadRequest, "无效的ID参数")
		return 0, false
	}
	return uint(id), true
}

// ParsePagination 解析分页参数
func ParsePagination(ctx *gin.Context) (int, int) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return page, pageSize
}
