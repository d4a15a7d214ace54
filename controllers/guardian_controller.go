package controllers

import (
	"net/http"

	"elder-guardian-service/models"
	"elder-guardian-service/services"
	"elder-guardian-service/services/container"

	"github.com/gin-gonic/gin"
)

// InterfaceGuardianController 定义监护人账户控制器接口（管理后台）
type InterfaceGuardianController interface {
	GetGuardianList()
	GetGuardian()
	CreateGuardian()
	UpdateGuardian()
	DeleteGuardian()
}

// GuardianController 处理监护人账户的管理请求
type GuardianController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewGuardianController 创建一个新的监护人账户控制器
func NewGuardianController(ctx *gin.Context, container *container.ServiceContainer) *GuardianController {
	return &GuardianController{
		Ctx:       ctx,
		Container: container,
	}
}

// GuardianRequest 表示创建监护人请求
type GuardianRequest struct {
	Name   string `json:"name" binding:"required" example:"张晓明"`
	Phone  string `json:"phone" binding:"required" example:"13900000001"`
	Avatar string `json:"avatar"`
}

// UpdateGuardianRequest 表示更新监护人请求
type UpdateGuardianRequest struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Avatar string `json:"avatar"`
}

// GetGuardianList 获取所有监护人账户
// @Summary      获取监护人列表
// @Description  分页获取系统中所有监护人账户
// @Tags         Guardian
// @Produce      json
// @Param        page query int false "页码，默认为1"
// @Param        page_size query int false "每页条数，默认为10"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /guardians [get]
func (c *GuardianController) GetGuardianList() {
	page, pageSize := ParsePagination(c.Ctx)

	guardianService := c.Container.GetService("guardian").(services.InterfaceGuardianService)
	guardians, total, err := guardianService.GetAllGuardians(page, pageSize)
	if err != nil {
		Fail(c.Ctx, http.StatusInternalServerError, "获取监护人列表失败")
		return
	}

	Success(c.Ctx, gin.H{
		"pagination": models.NewPaginationResult(int(total), page, pageSize),
		"data":       guardians,
	})
}

// GetGuardian 获取单个监护人账户
// @Summary      获取监护人详情
// @Tags         Guardian
// @Produce      json
// @Param        id path int true "监护人ID"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /guardians/{id} [get]
func (c *GuardianController) GetGuardian() {
	id, ok := ParseIDParam(c.Ctx, "id")
	if !ok {
		return
	}

	guardianService := c.Container.GetService("guardian").(services.InterfaceGuardianService)
	guardian, err := guardianService.GetGuardianByID(id)
	if err != nil {
		FailWithError(c.Ctx, err)
		return
	}

	Success(c.Ctx, guardian)
}

// CreateGuardian 创建监护人账户
// @Summary      创建监护人账户
// @Description  创建新的监护人账户，手机号必须唯一
// @Tags         Guardian
// @Accept       json
// @Produce      json
// @Param        request body GuardianRequest true "监护人信息"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /guardians [post]
func (c *GuardianController) CreateGuardian() {
	var req GuardianRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		Fail(c.Ctx, http.StatusBadRequest, "无效的请求参数")
		return
	}

	guardian := &models.GuardianUser{
		Name:   req.Name,
		Phone:  req.Phone,
		Avatar: req.Avatar,
	}

	guardianService := c.Container.GetService("guardian").(services.InterfaceGuardianService)
	if err := guardianService.CreateGuardian(guardian); err != nil {
		FailWithError(c.Ctx, err)
		return
	}

	Success(c.Ctx, guardian)
}

// UpdateGuardian 更新监护人账户
// @Summary      更新监护人账户
// @Tags         Guardian
// @Accept       json
// @Produce      json
// @Param        id path int true "监护人ID"
// @Param        request body UpdateGuardianRequest true "更新字段"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /guardians/{id} [put]
func (c *GuardianController) UpdateGuardian() {
	id, ok := ParseIDParam(c.Ctx, "id")
	if !ok {
		return
	}

	var req UpdateGuardianRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		Fail(c.Ctx, http.StatusBadRequest, "无效的请求参数")
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.Avatar != "" {
		updates["avatar"] = req.Avatar
	}

	guardianService := c.Container.GetService("guardian").(services.InterfaceGuardianService)
	guardian, err := guardianService.UpdateGuardian(id, updates)
	if err != nil {
		FailWithError(c.Ctx, err)
		return
	}

	Success(c.Ctx, guardian)
}

// DeleteGuardian 删除监护人账户
// @Summary      删除监护人账户
// @Description  删除监护人账户并级联删除其监护关系
// @Tags         Guardian
// @Produce      json
// @Param        id path int true "监护人ID"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /guardians/{id} [delete]
func (c *GuardianController) DeleteGuardian() {
	id, ok := ParseIDParam(c.Ctx, "id")
	if !ok {
		return
	}

	guardianService := c.Container.GetService("guardian").(services.InterfaceGuardianService)
	if err := guardianService.DeleteGuardian(id); err != nil {
		FailWithError(c.Ctx, err)
		return
	}

	Success(c.Ctx, nil)
}

// HandleGuardianFunc 返回一个处理监护人账户管理请求的Gin处理函数
func HandleGuardianFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewGuardianController(ctx, container)

		switch method {
		case "getGuardianList":
			controller.GetGuardianList()
		case "getGuardian":
			controller.GetGuardian()
		case "createGuardian":
			controller.CreateGuardian()
		case "updateGuardian":
			controller.UpdateGuardian()
		case "deleteGuardian":
			controller.DeleteGuardian()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
