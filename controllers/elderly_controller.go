package controllers

import (
	"net/http"

	"elder-guardian-service/models"
	"elder-guardian-service/services"
	"elder-guardian-service/services/container"

	"github.com/gin-gonic/gin"
)

// InterfaceElderlyController 定义老人档案控制器接口（管理后台）
type InterfaceElderlyController interface {
	GetElderlyList()
	GetElderly()
	CreateElderly()
	UpdateElderly()
	DeleteElderly()
}

// ElderlyController 处理老人档案的管理请求
type ElderlyController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewElderlyController 创建一个新的老人档案控制器
func NewElderlyController(ctx *gin.Context, container *container.ServiceContainer) *ElderlyController {
	return &ElderlyController{
		Ctx:       ctx,
		Container: container,
	}
}

// ElderlyRequest 表示创建老人档案请求
type ElderlyRequest struct {
	Name           string  `json:"name" binding:"required" example:"张建国"`
	Gender         string  `json:"gender" example:"男"`
	Phone          string  `json:"phone" binding:"required" example:"13800000001"`
	EmergencyPhone string  `json:"emergency_phone" example:"13900000001"`
	Address        string  `json:"address" example:"北京市朝阳区幸福路12号"`
	HealthStatus   int     `json:"health_status" example:"1"`
	Height         float64 `json:"height" example:"172"`
	Weight         float64 `json:"weight" example:"65"`
	Avatar         string  `json:"avatar"`
}

// UpdateElderlyRequest 表示更新老人档案请求
type UpdateElderlyRequest struct {
	Name           string   `json:"name"`
	Gender         string   `json:"gender"`
	Phone          string   `json:"phone"`
	EmergencyPhone string   `json:"emergency_phone"`
	Address        string   `json:"address"`
	HealthStatus   *int     `json:"health_status"`
	Height         *float64 `json:"height"`
	Weight         *float64 `json:"weight"`
	Avatar         string   `json:"avatar"`
}

// GetElderlyList 获取所有老人档案
// @Summary      获取老人列表
// @Description  分页获取系统中所有老人档案
// @Tags         Elderly
// @Accept       json
// @Produce      json
// @Param        page query int false "页码，默认为1"
// @Param        page_size query int false "每页条数，默认为10"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /elderly-users [get]
func (c *ElderlyController) GetElderlyList() {
	page, pageSize := ParsePagination(c.Ctx)

	elderlyService := c.Container.GetService("elderly").(services.InterfaceElderlyService)
	elderly, total, err := elderlyService.GetAllElderly(page, pageSize)
	if err != nil {
		Fail(c.Ctx, http.StatusInternalServerError, "获取老人列表失败")
		return
	}

	Success(c.Ctx, gin.H{
		"pagination": models.NewPaginationResult(int(total), page, pageSize),
		"data":       elderly,
	})
}

// GetElderly 获取单个老人档案
// @Summary      获取老人详情
// @Description  根据ID获取老人档案详情
// @Tags         Elderly
// @Produce      json
// @Param        id path int true "老人ID"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /elderly-users/{id} [get]
func (c *ElderlyController) GetElderly() {
	id, ok := ParseIDParam(c.Ctx, "id")
	if !ok {
		return
	}

	elderlyService := c.Container.GetService("elderly").(services.InterfaceElderlyService)
	elderly, err := elderlyService.GetElderlyByID(id)
	if err != nil {
		FailWithError(c.Ctx, err)
		return
	}

	Success(c.Ctx, elderly)
}

// CreateElderly 创建老人档案
// @Summary      创建老人档案
// @Description  创建新的老人档案，手机号必须唯一
// @Tags         Elderly
// @Accept       json
// @Produce      json
// @Param        request body ElderlyRequest true "老人档案信息"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /elderly-users [post]
func (c *ElderlyController) CreateElderly() {
	var req ElderlyRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		Fail(c.Ctx, http.StatusBadRequest, "无效的请求参数")
		return
	}

	elderly := &models.ElderlyUser{
		Name:           req.Name,
		Gender:         req.Gender,
		Phone:          req.Phone,
		EmergencyPhone: req.EmergencyPhone,
		Address:        req.Address,
		HealthStatus:   models.HealthStatus(req.HealthStatus),
		Height:         req.Height,
		Weight:         req.Weight,
		Avatar:         req.Avatar,
	}
	if elderly.HealthStatus == 0 {
		elderly.HealthStatus = models.HealthStatusGood
	}

	elderlyService := c.Container.GetService("elderly").(services.InterfaceElderlyService)
	if err := elderlyService.CreateElderly(elderly); err != nil {
		FailWithError(c.Ctx, err)
		return
	}

	Success(c.Ctx, elderly)
}

// UpdateElderly 更新老人档案
// @Summary      更新老人档案
// @Description  更新老人档案中的部分字段
// @Tags         Elderly
// @Accept       json
// @Produce      json
// @Param        id path int true "老人ID"
// @Param        request body UpdateElderlyRequest true "更新字段"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /elderly-users/{id} [put]
func (c *ElderlyController) UpdateElderly() {
	id, ok := ParseIDParam(c.Ctx, "id")
	if !ok {
		return
	}

	var req UpdateElderlyRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		Fail(c.Ctx, http.StatusBadRequest, "无效的请求参数")
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Gender != "" {
		updates["gender"] = req.Gender
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.EmergencyPhone != "" {
		updates["emergency_phone"] = req.EmergencyPhone
	}
	if req.Address != "" {
		updates["address"] = req.Address
	}
	if req.HealthStatus != nil {
		updates["health_status"] = *req.HealthStatus
	}
	if req.Height != nil {
		updates["height"] = *req.Height
	}
	if req.Weight != nil {
		updates["weight"] = *req.Weight
	}
	if req.Avatar != "" {
		updates["avatar"] = req.Avatar
	}

	elderlyService := c.Container.GetService("elderly").(services.InterfaceElderlyService)
	elderly, err := elderlyService.UpdateElderly(id, updates)
	if err != nil {
		FailWithError(c.Ctx, err)
		return
	}

	Success(c.Ctx, elderly)
}

// DeleteElderly 删除老人档案
// @Summary      删除老人档案
// @Description  删除老人档案，级联删除监护关系并解绑设备
// @Tags         Elderly
// @Produce      json
// @Param        id path int true "老人ID"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /elderly-users/{id} [delete]
func (c *ElderlyController) DeleteElderly() {
	id, ok := ParseIDParam(c.Ctx, "id")
	if !ok {
		return
	}

	elderlyService := c.Container.GetService("elderly").(services.InterfaceElderlyService)
	if err := elderlyService.DeleteElderly(id); err != nil {
		FailWithError(c.Ctx, err)
		return
	}

	Success(c.Ctx, nil)
}

// HandleElderlyFunc 返回一个处理老人档案管理请求的Gin处理函数
func HandleElderlyFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewElderlyController(ctx, container)

		switch method {
		case "getElderlyList":
			controller.GetElderlyList()
		case "getElderly":
			controller.GetElderly()
		case "createElderly":
			controller.CreateElderly()
		case "updateElderly":
			controller.UpdateElderly()
		case "deleteElderly":
			controller.DeleteElderly()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
