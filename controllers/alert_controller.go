package controllers

import (
	"net/http"
	"strconv"

	"elder-guardian-service/services"
	"elder-guardian-service/services/container"

	"github.com/gin-gonic/gin"
)

// InterfaceAlertController 定义报警记录控制器接口（管理后台）
type InterfaceAlertController interface {
	GetAlertList()
	GetAlert()
	UpdateAlertStatus()
}

// AlertController 处理报警记录的管理请求
type AlertController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAlertController 创建一个新的报警控制器
func NewAlertController(ctx *gin.Context, container *container.ServiceContainer) *AlertController {
	return &AlertController{
		Ctx:       ctx,
		Container: container,
	}
}

// UpdateAlertStatusRequest 表示报警状态变更请求
// action 只允许 confirm 或 resolve，状态单向流转
type UpdateAlertStatusRequest struct {
	Action  string `json:"action" binding:"required" example:"confirm"`
	Handler string `json:"handler" example:"值班管理员"`
}

// GetAlertList 获取报警记录列表
// @Summary      获取报警记录列表
// @Description  获取所有报警记录，可按老人和日期过滤
// @Tags         Alert
// @Produce      json
// @Param        elderlyId query int false "老人ID"
// @Param        date query string false "日期，格式2006-01-02"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /alerts [get]
func (c *AlertController) GetAlertList() {
	var elderlyID *uint
	if raw := c.Ctx.Query("elderlyId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			Fail(c.Ctx, http.StatusBadRequest, "无效的老人ID")
			return
		}
		id := uint(parsed)
		elderlyID = &id
	}

	alertService := c.Container.GetService("alert").(services.InterfaceAlertService)
	alerts, err := alertService.ListAll(elderlyID, c.Ctx.Query("date"))
	if err != nil {
		Fail(c.Ctx, http.StatusInternalServerError, "获取报警记录失败")
		return
	}

	Success(c.Ctx, alerts)
}

// GetAlert 获取单条报警记录
// @Summary      获取报警详情
// @Tags         Alert
// @Produce      json
// @Param        id path int true "报警ID"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /alerts/{id} [get]
func (c *AlertController) GetAlert() {
	id, ok := ParseIDParam(c.Ctx, "id")
	if !ok {
		return
	}

	alertService := c.Container.GetService("alert").(services.InterfaceAlertService)
	alert, err := alertService.GetAlertByID(id)
	if err != nil {
		FailWithError(c.Ctx, err)
		return
	}

	Success(c.Ctx, alert)
}

// UpdateAlertStatus 确认或解决报警
// @Summary      变更报警状态
// @Description  confirm：未处理->已确认；resolve：已确认->已解决；其余流转被拒绝
// @Tags         Alert
// @Accept       json
// @Produce      json
// @Param        id path int true "报警ID"
// @Param        request body UpdateAlertStatusRequest true "变更动作"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /alerts/{id} [put]
func (c *AlertController) UpdateAlertStatus() {
	id, ok := ParseIDParam(c.Ctx, "id")
	if !ok {
		return
	}

	var req UpdateAlertStatusRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		Fail(c.Ctx, http.StatusBadRequest, "无效的请求参数")
		return
	}

	handler := req.Handler
	if handler == "" {
		handler = "管理员"
	}

	alertService := c.Container.GetService("alert").(services.InterfaceAlertService)
	switch req.Action {
	case "confirm":
		alert, err := alertService.Confirm(id, handler)
		if err != nil {
			FailWithError(c.Ctx, err)
			return
		}
		Success(c.Ctx, alert)
	case "resolve":
		alert, err := alertService.Resolve(id, handler)
		if err != nil {
			FailWithError(c.Ctx, err)
			return
		}
		Success(c.Ctx, alert)
	default:
		Fail(c.Ctx, http.StatusBadRequest, "无效的动作，只支持confirm或resolve")
	}
}

// HandleAlertFunc 返回一个处理报警管理请求的Gin处理函数
func HandleAlertFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAlertController(ctx, container)

		switch method {
		case "getAlertList":
			controller.GetAlertList()
		case "getAlert":
			controller.GetAlert()
		case "updateAlertStatus":
			controller.UpdateAlertStatus()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
