package controllers

import (
	"net/http"
	"strconv"

	"elder-guardian-service/services"
	"elder-guardian-service/services/container"

	"github.com/gin-gonic/gin"
)

// InterfaceGuardianAppController 定义监护人端App控制器接口
type InterfaceGuardianAppController interface {
	GetBoundElderly()
	GetElderlyDetail()
	GetAlerts()
	BindElderly()
	UnbindElderly()
	UpdateRelation()
}

// GuardianAppController 处理监护人端App的请求，用户身份来自JWT
type GuardianAppController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewGuardianAppController 创建一个新的监护人端控制器
func NewGuardianAppController(ctx *gin.Context, container *container.ServiceContainer) *GuardianAppController {
	return &GuardianAppController{
		Ctx:       ctx,
		Container: container,
	}
}

// UnbindElderlyRequest 解绑老人请求
type UnbindElderlyRequest struct {
	ElderlyID uint `json:"elderly_id" binding:"required" example:"1"`
}

// GetBoundElderly 获取绑定的老人列表，附带每个老人的当前状态
// @Summary      获取绑定的老人列表
// @Description  返回监护人绑定的所有老人，每项附带最新活动、定位与设备状态
// @Tags         GuardianApp
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /guardian/elderly [get]
func (c *GuardianAppController) GetBoundElderly() {
	userID, ok := CurrentUserID(c.Ctx)
	if !ok {
		Fail(c.Ctx, http.StatusUnauthorized, "未登录")
		return
	}

	relationService := c.Container.GetService("relation").(services.InterfaceRelationService)
	relations, err := relationService.ListForGuardian(userID)
	if err != nil {
		Fail(c.Ctx, http.StatusInternalServerError, "获取老人列表失败")
		return
	}

	statsService := c.Container.GetService("stats").(services.InterfaceStatsService)
	result := make([]gin.H, 0, len(relations))
	for _, relation := range relations {
		status, err := statsService.CurrentStatusFor(relation.ElderlyID)
		if err != nil {
			Fail(c.Ctx, http.StatusInternalServerError, "获取老人状态失败")
			return
		}

		item := gin.H{
			"relation_id": relation.ID,
			"elderly_id":  relation.ElderlyID,
			"relation":    relation.GuardianAlias,
			"priority":    relation.Priority,
			"status":      status,
		}
		if relation.Elderly != nil {
			item["name"] = relation.Elderly.Name
			item["phone"] = relation.Elderly.Phone
			item["avatar"] = relation.Elderly.Avatar
			item["address"] = relation.Elderly.Address
			item["health_status"] = relation.Elderly.HealthStatus
		}
		result = append(result, item)
	}

	Success(c.Ctx, result)
}

// GetElderlyDetail 获取单个老人的档案和当前状态
// @Summary      获取老人详情
// @Description  仅允许查看已绑定的老人
// @Tags         GuardianApp
// @Produce      json
// @Param        id path int true "老人ID"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /guardian/elderly/{id} [get]
func (c *GuardianAppController) GetElderlyDetail() {
	userID, ok := CurrentUserID(c.Ctx)
	if !ok {
		Fail(c.Ctx, http.StatusUnauthorized, "未登录")
		return
	}

	elderlyID, ok := ParseIDParam(c.Ctx, "id")
	if !ok {
		return
	}

	relationService := c.Container.GetService("relation").(services.InterfaceRelationService)
	bound, err := relationService.IsBound(userID, elderlyID)
	if err != nil {
		Fail(c.Ctx, http.StatusInternalServerError, "查询监护关系失败")
		return
	}
	if !bound {
		Fail(c.Ctx, http.StatusForbidden, "未绑定该老人")
		return
	}

	elderlyService := c.Container.GetService("elderly").(services.InterfaceElderlyService)
	elderly, err := elderlyService.GetElderlyByID(elderlyID)
	if err != nil {
		FailWithError(c.Ctx, err)
		return
	}

	statsService := c.Container.GetService("stats").(services.InterfaceStatsService)
	status, err := statsService.CurrentStatusFor(elderlyID)
	if err != nil {
		Fail(c.Ctx, http.StatusInternalServerError, "获取老人状态失败")
		return
	}

	Success(c.Ctx, gin.H{
		"elderly": elderly,
		"status":  status,
	})
}

// GetAlerts 获取绑定老人的报警记录
// @Summary      获取报警记录
// @Description  返回监护人名下老人的报警记录，可按老人和日期过滤
// @Tags         GuardianApp
// @Produce      json
// @Param        elderlyId query int false "老人ID"
// @Param        date query string false "日期，格式2006-01-02"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /guardian/alerts [get]
func (c *GuardianAppController) GetAlerts() {
	userID, ok := CurrentUserID(c.Ctx)
	if !ok {
		Fail(c.Ctx, http.StatusUnauthorized, "未登录")
		return
	}

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
	alerts, err := alertService.ListForGuardian(userID, elderlyID, c.Ctx.Query("date"))
	if err != nil {
		Fail(c.Ctx, http.StatusInternalServerError, "获取报警记录失败")
		return
	}

	Success(c.Ctx, alerts)
}

// BindElderly 通过手机号绑定老人
// @Summary      绑定老人
// @Tags         GuardianApp
// @Accept       json
// @Produce      json
// @Param        request body BindRequest true "老人手机号"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /guardian/bind [post]
func (c *GuardianAppController) BindElderly() {
	userID, ok := CurrentUserID(c.Ctx)
	if !ok {
		Fail(c.Ctx, http.StatusUnauthorized, "未登录")
		return
	}

	var req BindRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		Fail(c.Ctx, http.StatusBadRequest, "缺少手机号")
		return
	}

	relationService := c.Container.GetService("relation").(services.InterfaceRelationService)
	relation, err := relationService.BindElderlyByPhone(userID, req.Phone)
	if err != nil {
		FailWithError(c.Ctx, err)
		return
	}

	Success(c.Ctx, relation)
}

// UnbindElderly 解绑老人
// @Summary      解绑老人
// @Tags         GuardianApp
// @Accept       json
// @Produce      json
// @Param        request body UnbindElderlyRequest true "老人ID"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /guardian/unbind [post]
func (c *GuardianAppController) UnbindElderly() {
	userID, ok := CurrentUserID(c.Ctx)
	if !ok {
		Fail(c.Ctx, http.StatusUnauthorized, "未登录")
		return
	}

	var req UnbindElderlyRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		Fail(c.Ctx, http.StatusBadRequest, "缺少老人ID")
		return
	}

	relationService := c.Container.GetService("relation").(services.InterfaceRelationService)
	if err := relationService.Unbind(userID, req.ElderlyID); err != nil {
		Fail(c.Ctx, http.StatusInternalServerError, "解绑失败")
		return
	}

	Success(c.Ctx, nil)
}

// UpdateRelation 更新与老人的称呼
// @Summary      更新监护关系称呼
// @Tags         GuardianApp
// @Accept       json
// @Produce      json
// @Param        request body UpdateRelationRequest true "称呼信息"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /guardian/update_relation [post]
func (c *GuardianAppController) UpdateRelation() {
	userID, ok := CurrentUserID(c.Ctx)
	if !ok {
		Fail(c.Ctx, http.StatusUnauthorized, "未登录")
		return
	}

	var req UpdateRelationRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil || req.ElderlyID == 0 {
		Fail(c.Ctx, http.StatusBadRequest, "缺少老人ID")
		return
	}

	relationService := c.Container.GetService("relation").(services.InterfaceRelationService)
	relation, err := relationService.UpdateAliases(userID, req.ElderlyID, req.GuardianAlias, req.ElderlyAlias)
	if err != nil {
		FailWithError(c.Ctx, err)
		return
	}

	Success(c.Ctx, relation)
}

// HandleGuardianAppFunc 返回一个处理监护人端请求的Gin处理函数
func HandleGuardianAppFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewGuardianAppController(ctx, container)

		switch method {
		case "getBoundElderly":
			controller.GetBoundElderly()
		case "getElderlyDetail":
			controller.GetElderlyDetail()
		case "getAlerts":
			controller.GetAlerts()
		case "bindElderly":
			controller.BindElderly()
		case "unbindElderly":
			controller.UnbindElderly()
		case "updateRelation":
			controller.UpdateRelation()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
