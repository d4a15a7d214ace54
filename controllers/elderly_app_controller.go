package controllers

import (
	"net/http"
	"time"

	"elder-guardian-service/models"
	"elder-guardian-service/services"
	"elder-guardian-service/services/container"

	"github.com/gin-gonic/gin"
)

// InterfaceElderlyAppController 定义老人端App控制器接口
type InterfaceElderlyAppController interface {
	GetProfile()
	UpdateProfile()
	GetGuardians()
	ReportStatus()
	ReportLocation()
	TriggerSos()
	BindGuardian()
	UnbindGuardian()
	UpdateRelation()
}

// ElderlyAppController 处理老人端App的请求，用户身份来自JWT
type ElderlyAppController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewElderlyAppController 创建一个新的老人端控制器
func NewElderlyAppController(ctx *gin.Context, container *container.ServiceContainer) *ElderlyAppController {
	return &ElderlyAppController{
		Ctx:       ctx,
		Container: container,
	}
}

// ReportStatusRequest 活动状态上报请求
// status 是枚举状态码，label 是展示名称，二者至少传一个
type ReportStatusRequest struct {
	Status   string `json:"status" binding:"required" example:"walking"`
	Label    string `json:"label" example:"正常行走"`
	Location string `json:"location" example:"朝阳公园"`
}

// ReportLocationRequest GPS定位上报请求
type ReportLocationRequest struct {
	Latitude  float64 `json:"latitude" binding:"required" example:"39.92"`
	Longitude float64 `json:"longitude" binding:"required" example:"116.46"`
	Address   string  `json:"address" example:"北京市朝阳区幸福路"`
}

// BindRequest 通过手机号绑定请求
type BindRequest struct {
	Phone string `json:"phone" binding:"required" example:"13900000001"`
}

// UnbindGuardianRequest 解绑监护人请求
type UnbindGuardianRequest struct {
	GuardianID uint `json:"guardian_id" binding:"required" example:"1"`
}

// UpdateRelationRequest 更新监护关系称呼请求
type UpdateRelationRequest struct {
	GuardianID    uint   `json:"guardian_id"`
	ElderlyID     uint   `json:"elderly_id"`
	GuardianAlias string `json:"guardian_alias"`
	ElderlyAlias  string `json:"elderly_alias"`
}

// GetProfile 获取本人档案
// @Summary      获取老人本人档案
// @Tags         ElderlyApp
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /elderly/profile [get]
func (c *ElderlyAppController) GetProfile() {
	userID, ok := CurrentUserID(c.Ctx)
	if !ok {
		Fail(c.Ctx, http.StatusUnauthorized, "未登录")
		return
	}

	elderlyService := c.Container.GetService("elderly").(services.InterfaceElderlyService)
	elderly, err := elderlyService.GetElderlyByID(userID)
	if err != nil {
		FailWithError(c.Ctx, err)
		return
	}

	Success(c.Ctx, elderly)
}

// UpdateProfile 更新本人档案
// @Summary      更新老人本人档案
// @Tags         ElderlyApp
// @Accept       json
// @Produce      json
// @Param        request body UpdateElderlyRequest true "更新字段"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /elderly/profile [put]
func (c *ElderlyAppController) UpdateProfile() {
	userID, ok := CurrentUserID(c.Ctx)
	if !ok {
		Fail(c.Ctx, http.StatusUnauthorized, "未登录")
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
	if req.EmergencyPhone != "" {
		updates["emergency_phone"] = req.EmergencyPhone
	}
	if req.Address != "" {
		updates["address"] = req.Address
	}
	if req.Avatar != "" {
		updates["avatar"] = req.Avatar
	}

	elderlyService := c.Container.GetService("elderly").(services.InterfaceElderlyService)
	elderly, err := elderlyService.UpdateElderly(userID, updates)
	if err != nil {
		FailWithError(c.Ctx, err)
		return
	}

	Success(c.Ctx, elderly)
}

// GetGuardians 获取绑定的监护人列表
// @Summary      获取本人绑定的监护人
// @Tags         ElderlyApp
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /elderly/guardians [get]
func (c *ElderlyAppController) GetGuardians() {
	userID, ok := CurrentUserID(c.Ctx)
	if !ok {
		Fail(c.Ctx, http.StatusUnauthorized, "未登录")
		return
	}

	relationService := c.Container.GetService("relation").(services.InterfaceRelationService)
	relations, err := relationService.ListForElderly(userID)
	if err != nil {
		Fail(c.Ctx, http.StatusInternalServerError, "获取监护人列表失败")
		return
	}

	result := make([]gin.H, 0, len(relations))
	for _, relation := range relations {
		item := gin.H{
			"relation_id":  relation.ID,
			"guardian_id":  relation.GuardianID,
			"relation":     relation.ElderlyAlias,
			"relationship": relation.Relationship,
			"priority":     relation.Priority,
		}
		if relation.Guardian != nil {
			item["name"] = relation.Guardian.Name
			item["phone"] = relation.Guardian.Phone
			item["avatar"] = relation.Guardian.Avatar
		}
		result = append(result, item)
	}

	Success(c.Ctx, result)
}

// ReportStatus 上报活动状态，跌倒状态会触发跌倒报警
// @Summary      上报活动状态
// @Description  追加一条活动状态记录；状态为跌倒时生成高级别跌倒报警
// @Tags         ElderlyApp
// @Accept       json
// @Produce      json
// @Param        request body ReportStatusRequest true "状态信息"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /elderly/status [post]
func (c *ElderlyAppController) ReportStatus() {
	userID, ok := CurrentUserID(c.Ctx)
	if !ok {
		Fail(c.Ctx, http.StatusUnauthorized, "未登录")
		return
	}

	var req ReportStatusRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		Fail(c.Ctx, http.StatusBadRequest, "无效的请求参数")
		return
	}

	state := models.ActivityState(req.Status)
	activityService := c.Container.GetService("activity").(services.InterfaceActivityService)
	record, err := activityService.AppendActivity(userID, state, req.Label, time.Now())
	if err != nil {
		FailWithError(c.Ctx, err)
		return
	}

	// 跌倒状态触发报警，报警失败不影响状态上报本身
	if state == models.ActivityFallen {
		alertService := c.Container.GetService("alert").(services.InterfaceAlertService)
		if _, err := alertService.RaiseFallAlert(userID); err != nil {
			Fail(c.Ctx, http.StatusInternalServerError, "生成跌倒报警失败")
			return
		}
	}

	Success(c.Ctx, record)
}

// ReportLocation 上报GPS定位
// @Summary      上报GPS定位
// @Tags         ElderlyApp
// @Accept       json
// @Produce      json
// @Param        request body ReportLocationRequest true "定位信息"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /elderly/location [post]
func (c *ElderlyAppController) ReportLocation() {
	userID, ok := CurrentUserID(c.Ctx)
	if !ok {
		Fail(c.Ctx, http.StatusUnauthorized, "未登录")
		return
	}

	var req ReportLocationRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		Fail(c.Ctx, http.StatusBadRequest, "无效的请求参数")
		return
	}

	activityService := c.Container.GetService("activity").(services.InterfaceActivityService)
	record, err := activityService.AppendLocation(userID, req.Latitude, req.Longitude, req.Address, time.Now())
	if err != nil {
		FailWithError(c.Ctx, err)
		return
	}

	Success(c.Ctx, record)
}

// TriggerSos 触发SOS求救
// @Summary      SOS一键求救
// @Description  生成一条高级别SOS报警，位置取最新定位
// @Tags         ElderlyApp
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /elderly/sos [post]
func (c *ElderlyAppController) TriggerSos() {
	userID, ok := CurrentUserID(c.Ctx)
	if !ok {
		Fail(c.Ctx, http.StatusUnauthorized, "未登录")
		return
	}

	alertService := c.Container.GetService("alert").(services.InterfaceAlertService)
	alert, err := alertService.RaiseSosAlert(userID)
	if err != nil {
		FailWithError(c.Ctx, err)
		return
	}

	Success(c.Ctx, alert)
}

// BindGuardian 通过手机号绑定监护人
// @Summary      绑定监护人
// @Tags         ElderlyApp
// @Accept       json
// @Produce      json
// @Param        request body BindRequest true "监护人手机号"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /elderly/bind [post]
func (c *ElderlyAppController) BindGuardian() {
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
	relation, err := relationService.BindGuardianByPhone(userID, req.Phone)
	if err != nil {
		FailWithError(c.Ctx, err)
		return
	}

	Success(c.Ctx, relation)
}

// UnbindGuardian 解绑监护人
// @Summary      解绑监护人
// @Tags         ElderlyApp
// @Accept       json
// @Produce      json
// @Param        request body UnbindGuardianRequest true "监护人ID"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /elderly/unbind [post]
func (c *ElderlyAppController) UnbindGuardian() {
	userID, ok := CurrentUserID(c.Ctx)
	if !ok {
		Fail(c.Ctx, http.StatusUnauthorized, "未登录")
		return
	}

	var req UnbindGuardianRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		Fail(c.Ctx, http.StatusBadRequest, "缺少监护人ID")
		return
	}

	relationService := c.Container.GetService("relation").(services.InterfaceRelationService)
	if err := relationService.Unbind(req.GuardianID, userID); err != nil {
		Fail(c.Ctx, http.StatusInternalServerError, "解绑失败")
		return
	}

	Success(c.Ctx, nil)
}

// UpdateRelation 更新与监护人的称呼
// @Summary      更新监护关系称呼
// @Tags         ElderlyApp
// @Accept       json
// @Produce      json
// @Param        request body UpdateRelationRequest true "称呼信息"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /elderly/update_relation [post]
func (c *ElderlyAppController) UpdateRelation() {
	userID, ok := CurrentUserID(c.Ctx)
	if !ok {
		Fail(c.Ctx, http.StatusUnauthorized, "未登录")
		return
	}

	var req UpdateRelationRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil || req.GuardianID == 0 {
		Fail(c.Ctx, http.StatusBadRequest, "缺少监护人ID")
		return
	}

	relationService := c.Container.GetService("relation").(services.InterfaceRelationService)
	relation, err := relationService.UpdateAliases(req.GuardianID, userID, req.GuardianAlias, req.ElderlyAlias)
	if err != nil {
		FailWithError(c.Ctx, err)
		return
	}

	Success(c.Ctx, relation)
}

// HandleElderlyAppFunc 返回一个处理老人端请求的Gin处理函数
func HandleElderlyAppFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewElderlyAppController(ctx, container)

		switch method {
		case "getProfile":
			controller.GetProfile()
		case "updateProfile":
			controller.UpdateProfile()
		case "getGuardians":
			controller.GetGuardians()
		case "reportStatus":
			controller.ReportStatus()
		case "reportLocation":
			controller.ReportLocation()
		case "triggerSos":
			controller.TriggerSos()
		case "bindGuardian":
			controller.BindGuardian()
		case "unbindGuardian":
			controller.UnbindGuardian()
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
