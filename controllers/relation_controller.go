package controllers

import (
	"net/http"

	"elder-guardian-service/services"
	"elder-guardian-service/services/container"

	"github.com/gin-gonic/gin"
)

// InterfaceRelationController 定义监护关系控制器接口（管理后台）
type InterfaceRelationController interface {
	GetRelationList()
	CreateRelation()
	DeleteRelation()
}

// RelationController 处理监护关系的管理请求
type RelationController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewRelationController 创建一个新的监护关系控制器
func NewRelationController(ctx *gin.Context, container *container.ServiceContainer) *RelationController {
	return &RelationController{
		Ctx:       ctx,
		Container: container,
	}
}

// RelationRequest 表示管理后台创建监护关系请求
type RelationRequest struct {
	GuardianID   uint   `json:"guardian_id" binding:"required" example:"1"`
	ElderlyID    uint   `json:"elderly_id" binding:"required" example:"1"`
	Relationship string `json:"relationship" example:"子女"`
}

// GetRelationList 获取所有监护关系
// @Summary      获取监护关系列表
// @Description  获取所有监护关系，附带双方用户信息
// @Tags         Relation
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /guardian-relations [get]
func (c *RelationController) GetRelationList() {
	relationService := c.Container.GetService("relation").(services.InterfaceRelationService)
	relations, err := relationService.GetAllRelations()
	if err != nil {
		Fail(c.Ctx, http.StatusInternalServerError, "获取监护关系失败")
		return
	}

	Success(c.Ctx, relations)
}

// CreateRelation 管理后台直接建立监护关系
// @Summary      创建监护关系
// @Description  按监护人ID与老人ID直接建立监护关系
// @Tags         Relation
// @Accept       json
// @Produce      json
// @Param        request body RelationRequest true "关系信息"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /guardian-relations [post]
func (c *RelationController) CreateRelation() {
	var req RelationRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		Fail(c.Ctx, http.StatusBadRequest, "无效的请求参数")
		return
	}

	relationService := c.Container.GetService("relation").(services.InterfaceRelationService)
	relation, err := relationService.CreateRelation(req.GuardianID, req.ElderlyID, req.Relationship)
	if err != nil {
		FailWithError(c.Ctx, err)
		return
	}

	Success(c.Ctx, relation)
}

// DeleteRelation 按关系ID删除监护关系
// @Summary      删除监护关系
// @Tags         Relation
// @Produce      json
// @Param        id path int true "关系ID"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /guardian-relations/{id} [delete]
func (c *RelationController) DeleteRelation() {
	id, ok := ParseIDParam(c.Ctx, "id")
	if !ok {
		return
	}

	relationService := c.Container.GetService("relation").(services.InterfaceRelationService)
	if err := relationService.DeleteRelationByID(id); err != nil {
		FailWithError(c.Ctx, err)
		return
	}

	Success(c.Ctx, nil)
}

// HandleRelationFunc 返回一个处理监护关系管理请求的Gin处理函数
func HandleRelationFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewRelationController(ctx, container)

		switch method {
		case "getRelationList":
			controller.GetRelationList()
		case "createRelation":
			controller.CreateRelation()
		case "deleteRelation":
			controller.DeleteRelation()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
