package controllers

import (
	"net/http"
	"time"

	"elder-guardian-service/services"
	"elder-guardian-service/services/container"

	"github.com/gin-gonic/gin"
)

// InterfaceStatsController 定义统计查询控制器接口
type InterfaceStatsController interface {
	GetDashboard()
	GetAllStatuses()
	GetHistory()
}

// StatsController 处理仪表盘和历史统计请求
type StatsController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewStatsController 创建一个新的统计控制器
func NewStatsController(ctx *gin.Context, container *container.ServiceContainer) *StatsController {
	return &StatsController{
		Ctx:       ctx,
		Container: container,
	}
}

// currentRole 从上下文中取当前登录角色（认证中间件写入）
func currentRole(ctx *gin.Context) string {
	value, exists := ctx.Get("role")
	if !exists {
		return ""
	}
	role, _ := value.(string)
	return role
}

// GetDashboard 获取仪表盘计数
// @Summary      获取仪表盘统计
// @Description  老人总数、在线设备数、今日报警数、未处理报警数
// @Tags         Stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /stats/dashboard [get]
func (c *StatsController) GetDashboard() {
	statsService := c.Container.GetService("stats").(services.InterfaceStatsService)
	stats, err := statsService.DashboardSummary()
	if err != nil {
		Fail(c.Ctx, http.StatusInternalServerError, "获取仪表盘统计失败")
		return
	}

	Success(c.Ctx, stats)
}

// GetAllStatuses 获取所有老人的当前状态
// @Summary      获取所有老人当前状态
// @Description  管理后台轮询用，按老人ID组织
// @Tags         Stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /stats/statuses [get]
func (c *StatsController) GetAllStatuses() {
	statsService := c.Container.GetService("stats").(services.InterfaceStatsService)
	statuses, err := statsService.AllStatuses()
	if err != nil {
		Fail(c.Ctx, http.StatusInternalServerError, "获取老人状态失败")
		return
	}

	Success(c.Ctx, statuses)
}

// GetHistory 获取活动历史
// @Summary      获取活动历史
// @Description  elderlyId为"all"时查询调用方名下全部老人；date给出当天时间线，range给出区间汇总，都不传返回最近50条
// @Tags         Stats
// @Produce      json
// @Param        elderlyId path string true "老人ID或all"
// @Param        date query string false "日期，格式2006-01-02"
// @Param        range query string false "范围：yesterday/week/month"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /stats/history/{elderlyId} [get]
func (c *StatsController) GetHistory() {
	userID, ok := CurrentUserID(c.Ctx)
	if !ok {
		Fail(c.Ctx, http.StatusUnauthorized, "未登录")
		return
	}
	role := currentRole(c.Ctx)

	activityService := c.Container.GetService("activity").(services.InterfaceActivityService)
	statsService := c.Container.GetService("stats").(services.InterfaceStatsService)

	if c.Ctx.Param("elderlyId") == "all" {
		c.historyForAll(userID, role, activityService)
		return
	}

	elderlyID, ok := ParseIDParam(c.Ctx, "elderlyId")
	if !ok {
		return
	}

	// 访问控制：老人只能查自己，监护人只能查绑定的老人
	switch role {
	case services.RoleElderly:
		if elderlyID != userID {
			Fail(c.Ctx, http.StatusForbidden, "只能查询本人记录")
			return
		}
	case services.RoleGuardian:
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
	}

	if rangeName := c.Ctx.Query("range"); rangeName != "" {
		summary, err := statsService.HistorySummary(elderlyID, rangeName)
		if err != nil {
			FailWithError(c.Ctx, err)
			return
		}
		Success(c.Ctx, summary)
		return
	}

	if date := c.Ctx.Query("date"); date != "" {
		start, end, ok := parseDayRange(c.Ctx, date)
		if !ok {
			return
		}
		items, err := activityService.QueryActivityRange(elderlyID, start, end)
		if err != nil {
			Fail(c.Ctx, http.StatusInternalServerError, "获取活动历史失败")
			return
		}
		Success(c.Ctx, items)
		return
	}

	items, err := activityService.QueryRecentActivity(elderlyID, 50)
	if err != nil {
		Fail(c.Ctx, http.StatusInternalServerError, "获取活动历史失败")
		return
	}
	Success(c.Ctx, items)
}

// historyForAll 查询调用方名下全部老人的活动历史
// 老人查自己，监护人查所有绑定的老人；区间汇总只支持单个老人
func (c *StatsController) historyForAll(userID uint, role string, activityService services.InterfaceActivityService) {
	if c.Ctx.Query("range") != "" {
		Fail(c.Ctx, http.StatusBadRequest, "区间汇总需要指定老人ID")
		return
	}

	if role == services.RoleElderly {
		if date := c.Ctx.Query("date"); date != "" {
			start, end, ok := parseDayRange(c.Ctx, date)
			if !ok {
				return
			}
			items, err := activityService.QueryActivityRange(userID, start, end)
			if err != nil {
				Fail(c.Ctx, http.StatusInternalServerError, "获取活动历史失败")
				return
			}
			Success(c.Ctx, items)
			return
		}
		items, err := activityService.QueryRecentActivity(userID, 50)
		if err != nil {
			Fail(c.Ctx, http.StatusInternalServerError, "获取活动历史失败")
			return
		}
		Success(c.Ctx, items)
		return
	}

	if role != services.RoleGuardian {
		Fail(c.Ctx, http.StatusBadRequest, "请指定老人ID")
		return
	}

	if date := c.Ctx.Query("date"); date != "" {
		start, end, ok := parseDayRange(c.Ctx, date)
		if !ok {
			return
		}
		items, err := activityService.QueryActivityRangeForGuardian(userID, start, end)
		if err != nil {
			Fail(c.Ctx, http.StatusInternalServerError, "获取活动历史失败")
			return
		}
		Success(c.Ctx, items)
		return
	}

	items, err := activityService.QueryRecentActivityForGuardian(userID, 50)
	if err != nil {
		Fail(c.Ctx, http.StatusInternalServerError, "获取活动历史失败")
		return
	}
	Success(c.Ctx, items)
}

// parseDayRange 把日期参数解析成当天的时间窗口
func parseDayRange(ctx *gin.Context, date string) (time.Time, time.Time, bool) {
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		Fail(ctx, http.StatusBadRequest, "无效的日期格式，应为2006-01-02")
		return time.Time{}, time.Time{}, false
	}
	return day, day.AddDate(0, 0, 1).Add(-time.Second), true
}

// HandleStatsFunc 返回一个处理统计查询请求的Gin处理函数
func HandleStatsFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewStatsController(ctx, container)

		switch method {
		case "getDashboard":
			controller.GetDashboard()
		case "getAllStatuses":
			controller.GetAllStatuses()
		case "getHistory":
			controller.GetHistory()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
