package controllers

import (
	"net/http"

	"elder-guardian-service/models"
	"elder-guardian-service/services"
	"elder-guardian-service/services/container"

	"github.com/gin-gonic/gin"
)

// InterfaceDeviceController 定义监测设备控制器接口
type InterfaceDeviceController interface {
	GetDeviceList()
	GetDevice()
	CreateDevice()
	UpdateDevice()
	DeleteDevice()
	AssignDevice()
	ReportStatus()
}

// DeviceController 处理监测设备的管理请求
type DeviceController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewDeviceController 创建一个新的设备控制器
func NewDeviceController(ctx *gin.Context, container *container.ServiceContainer) *DeviceController {
	return &DeviceController{
		Ctx:       ctx,
		Container: container,
	}
}

// DeviceRequest 表示创建设备请求，序列号为空时自动生成
type DeviceRequest struct {
	SerialNumber string `json:"serial_number" example:"EG-A1B2C3D4"`
	Name         string `json:"name" binding:"required" example:"智能手环"`
	Type         string `json:"type" example:"手环"`
	Brand        string `json:"brand" example:"华为"`
	Status       string `json:"status" example:"normal"`
}

// UpdateDeviceRequest 表示更新设备请求
type UpdateDeviceRequest struct {
	SerialNumber string `json:"serial_number"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	Brand        string `json:"brand"`
	Status       string `json:"status"`
}

// AssignDeviceRequest 表示设备绑定请求，elderly_id为空表示解绑
type AssignDeviceRequest struct {
	ElderlyID *uint `json:"elderly_id" example:"1"`
}

// DeviceReportRequest 表示设备状态上报请求
type DeviceReportRequest struct {
	BatteryLevel int  `json:"battery_level" binding:"min=0,max=100" example:"85"`
	IsOnline     bool `json:"is_online" example:"true"`
}

// GetDeviceList 获取所有设备
// @Summary      获取设备列表
// @Description  分页获取所有监测设备
// @Tags         Device
// @Produce      json
// @Param        page query int false "页码，默认为1"
// @Param        page_size query int false "每页条数，默认为10"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /devices [get]
func (c *DeviceController) GetDeviceList() {
	page, pageSize := ParsePagination(c.Ctx)

	deviceService := c.Container.GetService("device").(services.InterfaceDeviceService)
	devices, total, err := deviceService.GetAllDevices(page, pageSize)
	if err != nil {
		Fail(c.Ctx, http.StatusInternalServerError, "获取设备列表失败")
		return
	}

	Success(c.Ctx, gin.H{
		"pagination": models.NewPaginationResult(int(total), page, pageSize),
		"data":       devices,
	})
}

// GetDevice 获取单个设备
// @Summary      获取设备详情
// @Tags         Device
// @Produce      json
// @Param        id path int true "设备ID"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /devices/{id} [get]
func (c *DeviceController) GetDevice() {
	id, ok := ParseIDParam(c.Ctx, "id")
	if !ok {
		return
	}

	deviceService := c.Container.GetService("device").(services.InterfaceDeviceService)
	device, err := deviceService.GetDeviceByID(id)
	if err != nil {
		FailWithError(c.Ctx, err)
		return
	}

	Success(c.Ctx, device)
}

// CreateDevice 登记新设备
// @Summary      登记设备
// @Description  登记新的监测设备，序列号为空时自动生成
// @Tags         Device
// @Accept       json
// @Produce      json
// @Param        request body DeviceRequest true "设备信息"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /devices [post]
func (c *DeviceController) CreateDevice() {
	var req DeviceRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		Fail(c.Ctx, http.StatusBadRequest, "无效的请求参数")
		return
	}

	device := &models.MonitoringDevice{
		SerialNumber: req.SerialNumber,
		Name:         req.Name,
		Type:         req.Type,
		Brand:        req.Brand,
		Status:       models.DeviceStatus(req.Status),
	}
	if device.Status == "" {
		device.Status = models.DeviceStatusNormal
	}

	deviceService := c.Container.GetService("device").(services.InterfaceDeviceService)
	if err := deviceService.CreateDevice(device); err != nil {
		FailWithError(c.Ctx, err)
		return
	}

	Success(c.Ctx, device)
}

// UpdateDevice 更新设备信息
// @Summary      更新设备
// @Tags         Device
// @Accept       json
// @Produce      json
// @Param        id path int true "设备ID"
// @Param        request body UpdateDeviceRequest true "更新字段"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /devices/{id} [put]
func (c *DeviceController) UpdateDevice() {
	id, ok := ParseIDParam(c.Ctx, "id")
	if !ok {
		return
	}

	var req UpdateDeviceRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		Fail(c.Ctx, http.StatusBadRequest, "无效的请求参数")
		return
	}

	updates := map[string]interface{}{}
	if req.SerialNumber != "" {
		updates["serial_number"] = req.SerialNumber
	}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Type != "" {
		updates["type"] = req.Type
	}
	if req.Brand != "" {
		updates["brand"] = req.Brand
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}

	deviceService := c.Container.GetService("device").(services.InterfaceDeviceService)
	device, err := deviceService.UpdateDevice(id, updates)
	if err != nil {
		FailWithError(c.Ctx, err)
		return
	}

	Success(c.Ctx, device)
}

// DeleteDevice 删除设备
// @Summary      删除设备
// @Tags         Device
// @Produce      json
// @Param        id path int true "设备ID"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /devices/{id} [delete]
func (c *DeviceController) DeleteDevice() {
	id, ok := ParseIDParam(c.Ctx, "id")
	if !ok {
		return
	}

	deviceService := c.Container.GetService("device").(services.InterfaceDeviceService)
	if err := deviceService.DeleteDevice(id); err != nil {
		FailWithError(c.Ctx, err)
		return
	}

	Success(c.Ctx, nil)
}

// AssignDevice 把设备绑定到老人或解绑
// @Summary      绑定/解绑设备
// @Description  elderly_id为空时解绑；绑定会先解绑该老人名下的其他设备
// @Tags         Device
// @Accept       json
// @Produce      json
// @Param        id path int true "设备ID"
// @Param        request body AssignDeviceRequest true "绑定信息"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /devices/{id}/assign [post]
func (c *DeviceController) AssignDevice() {
	id, ok := ParseIDParam(c.Ctx, "id")
	if !ok {
		return
	}

	var req AssignDeviceRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		Fail(c.Ctx, http.StatusBadRequest, "无效的请求参数")
		return
	}

	deviceService := c.Container.GetService("device").(services.InterfaceDeviceService)
	device, err := deviceService.AssignDevice(id, req.ElderlyID)
	if err != nil {
		FailWithError(c.Ctx, err)
		return
	}

	Success(c.Ctx, device)
}

// ReportStatus 设备状态上报
// @Summary      设备状态上报
// @Description  更新电量与在线状态；电量低于阈值时对绑定老人生成低电量报警
// @Tags         Device
// @Accept       json
// @Produce      json
// @Param        id path int true "设备ID"
// @Param        request body DeviceReportRequest true "上报内容"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /devices/{id}/report [post]
func (c *DeviceController) ReportStatus() {
	id, ok := ParseIDParam(c.Ctx, "id")
	if !ok {
		return
	}

	var req DeviceReportRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		Fail(c.Ctx, http.StatusBadRequest, "无效的请求参数")
		return
	}

	deviceService := c.Container.GetService("device").(services.InterfaceDeviceService)
	device, err := deviceService.ReportStatus(id, req.BatteryLevel, req.IsOnline)
	if err != nil {
		FailWithError(c.Ctx, err)
		return
	}

	Success(c.Ctx, device)
}

// HandleDeviceFunc 返回一个处理设备请求的Gin处理函数
func HandleDeviceFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewDeviceController(ctx, container)

		switch method {
		case "getDeviceList":
			controller.GetDeviceList()
		case "getDevice":
			controller.GetDevice()
		case "createDevice":
			controller.CreateDevice()
		case "updateDevice":
			controller.UpdateDevice()
		case "deleteDevice":
			controller.DeleteDevice()
		case "assignDevice":
			controller.AssignDevice()
		case "reportStatus":
			controller.ReportStatus()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
