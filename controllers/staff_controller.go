package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"gatekeeper-http-service/internal/error/response"
	"gatekeeper-http-service/models"
	"gatekeeper-http-service/services"
	"gatekeeper-http-service/services/container"
)

// InterfaceStaffController defines the domestic help staff operations
type InterfaceStaffController interface {
	Scan()
	AddStaff()
	GetStaff()
	GetAllStaff()
	GetStaffByFlat()
	LinkFlat()
	UnlinkFlat()
	DeleteStaff()
	GetAttendance()
}

// StaffController handles domestic help staff requests
type StaffController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewStaffController creates a new staff controller
func NewStaffController(ctx *gin.Context, container *container.ServiceContainer) *StaffController {
	return &StaffController{
		Ctx:       ctx,
		Container: container,
	}
}

func (c *StaffController) staffService() services.InterfaceDomesticHelpService {
	return c.Container.GetService("domestic_help").(services.InterfaceDomesticHelpService)
}

func (c *StaffController) paramID(name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Ctx.Param(name), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "Invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}

// ScanRequest carries a staff passcode scan
type ScanRequest struct {
	PassCode string `json:"pass_code" binding:"required"`
}

// Scan records a staff passcode scan at the gate
// @Summary      Record a staff attendance scan
// @Description  Opens a new attendance span on entry, closes the open one on exit
// @Tags         Staff
// @Accept       json
// @Produce      json
// @Param        request body ScanRequest true "Staff passcode"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/staff/scan [post]
// @Security     BearerAuth
func (c *StaffController) Scan() {
	var req ScanRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	var guardID *uint
	if v, exists := c.Ctx.Get("userID"); exists {
		if id, ok := v.(uint); ok {
			guardID = &id
		}
	}

	result, err := c.staffService().RecordStaffAccess(req.PassCode, guardID)
	if err != nil {
		failFromError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, result)
}

// AddStaff registers a new staff member
// @Summary      Register a staff member
// @Description  Registers domestic help staff and issues a 6-digit gate passcode
// @Tags         Staff
// @Accept       json
// @Produce      json
// @Param        request body services.AddStaffRequest true "Staff details"
// @Success      201  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/staff [post]
// @Security     BearerAuth
func (c *StaffController) AddStaff() {
	var req services.AddStaffRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	staff, err := c.staffService().AddStaff(&req)
	if err != nil {
		failFromError(c.Ctx, err)
		return
	}
	response.Created(c.Ctx, staff)
}

// GetStaff fetches one staff member
// @Summary      Get a staff member
// @Tags         Staff
// @Produce      json
// @Param        staffId path int true "Staff ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/staff/{staffId} [get]
// @Security     BearerAuth
func (c *StaffController) GetStaff() {
	staffID, ok := c.paramID("staffId")
	if !ok {
		return
	}

	staff, err := c.staffService().GetStaff(staffID)
	if err != nil {
		failFromError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, staff)
}

// GetAllStaff lists staff registered in a society
// @Summary      List staff
// @Tags         Staff
// @Produce      json
// @Param        society_id query int true "Society ID"
// @Success      200  {object}  response.Response
// @Router       /api/staff [get]
// @Security     BearerAuth
func (c *StaffController) GetAllStaff() {
	societyID, err := strconv.ParseUint(c.Ctx.Query("society_id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "society_id is required")
		return
	}

	staff, err := c.staffService().GetAllStaff(uint(societyID))
	if err != nil {
		failFromError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, staff)
}

// GetStaffByFlat lists staff working at one flat
// @Summary      Staff by flat
// @Tags         Staff
// @Produce      json
// @Param        flatId path int true "Flat ID"
// @Success      200  {object}  response.Response
// @Router       /api/staff/flat/{flatId} [get]
// @Security     BearerAuth
func (c *StaffController) GetStaffByFlat() {
	flatID, ok := c.paramID("flatId")
	if !ok {
		return
	}

	staff, err := c.staffService().GetStaffByFlat(flatID)
	if err != nil {
		failFromError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, staff)
}

// LinkFlat attaches a staff member to a flat
// @Summary      Link staff to a flat
// @Tags         Staff
// @Produce      json
// @Param        staffId path int true "Staff ID"
// @Param        flatId path int true "Flat ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/staff/{staffId}/link-flat/{flatId} [post]
// @Security     BearerAuth
func (c *StaffController) LinkFlat() {
	staffID, ok := c.paramID("staffId")
	if !ok {
		return
	}
	flatID, ok := c.paramID("flatId")
	if !ok {
		return
	}

	if err := c.staffService().LinkStaffToFlat(staffID, flatID); err != nil {
		failFromError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, nil)
}

// UnlinkFlat detaches a staff member from a flat
// @Summary      Unlink staff from a flat
// @Tags         Staff
// @Produce      json
// @Param        staffId path int true "Staff ID"
// @Param        flatId path int true "Flat ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/staff/{staffId}/unlink-flat/{flatId} [delete]
// @Security     BearerAuth
func (c *StaffController) UnlinkFlat() {
	staffID, ok := c.paramID("staffId")
	if !ok {
		return
	}
	flatID, ok := c.paramID("flatId")
	if !ok {
		return
	}

	if err := c.staffService().UnlinkStaffFromFlat(staffID, flatID); err != nil {
		failFromError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, nil)
}

// DeleteStaff removes a staff member
// @Summary      Delete a staff member
// @Tags         Staff
// @Produce      json
// @Param        staffId path int true "Staff ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/staff/{staffId} [delete]
// @Security     BearerAuth
func (c *StaffController) DeleteStaff() {
	staffID, ok := c.paramID("staffId")
	if !ok {
		return
	}

	if err := c.staffService().DeleteStaff(staffID); err != nil {
		failFromError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, nil)
}

// GetAttendance lists a staff member's attendance spans
// @Summary      Staff attendance history
// @Tags         Staff
// @Produce      json
// @Param        staffId path int true "Staff ID"
// @Param        pageNum query int false "Page number"
// @Param        pageSize query int false "Page size"
// @Success      200  {object}  response.Response
// @Router       /api/staff/{staffId}/attendance [get]
// @Security     BearerAuth
func (c *StaffController) GetAttendance() {
	staffID, ok := c.paramID("staffId")
	if !ok {
		return
	}

	var query models.PaginationQuery
	_ = c.Ctx.ShouldBindQuery(&query)

	logs, page, err := c.staffService().GetAttendance(staffID, &query)
	if err != nil {
		failFromError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, gin.H{
		"pagination": page,
		"data":       logs,
	})
}

// HandleStaffFunc returns a gin handler dispatching to a staff
// controller method
func HandleStaffFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewStaffController(ctx, container)

		switch method {
		case "scan":
			controller.Scan()
		case "addStaff":
			controller.AddStaff()
		case "getStaff":
			controller.GetStaff()
		case "getAllStaff":
			controller.GetAllStaff()
		case "getStaffByFlat":
			controller.GetStaffByFlat()
		case "linkFlat":
			controller.LinkFlat()
		case "unlinkFlat":
			controller.UnlinkFlat()
		case "deleteStaff":
			controller.DeleteStaff()
		case "getAttendance":
			controller.GetAttendance()
		default:
			response.ParamError(ctx, "Invalid method")
		}
	}
}
