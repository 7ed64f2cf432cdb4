package controllers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"

	"gatekeeper-http-service/internal/error/response"
	"gatekeeper-http-service/models"
	"gatekeeper-http-service/services"
	"gatekeeper-http-service/services/container"
)

// InterfaceAccessController defines the gate scan operations
type InterfaceAccessController interface {
	ValidateQR()
	GetPassQR()
	GetUserAccessLogs()
	GetHelpAccessLogs()
}

// AccessController handles scanned gate tokens
type AccessController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAccessController creates a new access controller
func NewAccessController(ctx *gin.Context, container *container.ServiceContainer) *AccessController {
	return &AccessController{
		Ctx:       ctx,
		Container: container,
	}
}

func (c *AccessController) accessService() services.InterfaceAccessService {
	return c.Container.GetService("access").(services.InterfaceAccessService)
}

// ValidateQRRequest carries a scanned token
type ValidateQRRequest struct {
	Token     string `json:"token" binding:"required"`
	ScannedBy string `json:"scanned_by"`
}

// ValidateQR validates a scanned gate token
// @Summary      Validate a scanned QR token
// @Description  6-digit codes redeem a visitor pre-approval; RESIDENT/HELP tokens toggle the subject's entry-exit state
// @Tags         Access
// @Accept       json
// @Produce      json
// @Param        request body ValidateQRRequest true "Scanned token"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/access/validate-qr [post]
// @Security     BearerAuth
func (c *AccessController) ValidateQR() {
	var req ValidateQRRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	result, err := c.accessService().ValidateQR(req.Token, req.ScannedBy)
	if err != nil {
		failFromError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, result)
}

// GetPassQR renders a resident or staff gate pass as a QR image
// @Summary      Gate pass QR code
// @Description  PNG QR image encoding a RESIDENT or HELP toggle token
// @Tags         Access
// @Produce      png
// @Param        type path string true "Subject type (resident or help)"
// @Param        id path int true "Subject ID"
// @Success      200  {file}  binary
// @Failure      404  {object}  response.Response
// @Router       /api/access/pass/{type}/{id}/qr [get]
// @Security     BearerAuth
func (c *AccessController) GetPassQR() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "Invalid id parameter")
		return
	}

	db := c.Container.GetDB()
	var token string

	switch strings.ToLower(c.Ctx.Param("type")) {
	case "resident":
		var user models.User
		if err := db.First(&user, uint(id)).Error; err != nil {
			failFromError(c.Ctx, services.ErrUserNotFound)
			return
		}
		token = fmt.Sprintf("%s:%d:%s", services.SubjectResident, user.ID, user.FullName)
	case "help":
		var help models.DomesticHelp
		if err := db.First(&help, uint(id)).Error; err != nil {
			failFromError(c.Ctx, services.ErrStaffNotFound)
			return
		}
		token = fmt.Sprintf("%s:%d:%s", services.SubjectHelp, help.ID, help.Name)
	default:
		response.ParamError(c.Ctx, "type must be resident or help")
		return
	}

	png, err := qrcode.Encode(token, qrcode.Medium, 256)
	if err != nil {
		response.ServerError(c.Ctx)
		return
	}
	c.Ctx.Data(200, "image/png", png)
}

// GetUserAccessLogs lists a resident's toggle history
// @Summary      Resident access logs
// @Tags         Access
// @Produce      json
// @Param        userId path int true "User ID"
// @Param        pageNum query int false "Page number"
// @Param        pageSize query int false "Page size"
// @Success      200  {object}  response.Response
// @Router       /api/access/logs/user/{userId} [get]
// @Security     BearerAuth
func (c *AccessController) GetUserAccessLogs() {
	c.listLogs("userId", c.accessService().GetAccessLogsForUser)
}

// GetHelpAccessLogs lists a staff member's toggle history
// @Summary      Staff access logs
// @Tags         Access
// @Produce      json
// @Param        helpId path int true "Domestic help ID"
// @Param        pageNum query int false "Page number"
// @Param        pageSize query int false "Page size"
// @Success      200  {object}  response.Response
// @Router       /api/access/logs/help/{helpId} [get]
// @Security     BearerAuth
func (c *AccessController) GetHelpAccessLogs() {
	c.listLogs("helpId", c.accessService().GetAccessLogsForHelp)
}

func (c *AccessController) listLogs(param string, fetch func(uint, *models.PaginationQuery) ([]models.AccessLog, models.PaginationResult, error)) {
	id, err := strconv.ParseUint(c.Ctx.Param(param), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "Invalid "+param+" parameter")
		return
	}

	var query models.PaginationQuery
	_ = c.Ctx.ShouldBindQuery(&query)

	logs, page, err := fetch(uint(id), &query)
	if err != nil {
		failFromError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, gin.H{
		"pagination": page,
		"data":       logs,
	})
}

// HandleAccessFunc returns a gin handler dispatching to an access
// controller method
func HandleAccessFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAccessController(ctx, container)

		switch method {
		case "validateQR":
			controller.ValidateQR()
		case "getPassQR":
			controller.GetPassQR()
		case "getUserAccessLogs":
			controller.GetUserAccessLogs()
		case "getHelpAccessLogs":
			controller.GetHelpAccessLogs()
		default:
			response.ParamError(ctx, "Invalid method")
		}
	}
}
