package controllers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"

	"gatekeeper-http-service/internal/error/response"
	"gatekeeper-http-service/models"
	"gatekeeper-http-service/services"
	"gatekeeper-http-service/services/container"
)

// InterfaceVisitorController defines the visitor gate operations
type InterfaceVisitorController interface {
	CheckIn()
	CheckOut()
	Approve()
	Reject()
	GetVisitorLog()
	GetActiveVisitors()
	GetHistory()
	Search()
	Filter()
	GetByFlat()
	GetOverstaying()
	GetPendingApprovals()
	CreatePreApproval()
	GetPreApprovalQR()
	CreateFrequentVisitor()
}

// VisitorController handles visitor lifecycle requests
type VisitorController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewVisitorController creates a new visitor controller
func NewVisitorController(ctx *gin.Context, container *container.ServiceContainer) *VisitorController {
	return &VisitorController{
		Ctx:       ctx,
		Container: container,
	}
}

func (c *VisitorController) visitorService() services.InterfaceVisitorService {
	return c.Container.GetService("visitor").(services.InterfaceVisitorService)
}

// guardID reads the authenticated gate operator from the context
func (c *VisitorController) guardID() *uint {
	if v, exists := c.Ctx.Get("userID"); exists {
		if id, ok := v.(uint); ok {
			return &id
		}
	}
	return nil
}

func (c *VisitorController) paramID(name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Ctx.Param(name), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "Invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}

func (c *VisitorController) pagination() *models.PaginationQuery {
	var query models.PaginationQuery
	_ = c.Ctx.ShouldBindQuery(&query)
	return &query
}

// CheckIn records a walk-in visitor at the gate
// @Summary      Check in a visitor
// @Description  Registers a visitor at the gate; grants decide whether entry is auto-approved or needs resident approval
// @Tags         Visitors
// @Accept       json
// @Produce      json
// @Param        request body services.CheckInRequest true "Visitor details"
// @Success      201  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/visitors/check-in [post]
// @Security     BearerAuth
func (c *VisitorController) CheckIn() {
	var req services.CheckInRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	result, err := c.visitorService().CheckInVisitor(&req, c.guardID())
	if err != nil {
		failFromError(c.Ctx, err)
		return
	}
	response.Created(c.Ctx, result)
}

// CheckOut marks a visitor as having left
// @Summary      Check out a visitor
// @Description  Sets the out-time on an open visit; conflicts if already checked out
// @Tags         Visitors
// @Produce      json
// @Param        logId path int true "Visitor log ID"
// @Success      200  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/visitors/check-out/{logId} [post]
// @Security     BearerAuth
func (c *VisitorController) CheckOut() {
	logID, ok := c.paramID("logId")
	if !ok {
		return
	}

	result, err := c.visitorService().CheckOutVisitor(logID)
	if err != nil {
		failFromError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, result)
}

// Approve approves a pending visit
// @Summary      Approve a pending visitor
// @Tags         Visitors
// @Produce      json
// @Param        logId path int true "Visitor log ID"
// @Success      200  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/visitors/{logId}/approve [post]
// @Security     BearerAuth
func (c *VisitorController) Approve() {
	c.decide(true)
}

// Reject rejects a pending visit and checks the visitor out
// @Summary      Reject a pending visitor
// @Tags         Visitors
// @Produce      json
// @Param        logId path int true "Visitor log ID"
// @Success      200  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/visitors/{logId}/reject [post]
// @Security     BearerAuth
func (c *VisitorController) Reject() {
	c.decide(false)
}

func (c *VisitorController) decide(approved bool) {
	logID, ok := c.paramID("logId")
	if !ok {
		return
	}

	result, err := c.visitorService().UpdateVisitorStatus(logID, approved)
	if err != nil {
		failFromError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, result)
}

// GetVisitorLog fetches one visit
// @Summary      Get a visitor log
// @Tags         Visitors
// @Produce      json
// @Param        logId path int true "Visitor log ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/visitors/{logId} [get]
// @Security     BearerAuth
func (c *VisitorController) GetVisitorLog() {
	logID, ok := c.paramID("logId")
	if !ok {
		return
	}

	result, err := c.visitorService().GetVisitorLog(logID)
	if err != nil {
		failFromError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, result)
}

// societyID resolves the society scope from query or token claims
func (c *VisitorController) societyID() (uint, bool) {
	if raw := c.Ctx.Query("society_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.ParamError(c.Ctx, "Invalid society_id parameter")
			return 0, false
		}
		return uint(id), true
	}
	if v, exists := c.Ctx.Get("societyID"); exists {
		if id, ok := v.(uint); ok {
			return id, true
		}
	}
	response.ParamError(c.Ctx, "society_id is required")
	return 0, false
}

// GetActiveVisitors lists visitors currently inside
// @Summary      List active visitors
// @Description  Visitors inside the society right now, newest first
// @Tags         Visitors
// @Produce      json
// @Param        society_id query int false "Society ID (defaults to token scope)"
// @Success      200  {object}  response.Response
// @Router       /api/visitors/active [get]
// @Security     BearerAuth
func (c *VisitorController) GetActiveVisitors() {
	societyID, ok := c.societyID()
	if !ok {
		return
	}

	result, err := c.visitorService().GetActiveVisitors(societyID)
	if err != nil {
		failFromError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, result)
}

// GetHistory lists all visits in a society, paginated
// @Summary      Visitor history
// @Tags         Visitors
// @Produce      json
// @Param        society_id query int false "Society ID (defaults to token scope)"
// @Param        pageNum query int false "Page number"
// @Param        pageSize query int false "Page size"
// @Success      200  {object}  response.Response
// @Router       /api/visitors/history [get]
// @Security     BearerAuth
func (c *VisitorController) GetHistory() {
	societyID, ok := c.societyID()
	if !ok {
		return
	}

	logs, page, err := c.visitorService().GetVisitorHistory(societyID, c.pagination())
	if err != nil {
		failFromError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, gin.H{
		"pagination": page,
		"data":       logs,
	})
}

// Search finds visits by visitor name or phone
// @Summary      Search visitors
// @Tags         Visitors
// @Produce      json
// @Param        society_id query int false "Society ID (defaults to token scope)"
// @Param        q query string true "Name or phone fragment"
// @Success      200  {object}  response.Response
// @Router       /api/visitors/search [get]
// @Security     BearerAuth
func (c *VisitorController) Search() {
	societyID, ok := c.societyID()
	if !ok {
		return
	}
	term := c.Ctx.Query("q")
	if term == "" {
		response.ParamError(c.Ctx, "q is required")
		return
	}

	result, err := c.visitorService().SearchVisitors(societyID, term)
	if err != nil {
		failFromError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, result)
}

// Filter narrows visits by category and date range
// @Summary      Filter visitors
// @Tags         Visitors
// @Produce      json
// @Param        society_id query int false "Society ID (defaults to token scope)"
// @Param        category query string false "Visitor category"
// @Param        from query string false "In-time lower bound (RFC3339)"
// @Param        to query string false "In-time upper bound (RFC3339)"
// @Success      200  {object}  response.Response
// @Router       /api/visitors/filter [get]
// @Security     BearerAuth
func (c *VisitorController) Filter() {
	societyID, ok := c.societyID()
	if !ok {
		return
	}

	filter := services.VisitorFilter{Category: c.Ctx.Query("category")}
	if raw := c.Ctx.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.ParamError(c.Ctx, "Invalid from parameter")
			return
		}
		filter.From = &t
	}
	if raw := c.Ctx.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.ParamError(c.Ctx, "Invalid to parameter")
			return
		}
		filter.To = &t
	}

	result, err := c.visitorService().FilterVisitors(societyID, &filter)
	if err != nil {
		failFromError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, result)
}

// GetByFlat lists all visits to one flat
// @Summary      Visitors by flat
// @Tags         Visitors
// @Produce      json
// @Param        flatId path int true "Flat ID"
// @Success      200  {object}  response.Response
// @Router       /api/visitors/flat/{flatId} [get]
// @Security     BearerAuth
func (c *VisitorController) GetByFlat() {
	flatID, ok := c.paramID("flatId")
	if !ok {
		return
	}

	result, err := c.visitorService().GetVisitorsByFlat(flatID)
	if err != nil {
		failFromError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, result)
}

// GetOverstaying lists visitors inside past their expected out-time
// @Summary      Overstaying visitors
// @Tags         Visitors
// @Produce      json
// @Param        society_id query int false "Society ID (defaults to token scope)"
// @Success      200  {object}  response.Response
// @Router       /api/visitors/overstaying [get]
// @Security     BearerAuth
func (c *VisitorController) GetOverstaying() {
	societyID, ok := c.societyID()
	if !ok {
		return
	}

	result, err := c.visitorService().GetOverstayingVisitors(societyID)
	if err != nil {
		failFromError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, result)
}

// GetPendingApprovals lists a resident's open approval requests
// @Summary      Pending approvals for a resident
// @Tags         Visitors
// @Produce      json
// @Param        residentId path int true "Resident ID"
// @Success      200  {object}  response.Response
// @Router       /api/visitors/pending-approvals/{residentId} [get]
// @Security     BearerAuth
func (c *VisitorController) GetPendingApprovals() {
	residentID, ok := c.paramID("residentId")
	if !ok {
		return
	}

	result, err := c.visitorService().GetPendingApprovalsForResident(residentID)
	if err != nil {
		failFromError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, result)
}

// CreatePreApproval issues a single-use entry code
// @Summary      Create a pre-approval
// @Description  Issues a single-use 6-digit entry code for an expected visitor
// @Tags         Visitors
// @Accept       json
// @Produce      json
// @Param        request body services.CreatePreApprovalRequest true "Grant details"
// @Success      201  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/visitors/pre-approve [post]
// @Security     BearerAuth
func (c *VisitorController) CreatePreApproval() {
	var req services.CreatePreApprovalRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}
	if !req.ValidUntil.After(req.ValidFrom) {
		response.ParamError(c.Ctx, "valid_until must be after valid_from")
		return
	}

	grant, err := c.visitorService().CreatePreApproval(&req)
	if err != nil {
		failFromError(c.Ctx, err)
		return
	}
	response.Created(c.Ctx, grant)
}

// GetPreApprovalQR renders a pre-approval code as a QR image
// @Summary      Pre-approval QR code
// @Description  PNG QR image encoding the grant's 6-digit code, for sharing with the visitor
// @Tags         Visitors
// @Produce      png
// @Param        id path int true "Pre-approval ID"
// @Success      200  {file}  binary
// @Failure      404  {object}  response.Response
// @Router       /api/visitors/pre-approvals/{id}/qr [get]
// @Security     BearerAuth
func (c *VisitorController) GetPreApprovalQR() {
	id, ok := c.paramID("id")
	if !ok {
		return
	}

	grant, err := c.visitorService().GetPreApproval(id)
	if err != nil {
		failFromError(c.Ctx, err)
		return
	}

	png, err := qrcode.Encode(grant.Code, qrcode.Medium, 256)
	if err != nil {
		response.ServerError(c.Ctx)
		return
	}
	c.Ctx.Data(200, "image/png", png)
}

// CreateFrequentVisitor issues a recurring pass
// @Summary      Create a frequent visitor pass
// @Description  Recurring entry grant for regulars like domestic help or delivery persons
// @Tags         Visitors
// @Accept       json
// @Produce      json
// @Param        request body services.CreateFrequentVisitorRequest true "Pass details"
// @Success      201  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/visitors/frequent [post]
// @Security     BearerAuth
func (c *VisitorController) CreateFrequentVisitor() {
	var req services.CreateFrequentVisitorRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}
	if !req.ValidUntil.After(req.ValidFrom) {
		response.ParamError(c.Ctx, "valid_until must be after valid_from")
		return
	}

	pass, err := c.visitorService().CreateFrequentVisitor(&req)
	if err != nil {
		failFromError(c.Ctx, err)
		return
	}
	response.Created(c.Ctx, pass)
}

// HandleVisitorFunc returns a gin handler dispatching to a visitor
// controller method
func HandleVisitorFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewVisitorController(ctx, container)

		switch method {
		case "checkIn":
			controller.CheckIn()
		case "checkOut":
			controller.CheckOut()
		case "approve":
			controller.Approve()
		case "reject":
			controller.Reject()
		case "getVisitorLog":
			controller.GetVisitorLog()
		case "getActiveVisitors":
			controller.GetActiveVisitors()
		case "getHistory":
			controller.GetHistory()
		case "search":
			controller.Search()
		case "filter":
			controller.Filter()
		case "getByFlat":
			controller.GetByFlat()
		case "getOverstaying":
			controller.GetOverstaying()
		case "getPendingApprovals":
			controller.GetPendingApprovals()
		case "createPreApproval":
			controller.CreatePreApproval()
		case "getPreApprovalQR":
			controller.GetPreApprovalQR()
		case "createFrequentVisitor":
			controller.CreateFrequentVisitor()
		default:
			response.ParamError(ctx, "Invalid method")
		}
	}
}
