package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"gatekeeper-http-service/config"
	"gatekeeper-http-service/models"
	"gatekeeper-http-service/utils"
)

// Attempts to find a free 6-digit code before giving up
const maxCodeAttempts = 10

// Purpose recorded on logs created through a pre-approval code
const preApprovedEntryPurpose = "Digital Pre-Approved Entry"

// CheckInRequest carries the gate-side details for a walk-in visitor
type CheckInRequest struct {
	FullName        string `json:"full_name" binding:"required"`
	Phone           string `json:"phone" binding:"required"`
	IDProofType     string `json:"id_proof_type"`
	IDProofNumber   string `json:"id_proof_number"`
	PhotoURL        string `json:"photo_url"`
	Category        string `json:"category"`
	Purpose         string `json:"purpose"`
	VehicleNumber   string `json:"vehicle_number"`
	FlatID          uint   `json:"flat_id" binding:"required"`
	DurationMinutes int    `json:"duration_minutes"`
	GateEntry       string `json:"gate_entry"`
}

// CreatePreApprovalRequest carries a resident's single-use entry grant
type CreatePreApprovalRequest struct {
	VisitorName  string    `json:"visitor_name" binding:"required"`
	VisitorPhone string    `json:"visitor_phone" binding:"required"`
	Category     string    `json:"category"`
	ValidFrom    time.Time `json:"valid_from" binding:"required"`
	ValidUntil   time.Time `json:"valid_until" binding:"required"`
	ResidentID   uint      `json:"resident_id" binding:"required"`
	FlatID       uint      `json:"flat_id" binding:"required"`
}

// CreateFrequentVisitorRequest carries a recurring entry grant
type CreateFrequentVisitorRequest struct {
	FullName   string    `json:"full_name" binding:"required"`
	Phone      string    `json:"phone" binding:"required"`
	Category   string    `json:"category" binding:"required"`
	Purpose    string    `json:"purpose"`
	ValidFrom  time.Time `json:"valid_from" binding:"required"`
	ValidUntil time.Time `json:"valid_until" binding:"required"`
	FlatID     uint      `json:"flat_id" binding:"required"`
	ResidentID uint      `json:"resident_id" binding:"required"`
}

// VisitorFilter narrows history queries by category and date range
type VisitorFilter struct {
	Category string     `form:"category"`
	From     *time.Time `form:"from"`
	To       *time.Time `form:"to"`
}

// VisitorLogResponse is the gate-dashboard view of one visit
type VisitorLogResponse struct {
	ID              uint       `json:"id"`
	VisitorName     string     `json:"visitor_name"`
	Phone           string     `json:"phone"`
	Category        string     `json:"category"`
	Purpose         string     `json:"purpose"`
	VehicleNumber   string     `json:"vehicle_number,omitempty"`
	FlatNumber      string     `json:"flat_number"`
	Building        string     `json:"building"`
	InTime          time.Time  `json:"in_time"`
	OutTime         *time.Time `json:"out_time"`
	ExpectedOutTime *time.Time `json:"expected_out_time"`
	Status          string     `json:"status"`
	GateEntry       string     `json:"gate_entry"`
}

// GateGrantResponse is the payload shown at the barrier when a
// pre-approval code is redeemed
type GateGrantResponse struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	AccessType string `json:"accessType"`
	Status     string `json:"status"`
}

// InterfaceVisitorService is the gatekeeping core: visitor identity
// resolution, the check-in/approval/check-out lifecycle, entry grants
// and the gate-dashboard queries.
type InterfaceVisitorService interface {
	CheckInVisitor(req *CheckInRequest, guardID *uint) (*VisitorLogResponse, error)
	CheckOutVisitor(logID uint) (*VisitorLogResponse, error)
	UpdateVisitorStatus(logID uint, approved bool) (*VisitorLogResponse, error)
	CheckInByPreApprovalCode(code, scannedBy string) (*GateGrantResponse, error)
	CreatePreApproval(req *CreatePreApprovalRequest) (*models.PreApproval, error)
	CreateFrequentVisitor(req *CreateFrequentVisitorRequest) (*models.FrequentVisitor, error)
	GetPreApproval(id uint) (*models.PreApproval, error)
	GetVisitorLog(logID uint) (*VisitorLogResponse, error)
	GetActiveVisitors(societyID uint) ([]VisitorLogResponse, error)
	GetVisitorHistory(societyID uint, query *models.PaginationQuery) ([]VisitorLogResponse, models.PaginationResult, error)
	SearchVisitors(societyID uint, term string) ([]VisitorLogResponse, error)
	FilterVisitors(societyID uint, filter *VisitorFilter) ([]VisitorLogResponse, error)
	GetVisitorsByFlat(flatID uint) ([]VisitorLogResponse, error)
	GetOverstayingVisitors(societyID uint) ([]VisitorLogResponse, error)
	GetPendingApprovalsForResident(residentID uint) ([]models.VisitorApproval, error)
}

// VisitorService implements the gatekeeping workflow on GORM
type VisitorService struct {
	DB         *gorm.DB
	Redis      InterfaceRedisService
	Notifier   InterfaceNotificationService
	GateEvents InterfaceGateEventService
	Config     *config.Config
}

// NewVisitorService creates a new visitor service
func NewVisitorService(db *gorm.DB, redis InterfaceRedisService, notifier InterfaceNotificationService, gateEvents InterfaceGateEventService, cfg *config.Config) InterfaceVisitorService {
	return &VisitorService{
		DB:         db,
		Redis:      redis,
		Notifier:   notifier,
		GateEvents: gateEvents,
		Config:     cfg,
	}
}

// CheckInVisitor records a visit at the gate. The visitor identity is
// resolved by phone number (details update in place on repeat visits),
// then grants decide the initial status: an active frequent-visitor
// pass or a live pre-approval auto-approves, anything else goes PENDING
// and fans out one approval request per active resident of the flat.
// Residents are alerted about the arrival either way; only the approval
// rows depend on the status.
func (s *VisitorService) CheckInVisitor(req *CheckInRequest, guardID *uint) (*VisitorLogResponse, error) {
	var flat models.Flat
	if err := s.DB.Preload("Building").First(&flat, req.FlatID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFlatNotFound
		}
		return nil, err
	}

	now := time.Now()
	category := req.Category
	if category == "" {
		category = models.CategoryGuest
	}
	gate := req.GateEntry
	if gate == "" {
		gate = s.Config.DefaultGateName
	}

	var expectedOut *time.Time
	if req.DurationMinutes > 0 {
		t := now.Add(time.Duration(req.DurationMinutes) * time.Minute)
		expectedOut = &t
	}

	var log models.VisitorLog
	var residents []models.Resident

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		visitor, err := resolveVisitor(tx, req.Phone, req.FullName, req.IDProofType, req.IDProofNumber, req.PhotoURL)
		if err != nil {
			return err
		}

		status, err := s.evaluateGrants(tx, visitor, req.FlatID, now)
		if err != nil {
			return err
		}

		log = models.VisitorLog{
			Category:        category,
			Purpose:         req.Purpose,
			VehicleNumber:   req.VehicleNumber,
			InTime:          now,
			ExpectedOutTime: expectedOut,
			Status:          status,
			GateEntry:       gate,
			VisitorID:       visitor.ID,
			FlatID:          req.FlatID,
			CheckedInByID:   guardID,
		}
		if err := tx.Create(&log).Error; err != nil {
			return err
		}
		log.Visitor = visitor
		log.Flat = &flat

		if err := tx.Where("flat_id = ? AND is_active = ?", req.FlatID, true).Find(&residents).Error; err != nil {
			return err
		}

		if status != models.StatusPending {
			return nil
		}
		for _, r := range residents {
			approval := models.VisitorApproval{
				Status:        models.StatusPending,
				RequestedAt:   now,
				VisitorLogID:  log.ID,
				ResidentID:    r.ID,
				RequestedByID: guardID,
			}
			if err := tx.Create(&approval).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if flat.Building != nil {
		s.Redis.InvalidateActiveVisitors(flat.Building.SocietyID)
		if log.Status == models.StatusApproved {
			s.GateEvents.PublishGateEvent(flat.Building.SocietyID, GateEvent{
				SubjectType: "VISITOR",
				SubjectName: log.Visitor.FullName,
				AccessType:  models.AccessEntry,
				Gate:        gate,
				Timestamp:   now,
			})
		}
	}

	for _, r := range residents {
		if r.Email != "" {
			s.Notifier.SendVisitorAlert(r.Email, r.FullName, log.Visitor.FullName, req.Purpose)
		}
	}

	resp := toVisitorLogResponse(&log)
	return &resp, nil
}

// evaluateGrants decides the initial status of a visit. Grants are
// consulted in priority order and the first match wins; a matched
// pre-approval is consumed atomically so a code redeems at most once.
func (s *VisitorService) evaluateGrants(tx *gorm.DB, visitor *models.Visitor, flatID uint, now time.Time) (string, error) {
	var freqCount int64
	err := tx.Model(&models.FrequentVisitor{}).
		Where("visitor_id = ? AND flat_id = ? AND is_active = ? AND valid_from <= ? AND valid_until >= ?",
			visitor.ID, flatID, true, now, now).
		Count(&freqCount).Error
	if err != nil {
		return "", err
	}
	if freqCount > 0 {
		return models.StatusApproved, nil
	}

	var grant models.PreApproval
	err = tx.Where("visitor_phone = ? AND flat_id = ? AND is_used = ? AND valid_from <= ? AND valid_until >= ?",
		visitor.Phone, flatID, false, now, now).
		Order("valid_until ASC").
		First(&grant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.StatusPending, nil
		}
		return "", err
	}

	res := tx.Model(&models.PreApproval{}).
		Where("id = ? AND is_used = ?", grant.ID, false).
		Update("is_used", true)
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		// lost the race for this grant, fall back to the approval flow
		return models.StatusPending, nil
	}
	return models.StatusApproved, nil
}

// CheckOutVisitor sets the out-time on an open visit. The out-time is
// written exactly once; a second check-out is a conflict.
func (s *VisitorService) CheckOutVisitor(logID uint) (*VisitorLogResponse, error) {
	log, err := s.loadLog(logID)
	if err != nil {
		return nil, err
	}
	if log.OutTime != nil {
		return nil, ErrAlreadyCheckedOut
	}

	now := time.Now()
	res := s.DB.Model(&models.VisitorLog{}).
		Where("id = ? AND out_time IS NULL", logID).
		Update("out_time", now)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrAlreadyCheckedOut
	}
	log.OutTime = &now

	s.invalidateForFlat(log.FlatID)
	if log.Flat != nil && log.Flat.Building != nil && log.Visitor != nil {
		s.GateEvents.PublishGateEvent(log.Flat.Building.SocietyID, GateEvent{
			SubjectType: "VISITOR",
			SubjectName: log.Visitor.FullName,
			AccessType:  models.AccessExit,
			Gate:        log.GateEntry,
			Timestamp:   now,
		})
	}

	resp := toVisitorLogResponse(log)
	return &resp, nil
}

// UpdateVisitorStatus resolves a PENDING visit to APPROVED or REJECTED.
// The transition happens at most once; rejection also checks the
// visitor out. One decision closes every pending approval row.
func (s *VisitorService) UpdateVisitorStatus(logID uint, approved bool) (*VisitorLogResponse, error) {
	log, err := s.loadLog(logID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	newStatus := models.StatusRejected
	if approved {
		newStatus = models.StatusApproved
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"status": newStatus}
		if !approved {
			updates["out_time"] = now
		}
		res := tx.Model(&models.VisitorLog{}).
			Where("id = ? AND status = ?", logID, models.StatusPending).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyDecided
		}

		return tx.Model(&models.VisitorApproval{}).
			Where("visitor_log_id = ? AND status = ?", logID, models.StatusPending).
			Updates(map[string]interface{}{"status": newStatus, "responded_at": now}).Error
	})
	if err != nil {
		return nil, err
	}

	log.Status = newStatus
	if !approved {
		log.OutTime = &now
	}
	s.invalidateForFlat(log.FlatID)

	resp := toVisitorLogResponse(log)
	return &resp, nil
}

// CheckInByPreApprovalCode redeems a single-use 6-digit code at the
// gate and grants entry without a resident round-trip.
func (s *VisitorService) CheckInByPreApprovalCode(code, scannedBy string) (*GateGrantResponse, error) {
	var grant models.PreApproval
	if err := s.DB.Where("code = ? AND is_used = ?", code, false).First(&grant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPassCodeNotFound
		}
		return nil, err
	}

	now := time.Now()
	if now.Before(grant.ValidFrom) || now.After(grant.ValidUntil) {
		return nil, ErrPassCodeWindow
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.PreApproval{}).
			Where("id = ? AND is_used = ?", grant.ID, false).
			Update("is_used", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrPassCodeNotFound
		}

		visitor, err := resolveVisitor(tx, grant.VisitorPhone, grant.VisitorName, "", "", "")
		if err != nil {
			return err
		}

		log := models.VisitorLog{
			Category:  grant.Category,
			Purpose:   preApprovedEntryPurpose,
			InTime:    now,
			Status:    models.StatusApproved,
			GateEntry: s.Config.DefaultGateName,
			VisitorID: visitor.ID,
			FlatID:    grant.FlatID,
		}
		return tx.Create(&log).Error
	})
	if err != nil {
		return nil, err
	}

	if societyID, err := s.societyIDForFlat(grant.FlatID); err == nil {
		s.Redis.InvalidateActiveVisitors(societyID)
		s.GateEvents.PublishGateEvent(societyID, GateEvent{
			SubjectType: "VISITOR",
			SubjectName: grant.VisitorName,
			AccessType:  models.AccessEntry,
			Gate:        s.Config.DefaultGateName,
			Timestamp:   now,
		})
	}
	config.Info("pre-approval code %s redeemed for %s (scanned by %s)", code, grant.VisitorName, scannedBy)

	return &GateGrantResponse{
		Name:       grant.VisitorName,
		Type:       "VISITOR",
		AccessType: models.AccessEntry,
		Status:     "GRANTED",
	}, nil
}

// CreatePreApproval issues a single-use entry grant with a 6-digit
// code unique among unused grants.
func (s *VisitorService) CreatePreApproval(req *CreatePreApprovalRequest) (*models.PreApproval, error) {
	var resident models.Resident
	if err := s.DB.First(&resident, req.ResidentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResidentNotFound
		}
		return nil, err
	}
	var flat models.Flat
	if err := s.DB.First(&flat, req.FlatID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFlatNotFound
		}
		return nil, err
	}

	category := req.Category
	if category == "" {
		category = models.CategoryGuest
	}

	code, err := s.allocateCode(func(candidate string) (int64, error) {
		var n int64
		err := s.DB.Model(&models.PreApproval{}).
			Where("code = ? AND is_used = ?", candidate, false).
			Count(&n).Error
		return n, err
	})
	if err != nil {
		return nil, err
	}

	grant := models.PreApproval{
		VisitorName:  req.VisitorName,
		VisitorPhone: req.VisitorPhone,
		Category:     category,
		ValidFrom:    req.ValidFrom,
		ValidUntil:   req.ValidUntil,
		Code:         code,
		IsUsed:       false,
		ResidentID:   req.ResidentID,
		FlatID:       req.FlatID,
	}
	if err := s.DB.Create(&grant).Error; err != nil {
		return nil, err
	}
	return &grant, nil
}

// CreateFrequentVisitor issues a recurring pass for one visitor at one
// flat. Duplicate passes for the same pair are rejected.
func (s *VisitorService) CreateFrequentVisitor(req *CreateFrequentVisitorRequest) (*models.FrequentVisitor, error) {
	var flat models.Flat
	if err := s.DB.First(&flat, req.FlatID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFlatNotFound
		}
		return nil, err
	}
	var resident models.Resident
	if err := s.DB.First(&resident, req.ResidentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResidentNotFound
		}
		return nil, err
	}

	var pass models.FrequentVisitor
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		visitor, err := resolveVisitor(tx, req.Phone, req.FullName, "", "", "")
		if err != nil {
			return err
		}

		var existing int64
		err = tx.Model(&models.FrequentVisitor{}).
			Where("visitor_id = ? AND flat_id = ? AND is_active = ?", visitor.ID, req.FlatID, true).
			Count(&existing).Error
		if err != nil {
			return err
		}
		if existing > 0 {
			return ErrFrequentVisitorExists
		}

		pass = models.FrequentVisitor{
			VisitorID:   visitor.ID,
			FlatID:      req.FlatID,
			Category:    req.Category,
			Purpose:     req.Purpose,
			ValidFrom:   req.ValidFrom,
			ValidUntil:  req.ValidUntil,
			IsActive:    true,
			CreatedByID: req.ResidentID,
		}
		if err := tx.Create(&pass).Error; err != nil {
			return err
		}
		pass.Visitor = visitor
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &pass, nil
}

// GetPreApproval fetches one pre-approval grant by id
func (s *VisitorService) GetPreApproval(id uint) (*models.PreApproval, error) {
	var grant models.PreApproval
	if err := s.DB.First(&grant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPassCodeNotFound
		}
		return nil, err
	}
	return &grant, nil
}

// GetVisitorLog fetches one visit by id
func (s *VisitorService) GetVisitorLog(logID uint) (*VisitorLogResponse, error) {
	log, err := s.loadLog(logID)
	if err != nil {
		return nil, err
	}
	resp := toVisitorLogResponse(log)
	return &resp, nil
}

// GetActiveVisitors lists visitors currently inside a society, newest
// first. Served from the Redis cache when fresh.
func (s *VisitorService) GetActiveVisitors(societyID uint) ([]VisitorLogResponse, error) {
	var cached []VisitorLogResponse
	if err := s.Redis.GetActiveVisitors(societyID, &cached); err == nil {
		return cached, nil
	}

	var logs []models.VisitorLog
	err := s.societyScoped(societyID).
		Where("visitor_logs.out_time IS NULL").
		Order("visitor_logs.in_time DESC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}

	responses := toVisitorLogResponses(logs)
	if err := s.Redis.CacheActiveVisitors(societyID, responses); err != nil {
		config.Warning("failed to cache active visitors for society %d: %v", societyID, err)
	}
	return responses, nil
}

// GetVisitorHistory lists all visits in a society, paginated
func (s *VisitorService) GetVisitorHistory(societyID uint, query *models.PaginationQuery) ([]VisitorLogResponse, models.PaginationResult, error) {
	pageNum := query.PageNum
	if pageNum < 1 {
		pageNum = 1
	}
	pageSize := query.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	var total int64
	if err := s.societyScoped(societyID).Model(&models.VisitorLog{}).Count(&total).Error; err != nil {
		return nil, models.PaginationResult{}, err
	}

	var logs []models.VisitorLog
	err := s.societyScoped(societyID).
		Order("visitor_logs.in_time DESC").
		Offset((pageNum - 1) * pageSize).
		Limit(pageSize).
		Find(&logs).Error
	if err != nil {
		return nil, models.PaginationResult{}, err
	}

	return toVisitorLogResponses(logs), models.NewPaginationResult(int(total), pageNum, pageSize), nil
}

// SearchVisitors finds visits by visitor name or phone fragment
func (s *VisitorService) SearchVisitors(societyID uint, term string) ([]VisitorLogResponse, error) {
	like := "%" + term + "%"
	var logs []models.VisitorLog
	err := s.societyScoped(societyID).
		Joins("JOIN visitors ON visitors.id = visitor_logs.visitor_id").
		Where("visitors.full_name LIKE ? OR visitors.phone LIKE ?", like, like).
		Order("visitor_logs.in_time DESC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return toVisitorLogResponses(logs), nil
}

// FilterVisitors lists visits narrowed by category and in-time range
func (s *VisitorService) FilterVisitors(societyID uint, filter *VisitorFilter) ([]VisitorLogResponse, error) {
	q := s.societyScoped(societyID)
	if filter.Category != "" {
		q = q.Where("visitor_logs.category = ?", filter.Category)
	}
	if filter.From != nil {
		q = q.Where("visitor_logs.in_time >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("visitor_logs.in_time <= ?", *filter.To)
	}

	var logs []models.VisitorLog
	if err := q.Order("visitor_logs.in_time DESC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return toVisitorLogResponses(logs), nil
}

// GetVisitorsByFlat lists all visits to one flat, newest first
func (s *VisitorService) GetVisitorsByFlat(flatID uint) ([]VisitorLogResponse, error) {
	var logs []models.VisitorLog
	err := s.DB.
		Preload("Visitor").Preload("Flat").Preload("Flat.Building").
		Where("flat_id = ?", flatID).
		Order("in_time DESC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return toVisitorLogResponses(logs), nil
}

// GetOverstayingVisitors lists visitors still inside past their
// expected out-time
func (s *VisitorService) GetOverstayingVisitors(societyID uint) ([]VisitorLogResponse, error) {
	var logs []models.VisitorLog
	err := s.societyScoped(societyID).
		Where("visitor_logs.out_time IS NULL AND visitor_logs.expected_out_time IS NOT NULL AND visitor_logs.expected_out_time < ?", time.Now()).
		Order("visitor_logs.expected_out_time ASC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return toVisitorLogResponses(logs), nil
}

// GetPendingApprovalsForResident lists the open approval requests
// waiting on one resident
func (s *VisitorService) GetPendingApprovalsForResident(residentID uint) ([]models.VisitorApproval, error) {
	var approvals []models.VisitorApproval
	err := s.DB.
		Preload("VisitorLog").Preload("VisitorLog.Visitor").Preload("VisitorLog.Flat").
		Where("resident_id = ? AND status = ?", residentID, models.StatusPending).
		Order("requested_at DESC").
		Find(&approvals).Error
	if err != nil {
		return nil, err
	}
	return approvals, nil
}

// societyScoped narrows visitor log queries to one society through the
// flat → building chain
func (s *VisitorService) societyScoped(societyID uint) *gorm.DB {
	return s.DB.Model(&models.VisitorLog{}).
		Preload("Visitor").Preload("Flat").Preload("Flat.Building").
		Joins("JOIN flats ON flats.id = visitor_logs.flat_id").
		Joins("JOIN buildings ON buildings.id = flats.building_id").
		Where("buildings.society_id = ?", societyID)
}

func (s *VisitorService) societyIDForFlat(flatID uint) (uint, error) {
	var flat models.Flat
	if err := s.DB.Preload("Building").First(&flat, flatID).Error; err != nil {
		return 0, err
	}
	if flat.Building == nil {
		return 0, ErrSocietyNotFound
	}
	return flat.Building.SocietyID, nil
}

func (s *VisitorService) invalidateForFlat(flatID uint) {
	if societyID, err := s.societyIDForFlat(flatID); err == nil {
		s.Redis.InvalidateActiveVisitors(societyID)
	}
}

func (s *VisitorService) loadLog(logID uint) (*models.VisitorLog, error) {
	var log models.VisitorLog
	err := s.DB.
		Preload("Visitor").Preload("Flat").Preload("Flat.Building").
		First(&log, logID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVisitorLogNotFound
		}
		return nil, err
	}
	return &log, nil
}

// allocateCode draws random 6-digit codes until one passes the
// caller's uniqueness check, bounded by maxCodeAttempts
func (s *VisitorService) allocateCode(inUse func(string) (int64, error)) (string, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		candidate := utils.RandomDigitCode(6)
		n, err := inUse(candidate)
		if err != nil {
			return "", err
		}
		if n == 0 {
			return candidate, nil
		}
	}
	return "", ErrCodeExhausted
}

// resolveVisitor finds the visitor identity behind a phone number,
// creating it on first contact. Non-empty details overwrite what is on
// file so the newest gate-side information wins.
func resolveVisitor(tx *gorm.DB, phone, fullName, idProofType, idProofNumber, photoURL string) (*models.Visitor, error) {
	var visitor models.Visitor
	err := tx.Where("phone = ?", phone).First(&visitor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		visitor = models.Visitor{
			FullName:      fullName,
			Phone:         phone,
			IDProofType:   idProofType,
			IDProofNumber: idProofNumber,
			PhotoURL:      photoURL,
		}
		if err := tx.Create(&visitor).Error; err != nil {
			return nil, err
		}
		return &visitor, nil
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if fullName != "" && fullName != visitor.FullName {
		updates["full_name"] = fullName
		visitor.FullName = fullName
	}
	if idProofType != "" && idProofType != visitor.IDProofType {
		updates["id_proof_type"] = idProofType
		visitor.IDProofType = idProofType
	}
	if idProofNumber != "" && idProofNumber != visitor.IDProofNumber {
		updates["id_proof_number"] = idProofNumber
		visitor.IDProofNumber = idProofNumber
	}
	if photoURL != "" && photoURL != visitor.PhotoURL {
		updates["photo_url"] = photoURL
		visitor.PhotoURL = photoURL
	}
	if len(updates) > 0 {
		if err := tx.Model(&visitor).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &visitor, nil
}

func toVisitorLogResponse(log *models.VisitorLog) VisitorLogResponse {
	resp := VisitorLogResponse{
		ID:              log.ID,
		Category:        log.Category,
		Purpose:         log.Purpose,
		VehicleNumber:   log.VehicleNumber,
		InTime:          log.InTime,
		OutTime:         log.OutTime,
		ExpectedOutTime: log.ExpectedOutTime,
		Status:          log.DisplayStatus(),
		GateEntry:       log.GateEntry,
	}
	if log.Visitor != nil {
		resp.VisitorName = log.Visitor.FullName
		resp.Phone = log.Visitor.Phone
	}
	if log.Flat != nil {
		resp.FlatNumber = log.Flat.FlatNumber
		if log.Flat.Building != nil {
			resp.Building = log.Flat.Building.Name
		}
	}
	return resp
}

func toVisitorLogResponses(logs []models.VisitorLog) []VisitorLogResponse {
	responses := make([]VisitorLogResponse, 0, len(logs))
	for i := range logs {
		responses = append(responses, toVisitorLogResponse(&logs[i]))
	}
	return responses
}
