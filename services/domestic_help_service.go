package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"gatekeeper-http-service/config"
	"gatekeeper-http-service/models"
	"gatekeeper-http-service/utils"
)

// AddStaffRequest carries a new staff member registration
type AddStaffRequest struct {
	Name      string `json:"name" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	HelpType  string `json:"help_type" binding:"required"`
	PhotoURL  string `json:"photo_url"`
	PassCode  string `json:"pass_code"`
	SocietyID uint   `json:"society_id" binding:"required"`
	FlatIDs   []uint `json:"flat_ids"`
}

// StaffAccessResult is what the gate displays after a passcode scan
type StaffAccessResult struct {
	Name       string    `json:"name"`
	HelpType   string    `json:"help_type"`
	AccessType string    `json:"accessType"`
	Timestamp  time.Time `json:"timestamp"`
}

// InterfaceDomesticHelpService manages daily help staff and their
// gate attendance.
type InterfaceDomesticHelpService interface {
	RecordStaffAccess(passCode string, guardID *uint) (*StaffAccessResult, error)
	AddStaff(req *AddStaffRequest) (*models.DomesticHelp, error)
	GetStaff(staffID uint) (*models.DomesticHelp, error)
	GetAllStaff(societyID uint) ([]models.DomesticHelp, error)
	GetStaffByFlat(flatID uint) ([]models.DomesticHelp, error)
	LinkStaffToFlat(staffID, flatID uint) error
	UnlinkStaffFromFlat(staffID, flatID uint) error
	DeleteStaff(staffID uint) error
	GetAttendance(staffID uint, query *models.PaginationQuery) ([]models.DailyHelpLog, models.PaginationResult, error)
}

// DomesticHelpService implements staff management on GORM
type DomesticHelpService struct {
	DB         *gorm.DB
	GateEvents InterfaceGateEventService
	Config     *config.Config
}

// NewDomesticHelpService creates a new domestic help service
func NewDomesticHelpService(db *gorm.DB, gateEvents InterfaceGateEventService, cfg *config.Config) InterfaceDomesticHelpService {
	return &DomesticHelpService{
		DB:         db,
		GateEvents: gateEvents,
		Config:     cfg,
	}
}

// RecordStaffAccess handles a passcode scan at the gate. An open
// attendance log means the staff member is inside, so the scan closes
// it as an EXIT; otherwise a new log opens as an ENTRY.
func (s *DomesticHelpService) RecordStaffAccess(passCode string, guardID *uint) (*StaffAccessResult, error) {
	var help models.DomesticHelp
	if err := s.DB.Where("pass_code = ?", passCode).First(&help).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}
	if !help.IsActive {
		return nil, ErrStaffInactive
	}

	now := time.Now()
	var accessType string

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var open models.DailyHelpLog
		err := tx.Where("domestic_help_id = ? AND exit_time IS NULL", help.ID).
			Order("entry_time DESC").
			First(&open).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			accessType = models.AccessEntry
			log := models.DailyHelpLog{
				EntryTime:      now,
				DomesticHelpID: help.ID,
				GuardID:        guardID,
			}
			return tx.Create(&log).Error
		}
		if err != nil {
			return err
		}

		accessType = models.AccessExit
		return tx.Model(&open).Update("exit_time", now).Error
	})
	if err != nil {
		return nil, err
	}

	s.GateEvents.PublishGateEvent(help.SocietyID, GateEvent{
		SubjectType: SubjectHelp,
		SubjectName: help.Name,
		AccessType:  accessType,
		Gate:        s.Config.DefaultGateName,
		Timestamp:   now,
	})

	return &StaffAccessResult{
		Name:       help.Name,
		HelpType:   help.HelpType,
		AccessType: accessType,
		Timestamp:  now,
	}, nil
}

// AddStaff registers a new staff member. A passcode is allocated with
// a bounded retry against the uniqueness constraint unless the caller
// supplied one; a supplied code that is already taken is rejected.
func (s *DomesticHelpService) AddStaff(req *AddStaffRequest) (*models.DomesticHelp, error) {
	var society models.Society
	if err := s.DB.First(&society, req.SocietyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSocietyNotFound
		}
		return nil, err
	}

	passCode := req.PassCode
	if passCode != "" {
		var n int64
		if err := s.DB.Model(&models.DomesticHelp{}).Where("pass_code = ?", passCode).Count(&n).Error; err != nil {
			return nil, err
		}
		if n > 0 {
			return nil, ErrPassCodeTaken
		}
	} else {
		allocated := false
		for i := 0; i < maxCodeAttempts; i++ {
			candidate := utils.RandomDigitCode(6)
			var n int64
			if err := s.DB.Model(&models.DomesticHelp{}).Where("pass_code = ?", candidate).Count(&n).Error; err != nil {
				return nil, err
			}
			if n == 0 {
				passCode = candidate
				allocated = true
				break
			}
		}
		if !allocated {
			return nil, ErrCodeExhausted
		}
	}

	help := models.DomesticHelp{
		Name:      req.Name,
		Phone:     req.Phone,
		HelpType:  req.HelpType,
		IsActive:  true,
		PhotoURL:  req.PhotoURL,
		PassCode:  passCode,
		SocietyID: req.SocietyID,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&help).Error; err != nil {
			return err
		}
		for _, flatID := range req.FlatIDs {
			var flat models.Flat
			if err := tx.First(&flat, flatID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrFlatNotFound
				}
				return err
			}
			if err := tx.Model(&help).Association("Flats").Append(&flat); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &help, nil
}

// GetStaff fetches one staff member with their linked flats
func (s *DomesticHelpService) GetStaff(staffID uint) (*models.DomesticHelp, error) {
	var help models.DomesticHelp
	if err := s.DB.Preload("Flats").First(&help, staffID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}
	return &help, nil
}

// GetAllStaff lists all staff registered in a society
func (s *DomesticHelpService) GetAllStaff(societyID uint) ([]models.DomesticHelp, error) {
	var staff []models.DomesticHelp
	err := s.DB.Preload("Flats").
		Where("society_id = ?", societyID).
		Order("name ASC").
		Find(&staff).Error
	if err != nil {
		return nil, err
	}
	return staff, nil
}

// GetStaffByFlat lists the staff members working at one flat
func (s *DomesticHelpService) GetStaffByFlat(flatID uint) ([]models.DomesticHelp, error) {
	var flat models.Flat
	if err := s.DB.First(&flat, flatID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFlatNotFound
		}
		return nil, err
	}

	var staff []models.DomesticHelp
	err := s.DB.
		Joins("JOIN flat_domestic_helps ON flat_domestic_helps.domestic_help_id = domestic_helps.id").
		Where("flat_domestic_helps.flat_id = ?", flatID).
		Order("domestic_helps.name ASC").
		Find(&staff).Error
	if err != nil {
		return nil, err
	}
	return staff, nil
}

// LinkStaffToFlat attaches a staff member to a flat they work at
func (s *DomesticHelpService) LinkStaffToFlat(staffID, flatID uint) error {
	var help models.DomesticHelp
	if err := s.DB.First(&help, staffID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStaffNotFound
		}
		return err
	}
	var flat models.Flat
	if err := s.DB.First(&flat, flatID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFlatNotFound
		}
		return err
	}
	return s.DB.Model(&help).Association("Flats").Append(&flat)
}

// UnlinkStaffFromFlat detaches a staff member from a flat
func (s *DomesticHelpService) UnlinkStaffFromFlat(staffID, flatID uint) error {
	var help models.DomesticHelp
	if err := s.DB.First(&help, staffID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStaffNotFound
		}
		return err
	}
	var flat models.Flat
	if err := s.DB.First(&flat, flatID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFlatNotFound
		}
		return err
	}
	return s.DB.Model(&help).Association("Flats").Delete(&flat)
}

// DeleteStaff removes a staff member and their flat links. Attendance
// history stays for the audit trail.
func (s *DomesticHelpService) DeleteStaff(staffID uint) error {
	var help models.DomesticHelp
	if err := s.DB.First(&help, staffID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStaffNotFound
		}
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&help).Association("Flats").Clear(); err != nil {
			return err
		}
		return tx.Delete(&help).Error
	})
}

// GetAttendance lists a staff member's attendance spans, newest first
func (s *DomesticHelpService) GetAttendance(staffID uint, query *models.PaginationQuery) ([]models.DailyHelpLog, models.PaginationResult, error) {
	if _, err := s.GetStaff(staffID); err != nil {
		return nil, models.PaginationResult{}, err
	}

	pageNum := query.PageNum
	if pageNum < 1 {
		pageNum = 1
	}
	pageSize := query.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	var total int64
	if err := s.DB.Model(&models.DailyHelpLog{}).Where("domestic_help_id = ?", staffID).Count(&total).Error; err != nil {
		return nil, models.PaginationResult{}, err
	}

	var logs []models.DailyHelpLog
	err := s.DB.Where("domestic_help_id = ?", staffID).
		Order("entry_time DESC").
		Offset((pageNum - 1) * pageSize).
		Limit(pageSize).
		Find(&logs).Error
	if err != nil {
		return nil, models.PaginationResult{}, err
	}

	return logs, models.NewPaginationResult(int(total), pageNum, pageSize), nil
}
