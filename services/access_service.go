package services

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"gatekeeper-http-service/config"
	"gatekeeper-http-service/models"
)

// Access token subject types
const (
	SubjectResident = "RESIDENT"
	SubjectHelp     = "HELP"
)

var digitCodePattern = regexp.MustCompile(`^\d{6}$`)

// AccessResult is what the barrier displays after a scan
type AccessResult struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	AccessType string `json:"accessType"`
	Status     string `json:"status"`
}

// InterfaceAccessService validates scanned gate tokens and keeps the
// entry/exit toggle log for residents and staff.
type InterfaceAccessService interface {
	ValidateQR(token, scannedBy string) (*AccessResult, error)
	GetAccessLogsForUser(userID uint, query *models.PaginationQuery) ([]models.AccessLog, models.PaginationResult, error)
	GetAccessLogsForHelp(helpID uint, query *models.PaginationQuery) ([]models.AccessLog, models.PaginationResult, error)
}

// AccessService implements token dispatch and toggle logging
type AccessService struct {
	DB         *gorm.DB
	Visitors   InterfaceVisitorService
	GateEvents InterfaceGateEventService
	Config     *config.Config
}

// NewAccessService creates a new access service
func NewAccessService(db *gorm.DB, visitors InterfaceVisitorService, gateEvents InterfaceGateEventService, cfg *config.Config) InterfaceAccessService {
	return &AccessService{
		DB:         db,
		Visitors:   visitors,
		GateEvents: gateEvents,
		Config:     cfg,
	}
}

// ValidateQR dispatches a scanned token by shape. A bare 6-digit code
// redeems a visitor pre-approval; a RESIDENT:<id>:<name> or
// HELP:<id>:<name> token toggles the subject's entry/exit state.
func (s *AccessService) ValidateQR(token, scannedBy string) (*AccessResult, error) {
	token = strings.TrimSpace(token)

	if digitCodePattern.MatchString(token) {
		grant, err := s.Visitors.CheckInByPreApprovalCode(token, scannedBy)
		if err != nil {
			return nil, err
		}
		return &AccessResult{
			Name:       grant.Name,
			Type:       grant.Type,
			AccessType: grant.AccessType,
			Status:     grant.Status,
		}, nil
	}

	parts := strings.Split(token, ":")
	if len(parts) != 3 {
		return nil, ErrTokenMalformed
	}
	subjectType := strings.ToUpper(parts[0])
	subjectID, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return nil, ErrTokenMalformed
	}

	switch subjectType {
	case SubjectResident:
		return s.toggleResident(uint(subjectID), scannedBy)
	case SubjectHelp:
		return s.toggleHelp(uint(subjectID), scannedBy)
	default:
		return nil, ErrUnknownSubjectType
	}
}

// toggleResident appends the next entry/exit event for a resident
// user. Direction alternates off the most recent log; a subject with
// no history starts with ENTRY.
func (s *AccessService) toggleResident(userID uint, scannedBy string) (*AccessResult, error) {
	var user models.User
	if err := s.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	now := time.Now()
	var accessType string

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		accessType, err = nextAccessType(tx, "user_id = ?", userID)
		if err != nil {
			return err
		}
		log := models.AccessLog{
			UserID:     &user.ID,
			AccessType: accessType,
			Timestamp:  now,
			ScannedBy:  scannedBy,
		}
		return tx.Create(&log).Error
	})
	if err != nil {
		return nil, err
	}

	if user.SocietyID != nil {
		s.GateEvents.PublishGateEvent(*user.SocietyID, GateEvent{
			SubjectType: SubjectResident,
			SubjectName: user.FullName,
			AccessType:  accessType,
			Gate:        s.Config.DefaultGateName,
			Timestamp:   now,
		})
	}

	return &AccessResult{
		Name:       user.FullName,
		Type:       SubjectResident,
		AccessType: accessType,
		Status:     "GRANTED",
	}, nil
}

// toggleHelp appends the next entry/exit event for a staff member
func (s *AccessService) toggleHelp(helpID uint, scannedBy string) (*AccessResult, error) {
	var help models.DomesticHelp
	if err := s.DB.First(&help, helpID).Error; err != nil {
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
		var err error
		accessType, err = nextAccessType(tx, "domestic_help_id = ?", helpID)
		if err != nil {
			return err
		}
		log := models.AccessLog{
			DomesticHelpID: &help.ID,
			AccessType:     accessType,
			Timestamp:      now,
			ScannedBy:      scannedBy,
		}
		return tx.Create(&log).Error
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

	return &AccessResult{
		Name:       help.Name,
		Type:       SubjectHelp,
		AccessType: accessType,
		Status:     "GRANTED",
	}, nil
}

// nextAccessType derives the direction of the next scan from the most
// recent log for the subject: EXIT after an ENTRY, ENTRY otherwise.
func nextAccessType(tx *gorm.DB, condition string, subjectID uint) (string, error) {
	var last models.AccessLog
	err := tx.Where(condition, subjectID).Order("timestamp DESC, id DESC").First(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.AccessEntry, nil
	}
	if err != nil {
		return "", err
	}
	if last.AccessType == models.AccessEntry {
		return models.AccessExit, nil
	}
	return models.AccessEntry, nil
}

// GetAccessLogsForUser lists a resident's toggle history, newest first
func (s *AccessService) GetAccessLogsForUser(userID uint, query *models.PaginationQuery) ([]models.AccessLog, models.PaginationResult, error) {
	return s.listAccessLogs("user_id = ?", userID, query)
}

// GetAccessLogsForHelp lists a staff member's toggle history, newest first
func (s *AccessService) GetAccessLogsForHelp(helpID uint, query *models.PaginationQuery) ([]models.AccessLog, models.PaginationResult, error) {
	return s.listAccessLogs("domestic_help_id = ?", helpID, query)
}

func (s *AccessService) listAccessLogs(condition string, subjectID uint, query *models.PaginationQuery) ([]models.AccessLog, models.PaginationResult, error) {
	pageNum := query.PageNum
	if pageNum < 1 {
		pageNum = 1
	}
	pageSize := query.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	var total int64
	if err := s.DB.Model(&models.AccessLog{}).Where(condition, subjectID).Count(&total).Error; err != nil {
		return nil, models.PaginationResult{}, err
	}

	var logs []models.AccessLog
	err := s.DB.Where(condition, subjectID).
		Order("timestamp DESC").
		Offset((pageNum - 1) * pageSize).
		Limit(pageSize).
		Find(&logs).Error
	if err != nil {
		return nil, models.PaginationResult{}, err
	}

	return logs, models.NewPaginationResult(int(total), pageNum, pageSize), nil
}
