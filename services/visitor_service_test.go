package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatekeeper-http-service/models"
)

func TestCheckInVisitor_PendingFansOutToActiveResidents(t *testing.T) {
	db := setupTestDB(t)
	f := seedSociety(t, db, 3)

	inactive := models.Resident{
		FullName: "Moved Out",
		Email:    "gone@example.com",
		IsActive: false,
		FlatID:   f.Flat.ID,
	}
	require.NoError(t, db.Create(&inactive).Error)

	svc, _, notifier, _ := newTestVisitorService(t, db)

	result, err := svc.CheckInVisitor(&CheckInRequest{
		FullName: "Ravi Kumar",
		Phone:    "9876543210",
		Category: models.CategoryGuest,
		Purpose:  "Birthday party",
		FlatID:   f.Flat.ID,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, result.Status)
	assert.Equal(t, "Main Gate", result.GateEntry)

	var approvals []models.VisitorApproval
	require.NoError(t, db.Find(&approvals).Error)
	assert.Len(t, approvals, 3, "one approval per active resident")
	for _, a := range approvals {
		assert.Equal(t, models.StatusPending, a.Status)
	}

	assert.Equal(t, 3, notifier.count(), "one alert per active resident")
}

func TestCheckInVisitor_PhoneResolvesToOneVisitor(t *testing.T) {
	db := setupTestDB(t)
	f := seedSociety(t, db, 1)
	svc, _, _, _ := newTestVisitorService(t, db)

	_, err := svc.CheckInVisitor(&CheckInRequest{
		FullName: "R. Kumar",
		Phone:    "9876543210",
		FlatID:   f.Flat.ID,
	}, nil)
	require.NoError(t, err)

	_, err = svc.CheckInVisitor(&CheckInRequest{
		FullName:    "Ravi Kumar",
		Phone:       "9876543210",
		IDProofType: "Aadhaar",
		FlatID:      f.Flat.ID,
	}, nil)
	require.NoError(t, err)

	var visitors []models.Visitor
	require.NoError(t, db.Find(&visitors).Error)
	require.Len(t, visitors, 1, "repeat phone must not create a second identity")
	assert.Equal(t, "Ravi Kumar", visitors[0].FullName, "latest details win")
	assert.Equal(t, "Aadhaar", visitors[0].IDProofType)

	var logCount int64
	require.NoError(t, db.Model(&models.VisitorLog{}).Count(&logCount).Error)
	assert.EqualValues(t, 2, logCount)
}

func TestCheckInVisitor_FrequentVisitorAutoApproves(t *testing.T) {
	db := setupTestDB(t)
	f := seedSociety(t, db, 2)
	svc, _, notifier, gateEvents := newTestVisitorService(t, db)

	pass, err := svc.CreateFrequentVisitor(&CreateFrequentVisitorRequest{
		FullName:   "Daily Maid",
		Phone:      "9000000001",
		Category:   models.CategoryMaid,
		ValidFrom:  time.Now().Add(-time.Hour),
		ValidUntil: time.Now().Add(30 * 24 * time.Hour),
		FlatID:     f.Flat.ID,
		ResidentID: f.Residents[0].ID,
	})
	require.NoError(t, err)
	assert.True(t, pass.IsActive)

	result, err := svc.CheckInVisitor(&CheckInRequest{
		FullName: "Daily Maid",
		Phone:    "9000000001",
		Category: models.CategoryMaid,
		FlatID:   f.Flat.ID,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCheckedIn, result.Status)

	var approvalCount int64
	require.NoError(t, db.Model(&models.VisitorApproval{}).Count(&approvalCount).Error)
	assert.Zero(t, approvalCount, "auto-approved visits need no resident round-trip")
	assert.Equal(t, 2, notifier.count(), "residents still hear about the arrival")

	gateEvents.mu.Lock()
	defer gateEvents.mu.Unlock()
	require.Len(t, gateEvents.events, 1)
	assert.Equal(t, models.AccessEntry, gateEvents.events[0].AccessType)
}

func TestCheckInVisitor_ExpiredFrequentVisitorGoesPending(t *testing.T) {
	db := setupTestDB(t)
	f := seedSociety(t, db, 1)
	svc, _, _, _ := newTestVisitorService(t, db)

	_, err := svc.CreateFrequentVisitor(&CreateFrequentVisitorRequest{
		FullName:   "Old Driver",
		Phone:      "9000000002",
		Category:   models.CategoryOther,
		ValidFrom:  time.Now().Add(-48 * time.Hour),
		ValidUntil: time.Now().Add(-24 * time.Hour),
		FlatID:     f.Flat.ID,
		ResidentID: f.Residents[0].ID,
	})
	require.NoError(t, err)

	result, err := svc.CheckInVisitor(&CheckInRequest{
		FullName: "Old Driver",
		Phone:    "9000000002",
		FlatID:   f.Flat.ID,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, result.Status)
}

func TestCheckInVisitor_FlatNotFound(t *testing.T) {
	db := setupTestDB(t)
	seedSociety(t, db, 1)
	svc, _, _, _ := newTestVisitorService(t, db)

	_, err := svc.CheckInVisitor(&CheckInRequest{
		FullName: "Nobody",
		Phone:    "9111111111",
		FlatID:   9999,
	}, nil)
	assert.ErrorIs(t, err, ErrFlatNotFound)
}

func TestCreateFrequentVisitor_DuplicatePairRejected(t *testing.T) {
	db := setupTestDB(t)
	f := seedSociety(t, db, 1)
	svc, _, _, _ := newTestVisitorService(t, db)

	req := &CreateFrequentVisitorRequest{
		FullName:   "Daily Maid",
		Phone:      "9000000001",
		Category:   models.CategoryMaid,
		ValidFrom:  time.Now(),
		ValidUntil: time.Now().Add(24 * time.Hour),
		FlatID:     f.Flat.ID,
		ResidentID: f.Residents[0].ID,
	}

	_, err := svc.CreateFrequentVisitor(req)
	require.NoError(t, err)

	_, err = svc.CreateFrequentVisitor(req)
	assert.ErrorIs(t, err, ErrFrequentVisitorExists)
}

func TestCheckOutVisitor_OutTimeSetsOnce(t *testing.T) {
	db := setupTestDB(t)
	f := seedSociety(t, db, 1)
	svc, _, _, _ := newTestVisitorService(t, db)

	checkedIn, err := svc.CheckInVisitor(&CheckInRequest{
		FullName: "Ravi Kumar",
		Phone:    "9876543210",
		FlatID:   f.Flat.ID,
	}, nil)
	require.NoError(t, err)

	result, err := svc.CheckOutVisitor(checkedIn.ID)
	require.NoError(t, err)
	require.NotNil(t, result.OutTime)
	assert.Equal(t, models.StatusCheckedOut, result.Status)
	firstOut := *result.OutTime

	_, err = svc.CheckOutVisitor(checkedIn.ID)
	assert.ErrorIs(t, err, ErrAlreadyCheckedOut)

	var log models.VisitorLog
	require.NoError(t, db.First(&log, checkedIn.ID).Error)
	require.NotNil(t, log.OutTime)
	assert.WithinDuration(t, firstOut, *log.OutTime, time.Second, "out-time must not move on repeat check-out")
}

func TestUpdateVisitorStatus_DecidesExactlyOnce(t *testing.T) {
	db := setupTestDB(t)
	f := seedSociety(t, db, 2)
	svc, _, _, _ := newTestVisitorService(t, db)

	checkedIn, err := svc.CheckInVisitor(&CheckInRequest{
		FullName: "Ravi Kumar",
		Phone:    "9876543210",
		FlatID:   f.Flat.ID,
	}, nil)
	require.NoError(t, err)

	result, err := svc.UpdateVisitorStatus(checkedIn.ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCheckedIn, result.Status)

	// One decision closes every pending approval row
	var approvals []models.VisitorApproval
	require.NoError(t, db.Where("visitor_log_id = ?", checkedIn.ID).Find(&approvals).Error)
	require.Len(t, approvals, 2)
	for _, a := range approvals {
		assert.Equal(t, models.StatusApproved, a.Status)
		assert.NotNil(t, a.RespondedAt)
	}

	_, err = svc.UpdateVisitorStatus(checkedIn.ID, false)
	assert.ErrorIs(t, err, ErrAlreadyDecided)
}

func TestUpdateVisitorStatus_RejectChecksOut(t *testing.T) {
	db := setupTestDB(t)
	f := seedSociety(t, db, 1)
	svc, _, _, _ := newTestVisitorService(t, db)

	checkedIn, err := svc.CheckInVisitor(&CheckInRequest{
		FullName: "Ravi Kumar",
		Phone:    "9876543210",
		FlatID:   f.Flat.ID,
	}, nil)
	require.NoError(t, err)

	result, err := svc.UpdateVisitorStatus(checkedIn.ID, false)
	require.NoError(t, err)
	require.NotNil(t, result.OutTime, "rejection must set the out-time")
	assert.Equal(t, models.StatusCheckedOut, result.Status)
}

func TestCheckInByPreApprovalCode_RedeemsOnce(t *testing.T) {
	db := setupTestDB(t)
	f := seedSociety(t, db, 1)
	svc, _, _, _ := newTestVisitorService(t, db)

	grant := models.PreApproval{
		VisitorName:  "Priya Sharma",
		VisitorPhone: "9822334455",
		Category:     models.CategoryGuest,
		ValidFrom:    time.Now().Add(-time.Hour),
		ValidUntil:   time.Now().Add(time.Hour),
		Code:         "482913",
		IsUsed:       false,
		ResidentID:   f.Residents[0].ID,
		FlatID:       f.Flat.ID,
	}
	require.NoError(t, db.Create(&grant).Error)

	result, err := svc.CheckInByPreApprovalCode("482913", "guard-1")
	require.NoError(t, err)
	assert.Equal(t, "Priya Sharma", result.Name)
	assert.Equal(t, "VISITOR", result.Type)
	assert.Equal(t, models.AccessEntry, result.AccessType)
	assert.Equal(t, "GRANTED", result.Status)

	var log models.VisitorLog
	require.NoError(t, db.Preload("Visitor").First(&log).Error)
	assert.Equal(t, "Digital Pre-Approved Entry", log.Purpose)
	assert.Equal(t, models.StatusApproved, log.Status)
	assert.Equal(t, "9822334455", log.Visitor.Phone)

	// A code redeems exactly once
	_, err = svc.CheckInByPreApprovalCode("482913", "guard-1")
	assert.ErrorIs(t, err, ErrPassCodeNotFound)
}

func TestCheckInByPreApprovalCode_WindowViolation(t *testing.T) {
	db := setupTestDB(t)
	f := seedSociety(t, db, 1)
	svc, _, _, _ := newTestVisitorService(t, db)

	grant := models.PreApproval{
		VisitorName:  "Early Bird",
		VisitorPhone: "9822334456",
		Category:     models.CategoryGuest,
		ValidFrom:    time.Now().Add(2 * time.Hour),
		ValidUntil:   time.Now().Add(4 * time.Hour),
		Code:         "123456",
		ResidentID:   f.Residents[0].ID,
		FlatID:       f.Flat.ID,
	}
	require.NoError(t, db.Create(&grant).Error)

	_, err := svc.CheckInByPreApprovalCode("123456", "guard-1")
	assert.ErrorIs(t, err, ErrPassCodeWindow)

	var reloaded models.PreApproval
	require.NoError(t, db.First(&reloaded, grant.ID).Error)
	assert.False(t, reloaded.IsUsed, "a rejected scan must not consume the grant")
}

func TestCheckInByPreApprovalCode_UnknownCode(t *testing.T) {
	db := setupTestDB(t)
	seedSociety(t, db, 1)
	svc, _, _, _ := newTestVisitorService(t, db)

	_, err := svc.CheckInByPreApprovalCode("000000", "guard-1")
	assert.ErrorIs(t, err, ErrPassCodeNotFound)
}

func TestCheckInVisitor_ConsumesMatchingPreApproval(t *testing.T) {
	db := setupTestDB(t)
	f := seedSociety(t, db, 1)
	svc, _, _, _ := newTestVisitorService(t, db)

	grant, err := svc.CreatePreApproval(&CreatePreApprovalRequest{
		VisitorName:  "Priya Sharma",
		VisitorPhone: "9822334455",
		ValidFrom:    time.Now().Add(-time.Hour),
		ValidUntil:   time.Now().Add(time.Hour),
		ResidentID:   f.Residents[0].ID,
		FlatID:       f.Flat.ID,
	})
	require.NoError(t, err)
	require.Len(t, grant.Code, 6)

	result, err := svc.CheckInVisitor(&CheckInRequest{
		FullName: "Priya Sharma",
		Phone:    "9822334455",
		FlatID:   f.Flat.ID,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCheckedIn, result.Status)

	var reloaded models.PreApproval
	require.NoError(t, db.First(&reloaded, grant.ID).Error)
	assert.True(t, reloaded.IsUsed)

	// The grant is spent; the next visit goes through approval again
	second, err := svc.CheckInVisitor(&CheckInRequest{
		FullName: "Priya Sharma",
		Phone:    "9822334455",
		FlatID:   f.Flat.ID,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, second.Status)
}

func TestCreatePreApproval_ValidatesResidentAndFlat(t *testing.T) {
	db := setupTestDB(t)
	f := seedSociety(t, db, 1)
	svc, _, _, _ := newTestVisitorService(t, db)

	_, err := svc.CreatePreApproval(&CreatePreApprovalRequest{
		VisitorName:  "Priya Sharma",
		VisitorPhone: "9822334455",
		ValidFrom:    time.Now(),
		ValidUntil:   time.Now().Add(time.Hour),
		ResidentID:   9999,
		FlatID:       f.Flat.ID,
	})
	assert.ErrorIs(t, err, ErrResidentNotFound)

	_, err = svc.CreatePreApproval(&CreatePreApprovalRequest{
		VisitorName:  "Priya Sharma",
		VisitorPhone: "9822334455",
		ValidFrom:    time.Now(),
		ValidUntil:   time.Now().Add(time.Hour),
		ResidentID:   f.Residents[0].ID,
		FlatID:       9999,
	})
	assert.ErrorIs(t, err, ErrFlatNotFound)
}

func TestAllocateCode_RetriesThenGivesUp(t *testing.T) {
	svc := &VisitorService{}

	attempts := 0
	code, err := svc.allocateCode(func(string) (int64, error) {
		attempts++
		if attempts < 3 {
			return 1, nil // collision
		}
		return 0, nil
	})
	require.NoError(t, err)
	assert.Len(t, code, 6)
	assert.Equal(t, 3, attempts)

	_, err = svc.allocateCode(func(string) (int64, error) {
		return 1, nil // always taken
	})
	assert.ErrorIs(t, err, ErrCodeExhausted)
}

func TestGetOverstayingVisitors(t *testing.T) {
	db := setupTestDB(t)
	f := seedSociety(t, db, 1)
	svc, _, _, _ := newTestVisitorService(t, db)

	overstayer, err := svc.CheckInVisitor(&CheckInRequest{
		FullName:        "Long Stay",
		Phone:           "9333333333",
		FlatID:          f.Flat.ID,
		DurationMinutes: 30,
	}, nil)
	require.NoError(t, err)

	_, err = svc.CheckInVisitor(&CheckInRequest{
		FullName:        "Quick Visit",
		Phone:           "9444444444",
		FlatID:          f.Flat.ID,
		DurationMinutes: 600,
	}, nil)
	require.NoError(t, err)

	// Push the first visit's expected out-time into the past
	past := time.Now().Add(-time.Hour)
	require.NoError(t, db.Model(&models.VisitorLog{}).
		Where("id = ?", overstayer.ID).
		Update("expected_out_time", past).Error)

	result, err := svc.GetOverstayingVisitors(f.Society.ID)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Long Stay", result[0].VisitorName)
}

func TestGetActiveVisitors_ExcludesCheckedOut(t *testing.T) {
	db := setupTestDB(t)
	f := seedSociety(t, db, 1)
	svc, _, _, _ := newTestVisitorService(t, db)

	first, err := svc.CheckInVisitor(&CheckInRequest{
		FullName: "Gone Already",
		Phone:    "9333333333",
		FlatID:   f.Flat.ID,
	}, nil)
	require.NoError(t, err)

	_, err = svc.CheckInVisitor(&CheckInRequest{
		FullName: "Still Inside",
		Phone:    "9444444444",
		FlatID:   f.Flat.ID,
	}, nil)
	require.NoError(t, err)

	_, err = svc.CheckOutVisitor(first.ID)
	require.NoError(t, err)

	active, err := svc.GetActiveVisitors(f.Society.ID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Still Inside", active[0].VisitorName)
}

func TestSearchVisitors_ByNameAndPhone(t *testing.T) {
	db := setupTestDB(t)
	f := seedSociety(t, db, 1)
	svc, _, _, _ := newTestVisitorService(t, db)

	_, err := svc.CheckInVisitor(&CheckInRequest{
		FullName: "Ravi Kumar",
		Phone:    "9876543210",
		FlatID:   f.Flat.ID,
	}, nil)
	require.NoError(t, err)

	byName, err := svc.SearchVisitors(f.Society.ID, "Ravi")
	require.NoError(t, err)
	assert.Len(t, byName, 1)

	byPhone, err := svc.SearchVisitors(f.Society.ID, "98765")
	require.NoError(t, err)
	assert.Len(t, byPhone, 1)

	none, err := svc.SearchVisitors(f.Society.ID, "nomatch")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetPendingApprovalsForResident(t *testing.T) {
	db := setupTestDB(t)
	f := seedSociety(t, db, 2)
	svc, _, _, _ := newTestVisitorService(t, db)

	checkedIn, err := svc.CheckInVisitor(&CheckInRequest{
		FullName: "Ravi Kumar",
		Phone:    "9876543210",
		FlatID:   f.Flat.ID,
	}, nil)
	require.NoError(t, err)

	pending, err := svc.GetPendingApprovalsForResident(f.Residents[0].ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, checkedIn.ID, pending[0].VisitorLogID)

	_, err = svc.UpdateVisitorStatus(checkedIn.ID, true)
	require.NoError(t, err)

	pending, err = svc.GetPendingApprovalsForResident(f.Residents[0].ID)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
