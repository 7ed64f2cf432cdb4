package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"gatekeeper-http-service/models"
)

func newTestHelpService(t *testing.T, db *gorm.DB) InterfaceDomesticHelpService {
	t.Helper()
	return NewDomesticHelpService(db, &stubGateEvents{}, testConfig())
}

func TestAddStaff_IssuesPassCode(t *testing.T) {
	db := setupTestDB(t)
	f := seedSociety(t, db, 0)
	svc := newTestHelpService(t, db)

	staff, err := svc.AddStaff(&AddStaffRequest{
		Name:      "Sunita",
		Phone:     "9555555555",
		HelpType:  models.HelpTypeMaid,
		SocietyID: f.Society.ID,
		FlatIDs:   []uint{f.Flat.ID},
	})
	require.NoError(t, err)
	assert.Len(t, staff.PassCode, 6)
	assert.True(t, staff.IsActive)

	linked, err := svc.GetStaffByFlat(f.Flat.ID)
	require.NoError(t, err)
	require.Len(t, linked, 1)
	assert.Equal(t, "Sunita", linked[0].Name)
}

func TestAddStaff_SocietyNotFound(t *testing.T) {
	db := setupTestDB(t)
	seedSociety(t, db, 0)
	svc := newTestHelpService(t, db)

	_, err := svc.AddStaff(&AddStaffRequest{
		Name:      "Sunita",
		Phone:     "9555555555",
		HelpType:  models.HelpTypeMaid,
		SocietyID: 9999,
	})
	assert.ErrorIs(t, err, ErrSocietyNotFound)
}

func TestAddStaff_KeepsSuppliedPassCode(t *testing.T) {
	db := setupTestDB(t)
	f := seedSociety(t, db, 0)
	svc := newTestHelpService(t, db)

	staff, err := svc.AddStaff(&AddStaffRequest{
		Name:      "Ramesh",
		Phone:     "9555555557",
		HelpType:  models.HelpTypeDriver,
		PassCode:  "654321",
		SocietyID: f.Society.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "654321", staff.PassCode)
}

func TestAddStaff_RejectsDuplicatePassCode(t *testing.T) {
	db := setupTestDB(t)
	f := seedSociety(t, db, 0)
	svc := newTestHelpService(t, db)

	_, err := svc.AddStaff(&AddStaffRequest{
		Name:      "Ramesh",
		Phone:     "9555555557",
		HelpType:  models.HelpTypeDriver,
		PassCode:  "654321",
		SocietyID: f.Society.ID,
	})
	require.NoError(t, err)

	_, err = svc.AddStaff(&AddStaffRequest{
		Name:      "Suresh",
		Phone:     "9555555558",
		HelpType:  models.HelpTypeDriver,
		PassCode:  "654321",
		SocietyID: f.Society.ID,
	})
	assert.ErrorIs(t, err, ErrPassCodeTaken)
}

func TestRecordStaffAccess_OpenClosePairing(t *testing.T) {
	db := setupTestDB(t)
	f := seedSociety(t, db, 0)
	svc := newTestHelpService(t, db)

	staff, err := svc.AddStaff(&AddStaffRequest{
		Name:      "Sunita",
		Phone:     "9555555555",
		HelpType:  models.HelpTypeMaid,
		SocietyID: f.Society.ID,
	})
	require.NoError(t, err)

	guardID := uint(42)

	// First scan opens an attendance span
	first, err := svc.RecordStaffAccess(staff.PassCode, &guardID)
	require.NoError(t, err)
	assert.Equal(t, models.AccessEntry, first.AccessType)

	var open models.DailyHelpLog
	require.NoError(t, db.Where("domestic_help_id = ?", staff.ID).First(&open).Error)
	assert.Nil(t, open.ExitTime)

	// Second scan closes it
	second, err := svc.RecordStaffAccess(staff.PassCode, &guardID)
	require.NoError(t, err)
	assert.Equal(t, models.AccessExit, second.AccessType)

	require.NoError(t, db.First(&open, open.ID).Error)
	require.NotNil(t, open.ExitTime)
	assert.True(t, open.ExitTime.After(open.EntryTime) || open.ExitTime.Equal(open.EntryTime))

	// Third scan opens a fresh span
	third, err := svc.RecordStaffAccess(staff.PassCode, &guardID)
	require.NoError(t, err)
	assert.Equal(t, models.AccessEntry, third.AccessType)

	var count int64
	require.NoError(t, db.Model(&models.DailyHelpLog{}).Where("domestic_help_id = ?", staff.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestRecordStaffAccess_UnknownAndInactive(t *testing.T) {
	db := setupTestDB(t)
	f := seedSociety(t, db, 0)
	svc := newTestHelpService(t, db)

	_, err := svc.RecordStaffAccess("999999", nil)
	assert.ErrorIs(t, err, ErrStaffNotFound)

	staff, err := svc.AddStaff(&AddStaffRequest{
		Name:      "Former Cook",
		Phone:     "9555555556",
		HelpType:  models.HelpTypeCook,
		SocietyID: f.Society.ID,
	})
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.DomesticHelp{}).Where("id = ?", staff.ID).Update("is_active", false).Error)

	_, err = svc.RecordStaffAccess(staff.PassCode, nil)
	assert.ErrorIs(t, err, ErrStaffInactive)
}

func TestLinkAndUnlinkStaffFlat(t *testing.T) {
	db := setupTestDB(t)
	f := seedSociety(t, db, 0)
	svc := newTestHelpService(t, db)

	staff, err := svc.AddStaff(&AddStaffRequest{
		Name:      "Sunita",
		Phone:     "9555555555",
		HelpType:  models.HelpTypeMaid,
		SocietyID: f.Society.ID,
	})
	require.NoError(t, err)

	require.NoError(t, svc.LinkStaffToFlat(staff.ID, f.Flat.ID))

	linked, err := svc.GetStaffByFlat(f.Flat.ID)
	require.NoError(t, err)
	assert.Len(t, linked, 1)

	require.NoError(t, svc.UnlinkStaffFromFlat(staff.ID, f.Flat.ID))

	linked, err = svc.GetStaffByFlat(f.Flat.ID)
	require.NoError(t, err)
	assert.Empty(t, linked)

	assert.ErrorIs(t, svc.LinkStaffToFlat(9999, f.Flat.ID), ErrStaffNotFound)
	assert.ErrorIs(t, svc.LinkStaffToFlat(staff.ID, 9999), ErrFlatNotFound)
}

func TestDeleteStaff_KeepsAttendanceHistory(t *testing.T) {
	db := setupTestDB(t)
	f := seedSociety(t, db, 0)
	svc := newTestHelpService(t, db)

	staff, err := svc.AddStaff(&AddStaffRequest{
		Name:      "Sunita",
		Phone:     "9555555555",
		HelpType:  models.HelpTypeMaid,
		SocietyID: f.Society.ID,
		FlatIDs:   []uint{f.Flat.ID},
	})
	require.NoError(t, err)

	_, err = svc.RecordStaffAccess(staff.PassCode, nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteStaff(staff.ID))

	_, err = svc.GetStaff(staff.ID)
	assert.ErrorIs(t, err, ErrStaffNotFound)

	var logCount int64
	require.NoError(t, db.Model(&models.DailyHelpLog{}).Where("domestic_help_id = ?", staff.ID).Count(&logCount).Error)
	assert.EqualValues(t, 1, logCount, "attendance history survives staff deletion")
}

func TestGetAttendance_Paginated(t *testing.T) {
	db := setupTestDB(t)
	f := seedSociety(t, db, 0)
	svc := newTestHelpService(t, db)

	staff, err := svc.AddStaff(&AddStaffRequest{
		Name:      "Sunita",
		Phone:     "9555555555",
		HelpType:  models.HelpTypeMaid,
		SocietyID: f.Society.ID,
	})
	require.NoError(t, err)

	// Three full entry/exit days
	for i := 0; i < 6; i++ {
		_, err := svc.RecordStaffAccess(staff.PassCode, nil)
		require.NoError(t, err)
	}

	logs, page, err := svc.GetAttendance(staff.ID, &models.PaginationQuery{PageNum: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, logs, 2)
	assert.Equal(t, 3, page.Total)

	_, _, err = svc.GetAttendance(9999, &models.PaginationQuery{})
	assert.ErrorIs(t, err, ErrStaffNotFound)
}
