package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"gatekeeper-http-service/models"
)

func newTestAccessService(t *testing.T, db *gorm.DB) (InterfaceAccessService, *stubGateEvents) {
	t.Helper()

	gateEvents := &stubGateEvents{}
	visitors := NewVisitorService(db, &stubRedis{}, &stubNotifier{}, gateEvents, testConfig())
	return NewAccessService(db, visitors, gateEvents, testConfig()), gateEvents
}

func TestValidateQR_ResidentToggleAlternates(t *testing.T) {
	db := setupTestDB(t)
	f := seedSociety(t, db, 0)

	user := models.User{
		FullName:  "Anita Desai",
		Email:     "anita@example.com",
		Password:  "secret123",
		Role:      models.RoleResident,
		SocietyID: &f.Society.ID,
	}
	require.NoError(t, db.Create(&user).Error)

	svc, _ := newTestAccessService(t, db)
	token := fmt.Sprintf("RESIDENT:%d:Anita Desai", user.ID)

	expected := []string{models.AccessEntry, models.AccessExit, models.AccessEntry, models.AccessExit}
	for i, want := range expected {
		result, err := svc.ValidateQR(token, "guard-1")
		require.NoError(t, err, "scan %d", i+1)
		assert.Equal(t, want, result.AccessType, "scan %d", i+1)
		assert.Equal(t, SubjectResident, result.Type)
		assert.Equal(t, "GRANTED", result.Status)
	}

	var logs []models.AccessLog
	require.NoError(t, db.Where("user_id = ?", user.ID).Order("id ASC").Find(&logs).Error)
	require.Len(t, logs, 4)
	for i, log := range logs {
		assert.Equal(t, expected[i], log.AccessType)
	}
}

func TestValidateQR_HelpToggle(t *testing.T) {
	db := setupTestDB(t)
	f := seedSociety(t, db, 0)

	help := models.DomesticHelp{
		Name:      "Sunita",
		Phone:     "9555555555",
		HelpType:  models.HelpTypeMaid,
		IsActive:  true,
		PassCode:  "771234",
		SocietyID: f.Society.ID,
	}
	require.NoError(t, db.Create(&help).Error)

	svc, gateEvents := newTestAccessService(t, db)
	token := fmt.Sprintf("HELP:%d:Sunita", help.ID)

	first, err := svc.ValidateQR(token, "guard-1")
	require.NoError(t, err)
	assert.Equal(t, models.AccessEntry, first.AccessType)
	assert.Equal(t, SubjectHelp, first.Type)

	second, err := svc.ValidateQR(token, "guard-1")
	require.NoError(t, err)
	assert.Equal(t, models.AccessExit, second.AccessType)

	gateEvents.mu.Lock()
	defer gateEvents.mu.Unlock()
	assert.Len(t, gateEvents.events, 2)
}

func TestValidateQR_InactiveHelpRejected(t *testing.T) {
	db := setupTestDB(t)
	f := seedSociety(t, db, 0)

	help := models.DomesticHelp{
		Name:      "Former Cook",
		Phone:     "9555555556",
		HelpType:  models.HelpTypeCook,
		IsActive:  false,
		PassCode:  "771235",
		SocietyID: f.Society.ID,
	}
	require.NoError(t, db.Create(&help).Error)

	svc, _ := newTestAccessService(t, db)

	_, err := svc.ValidateQR(fmt.Sprintf("HELP:%d:Former Cook", help.ID), "guard-1")
	assert.ErrorIs(t, err, ErrStaffInactive)
}

func TestValidateQR_DigitCodeRedeemsPreApproval(t *testing.T) {
	db := setupTestDB(t)
	f := seedSociety(t, db, 1)

	grant := models.PreApproval{
		VisitorName:  "Priya Sharma",
		VisitorPhone: "9822334455",
		Category:     models.CategoryGuest,
		ValidFrom:    time.Now().Add(-time.Hour),
		ValidUntil:   time.Now().Add(time.Hour),
		Code:         "482913",
		ResidentID:   f.Residents[0].ID,
		FlatID:       f.Flat.ID,
	}
	require.NoError(t, db.Create(&grant).Error)

	svc, _ := newTestAccessService(t, db)

	result, err := svc.ValidateQR("482913", "guard-1")
	require.NoError(t, err)
	assert.Equal(t, "Priya Sharma", result.Name)
	assert.Equal(t, "VISITOR", result.Type)
	assert.Equal(t, models.AccessEntry, result.AccessType)
	assert.Equal(t, "GRANTED", result.Status)
}

func TestValidateQR_MalformedTokens(t *testing.T) {
	db := setupTestDB(t)
	seedSociety(t, db, 0)
	svc, _ := newTestAccessService(t, db)

	cases := []struct {
		name  string
		token string
		want  error
	}{
		{"empty", "", ErrTokenMalformed},
		{"too few parts", "RESIDENT:42", ErrTokenMalformed},
		{"too many parts", "RESIDENT:42:Name:extra", ErrTokenMalformed},
		{"non-numeric id", "RESIDENT:abc:Name", ErrTokenMalformed},
		{"five digits", "12345", ErrTokenMalformed},
		{"unknown subject", "VENDOR:42:Name", ErrUnknownSubjectType},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.ValidateQR(tc.token, "guard-1")
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestValidateQR_UnknownSubjects(t *testing.T) {
	db := setupTestDB(t)
	seedSociety(t, db, 0)
	svc, _ := newTestAccessService(t, db)

	_, err := svc.ValidateQR("RESIDENT:9999:Ghost", "guard-1")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.ValidateQR("HELP:9999:Ghost", "guard-1")
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestGetAccessLogsForUser_Paginated(t *testing.T) {
	db := setupTestDB(t)
	f := seedSociety(t, db, 0)

	user := models.User{
		FullName:  "Anita Desai",
		Email:     "anita@example.com",
		Password:  "secret123",
		Role:      models.RoleResident,
		SocietyID: &f.Society.ID,
	}
	require.NoError(t, db.Create(&user).Error)

	svc, _ := newTestAccessService(t, db)
	token := fmt.Sprintf("RESIDENT:%d:Anita Desai", user.ID)
	for i := 0; i < 5; i++ {
		_, err := svc.ValidateQR(token, "guard-1")
		require.NoError(t, err)
	}

	logs, page, err := svc.GetAccessLogsForUser(user.ID, &models.PaginationQuery{PageNum: 1, PageSize: 3})
	require.NoError(t, err)
	assert.Len(t, logs, 3)
	assert.Equal(t, 5, page.Total)
}
