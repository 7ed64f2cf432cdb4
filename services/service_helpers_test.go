package services

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gatekeeper-http-service/config"
	"gatekeeper-http-service/models"
)

var errCacheMiss = errors.New("cache miss")

// stubRedis satisfies the cache interface without a Redis server.
// Every read misses, so queries always hit the database.
type stubRedis struct {
	mu          sync.Mutex
	invalidated []uint
}

func (s *stubRedis) Set(key string, value interface{}, expiration time.Duration) error { return nil }
func (s *stubRedis) Get(key string, dest interface{}) error                            { return errCacheMiss }
func (s *stubRedis) Delete(key string) error                                           { return nil }
func (s *stubRedis) CacheActiveVisitors(societyID uint, visitors interface{}) error    { return nil }
func (s *stubRedis) GetActiveVisitors(societyID uint, dest interface{}) error          { return errCacheMiss }
func (s *stubRedis) InvalidateActiveVisitors(societyID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invalidated = append(s.invalidated, societyID)
}

// stubNotifier records alerts instead of sending mail
type stubNotifier struct {
	mu     sync.Mutex
	alerts []string
}

func (s *stubNotifier) SendVisitorAlert(toEmail, residentName, visitorName, purpose string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append(s.alerts, toEmail)
}

func (s *stubNotifier) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.alerts)
}

// stubGateEvents records published events instead of talking to a broker
type stubGateEvents struct {
	mu     sync.Mutex
	events []GateEvent
}

func (s *stubGateEvents) PublishGateEvent(societyID uint, event GateEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}
func (s *stubGateEvents) IsConnected() bool { return false }
func (s *stubGateEvents) Disconnect()       {}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecretKey:    "test-secret",
		DefaultGateName: "Main Gate",
	}
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Society{},
		&models.Building{},
		&models.Flat{},
		&models.User{},
		&models.Resident{},
		&models.Visitor{},
		&models.VisitorLog{},
		&models.VisitorApproval{},
		&models.PreApproval{},
		&models.FrequentVisitor{},
		&models.DomesticHelp{},
		&models.DailyHelpLog{},
		&models.AccessLog{},
	))

	return db
}

// testFixture seeds one society with one building, one flat and the
// given number of active residents
type testFixture struct {
	Society   models.Society
	Building  models.Building
	Flat      models.Flat
	Residents []models.Resident
}

func seedSociety(t *testing.T, db *gorm.DB, activeResidents int) *testFixture {
	t.Helper()

	f := &testFixture{
		Society: models.Society{Name: "Green Meadows", IsActive: true},
	}
	require.NoError(t, db.Create(&f.Society).Error)

	f.Building = models.Building{Name: "Tower A", Floors: 10, SocietyID: f.Society.ID}
	require.NoError(t, db.Create(&f.Building).Error)

	f.Flat = models.Flat{FlatNumber: "A-101", Floor: 1, BuildingID: f.Building.ID, IsOccupied: true}
	require.NoError(t, db.Create(&f.Flat).Error)

	for i := 0; i < activeResidents; i++ {
		r := models.Resident{
			FullName:     fmt.Sprintf("Resident %d", i+1),
			Phone:        fmt.Sprintf("99000000%02d", i+1),
			Email:        fmt.Sprintf("resident%d@example.com", i+1),
			ResidentType: models.ResidentTypeOwner,
			IsActive:     true,
			FlatID:       f.Flat.ID,
		}
		require.NoError(t, db.Create(&r).Error)
		f.Residents = append(f.Residents, r)
	}

	return f
}

func newTestVisitorService(t *testing.T, db *gorm.DB) (*VisitorService, *stubRedis, *stubNotifier, *stubGateEvents) {
	t.Helper()

	redis := &stubRedis{}
	notifier := &stubNotifier{}
	gateEvents := &stubGateEvents{}
	svc := NewVisitorService(db, redis, notifier, gateEvents, testConfig()).(*VisitorService)
	return svc, redis, notifier, gateEvents
}
