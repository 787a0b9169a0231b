package services

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"guesthouse-backend/config"
)

var testDBSeq atomic.Int64

// newTestDB opens a private in-memory database and migrates the schema.
// Each test gets its own named memory DB so parallel tests never share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

// testConfig leaves SMTP unset, so the mailer stays in mock mode and tests
// never touch the network.
func testConfig() config.Config {
	return config.Config{
		Environment:   "test",
		PricePerNight: 150,
		MaxGuests:     8,
		BusinessName:  "Casa Bucuriei",
		OwnerEmail:    "owner@example.com",
		Currency:      "RON",
	}
}

func newTestReservationService(t *testing.T) *ReservationService {
	t.Helper()
	db := newTestDB(t)
	cfg := testConfig()
	log := zap.NewNop()
	return NewReservationService(db, cfg, NewEmailService(cfg, db, log), log)
}

func newTestContactService(t *testing.T) *ContactService {
	t.Helper()
	db := newTestDB(t)
	cfg := testConfig()
	log := zap.NewNop()
	return NewContactService(db, NewEmailService(cfg, db, log), log)
}

func newTestReviewService(t *testing.T) *ReviewService {
	t.Helper()
	return NewReviewService(newTestDB(t), zap.NewNop())
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// futureDate returns today+offset at midnight UTC, for tests that must pass
// the no-past-dates rule regardless of when they run.
func futureDate(offsetDays int) time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, offsetDays)
}
