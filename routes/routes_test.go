package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"guesthouse-backend/config"
	"guesthouse-backend/controllers"
	"guesthouse-backend/middleware"
	"guesthouse-backend/services"
)

var testDBSeq atomic.Int64

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:routes_testdb_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	cfg := config.Config{
		Environment:        "test",
		PricePerNight:      150,
		MaxGuests:          8,
		BusinessName:       "Casa Bucuriei",
		OwnerEmail:         "owner@example.com",
		Currency:           "RON",
		RateLimitWindowSec: 60,
		RateLimitMax:       10000,
	}
	log := zap.NewNop()

	mailer := services.NewEmailService(cfg, db, log)
	reservationSvc := services.NewReservationService(db, cfg, mailer, log)
	contactSvc := services.NewContactService(db, mailer, log)
	reviewSvc := services.NewReviewService(db, log)

	return SetupRouter(
		cfg,
		log,
		controllers.NewReservationController(reservationSvc),
		controllers.NewContactController(contactSvc),
		controllers.NewReviewController(reviewSvc),
		controllers.NewEmailController(mailer),
	)
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	resp := map[string]interface{}{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func futureDay(offset int) string {
	return time.Now().UTC().AddDate(0, 0, offset).Format("2006-01-02")
}

func TestHealthEndpoints(t *testing.T) {
	r := newTestRouter(t)

	for _, path := range []string{"/health", "/api/health"} {
		w, resp := doJSON(t, r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, "success", resp["status"])
	}
}

func TestRequestIDHeader(t *testing.T) {
	r := newTestRouter(t)

	w, _ := doJSON(t, r, http.MethodGet, "/health", nil)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "req-123", rec.Header().Get(middleware.RequestIDHeader))
}

func TestCreateReservationOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	payload := gin.H{
		"name":         "Ana Popescu",
		"email":        "ana@example.com",
		"phone":        "+40 721 123 456",
		"checkinDate":  futureDay(10),
		"checkoutDate": futureDay(13),
		"guests":       2,
	}

	w, resp := doJSON(t, r, http.MethodPost, "/api/reservations", payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "success", resp["status"])

	data := resp["data"].(map[string]interface{})
	assert.Equal(t, 900.0, data["totalPrice"])
	code := data["confirmationCode"].(string)
	assert.Regexp(t, `^CB\d{6}[A-Z0-9]{5}$`, code)

	// the code looks the booking back up, public fields only
	w, resp = doJSON(t, r, http.MethodGet, "/api/reservations/code/"+code, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data = resp["data"].(map[string]interface{})
	assert.Equal(t, "Ana Popescu", data["name"])
	assert.NotContains(t, data, "phone")
	assert.NotContains(t, data, "email")

	// overlapping dates are rejected with the conflicting range
	w, resp = doJSON(t, r, http.MethodPost, "/api/reservations", payload)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "error", resp["status"])
	assert.Contains(t, resp, "conflictingReservation")
}

func TestCreateReservationValidation(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name    string
		payload gin.H
	}{
		{"missing email", gin.H{
			"name": "Ana Popescu", "checkinDate": futureDay(10), "checkoutDate": futureDay(13), "guests": 2,
		}},
		{"name with digits", gin.H{
			"name": "R2D2", "email": "a@b.ro", "checkinDate": futureDay(10), "checkoutDate": futureDay(13), "guests": 2,
		}},
		{"past checkin", gin.H{
			"name": "Ana Popescu", "email": "a@b.ro", "checkinDate": "2020-01-10", "checkoutDate": futureDay(13), "guests": 2,
		}},
		{"checkout before checkin", gin.H{
			"name": "Ana Popescu", "email": "a@b.ro", "checkinDate": futureDay(13), "checkoutDate": futureDay(10), "guests": 2,
		}},
		{"too many guests", gin.H{
			"name": "Ana Popescu", "email": "a@b.ro", "checkinDate": futureDay(10), "checkoutDate": futureDay(13), "guests": 11,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := doJSON(t, r, http.MethodPost, "/api/reservations", tt.payload)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "error", resp["status"])
			assert.Contains(t, resp, "errors")
		})
	}
}

func TestReservationStatusOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	w, resp := doJSON(t, r, http.MethodPost, "/api/reservations", gin.H{
		"name": "Ana Popescu", "email": "ana@example.com",
		"checkinDate": futureDay(10), "checkoutDate": futureDay(13), "guests": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	id := int(resp["data"].(map[string]interface{})["id"].(float64))

	w, _ = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/reservations/%d/status", id), gin.H{"status": "confirmed"})
	assert.Equal(t, http.StatusOK, w.Code)

	// going back to pending from confirmed is illegal
	w, resp = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/reservations/%d/status", id), gin.H{"status": "pending"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "error", resp["status"])

	w, _ = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/reservations/%d/status", id), gin.H{"status": "expired"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, r, http.MethodPut, "/api/reservations/9999/status", gin.H{"status": "confirmed"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAvailabilityOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	w, resp := doJSON(t, r, http.MethodPost, "/api/reservations", gin.H{
		"name": "Ana Popescu", "email": "ana@example.com",
		"checkinDate": futureDay(10), "checkoutDate": futureDay(13), "guests": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp = doJSON(t, r, http.MethodGet, "/api/reservations/availability/"+futureDay(11), nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, false, data["available"])
	assert.Equal(t, 1.0, data["reservations"])

	// checkout day is free again
	w, resp = doJSON(t, r, http.MethodGet, "/api/reservations/availability/"+futureDay(13), nil)
	require.Equal(t, http.StatusOK, w.Code)
	data = resp["data"].(map[string]interface{})
	assert.Equal(t, true, data["available"])

	w, _ = doJSON(t, r, http.MethodGet, "/api/reservations/availability/not-a-date", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContactOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	w, resp := doJSON(t, r, http.MethodPost, "/api/contact", gin.H{
		"name":    "Mihai Ionescu",
		"email":   "mihai@example.com",
		"message": "Aveți locuri disponibile de Paște?",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "Întrebare generală", data["subject"])

	// message below the minimum length
	w, _ = doJSON(t, r, http.MethodPost, "/api/contact", gin.H{
		"name":    "Mihai Ionescu",
		"email":   "mihai@example.com",
		"message": "scurt",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp = doJSON(t, r, http.MethodGet, "/api/contact/stats/overview", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := resp["data"].(map[string]interface{})
	assert.Equal(t, 1.0, stats["total"])
}

func TestReviewOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	w, resp := doJSON(t, r, http.MethodPost, "/api/reviews", gin.H{
		"name":    "Elena Marinescu",
		"email":   "elena@example.com",
		"rating":  5,
		"comment": "Gazde primitoare, cameră curată, ne întoarcem cu drag.",
		"status":  "approved",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := resp["data"].(map[string]interface{})
	// the claimed status is ignored
	assert.Equal(t, "pending", data["status"])
	id := int(data["id"].(float64))

	// not visible publicly until approved
	w, resp = doJSON(t, r, http.MethodGet, "/api/reviews", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, resp["data"].(map[string]interface{})["reviews"])

	w, _ = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/reviews/%d/status", id), gin.H{"status": "approved"})
	require.Equal(t, http.StatusOK, w.Code)

	w, resp = doJSON(t, r, http.MethodGet, "/api/reviews", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["data"].(map[string]interface{})["reviews"], 1)

	// a second review from the same email inside 24h is throttled
	w, _ = doJSON(t, r, http.MethodPost, "/api/reviews", gin.H{
		"name":    "Elena Marinescu",
		"email":   "elena@example.com",
		"rating":  4,
		"comment": "Încă o părere despre aceeași ședere de data trecută.",
	})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	w, resp = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/reviews/%d/helpful", id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1.0, resp["data"].(map[string]interface{})["helpful"])
}

func TestUnknownRoute(t *testing.T) {
	r := newTestRouter(t)

	w, resp := doJSON(t, r, http.MethodGet, "/api/nothing-here", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "error", resp["status"])
}

func TestParseCorsOrigins(t *testing.T) {
	assert.Equal(t, []string{"*"}, parseCorsOrigins(""))
	assert.Equal(t, []string{"https://a.ro"}, parseCorsOrigins("https://a.ro"))
	assert.Equal(t, []string{"https://a.ro", "https://b.ro"}, parseCorsOrigins(" https://a.ro , https://b.ro "))
	assert.Equal(t, []string{"*"}, parseCorsOrigins(" , "))
}
