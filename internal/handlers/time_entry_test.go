package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/silverstage/silverstage-api/internal/audit"
	"github.com/silverstage/silverstage-api/internal/constants"
	"github.com/silverstage/silverstage-api/internal/database"
	"github.com/silverstage/silverstage-api/internal/dto"
	"github.com/silverstage/silverstage-api/internal/models"
	"github.com/silverstage/silverstage-api/internal/notify"
	"github.com/silverstage/silverstage-api/internal/repository"
	"github.com/silverstage/silverstage-api/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type timeEntryTestEnv struct {
	db      *gorm.DB
	handler *TimeEntryHandler
	service *services.TimeEntryService
}

func setupTimeEntryTestEnv(t *testing.T) timeEntryTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.TimeEntry{},
		&models.Notification{},
		&models.AuditLog{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	entryRepo := repository.NewTimeEntryRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	auditWriter := audit.NewWriter(auditRepo, zerolog.Nop())
	notifier := services.NewNotificationService(notificationRepo, notify.NewHub(), zerolog.Nop())
	service := services.NewTimeEntryService(entryRepo, auditWriter, notifier)
	handler := NewTimeEntryHandler(service)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return timeEntryTestEnv{
		db:      db,
		handler: handler,
		service: service,
	}
}

func (env timeEntryTestEnv) submit(t *testing.T, userID uint64, payload map[string]any) *httptest.ResponseRecorder {
	t.Helper()

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	})
	r.POST("/api/time-entries", env.handler.SubmitTimeEntry)

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/time-entries", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTimeEntryHandler_Submit(t *testing.T) {
	env := setupTimeEntryTestEnv(t)

	w := env.submit(t, 1, map[string]any{
		"work_date":   "2026-08-20",
		"hours":       7.5,
		"description": "Music afternoon at Rosewood",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.TimeEntryDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, models.TimeEntryPending, response.Status)
	require.InDelta(t, 7.5, response.Hours, 0.001)
}

func TestTimeEntryHandler_Submit_BoundaryHours(t *testing.T) {
	env := setupTimeEntryTestEnv(t)

	// Both ends of the range are valid.
	for _, hours := range []float64{0, 24} {
		w := env.submit(t, 1, map[string]any{
			"work_date": "2026-08-20",
			"hours":     hours,
		})
		require.Equal(t, http.StatusCreated, w.Code, "hours=%v should be accepted", hours)
	}
}

func TestTimeEntryHandler_Submit_HoursOutOfRange(t *testing.T) {
	env := setupTimeEntryTestEnv(t)

	for _, hours := range []float64{-0.01, 24.01, 25} {
		w := env.submit(t, 1, map[string]any{
			"work_date": "2026-08-20",
			"hours":     hours,
		})
		require.Equal(t, http.StatusBadRequest, w.Code, "hours=%v should be rejected", hours)
	}

	var count int64
	require.NoError(t, env.db.Model(&models.TimeEntry{}).Count(&count).Error)
	require.EqualValues(t, 0, count, "rejected submissions must not be stored")
}

func TestTimeEntryHandler_Submit_BadDate(t *testing.T) {
	env := setupTimeEntryTestEnv(t)

	w := env.submit(t, 1, map[string]any{
		"work_date": "20/08/2026",
		"hours":     4,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTimeEntryHandler_ApproveFlow(t *testing.T) {
	env := setupTimeEntryTestEnv(t)

	entry, err := env.service.Submit(services.SubmitTimeEntryInput{
		UserID:   1,
		WorkDate: time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		Hours:    6,
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(constants.ContextKeyUserID, uint64(2))
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(entry.ID)}}
	c.Request = httptest.NewRequest(http.MethodPost, "/api/time-entries/1/approve", nil)

	env.handler.ApproveTimeEntry(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.TimeEntryDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, models.TimeEntryApproved, response.Status)
	require.NotNil(t, response.ReviewerID)
	require.EqualValues(t, 2, *response.ReviewerID)
	require.NotNil(t, response.ReviewedAt)

	// The owner gets told about the decision.
	var notifications int64
	require.NoError(t, env.db.Model(&models.Notification{}).Where("user_id = ?", 1).Count(&notifications).Error)
	require.EqualValues(t, 1, notifications)
}

func TestTimeEntryHandler_Review_AlreadyReviewed(t *testing.T) {
	env := setupTimeEntryTestEnv(t)

	entry, err := env.service.Submit(services.SubmitTimeEntryInput{
		UserID:   1,
		WorkDate: time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		Hours:    6,
	})
	require.NoError(t, err)

	_, err = env.service.Review(entry.ID, 2, true)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(constants.ContextKeyUserID, uint64(3))
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(entry.ID)}}
	c.Request = httptest.NewRequest(http.MethodPost, "/api/time-entries/1/reject", nil)

	env.handler.RejectTimeEntry(c)

	require.Equal(t, http.StatusConflict, w.Code)

	// The first decision stands.
	var reloaded models.TimeEntry
	require.NoError(t, env.db.First(&reloaded, entry.ID).Error)
	require.Equal(t, models.TimeEntryApproved, reloaded.Status)
}

func TestTimeEntryHandler_ListPending(t *testing.T) {
	env := setupTimeEntryTestEnv(t)

	for i := 0; i < 3; i++ {
		_, err := env.service.Submit(services.SubmitTimeEntryInput{
			UserID:   uint64(i + 1),
			WorkDate: time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
			Hours:    4,
		})
		require.NoError(t, err)
	}
	entry, err := env.service.Submit(services.SubmitTimeEntryInput{
		UserID:   9,
		WorkDate: time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC),
		Hours:    2,
	})
	require.NoError(t, err)
	_, err = env.service.Review(entry.ID, 2, true)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/time-entries/pending", nil)

	env.handler.ListPendingTimeEntries(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		TimeEntries []dto.TimeEntryDTO `json:"time_entries"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.TimeEntries, 3, "approved entries leave the pending queue")
}
