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

type eventTestEnv struct {
	db      *gorm.DB
	handler *EventHandler
	service *services.EventService
}

func setupEventTestEnv(t *testing.T) eventTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Facility{},
		&models.Event{},
		&models.EventAssignment{},
		&models.Notification{},
		&models.AuditLog{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	eventRepo := repository.NewEventRepository(db)
	facilityRepo := repository.NewFacilityRepository(db)
	userRepo := repository.NewUserRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	auditWriter := audit.NewWriter(auditRepo, zerolog.Nop())
	notifier := services.NewNotificationService(notificationRepo, notify.NewHub(), zerolog.Nop())
	service := services.NewEventService(eventRepo, facilityRepo, userRepo, auditWriter, notifier)
	handler := NewEventHandler(service)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return eventTestEnv{
		db:      db,
		handler: handler,
		service: service,
	}
}

func (env eventTestEnv) createFacility(t *testing.T, liaisonID *uint64) *models.Facility {
	t.Helper()

	facility := &models.Facility{
		Name:      "Rosewood Care Home",
		Address:   "12 Garden Lane",
		LiaisonID: liaisonID,
	}
	require.NoError(t, env.db.Create(facility).Error)
	return facility
}

func (env eventTestEnv) requestEvent(t *testing.T, creatorID, facilityID uint64) *models.Event {
	t.Helper()

	event, err := env.service.Request(services.RequestEventInput{
		Title:      "Afternoon Concert",
		FacilityID: facilityID,
		StartsAt:   time.Now().Add(48 * time.Hour),
		EndsAt:     time.Now().Add(50 * time.Hour),
		CreatorID:  creatorID,
	})
	require.NoError(t, err)
	return event
}

func TestEventHandler_RequestEvent(t *testing.T) {
	env := setupEventTestEnv(t)
	liaisonID := uint64(5)
	facility := env.createFacility(t, &liaisonID)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(constants.ContextKeyUserID, uint64(1))

	body, err := json.Marshal(map[string]any{
		"title":       "Afternoon Concert",
		"facility_id": facility.ID,
		"starts_at":   time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		"ends_at":     time.Now().Add(50 * time.Hour).Format(time.RFC3339),
	})
	require.NoError(t, err)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/events", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	env.handler.RequestEvent(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.EventDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, models.EventRequested, response.Status)

	// The facility's liaison hears about the request.
	var notifications int64
	require.NoError(t, env.db.Model(&models.Notification{}).
		Where("user_id = ?", liaisonID).Count(&notifications).Error)
	require.EqualValues(t, 1, notifications)
}

func TestEventHandler_RequestEvent_InvalidWindow(t *testing.T) {
	env := setupEventTestEnv(t)
	facility := env.createFacility(t, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(constants.ContextKeyUserID, uint64(1))

	starts := time.Now().Add(48 * time.Hour)
	body, err := json.Marshal(map[string]any{
		"title":       "Backwards Event",
		"facility_id": facility.ID,
		"starts_at":   starts.Format(time.RFC3339),
		"ends_at":     starts.Add(-time.Hour).Format(time.RFC3339),
	})
	require.NoError(t, err)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/events", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	env.handler.RequestEvent(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func (env eventTestEnv) setStatus(t *testing.T, eventID, actorID uint64, role models.Role, status string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(constants.ContextKeyUserID, actorID)
	c.Set(constants.ContextKeyRole, role)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(eventID)}}

	body, err := json.Marshal(map[string]string{"status": status})
	require.NoError(t, err)
	c.Request = httptest.NewRequest(http.MethodPatch, "/api/events/1/status", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	env.handler.SetEventStatus(c)
	return w
}

func TestEventHandler_SetStatus_HomeAdminMustBeLiaison(t *testing.T) {
	env := setupEventTestEnv(t)
	liaisonID := uint64(5)
	facility := env.createFacility(t, &liaisonID)
	event := env.requestEvent(t, 1, facility.ID)

	// A home admin for a different facility cannot confirm this event.
	denied := env.setStatus(t, event.ID, 9, models.RoleHomeAdmin, "CONFIRMED")
	require.Equal(t, http.StatusForbidden, denied.Code)

	var reloaded models.Event
	require.NoError(t, env.db.First(&reloaded, event.ID).Error)
	require.Equal(t, models.EventRequested, reloaded.Status)

	// The liaison can.
	allowed := env.setStatus(t, event.ID, liaisonID, models.RoleHomeAdmin, "CONFIRMED")
	require.Equal(t, http.StatusOK, allowed.Code)

	require.NoError(t, env.db.First(&reloaded, event.ID).Error)
	require.Equal(t, models.EventConfirmed, reloaded.Status)
}

func TestEventHandler_SetStatus_AdminActsAnywhere(t *testing.T) {
	env := setupEventTestEnv(t)
	liaisonID := uint64(5)
	facility := env.createFacility(t, &liaisonID)
	event := env.requestEvent(t, 1, facility.ID)

	w := env.setStatus(t, event.ID, 2, models.RoleAdmin, "CANCELLED")
	require.Equal(t, http.StatusOK, w.Code)

	var reloaded models.Event
	require.NoError(t, env.db.First(&reloaded, event.ID).Error)
	require.Equal(t, models.EventCancelled, reloaded.Status)
}

func TestEventHandler_SetStatus_UnknownStatus(t *testing.T) {
	env := setupEventTestEnv(t)
	facility := env.createFacility(t, nil)
	event := env.requestEvent(t, 1, facility.ID)

	w := env.setStatus(t, event.ID, 2, models.RoleAdmin, "POSTPONED")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEventHandler_AssignFacilitators(t *testing.T) {
	env := setupEventTestEnv(t)
	facility := env.createFacility(t, nil)
	event := env.requestEvent(t, 1, facility.ID)

	var facilitators []uint64
	for i := 0; i < 2; i++ {
		user := createTestUser(t, env.db,
			fmt.Sprintf("facilitator%d@example.org", i), "supersecret",
			models.RoleFacilitator, models.UserStatusActive)
		facilitators = append(facilitators, user.ID)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(constants.ContextKeyUserID, uint64(1))
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(event.ID)}}

	body, err := json.Marshal(map[string]any{"user_ids": facilitators})
	require.NoError(t, err)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/events/1/assign", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	env.handler.AssignFacilitators(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.EventDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Assignees, 2)

	// Each assignee is notified.
	for _, id := range facilitators {
		var notifications int64
		require.NoError(t, env.db.Model(&models.Notification{}).
			Where("user_id = ? AND type = ?", id, models.NotificationEventAssigned).
			Count(&notifications).Error)
		require.EqualValues(t, 1, notifications)
	}
}

func TestEventHandler_AssignFacilitators_UnknownAssignee(t *testing.T) {
	env := setupEventTestEnv(t)
	facility := env.createFacility(t, nil)
	event := env.requestEvent(t, 1, facility.ID)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(constants.ContextKeyUserID, uint64(1))
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(event.ID)}}

	body, err := json.Marshal(map[string]any{"user_ids": []uint64{999}})
	require.NoError(t, err)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/events/1/assign", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	env.handler.AssignFacilitators(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}
