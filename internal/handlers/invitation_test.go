package handlers

import (
	"bytes"
	"encoding/json"
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
	"github.com/silverstage/silverstage-api/internal/repository"
	"github.com/silverstage/silverstage-api/internal/services"
	"github.com/silverstage/silverstage-api/internal/utils"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type invitationTestEnv struct {
	db      *gorm.DB
	handler *InvitationHandler
	service *services.InvitationService
}

func setupInvitationTestEnv(t *testing.T) invitationTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Invitation{},
		&models.AuditLog{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	invRepo := repository.NewInvitationRepository(db)
	userRepo := repository.NewUserRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	auditWriter := audit.NewWriter(auditRepo, zerolog.Nop())
	service := services.NewInvitationService(invRepo, userRepo, auditWriter)
	handler := NewInvitationHandler(service)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return invitationTestEnv{
		db:      db,
		handler: handler,
		service: service,
	}
}

func (env invitationTestEnv) accept(t *testing.T, token, name, password string) *httptest.ResponseRecorder {
	t.Helper()

	r := gin.New()
	r.POST("/api/invitations/accept", env.handler.AcceptInvitation)

	body, err := json.Marshal(map[string]string{
		"token":    token,
		"name":     name,
		"password": password,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/invitations/accept", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestInvitationHandler_CreateInvitation(t *testing.T) {
	env := setupInvitationTestEnv(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(constants.ContextKeyUserID, uint64(1))

	body, err := json.Marshal(map[string]string{
		"email": "newcomer@example.org",
		"role":  "FACILITATOR",
	})
	require.NoError(t, err)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/invitations", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	env.handler.CreateInvitation(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.InvitationDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "newcomer@example.org", response.Email)
	require.Equal(t, models.RoleFacilitator, response.Role)
	require.Equal(t, models.InvitationPending, response.Status)
	require.NotEmpty(t, response.Token, "the creating admin should see the token")
}

func TestInvitationHandler_CreateInvitation_EmailAlreadyRegistered(t *testing.T) {
	env := setupInvitationTestEnv(t)
	createTestUser(t, env.db, "taken@example.org", "supersecret", models.RoleVolunteer, models.UserStatusActive)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(constants.ContextKeyUserID, uint64(1))

	body, err := json.Marshal(map[string]string{
		"email": "taken@example.org",
		"role":  "VOLUNTEER",
	})
	require.NoError(t, err)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/invitations", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	env.handler.CreateInvitation(c)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestInvitationHandler_AcceptInvitation(t *testing.T) {
	env := setupInvitationTestEnv(t)

	inv, err := env.service.Create(services.CreateInvitationInput{
		Email:     "newcomer@example.org",
		Role:      "CONTRACTOR",
		InviterID: 1,
	})
	require.NoError(t, err)

	w := env.accept(t, inv.Token, "New Comer", "longenough")
	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "newcomer@example.org", response.Email)
	require.Equal(t, models.RoleContractor, response.Role, "role comes from the invitation, not the request")

	var reloaded models.Invitation
	require.NoError(t, env.db.First(&reloaded, inv.ID).Error)
	require.Equal(t, models.InvitationAccepted, reloaded.Status)
}

func TestInvitationHandler_AcceptInvitation_SecondRedemptionFails(t *testing.T) {
	env := setupInvitationTestEnv(t)

	inv, err := env.service.Create(services.CreateInvitationInput{
		Email:     "newcomer@example.org",
		Role:      "VOLUNTEER",
		InviterID: 1,
	})
	require.NoError(t, err)

	first := env.accept(t, inv.Token, "New Comer", "longenough")
	require.Equal(t, http.StatusCreated, first.Code)

	second := env.accept(t, inv.Token, "Some One Else", "alsolongenough")
	require.Equal(t, http.StatusBadRequest, second.Code)
	require.Contains(t, second.Body.String(), "Invalid or expired invitation")

	var count int64
	require.NoError(t, env.db.Model(&models.User{}).Where("email = ?", "newcomer@example.org").Count(&count).Error)
	require.EqualValues(t, 1, count, "a token redeems into exactly one account")
}

func TestInvitationHandler_AcceptInvitation_Expired(t *testing.T) {
	env := setupInvitationTestEnv(t)

	inv := &models.Invitation{
		Email:     "late@example.org",
		Role:      models.RoleVolunteer,
		Token:     utils.GenerateInvitationToken(),
		Status:    models.InvitationPending,
		ExpiresAt: time.Now().Add(-time.Hour),
		InviterID: 1,
	}
	require.NoError(t, env.db.Create(inv).Error)

	w := env.accept(t, inv.Token, "Late Comer", "longenough")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Invalid or expired invitation")
}

func TestInvitationHandler_AcceptInvitation_ShortPassword(t *testing.T) {
	env := setupInvitationTestEnv(t)

	inv, err := env.service.Create(services.CreateInvitationInput{
		Email:     "newcomer@example.org",
		Role:      "VOLUNTEER",
		InviterID: 1,
	})
	require.NoError(t, err)

	w := env.accept(t, inv.Token, "New Comer", "short")
	require.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.User{}).Count(&count).Error)
	require.EqualValues(t, 0, count)
}

func TestInvitationHandler_CancelInvitation(t *testing.T) {
	env := setupInvitationTestEnv(t)

	inv, err := env.service.Create(services.CreateInvitationInput{
		Email:     "regret@example.org",
		Role:      "VOLUNTEER",
		InviterID: 1,
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(constants.ContextKeyUserID, uint64(1))
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	c.Request = httptest.NewRequest(http.MethodDelete, "/api/invitations/1", nil)

	env.handler.CancelInvitation(c)

	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.Invitation{}).Where("id = ?", inv.ID).Count(&count).Error)
	require.EqualValues(t, 0, count, "cancelled invitation is removed")

	accept := env.accept(t, inv.Token, "Too Late", "longenough")
	require.Equal(t, http.StatusBadRequest, accept.Code)
}
