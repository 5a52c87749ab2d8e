package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/silverstage/silverstage-api/internal/auth"
	"github.com/silverstage/silverstage-api/internal/constants"
	"github.com/silverstage/silverstage-api/internal/database"
	"github.com/silverstage/silverstage-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthMiddlewareTest(t *testing.T) (*gorm.DB, *auth.TokenManager, *gin.Engine) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	database.SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	tokens := auth.NewTokenManager("test-secret", "test", time.Hour)

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.GET("/probe", RequireAuth(tokens), func(c *gin.Context) {
		role, _ := GetRole(c)
		c.JSON(http.StatusOK, gin.H{"role": role})
	})
	r.POST("/session-login", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set(constants.ContextKeyUserID, uint64(1))
		session.Set(constants.ContextKeyRole, string(models.RoleVolunteer))
		session.Set(constants.ContextKeyName, "Probe User")
		require.NoError(t, session.Save())
		c.Status(http.StatusNoContent)
	})

	return db, tokens, r
}

func seedUser(t *testing.T, db *gorm.DB, role models.Role, status models.UserStatus) *models.User {
	t.Helper()

	user := &models.User{
		Name:         "Probe User",
		Email:        "probe@example.org",
		PasswordHash: "irrelevant",
		Role:         role,
		Status:       status,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestRequireAuth_NoCredentials(t *testing.T) {
	_, _, r := setupAuthMiddlewareTest(t)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_BearerToken(t *testing.T) {
	db, tokens, r := setupAuthMiddlewareTest(t)
	user := seedUser(t, db, models.RoleVolunteer, models.UserStatusActive)

	token, err := tokens.Generate(user)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), string(models.RoleVolunteer))
}

func TestRequireAuth_RoleRefreshedFromStorage(t *testing.T) {
	db, tokens, r := setupAuthMiddlewareTest(t)
	user := seedUser(t, db, models.RoleVolunteer, models.UserStatusActive)

	// The token still carries the old role.
	token, err := tokens.Generate(user)
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("role", models.RoleAdmin).Error)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), string(models.RoleAdmin),
		"a role change must take effect on the next request without re-login")
}

func TestRequireAuth_InactiveUserRejected(t *testing.T) {
	db, tokens, r := setupAuthMiddlewareTest(t)
	user := seedUser(t, db, models.RoleVolunteer, models.UserStatusActive)

	token, err := tokens.Generate(user)
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("status", models.UserStatusInactive).Error)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_SessionCookie(t *testing.T) {
	db, _, r := setupAuthMiddlewareTest(t)
	seedUser(t, db, models.RoleVolunteer, models.UserStatusActive)

	login := httptest.NewRequest(http.MethodPost, "/session-login", nil)
	loginRec := httptest.NewRecorder()
	r.ServeHTTP(loginRec, login)
	require.Equal(t, http.StatusNoContent, loginRec.Code)
	require.NotEmpty(t, loginRec.Result().Cookies())

	probe := httptest.NewRequest(http.MethodGet, "/probe", nil)
	for _, ck := range loginRec.Result().Cookies() {
		probe.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, probe)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), string(models.RoleVolunteer))
}

func TestRequireAuth_InvalidBearerToken(t *testing.T) {
	db, _, r := setupAuthMiddlewareTest(t)
	seedUser(t, db, models.RoleVolunteer, models.UserStatusActive)

	forged := auth.NewTokenManager("other-secret", "test", time.Hour)
	token, err := forged.Generate(&models.User{ID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}
