package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/silverstage/silverstage-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestGormAuditLogRepository_Append(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	repo := NewAuditLogRepository(db)

	mock.ExpectQuery(`INSERT INTO "audit_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	entry := &models.AuditLog{
		Action:  "user.role_changed",
		Detail:  datatypes.JSON([]byte(`{"user_id":7}`)),
		ActorID: 1,
	}
	require.NoError(t, repo.Append(entry))
	require.EqualValues(t, 42, entry.ID)

	require.NoError(t, mock.ExpectationsWereMet())
}
