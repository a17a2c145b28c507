package services

import (
	"strings"
	"testing"

	"github.com/shiftflow/shiftflow-api/internal/database"
	"github.com/shiftflow/shiftflow-api/internal/models"
	"github.com/shiftflow/shiftflow-api/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupPositionService(t *testing.T) (*PositionService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Position{},
		&models.Shift{},
		&models.Assignment{},
		&models.Unavailability{},
		&models.ShiftTemplate{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return NewPositionService(repository.NewPositionRepository(db)), db
}

func TestCreatePosition_TrimsName(t *testing.T) {
	service, _ := setupPositionService(t)

	position, err := service.CreatePosition(PositionInput{Name: "  Barista  "})
	require.NoError(t, err)
	require.Equal(t, "Barista", position.Name)
	require.True(t, position.IsActive)
}

func TestCreatePosition_NameRules(t *testing.T) {
	service, _ := setupPositionService(t)

	_, err := service.CreatePosition(PositionInput{Name: "   "})
	require.ErrorIs(t, err, ErrPositionNameRequired)

	_, err = service.CreatePosition(PositionInput{Name: strings.Repeat("x", 26)})
	require.ErrorIs(t, err, ErrPositionNameTooLong)

	_, err = service.CreatePosition(PositionInput{Name: strings.Repeat("x", 25)})
	require.NoError(t, err)
}

func TestCreatePosition_DuplicateName(t *testing.T) {
	service, _ := setupPositionService(t)

	_, err := service.CreatePosition(PositionInput{Name: "Barista"})
	require.NoError(t, err)

	_, err = service.CreatePosition(PositionInput{Name: "Barista"})
	require.ErrorIs(t, err, ErrPositionNameTaken)
}

func TestUpdatePosition_CanKeepOwnName(t *testing.T) {
	service, _ := setupPositionService(t)

	position, err := service.CreatePosition(PositionInput{Name: "Barista"})
	require.NoError(t, err)

	inactive := false
	updated, err := service.UpdatePosition(position.ID, PositionInput{Name: "Barista", IsActive: &inactive})
	require.NoError(t, err)
	require.False(t, updated.IsActive)
}

func TestDeletePosition_BlockedWhileReferenced(t *testing.T) {
	service, db := setupPositionService(t)

	position, err := service.CreatePosition(PositionInput{Name: "Barista"})
	require.NoError(t, err)

	manager := &models.User{
		Username:     "boss",
		PasswordHash: "hashedpassword",
		Role:         models.RoleManager,
		EmployeeID:   "EMP-boss",
		IsActive:     true,
	}
	require.NoError(t, db.Create(manager).Error)

	shift := &models.Shift{
		Date:        "2026-09-01",
		StartTime:   "09:00",
		EndTime:     "13:00",
		PositionID:  position.ID,
		Capacity:    1,
		Status:      models.ShiftStatusDraft,
		CreatedByID: manager.ID,
	}
	require.NoError(t, db.Create(shift).Error)

	require.ErrorIs(t, service.DeletePosition(position.ID), ErrPositionInUse)

	require.NoError(t, db.Delete(shift).Error)
	require.NoError(t, service.DeletePosition(position.ID))

	require.ErrorIs(t, service.DeletePosition(position.ID), ErrPositionMissing)
}
