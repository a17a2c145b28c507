package services

import (
	"testing"

	"github.com/shiftflow/shiftflow-api/internal/database"
	"github.com/shiftflow/shiftflow-api/internal/ledger"
	"github.com/shiftflow/shiftflow-api/internal/models"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// WorkflowServiceTestSuite covers publish, soft delete, and undo.
type WorkflowServiceTestSuite struct {
	suite.Suite
	db       *gorm.DB
	service  *WorkflowService
	schedule *ScheduleService

	manager *models.User
	barista *models.Position
	alice   *models.User
}

// SetupTest runs before each test
func (suite *WorkflowServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Position{},
		&models.Shift{},
		&models.Assignment{},
		&models.Unavailability{},
		&models.ShiftTemplate{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)
	suite.service = NewWorkflowService(suite.db)
	suite.schedule = NewScheduleService(suite.db)

	suite.barista = &models.Position{Name: "Barista", IsActive: true}
	suite.Require().NoError(suite.db.Create(suite.barista).Error)

	suite.manager = &models.User{
		Username:     "boss",
		PasswordHash: "hashedpassword",
		Role:         models.RoleManager,
		EmployeeID:   "EMP-boss",
		IsActive:     true,
	}
	suite.Require().NoError(suite.db.Create(suite.manager).Error)

	suite.alice = &models.User{
		Username:     "alice",
		PasswordHash: "hashedpassword",
		Role:         models.RoleEmployee,
		EmployeeID:   "EMP-alice",
		PositionID:   &suite.barista.ID,
		IsActive:     true,
	}
	suite.Require().NoError(suite.db.Create(suite.alice).Error)
}

// TearDownTest runs after each test
func (suite *WorkflowServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *WorkflowServiceTestSuite) createShift(date, start, end string, status models.ShiftStatus) *models.Shift {
	shift := &models.Shift{
		Date:        date,
		StartTime:   start,
		EndTime:     end,
		PositionID:  suite.barista.ID,
		Capacity:    2,
		Status:      status,
		CreatedByID: suite.manager.ID,
	}
	suite.Require().NoError(suite.db.Create(shift).Error)
	return shift
}

func (suite *WorkflowServiceTestSuite) reload(id uint64) models.Shift {
	var shift models.Shift
	suite.Require().NoError(suite.db.First(&shift, id).Error)
	return shift
}

func (suite *WorkflowServiceTestSuite) assignAlice(shiftID uint64) {
	suite.Require().NoError(suite.schedule.SyncAssignments(shiftID, suite.manager.ID, []uint64{suite.alice.ID}))
}

func (suite *WorkflowServiceTestSuite) blockAliceOn(date string) {
	record := &models.Unavailability{EmployeeID: suite.alice.ID, Date: date}
	suite.Require().NoError(suite.db.Create(record).Error)
}

func (suite *WorkflowServiceTestSuite) TestPublishOne() {
	shift := suite.createShift("2026-09-01", "09:00", "13:00", models.ShiftStatusDraft)

	suite.NoError(suite.service.PublishOne(suite.manager.ID, shift.ID))
	suite.Equal(models.ShiftStatusPublished, suite.reload(shift.ID).Status)
}

func (suite *WorkflowServiceTestSuite) TestPublishOne_AlreadyPublished() {
	shift := suite.createShift("2026-09-01", "09:00", "13:00", models.ShiftStatusPublished)

	err := suite.service.PublishOne(suite.manager.ID, shift.ID)
	suite.ErrorIs(err, ErrAlreadyPublished)
}

func (suite *WorkflowServiceTestSuite) TestPublishOne_BlockedByUnavailability() {
	shift := suite.createShift("2026-09-01", "09:00", "13:00", models.ShiftStatusDraft)
	suite.assignAlice(shift.ID)
	suite.blockAliceOn("2026-09-01")

	err := suite.service.PublishOne(suite.manager.ID, shift.ID)
	suite.ErrorIs(err, ErrScheduleConflictOnPublish)
	suite.Equal(models.ShiftStatusDraft, suite.reload(shift.ID).Status)
}

func (suite *WorkflowServiceTestSuite) TestPublishOne_NotOwnedNotFound() {
	other := &models.User{
		Username:     "rival",
		PasswordHash: "hashedpassword",
		Role:         models.RoleManager,
		EmployeeID:   "EMP-rival",
		IsActive:     true,
	}
	suite.Require().NoError(suite.db.Create(other).Error)
	shift := suite.createShift("2026-09-01", "09:00", "13:00", models.ShiftStatusDraft)

	err := suite.service.PublishOne(other.ID, shift.ID)
	suite.ErrorIs(err, ErrShiftNotFound)
}

func (suite *WorkflowServiceTestSuite) TestPublishInRange_PartitionsBlockedShifts() {
	clean := suite.createShift("2026-09-01", "09:00", "13:00", models.ShiftStatusDraft)
	blocked := suite.createShift("2026-09-02", "09:00", "13:00", models.ShiftStatusDraft)
	outside := suite.createShift("2026-10-01", "09:00", "13:00", models.ShiftStatusDraft)

	suite.assignAlice(blocked.ID)
	suite.blockAliceOn("2026-09-02")

	published, blockedIDs, err := suite.service.PublishInRange(suite.manager.ID, "2026-09-01", "2026-09-30")
	suite.NoError(err)
	suite.Equal([]uint64{clean.ID}, published)
	suite.Equal([]uint64{blocked.ID}, blockedIDs)

	suite.Equal(models.ShiftStatusPublished, suite.reload(clean.ID).Status)
	suite.Equal(models.ShiftStatusDraft, suite.reload(blocked.ID).Status)
	suite.Equal(models.ShiftStatusDraft, suite.reload(outside.ID).Status)
}

func (suite *WorkflowServiceTestSuite) TestPublishByIDs_SkipsAlreadyPublished() {
	draft := suite.createShift("2026-09-01", "09:00", "13:00", models.ShiftStatusDraft)
	live := suite.createShift("2026-09-02", "09:00", "13:00", models.ShiftStatusPublished)

	published, blocked, err := suite.service.PublishByIDs(suite.manager.ID, []uint64{draft.ID, live.ID})
	suite.NoError(err)
	suite.Equal([]uint64{draft.ID}, published)
	suite.Empty(blocked)
}

func (suite *WorkflowServiceTestSuite) TestPublishByIDs_EmptySelection() {
	published, blocked, err := suite.service.PublishByIDs(suite.manager.ID, nil)
	suite.NoError(err)
	suite.Nil(published)
	suite.Nil(blocked)
}

func (suite *WorkflowServiceTestSuite) TestDeleteInRange_DraftsOnly() {
	draft := suite.createShift("2026-09-01", "09:00", "13:00", models.ShiftStatusDraft)
	live := suite.createShift("2026-09-02", "09:00", "13:00", models.ShiftStatusPublished)

	deleted, err := suite.service.DeleteInRange(suite.manager.ID, "2026-09-01", "2026-09-30")
	suite.NoError(err)
	suite.Equal([]uint64{draft.ID}, deleted)

	suite.True(suite.reload(draft.ID).IsDeleted)
	suite.False(suite.reload(live.ID).IsDeleted)
}

func (suite *WorkflowServiceTestSuite) TestDeleteByIDs_AnyStatus() {
	draft := suite.createShift("2026-09-01", "09:00", "13:00", models.ShiftStatusDraft)
	live := suite.createShift("2026-09-02", "09:00", "13:00", models.ShiftStatusPublished)

	deleted, err := suite.service.DeleteByIDs(suite.manager.ID, []uint64{draft.ID, live.ID})
	suite.NoError(err)
	suite.ElementsMatch([]uint64{draft.ID, live.ID}, deleted)

	suite.True(suite.reload(draft.ID).IsDeleted)
	suite.True(suite.reload(live.ID).IsDeleted)
}

func (suite *WorkflowServiceTestSuite) TestDeleteOne_ThenGone() {
	shift := suite.createShift("2026-09-01", "09:00", "13:00", models.ShiftStatusDraft)

	suite.NoError(suite.service.DeleteOne(suite.manager.ID, shift.ID))
	suite.True(suite.reload(shift.ID).IsDeleted)

	err := suite.service.DeleteOne(suite.manager.ID, shift.ID)
	suite.ErrorIs(err, ErrShiftNotFound)
}

func (suite *WorkflowServiceTestSuite) TestUndoCreate_HidesShift() {
	shift := suite.createShift("2026-09-01", "09:00", "13:00", models.ShiftStatusDraft)

	reverted, err := suite.service.UndoAction(suite.manager.ID, ledger.ActionCreate, []uint64{shift.ID})
	suite.NoError(err)
	suite.Equal(int64(1), reverted)
	suite.True(suite.reload(shift.ID).IsDeleted)
}

func (suite *WorkflowServiceTestSuite) TestUndoDelete_RestoresOnlyStillDeleted() {
	a := suite.createShift("2026-09-01", "09:00", "13:00", models.ShiftStatusDraft)
	b := suite.createShift("2026-09-02", "09:00", "13:00", models.ShiftStatusDraft)

	_, err := suite.service.DeleteByIDs(suite.manager.ID, []uint64{a.ID, b.ID})
	suite.Require().NoError(err)

	// b was already restored by hand; undo must leave it alone.
	suite.Require().NoError(suite.db.Model(&models.Shift{}).Where("id = ?", b.ID).Update("is_deleted", false).Error)

	reverted, err := suite.service.UndoAction(suite.manager.ID, ledger.ActionDelete, []uint64{a.ID, b.ID})
	suite.NoError(err)
	suite.Equal(int64(1), reverted)
	suite.False(suite.reload(a.ID).IsDeleted)
	suite.False(suite.reload(b.ID).IsDeleted)
}

func (suite *WorkflowServiceTestSuite) TestUndoPublish_RevertsOnlyStillPublished() {
	a := suite.createShift("2026-09-01", "09:00", "13:00", models.ShiftStatusDraft)
	b := suite.createShift("2026-09-02", "09:00", "13:00", models.ShiftStatusDraft)

	published, _, err := suite.service.PublishByIDs(suite.manager.ID, []uint64{a.ID, b.ID})
	suite.Require().NoError(err)
	suite.Require().Len(published, 2)

	// a went back to draft through an edit in the meantime.
	suite.Require().NoError(suite.db.Model(&models.Shift{}).Where("id = ?", a.ID).Update("status", models.ShiftStatusDraft).Error)

	reverted, err := suite.service.UndoAction(suite.manager.ID, ledger.ActionPublish, published)
	suite.NoError(err)
	suite.Equal(int64(1), reverted)
	suite.Equal(models.ShiftStatusDraft, suite.reload(a.ID).Status)
	suite.Equal(models.ShiftStatusDraft, suite.reload(b.ID).Status)
}

func (suite *WorkflowServiceTestSuite) TestUndo_EmptyIDs() {
	reverted, err := suite.service.UndoAction(suite.manager.ID, ledger.ActionDelete, nil)
	suite.NoError(err)
	suite.Zero(reverted)
}

func (suite *WorkflowServiceTestSuite) TestUndo_ScopedToOwner() {
	other := &models.User{
		Username:     "rival",
		PasswordHash: "hashedpassword",
		Role:         models.RoleManager,
		EmployeeID:   "EMP-rival",
		IsActive:     true,
	}
	suite.Require().NoError(suite.db.Create(other).Error)
	shift := suite.createShift("2026-09-01", "09:00", "13:00", models.ShiftStatusDraft)

	reverted, err := suite.service.UndoAction(other.ID, ledger.ActionCreate, []uint64{shift.ID})
	suite.NoError(err)
	suite.Zero(reverted)
	suite.False(suite.reload(shift.ID).IsDeleted)
}

func TestWorkflowServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WorkflowServiceTestSuite))
}
