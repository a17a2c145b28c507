package services

import (
	"testing"

	"github.com/shiftflow/shiftflow-api/internal/database"
	"github.com/shiftflow/shiftflow-api/internal/interval"
	"github.com/shiftflow/shiftflow-api/internal/models"
	"github.com/shiftflow/shiftflow-api/internal/repository"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ShiftServiceTestSuite covers shift CRUD and calendar listing.
type ShiftServiceTestSuite struct {
	suite.Suite
	db       *gorm.DB
	service  *ShiftService
	schedule *ScheduleService

	manager *models.User
	barista *models.Position
	cashier *models.Position
	alice   *models.User
}

// SetupTest runs before each test
func (suite *ShiftServiceTestSuite) SetupTest() {
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

	shiftRepo := repository.NewShiftRepository(suite.db)
	positionRepo := repository.NewPositionRepository(suite.db)
	suite.schedule = NewScheduleService(suite.db)
	suite.service = NewShiftService(shiftRepo, positionRepo, suite.schedule)

	suite.barista = &models.Position{Name: "Barista", IsActive: true}
	suite.Require().NoError(suite.db.Create(suite.barista).Error)
	suite.cashier = &models.Position{Name: "Cashier", IsActive: true}
	suite.Require().NoError(suite.db.Create(suite.cashier).Error)

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
func (suite *ShiftServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *ShiftServiceTestSuite) createDraft(date string) *models.Shift {
	shift, err := suite.service.CreateShift(CreateShiftInput{
		ManagerID:  suite.manager.ID,
		Date:       date,
		StartTime:  "09:00",
		EndTime:    "13:00",
		PositionID: suite.barista.ID,
		Capacity:   2,
	})
	suite.Require().NoError(err)
	return shift
}

func (suite *ShiftServiceTestSuite) TestCreateShift_Defaults() {
	shift := suite.createDraft("2026-09-01")

	suite.Equal(models.ShiftStatusDraft, shift.Status)
	suite.Equal("2026-09-01", shift.Date)
	suite.Equal(suite.barista.ID, shift.Position.ID)
	suite.Empty(shift.Assignments)
}

func (suite *ShiftServiceTestSuite) TestCreateShift_InvalidDate() {
	_, err := suite.service.CreateShift(CreateShiftInput{
		ManagerID:  suite.manager.ID,
		Date:       "01/09/2026",
		StartTime:  "09:00",
		EndTime:    "13:00",
		PositionID: suite.barista.ID,
		Capacity:   1,
	})
	suite.ErrorIs(err, ErrInvalidDate)
}

func (suite *ShiftServiceTestSuite) TestCreateShift_BackwardInterval() {
	_, err := suite.service.CreateShift(CreateShiftInput{
		ManagerID:  suite.manager.ID,
		Date:       "2026-09-01",
		StartTime:  "13:00",
		EndTime:    "09:00",
		PositionID: suite.barista.ID,
		Capacity:   1,
	})
	suite.ErrorIs(err, interval.ErrEndNotAfterStart)
}

func (suite *ShiftServiceTestSuite) TestCreateShift_InvalidCapacity() {
	_, err := suite.service.CreateShift(CreateShiftInput{
		ManagerID:  suite.manager.ID,
		Date:       "2026-09-01",
		StartTime:  "09:00",
		EndTime:    "13:00",
		PositionID: suite.barista.ID,
		Capacity:   0,
	})
	suite.ErrorIs(err, ErrInvalidCapacity)
}

func (suite *ShiftServiceTestSuite) TestCreateShift_InactivePosition() {
	suite.Require().NoError(suite.db.Model(suite.barista).Update("is_active", false).Error)

	_, err := suite.service.CreateShift(CreateShiftInput{
		ManagerID:  suite.manager.ID,
		Date:       "2026-09-01",
		StartTime:  "09:00",
		EndTime:    "13:00",
		PositionID: suite.barista.ID,
		Capacity:   1,
	})
	suite.ErrorIs(err, ErrPositionNotFound)
}

func (suite *ShiftServiceTestSuite) TestUpdateShift_PartialEdit() {
	shift := suite.createDraft("2026-09-01")

	newEnd := "14:00"
	updated, err := suite.service.UpdateShift(shift.ID, suite.manager.ID, UpdateShiftInput{
		EndTime: &newEnd,
	})
	suite.NoError(err)
	suite.Equal("14:00", updated.EndTime)
	suite.Equal("09:00", updated.StartTime)
	suite.Equal("2026-09-01", updated.Date)
}

func (suite *ShiftServiceTestSuite) TestUpdateShift_RevalidatesAssignments() {
	shift := suite.createDraft("2026-09-01")
	suite.Require().NoError(suite.schedule.SyncAssignments(shift.ID, suite.manager.ID, []uint64{suite.alice.ID}))

	// Switching to a position alice does not hold must fail.
	_, err := suite.service.UpdateShift(shift.ID, suite.manager.ID, UpdateShiftInput{
		PositionID: &suite.cashier.ID,
	})

	var mismatch *PositionMismatchError
	suite.ErrorAs(err, &mismatch)
	suite.Equal([]uint64{suite.alice.ID}, mismatch.EmployeeIDs)
}

func (suite *ShiftServiceTestSuite) TestUpdateShift_CapacityBelowAssignedRejected() {
	shift := suite.createDraft("2026-09-01")
	bob := &models.User{
		Username:     "bob",
		PasswordHash: "hashedpassword",
		Role:         models.RoleEmployee,
		EmployeeID:   "EMP-bob",
		PositionID:   &suite.barista.ID,
		IsActive:     true,
	}
	suite.Require().NoError(suite.db.Create(bob).Error)
	suite.Require().NoError(suite.schedule.SyncAssignments(shift.ID, suite.manager.ID, []uint64{suite.alice.ID, bob.ID}))

	one := 1
	_, err := suite.service.UpdateShift(shift.ID, suite.manager.ID, UpdateShiftInput{
		Capacity: &one,
	})

	var capacity *CapacityExceededError
	suite.ErrorAs(err, &capacity)
}

func (suite *ShiftServiceTestSuite) TestUpdateShift_PublishBlockedByUnavailability() {
	shift := suite.createDraft("2026-09-01")
	suite.Require().NoError(suite.schedule.SyncAssignments(shift.ID, suite.manager.ID, []uint64{suite.alice.ID}))
	suite.Require().NoError(suite.db.Create(&models.Unavailability{EmployeeID: suite.alice.ID, Date: "2026-09-01"}).Error)

	published := models.ShiftStatusPublished
	_, err := suite.service.UpdateShift(shift.ID, suite.manager.ID, UpdateShiftInput{
		Status: &published,
	})
	suite.ErrorIs(err, ErrScheduleConflictOnPublish)
}

func (suite *ShiftServiceTestSuite) TestUpdateShift_NotOwned() {
	shift := suite.createDraft("2026-09-01")

	_, err := suite.service.UpdateShift(shift.ID, suite.manager.ID+100, UpdateShiftInput{})
	suite.ErrorIs(err, ErrShiftNotFound)
}

func (suite *ShiftServiceTestSuite) TestListShifts_Filters() {
	early := suite.createDraft("2026-09-01")
	suite.createDraft("2026-09-20")

	shifts, err := suite.service.ListShifts(repository.ShiftFilter{
		ManagerID: suite.manager.ID,
		DateFrom:  "2026-09-01",
		DateTo:    "2026-09-10",
	})
	suite.NoError(err)
	suite.Require().Len(shifts, 1)
	suite.Equal(early.ID, shifts[0].ID)

	status := models.ShiftStatusDraft
	shifts, err = suite.service.ListShifts(repository.ShiftFilter{
		ManagerID: suite.manager.ID,
		Status:    &status,
	})
	suite.NoError(err)
	suite.Len(shifts, 2)
}

func (suite *ShiftServiceTestSuite) TestListShifts_UnderstaffedOnly() {
	full := suite.createDraft("2026-09-01")
	short := suite.createDraft("2026-09-02")

	one := 1
	_, err := suite.service.UpdateShift(full.ID, suite.manager.ID, UpdateShiftInput{Capacity: &one})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.schedule.SyncAssignments(full.ID, suite.manager.ID, []uint64{suite.alice.ID}))

	shifts, err := suite.service.ListShifts(repository.ShiftFilter{
		ManagerID:        suite.manager.ID,
		UnderstaffedOnly: true,
	})
	suite.NoError(err)
	suite.Require().Len(shifts, 1)
	suite.Equal(short.ID, shifts[0].ID)
}

func (suite *ShiftServiceTestSuite) TestListEmployeeShifts_PublishedOnly() {
	draft := suite.createDraft("2026-09-01")
	live := suite.createDraft("2026-09-02")
	suite.Require().NoError(suite.schedule.SyncAssignments(draft.ID, suite.manager.ID, []uint64{suite.alice.ID}))
	suite.Require().NoError(suite.schedule.SyncAssignments(live.ID, suite.manager.ID, []uint64{suite.alice.ID}))

	published := models.ShiftStatusPublished
	_, err := suite.service.UpdateShift(live.ID, suite.manager.ID, UpdateShiftInput{Status: &published})
	suite.Require().NoError(err)

	shifts, err := suite.service.ListEmployeeShifts(suite.alice.ID, "2026-09-01", "2026-09-30")
	suite.NoError(err)
	suite.Require().Len(shifts, 1)
	suite.Equal(live.ID, shifts[0].ID)
}

func TestShiftServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ShiftServiceTestSuite))
}
