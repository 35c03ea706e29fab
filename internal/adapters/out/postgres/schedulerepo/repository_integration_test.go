package schedulerepo_test

import (
	"context"
	"testing"
	"time"

	"tasking/internal/adapters/out/postgres/schedulerepo"
	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/core/domain/model/schedule"
	"tasking/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// ScheduleRepositoryIntegrationTestSuite verifies schedule persistence
// behavior against a real PostgreSQL instance.
type ScheduleRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *schedulerepo.GormScheduleRepository
}

func (suite *ScheduleRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&schedulerepo.ScheduleDTO{}))
}

func (suite *ScheduleRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE schedules").Error)

	tracker := new(MockAggregateTracker)
	tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = schedulerepo.NewGormScheduleRepository(suite.db, tracker)
}

func (suite *ScheduleRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ScheduleRepositoryIntegrationTestSuite) newSchedule(name string, createdAt time.Time) *schedule.Schedule {
	created, err := schedule.NewSchedule(
		kernel.NewUUID(),
		name,
		"sync",
		nil,
		[]byte(`{}`),
		"0 2 * * *",
		3,
		createdAt,
	)
	suite.Require().NoError(err)
	return created
}

func (suite *ScheduleRepositoryIntegrationTestSuite) TestAddAndGetByName_RoundTrip() {
	ctx := context.Background()
	created := suite.newSchedule("nightly-sync", time.Now().UTC())

	suite.Require().NoError(suite.repository.Add(ctx, created))

	loaded, err := suite.repository.GetByName(ctx, "nightly-sync")
	suite.Require().NoError(err)
	suite.True(loaded.ID().IsEqual(created.ID()))
	suite.Equal("sync", loaded.TaskName())
	suite.Equal("0 2 * * *", loaded.CronExpr())
	suite.True(loaded.Enabled())
	suite.Equal(created.NextRunAt().Unix(), loaded.NextRunAt().Unix())
}

func (suite *ScheduleRepositoryIntegrationTestSuite) TestGetAllDue_ReturnsOnlyOverdueEnabled() {
	ctx := context.Background()
	lastWeek := time.Now().UTC().Add(-7 * 24 * time.Hour)

	overdue := suite.newSchedule("overdue", lastWeek)
	fresh := suite.newSchedule("fresh", time.Now().UTC())
	disabled := suite.newSchedule("disabled", lastWeek)
	disabled.Disable()

	suite.Require().NoError(suite.repository.Add(ctx, overdue))
	suite.Require().NoError(suite.repository.Add(ctx, fresh))
	suite.Require().NoError(suite.repository.Add(ctx, disabled))

	due, err := suite.repository.GetAllDue(ctx, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().Len(due, 1)
	suite.Equal("overdue", due[0].Name())
}

func (suite *ScheduleRepositoryIntegrationTestSuite) TestUpdate_PersistsMarkFired() {
	ctx := context.Background()
	lastWeek := time.Now().UTC().Add(-7 * 24 * time.Hour)
	fired := suite.newSchedule("nightly-sync", lastWeek)

	suite.Require().NoError(suite.repository.Add(ctx, fired))

	now := time.Now().UTC()
	fired.MarkFired(now)
	suite.Require().NoError(suite.repository.Update(ctx, fired))

	loaded, err := suite.repository.GetByName(ctx, "nightly-sync")
	suite.Require().NoError(err)
	suite.Require().NotNil(loaded.LastRunAt())
	suite.Equal(now.Unix(), loaded.LastRunAt().Unix())
	suite.True(loaded.NextRunAt().After(now))
}

func (suite *ScheduleRepositoryIntegrationTestSuite) TestGetByName_NotFound() {
	_, err := suite.repository.GetByName(context.Background(), "missing")
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func TestScheduleRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ScheduleRepositoryIntegrationTestSuite))
}
