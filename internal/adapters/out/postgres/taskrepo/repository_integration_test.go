package taskrepo_test

import (
	"context"
	"testing"
	"time"

	"tasking/internal/adapters/out/postgres/taskrepo"
	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/core/domain/model/task"
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

// TaskRepositoryIntegrationTestSuite verifies task persistence behavior
// against a real PostgreSQL instance.
type TaskRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *taskrepo.GormTaskRepository
	tracker    *MockAggregateTracker
}

func (suite *TaskRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&taskrepo.TaskDTO{}))
}

func (suite *TaskRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE tasks").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = taskrepo.NewGormTaskRepository(suite.db, suite.tracker)
}

func (suite *TaskRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *TaskRepositoryIntegrationTestSuite) newTask(resource *kernel.ResourceName) *task.Task {
	created, err := task.NewTask(kernel.NewUUID(), "sync", resource, []byte(`{"url":"https://cdn.example/repo"}`), 3)
	suite.Require().NoError(err)
	return created
}

func (suite *TaskRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	resource, err := kernel.NewResourceName("repository", "rhel-8")
	suite.Require().NoError(err)
	created := suite.newTask(&resource)

	suite.Require().NoError(suite.repository.Add(ctx, created))

	loaded, err := suite.repository.Get(ctx, created.ID())
	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(created))
	suite.Equal("sync", loaded.Name())
	suite.Equal(task.Waiting, loaded.Status())
	suite.Require().NotNil(loaded.Resource())
	suite.True(loaded.Resource().IsEqual(resource))
	suite.Equal(created.Payload(), loaded.Payload())
	suite.Nil(loaded.Worker())
}

func (suite *TaskRepositoryIntegrationTestSuite) TestUpdate_PersistsTransition() {
	ctx := context.Background()
	created := suite.newTask(nil)
	workerID := kernel.NewUUID()

	suite.Require().NoError(suite.repository.Add(ctx, created))
	suite.Require().NoError(created.Dispatch(workerID))
	suite.Require().NoError(suite.repository.Update(ctx, created))

	loaded, err := suite.repository.Get(ctx, created.ID())
	suite.Require().NoError(err)
	suite.Equal(task.Dispatched, loaded.Status())
	suite.Require().NotNil(loaded.Worker())
	suite.True(loaded.Worker().IsEqual(workerID))
}

func (suite *TaskRepositoryIntegrationTestSuite) TestUpdate_RequeueClearsWorker() {
	ctx := context.Background()
	created := suite.newTask(nil)
	workerID := kernel.NewUUID()

	suite.Require().NoError(suite.repository.Add(ctx, created))
	suite.Require().NoError(created.Dispatch(workerID))
	suite.Require().NoError(suite.repository.Update(ctx, created))

	suite.Require().NoError(created.Requeue("worker went offline"))
	suite.Require().NoError(suite.repository.Update(ctx, created))

	loaded, err := suite.repository.Get(ctx, created.ID())
	suite.Require().NoError(err)
	suite.Equal(task.Waiting, loaded.Status())
	suite.Nil(loaded.Worker())
	suite.Equal(1, loaded.Attempts())
	suite.Equal("worker went offline", loaded.Failure())
}

func (suite *TaskRepositoryIntegrationTestSuite) TestGet_NotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *TaskRepositoryIntegrationTestSuite) TestUpdate_MissingRow() {
	ctx := context.Background()
	created := suite.newTask(nil)

	err := suite.repository.Update(ctx, created)
	suite.Require().Error(err)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *TaskRepositoryIntegrationTestSuite) TestGetAllInStatus_FiltersAndOrders() {
	ctx := context.Background()
	first := suite.newTask(nil)
	second := suite.newTask(nil)
	dispatched := suite.newTask(nil)

	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(suite.repository.Add(ctx, second))
	suite.Require().NoError(suite.repository.Add(ctx, dispatched))

	suite.Require().NoError(dispatched.Dispatch(kernel.NewUUID()))
	suite.Require().NoError(suite.repository.Update(ctx, dispatched))

	waiting, err := suite.repository.GetAllInStatus(ctx, task.Waiting)
	suite.Require().NoError(err)
	suite.Len(waiting, 2)
	for _, w := range waiting {
		suite.Equal(task.Waiting, w.Status())
	}
}

func (suite *TaskRepositoryIntegrationTestSuite) TestGetAllUnfinishedByWorker() {
	ctx := context.Background()
	workerID := kernel.NewUUID()

	dispatched := suite.newTask(nil)
	suite.Require().NoError(suite.repository.Add(ctx, dispatched))
	suite.Require().NoError(dispatched.Dispatch(workerID))
	suite.Require().NoError(suite.repository.Update(ctx, dispatched))

	running := suite.newTask(nil)
	suite.Require().NoError(suite.repository.Add(ctx, running))
	suite.Require().NoError(running.Dispatch(workerID))
	suite.Require().NoError(running.Start())
	suite.Require().NoError(suite.repository.Update(ctx, running))

	finished := suite.newTask(nil)
	suite.Require().NoError(suite.repository.Add(ctx, finished))
	suite.Require().NoError(finished.Dispatch(workerID))
	suite.Require().NoError(finished.Start())
	suite.Require().NoError(finished.Complete(nil))
	suite.Require().NoError(suite.repository.Update(ctx, finished))

	other := suite.newTask(nil)
	suite.Require().NoError(suite.repository.Add(ctx, other))
	suite.Require().NoError(other.Dispatch(kernel.NewUUID()))
	suite.Require().NoError(suite.repository.Update(ctx, other))

	unfinished, err := suite.repository.GetAllUnfinishedByWorker(ctx, workerID)
	suite.Require().NoError(err)
	suite.Len(unfinished, 2)
	for _, u := range unfinished {
		suite.Require().NotNil(u.Worker())
		suite.True(u.Worker().IsEqual(workerID))
		suite.False(u.Status().IsFinal())
	}
}

func TestTaskRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(TaskRepositoryIntegrationTestSuite))
}
