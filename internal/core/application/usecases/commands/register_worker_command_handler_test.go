package commands_test

import (
	"context"
	"testing"
	"time"

	"tasking/internal/core/application/usecases/commands"
	"tasking/internal/core/domain/model/worker"
	"tasking/internal/core/ports"
	"tasking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockWorkerUoW struct{ mock.Mock }

func (m *MockWorkerUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockWorkerUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockWorkerUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockWorkerUoW) WorkerRepository() ports.WorkerRepository {
	args := m.Called()
	return args.Get(0).(ports.WorkerRepository)
}

type MockWorkerUoWFactory struct{ mock.Mock }

func (m *MockWorkerUoWFactory) Create() commands.WorkerUoW {
	args := m.Called()
	return args.Get(0).(commands.WorkerUoW)
}

func newWorkerUoW(workerRepo *MockWorkerRepository) *MockWorkerUoW {
	uow := new(MockWorkerUoW)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
	uow.On("WorkerRepository").Return(workerRepo)
	return uow
}

func TestRegisterWorkerCommandHandler_Handle_NewWorker(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRegisterWorkerCommand("reserved-resource-worker-1")
	require.NoError(t, err)

	workerRepo := new(MockWorkerRepository)
	uow := newWorkerUoW(workerRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	workerRepo.On("GetByName", mock.Anything, "reserved-resource-worker-1").
		Return(nil, errs.NewObjectNotFoundError("worker", "reserved-resource-worker-1")).Once()
	workerRepo.On("Add", mock.Anything, mock.MatchedBy(func(w *worker.Worker) bool {
		return w.Name() == "reserved-resource-worker-1" && w.Status() == worker.Online
	})).Return(nil).Once()

	factory := new(MockWorkerUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRegisterWorkerCommandHandler(factory)
	id, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NoError(t, id.Validate())
	workerRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRegisterWorkerCommandHandler_Handle_ExistingWorkerKeepsID(t *testing.T) {
	ctx := t.Context()
	registered := onlineWorker(t, "worker-1")
	registered.MarkOffline()
	cmd, err := commands.NewRegisterWorkerCommand("worker-1")
	require.NoError(t, err)

	workerRepo := new(MockWorkerRepository)
	uow := newWorkerUoW(workerRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	workerRepo.On("GetByName", mock.Anything, "worker-1").Return(registered, nil).Once()
	workerRepo.On("Update", mock.Anything, registered).Return(nil).Once()

	factory := new(MockWorkerUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRegisterWorkerCommandHandler(factory)
	id, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.True(t, id.IsEqual(registered.ID()))
	assert.Equal(t, worker.Online, registered.Status())
}

func TestNewRegisterWorkerCommand_InvalidName(t *testing.T) {
	_, err := commands.NewRegisterWorkerCommand("")
	require.Error(t, err)

	_, err = commands.NewRegisterWorkerCommand("worker 1")
	require.Error(t, err)
}

func TestHeartbeatWorkerCommandHandler_Handle_RefreshesTimestamp(t *testing.T) {
	ctx := t.Context()
	beating, err := worker.RestoreWorker(
		onlineWorker(t, "worker-1").ID(),
		"worker-1",
		worker.Online,
		time.Now().UTC().Add(-time.Minute),
	)
	require.NoError(t, err)
	before := beating.LastHeartbeat()
	cmd, err := commands.NewHeartbeatWorkerCommand(beating.ID())
	require.NoError(t, err)

	workerRepo := new(MockWorkerRepository)
	uow := newWorkerUoW(workerRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	workerRepo.On("Get", mock.Anything, beating.ID()).Return(beating, nil).Once()
	workerRepo.On("Update", mock.Anything, beating).Return(nil).Once()

	factory := new(MockWorkerUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewHeartbeatWorkerCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	assert.True(t, beating.LastHeartbeat().After(before))
}

func TestHeartbeatWorkerCommandHandler_Handle_UnknownWorker(t *testing.T) {
	ctx := t.Context()
	id := onlineWorker(t, "worker-1").ID()
	cmd, err := commands.NewHeartbeatWorkerCommand(id)
	require.NoError(t, err)

	workerRepo := new(MockWorkerRepository)
	uow := newWorkerUoW(workerRepo)
	workerRepo.On("Get", mock.Anything, id).Return(nil, errs.NewObjectNotFoundError("worker", id)).Once()

	factory := new(MockWorkerUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewHeartbeatWorkerCommandHandler(factory)
	require.ErrorIs(t, h.Handle(ctx, cmd), commands.ErrWorkerNotFound)
}
