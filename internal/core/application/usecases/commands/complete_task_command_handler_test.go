package commands_test

import (
	"testing"
	"time"

	"tasking/internal/core/application/usecases/commands"
	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/core/domain/model/reservation"
	"tasking/internal/core/domain/model/task"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func runningTask(t *testing.T, resource *kernel.ResourceName, workerID kernel.UUID) *task.Task {
	t.Helper()
	created, err := task.NewTask(kernel.NewUUID(), "sync", resource, []byte(`{}`), 3)
	require.NoError(t, err)
	require.NoError(t, created.Dispatch(workerID))
	require.NoError(t, created.Start())
	return created
}

func newSettleUoW(taskRepo *MockTaskRepository, resRepo *MockReservationRepository) *MockUoW {
	uow := new(MockUoW)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
	uow.On("TaskRepository").Return(taskRepo)
	uow.On("ReservationRepository").Return(resRepo)
	return uow
}

func TestCompleteTaskCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	workerID := kernel.NewUUID()
	finishing := runningTask(t, nil, workerID)
	cmd, _ := commands.NewCompleteTaskCommand(finishing.ID(), workerID, []byte(`{"synced":42}`))

	taskRepo := new(MockTaskRepository)
	resRepo := new(MockReservationRepository)
	uow := newSettleUoW(taskRepo, resRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	taskRepo.On("Get", mock.Anything, finishing.ID()).Return(finishing, nil).Once()
	taskRepo.On("Update", mock.Anything, finishing).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCompleteTaskCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, task.Completed, finishing.Status())
	assert.Equal(t, []byte(`{"synced":42}`), finishing.Result())
	assert.NotNil(t, finishing.FinishedAt())
	uow.AssertExpectations(t)
}

func TestCompleteTaskCommandHandler_Handle_ReleasesLastReservation(t *testing.T) {
	ctx := t.Context()
	workerID := kernel.NewUUID()
	resource, err := kernel.NewResourceName("repository", "rhel-8")
	require.NoError(t, err)
	finishing := runningTask(t, &resource, workerID)
	cmd, _ := commands.NewCompleteTaskCommand(finishing.ID(), workerID, nil)

	held, err := reservation.NewReservation(kernel.NewUUID(), resource, workerID, time.Now().UTC())
	require.NoError(t, err)

	taskRepo := new(MockTaskRepository)
	resRepo := new(MockReservationRepository)
	uow := newSettleUoW(taskRepo, resRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	taskRepo.On("Get", mock.Anything, finishing.ID()).Return(finishing, nil).Once()
	resRepo.On("Get", mock.Anything, resource).Return(held, nil).Once()
	resRepo.On("Delete", mock.Anything, resource).Return(nil).Once()
	taskRepo.On("Update", mock.Anything, finishing).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCompleteTaskCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	assert.True(t, held.IsIdle())
	resRepo.AssertExpectations(t)
}

func TestCompleteTaskCommandHandler_Handle_KeepsBusyReservation(t *testing.T) {
	ctx := t.Context()
	workerID := kernel.NewUUID()
	resource, err := kernel.NewResourceName("repository", "rhel-8")
	require.NoError(t, err)
	finishing := runningTask(t, &resource, workerID)
	cmd, _ := commands.NewCompleteTaskCommand(finishing.ID(), workerID, nil)

	held, err := reservation.NewReservation(kernel.NewUUID(), resource, workerID, time.Now().UTC())
	require.NoError(t, err)
	held.Acquire() // a second task in flight on the same resource

	taskRepo := new(MockTaskRepository)
	resRepo := new(MockReservationRepository)
	uow := newSettleUoW(taskRepo, resRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	taskRepo.On("Get", mock.Anything, finishing.ID()).Return(finishing, nil).Once()
	resRepo.On("Get", mock.Anything, resource).Return(held, nil).Once()
	resRepo.On("Update", mock.Anything, held).Return(nil).Once()
	taskRepo.On("Update", mock.Anything, finishing).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCompleteTaskCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, 1, held.InFlight())
	resRepo.AssertExpectations(t)
}

func TestCompleteTaskCommandHandler_Handle_WorkerMismatch(t *testing.T) {
	ctx := t.Context()
	finishing := runningTask(t, nil, kernel.NewUUID())
	cmd, _ := commands.NewCompleteTaskCommand(finishing.ID(), kernel.NewUUID(), nil)

	taskRepo := new(MockTaskRepository)
	uow := newSettleUoW(taskRepo, new(MockReservationRepository))
	taskRepo.On("Get", mock.Anything, finishing.ID()).Return(finishing, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCompleteTaskCommandHandler(factory)
	require.ErrorIs(t, h.Handle(ctx, cmd), commands.ErrTaskWorkerMismatch)
	assert.Equal(t, task.Running, finishing.Status())
}
