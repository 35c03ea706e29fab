package commands_test

import (
	"context"
	"errors"
	"testing"

	"tasking/internal/core/application/usecases/commands"
	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/core/domain/model/task"
	"tasking/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockEnqueueTaskRepository struct{ mock.Mock }

func (m *MockEnqueueTaskRepository) Add(ctx context.Context, aggregate *task.Task) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}
func (m *MockEnqueueTaskRepository) Update(_ context.Context, _ *task.Task) error { return nil }
func (m *MockEnqueueTaskRepository) Get(_ context.Context, _ kernel.UUID) (*task.Task, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockEnqueueTaskRepository) GetAllInStatus(_ context.Context, _ task.Status) ([]*task.Task, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockEnqueueTaskRepository) GetAllUnfinishedByWorker(_ context.Context, _ kernel.UUID) ([]*task.Task, error) {
	return nil, errors.New("not implemented in mock")
}

type MockEnqueueTaskUoW struct{ mock.Mock }

func (m *MockEnqueueTaskUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockEnqueueTaskUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockEnqueueTaskUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockEnqueueTaskUoW) TaskRepository() ports.TaskRepository {
	args := m.Called()
	return args.Get(0).(ports.TaskRepository)
}

type MockEnqueueTaskUoWFactory struct{ mock.Mock }

func (m *MockEnqueueTaskUoWFactory) Create() commands.TaskUoW {
	args := m.Called()
	return args.Get(0).(commands.TaskUoW)
}

type MockEnqueuePublisher struct{ mock.Mock }

func (m *MockEnqueuePublisher) Publish(ctx context.Context, queue kernel.QueueName, envelope ports.TaskEnvelope) error {
	args := m.Called(ctx, queue, envelope)
	return args.Error(0)
}

func TestEnqueueTaskCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewEnqueueTaskCommand(id, "sync", nil, []byte(`{}`), 3)

	repo := new(MockEnqueueTaskRepository)
	uow := new(MockEnqueueTaskUoW)
	publisher := new(MockEnqueuePublisher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TaskRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*task.Task")).Return(nil).Once(),
		publisher.On("Publish", mock.Anything, kernel.DispatchQueueName, mock.AnythingOfType("ports.TaskEnvelope")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockEnqueueTaskUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewEnqueueTaskCommandHandler(factory, publisher)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestEnqueueTaskCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.EnqueueTaskCommand{} // not constructed properly
	factory := new(MockEnqueueTaskUoWFactory)
	h := commands.NewEnqueueTaskCommandHandler(factory, new(MockEnqueuePublisher))
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestEnqueueTaskCommandHandler_Handle_PublishErrorRollsBack(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewEnqueueTaskCommand(kernel.NewUUID(), "sync", nil, nil, 0)

	repo := new(MockEnqueueTaskRepository)
	uow := new(MockEnqueueTaskUoW)
	publisher := new(MockEnqueuePublisher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TaskRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*task.Task")).Return(nil).Once(),
		publisher.On("Publish", mock.Anything, kernel.DispatchQueueName, mock.AnythingOfType("ports.TaskEnvelope")).
			Return(errors.New("broker down")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockEnqueueTaskUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewEnqueueTaskCommandHandler(factory, publisher)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestEnqueueTaskCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewEnqueueTaskCommand(kernel.NewUUID(), "sync", nil, nil, 0)

	uow := new(MockEnqueueTaskUoW)
	factory := new(MockEnqueueTaskUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewEnqueueTaskCommandHandler(factory, new(MockEnqueuePublisher))
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
}
