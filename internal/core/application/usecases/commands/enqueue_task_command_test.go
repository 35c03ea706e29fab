package commands_test

import (
	"testing"

	"tasking/internal/core/application/usecases/commands"
	"tasking/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnqueueTaskCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	resource, err := kernel.NewResourceName("repository", "rhel-8")
	require.NoError(t, err)

	cmd, err := commands.NewEnqueueTaskCommand(id, "sync", &resource, []byte(`{"url":"x"}`), 3)
	require.NoError(t, err)
	assert.Equal(t, id, cmd.TaskID())
	require.NoError(t, cmd.Validate())
}

func TestNewEnqueueTaskCommand_NilResource(t *testing.T) {
	_, err := commands.NewEnqueueTaskCommand(kernel.NewUUID(), "sync", nil, nil, 0)
	require.NoError(t, err)
}

func TestNewEnqueueTaskCommand_InvalidTaskID(t *testing.T) {
	_, err := commands.NewEnqueueTaskCommand(kernel.UUID{}, "sync", nil, nil, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewEnqueueTaskCommand_EmptyName(t *testing.T) {
	_, err := commands.NewEnqueueTaskCommand(kernel.NewUUID(), "", nil, nil, 0)
	require.Error(t, err)
}

func TestEnqueueTaskCommand_ZeroValueFailsValidation(t *testing.T) {
	cmd := commands.EnqueueTaskCommand{}
	require.ErrorIs(t, cmd.Validate(), commands.ErrEnqueueTaskCommandIsNotConstructed)
}
