package kernel_test

import (
	"testing"

	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorkerQueueName(t *testing.T) {
	t.Run("derives_worker_queue", func(t *testing.T) {
		queue, err := kernel.NewWorkerQueueName("worker-1")

		require.NoError(t, err)
		assert.Equal(t, "tasking.worker.worker-1", queue.String())
		require.NoError(t, queue.Validate())
	})

	t.Run("rejects_empty_worker_name", func(t *testing.T) {
		_, err := kernel.NewWorkerQueueName("")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestQueueName_Validate(t *testing.T) {
	require.NoError(t, kernel.DispatchQueueName.Validate())

	var empty kernel.QueueName
	require.ErrorIs(t, empty.Validate(), errs.ErrValueIsInvalid)

	foreign := kernel.QueueName("other.app.queue")
	require.ErrorIs(t, foreign.Validate(), errs.ErrValueIsInvalid)

	bare := kernel.QueueName("tasking.worker.")
	require.ErrorIs(t, bare.Validate(), errs.ErrValueIsInvalid)
}
