package worker_test

import (
	"testing"
	"time"

	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/core/domain/model/worker"
	"tasking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorker(t *testing.T) {
	t.Run("creates_online_worker", func(t *testing.T) {
		now := time.Now()
		w, err := worker.NewWorker(kernel.NewUUID(), "worker-1", now)

		require.NoError(t, err)
		require.NoError(t, w.Validate())
		assert.Equal(t, "worker-1", w.Name())
		assert.Equal(t, worker.Online, w.Status())
		assert.Equal(t, now.UTC(), w.LastHeartbeat())
		assert.Equal(t, "tasking.worker.worker-1", w.Queue().String())
	})

	t.Run("rejects_invalid_names", func(t *testing.T) {
		_, err := worker.NewWorker(kernel.NewUUID(), "", time.Now())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = worker.NewWorker(kernel.NewUUID(), "worker 1", time.Now())
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_zero_id", func(t *testing.T) {
		_, err := worker.NewWorker(kernel.UUID{}, "worker-1", time.Now())
		require.Error(t, err)
	})
}

func TestWorker_Heartbeat(t *testing.T) {
	t.Run("updates_timestamp", func(t *testing.T) {
		start := time.Now()
		w, err := worker.NewWorker(kernel.NewUUID(), "worker-1", start)
		require.NoError(t, err)

		later := start.Add(5 * time.Second)
		w.Heartbeat(later)

		assert.Equal(t, later.UTC(), w.LastHeartbeat())
	})

	t.Run("revives_offline_worker", func(t *testing.T) {
		w, err := worker.NewWorker(kernel.NewUUID(), "worker-1", time.Now())
		require.NoError(t, err)
		w.MarkOffline()
		require.Equal(t, worker.Offline, w.Status())

		w.Heartbeat(time.Now())

		assert.Equal(t, worker.Online, w.Status())
	})
}

func TestWorker_IsStale(t *testing.T) {
	start := time.Now()
	w, err := worker.NewWorker(kernel.NewUUID(), "worker-1", start)
	require.NoError(t, err)

	timeout := 30 * time.Second

	assert.False(t, w.IsStale(start.Add(10*time.Second), timeout))
	assert.True(t, w.IsStale(start.Add(31*time.Second), timeout))

	// offline workers are already out of routing
	w.MarkOffline()
	assert.False(t, w.IsStale(start.Add(time.Hour), timeout))
}

func TestRestoreWorker(t *testing.T) {
	t.Run("restores_persisted_state", func(t *testing.T) {
		id := kernel.NewUUID()
		heartbeat := time.Now().UTC().Truncate(time.Second)

		w, err := worker.RestoreWorker(id, "worker-2", worker.Offline, heartbeat)

		require.NoError(t, err)
		assert.True(t, w.ID().IsEqual(id))
		assert.Equal(t, worker.Offline, w.Status())
		assert.Equal(t, heartbeat, w.LastHeartbeat())
	})

	t.Run("rejects_invalid_status", func(t *testing.T) {
		_, err := worker.RestoreWorker(kernel.NewUUID(), "worker-2", worker.Unknown, time.Now())
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestWorker_Validate(t *testing.T) {
	var w worker.Worker
	require.ErrorIs(t, w.Validate(), worker.ErrWorkerIsNotConstructed)
}
