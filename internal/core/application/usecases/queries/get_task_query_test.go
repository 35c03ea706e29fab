package queries_test

import (
	"testing"

	"tasking/internal/core/application/usecases/queries"
	"tasking/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetTaskQuery_Valid(t *testing.T) {
	id := kernel.NewUUID()
	query, err := queries.NewGetTaskQuery(id)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, id, query.TaskID())
}

func TestNewGetTaskQuery_InvalidID(t *testing.T) {
	_, err := queries.NewGetTaskQuery(kernel.UUID{})
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestGetTaskQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetTaskQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetTaskQueryIsNotConstructed)
}

func TestNewGetUnfinishedTasksQuery_Valid(t *testing.T) {
	query := queries.NewGetUnfinishedTasksQuery()
	require.NoError(t, query.Validate())
}

func TestGetUnfinishedTasksQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetUnfinishedTasksQuery{}
	require.ErrorIs(t, query.Validate(), queries.ErrGetUnfinishedTasksQueryIsNotConstructed)
}

func TestNewGetAllWorkersQuery_Valid(t *testing.T) {
	query := queries.NewGetAllWorkersQuery()
	require.NoError(t, query.Validate())
}

func TestGetAllWorkersQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetAllWorkersQuery{}
	require.ErrorIs(t, query.Validate(), queries.ErrGetAllWorkersQueryIsNotConstructed)
}
