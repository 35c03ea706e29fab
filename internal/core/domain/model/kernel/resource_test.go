package kernel_test

import (
	"testing"

	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResourceName(t *testing.T) {
	t.Run("creates_valid_resource_name", func(t *testing.T) {
		resource, err := kernel.NewResourceName("repository", "zoo")

		require.NoError(t, err)
		require.NoError(t, resource.Validate())
		assert.Equal(t, "repository", resource.Kind())
		assert.Equal(t, "zoo", resource.Ident())
		assert.Equal(t, "repository:zoo", resource.String())
	})

	t.Run("rejects_empty_parts", func(t *testing.T) {
		_, err := kernel.NewResourceName("", "zoo")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = kernel.NewResourceName("repository", "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects_separator_and_whitespace", func(t *testing.T) {
		_, err := kernel.NewResourceName("repo:sitory", "zoo")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = kernel.NewResourceName("repository", "zoo farm")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestResourceNameFromString(t *testing.T) {
	t.Run("parses_canonical_form", func(t *testing.T) {
		resource, err := kernel.ResourceNameFromString("repository:zoo")

		require.NoError(t, err)
		assert.Equal(t, "repository", resource.Kind())
		assert.Equal(t, "zoo", resource.Ident())
	})

	t.Run("rejects_missing_separator", func(t *testing.T) {
		_, err := kernel.ResourceNameFromString("repository")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestResourceName_IsEqual(t *testing.T) {
	a, err := kernel.NewResourceName("repository", "zoo")
	require.NoError(t, err)
	b, err := kernel.ResourceNameFromString("repository:zoo")
	require.NoError(t, err)
	c, err := kernel.NewResourceName("repository", "farm")
	require.NoError(t, err)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}

func TestResourceName_Validate(t *testing.T) {
	t.Run("zero_value_is_invalid", func(t *testing.T) {
		var resource kernel.ResourceName
		require.ErrorIs(t, resource.Validate(), errs.ErrValueIsRequired)
	})
}
