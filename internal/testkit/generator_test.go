package testkit

import (
	"testing"

	"feedbacklens/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleIsDeterministic(t *testing.T) {
	g := NewGenerator()

	first, err := g.Sample("widgets")
	require.NoError(t, err)
	second, err := g.Sample("widgets")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSamplesDifferByDomain(t *testing.T) {
	g := NewGenerator()

	widgets, err := g.Sample("widgets")
	require.NoError(t, err)
	support, err := g.Sample("support")
	require.NoError(t, err)

	assert.NotEqual(t, widgets.Headers, support.Headers)
	assert.Len(t, widgets.Rows, DefaultGeneratorConfig().Rows)
}

func TestSampleUnknownName(t *testing.T) {
	_, err := NewGenerator().Sample("nonexistent")
	assert.ErrorIs(t, err, core.ErrSampleNotFound)
}

func TestAllSampleNamesResolve(t *testing.T) {
	g := NewGenerator()
	for _, name := range g.SampleNames() {
		table, err := g.Sample(name)
		require.NoError(t, err, name)
		assert.Len(t, table.Headers, 4)
		assert.NotEmpty(t, table.Rows)
	}
}
