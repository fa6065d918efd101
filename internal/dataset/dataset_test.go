package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialdash/internal/engine"
)

func TestDefault(t *testing.T) {
	ds, err := Default()
	require.NoError(t, err)

	keys := ds.Periods().Keys()
	assert.Equal(t, []engine.PeriodKey{"2025-10", "2025-11", "2025-12"}, keys)
	assert.Equal(t, "December 2025", ds.Periods().Label("2025-12"))
	assert.Equal(t, "2025-12-31", ds.UpdatedAt)

	for _, k := range keys {
		assert.Len(t, ds.Records(k), 12, "period %s", k)
	}
}

func TestDefaultGrowsMonthOverMonth(t *testing.T) {
	ds, err := Default()
	require.NoError(t, err)

	sel := engine.NewSelection(ds.Periods())
	view := engine.BuildView(ds, sel, engine.DefaultTopN)

	assert.True(t, view.Summary.HasPrior)
	assert.Positive(t, view.Summary.FollowersDelta)
	require.NotNil(t, view.Summary.TopEntity)
	assert.Equal(t, "Gross Insurance", view.Summary.TopEntity.Name)
}
