package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/parcel-cli/internal/record"
)

func countyStore(t *testing.T, counties ...string) *record.Store {
	t.Helper()
	rows := make([][]string, len(counties))
	for i, c := range counties {
		rows[i] = []string{"1 Main St", c}
	}
	s, err := record.New([]string{"StreetAddress", "CountyName"}, rows)
	require.NoError(t, err)
	return s
}

func TestCompare(t *testing.T) {
	original := countyStore(t, "Fulton County", "", "UNKNOWN", "")
	updated := countyStore(t, "Fulton County", "DeKalb County", "UNKNOWN", "Cobb County")

	c, err := Compare(original, updated, "CountyName", "UNKNOWN")
	require.NoError(t, err)
	assert.Equal(t, 3, c.OriginalMissing)
	assert.Equal(t, 1, c.UpdatedMissing)
	assert.Equal(t, 2, c.RecordsUpdated)
	assert.Equal(t, "66.7%", c.SuccessRate)
}

func TestCompare_NothingMissing(t *testing.T) {
	s := countyStore(t, "Fulton County")

	c, err := Compare(s, s, "CountyName", "UNKNOWN")
	require.NoError(t, err)
	assert.Zero(t, c.OriginalMissing)
	assert.Equal(t, "n/a", c.SuccessRate)
}

func TestCompare_RowCountMismatch(t *testing.T) {
	original := countyStore(t, "Fulton County", "")
	updated := countyStore(t, "Fulton County")

	_, err := Compare(original, updated, "CountyName", "UNKNOWN")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row count mismatch")
}
