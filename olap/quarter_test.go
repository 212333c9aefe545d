package olap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuarterOfDate(t *testing.T) {
	cases := []struct {
		date     string
		expected string
	}{
		{"2025-01-01", "2025Q1"},
		{"2025-03-31", "2025Q1"},
		{"2025-04-01", "2025Q2"},
		{"2025-09-30", "2025Q3"},
		{"2025-12-31", "2025Q4"},
	}
	for _, c := range cases {
		d, err := time.Parse("2006-01-02", c.date)
		require.NoError(t, err)
		assert.Equal(t, c.expected, QuarterOfDate(d).String(), c.date)
	}
}

func TestQuarterOfISODate(t *testing.T) {
	q, err := QuarterOfISODate("2025-06-15")
	require.NoError(t, err)
	assert.Equal(t, Quarter{Year: 2025, Q: 2}, q)
	_, err = QuarterOfISODate("15/06/2025")
	assert.Error(t, err)
}

func TestParseQuarter(t *testing.T) {
	q, err := ParseQuarter("2025Q4")
	require.NoError(t, err)
	assert.Equal(t, Quarter{Year: 2025, Q: 4}, q)
	for _, bad := range []string{"2025Q5", "2025-Q1", "25Q1", "Q1", ""} {
		_, err = ParseQuarter(bad)
		assert.Error(t, err, bad)
	}
}

func TestQuarterBefore(t *testing.T) {
	assert.True(t, Quarter{2024, 4}.Before(Quarter{2025, 1}))
	assert.True(t, Quarter{2025, 1}.Before(Quarter{2025, 2}))
	assert.False(t, Quarter{2025, 2}.Before(Quarter{2025, 2}))
	assert.False(t, Quarter{2025, 3}.Before(Quarter{2025, 1}))
}
