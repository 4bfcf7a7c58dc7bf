package csv

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, iso string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", iso)
	require.NoError(t, err)
	return parsed
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2024-03-01", "2024-03-01"},
		{"2024/03/01", "2024-03-01"},
		{"2024.03.01", "2024-03-01"},
		{"3/1/2024", "2024-03-01"},
		{"03-01-2024", "2024-03-01"},
		{"Jan 2, 2024", "2024-01-02"},
		{"2 Jan 2024", "2024-01-02"},
		{"20240301", "2024-03-01"},
		{"3/1/24", "2024-03-01"},
		{"3.1.24", "2024-03-01"},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseDate(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.Format("2006-01-02"))
		})
	}

	t.Run("Unrecognized", func(t *testing.T) {
		_, err := ParseDate("yesterday")
		assert.Error(t, err)
	})
}

func TestTwoDigitYearPivot(t *testing.T) {
	// A 2-digit year far enough ahead belongs to the previous century.
	farFuture := time.Now().AddDate(TwoDigitYearPivot+5, 0, 0).Year() % 100
	got, err := ParseDate(fmt.Sprintf("1/2/%02d", farFuture))
	require.NoError(t, err)
	assert.Less(t, got.Year(), time.Now().Year())

	// A near-future 2-digit year stays in the current century.
	nearFuture := time.Now().AddDate(1, 0, 0).Year() % 100
	got, err = ParseDate(fmt.Sprintf("1/2/%02d", nearFuture))
	require.NoError(t, err)
	assert.Greater(t, got.Year(), time.Now().Year()-1)
}

func TestDateCell(t *testing.T) {
	t.Run("EmptyCellIsZero", func(t *testing.T) {
		var d Date
		require.NoError(t, d.UnmarshalCSV("  "))
		assert.True(t, d.IsZero())

		out, err := d.MarshalCSV()
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		var d Date
		require.NoError(t, d.UnmarshalCSV("01/02/2024"))

		out, err := d.MarshalCSV()
		require.NoError(t, err)
		assert.Equal(t, "2024-01-02", out)
	})
}

func TestDecimalCell(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"1250.5", 1250.5},
		{"1,250.50", 1250.5},
		{"$99", 99},
		{"€ 1,000", 1000},
		{"-12.25", -12.25},
		{"1.5e3", 1500},
		{"", 0},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("%q", tc.in), func(t *testing.T) {
			var d Decimal
			require.NoError(t, d.UnmarshalCSV(tc.in))
			assert.EqualValues(t, tc.want, d)
		})
	}

	t.Run("Rejects", func(t *testing.T) {
		for _, bad := range []string{"abc", "12..5", "1-2"} {
			var d Decimal
			assert.Error(t, d.UnmarshalCSV(bad), bad)
		}
	})

	t.Run("Marshal", func(t *testing.T) {
		out, err := Decimal(12.5).MarshalCSV()
		require.NoError(t, err)
		assert.Equal(t, "12.5", out)
	})
}
