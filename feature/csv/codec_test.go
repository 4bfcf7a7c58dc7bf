package csv

import (
	"bytes"
	stdcsv "encoding/csv"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ledgerRow struct {
	Name   string  `csv:"name"`
	Joined Date    `csv:"joined"`
	Amount Decimal `csv:"amount"`
}

func TestImport(t *testing.T) {
	t.Run("ParsesRows", func(t *testing.T) {
		in := strings.NewReader(
			"name,joined,amount\n" +
				"alice,2024-03-01,\"1,250.50\"\n" +
				"bob,3/1/24,$99\n")

		rows, err := Import[ledgerRow](in)
		require.NoError(t, err)
		require.Len(t, rows, 2)

		assert.Equal(t, "alice", rows[0].Name)
		assert.Equal(t, 2024, rows[0].Joined.Year())
		assert.EqualValues(t, 1250.50, rows[0].Amount)

		assert.Equal(t, 2024, rows[1].Joined.Year())
		assert.EqualValues(t, 99, rows[1].Amount)
	})

	t.Run("BadCellAborts", func(t *testing.T) {
		in := strings.NewReader(
			"name,joined,amount\n" +
				"alice,2024-03-01,5\n" +
				"bob,not-a-date,5\n")
		_, err := Import[ledgerRow](in)
		require.Error(t, err)

		// Errors carry the offending row so callers can report it.
		var parseErr *stdcsv.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, 3, parseErr.Line)
		assert.ErrorContains(t, err, "not-a-date")
	})
}

func TestExport(t *testing.T) {
	rows := []ledgerRow{
		{Name: "alice", Joined: Date{mustDate(t, "2024-03-01")}, Amount: 12.5},
	}

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, rows))

	out := buf.String()
	assert.Contains(t, out, "name,joined,amount")
	assert.Contains(t, out, "alice,2024-03-01,12.5")
}

func TestExportImportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.csv")
	rows := []ledgerRow{
		{Name: "alice", Amount: 1},
		{Name: "bob", Amount: 2},
	}

	require.NoError(t, ExportFile(path, rows))

	back, err := ImportFile[ledgerRow](path)
	require.NoError(t, err)
	require.Len(t, back, 2)
	assert.Equal(t, "bob", back[1].Name)
}

func TestExpectHeaders(t *testing.T) {
	want := []string{"name", "joined", "amount"}

	t.Run("Match", func(t *testing.T) {
		r := strings.NewReader("name,joined,amount\nalice,,1\n")
		assert.NoError(t, ExpectHeaders(r, want))
	})

	t.Run("WrongOrder", func(t *testing.T) {
		r := strings.NewReader("joined,name,amount\n")
		assert.Error(t, ExpectHeaders(r, want))
	})

	t.Run("MissingColumn", func(t *testing.T) {
		r := strings.NewReader("name,joined\n")
		assert.Error(t, ExpectHeaders(r, want))
	})

	t.Run("EmptyInput", func(t *testing.T) {
		assert.Error(t, ExpectHeaders(strings.NewReader(""), want))
	})
}
