package records

import (
	"bytes"
	"strings"
	"testing"

	"tool-compare-data/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	input := "id,name,email\n1,Alice,a@example.com\n2,\"Bob, Jr.\",\n"

	records, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, reconcile.Record{"id": "1", "name": "Alice", "email": "a@example.com"}, records[0])
	assert.Equal(t, reconcile.Record{"id": "2", "name": "Bob, Jr.", "email": ""}, records[1])
}

func TestParseCSV_KeepsValuesVerbatim(t *testing.T) {
	records, err := ParseCSV(strings.NewReader("id,name\n1, Alice \n"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, " Alice ", records[0]["name"])
}

func TestParseCSV_Empty(t *testing.T) {
	t.Run("NoBytes", func(t *testing.T) {
		records, err := ParseCSV(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("HeaderOnly", func(t *testing.T) {
		records, err := ParseCSV(strings.NewReader("id,name\n"))
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestParseCSV_BOM(t *testing.T) {
	t.Run("UTF8", func(t *testing.T) {
		data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("id,name\n1,Alice\n")...)
		records, err := ParseCSV(bytes.NewReader(data))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "1", records[0]["id"], "BOM must not leak into the first header")
	})

	t.Run("UTF16LE", func(t *testing.T) {
		text := "id,name\n1,Zoë\n"
		data := []byte{0xFF, 0xFE}
		for _, r := range text {
			data = append(data, byte(r), byte(r>>8))
		}
		records, err := ParseCSV(bytes.NewReader(data))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Zoë", records[0]["name"])
	})
}

func TestParseCSV_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   string
	}{
		{"ExtraColumn", "id,name\n1,Alice,extra\n", "malformed csv"},
		{"MissingColumn", "id,name\n1\n", "malformed csv"},
		{"BareQuote", "id,name\n1,Al\"ice\n", "malformed csv"},
		{"DuplicateHeader", "id,id\n1,2\n", `header "id" appears in columns 1 and 2`},
		{"EmptyHeader", "id,\n1,2\n", "header column 2 is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCSV(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.err)
		})
	}
}
