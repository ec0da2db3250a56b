package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTableColumns(t *testing.T) {
	cfg := Config{
		Driver: DriverSQLite,
		Name:   ":memory:",
	}
	db, err := Connect(cfg)
	require.NoError(t, err)
	require.NotNil(t, db)

	err = db.Exec("CREATE TABLE customers (id INTEGER PRIMARY KEY, FullName TEXT, email TEXT)").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "customers")
	assert.NoError(t, err)
	assert.Len(t, columns, 3)

	colMap := make(map[string]string)
	for _, col := range columns {
		colMap[col.Field] = col.Type
	}

	assert.Equal(t, "integer", colMap["id"])
	// Field names keep their case: they become record field names.
	assert.Equal(t, "text", colMap["FullName"])
	assert.Equal(t, "text", colMap["email"])

	// PRAGMA table_info returns an empty result for a non-existent table
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestQuoteTable(t *testing.T) {
	assert.Equal(t, "`customers`", QuoteTable("customers"))
	assert.Equal(t, "`crm`.`customers`", QuoteTable("crm.customers"))
	assert.Equal(t, "`we``ird`", QuoteTable("we`ird"))
}
