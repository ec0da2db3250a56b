package validation_test

import (
	"os"
	"path/filepath"
	"testing"

	"tool-compare-data/core/database"
	"tool-compare-data/feature/validation"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	sourceCSV = "Id,Name,Email\n1,Alice,alice@example.com\n2,Bob,bob@example.com\n"
	targetCSV = "UserId,FullName,EmailAddress\n1,Alice,alice@example.com\n2,Bobby,bob@example.com\n"
	mappingJS = `{"fieldMapping": {"Id": "UserId", "Name": "FullName", "Email": "EmailAddress"}, "uniqueKey": "Id"}`
)

// fixture writes a source, target and mapping into a temp dir and returns a config pointing at them.
func fixture(t *testing.T, source, target, mapping string) validation.Config {
	t.Helper()
	dir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	return validation.Config{
		Source:        write("source.csv", source),
		Target:        write("target.csv", target),
		Mapping:       write("mapping.json", mapping),
		Report:        filepath.Join(dir, "report", "result.json"),
		DuplicateKeys: "ignore",
	}
}

func memoryDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	return db
}
