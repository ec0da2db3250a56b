package records

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"tool-compare-data/core/database"
	"tool-compare-data/core/location"
	"tool-compare-data/core/reconcile"
	"tool-compare-data/core/storage/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func mustParse(t *testing.T, raw string) location.Location {
	t.Helper()
	loc, err := location.Parse(raw)
	require.NoError(t, err)
	return loc
}

func TestCSVSource_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "source.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,name\n1,Alice\n2,Bob\n"), 0o644))

	src := NewCSVSource(mustParse(t, path), location.NewOpener(nil))
	assert.Equal(t, path, src.Location())

	records, err := src.Records(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []reconcile.Record{
		{"id": "1", "name": "Alice"},
		{"id": "2", "name": "Bob"},
	}, records)
}

func TestCSVSource_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.csv")
	src := NewCSVSource(mustParse(t, path), location.NewOpener(nil))

	_, err := src.Records(context.Background())
	require.Error(t, err)

	var sre *reconcile.SourceReadError
	require.True(t, errors.As(err, &sre))
	assert.Equal(t, path, sre.Location)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestCSVSource_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,name\n1\n"), 0o644))

	_, err := NewCSVSource(mustParse(t, path), location.NewOpener(nil)).Records(context.Background())
	require.Error(t, err)
	assert.True(t, reconcile.IsSourceReadError(err))
}

func TestCSVSource_Object(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("GetObject", mock.Anything, "exports", "target.csv", mock.Anything).
		Return(io.NopCloser(bytes.NewReader([]byte("id,full_name\n1,Alice\n"))), nil)

	src := NewCSVSource(mustParse(t, "s3://exports/target.csv"), location.NewOpener(mockClient))
	records, err := src.Records(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []reconcile.Record{{"id": "1", "full_name": "Alice"}}, records)
	mockClient.AssertExpectations(t)
}

func TestCSVSource_ObjectError(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("GetObject", mock.Anything, "exports", "target.csv", mock.Anything).
		Return(nil, errors.New("access denied"))

	src := NewCSVSource(mustParse(t, "s3://exports/target.csv"), location.NewOpener(mockClient))
	_, err := src.Records(context.Background())
	require.Error(t, err)
	assert.True(t, reconcile.IsSourceReadError(err))
	assert.Contains(t, err.Error(), "access denied")
}

func TestTableSource_SQLite(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	require.NoError(t, db.Exec("CREATE TABLE customers (id INTEGER PRIMARY KEY, full_name TEXT, email TEXT)").Error)
	require.NoError(t, db.Exec("INSERT INTO customers (id, full_name, email) VALUES (1, 'Alice', 'a@example.com'), (2, 'Bob', NULL)").Error)

	src := NewTableSource(mustParse(t, "db://customers"), db)
	assert.Equal(t, "db://customers", src.Location())

	records, err := src.Records(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []reconcile.Record{
		{"id": "1", "full_name": "Alice", "email": "a@example.com"},
		{"id": "2", "full_name": "Bob", "email": ""},
	}, records)
}

func TestTableSource_MissingTable(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	_, err = NewTableSource(mustParse(t, "db://nope"), db).Records(context.Background())
	require.Error(t, err)
	assert.True(t, reconcile.IsSourceReadError(err))
	assert.Contains(t, err.Error(), "table nope does not exist")
}

func TestTableSource_NoDatabase(t *testing.T) {
	_, err := NewTableSource(mustParse(t, "db://customers"), nil).Records(context.Background())
	require.Error(t, err)
	assert.True(t, reconcile.IsSourceReadError(err))
}

func TestTableSource_MySQL(t *testing.T) {
	sqlDB, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)

	sqlMock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `customers`")).
		WillReturnRows(sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
			AddRow("id", "int", "NO", "PRI", nil, "").
			AddRow("full_name", "varchar(64)", "YES", "", nil, ""))
	sqlMock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `customers`")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name"}).
			AddRow(int64(1), []byte("Alice")).
			AddRow(int64(2), nil))

	records, err := NewTableSource(mustParse(t, "db://customers"), db).Records(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []reconcile.Record{
		{"id": "1", "full_name": "Alice"},
		{"id": "2", "full_name": ""},
	}, records)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestResolver(t *testing.T) {
	r := NewResolver(nil, nil)

	src, err := r.Resolve("data/source.csv")
	require.NoError(t, err)
	assert.IsType(t, &CSVSource{}, src)

	src, err = r.Resolve("s3://exports/target.csv")
	require.NoError(t, err)
	assert.IsType(t, &CSVSource{}, src)

	src, err = r.Resolve("db://customers")
	require.NoError(t, err)
	assert.IsType(t, &TableSource{}, src)

	_, err = r.Resolve("ftp://nowhere/file.csv")
	require.Error(t, err)
	assert.True(t, reconcile.IsSourceReadError(err))
}
