package location_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"tool-compare-data/core/location"
	"tool-compare-data/core/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want location.Location
	}{
		{"BarePath", "data/source.csv", location.Location{Kind: location.KindFile, Raw: "data/source.csv", Path: "data/source.csv"}},
		{"FileURL", "file:///tmp/a.csv", location.Location{Kind: location.KindFile, Raw: "file:///tmp/a.csv", Path: "/tmp/a.csv"}},
		{"Object", "s3://exports/2024/customers.csv", location.Location{Kind: location.KindObject, Raw: "s3://exports/2024/customers.csv", Bucket: "exports", Key: "2024/customers.csv"}},
		{"Table", "db://customers", location.Location{Kind: location.KindTable, Raw: "db://customers", Table: "customers"}},
		{"SchemaTable", "db://crm.customers", location.Location{Kind: location.KindTable, Raw: "db://crm.customers", Table: "crm.customers"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := location.Parse(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, raw := range []string{
		"",
		"   ",
		"s3://bucket-only",
		"s3:///key-only.csv",
		"db://users; DROP TABLE users",
		"db://",
		"ftp://host/file.csv",
		"file://",
	} {
		t.Run(raw, func(t *testing.T) {
			_, err := location.Parse(raw)
			assert.Error(t, err)
		})
	}
}

func TestLocation_Ext(t *testing.T) {
	loc, err := location.Parse("config/mapping.YAML")
	require.NoError(t, err)
	assert.Equal(t, ".yaml", loc.Ext())

	loc, err = location.Parse("s3://cfg/mappings/orders.json")
	require.NoError(t, err)
	assert.Equal(t, ".json", loc.Ext())

	loc, err = location.Parse("./dir.d/mapping")
	require.NoError(t, err)
	assert.Equal(t, "", loc.Ext())
}

func TestOpener_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.csv")
	require.NoError(t, os.WriteFile(path, []byte("id\n1\n"), 0o644))

	loc, err := location.Parse(path)
	require.NoError(t, err)

	data, err := location.NewOpener(nil).ReadAll(context.Background(), loc)
	require.NoError(t, err)
	assert.Equal(t, "id\n1\n", string(data))

	missing, _ := location.Parse(filepath.Join(t.TempDir(), "missing.csv"))
	_, err = location.NewOpener(nil).ReadAll(context.Background(), missing)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestOpener_Object(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("GetObject", mock.Anything, "exports", "customers.csv", mock.Anything).
		Return(io.NopCloser(bytes.NewReader([]byte("id\n1\n"))), nil)

	loc, err := location.Parse("s3://exports/customers.csv")
	require.NoError(t, err)

	data, err := location.NewOpener(mockClient).ReadAll(context.Background(), loc)
	require.NoError(t, err)
	assert.Equal(t, "id\n1\n", string(data))
	mockClient.AssertExpectations(t)
}

func TestOpener_ObjectWithoutStorage(t *testing.T) {
	loc, err := location.Parse("s3://exports/customers.csv")
	require.NoError(t, err)

	_, err = location.NewOpener(nil).Open(context.Background(), loc)
	assert.ErrorIs(t, err, location.ErrStorageUnavailable)
}

func TestOpener_TableIsNotAStream(t *testing.T) {
	loc, err := location.Parse("db://customers")
	require.NoError(t, err)

	_, err = location.NewOpener(nil).Open(context.Background(), loc)
	assert.Error(t, err)
}

func TestLocation_Within(t *testing.T) {
	dir := t.TempDir()
	mustParse := func(raw string) location.Location {
		loc, err := location.Parse(raw)
		require.NoError(t, err)
		return loc
	}

	cases := []struct {
		name string
		loc  string
		root string
		want bool
	}{
		{"FileInsideDir", filepath.Join(dir, "users.csv"), dir, true},
		{"FileNested", filepath.Join(dir, "a", "b.json"), dir, true},
		{"FileIsRoot", filepath.Join(dir, "users.csv"), filepath.Join(dir, "users.csv"), true},
		{"FileEscapesWithDots", filepath.Join(dir, "..", "etc", "passwd"), dir, false},
		{"FileOutsideRoot", "/etc/passwd", dir, false},
		{"FileSchemeInsideDir", "file://" + filepath.Join(dir, "x.csv"), dir, true},
		{"ObjectUnderPrefix", "s3://exports/daily/users.csv", "s3://exports/daily/", true},
		{"ObjectPrefixWithoutSlash", "s3://exports/daily/users.csv", "s3://exports/daily", true},
		{"ObjectSiblingPrefix", "s3://exports/daily-old/users.csv", "s3://exports/daily", false},
		{"ObjectOtherBucket", "s3://private/daily/users.csv", "s3://exports/daily/", false},
		{"ObjectDotDotSegment", "s3://exports/daily/../secret.csv", "s3://exports/daily/", false},
		{"SameTable", "db://Users", "db://users", true},
		{"OtherTable", "db://mysql.user", "db://users", false},
		{"KindMismatch", "db://users", dir, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, mustParse(tc.loc).Within(mustParse(tc.root)))
		})
	}
}
