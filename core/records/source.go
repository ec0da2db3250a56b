package records

import (
	"context"
	"fmt"

	"tool-compare-data/core/database"
	"tool-compare-data/core/location"
	"tool-compare-data/core/reconcile"
	"tool-compare-data/core/utils"

	"gorm.io/gorm"
)

// CSVSource reads records from a CSV file or storage object.
type CSVSource struct {
	loc    location.Location
	opener *location.Opener
}

// NewCSVSource creates a CSV record source for a file or object location.
func NewCSVSource(loc location.Location, opener *location.Opener) *CSVSource {
	return &CSVSource{loc: loc, opener: opener}
}

// Location returns the identifier of the CSV document.
func (s *CSVSource) Location() string {
	return s.loc.Raw
}

// Records opens and parses the CSV document.
func (s *CSVSource) Records(ctx context.Context) ([]reconcile.Record, error) {
	rc, err := s.opener.Open(ctx, s.loc)
	if err != nil {
		return nil, reconcile.NewSourceReadError(s.loc.Raw, err)
	}
	defer rc.Close()

	records, err := ParseCSV(rc)
	if err != nil {
		return nil, reconcile.NewSourceReadError(s.loc.Raw, err)
	}
	return records, nil
}

// TableSource reads every row of a database table as a record.
// Column values are converted to text; NULL becomes the empty string.
type TableSource struct {
	loc location.Location
	db  *gorm.DB
}

// NewTableSource creates a record source over a db:// location.
func NewTableSource(loc location.Location, db *gorm.DB) *TableSource {
	return &TableSource{loc: loc, db: db}
}

// Location returns the db:// identifier of the table.
func (s *TableSource) Location() string {
	return s.loc.Raw
}

// Records loads all rows of the table in storage order.
func (s *TableSource) Records(ctx context.Context) ([]reconcile.Record, error) {
	if s.db == nil {
		return nil, reconcile.NewSourceReadError(s.loc.Raw, fmt.Errorf("database is not configured"))
	}

	db := s.db.WithContext(ctx)

	columns, err := database.GetTableColumns(db, s.loc.Table)
	if err != nil {
		return nil, reconcile.NewSourceReadError(s.loc.Raw, err)
	}
	if len(columns) == 0 {
		return nil, reconcile.NewSourceReadError(s.loc.Raw, fmt.Errorf("table %s does not exist", s.loc.Table))
	}

	table := s.loc.Table
	if db.Dialector.Name() != database.DriverSQLite {
		table = database.QuoteTable(table)
	} else {
		table = `"` + table + `"`
	}

	// Raw SQL: GORM's Find doesn't populate map slices with every column
	rows, err := db.Raw(fmt.Sprintf("SELECT * FROM %s", table)).Rows()
	if err != nil {
		return nil, reconcile.NewSourceReadError(s.loc.Raw, fmt.Errorf("failed to query %s: %w", s.loc.Table, err))
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, reconcile.NewSourceReadError(s.loc.Raw, fmt.Errorf("failed to get columns: %w", err))
	}

	records := make([]reconcile.Record, 0)
	for rows.Next() {
		values := make([]interface{}, len(names))
		valuePtrs := make([]interface{}, len(names))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, reconcile.NewSourceReadError(s.loc.Raw, fmt.Errorf("failed to scan row: %w", err))
		}

		record := make(reconcile.Record, len(names))
		for i, name := range names {
			record[name] = utils.ToString(values[i])
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, reconcile.NewSourceReadError(s.loc.Raw, err)
	}

	return records, nil
}
