package records

import (
	"fmt"

	"tool-compare-data/core/location"
	"tool-compare-data/core/reconcile"

	"gorm.io/gorm"
)

// Resolver builds record sources from location identifiers.
type Resolver struct {
	opener *location.Opener
	db     *gorm.DB
}

// NewResolver creates a Resolver. Both the opener's storage client and db may be nil;
// locations needing them fail when read.
func NewResolver(opener *location.Opener, db *gorm.DB) *Resolver {
	if opener == nil {
		opener = location.NewOpener(nil)
	}
	return &Resolver{opener: opener, db: db}
}

// Resolve returns the record source for a location identifier.
func (r *Resolver) Resolve(raw string) (reconcile.RecordSource, error) {
	loc, err := location.Parse(raw)
	if err != nil {
		return nil, reconcile.NewSourceReadError(raw, err)
	}

	switch loc.Kind {
	case location.KindFile, location.KindObject:
		return NewCSVSource(loc, r.opener), nil
	case location.KindTable:
		return NewTableSource(loc, r.db), nil
	default:
		return nil, reconcile.NewSourceReadError(raw, fmt.Errorf("unsupported location kind %q", loc.Kind))
	}
}
