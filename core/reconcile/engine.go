package reconcile

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// RecordSource yields the records of one side of a run.
// Implementations return a SourceReadError when the location is unreadable or malformed.
type RecordSource interface {
	// Location identifies where the records come from (path, s3:// or db:// URL).
	Location() string

	// Records loads every record in source order.
	Records(ctx context.Context) ([]Record, error)
}

// Run loads both sides concurrently and reconciles them.
// Load failures abort the run; findings never do.
func Run(ctx context.Context, spec *Spec) (*ValidationResult, error) {
	if spec.Source == nil || spec.Target == nil {
		return nil, fmt.Errorf("reconcile spec requires both a source and a target")
	}
	if err := RequireUniqueKey(spec.Mapping.FieldMapping, spec.Mapping.UniqueKey); err != nil {
		return nil, err
	}

	source, target, err := loadBoth(ctx, spec)
	if err != nil {
		return nil, err
	}

	return Reconcile(source, target, spec.Mapping.FieldMapping, spec.Mapping.UniqueKey, spec.Options)
}

// loadBoth reads source and target in parallel. The first failure cancels the other read.
func loadBoth(ctx context.Context, spec *Spec) (source, target []Record, err error) {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		records, err := LoadRecords(gctx, spec.Source, spec.CacheTTL)
		if err != nil {
			return NewSourceReadError(spec.Source.Location(), err)
		}
		source = records
		return nil
	})

	g.Go(func() error {
		records, err := LoadRecords(gctx, spec.Target, spec.CacheTTL)
		if err != nil {
			return NewSourceReadError(spec.Target.Location(), err)
		}
		target = records
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return source, target, nil
}
