package reconcile

import (
	"fmt"
	"strings"
)

// CheckRowCount compares the number of source and target records.
func CheckRowCount(source, target []Record) RowCountResult {
	sourceCount, targetCount := len(source), len(target)
	if sourceCount != targetCount {
		return RowCountResult{
			Status:      StatusFailed,
			SourceCount: &sourceCount,
			TargetCount: &targetCount,
			Message:     MsgRowCountMismatch,
		}
	}
	return RowCountResult{
		Status: StatusSuccess,
		Count:  &sourceCount,
	}
}

// CheckFieldMapping verifies every mapping pair against the source and target schemas.
// Only the first record of each side is consulted, so both sides are assumed to have
// homogeneous schemas. An empty side has no fields and fails every pair.
func CheckFieldMapping(source, target []Record, mapping FieldMapping) []FieldMappingEntryResult {
	sourceFields := schemaOf(source)
	targetFields := schemaOf(target)

	results := make([]FieldMappingEntryResult, 0, len(mapping))
	for _, pair := range mapping {
		_, sourceExists := sourceFields[pair.Source]
		_, targetExists := targetFields[pair.Target]

		entry := FieldMappingEntryResult{
			SourceField: pair.Source,
			TargetField: pair.Target,
			Status:      StatusSuccess,
			Message:     MsgFieldMappingValid,
		}
		if !sourceExists || !targetExists {
			entry.Status = StatusFailed
			entry.Message = missingFieldsMessage(pair, sourceExists, targetExists)
		}
		results = append(results, entry)
	}
	return results
}

// CheckValues joins every source record to a target record and compares mapped fields.
//
// Target records are indexed by the target field the unique key maps to. When several
// target records share a key value the last one wins. A source record without a match
// yields a single MissingTargetRow finding and no field comparisons.
func CheckValues(source, target []Record, mapping FieldMapping, uniqueKey string) ([]Mismatch, error) {
	mismatches, _, err := checkValues(source, target, mapping, uniqueKey)
	return mismatches, err
}

// Reconcile runs all checks and assembles the result. Findings never produce an error;
// the only error is a unique key that is not part of the mapping.
func Reconcile(source, target []Record, mapping FieldMapping, uniqueKey string, opts Options) (*ValidationResult, error) {
	if !opts.DuplicateKeys.Valid() {
		return nil, NewConfigError("", "unknown duplicate key policy %q", opts.DuplicateKeys)
	}

	rowCount := CheckRowCount(source, target)

	var fieldFailures []FieldMappingEntryResult
	for _, entry := range CheckFieldMapping(source, target, mapping) {
		if entry.Status == StatusFailed {
			fieldFailures = append(fieldFailures, entry)
		}
	}

	mismatches, duplicates, err := checkValues(source, target, mapping, uniqueKey)
	if err != nil {
		return nil, err
	}

	result := &ValidationResult{
		FieldMappingCheck: fieldFailures,
		MismatchedRecords: mismatches,
		Status:            StatusSuccess,
	}
	if rowCount.Failed() {
		result.RowCountCheck = &rowCount
	}

	failed := result.RowCountCheck != nil || len(fieldFailures) > 0 || len(mismatches) > 0
	if duplicates != nil && opts.DuplicateKeys != "" && opts.DuplicateKeys != DuplicateKeysIgnore {
		result.DuplicateKeys = duplicates
		if opts.DuplicateKeys == DuplicateKeysFail {
			failed = true
		}
	}
	if failed {
		result.Status = StatusFailed
	}

	return result, nil
}

// RequireUniqueKey checks that the unique key is declared in the mapping.
func RequireUniqueKey(mapping FieldMapping, uniqueKey string) error {
	if uniqueKey == "" {
		return NewConfigError("", "uniqueKey is required")
	}
	if _, ok := mapping.Lookup(uniqueKey); !ok {
		return NewConfigError("", "uniqueKey %q is not a key of fieldMapping", uniqueKey)
	}
	return nil
}

func checkValues(source, target []Record, mapping FieldMapping, uniqueKey string) ([]Mismatch, *DuplicateKeyReport, error) {
	if err := RequireUniqueKey(mapping, uniqueKey); err != nil {
		return nil, nil, err
	}
	targetKey, _ := mapping.Lookup(uniqueKey)

	index, duplicates := indexTargets(target, targetKey)

	var mismatches []Mismatch
	for _, srcRow := range source {
		key, hasKey := srcRow[uniqueKey]
		if !hasKey {
			mismatches = append(mismatches, Mismatch{
				Kind:    MissingTargetRow,
				Keyless: true,
				Error:   MsgMissingTargetRow,
			})
			continue
		}
		tgtRow, ok := index[key]
		if !ok {
			mismatches = append(mismatches, Mismatch{
				Kind:  MissingTargetRow,
				Key:   key,
				Error: MsgMissingTargetRow,
			})
			continue
		}

		for _, pair := range mapping {
			srcVal, srcOK := srcRow[pair.Source]
			tgtVal, tgtOK := tgtRow[pair.Target]
			if srcOK == tgtOK && srcVal == tgtVal {
				continue
			}
			m := Mismatch{
				Kind:  ValueMismatch,
				Key:   key,
				Field: pair.Source,
			}
			if srcOK {
				m.SourceValue = &srcVal
			}
			if tgtOK {
				m.TargetValue = &tgtVal
			}
			mismatches = append(mismatches, m)
		}
	}

	return mismatches, duplicates, nil
}

// indexTargets maps key values to target records. Records lacking the key field are
// not indexed. Later records replace earlier ones with the same key.
func indexTargets(target []Record, targetKey string) (map[string]Record, *DuplicateKeyReport) {
	index := make(map[string]Record, len(target))
	var report *DuplicateKeyReport
	seen := make(map[string]bool)

	for _, row := range target {
		key, ok := row[targetKey]
		if !ok {
			continue
		}
		if _, exists := index[key]; exists {
			if report == nil {
				report = &DuplicateKeyReport{}
			}
			report.Count++
			if !seen[key] {
				seen[key] = true
				report.Keys = append(report.Keys, key)
			}
		}
		index[key] = row
	}
	return index, report
}

func schemaOf(records []Record) map[string]struct{} {
	if len(records) == 0 {
		return map[string]struct{}{}
	}
	return records[0].Fields()
}

func missingFieldsMessage(pair FieldPair, sourceExists, targetExists bool) string {
	var missing []string
	if !sourceExists {
		missing = append(missing, fmt.Sprintf("source field: %s", pair.Source))
	}
	if !targetExists {
		missing = append(missing, fmt.Sprintf("target field: %s", pair.Target))
	}
	return "Missing " + strings.Join(missing, " and ")
}
