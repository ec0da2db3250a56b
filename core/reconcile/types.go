package reconcile

import (
	"bytes"
	"encoding/json"
	"time"
)

// Record is one row of tabular data keyed by field name.
// Values are kept as text; no type coercion is applied anywhere.
type Record map[string]string

// Fields returns the set of field names present in the record.
func (r Record) Fields() map[string]struct{} {
	fields := make(map[string]struct{}, len(r))
	for name := range r {
		fields[name] = struct{}{}
	}
	return fields
}

// FieldPair links a source field to the target field it maps to.
type FieldPair struct {
	Source string `json:"sourceField"`
	Target string `json:"targetField"`
}

// FieldMapping is the ordered correspondence between source and target field names.
// Source names are unique; target names are not validated for uniqueness.
type FieldMapping []FieldPair

// Lookup returns the target field mapped to the given source field.
func (m FieldMapping) Lookup(source string) (string, bool) {
	for _, pair := range m {
		if pair.Source == source {
			return pair.Target, true
		}
	}
	return "", false
}

// Set adds a pair, or replaces the target of an existing source field in place.
func (m FieldMapping) Set(source, target string) FieldMapping {
	for i := range m {
		if m[i].Source == source {
			m[i].Target = target
			return m
		}
	}
	return append(m, FieldPair{Source: source, Target: target})
}

// MarshalJSON renders the mapping as a JSON object in declaration order.
func (m FieldMapping) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, pair := range m {
		if i > 0 {
			buf = append(buf, ',')
		}
		k, err := marshalPlain(pair.Source)
		if err != nil {
			return nil, err
		}
		v, err := marshalPlain(pair.Target)
		if err != nil {
			return nil, err
		}
		buf = append(buf, k...)
		buf = append(buf, ':')
		buf = append(buf, v...)
	}
	return append(buf, '}'), nil
}

// Mapping is the run configuration produced by the mapping loader.
type Mapping struct {
	// FieldMapping declares which source field maps to which target field.
	FieldMapping FieldMapping `json:"fieldMapping"`

	// UniqueKey is the source field used to join source and target records.
	// It must also be a key of FieldMapping, which names the target join field.
	UniqueKey string `json:"uniqueKey"`
}

// TargetKey returns the target-side field the unique key maps to.
func (m Mapping) TargetKey() (string, bool) {
	return m.FieldMapping.Lookup(m.UniqueKey)
}

// Status is the outcome of a check or of a whole run.
type Status string

const (
	// StatusSuccess means the check found nothing wrong.
	StatusSuccess Status = "success"
	// StatusFailed means the check recorded at least one finding.
	StatusFailed Status = "failed"
)

// Messages used in findings. Other tools read these from persisted reports.
const (
	MsgRowCountMismatch  = "Row count mismatch"
	MsgFieldMappingValid = "Field mapping valid"
	MsgMissingTargetRow  = "Missing target row"
)

// RowCountResult is the outcome of comparing the two record counts.
type RowCountResult struct {
	Status      Status `json:"status"`
	SourceCount *int   `json:"sourceCount,omitempty"`
	TargetCount *int   `json:"targetCount,omitempty"`
	Message     string `json:"message,omitempty"`
	Count       *int   `json:"count,omitempty"`
}

// Failed reports whether the counts differ.
func (r RowCountResult) Failed() bool {
	return r.Status == StatusFailed
}

// FieldMappingEntryResult is the outcome of checking one mapping pair against both schemas.
type FieldMappingEntryResult struct {
	SourceField string `json:"sourceField"`
	TargetField string `json:"targetField"`
	Status      Status `json:"status"`
	Message     string `json:"message"`
}

// MismatchKind distinguishes the two kinds of per-record findings.
type MismatchKind int

const (
	// MissingTargetRow means no target record carries the source record's key.
	MissingTargetRow MismatchKind = iota
	// ValueMismatch means a mapped field differs between the joined records.
	ValueMismatch
)

// Mismatch is a single per-record finding.
//
// A MissingTargetRow entry only carries Key and Error; Keyless marks a source record
// without the unique key field, whose entry has no key at all. A ValueMismatch entry
// carries Key, Field and both values; a nil value means the field is absent on that side.
type Mismatch struct {
	Kind        MismatchKind
	Key         string
	Keyless     bool
	Error       string
	Field       string
	SourceValue *string
	TargetValue *string
}

type missingTargetRowJSON struct {
	Key   *string `json:"key,omitempty"`
	Error string  `json:"error,omitempty"`
}

type valueMismatchJSON struct {
	Key         string  `json:"key"`
	Field       string  `json:"field"`
	SourceValue *string `json:"sourceValue,omitempty"`
	TargetValue *string `json:"targetValue,omitempty"`
}

// MarshalJSON emits the shape matching the finding kind.
func (m Mismatch) MarshalJSON() ([]byte, error) {
	if m.Kind == MissingTargetRow {
		row := missingTargetRowJSON{Error: m.Error}
		if !m.Keyless {
			row.Key = &m.Key
		}
		return marshalPlain(row)
	}
	return marshalPlain(valueMismatchJSON{
		Key:         m.Key,
		Field:       m.Field,
		SourceValue: m.SourceValue,
		TargetValue: m.TargetValue,
	})
}

// UnmarshalJSON restores a finding from a persisted report.
func (m *Mismatch) UnmarshalJSON(data []byte) error {
	var raw struct {
		Key         *string `json:"key"`
		Error       string  `json:"error"`
		Field       string  `json:"field"`
		SourceValue *string `json:"sourceValue"`
		TargetValue *string `json:"targetValue"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*m = Mismatch{
		Kind:        ValueMismatch,
		Keyless:     raw.Key == nil,
		Error:       raw.Error,
		Field:       raw.Field,
		SourceValue: raw.SourceValue,
		TargetValue: raw.TargetValue,
	}
	if raw.Key != nil {
		m.Key = *raw.Key
	}
	if raw.Field == "" {
		m.Kind = MissingTargetRow
	}
	return nil
}

// DuplicateKeyPolicy controls how duplicate target join keys are surfaced.
type DuplicateKeyPolicy string

const (
	// DuplicateKeysIgnore keeps the last target record per key and reports nothing.
	DuplicateKeysIgnore DuplicateKeyPolicy = "ignore"
	// DuplicateKeysReport adds a duplicateKeys section without affecting status.
	DuplicateKeysReport DuplicateKeyPolicy = "report"
	// DuplicateKeysFail adds a duplicateKeys section and fails the run.
	DuplicateKeysFail DuplicateKeyPolicy = "fail"
)

// Valid reports whether the policy is a known value. The empty policy means ignore.
func (p DuplicateKeyPolicy) Valid() bool {
	switch p {
	case "", DuplicateKeysIgnore, DuplicateKeysReport, DuplicateKeysFail:
		return true
	default:
		return false
	}
}

// DuplicateKeyReport lists target key values shared by more than one target record.
type DuplicateKeyReport struct {
	// Count is the number of target records hidden by a later record with the same key.
	Count int `json:"count"`
	// Keys are the duplicated key values in first-seen order.
	Keys []string `json:"keys"`
}

// ValidationResult is the aggregate outcome of one run.
// Every section is optional and present only when it carries a finding.
type ValidationResult struct {
	RowCountCheck     *RowCountResult           `json:"rowCountCheck,omitempty"`
	FieldMappingCheck []FieldMappingEntryResult `json:"fieldMappingCheck,omitempty"`
	MismatchedRecords []Mismatch                `json:"mismatchedRecords,omitempty"`
	DuplicateKeys     *DuplicateKeyReport       `json:"duplicateKeys,omitempty"`
	Status            Status                    `json:"status"`
}

// Options tunes the reconciliation.
type Options struct {
	// DuplicateKeys selects how duplicate target keys are reported.
	DuplicateKeys DuplicateKeyPolicy
}

// Summary provides aggregate counts of a result for logs and history.
type Summary struct {
	Status               Status `json:"status"`
	RowCountFailed       bool   `json:"row_count_failed"`
	FieldMappingFailures int    `json:"field_mapping_failures"`
	MissingTargetRows    int    `json:"missing_target_rows"`
	ValueMismatches      int    `json:"value_mismatches"`
	DuplicateKeys        int    `json:"duplicate_keys"`
}

// Summarize counts the findings of a result.
func Summarize(result *ValidationResult) Summary {
	s := Summary{
		Status:               result.Status,
		RowCountFailed:       result.RowCountCheck != nil && result.RowCountCheck.Failed(),
		FieldMappingFailures: len(result.FieldMappingCheck),
	}
	for _, m := range result.MismatchedRecords {
		if m.Kind == MissingTargetRow {
			s.MissingTargetRows++
		} else {
			s.ValueMismatches++
		}
	}
	if result.DuplicateKeys != nil {
		s.DuplicateKeys = result.DuplicateKeys.Count
	}
	return s
}

// Spec bundles everything one engine run needs.
type Spec struct {
	// Source yields the reference records.
	Source RecordSource

	// Target yields the records under verification.
	Target RecordSource

	// Mapping declares field correspondence and the join key.
	Mapping Mapping

	// Options tunes the reconciliation.
	Options Options

	// CacheTTL is the time-to-live for loaded record sets.
	// If zero, caching is disabled.
	CacheTTL time.Duration
}

// marshalPlain encodes v without HTML escaping, so values such as "A&B <x>" stay readable.
func marshalPlain(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}
