package models

import (
	"encoding/json"
	"time"

	"tool-compare-data/core/reconcile"
)

// ValidationRun is one persisted validation run.
type ValidationRun struct {
	ID                   string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	Source               string    `gorm:"column:source;size:512" json:"source"`
	Target               string    `gorm:"column:target;size:512" json:"target"`
	Mapping              string    `gorm:"column:mapping;size:512" json:"mapping"`
	UniqueKey            string    `gorm:"column:unique_key;size:255" json:"unique_key"`
	Status               string    `gorm:"column:status;size:16;index" json:"status"`
	RowCountFailed       bool      `gorm:"column:row_count_failed" json:"row_count_failed"`
	FieldMappingFailures int       `gorm:"column:field_mapping_failures" json:"field_mapping_failures"`
	MissingTargetRows    int       `gorm:"column:missing_target_rows" json:"missing_target_rows"`
	ValueMismatches      int       `gorm:"column:value_mismatches" json:"value_mismatches"`
	DuplicateKeys        int       `gorm:"column:duplicate_keys" json:"duplicate_keys"`
	Report               string    `gorm:"column:report;type:text" json:"-"`
	CreatedAt            time.Time `gorm:"column:created_at;index" json:"created_at"`
}

// TableName overrides the table name.
func (ValidationRun) TableName() string {
	return "validation_runs"
}

// Apply copies the counts of a summary onto the run.
func (r *ValidationRun) Apply(s reconcile.Summary) {
	r.Status = string(s.Status)
	r.RowCountFailed = s.RowCountFailed
	r.FieldMappingFailures = s.FieldMappingFailures
	r.MissingTargetRows = s.MissingTargetRows
	r.ValueMismatches = s.ValueMismatches
	r.DuplicateKeys = s.DuplicateKeys
}

// RunDetail is a run together with its stored report document.
type RunDetail struct {
	ValidationRun
	Report json.RawMessage `json:"report,omitempty"`
}

// NewRunDetail exposes the stored report as embedded JSON.
func NewRunDetail(run ValidationRun) RunDetail {
	d := RunDetail{ValidationRun: run}
	if run.Report != "" {
		d.Report = json.RawMessage(run.Report)
	}
	return d
}

// RunRequest is the body of a validation request. Empty fields use the configured defaults.
type RunRequest struct {
	Source        string `json:"source"`
	Target        string `json:"target"`
	Mapping       string `json:"mapping"`
	DuplicateKeys string `json:"duplicateKeys"`
}
