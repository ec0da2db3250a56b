package mapping

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"tool-compare-data/core/location"
	"tool-compare-data/core/reconcile"

	"github.com/buger/jsonparser"
	"gopkg.in/yaml.v3"
)

const (
	keyFieldMapping = "fieldMapping"
	keyUniqueKey    = "uniqueKey"
)

// Load reads and validates a mapping configuration from a file or storage object.
// The format is chosen by extension: .yaml/.yml is YAML, anything else is JSON.
func Load(ctx context.Context, opener *location.Opener, raw string) (*reconcile.Mapping, error) {
	loc, err := location.Parse(raw)
	if err != nil {
		return nil, &reconcile.ConfigError{Location: raw, Err: err}
	}
	if loc.Kind == location.KindTable {
		return nil, reconcile.NewConfigError(raw, "mapping must be a file or storage object")
	}

	data, err := opener.ReadAll(ctx, loc)
	if err != nil {
		return nil, &reconcile.ConfigError{Location: raw, Reason: "unreadable", Err: err}
	}

	var m *reconcile.Mapping
	switch loc.Ext() {
	case ".yaml", ".yml":
		m, err = ParseYAML(data)
	default:
		m, err = ParseJSON(data)
	}
	if err != nil {
		var ce *reconcile.ConfigError
		if errors.As(err, &ce) && ce.Location == "" {
			ce.Location = raw
		}
		return nil, err
	}
	return m, nil
}

// ParseJSON decodes {"fieldMapping": {...}, "uniqueKey": "..."} keeping the declaration
// order of fieldMapping. A root key given more than once resolves to its last value.
func ParseJSON(data []byte) (*reconcile.Mapping, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return nil, reconcile.NewConfigError("", "document must be a JSON object")
	}
	if !json.Valid(data) {
		return nil, reconcile.NewConfigError("", "malformed JSON")
	}

	var fmRaw, ukRaw []byte
	fmType, ukType := jsonparser.NotExist, jsonparser.NotExist
	err := jsonparser.ObjectEach(data, func(key, value []byte, dataType jsonparser.ValueType, _ int) error {
		switch string(key) {
		case keyFieldMapping:
			fmRaw, fmType = value, dataType
		case keyUniqueKey:
			ukRaw, ukType = value, dataType
		}
		return nil
	})
	if err != nil {
		return nil, &reconcile.ConfigError{Reason: "malformed JSON", Err: err}
	}

	if fmType == jsonparser.NotExist {
		return nil, reconcile.NewConfigError("", "%s is required", keyFieldMapping)
	}
	if fmType != jsonparser.Object {
		return nil, reconcile.NewConfigError("", "%s must be an object, got %s", keyFieldMapping, fmType)
	}

	var fields reconcile.FieldMapping
	var entryErr error
	err = jsonparser.ObjectEach(fmRaw, func(key, value []byte, dataType jsonparser.ValueType, _ int) error {
		source := string(key)
		if dataType != jsonparser.String {
			entryErr = reconcile.NewConfigError("", "%s.%s must be a string, got %s", keyFieldMapping, source, dataType)
			return entryErr
		}
		target, err := jsonparser.ParseString(value)
		if err != nil {
			return err
		}
		fields = fields.Set(source, target)
		return nil
	})
	if entryErr != nil {
		return nil, entryErr
	}
	if err != nil {
		return nil, &reconcile.ConfigError{Reason: "malformed JSON", Err: err}
	}

	if ukType == jsonparser.NotExist {
		return nil, reconcile.NewConfigError("", "%s is required", keyUniqueKey)
	}
	if ukType != jsonparser.String {
		return nil, reconcile.NewConfigError("", "%s must be a string, got %s", keyUniqueKey, ukType)
	}
	uniqueKey, err := jsonparser.ParseString(ukRaw)
	if err != nil {
		return nil, &reconcile.ConfigError{Reason: "malformed JSON", Err: err}
	}

	m := &reconcile.Mapping{FieldMapping: fields, UniqueKey: uniqueKey}
	if err := Validate(m); err != nil {
		return nil, err
	}
	return m, nil
}

// ParseYAML decodes the YAML form of the mapping configuration, keeping the
// declaration order of fieldMapping.
func ParseYAML(data []byte) (*reconcile.Mapping, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &reconcile.ConfigError{Reason: "malformed YAML", Err: err}
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, reconcile.NewConfigError("", "document must be a YAML mapping")
	}
	root := doc.Content[0]

	var fieldsNode, keyNode *yaml.Node
	for i := 0; i+1 < len(root.Content); i += 2 {
		switch root.Content[i].Value {
		case keyFieldMapping:
			fieldsNode = root.Content[i+1]
		case keyUniqueKey:
			keyNode = root.Content[i+1]
		}
	}

	if fieldsNode == nil {
		return nil, reconcile.NewConfigError("", "%s is required", keyFieldMapping)
	}
	if fieldsNode.Kind != yaml.MappingNode {
		return nil, reconcile.NewConfigError("", "%s must be a mapping", keyFieldMapping)
	}

	var fields reconcile.FieldMapping
	for i := 0; i+1 < len(fieldsNode.Content); i += 2 {
		k, v := fieldsNode.Content[i], fieldsNode.Content[i+1]
		if v.Kind != yaml.ScalarNode || v.Tag == "!!null" {
			return nil, reconcile.NewConfigError("", "%s.%s must be a string", keyFieldMapping, k.Value)
		}
		fields = fields.Set(k.Value, v.Value)
	}

	if keyNode == nil {
		return nil, reconcile.NewConfigError("", "%s is required", keyUniqueKey)
	}
	if keyNode.Kind != yaml.ScalarNode {
		return nil, reconcile.NewConfigError("", "%s must be a string", keyUniqueKey)
	}

	m := &reconcile.Mapping{FieldMapping: fields, UniqueKey: keyNode.Value}
	if err := Validate(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks the preconditions a run relies on.
func Validate(m *reconcile.Mapping) error {
	if len(m.FieldMapping) == 0 {
		return reconcile.NewConfigError("", "%s must declare at least one field", keyFieldMapping)
	}
	for _, pair := range m.FieldMapping {
		if pair.Source == "" || pair.Target == "" {
			return reconcile.NewConfigError("", "%s contains an empty field name", keyFieldMapping)
		}
	}
	if err := reconcile.RequireUniqueKey(m.FieldMapping, m.UniqueKey); err != nil {
		return err
	}
	return nil
}

// String renders a short description for logs.
func String(m *reconcile.Mapping) string {
	return fmt.Sprintf("%d fields keyed by %s", len(m.FieldMapping), m.UniqueKey)
}
