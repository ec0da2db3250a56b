// Package mapping loads the mapping configuration that drives a run.
//
// A configuration names the field correspondence and the join key:
//
//	{
//	  "fieldMapping": { "id": "id", "name": "full_name" },
//	  "uniqueKey": "id"
//	}
//
// JSON and YAML (.yaml/.yml) documents are accepted, from a local file or an
// s3:// object. Declaration order of fieldMapping is kept, since it fixes the order
// of per-record findings. Every problem is reported as a reconcile.ConfigError,
// including a uniqueKey that is not itself a key of fieldMapping.
package mapping
