package location

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"tool-compare-data/core/storage"

	"github.com/minio/minio-go/v7"
)

// Kind identifies the backend of a location.
type Kind string

const (
	// KindFile is a local file.
	KindFile Kind = "file"
	// KindObject is an object in S3-compatible storage.
	KindObject Kind = "s3"
	// KindTable is a database table.
	KindTable Kind = "db"
)

// tableName restricts table identifiers to a safe subset (optionally schema-qualified).
var tableName = regexp.MustCompile(`^[A-Za-z0-9_]+(\.[A-Za-z0-9_]+)?$`)

// ErrStorageUnavailable is returned when an object location is opened without a storage client.
var ErrStorageUnavailable = errors.New("object storage is not configured")

// Location is a parsed location identifier.
type Location struct {
	// Kind is the backend.
	Kind Kind
	// Raw is the identifier as given.
	Raw string
	// Path is the file path (KindFile).
	Path string
	// Bucket is the storage bucket (KindObject).
	Bucket string
	// Key is the object key (KindObject).
	Key string
	// Table is the table name (KindTable).
	Table string
}

// String returns the identifier as given.
func (l Location) String() string {
	return l.Raw
}

// Ext returns the lower-cased file extension of the path or object key.
func (l Location) Ext() string {
	name := l.Path
	if l.Kind == KindObject {
		name = l.Key
	}
	idx := strings.LastIndex(name, ".")
	if idx < 0 || strings.Contains(name[idx:], "/") {
		return ""
	}
	return strings.ToLower(name[idx:])
}

// Within reports whether l lies under root: a file inside the root file or directory,
// an object of the same bucket under the root key prefix, or the same table.
func (l Location) Within(root Location) bool {
	if l.Kind != root.Kind {
		return false
	}

	switch l.Kind {
	case KindFile:
		rel, err := filepath.Rel(resolvePath(root.Path), resolvePath(l.Path))
		if err != nil {
			return false
		}
		return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
	case KindObject:
		if l.Bucket != root.Bucket {
			return false
		}
		for _, seg := range strings.Split(l.Key, "/") {
			if seg == ".." {
				return false
			}
		}
		prefix := strings.TrimSuffix(root.Key, "/")
		return l.Key == prefix || strings.HasPrefix(l.Key, prefix+"/")
	case KindTable:
		return strings.EqualFold(l.Table, root.Table)
	default:
		return false
	}
}

// resolvePath returns the absolute form of p with symlinks resolved when it exists.
func resolvePath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real
	}
	return abs
}

// Parse turns an identifier into a Location.
func Parse(raw string) (Location, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Location{}, fmt.Errorf("empty location")
	}

	scheme, rest, found := strings.Cut(raw, "://")
	if !found {
		return Location{Kind: KindFile, Raw: raw, Path: raw}, nil
	}

	switch strings.ToLower(scheme) {
	case "file":
		if rest == "" {
			return Location{}, fmt.Errorf("location %q has no path", raw)
		}
		return Location{Kind: KindFile, Raw: raw, Path: rest}, nil

	case "s3":
		u, err := url.Parse(raw)
		if err != nil {
			return Location{}, fmt.Errorf("invalid location %q: %w", raw, err)
		}
		key := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || key == "" {
			return Location{}, fmt.Errorf("location %q must look like s3://bucket/key", raw)
		}
		return Location{Kind: KindObject, Raw: raw, Bucket: u.Host, Key: key}, nil

	case "db":
		table := strings.Trim(rest, "/")
		if !tableName.MatchString(table) {
			return Location{}, fmt.Errorf("location %q must look like db://table_name", raw)
		}
		return Location{Kind: KindTable, Raw: raw, Table: table}, nil

	default:
		return Location{}, fmt.Errorf("location %q has unsupported scheme %q", raw, scheme)
	}
}

// Opener opens file and object locations for reading.
type Opener struct {
	// Storage is optional; object locations fail without it.
	Storage storage.Client
}

// NewOpener creates an Opener. The storage client may be nil.
func NewOpener(client storage.Client) *Opener {
	return &Opener{Storage: client}
}

// Open returns a reader for the location's content.
func (o *Opener) Open(ctx context.Context, loc Location) (io.ReadCloser, error) {
	switch loc.Kind {
	case KindFile:
		f, err := os.Open(loc.Path)
		if err != nil {
			return nil, err
		}
		return f, nil

	case KindObject:
		if o == nil || o.Storage == nil {
			return nil, ErrStorageUnavailable
		}
		obj, err := o.Storage.GetObject(ctx, loc.Bucket, loc.Key, minio.GetObjectOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to get object %s/%s: %w", loc.Bucket, loc.Key, err)
		}
		return obj, nil

	default:
		return nil, fmt.Errorf("location %s cannot be opened as a stream", loc.Raw)
	}
}

// ReadAll opens the location and reads its whole content.
func (o *Opener) ReadAll(ctx context.Context, loc Location) ([]byte, error) {
	rc, err := o.Open(ctx, loc)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", loc.Raw, err)
	}
	return data, nil
}
