package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"tool-compare-data/core/reconcile"
	"tool-compare-data/core/storage"

	"github.com/minio/minio-go/v7"
)

// Sink persists a validation result.
type Sink interface {
	// Name identifies the sink in logs.
	Name() string

	// Write persists the result.
	Write(ctx context.Context, result *reconcile.ValidationResult) error
}

// Marshal renders the result as the persisted JSON document (2-space indent).
// Values are written literally; markup characters are not HTML-escaped.
func Marshal(result *reconcile.ValidationResult) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

// FileSink writes the report to a local file, creating parent directories.
type FileSink struct {
	Path string
}

// NewFileSink creates a FileSink.
func NewFileSink(path string) *FileSink {
	return &FileSink{Path: path}
}

func (s *FileSink) Name() string {
	return s.Path
}

func (s *FileSink) Write(_ context.Context, result *reconcile.ValidationResult) error {
	data, err := Marshal(result)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create report directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(s.Path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", s.Path, err)
	}
	return nil
}

// ObjectSink uploads the report to object storage.
type ObjectSink struct {
	Client storage.Client
	Bucket string
	Key    string
}

// NewObjectSink creates an ObjectSink.
func NewObjectSink(client storage.Client, bucket, key string) *ObjectSink {
	return &ObjectSink{Client: client, Bucket: bucket, Key: key}
}

func (s *ObjectSink) Name() string {
	return fmt.Sprintf("s3://%s/%s", s.Bucket, s.Key)
}

func (s *ObjectSink) Write(ctx context.Context, result *reconcile.ValidationResult) error {
	data, err := Marshal(result)
	if err != nil {
		return err
	}

	_, err = s.Client.PutObject(ctx, s.Bucket, s.Key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to upload report to %s: %w", s.Name(), err)
	}
	return nil
}
