package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// Local stores fill results on the local filesystem, mirroring the object
// layout project/version/name. The returned link is the file path.
type Local struct {
	baseDir string
}

// NewLocal ...
func NewLocal(baseDir string) (*Local, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("storage dir %s: %w", baseDir, err)
	}
	return &Local{baseDir: baseDir}, nil
}

// Save writes a fill result atomically and returns its path.
func (s *Local) Save(_ context.Context, name string, data []byte, project, version string) (string, error) {
	target := filepath.Join(s.baseDir, filepath.FromSlash(objectKey(project, version, name)))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("result dir: %w", err)
	}
	if err := atomic.WriteFile(target, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("write result %s: %w", target, err)
	}
	return target, nil
}
