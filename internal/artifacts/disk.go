package artifacts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// DiskMirror writes a local copy of every certificate before handing it to
// the wrapped Store. Used in offline mode for debugging rendered output.
type DiskMirror struct {
	next Store
	dir  string
}

// NewDiskMirror wraps next, writing copies into dir.
func NewDiskMirror(next Store, dir string) *DiskMirror {
	return &DiskMirror{next: next, dir: dir}
}

// Put writes <dir>/<id>-certificate.pdf and then delegates the upload.
func (d *DiskMirror) Put(ctx context.Context, key string, body []byte) (string, error) {
	path := d.Path(key)
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return "", fmt.Errorf("create debug dir: %w", err)
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", fmt.Errorf("write debug copy: %w", err)
	}
	zap.S().Debugf("wrote debug copy of %s to %s", key, path)

	return d.next.Put(ctx, key, body)
}

// Path returns the local file used for key.
func (d *DiskMirror) Path(key string) string {
	id := strings.TrimSuffix(key, ".pdf")
	return filepath.Join(d.dir, id+"-certificate.pdf")
}
