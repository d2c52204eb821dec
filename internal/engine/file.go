package engine

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// MaxFileReadBytes caps any single diagnostic file read (1 MB). The files
// probes read directly (/etc/os-release, /etc/resolv.conf) are small text
// files; the cap guards a misconfigured path pointing at something huge.
const MaxFileReadBytes int64 = 1 << 20

// ReadFileLimited reads a regular file with safety checks: absolute path
// only, regular-file-only after resolution (no devices, pipes, sockets), and
// a bounded read. Symlinks are followed — /etc/os-release is commonly one.
// Open-then-fstat so the checks apply to the opened fd.
func ReadFileLimited(path string) ([]byte, error) {
	if !filepath.IsAbs(path) {
		return nil, fmt.Errorf("path must be absolute, got %q", path)
	}

	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("cannot stat %q: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("refusing to read non-regular file %q (mode: %s)", path, info.Mode().Type())
	}
	if info.Size() > MaxFileReadBytes {
		return nil, fmt.Errorf("file %q too large: %d bytes (max %d)", path, info.Size(), MaxFileReadBytes)
	}

	return io.ReadAll(io.LimitReader(f, MaxFileReadBytes))
}
