package programloader

import (
	"compress/gzip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// extractFromGzip decompresses a single-file gzip archive. A gzip
// stream has no internal member list, so the decompressed name is
// derived from the outer file name (stripping .gz/.tgz).
func extractFromGzip(path string) ([]byte, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, "", fmt.Errorf("open gzip %s: %w", path, err)
	}
	defer gz.Close()

	data, err := limitedRead(gz)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}

	name := filepath.Base(path)
	name = strings.TrimSuffix(name, ".gz")
	name = strings.TrimSuffix(name, ".tgz")
	return data, name, nil
}
