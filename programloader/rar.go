package programloader

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/nwaples/rardecode/v2"
)

// extractFromRAR walks a RAR archive's entries looking for a .pgm
// keystroke-program listing, following the rardecode.OpenReader/Next
// streaming API (the library exposes entries only in sequence, so
// there is no directory to scan ahead of time the way zip/7z allow).
// Directory entries and every non-.pgm member are skipped; the first
// listing found is returned as raw text for parseListing, not as a
// binary image the way a cartridge ROM extractor would.
func extractFromRAR(path string) ([]byte, string, error) {
	r, err := rardecode.OpenReader(path)
	if err != nil {
		return nil, "", fmt.Errorf("open rar %s: %w", path, err)
	}
	defer r.Close()

	for {
		header, err := r.Next()
		if err == io.EOF {
			return nil, "", ErrNoProgramFile
		}
		if err != nil {
			return nil, "", fmt.Errorf("read rar entry in %s: %w", path, err)
		}
		if header.IsDir || !isProgramFile(header.Name) {
			continue
		}

		listing, err := limitedRead(r)
		if err != nil {
			return nil, "", fmt.Errorf("read listing %s from %s: %w", header.Name, path, err)
		}
		return listing, filepath.Base(header.Name), nil
	}
}
