// Package programloader reads MK-54/MK-61 keystroke-program listings:
// plain-text files of two-digit decimal step codes, the same notation
// printed in the calculator's manual and in published program
// collections, optionally packed inside a ZIP, 7z, gzip or RAR
// archive. It is a local, non-transport substitute for the
// calculator's original microcontroller/USB loading path: it turns a
// listing into the packed code bytes calc.WriteCode expects, nothing
// more.
package programloader

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vakulenko/mk61sim/calc"
)

// Magic bytes for archive format detection.
var (
	magicZIP    = []byte{0x50, 0x4B, 0x03, 0x04}
	magicZIPEnd = []byte{0x50, 0x4B, 0x05, 0x06} // empty zip
	magic7z     = []byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}
	magicGzip   = []byte{0x1F, 0x8B}
	magicRAR    = []byte{0x52, 0x61, 0x72, 0x21} // "Rar!"
)

// maxListingSize bounds how much listing text Load will read: far more
// than any real program needs (a full MK-61 listing, one step per
// line with a label, is a few hundred bytes), but an archive member
// could claim to hold anything.
const maxListingSize = 64 * 1024

// ErrNoProgramFile is returned when an archive holds no .pgm member.
var ErrNoProgramFile = errors.New("no .pgm file found in archive")

// ErrUnsupportedFormat is returned for unrecognized file formats.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ErrFileTooLarge is returned when extracted content exceeds the size limit.
var ErrFileTooLarge = errors.New("file exceeds maximum size limit")

// ErrTooManySteps is returned when a listing has more steps than the
// target variant's code area holds.
var ErrTooManySteps = errors.New("program has more steps than the calculator's code area")

// formatType is the detected container format of a loaded path.
type formatType int

const (
	formatUnknown formatType = iota
	formatRawListing
	formatZIP
	format7z
	formatGzip
	formatRAR
)

// Load reads a keystroke-program listing from path, auto-detecting and
// extracting archives, and packs it into a variant.CodeBytes()-length
// buffer suitable for calc.WriteCode. It returns the packed code, the
// member name the listing came from (useful for display; equal to
// filepath.Base(path) for a raw file), and any error.
func Load(path string, variant calc.Variant) ([]byte, string, error) {
	listing, name, err := readListing(path)
	if err != nil {
		return nil, "", err
	}

	code, err := parseListing(listing, variant)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", name, err)
	}
	return code, name, nil
}

// readListing returns the raw listing text at path, extracting it from
// an archive member first if path names one.
func readListing(path string) ([]byte, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	header := make([]byte, 16)
	n, err := f.Read(header)
	if err != nil && err != io.EOF {
		return nil, "", fmt.Errorf("read header of %s: %w", path, err)
	}
	header = header[:n]

	format := detectFormat(header, path)

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, "", fmt.Errorf("seek %s: %w", path, err)
	}

	switch format {
	case formatRawListing:
		data, err := limitedRead(f)
		if err != nil {
			return nil, "", fmt.Errorf("read %s: %w", path, err)
		}
		return data, filepath.Base(path), nil

	case formatZIP:
		return extractFromZIP(path)

	case format7z:
		return extractFrom7z(path)

	case formatGzip:
		return extractFromGzip(path)

	case formatRAR:
		return extractFromRAR(path)

	default:
		return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// parseListing turns a text listing of two-digit decimal step codes
// into a packed code buffer: each step becomes one byte whose high
// nibble is the code's tens digit and low nibble its units digit,
// matching the nibble-pair layout calc.WriteCode/GetCode use for
// program bytes. Lines may carry a "NN:" step-number label before the
// code, and a "#" starts a comment running to end of line; both are
// ignored. Listings shorter than the variant's code area are zero-
// padded (step code 00, a no-op); listings with more steps than the
// code area holds are rejected.
func parseListing(data []byte, variant calc.Variant) ([]byte, error) {
	size := variant.CodeBytes()
	code := make([]byte, 0, size)

	sc := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}

		for _, tok := range strings.Fields(text) {
			if strings.HasSuffix(tok, ":") {
				continue // step-number label, e.g. "00:"
			}

			step, err := strconv.Atoi(tok)
			if err != nil || step < 0 || step > 99 {
				return nil, fmt.Errorf("line %d: invalid step code %q", line, tok)
			}
			if len(code) >= size {
				return nil, fmt.Errorf("line %d: %w (%d)", line, ErrTooManySteps, size)
			}
			code = append(code, packStep(step))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan listing: %w", err)
	}

	for len(code) < size {
		code = append(code, 0)
	}
	return code, nil
}

// packStep packs a 0..99 decimal step code into one nibble-pair byte.
func packStep(step int) byte {
	return byte((step/10)<<4 | (step % 10))
}

// detectFormat determines the file format from magic bytes, falling
// back to the file extension.
func detectFormat(header []byte, path string) formatType {
	ext := strings.ToLower(filepath.Ext(path))

	if len(header) >= 4 {
		if bytes.HasPrefix(header, magicZIP) || bytes.HasPrefix(header, magicZIPEnd) {
			return formatZIP
		}
		if bytes.HasPrefix(header, magicRAR) {
			return formatRAR
		}
	}
	if len(header) >= 6 && bytes.HasPrefix(header, magic7z) {
		return format7z
	}
	if len(header) >= 2 && bytes.HasPrefix(header, magicGzip) {
		return formatGzip
	}

	switch ext {
	case ".pgm":
		return formatRawListing
	case ".zip":
		return formatZIP
	case ".7z":
		return format7z
	case ".gz", ".tgz":
		return formatGzip
	case ".rar":
		return formatRAR
	}

	if strings.HasSuffix(strings.ToLower(path), ".tar.gz") {
		return formatGzip
	}

	return formatUnknown
}

// isProgramFile reports whether name has the .pgm listing extension.
func isProgramFile(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".pgm")
}

// limitedRead reads from r up to maxListingSize bytes, erroring if the
// data is truncated at that limit.
func limitedRead(r io.Reader) ([]byte, error) {
	lr := io.LimitReader(r, maxListingSize+1)
	data, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if len(data) > maxListingSize {
		return nil, ErrFileTooLarge
	}
	return data, nil
}
