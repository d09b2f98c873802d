package datatable

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sqlterm/internal/logging"
)

var fileLog = logging.Component("load_file")

// FileType is the inner (post-decompression) shape of an ingested file.
type FileType int

const (
	FileTypeCSV FileType = iota
	FileTypeJSON
	FileTypeXLSX
)

// LoadOptions bundles the flags a single-file or directory load honors
// (spec.md §4.1, §4.12: --no-header; case-insensitive column lookup is
// chosen per call through Table.ColumnIndex, not here).
type LoadOptions struct {
	NoHeaderRow bool
}

// DetectFileType inspects path (after stripping a compression suffix) to
// choose a loader, grounded on fileloader/detection.go's
// DetectFileTypeAndCompression. XLSX is never compressed in practice since
// it is already a zip container, but the extension is still honored.
func DetectFileType(path string) (FileType, error) {
	inner := stripCompressedSuffix(strings.ToLower(path))
	switch filepath.Ext(inner) {
	case ".csv":
		return FileTypeCSV, nil
	case ".json":
		return FileTypeJSON, nil
	case ".xlsx":
		return FileTypeXLSX, nil
	default:
		return 0, fmt.Errorf("unrecognized file extension for %q", path)
	}
}

// LoadFile opens path, transparently decompressing it if DetectCompression
// finds a gzip/xz envelope, and loads it with the loader matching its inner
// extension (spec.md §4.1, §4.14).
func LoadFile(path string, opts LoadOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	head := make([]byte, 6)
	n, _ := f.Read(head)
	if _, err := f.Seek(0, 0); err != nil {
		return nil, fmt.Errorf("seek %q: %w", path, err)
	}

	compression := DetectCompression(path, head[:n])
	fileType, err := DetectFileType(path)
	if err != nil {
		return nil, err
	}

	name := TableNameFromPath(stripCompressedSuffix(path))
	fileLog.Debug().Str("path", path).Int("file_type", int(fileType)).Int("compression", int(compression)).Msg("loading file")

	if fileType == FileTypeXLSX {
		if compression != CompressionNone {
			return nil, fmt.Errorf("compressed xlsx files are not supported: %q", path)
		}
		return LoadXLSX(name, path, opts.NoHeaderRow)
	}

	r, err := Decompress(f, compression)
	if err != nil {
		return nil, fmt.Errorf("decompress %q: %w", path, err)
	}

	switch fileType {
	case FileTypeCSV:
		return LoadCSV(name, r, CSVOptions{NoHeaderRow: opts.NoHeaderRow})
	case FileTypeJSON:
		return LoadJSON(name, r)
	default:
		return nil, fmt.Errorf("unsupported file type for %q", path)
	}
}
