package datatable

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
)

// Compression is the detected compression format of a file
// (SPEC_FULL.md §4.14, grounded on fileloader/compression.go).
type Compression int

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionXZ
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	xzMagic   = []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}
)

// DetectCompression inspects the magic bytes at the start of data,
// falling back to the file extension if the buffer is too short to
// contain a magic number.
func DetectCompression(path string, head []byte) Compression {
	if len(head) >= 2 && bytes.HasPrefix(head, gzipMagic) {
		return CompressionGzip
	}
	if len(head) >= 6 && bytes.HasPrefix(head, xzMagic) {
		return CompressionXZ
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return CompressionGzip
	case ".xz":
		return CompressionXZ
	}
	return CompressionNone
}

// stripCompressedSuffix removes a trailing .gz/.xz so the inner extension
// (.csv, .json) can be inspected by the caller.
func stripCompressedSuffix(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".gz" || ext == ".xz" {
		return strings.TrimSuffix(path, filepath.Ext(path))
	}
	return path
}

// Decompress wraps r in the appropriate reader for c, or returns r
// unchanged for CompressionNone.
func Decompress(r io.Reader, c Compression) (io.Reader, error) {
	switch c {
	case CompressionGzip:
		gr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("open gzip stream: %w", err)
		}
		return gr, nil
	case CompressionXZ:
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("open xz stream: %w", err)
		}
		return xr, nil
	default:
		return r, nil
	}
}
