package util

import (
	"bytes"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
	"golang.org/x/text/unicode/norm"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadSource reads a component source file through a read-only memory map
// and normalizes it with NormalizeSource. It falls back to os.ReadFile when
// the file cannot be mapped.
func ReadSource(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file %q: %w", path, err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat file %q: %w", path, err)
	}
	if stat.IsDir() {
		return "", fmt.Errorf("%q is a directory", path)
	}
	// Empty files cannot be mapped.
	if stat.Size() == 0 {
		return "", nil
	}

	data, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		raw, readErr := os.ReadFile(path)
		if readErr != nil {
			return "", fmt.Errorf("mmap failed and fallback failed for %q: mmap error: %v, read error: %w",
				path, err, readErr)
		}
		return NormalizeSource(raw), nil
	}
	// NormalizeSource copies, so the mapping can be released right away.
	text := NormalizeSource(data)
	if err := data.Unmap(); err != nil {
		return "", fmt.Errorf("unmap %q: %w", path, err)
	}
	return text, nil
}

// NormalizeSource strips a UTF-8 byte order mark, converts CRLF and lone CR
// line endings to LF and applies Unicode NFC normalization.
func NormalizeSource(data []byte) string {
	data = bytes.TrimPrefix(data, utf8BOM)
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	data = bytes.ReplaceAll(data, []byte("\r"), []byte("\n"))
	return norm.NFC.String(string(data))
}
