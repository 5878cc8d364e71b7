package generator

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"
)

// tailWindow is the first chunk read from the end of the status file. It
// doubles until it holds a whole line.
const tailWindow = 4 << 10

// ErrNoStatus means no status line has been written yet.
var ErrNoStatus = errors.New("status not available yet")

// ReadStatus returns the most recent line of the status file, reading only
// its tail.
func ReadStatus(path string) (string, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrNoStatus
	}
	if err != nil {
		return "", err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}
	size := info.Size()

	for window := int64(tailWindow); ; window *= 2 {
		if window > size {
			window = size
		}

		buf := make([]byte, window)
		if _, err := f.ReadAt(buf, size-window); err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}

		text := strings.TrimRight(string(buf), "\r\n\t ")
		i := strings.LastIndexByte(text, '\n')
		if i < 0 && window < size {
			continue
		}

		line := strings.TrimSpace(text[i+1:])
		if line == "" {
			return "", ErrNoStatus
		}
		return line, nil
	}
}
