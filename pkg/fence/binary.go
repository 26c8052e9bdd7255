package fence

import (
	"bytes"
	"errors"
	"io"
	"os"
)

// binarySampleSize is how many leading bytes are inspected when deciding
// whether a file is binary.
const binarySampleSize = 1024

// IsBinary reports whether a content sample looks binary: a null byte
// anywhere in the sample means binary. No other heuristic is applied.
func IsBinary(sample []byte) bool {
	return bytes.Contains(sample, []byte{0})
}

// sampleFile reads up to binarySampleSize bytes from the start of a file.
// The handle is opened, read, and released before returning.
func sampleFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, binarySampleSize)
	n, err := f.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return buf[:n], nil
}
