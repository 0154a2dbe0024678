package collect

import (
	"bytes"
	"errors"
	"io"
	"os"
)

// sniffLen is how much of a file is inspected for NUL bytes.
const sniffLen = 512

// isBinaryFile checks if a file is binary by looking for a NUL byte in its
// first sniffLen bytes.
func isBinaryFile(filePath string) (bool, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return false, err
	}
	defer file.Close()

	buffer := make([]byte, sniffLen)
	n, err := io.ReadFull(file, buffer)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return false, err
	}

	return bytes.IndexByte(buffer[:n], 0) >= 0, nil
}
