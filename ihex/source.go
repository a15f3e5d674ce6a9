package ihex

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// DefaultChunkSize is the number of image bytes placed in each data record.
const DefaultChunkSize = MaxDataLength

type encodeConfig struct {
	chunkSize int
}

// EncodeOption configures EncodeReader and EncodeFile.
type EncodeOption func(*encodeConfig)

// WithChunkSize sets the number of bytes per data record (1 to MaxDataLength).
// Out of range values are ignored.
//
// Example:
//
//	seq, err := ihex.EncodeFile("app.bin", 0, ihex.WithChunkSize(16))
func WithChunkSize(size int) EncodeOption {
	return func(c *encodeConfig) {
		if size > 0 && size <= MaxDataLength {
			c.chunkSize = size
		}
	}
}

// EncodeFile encodes the binary image stored at path, placing its first
// byte at base.
//
// Example:
//
//	seq, err := ihex.EncodeFile("firmware.bin", 0x08000000)
//	if err != nil {
//	    log.Fatal(err)
//	}
func EncodeFile(path string, base uint32, opts ...EncodeOption) (*Sequence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &SourceReadError{Offset: base, Err: fmt.Errorf("failed to open file: %w", err)}
	}
	defer func() { _ = f.Close() }()

	return EncodeReader(f, base, opts...)
}

// EncodeReader encodes everything read from r, placing the first byte at base.
// Read failures are reported as SourceReadError.
func EncodeReader(r io.Reader, base uint32, opts ...EncodeOption) (*Sequence, error) {
	cfg := encodeConfig{chunkSize: DefaultChunkSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	enc := NewEncoder(base)
	buf := make([]byte, cfg.chunkSize)
	for {
		n, err := io.ReadFull(r, buf)
		if n > 0 {
			if pushErr := enc.Push(buf[:n]); pushErr != nil {
				return nil, pushErr
			}
		}
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}
		if err != nil {
			return nil, &SourceReadError{Offset: uint32(enc.Offset()), Err: err}
		}
	}

	return enc.Finish()
}
