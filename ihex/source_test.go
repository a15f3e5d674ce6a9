package ihex

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// flakyReader returns data and then a read error.
type flakyReader struct {
	data []byte
	err  error
}

func (r *flakyReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, r.err
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

// trickleReader returns at most one byte per call.
type trickleReader struct {
	r io.Reader
}

func (t *trickleReader) Read(p []byte) (int, error) {
	if len(p) > 1 {
		p = p[:1]
	}
	return t.r.Read(p)
}

func TestEncodeReaderSourceError(t *testing.T) {
	readErr := errors.New("disk on fire")
	_, err := EncodeReader(&flakyReader{data: make([]byte, 300), err: readErr}, 0x1000)
	if err == nil {
		t.Fatal("expected error")
	}

	var srcErr *SourceReadError
	if !errors.As(err, &srcErr) {
		t.Fatalf("error type = %T, want *SourceReadError", err)
	}
	if !errors.Is(err, readErr) {
		t.Error("SourceReadError should unwrap to the reader error")
	}
	if srcErr.Offset != 0x1000+300 {
		t.Errorf("Offset = 0x%X, want 0x%X", srcErr.Offset, 0x1000+300)
	}
}

func TestEncodeReaderShortReads(t *testing.T) {
	image := pattern(600)
	seq, err := EncodeReader(&trickleReader{r: bytes.NewReader(image)}, 0)
	if err != nil {
		t.Fatalf("EncodeReader() error = %v", err)
	}

	// Short reads are coalesced into full chunks
	var sizes []int
	for _, r := range seq.Records() {
		if r.Type() == Data {
			sizes = append(sizes, r.Len())
		}
	}
	expected := []int{255, 255, 90}
	if len(sizes) != len(expected) {
		t.Fatalf("data record sizes = %v, want %v", sizes, expected)
	}
	for i := range expected {
		if sizes[i] != expected[i] {
			t.Errorf("data record sizes = %v, want %v", sizes, expected)
			break
		}
	}
}

func TestWithChunkSizeIgnoresInvalid(t *testing.T) {
	for _, size := range []int{0, -1, MaxDataLength + 1} {
		seq, err := EncodeReader(bytes.NewReader(pattern(300)), 0, WithChunkSize(size))
		if err != nil {
			t.Fatalf("EncodeReader() error = %v", err)
		}
		if seq.At(1).Len() != DefaultChunkSize {
			t.Errorf("WithChunkSize(%d): first record has %d bytes, want %d", size, seq.At(1).Len(), DefaultChunkSize)
		}
	}
}

func TestEncodeFile(t *testing.T) {
	image := pattern(1024)
	path := filepath.Join(t.TempDir(), "image.bin")
	if err := os.WriteFile(path, image, 0o644); err != nil {
		t.Fatal(err)
	}

	seq, err := EncodeFile(path, 0x08000000)
	if err != nil {
		t.Fatalf("EncodeFile() error = %v", err)
	}
	if err := seq.Verify(image, 0x08000000); err != nil {
		t.Errorf("Verify() error = %v", err)
	}

	_, err = EncodeFile(filepath.Join(t.TempDir(), "missing.bin"), 0)
	var srcErr *SourceReadError
	if !errors.As(err, &srcErr) {
		t.Errorf("EncodeFile() on missing file error = %v, want *SourceReadError", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("missing file error should unwrap to os.ErrNotExist")
	}
}
