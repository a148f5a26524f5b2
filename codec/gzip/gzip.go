// Package gzip registers a squash codec backed by the standard
// library's compress/gzip, following the teacher's own
// createGzipCompressor/createGzipDecompressor (algorithms.go) adapted
// to the Codec vtable shape. No third-party gzip implementation appears
// anywhere in the retrieved corpus, so the standard library is the
// idiomatic choice here, same as the teacher.
package gzip

import (
	"bytes"
	stdgzip "compress/gzip"
	"io"

	"github.com/absfs/squash"
)

// Options configures the gzip codec.
type Options struct {
	squash.OptionsMarker
	Level int
}

// CompressionLevel implements squash.LevelOption.
func (o Options) CompressionLevel() int { return o.Level }

// Option configures an Options value via New.
type Option func(*Options)

// WithLevel sets the gzip compression level (compress/gzip's
// DefaultCompression..BestCompression range).
func WithLevel(level int) Option {
	return func(o *Options) { o.Level = level }
}

// New builds an Options value from functional options.
func New(opts ...Option) *Options {
	o := &Options{Level: stdgzip.DefaultCompression}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func level(opts squash.Options) int {
	return squash.LevelFromOptions(opts, stdgzip.DefaultCompression)
}

func maxCompressedSize(n int64) int64 {
	return n + n/1000 + 64
}

func compressBuffer(dst, src []byte, opts squash.Options) (int, squash.Status) {
	var buf bytes.Buffer
	w, err := stdgzip.NewWriterLevel(&buf, level(opts))
	if err != nil {
		return 0, squash.StatusFailed
	}
	if _, err := w.Write(src); err != nil {
		return 0, squash.StatusFailed
	}
	if err := w.Close(); err != nil {
		return 0, squash.StatusFailed
	}
	if buf.Len() > len(dst) {
		return 0, squash.StatusInvalidBuffer
	}
	return copy(dst, buf.Bytes()), squash.StatusOK
}

func decompressBuffer(dst, src []byte, opts squash.Options) (int, squash.Status) {
	r, err := stdgzip.NewReader(bytes.NewReader(src))
	if err != nil {
		return 0, squash.StatusInvalidBuffer
	}
	defer r.Close()

	total := 0
	for total < len(dst) {
		n, err := r.Read(dst[total:])
		total += n
		if err != nil {
			if err == io.EOF {
				return total, squash.StatusOK
			}
			return total, squash.StatusFailed
		}
	}
	// dst filled exactly; confirm there's nothing left.
	var extra [1]byte
	if n, _ := r.Read(extra[:]); n > 0 {
		return total, squash.StatusBufferFull
	}
	return total, squash.StatusOK
}

func newStream(dir squash.Direction, opts squash.Options) (squash.Stream, squash.Status) {
	if dir == squash.Compress {
		var buf bytes.Buffer
		w, err := stdgzip.NewWriterLevel(&buf, level(opts))
		if err != nil {
			return nil, squash.StatusFailed
		}
		return squash.WrapCompressor(w, &buf), squash.StatusOK
	}
	return squash.WrapDecompressor(func(r io.Reader) (io.ReadCloser, error) {
		return stdgzip.NewReader(r)
	}), squash.StatusOK
}

func init() {
	squash.MustRegister(&squash.Codec{
		Name:              "gzip",
		MaxCompressedSize: maxCompressedSize,
		CompressBuffer:    compressBuffer,
		DecompressBuffer:  decompressBuffer,
		NewStream:         newStream,
	})
}
