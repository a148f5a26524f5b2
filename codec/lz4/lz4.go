// Package lz4 registers a squash codec backed by
// github.com/pierrec/lz4/v4, filling in the teacher's own
// "// TODO: Implement using github.com/pierrec/lz4" placeholder in
// algorithms.go.
package lz4

import (
	"bytes"
	"io"

	"github.com/absfs/squash"
	"github.com/pierrec/lz4/v4"
)

// Options configures the lz4 codec.
type Options struct {
	squash.OptionsMarker
	Level int // 0 means the library default
}

func (o Options) CompressionLevel() int { return o.Level }

// Option configures an Options value via New.
type Option func(*Options)

// WithLevel sets the lz4 compression level.
func WithLevel(level int) Option {
	return func(o *Options) { o.Level = level }
}

// New builds an Options value from functional options.
func New(opts ...Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func applyLevel(w *lz4.Writer, opts squash.Options) {
	if l := squash.LevelFromOptions(opts, 0); l != 0 {
		w.Apply(lz4.CompressionLevelOption(lz4.CompressionLevel(l)))
	}
}

func maxCompressedSize(n int64) int64 {
	return n + n/255 + 128
}

func compressBuffer(dst, src []byte, opts squash.Options) (int, squash.Status) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	applyLevel(w, opts)
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
	r := lz4.NewReader(bytes.NewReader(src))
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
	var extra [1]byte
	if n, _ := r.Read(extra[:]); n > 0 {
		return total, squash.StatusBufferFull
	}
	return total, squash.StatusOK
}

func newStream(dir squash.Direction, opts squash.Options) (squash.Stream, squash.Status) {
	if dir == squash.Compress {
		var buf bytes.Buffer
		w := lz4.NewWriter(&buf)
		applyLevel(w, opts)
		return squash.WrapCompressor(w, &buf), squash.StatusOK
	}
	return squash.WrapDecompressor(func(r io.Reader) (io.ReadCloser, error) {
		return io.NopCloser(lz4.NewReader(r)), nil
	}), squash.StatusOK
}

func init() {
	squash.MustRegister(&squash.Codec{
		Name:              "lz4",
		MaxCompressedSize: maxCompressedSize,
		CompressBuffer:    compressBuffer,
		DecompressBuffer:  decompressBuffer,
		NewStream:         newStream,
	})
}
