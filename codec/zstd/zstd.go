// Package zstd registers a squash codec backed by
// github.com/klauspost/compress/zstd, the one codec package that
// exercises all three capability tiers: one-shot buffer (EncodeAll/
// DecodeAll), incremental stream (Encoder/Decoder as push/pull
// io.WriteCloser and io.Reader), and native splice (Encoder.ReadFrom /
// Decoder.WriteTo drive the whole transfer themselves).
package zstd

import (
	"bytes"
	"errors"
	"io"

	"github.com/absfs/squash"
	"github.com/klauspost/compress/zstd"
)

// Options configures the zstd codec.
type Options struct {
	squash.OptionsMarker
	Level int // a classic zstd level (1-22); 0 means the library default
}

func (o Options) CompressionLevel() int { return o.Level }

// Option configures an Options value via New.
type Option func(*Options)

// WithLevel sets the zstd compression level.
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

func encoderLevel(opts squash.Options) zstd.EOption {
	lvl := squash.LevelFromOptions(opts, 0)
	if lvl == 0 {
		return zstd.WithEncoderLevel(zstd.SpeedDefault)
	}
	return zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(lvl))
}

func maxCompressedSize(n int64) int64 {
	// zstd frames top out at the input size plus a small worst-case
	// overhead for uncompressible data; matches the bound klauspost's
	// own encoder sizing uses internally.
	return n + (n >> 7) + 128
}

func uncompressedSize(compressed []byte) (int64, bool) {
	return frameContentSize(compressed)
}

func compressBuffer(dst, src []byte, opts squash.Options) (int, squash.Status) {
	enc, err := zstd.NewWriter(nil, encoderLevel(opts))
	if err != nil {
		return 0, squash.StatusFailed
	}
	defer enc.Close()
	out := enc.EncodeAll(src, nil)
	if len(out) > len(dst) {
		return 0, squash.StatusInvalidBuffer
	}
	return copy(dst, out), squash.StatusOK
}

func decompressBuffer(dst, src []byte, opts squash.Options) (int, squash.Status) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return 0, squash.StatusFailed
	}
	defer dec.Close()
	out, err := dec.DecodeAll(src, nil)
	if err != nil {
		return 0, squash.StatusInvalidBuffer
	}
	if len(out) > len(dst) {
		return 0, squash.StatusBufferFull
	}
	return copy(dst, out), squash.StatusOK
}

// decoderCloser adapts *zstd.Decoder's no-error Close to io.ReadCloser.
type decoderCloser struct{ *zstd.Decoder }

func (d decoderCloser) Close() error {
	d.Decoder.Close()
	return nil
}

func newStream(dir squash.Direction, opts squash.Options) (squash.Stream, squash.Status) {
	if dir == squash.Compress {
		var buf bytes.Buffer
		enc, err := zstd.NewWriter(&buf, encoderLevel(opts))
		if err != nil {
			return nil, squash.StatusFailed
		}
		return squash.WrapCompressor(enc, &buf), squash.StatusOK
	}
	return squash.WrapDecompressor(func(r io.Reader) (io.ReadCloser, error) {
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return decoderCloser{dec}, nil
	}), squash.StatusOK
}

// errBudgetDone signals that a WriteFunc destination reported
// StatusEndOfStream (its budget is exhausted), which the native splice
// path treats as a clean termination rather than a failure.
var errBudgetDone = errors.New("squash/zstd: destination budget exhausted")

// funcReader adapts a squash.ReadFunc to io.Reader for Encoder.ReadFrom
// and Decoder's pull-style consumption of compressed input.
type funcReader squash.ReadFunc

func (f funcReader) Read(p []byte) (int, error) {
	n, status := f(p)
	switch status {
	case squash.StatusOK, squash.StatusProcessing:
		if n == 0 {
			return 0, io.EOF
		}
		return n, nil
	case squash.StatusEndOfStream:
		return n, io.EOF
	default:
		return n, &squash.StatusError{Status: status}
	}
}

// funcWriter adapts a squash.WriteFunc to io.Writer for Decoder.WriteTo
// and Encoder's push-style emission of compressed output. A short write
// is retried with the remainder, so Write returns either all of p or an
// error, as io.Writer requires.
type funcWriter squash.WriteFunc

func (f funcWriter) Write(p []byte) (int, error) {
	written := 0
	for written < len(p) {
		n, status := f(p[written:])
		written += n
		switch status {
		case squash.StatusOK, squash.StatusProcessing:
		case squash.StatusEndOfStream:
			return written, errBudgetDone
		default:
			return written, &squash.StatusError{Status: status}
		}
	}
	return written, nil
}

func splice(dir squash.Direction, write squash.WriteFunc, read squash.ReadFunc, opts squash.Options) squash.Status {
	if dir == squash.Compress {
		enc, err := zstd.NewWriter(funcWriter(write), encoderLevel(opts))
		if err != nil {
			return squash.StatusFailed
		}
		_, err = enc.ReadFrom(funcReader(read))
		cerr := enc.Close()
		if err != nil && !errors.Is(err, errBudgetDone) {
			return squash.StatusFailed
		}
		if cerr != nil && !errors.Is(err, errBudgetDone) {
			return squash.StatusFailed
		}
		return squash.StatusOK
	}

	dec, err := zstd.NewReader(funcReader(read))
	if err != nil {
		return squash.StatusFailed
	}
	defer dec.Close()
	_, err = dec.WriteTo(funcWriter(write))
	if err != nil && !errors.Is(err, errBudgetDone) {
		return squash.StatusFailed
	}
	return squash.StatusOK
}

func init() {
	squash.MustRegister(&squash.Codec{
		Name:              "zstd",
		Info:              squash.InfoKnowsUncompressedSize,
		MaxCompressedSize: maxCompressedSize,
		UncompressedSize:  uncompressedSize,
		CompressBuffer:    compressBuffer,
		DecompressBuffer:  decompressBuffer,
		NewStream:         newStream,
		Splice:            splice,
	})
}
