// Package snappy registers a squash codec backed by
// github.com/golang/snappy. Grounded on
// original_source/plugins/snappy/squash-snappy.c: the real squash
// snappy plugin implements only get_max_compressed_size,
// get_uncompressed_size, compress_buffer, and decompress_buffer — no
// process_stream, no native splice. This Go port mirrors that exactly,
// making snappy the one codec that always exercises the mmap-preferred
// and one-shot-accumulator-fallback paths rather than the stream loop.
package snappy

import (
	"github.com/absfs/squash"
	"github.com/golang/snappy"
)

// Options configures the snappy codec. Snappy has no compression level
// knob, so this only exists to satisfy squash.Options when callers want
// to be explicit.
type Options struct {
	squash.OptionsMarker
}

func maxCompressedSize(n int64) int64 {
	return int64(snappy.MaxEncodedLen(int(n)))
}

func uncompressedSize(compressed []byte) (int64, bool) {
	n, err := snappy.DecodedLen(compressed)
	if err != nil {
		return 0, false
	}
	return int64(n), true
}

func compressBuffer(dst, src []byte, opts squash.Options) (int, squash.Status) {
	if len(dst) < snappy.MaxEncodedLen(len(src)) {
		return 0, squash.StatusBufferFull
	}
	out := snappy.Encode(dst, src)
	return len(out), squash.StatusOK
}

func decompressBuffer(dst, src []byte, opts squash.Options) (int, squash.Status) {
	n, err := snappy.DecodedLen(src)
	if err != nil {
		return 0, squash.StatusInvalidBuffer
	}
	if n > len(dst) {
		return 0, squash.StatusBufferFull
	}
	out, err := snappy.Decode(dst, src)
	if err != nil {
		return 0, squash.StatusInvalidBuffer
	}
	return len(out), squash.StatusOK
}

func init() {
	squash.MustRegister(&squash.Codec{
		Name:              "snappy",
		Info:              squash.InfoKnowsUncompressedSize,
		MaxCompressedSize: maxCompressedSize,
		UncompressedSize:  uncompressedSize,
		CompressBuffer:    compressBuffer,
		DecompressBuffer:  decompressBuffer,
	})
}
