package squash

import (
	"io"
	"io/fs"

	"github.com/absfs/absfs"
)

// fileHandle is the minimal surface the splice engine needs from a
// file-like endpoint; absfs.File satisfies it structurally.
type fileHandle interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Stat() (fs.FileInfo, error)
	Name() string
}

func fileReadFunc(f fileHandle) ReadFunc {
	return func(p []byte) (int, Status) {
		n, err := f.Read(p)
		if n > 0 {
			return n, StatusOK
		}
		if err == io.EOF {
			return 0, StatusEndOfStream
		}
		if err != nil {
			return 0, StatusIO
		}
		return 0, StatusOK
	}
}

func fileWriteFunc(f fileHandle) WriteFunc {
	return func(p []byte) (int, Status) {
		n, err := f.Write(p)
		if err != nil {
			return n, StatusIO
		}
		return n, StatusOK
	}
}

// Splice compresses or decompresses between source and sink using the
// codec registered under codecName, transferring at most length
// uncompressed bytes (0 means unlimited, per direction).
func Splice(codecName string, dir Direction, sink, source absfs.File, length int64, opts ...Option) (int64, error) {
	codec, ok := Lookup(codecName)
	if !ok {
		return 0, ErrUnknownCodec
	}
	return SpliceCodecWithOptions(codec, dir, sink, source, length, buildOptions(opts))
}

// SpliceCodec is Splice taking an already-resolved codec descriptor.
func SpliceCodec(codec *Codec, dir Direction, sink, source absfs.File, length int64, opts ...Option) (int64, error) {
	return SpliceCodecWithOptions(codec, dir, sink, source, length, buildOptions(opts))
}

// SpliceWithOptions is Splice accepting a concrete, codec-specific
// Options value instead of the generic varargs knobs.
func SpliceWithOptions(codecName string, dir Direction, sink, source absfs.File, length int64, options Options) (int64, error) {
	codec, ok := Lookup(codecName)
	if !ok {
		return 0, ErrUnknownCodec
	}
	return SpliceCodecWithOptions(codec, dir, sink, source, length, options)
}

// SpliceCodecWithOptions is SpliceCodec accepting a concrete Options value.
func SpliceCodecWithOptions(codec *Codec, dir Direction, sink, source absfs.File, length int64, options Options) (int64, error) {
	return recordSplice(codec, dir, func() (int64, error) {
		return spliceFile(codec, dir, sink, source, length, options)
	})
}

func recordSplice(codec *Codec, dir Direction, run func() (int64, error)) (int64, error) {
	n, err := run()
	if codec == nil {
		return n, err
	}
	in, out := n, n
	if dir == Compress {
		out = 0
	} else {
		in = 0
	}
	globalStats.record(codec.Name, dir, in, out, err)
	return n, err
}

// SpliceCustomCodecWithOptions is the generic, callback-based entry
// point: no file endpoints, no locking, no mmap tier — just the codec's
// native splice / stream / buffer capability driven directly over the
// given callbacks.
func SpliceCustomCodecWithOptions(codec *Codec, dir Direction, write WriteFunc, read ReadFunc, length int64, options Options) (int64, error) {
	return spliceCustom(codec, dir, write, read, length, options)
}
