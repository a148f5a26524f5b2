package squash

// CodecInfo is a bit set of capability/behavior flags a codec descriptor
// advertises about itself, independent of which vtable entries it fills in.
type CodecInfo uint32

const (
	// InfoKnowsUncompressedSize means UncompressedSize can derive the
	// decompressed length directly from the compressed bytes (e.g. from a
	// frame header), letting the one-shot paths size their output buffer
	// exactly instead of guessing and doubling.
	InfoKnowsUncompressedSize CodecInfo = 1 << iota
)

// ReadFunc pulls up to len(p) bytes into p, mirroring the C splice
// callback's (*len in/out) convention: n is how many bytes were actually
// placed in p, and status reports OK (more may follow), EndOfStream (n
// may still be >0 on this same call), or a hard failure.
type ReadFunc func(p []byte) (n int, status Status)

// WriteFunc pushes p to its destination. EndOfStream here means the
// destination's budget has been exhausted and no more bytes will be
// accepted.
type WriteFunc func(p []byte) (n int, status Status)

// Codec is a compression backend's descriptor: a name plus an optional
// vtable of capability-tier implementations. A codec need only fill in
// the tiers it naturally supports — the splice engine picks the best one
// available at dispatch time. At least one of CompressBuffer/
// DecompressBuffer, NewStream, or Splice must be non-nil.
type Codec struct {
	Name string
	Info CodecInfo

	// MaxCompressedSize bounds the compressed output size for a given
	// uncompressed input length; required whenever CompressBuffer is set.
	MaxCompressedSize func(uncompressedLen int64) int64

	// UncompressedSize attempts to recover the decompressed length from
	// the compressed bytes alone. Only meaningful when Info has
	// InfoKnowsUncompressedSize set.
	UncompressedSize func(compressed []byte) (int64, bool)

	// CompressBuffer/DecompressBuffer implement the one-shot buffer tier:
	// the whole input is available at once; the whole output must fit in
	// dst. Returning StatusBufferFull lets the caller retry with a larger
	// dst instead of failing outright.
	CompressBuffer   func(dst, src []byte, opts Options) (int, Status)
	DecompressBuffer func(dst, src []byte, opts Options) (int, Status)

	// NewStream implements the incremental stream tier: the codec is fed
	// and drained in arbitrarily sized chunks via the returned Stream.
	NewStream func(dir Direction, opts Options) (Stream, Status)

	// Splice implements the native splice tier: the codec drives the
	// entire transfer itself using the given callbacks, bypassing the
	// engine's generic loops entirely.
	Splice func(dir Direction, write WriteFunc, read ReadFunc, opts Options) Status
}

func (c *Codec) knowsUncompressedSize() bool {
	return c.Info&InfoKnowsUncompressedSize != 0 && c.UncompressedSize != nil
}

func (c *Codec) hasNativeSplice() bool { return c.Splice != nil }
func (c *Codec) hasStream() bool       { return c.NewStream != nil }
func (c *Codec) hasBuffer() bool {
	return c.CompressBuffer != nil && c.DecompressBuffer != nil
}

func (c *Codec) valid() bool {
	return c.Name != "" && (c.hasNativeSplice() || c.hasStream() || c.hasBuffer())
}
