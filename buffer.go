package squash

// dynBuffer is an expandable byte buffer that never reallocates on
// shrink, used by the one-shot accumulator path (spec.md §4.5) to
// collect an entire input or grow a decompression guess.
type dynBuffer struct {
	data []byte
}

func (b *dynBuffer) len() int { return len(b.data) }

// setSize grows capacity to at least n if needed and sets the visible
// length to n, without ever discarding previously grown capacity.
func (b *dynBuffer) setSize(n int) {
	if cap(b.data) < n {
		grown := make([]byte, n, growCap(n))
		copy(grown, b.data)
		b.data = grown
		return
	}
	b.data = b.data[:n]
}

// grow extends the buffer by delta bytes and returns the newly
// available tail slice.
func (b *dynBuffer) grow(delta int) []byte {
	old := len(b.data)
	b.setSize(old + delta)
	return b.data[old : old+delta]
}

func growCap(n int) int {
	c := 64
	for c < n {
		c <<= 1
	}
	return c
}

// nextPowerOfTwo returns the smallest power of two >= n, used to seed
// the decompression buffer-doubling guess (spec.md §9).
func nextPowerOfTwo(n int64) int64 {
	if n <= 1 {
		return 1
	}
	p := int64(1)
	for p < n {
		p <<= 1
	}
	return p
}

// maxDecompressedSize caps the buffer-doubling retry loops (spec.md §9's
// Open Question resolution): beyond this, StatusInvalidBuffer is
// returned rather than growing further.
const maxDecompressedSize = 1 << 30
