package squash

// accumChunkSize is the read increment used by the one-shot accumulator
// path while draining the source; with an input budget, each read is
// further clamped to what remains of it.
const accumChunkSize = 64 * 1024

// runAccumulator implements the one-shot buffer tier over a stream of
// read/write callbacks (spec.md §4.5): drain the entire source into
// memory, transform it in one call, then drain the result to the sink.
// This is the last-resort tier, used when a codec has neither a native
// splice nor an incremental stream.
func runAccumulator(codec *Codec, dir Direction, lim *limitedIO, opts Options) Status {
	var in dynBuffer
	for {
		want := accumChunkSize
		if lim.limitsInput() {
			if lim.remaining == 0 {
				break
			}
			if int64(want) > lim.remaining {
				want = int(lim.remaining)
			}
		}
		old := in.len()
		dst := in.grow(want)
		n, status := lim.Read(dst)
		in.setSize(old + n)
		if status == StatusEndOfStream {
			break
		}
		if status != StatusOK {
			return status
		}
	}

	input := in.data[:in.len()]

	var out dynBuffer
	var outLen int
	var status Status

	switch {
	case dir == Compress:
		maxOut := codec.MaxCompressedSize(int64(len(input)))
		out.setSize(int(maxOut))
		outLen, status = codec.CompressBuffer(out.data, input, opts)

	case codec.knowsUncompressedSize():
		size, ok := codec.UncompressedSize(input)
		if !ok {
			return StatusInvalidBuffer
		}
		out.setSize(int(size))
		outLen, status = codec.DecompressBuffer(out.data, input, opts)

	default:
		guess := nextPowerOfTwo(int64(len(input))) << 3
		if guess == 0 {
			guess = 64
		}
		for {
			out.setSize(int(guess))
			outLen, status = codec.DecompressBuffer(out.data, input, opts)
			if status != StatusBufferFull {
				break
			}
			guess <<= 1
			if guess > maxDecompressedSize {
				return StatusInvalidBuffer
			}
		}
	}

	if status != StatusOK {
		return status
	}

	return drainAll(lim, out.data[:outLen])
}

// drainAll writes data to lim's sink, treating a budget-triggered
// StatusEndOfStream as successful silent truncation rather than an error
// (spec.md §4.3/§7).
func drainAll(lim *limitedIO, data []byte) Status {
	for len(data) > 0 {
		n, status := lim.Write(data)
		if status == StatusEndOfStream {
			return StatusOK
		}
		if status != StatusOK {
			return status
		}
		data = data[n:]
	}
	return StatusOK
}
