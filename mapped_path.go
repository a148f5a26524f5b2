package squash

// mmapOneShot attempts the mapped-file one-shot path (spec.md §4.2):
// map both endpoints and hand the whole buffers to the codec's one-shot
// tier in a single call. attempted is false when either endpoint does
// not support mmap, and also when a mapping fails or, for compression,
// the codec call fails. The dispatcher moves on to the next tier
// whenever the result is not an attempted StatusOK.
func mmapOneShot(codec *Codec, dir Direction, sink, source interface{}, length int64, opts Options) (transferred int64, status Status, attempted bool) {
	if !codec.hasBuffer() {
		return 0, StatusFailed, false
	}
	srcH, srcOK := source.(mmapReadable)
	dstH, dstOK := sink.(mmapWritable)
	if !srcOK || !dstOK {
		return 0, StatusFailed, false
	}

	if dir == Compress {
		return mmapCompress(codec, dstH, srcH, length, opts)
	}
	return mmapDecompress(codec, dstH, srcH, length, opts)
}

func mmapCompress(codec *Codec, sink mmapWritable, source mmapReadable, length int64, opts Options) (int64, Status, bool) {
	srcSize, ok := sourceSize(source)
	if !ok {
		return 0, StatusFailed, false
	}
	if length == 0 {
		length = srcSize
	}
	if length > srcSize {
		return 0, StatusIO, true
	}

	in, err := newMappedWindow(source, int(length), false)
	if err != nil {
		return 0, StatusFailed, false
	}
	defer in.destroy(false)

	maxOut := codec.MaxCompressedSize(length)
	out, err := newMappedWindow(sink, int(maxOut), true)
	if err != nil {
		return 0, StatusFailed, false
	}

	n, cstatus := codec.CompressBuffer(out.data, in.data, opts)
	if cstatus != StatusOK {
		out.destroy(false)
		return 0, StatusFailed, false
	}

	out.length = n
	if err := out.destroy(true); err != nil {
		return 0, StatusIO, true
	}
	return length, StatusOK, true
}

func mmapDecompress(codec *Codec, sink mmapWritable, source mmapReadable, length int64, opts Options) (int64, Status, bool) {
	srcSize, ok := sourceSize(source)
	if !ok {
		return 0, StatusFailed, false
	}

	in, err := newMappedWindow(source, int(srcSize), false)
	if err != nil {
		return 0, StatusFailed, false
	}
	defer in.destroy(false)

	knows := codec.knowsUncompressedSize()
	var guess int64
	if knows {
		size, ok := codec.UncompressedSize(in.data)
		if !ok {
			return 0, StatusInvalidBuffer, true
		}
		guess = size
	} else {
		guess = nextPowerOfTwo(srcSize) << 3
		if guess == 0 {
			guess = 64
		}
	}

	for {
		out, err := newMappedWindow(sink, int(guess), true)
		if err != nil {
			return 0, StatusFailed, false
		}

		n, dstatus := codec.DecompressBuffer(out.data, in.data, opts)
		if dstatus == StatusOK {
			outLen := int64(n)
			if length != 0 && outLen > length {
				outLen = length
			}
			out.length = int(outLen)
			if err := out.destroy(true); err != nil {
				return 0, StatusIO, true
			}
			return outLen, StatusOK, true
		}

		out.destroy(false)

		if dstatus == StatusBufferFull && !knows {
			guess <<= 1
			if guess > maxDecompressedSize {
				return 0, StatusInvalidBuffer, true
			}
			continue
		}

		return 0, StatusFailed, true
	}
}
