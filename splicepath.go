package squash

// streamBufSize is the chunk size used by the buffered stream loop,
// matching SQUASH_SPLICE_BUF_SIZE in the C library.
const streamBufSize = 512

// fileBufSize caps how many bytes the mapped-block variant of the stream
// loop copies out of the memory map per read. The loop's own read buffer
// is streamBufSize bytes, so in practice each read delivers at most that.
const fileBufSize = 64 * 1024

// runStreamLoop implements the incremental stream tier (spec.md §4.4).
// When mb is non-nil it drives the "bulk" side of a compress transfer
// through per-mapping reads instead of lim's plain read callback,
// falling back permanently to the plain callback on the first mapping
// failure.
func runStreamLoop(codec *Codec, dir Direction, lim *limitedIO, opts Options, mb *mappedBlockIO) Status {
	stream, status := codec.NewStream(dir, opts)
	if status != StatusOK {
		return status
	}
	defer stream.Close()

	if mb != nil {
		defer mb.close()
		lim.read = mb.wrapRead(lim.read)
	}

	return runBufferedStreamLoop(stream, lim)
}

func runBufferedStreamLoop(stream Stream, lim *limitedIO) Status {
	inBuf := make([]byte, streamBufSize)
	outBuf := make([]byte, streamBufSize)
	eof := false

	for !eof {
		n, rstatus := lim.Read(inBuf)
		switch rstatus {
		case StatusOK:
		case StatusEndOfStream:
			eof = true
		default:
			return rstatus
		}
		chunk := inBuf[:n]

		for {
			var (
				consumed, produced int
				pstatus             Status
			)
			finishing := eof && len(chunk) == 0
			if finishing {
				produced, pstatus = stream.Finish(outBuf)
			} else {
				consumed, produced, pstatus = stream.Process(outBuf, chunk)
			}
			if pstatus != StatusOK && pstatus != StatusProcessing && pstatus != StatusEndOfStream {
				return pstatus
			}

			if wstatus := drainAll(lim, outBuf[:produced]); wstatus != StatusOK {
				return wstatus
			}
			if lim.limitsOutput() && lim.remaining == 0 {
				return StatusOK
			}

			chunk = chunk[consumed:]
			if pstatus == StatusEndOfStream {
				return StatusOK
			}
			if pstatus != StatusProcessing && (finishing || !eof) {
				break
			}
		}
	}
	return StatusOK
}

// mappedBlockIO implements the mapped-I/O variant of the stream loop for
// the compress direction, where the source's total length is known
// upfront and so can be mapped once, read-only, and copied from into the
// loop's read buffer. Decompression's growing, unknown-length output is
// left to the plain buffered loop.
type mappedBlockIO struct {
	handle mmapReadable
	data   []byte
	pos    int
	failed bool
}

// newMappedBlockIO returns nil (meaning: don't attempt the mapped
// variant) unless dir is Compress and source supports mmap.
func newMappedBlockIO(sink, source interface{}, dir Direction) *mappedBlockIO {
	if dir != Compress {
		return nil
	}
	sr, ok := source.(mmapReadable)
	if !ok {
		return nil
	}
	return &mappedBlockIO{handle: sr}
}

func (mb *mappedBlockIO) wrapRead(fallback ReadFunc) ReadFunc {
	return func(p []byte) (int, Status) {
		if mb.failed {
			return fallback(p)
		}
		if mb.data == nil {
			size, ok := sourceSize(mb.handle)
			if !ok {
				mb.failed = true
				return fallback(p)
			}
			data, err := mmapOpen(mb.handle, int(size), false)
			if err != nil {
				mb.failed = true
				return fallback(p)
			}
			mb.data = data
		}
		if mb.pos >= len(mb.data) {
			return 0, StatusEndOfStream
		}
		want := len(p)
		if want > fileBufSize {
			want = fileBufSize
		}
		end := mb.pos + want
		if end > len(mb.data) {
			end = len(mb.data)
		}
		n := copy(p, mb.data[mb.pos:end])
		mb.pos += n
		return n, StatusOK
	}
}

func (mb *mappedBlockIO) close() {
	if mb != nil && mb.data != nil {
		mmapClose(mb.data)
		mb.data = nil
	}
}
