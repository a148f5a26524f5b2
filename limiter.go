package squash

// limitedIO enforces an uncompressed-byte budget on one side of a
// splice call (spec.md §4.3), ported from
// squash_splice_custom_limited_read/_write in the C library. It also
// doubles as the running totalIn/totalOut counter used to compute a
// splice call's return value, regardless of whether a budget applies.
type limitedIO struct {
	dir       Direction
	read      ReadFunc
	write     WriteFunc
	remaining int64
	unlimited bool

	totalIn  int64
	totalOut int64
}

// newLimitedIO wraps read and write. length == 0 means unlimited;
// otherwise input is bounded on compress, output is bounded on decompress.
func newLimitedIO(dir Direction, read ReadFunc, write WriteFunc, length int64) *limitedIO {
	return &limitedIO{dir: dir, read: read, write: write, remaining: length, unlimited: length == 0}
}

func (l *limitedIO) limitsInput() bool  { return !l.unlimited && l.dir == Compress }
func (l *limitedIO) limitsOutput() bool { return !l.unlimited && l.dir == Decompress }

func (l *limitedIO) Read(p []byte) (int, Status) {
	if l.limitsInput() {
		if l.remaining == 0 {
			return 0, StatusEndOfStream
		}
		if int64(len(p)) > l.remaining {
			p = p[:l.remaining]
		}
	}
	n, status := l.read(p)
	if n > 0 {
		l.totalIn += int64(n)
		if l.limitsInput() {
			l.remaining -= int64(n)
		}
	}
	return n, status
}

func (l *limitedIO) Write(p []byte) (int, Status) {
	if l.limitsOutput() {
		if int64(len(p)) > l.remaining {
			p = p[:l.remaining]
		}
		if len(p) == 0 {
			return 0, StatusEndOfStream
		}
	}
	n, status := l.write(p)
	if n > 0 {
		l.totalOut += int64(n)
		if l.limitsOutput() {
			l.remaining -= int64(n)
		}
	}
	return n, status
}

// result returns the number of uncompressed bytes this call
// transferred: input consumed for Compress, output produced for
// Decompress.
func (l *limitedIO) result() int64 {
	if l.dir == Compress {
		return l.totalIn
	}
	return l.totalOut
}
