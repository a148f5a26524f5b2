package squash

import (
	"bytes"
	"io"
	"sync"
)

// WrapCompressor adapts a push-style io.WriteCloser compressor (the
// shape compress/gzip, pierrec/lz4, and andybalholm/brotli all expose)
// into a Stream. Writes into the compressor land in an internal buffer
// that Process/Finish drain into the caller's dst, so nothing requires
// a background goroutine on the compress side.
func WrapCompressor(w io.WriteCloser, out *bytes.Buffer) Stream {
	return &compressStream{w: w, out: out}
}

type compressStream struct {
	w      io.WriteCloser
	out    *bytes.Buffer
	closed bool
}

func (s *compressStream) Process(dst, src []byte) (int, int, Status) {
	consumed := 0
	if len(src) > 0 {
		n, err := s.w.Write(src)
		consumed = n
		if err != nil {
			return consumed, 0, StatusFailed
		}
	}
	produced, _ := s.out.Read(dst)
	return consumed, produced, StatusOK
}

// Finish closes the underlying writer exactly once, on the first call,
// regardless of what's already buffered in out: a flate-based writer
// (gzip, and lz4/brotli through the same adaptor) only emits its final
// block and trailer on Close, so skipping it whenever out happens to be
// nonempty truncates the stream.
func (s *compressStream) Finish(dst []byte) (int, Status) {
	if !s.closed {
		s.closed = true
		if err := s.w.Close(); err != nil {
			return 0, StatusFailed
		}
	}
	if s.out.Len() > len(dst) {
		n, _ := s.out.Read(dst)
		return n, StatusProcessing
	}
	n, _ := s.out.Read(dst)
	return n, StatusEndOfStream
}

func (s *compressStream) Close() error { return nil }

// WrapDecompressor adapts a pull-style decompressor constructor (the
// shape gzip.NewReader, lz4.NewReader, brotli.NewReader all share) into
// a Stream. Because these readers pull from their source synchronously,
// and compress/flate-derived readers cannot recover from a transient
// "no input yet" error, the reader itself runs on a background goroutine
// fed through a blocking queue. Process is still synchronous from the
// caller's point of view: it pushes src and then waits for that
// goroutine to drain the input queue (or exit) before draining out, so
// the produced count it returns reflects everything src could yield
// rather than whatever happened to already be sitting in out.
func WrapDecompressor(newReader func(io.Reader) (io.ReadCloser, error)) Stream {
	s := &decompressStream{
		in:   newByteQueue(),
		out:  newByteQueue(),
		done: make(chan struct{}),
	}
	go s.run(newReader)
	return s
}

type byteQueue struct {
	mu         sync.Mutex
	cond       *sync.Cond
	buf        bytes.Buffer
	closed     bool
	readerDone bool
}

func newByteQueue() *byteQueue {
	q := &byteQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

func (q *byteQueue) push(p []byte) {
	q.mu.Lock()
	q.buf.Write(p)
	q.cond.Broadcast()
	q.mu.Unlock()
}

func (q *byteQueue) closeInput() {
	q.mu.Lock()
	q.closed = true
	q.cond.Broadcast()
	q.mu.Unlock()
}

// Read implements io.Reader: blocks until data is available or the
// queue has been closed with nothing left to deliver.
func (q *byteQueue) Read(p []byte) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for q.buf.Len() == 0 && !q.closed {
		q.cond.Wait()
	}
	if q.buf.Len() == 0 {
		return 0, io.EOF
	}
	n, _ := q.buf.Read(p)
	q.cond.Broadcast()
	return n, nil
}

// drain is a non-blocking best-effort read of whatever is queued right now.
func (q *byteQueue) drain(p []byte) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n, _ := q.buf.Read(p)
	return n
}

func (q *byteQueue) pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.buf.Len()
}

// markReaderDone records that the goroutine reading from this queue has
// exited, waking anything blocked in waitDrained so it doesn't wait
// forever for input that will never be consumed.
func (q *byteQueue) markReaderDone() {
	q.mu.Lock()
	q.readerDone = true
	q.cond.Broadcast()
	q.mu.Unlock()
}

// waitDrained blocks until the queue is empty or its reader has exited.
func (q *byteQueue) waitDrained() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for q.buf.Len() > 0 && !q.readerDone {
		q.cond.Wait()
	}
}

type decompressStream struct {
	in, out *byteQueue
	done    chan struct{}
	runErr  error
}

func (s *decompressStream) run(newReader func(io.Reader) (io.ReadCloser, error)) {
	defer close(s.done)
	defer s.in.markReaderDone()
	r, err := newReader(s.in)
	if err != nil {
		s.runErr = err
		return
	}
	buf := make([]byte, 32*1024)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			s.out.push(buf[:n])
		}
		if err != nil {
			if err != io.EOF {
				s.runErr = err
			}
			r.Close()
			return
		}
	}
}

func (s *decompressStream) Process(dst, src []byte) (int, int, Status) {
	consumed := 0
	if len(src) > 0 {
		s.in.push(src)
		consumed = len(src)
	}
	// Wait for the reader goroutine to consume everything just pushed
	// (or exit) before draining, so produced reflects what src actually
	// yielded instead of a scheduling-dependent snapshot of out. This is
	// what lets the caller's post-Process budget check act on real
	// progress instead of stopping only once the whole source is read.
	s.in.waitDrained()
	produced := s.out.drain(dst)
	if s.runErr != nil {
		return consumed, produced, StatusFailed
	}
	return consumed, produced, StatusOK
}

func (s *decompressStream) Finish(dst []byte) (int, Status) {
	s.in.closeInput()
	<-s.done
	produced := s.out.drain(dst)
	if s.runErr != nil {
		return produced, StatusFailed
	}
	if produced == len(dst) && s.out.pending() > 0 {
		return produced, StatusProcessing
	}
	return produced, StatusEndOfStream
}

func (s *decompressStream) Close() error {
	s.in.closeInput()
	<-s.done
	return nil
}
