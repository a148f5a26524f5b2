package squash

import (
	"sync"
	"sync/atomic"
)

// Stats tracks aggregate splice activity, adapted from the teacher's
// atomic-counter Stats type (compressfs.go) and repurposed from
// per-file compression bookkeeping to per-codec splice bookkeeping.
type Stats struct {
	TotalSplices      int64
	TotalBytesIn      int64
	TotalBytesOut     int64
	TotalErrors       int64
	codecCounts       sync.Map // codec name -> *int64
}

func (s *Stats) record(codecName string, dir Direction, in, out int64, err error) {
	atomic.AddInt64(&s.TotalSplices, 1)
	atomic.AddInt64(&s.TotalBytesIn, in)
	atomic.AddInt64(&s.TotalBytesOut, out)
	if err != nil {
		atomic.AddInt64(&s.TotalErrors, 1)
	}
	counter, _ := s.codecCounts.LoadOrStore(codecName, new(int64))
	atomic.AddInt64(counter.(*int64), 1)
}

// CodecCount returns how many splice calls have used codecName.
func (s *Stats) CodecCount(codecName string) int64 {
	v, ok := s.codecCounts.Load(codecName)
	if !ok {
		return 0
	}
	return atomic.LoadInt64(v.(*int64))
}

// CompressionRatio returns TotalBytesOut/TotalBytesIn across every
// splice recorded so far, or 0 if nothing has been recorded.
func (s *Stats) CompressionRatio() float64 {
	in := atomic.LoadInt64(&s.TotalBytesIn)
	if in == 0 {
		return 0
	}
	return float64(atomic.LoadInt64(&s.TotalBytesOut)) / float64(in)
}

// Reset zeroes every counter.
func (s *Stats) Reset() {
	atomic.StoreInt64(&s.TotalSplices, 0)
	atomic.StoreInt64(&s.TotalBytesIn, 0)
	atomic.StoreInt64(&s.TotalBytesOut, 0)
	atomic.StoreInt64(&s.TotalErrors, 0)
	s.codecCounts = sync.Map{}
}

var globalStats Stats

// GlobalStats returns the process-wide Stats instance that the
// file-backed public entry points in file.go record into.
// SpliceCustomCodecWithOptions does not record into it.
func GlobalStats() *Stats { return &globalStats }
