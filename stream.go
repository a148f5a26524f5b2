package squash

// Stream is the incremental processing tier a codec may implement.
// Process consumes up to len(src) bytes and produces up to len(dst)
// bytes; Finish signals that no more input is coming and drains
// whatever the codec still has buffered internally.
//
// Unlike the C library's next_in/avail_in/next_out/avail_out pointer
// pairs, cursors here are plain Go slices: the caller passes exactly the
// window it wants touched, and consumed/produced report how much of it
// was used. The stream-loop driver (splicepath.go), not the Stream
// implementation, owns the running totalIn/totalOut counters.
type Stream interface {
	// Process returns StatusOK once src has been fully absorbed for now,
	// StatusProcessing if the codec has more output to emit from input it
	// has already consumed (call Process again with the same, now
	// shorter, src to keep draining), or a failure status.
	Process(dst, src []byte) (consumed, produced int, status Status)

	// Finish drains any output still buffered inside the codec once no
	// further input will be supplied. It returns StatusEndOfStream once
	// fully drained, StatusProcessing if dst was too small to hold
	// everything in one call, or a failure status.
	Finish(dst []byte) (produced int, status Status)

	// Close releases any codec-private state. Safe to call more than once.
	Close() error
}
