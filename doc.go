// Package squash is a unified front end for byte-oriented compression
// codecs. Callers compress or decompress data through any registered
// backend — snappy, gzip, lz4, brotli, zstd, or a custom one — without
// needing to know that backend's calling convention, buffer sizing
// rules, or streaming state machine.
//
// The core of the package is the splice engine: it moves bytes between
// two file-like endpoints through an arbitrary codec, choosing at run
// time among three capability tiers a codec may expose (a one-shot
// buffer transform, an incremental stream processor, or a native splice
// callback) and, for file-backed endpoints, between two I/O strategies
// (memory-mapped windows or buffered read/write).
//
// # Quick start
//
//	import (
//	    "github.com/absfs/squash"
//	    _ "github.com/absfs/squash/codec/zstd"
//	)
//
//	n, err := squash.Splice("zstd", squash.Compress, sink, source, 0)
//
// Codec packages register themselves with the global registry from
// their init() function, so importing a codec package for its side
// effect is enough to make it available by name.
//
// # Capability tiers
//
// A codec need only implement the tiers it naturally supports; the
// dispatcher picks the best one available:
//
//   - Native splice: the codec drives the entire transfer itself,
//     bypassing the generic loops (fastest, e.g. zstd via ReadFrom/WriteTo).
//   - Incremental stream: the codec exposes a Process/Finish cursor
//     protocol (gzip, lz4, brotli, zstd).
//   - One-shot buffer: the codec only transforms whole buffers at once
//     (snappy). This is also the fallback used when nothing else applies.
//
// For file-backed endpoints that support memory mapping, the dispatcher
// additionally considers a mapped one-shot path before falling back to
// the tiers above; see SQUASH_MAP_SPLICE.
package squash
