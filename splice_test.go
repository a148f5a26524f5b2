package squash_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/absfs/squash"
	_ "github.com/absfs/squash/codec/brotli"
	_ "github.com/absfs/squash/codec/gzip"
	_ "github.com/absfs/squash/codec/lz4"
	_ "github.com/absfs/squash/codec/snappy"
	_ "github.com/absfs/squash/codec/zstd"
	"github.com/google/go-cmp/cmp"
)

func payload(n int) []byte {
	// Repetitive-but-not-trivial data so every codec actually shrinks it.
	var buf bytes.Buffer
	for buf.Len() < n {
		buf.WriteString("the quick brown fox jumps over the lazy dog, again and again. ")
	}
	return buf.Bytes()[:n]
}

func TestRoundTripAllCodecs(t *testing.T) {
	data := payload(64 * 1024)

	for _, name := range squash.Codecs() {
		name := name
		t.Run(name, func(t *testing.T) {
			src := squash.NewMemFileBytes("src", data)
			compressed := squash.NewMemFile("dst.compressed")

			n, err := squash.Splice(name, squash.Compress, compressed, src, 0)
			if err != nil {
				t.Fatalf("compress: %v", err)
			}
			if n != int64(len(data)) {
				t.Fatalf("compress reported %d bytes, want %d", n, len(data))
			}

			compressedIn := squash.NewMemFileBytes("dst.compressed", compressed.Bytes())
			out := squash.NewMemFile("out")
			n, err = squash.Splice(name, squash.Decompress, out, compressedIn, 0)
			if err != nil {
				t.Fatalf("decompress: %v", err)
			}
			if n != int64(len(data)) {
				t.Fatalf("decompress reported %d bytes, want %d", n, len(data))
			}
			if diff := cmp.Diff(data, out.Bytes()); diff != "" {
				t.Fatalf("round trip mismatch for %s (-want +got):\n%s", name, diff)
			}
		})
	}
}

func TestRoundTripEmptyInput(t *testing.T) {
	for _, name := range squash.Codecs() {
		name := name
		t.Run(name, func(t *testing.T) {
			src := squash.NewMemFile("empty")
			compressed := squash.NewMemFile("compressed")
			if _, err := squash.Splice(name, squash.Compress, compressed, src, 0); err != nil {
				t.Fatalf("compress empty: %v", err)
			}

			compressedIn := squash.NewMemFileBytes("compressed", compressed.Bytes())
			out := squash.NewMemFile("out")
			if _, err := squash.Splice(name, squash.Decompress, out, compressedIn, 0); err != nil {
				t.Fatalf("decompress empty: %v", err)
			}
			if len(out.Bytes()) != 0 {
				t.Fatalf("expected empty output, got %d bytes", len(out.Bytes()))
			}
		})
	}
}

func TestCompressBudgetTruncates(t *testing.T) {
	data := payload(64 * 1024)
	const budget = 1024

	src := squash.NewMemFileBytes("src", data)
	dst := squash.NewMemFile("dst")

	n, err := squash.Splice("gzip", squash.Compress, dst, src, budget)
	if err != nil {
		t.Fatalf("compress: %v", err)
	}
	if n != budget {
		t.Fatalf("compress reported %d bytes consumed, want exactly the %d byte budget", n, budget)
	}
}

func TestDecompressBudgetTruncatesAndStopsReading(t *testing.T) {
	// Large enough that the compressed stream spans several 512-byte reads.
	data := payload(1 << 20)
	const budget = 512

	src := squash.NewMemFileBytes("src", data)
	compressed := squash.NewMemFile("compressed")
	if _, err := squash.Splice("gzip", squash.Compress, compressed, src, 0); err != nil {
		t.Fatalf("compress: %v", err)
	}

	trackedIn := &countingMemFile{MemFile: squash.NewMemFileBytes("compressed", compressed.Bytes())}
	out := squash.NewMemFile("out")

	n, err := squash.SpliceCodec(mustLookup(t, "gzip"), squash.Decompress, out, trackedIn, budget)
	if err != nil {
		t.Fatalf("decompress: %v", err)
	}
	if n != budget {
		t.Fatalf("decompress reported %d bytes, want exactly the %d byte budget", n, budget)
	}
	if len(out.Bytes()) != budget {
		t.Fatalf("output has %d bytes, want exactly %d", len(out.Bytes()), budget)
	}
	if trackedIn.bytesRead >= int64(len(compressed.Bytes())) {
		t.Fatalf("decompress read the entire %d byte compressed stream to satisfy a %d byte budget; expected early stop", len(compressed.Bytes()), budget)
	}
}

type countingMemFile struct {
	*squash.MemFile
	bytesRead int64
}

func (c *countingMemFile) Read(p []byte) (int, error) {
	n, err := c.MemFile.Read(p)
	c.bytesRead += int64(n)
	return n, err
}

func mustLookup(t *testing.T, name string) *squash.Codec {
	t.Helper()
	codec, ok := squash.Lookup(name)
	if !ok {
		t.Fatalf("codec %q not registered", name)
	}
	return codec
}

// TestAccumulatorPathRoundTrip exercises snappy (buffer tier only) over
// MemFile endpoints, which never implement Fd() and so can never take
// the mmap or mapped-block fast paths regardless of SQUASH_MAP_SPLICE:
// this is always the plain accumulator path.
func TestAccumulatorPathRoundTrip(t *testing.T) {
	data := payload(4096)
	src := squash.NewMemFileBytes("src", data)
	dst := squash.NewMemFile("dst")
	if _, err := squash.Splice("snappy", squash.Compress, dst, src, 0); err != nil {
		t.Fatalf("compress via MemFile (no Fd, always accumulator path): %v", err)
	}

	compressedIn := squash.NewMemFileBytes("dst", dst.Bytes())
	out := squash.NewMemFile("out")
	if _, err := squash.Splice("snappy", squash.Decompress, out, compressedIn, 0); err != nil {
		t.Fatalf("decompress: %v", err)
	}
	if !bytes.Equal(out.Bytes(), data) {
		t.Fatalf("accumulator round trip mismatch")
	}
}

func TestRegisterDuplicateNameRejected(t *testing.T) {
	dupe := &squash.Codec{
		Name: "gzip",
		CompressBuffer: func(dst, src []byte, opts squash.Options) (int, squash.Status) {
			return 0, squash.StatusOK
		},
		DecompressBuffer: func(dst, src []byte, opts squash.Options) (int, squash.Status) {
			return 0, squash.StatusOK
		},
		MaxCompressedSize: func(n int64) int64 { return n },
	}
	if err := squash.Register(dupe); err == nil {
		t.Fatal("expected an error registering a duplicate codec name")
	}
}

func TestLookupUnknownCodec(t *testing.T) {
	_, err := squash.Splice("not-a-real-codec", squash.Compress, squash.NewMemFile("a"), squash.NewMemFile("b"), 0)
	if err != squash.ErrUnknownCodec {
		t.Fatalf("got %v, want ErrUnknownCodec", err)
	}
}

func TestGlobalStatsRecordsSplices(t *testing.T) {
	squash.GlobalStats().Reset()
	data := payload(2048)

	src := squash.NewMemFileBytes("src", data)
	dst := squash.NewMemFile("dst")
	if _, err := squash.Splice("lz4", squash.Compress, dst, src, 0); err != nil {
		t.Fatalf("compress: %v", err)
	}

	stats := squash.GlobalStats()
	if stats.TotalSplices == 0 {
		t.Fatal("expected TotalSplices to be nonzero after a splice")
	}
	if stats.CodecCount("lz4") == 0 {
		t.Fatal("expected lz4's per-codec count to be nonzero")
	}
}

func TestDetectCodecFromExtensionAndMagic(t *testing.T) {
	if got, ok := squash.DetectCodecFromName("archive.tar.gz"); !ok || got != "gzip" {
		t.Fatalf("DetectCodecFromName(.gz) = %q, %v", got, ok)
	}
	if got, ok := squash.DetectCodecFromName("data.zst"); !ok || got != "zstd" {
		t.Fatalf("DetectCodecFromName(.zst) = %q, %v", got, ok)
	}
	if _, ok := squash.DetectCodecFromName("plain.txt"); ok {
		t.Fatal("expected no codec detected for .txt")
	}

	data := payload(1024)
	dst := squash.NewMemFile("dst")
	src := squash.NewMemFileBytes("src", data)
	if _, err := squash.Splice("gzip", squash.Compress, dst, src, 0); err != nil {
		t.Fatalf("compress: %v", err)
	}
	if got, ok := squash.IsCompressed(dst.Bytes()); !ok || got != "gzip" {
		t.Fatalf("IsCompressed = %q, %v, want gzip", got, ok)
	}

	stripped, codec, ok := squash.StripCodecExtension("report.csv.gz")
	if !ok || codec != "gzip" || stripped != "report.csv" {
		t.Fatalf("StripCodecExtension = %q, %q, %v", stripped, codec, ok)
	}
}

func TestOSFileEndpointsUseMmapTier(t *testing.T) {
	dir := t.TempDir()
	data := payload(256 * 1024)

	srcPath := dir + "/src.bin"
	if err := os.WriteFile(srcPath, data, 0o644); err != nil {
		t.Fatal(err)
	}
	src, err := os.Open(srcPath)
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	dstPath := dir + "/dst.snappy"
	dst, err := os.Create(dstPath)
	if err != nil {
		t.Fatal(err)
	}
	defer dst.Close()

	if _, err := squash.Splice("snappy", squash.Compress, dst, src, 0); err != nil {
		t.Fatalf("compress via *os.File (mmap tier): %v", err)
	}

	compressed, err := os.ReadFile(dstPath)
	if err != nil {
		t.Fatal(err)
	}

	compressedIn, err := os.Open(dstPath)
	if err != nil {
		t.Fatal(err)
	}
	defer compressedIn.Close()

	outPath := dir + "/out.bin"
	out, err := os.Create(outPath)
	if err != nil {
		t.Fatal(err)
	}
	defer out.Close()

	if _, err := squash.Splice("snappy", squash.Decompress, out, compressedIn, 0); err != nil {
		t.Fatalf("decompress via *os.File (mmap tier): %v", err)
	}

	got, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, data) {
		t.Fatal("mmap-path round trip mismatch")
	}
	if len(compressed) == 0 {
		t.Fatal("expected nonempty compressed output")
	}
}

func TestStatusStringsAreDescriptive(t *testing.T) {
	if !strings.Contains(squash.StatusBufferFull.String(), "buffer") {
		t.Fatalf("StatusBufferFull.String() = %q", squash.StatusBufferFull.String())
	}
}
