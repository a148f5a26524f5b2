package gzip_test

import (
	"bytes"
	"testing"

	"github.com/absfs/squash"
	"github.com/absfs/squash/codec/gzip"
)

func TestBufferRoundTrip(t *testing.T) {
	codec, ok := squash.Lookup("gzip")
	if !ok {
		t.Fatal("gzip codec not registered")
	}
	if codec.CompressBuffer == nil || codec.DecompressBuffer == nil {
		t.Fatal("expected gzip to implement the one-shot buffer tier")
	}

	src := bytes.Repeat([]byte("gzip round trip payload "), 200)
	dst := make([]byte, codec.MaxCompressedSize(int64(len(src))))
	n, status := codec.CompressBuffer(dst, src, gzip.New(gzip.WithLevel(6)))
	if status != squash.StatusOK {
		t.Fatalf("compress status = %v", status)
	}
	compressed := dst[:n]

	out := make([]byte, len(src))
	n, status = codec.DecompressBuffer(out, compressed, nil)
	if status != squash.StatusOK {
		t.Fatalf("decompress status = %v", status)
	}
	if !bytes.Equal(out[:n], src) {
		t.Fatal("round trip mismatch")
	}
}

func TestDecompressUndersizedBufferReportsBufferFull(t *testing.T) {
	codec, _ := squash.Lookup("gzip")
	src := bytes.Repeat([]byte("x"), 4096)
	dst := make([]byte, codec.MaxCompressedSize(int64(len(src))))
	n, status := codec.CompressBuffer(dst, src, nil)
	if status != squash.StatusOK {
		t.Fatalf("compress status = %v", status)
	}

	tooSmall := make([]byte, 16)
	_, status = codec.DecompressBuffer(tooSmall, dst[:n], nil)
	if status != squash.StatusBufferFull {
		t.Fatalf("status = %v, want StatusBufferFull", status)
	}
}

func TestStreamRoundTrip(t *testing.T) {
	codec, ok := squash.Lookup("gzip")
	if !ok || codec.NewStream == nil {
		t.Fatal("expected gzip to implement the stream tier")
	}

	src := bytes.Repeat([]byte("streamed gzip content, chunked "), 500)

	enc, status := codec.NewStream(squash.Compress, nil)
	if status != squash.StatusOK {
		t.Fatalf("NewStream compress: %v", status)
	}
	var compressed bytes.Buffer
	chunk := make([]byte, 97) // deliberately awkward size
	for i := 0; i < len(src); i += len(chunk) {
		end := i + len(chunk)
		if end > len(src) {
			end = len(src)
		}
		dst := make([]byte, 4096)
		_, produced, st := enc.Process(dst, src[i:end])
		compressed.Write(dst[:produced])
		if st != squash.StatusOK {
			t.Fatalf("Process: %v", st)
		}
	}
	for {
		dst := make([]byte, 4096)
		produced, st := enc.Finish(dst)
		compressed.Write(dst[:produced])
		if st == squash.StatusEndOfStream {
			break
		}
		if st != squash.StatusProcessing {
			t.Fatalf("Finish: %v", st)
		}
	}

	dec, status := codec.NewStream(squash.Decompress, nil)
	if status != squash.StatusOK {
		t.Fatalf("NewStream decompress: %v", status)
	}
	var out bytes.Buffer
	compBytes := compressed.Bytes()
	for i := 0; i < len(compBytes); i += 61 {
		end := i + 61
		if end > len(compBytes) {
			end = len(compBytes)
		}
		dst := make([]byte, 4096)
		_, produced, st := dec.Process(dst, compBytes[i:end])
		out.Write(dst[:produced])
		if st != squash.StatusOK {
			t.Fatalf("Process decompress: %v", st)
		}
	}
	for {
		dst := make([]byte, 4096)
		produced, st := dec.Finish(dst)
		out.Write(dst[:produced])
		if st == squash.StatusEndOfStream {
			break
		}
		if st != squash.StatusProcessing {
			t.Fatalf("Finish decompress: %v", st)
		}
	}

	if !bytes.Equal(out.Bytes(), src) {
		t.Fatal("stream round trip mismatch")
	}
}
