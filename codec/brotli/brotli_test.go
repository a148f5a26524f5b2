package brotli_test

import (
	"bytes"
	"testing"

	"github.com/absfs/squash"
	"github.com/absfs/squash/codec/brotli"
)

func TestBrotliBufferRoundTrip(t *testing.T) {
	codec, ok := squash.Lookup("brotli")
	if !ok {
		t.Fatal("brotli codec not registered")
	}

	src := bytes.Repeat([]byte("brotli round trip payload "), 300)
	dst := make([]byte, codec.MaxCompressedSize(int64(len(src))))
	n, status := codec.CompressBuffer(dst, src, brotli.New(brotli.WithLevel(5)))
	if status != squash.StatusOK {
		t.Fatalf("compress status = %v", status)
	}

	out := make([]byte, len(src))
	n2, status := codec.DecompressBuffer(out, dst[:n], nil)
	if status != squash.StatusOK {
		t.Fatalf("decompress status = %v", status)
	}
	if !bytes.Equal(out[:n2], src) {
		t.Fatal("round trip mismatch")
	}
}

func TestBrotliStreamRoundTrip(t *testing.T) {
	codec, ok := squash.Lookup("brotli")
	if !ok || codec.NewStream == nil {
		t.Fatal("expected brotli to implement the stream tier")
	}

	src := bytes.Repeat([]byte("streamed brotli content "), 500)

	enc, status := codec.NewStream(squash.Compress, nil)
	if status != squash.StatusOK {
		t.Fatalf("NewStream compress: %v", status)
	}
	var compressed bytes.Buffer
	for i := 0; i < len(src); i += 89 {
		end := i + 89
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
	for i := 0; i < len(compBytes); i += 67 {
		end := i + 67
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
