package zstd

import (
	"testing"

	realzstd "github.com/klauspost/compress/zstd"
)

func encodeFrame(t *testing.T, data []byte, opts ...realzstd.EOption) []byte {
	t.Helper()
	enc, err := realzstd.NewWriter(nil, opts...)
	if err != nil {
		t.Fatal(err)
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil)
}

func TestFrameContentSizeKnownLength(t *testing.T) {
	data := make([]byte, 10000)
	for i := range data {
		data[i] = byte(i)
	}
	frame := encodeFrame(t, data)

	size, ok := frameContentSize(frame)
	if !ok {
		t.Fatal("expected a declared content size")
	}
	if size != int64(len(data)) {
		t.Fatalf("frameContentSize = %d, want %d", size, len(data))
	}
}

func TestFrameContentSizeSmallSingleByteField(t *testing.T) {
	// Content sizes under 256 bytes fit the single-segment 1-byte FCS
	// field (Frame_Content_Size_flag == 0, Single_Segment_flag == 1).
	data := []byte("short payload")
	frame := encodeFrame(t, data)

	size, ok := frameContentSize(frame)
	if !ok || size != int64(len(data)) {
		t.Fatalf("frameContentSize = %d, %v, want %d, true", size, ok, len(data))
	}
}

func TestFrameContentSizeRejectsBadMagic(t *testing.T) {
	if _, ok := frameContentSize([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}); ok {
		t.Fatal("expected no content size for data with a bad magic number")
	}
}

func TestFrameContentSizeTooShort(t *testing.T) {
	if _, ok := frameContentSize([]byte{0x28, 0xb5, 0x2f}); ok {
		t.Fatal("expected no content size for a truncated header")
	}
}
