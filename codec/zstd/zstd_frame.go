package zstd

// Direct zstd frame-header parsing of the Frame_Content_Size field. This
// is pure wire-format decoding (RFC 8878 §3.1.1.1), not a library-shaped
// concern: klauspost/compress/zstd exposes no public accessor for a
// frame's declared content size short of fully decoding it, so squash
// parses the frame header itself to answer UncompressedSize cheaply.
const zstdMagicNumber = 0xFD2FB528

// frameContentSize returns the Frame_Content_Size declared in a zstd
// frame's header, and whether one was present. A frame with no declared
// size (streaming compression without a known length) reports ok=false.
func frameContentSize(data []byte) (size int64, ok bool) {
	if len(data) < 5 {
		return 0, false
	}
	magic := uint32(data[0]) | uint32(data[1])<<8 | uint32(data[2])<<16 | uint32(data[3])<<24
	if magic != zstdMagicNumber {
		return 0, false
	}
	descriptor := data[4]
	fcsFlag := descriptor >> 6
	singleSegment := descriptor&(1<<5) != 0
	dictIDFlag := descriptor & 0x3

	pos := 5
	if !singleSegment {
		pos++ // Window_Descriptor
	}

	var dictIDLen int
	switch dictIDFlag {
	case 0:
		dictIDLen = 0
	case 1:
		dictIDLen = 1
	case 2:
		dictIDLen = 2
	case 3:
		dictIDLen = 4
	}
	pos += dictIDLen

	var fcsLen int
	switch fcsFlag {
	case 0:
		if singleSegment {
			fcsLen = 1
		} else {
			return 0, false
		}
	case 1:
		fcsLen = 2
	case 2:
		fcsLen = 4
	case 3:
		fcsLen = 8
	}

	if len(data) < pos+fcsLen {
		return 0, false
	}

	var value uint64
	for i := 0; i < fcsLen; i++ {
		value |= uint64(data[pos+i]) << (8 * uint(i))
	}
	if fcsFlag == 1 {
		value += 256
	}

	return int64(value), true
}
