package squash

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// extensionByCodec and magicByCodec are the identification tables the
// teacher's extensions.go keyed by its own Algorithm enum; here they key
// by registry name so newly registered codecs can extend detection just
// by adding an entry, without touching a fixed enum.
var extensionByCodec = map[string]string{
	"gzip":   ".gz",
	"zstd":   ".zst",
	"lz4":    ".lz4",
	"brotli": ".br",
	"snappy": ".sz",
}

var codecByExtension = map[string]string{
	".gz":     "gzip",
	".gzip":   "gzip",
	".zst":    "zstd",
	".zstd":   "zstd",
	".lz4":    "lz4",
	".br":     "brotli",
	".sz":     "snappy",
	".snappy": "snappy",
}

var magicByCodec = map[string][]byte{
	"gzip":   {0x1f, 0x8b},
	"zstd":   {0x28, 0xb5, 0x2f, 0xfd},
	"lz4":    {0x04, 0x22, 0x4d, 0x18},
	"brotli": {0xce, 0xb2, 0xcf, 0x81},
	"snappy": {0xff, 0x06, 0x00, 0x00, 0x73, 0x4e, 0x61, 0x50},
}

// ExtensionForCodec returns the conventional file extension for a
// registered codec name, or "" if none is known.
func ExtensionForCodec(name string) string {
	return extensionByCodec[name]
}

// CodecForExtension maps a file extension (with or without a leading
// dot, case-insensitively) back to a registered codec name.
func CodecForExtension(ext string) (string, bool) {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	name, ok := codecByExtension[strings.ToLower(ext)]
	return name, ok
}

// DetectCodecFromName guesses a codec from a file's extension.
func DetectCodecFromName(name string) (string, bool) {
	return CodecForExtension(filepath.Ext(name))
}

// DetectCodec sniffs r's leading bytes for a known codec's magic number.
// It consumes up to 10 bytes from r; callers that need those bytes back
// should wrap r in a bufio.Reader (Peek) or io.MultiReader before this
// call.
func DetectCodec(r io.Reader) (string, error) {
	buf := make([]byte, 10)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.ErrUnexpectedEOF {
		return "", err
	}
	name, _ := IsCompressed(buf[:n])
	return name, nil
}

// IsCompressed reports whether data's leading bytes match a known
// codec's magic number.
func IsCompressed(data []byte) (string, bool) {
	for name, magic := range magicByCodec {
		if len(data) >= len(magic) && bytes.Equal(data[:len(magic)], magic) {
			return name, true
		}
	}
	return "", false
}

// AddCodecExtension appends (or, with replace, swaps in) the codec's
// conventional extension on name.
func AddCodecExtension(name, codec string, replace bool) string {
	ext := ExtensionForCodec(codec)
	if ext == "" {
		return name
	}
	if replace {
		base := strings.TrimSuffix(name, filepath.Ext(name))
		return base + ext
	}
	return name + ext
}

// StripCodecExtension removes a recognized compression extension from
// name, reporting which codec it named.
func StripCodecExtension(name string) (stripped, codec string, ok bool) {
	ext := strings.ToLower(filepath.Ext(name))
	codec, ok = codecByExtension[ext]
	if !ok {
		return name, "", false
	}
	return strings.TrimSuffix(name, filepath.Ext(name)), codec, true
}
