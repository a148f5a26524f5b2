package squash

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"time"
)

// MemFile is an in-memory absfs.File, adapted from the teacher's
// memfs.go for use as a splice endpoint in tests without touching a
// real filesystem. It deliberately implements neither Fd() nor a real
// path Name(), so the dispatcher's mmap tier and advisory locking both
// skip it cleanly, letting tests exercise the stream/accumulator tiers
// on demand.
type MemFile struct {
	name    string
	data    *bytes.Buffer
	mode    fs.FileMode
	modTime time.Time
	pos     int64
	closed  bool
}

// NewMemFile returns an empty in-memory file named name.
func NewMemFile(name string) *MemFile {
	return &MemFile{name: name, data: new(bytes.Buffer), modTime: time.Now()}
}

// NewMemFileBytes returns an in-memory file pre-populated with data.
func NewMemFileBytes(name string, data []byte) *MemFile {
	buf := new(bytes.Buffer)
	buf.Write(data)
	return &MemFile{name: name, data: buf, modTime: time.Now()}
}

// Bytes returns the file's current contents.
func (mf *MemFile) Bytes() []byte {
	return append([]byte(nil), mf.data.Bytes()...)
}

func (mf *MemFile) Read(p []byte) (int, error) {
	if mf.closed {
		return 0, fs.ErrClosed
	}
	if mf.pos >= int64(mf.data.Len()) {
		return 0, io.EOF
	}
	n := copy(p, mf.data.Bytes()[mf.pos:])
	mf.pos += int64(n)
	return n, nil
}

func (mf *MemFile) Write(p []byte) (int, error) {
	if mf.closed {
		return 0, fs.ErrClosed
	}
	n, err := mf.data.Write(p)
	mf.modTime = time.Now()
	return n, err
}

func (mf *MemFile) Close() error {
	mf.closed = true
	return nil
}

func (mf *MemFile) Seek(offset int64, whence int) (int64, error) {
	if mf.closed {
		return 0, fs.ErrClosed
	}
	var newPos int64
	switch whence {
	case io.SeekStart:
		newPos = offset
	case io.SeekCurrent:
		newPos = mf.pos + offset
	case io.SeekEnd:
		newPos = int64(mf.data.Len()) + offset
	default:
		return 0, errors.New("squash: invalid whence")
	}
	if newPos < 0 {
		return 0, errors.New("squash: negative position")
	}
	mf.pos = newPos
	return newPos, nil
}

func (mf *MemFile) Stat() (fs.FileInfo, error) {
	return &memFileInfo{name: mf.name, size: int64(mf.data.Len()), mode: mf.mode, modTime: mf.modTime}, nil
}

func (mf *MemFile) Sync() error { return nil }
func (mf *MemFile) Name() string { return mf.name }

func (mf *MemFile) ReadAt(b []byte, off int64) (int, error) {
	if mf.closed {
		return 0, fs.ErrClosed
	}
	if off < 0 {
		return 0, errors.New("squash: negative offset")
	}
	data := mf.data.Bytes()
	if off >= int64(len(data)) {
		return 0, io.EOF
	}
	n := copy(b, data[off:])
	if n < len(b) {
		return n, io.EOF
	}
	return n, nil
}

func (mf *MemFile) WriteAt(b []byte, off int64) (int, error) {
	if mf.closed {
		return 0, fs.ErrClosed
	}
	if off < 0 {
		return 0, errors.New("squash: negative offset")
	}
	data := mf.data.Bytes()
	needed := int(off) + len(b)
	if needed > len(data) {
		grown := make([]byte, needed)
		copy(grown, data)
		mf.data = bytes.NewBuffer(grown)
		data = mf.data.Bytes()
	}
	n := copy(data[off:], b)
	mf.modTime = time.Now()
	return n, nil
}

func (mf *MemFile) WriteString(s string) (int, error) {
	return mf.Write([]byte(s))
}

func (mf *MemFile) Truncate(size int64) error {
	if mf.closed {
		return fs.ErrClosed
	}
	data := mf.data.Bytes()
	switch {
	case size < int64(len(data)):
		mf.data = bytes.NewBuffer(data[:size])
	case size > int64(len(data)):
		grown := make([]byte, size)
		copy(grown, data)
		mf.data = bytes.NewBuffer(grown)
	}
	mf.modTime = time.Now()
	return nil
}

func (mf *MemFile) Readdir(n int) ([]os.FileInfo, error) {
	return nil, os.ErrInvalid
}

func (mf *MemFile) Readdirnames(n int) ([]string, error) {
	return nil, os.ErrInvalid
}

type memFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
}

func (fi *memFileInfo) Name() string       { return fi.name }
func (fi *memFileInfo) Size() int64        { return fi.size }
func (fi *memFileInfo) Mode() fs.FileMode  { return fi.mode }
func (fi *memFileInfo) ModTime() time.Time { return fi.modTime }
func (fi *memFileInfo) IsDir() bool        { return fi.mode.IsDir() }
func (fi *memFileInfo) Sys() interface{}   { return nil }
