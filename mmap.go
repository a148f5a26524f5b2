package squash

import (
	"errors"
	"io/fs"
)

var errMmapUnsupported = errors.New("squash: mmap not supported on this platform or handle")

type truncater interface {
	Truncate(size int64) error
}

// mmapReadable is satisfied by file-like handles the mapped window can
// map directly (e.g. *os.File), grounded on
// _examples/other_examples/xDarkicex-zippy__splice_linux.go's use of a
// raw fd for splice(2).
type mmapReadable interface {
	Fd() uintptr
	Stat() (fs.FileInfo, error)
}

// mmapWritable additionally supports resizing, needed to grow a file to
// the window's requested length before mapping it writable, and to
// shrink it back to the window's committed length afterwards.
type mmapWritable interface {
	mmapReadable
	truncater
}

// mappedWindow is the mapped-file window described in spec.md §3/§4.2.
type mappedWindow struct {
	handle   mmapReadable
	data     []byte
	length   int
	writable bool
	origSize int64
}

// newMappedWindow maps length bytes of handle. For a writable window,
// handle is truncated up to length first (recorded so a discarded
// window can restore the original size), and unix mmap semantics
// require the backing file be at least that large.
func newMappedWindow(handle mmapReadable, length int, writable bool) (*mappedWindow, error) {
	w := &mappedWindow{handle: handle, length: length, writable: writable}

	if writable {
		wh, ok := handle.(mmapWritable)
		if !ok {
			return nil, errMmapUnsupported
		}
		info, err := handle.Stat()
		if err != nil {
			return nil, err
		}
		w.origSize = info.Size()
		if err := wh.Truncate(int64(length)); err != nil {
			return nil, err
		}
	}

	data, err := mmapOpen(handle, length, writable)
	if err != nil {
		if writable {
			handle.(mmapWritable).Truncate(w.origSize)
		}
		return nil, err
	}
	w.data = data
	return w, nil
}

// destroy releases the window. When commit is true and the window is
// writable, the file is resized to w.length (which the caller may have
// shrunk from the value passed to newMappedWindow, e.g. once the actual
// compressed size is known). When commit is false, a writable window's
// backing file is restored to its pre-map size, so a discarded window
// leaves no trace for the caller's fallback tier to trip over.
func (w *mappedWindow) destroy(commit bool) error {
	if w == nil || w.data == nil {
		return nil
	}
	data := w.data
	w.data = nil

	var err error
	if w.writable {
		wh := w.handle.(mmapWritable)
		if commit {
			err = wh.Truncate(int64(w.length))
		} else {
			err = wh.Truncate(w.origSize)
		}
	}
	if cerr := mmapClose(data); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

func sourceSize(handle mmapReadable) (int64, bool) {
	info, err := handle.Stat()
	if err != nil {
		return 0, false
	}
	return info.Size(), true
}
