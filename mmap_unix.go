//go:build unix

package squash

import (
	"sync"

	"golang.org/x/sys/unix"
)

func mmapOpen(handle mmapReadable, length int, writable bool) ([]byte, error) {
	if length == 0 {
		return []byte{}, nil
	}
	prot := unix.PROT_READ
	if writable {
		prot |= unix.PROT_WRITE
	}
	return unix.Mmap(int(handle.Fd()), 0, length, prot, unix.MAP_SHARED)
}

func mmapClose(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	return unix.Munmap(data)
}

// pageSize queries the platform page size once, on first use.
var pageSize = sync.OnceValue(unix.Getpagesize)

func mmapPageSize() int {
	return pageSize()
}
