//go:build !unix

package squash

func mmapOpen(handle mmapReadable, length int, writable bool) ([]byte, error) {
	return nil, errMmapUnsupported
}

func mmapClose(data []byte) error {
	return nil
}

func mmapPageSize() int {
	return 4096
}
