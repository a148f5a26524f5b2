package squash

import (
	"os"
	"sync"
)

type mmapPreference int

const (
	prefNo mmapPreference = iota
	prefYes
	prefAlways
)

var (
	mmapPrefOnce sync.Once
	mmapPref     mmapPreference
)

// resolveMmapPreference reads SQUASH_MAP_SPLICE exactly once per
// process (spec.md §5), mirroring squash_splice_detect_once: unset or
// "yes" means prefer mmap for non-streaming codecs, "always" forces it
// even over a codec's own stream tier, "no" disables it entirely.
func resolveMmapPreference() mmapPreference {
	mmapPrefOnce.Do(func() {
		switch os.Getenv("SQUASH_MAP_SPLICE") {
		case "no":
			mmapPref = prefNo
		case "always":
			mmapPref = prefAlways
		default:
			mmapPref = prefYes
		}
	})
	return mmapPref
}

// spliceCustom is the generic, callback-based dispatcher (spec.md §4.1),
// ported from squash_splice_custom_codec_with_options. It has no notion
// of file descriptors, so it never attempts the mmap tier — that only
// applies at the file-backed entry points in file.go.
func spliceCustom(codec *Codec, dir Direction, write WriteFunc, read ReadFunc, length int64, opts Options) (int64, error) {
	if codec == nil {
		return 0, ErrBadParam
	}
	lim := newLimitedIO(dir, read, write, length)

	var status Status
	switch {
	case codec.hasNativeSplice():
		status = codec.Splice(dir, lim.Write, lim.Read, opts)
	case codec.hasStream():
		status = runStreamLoop(codec, dir, lim, opts, nil)
	case codec.hasBuffer():
		status = runAccumulator(codec, dir, lim, opts)
	default:
		return 0, ErrNoCapability
	}

	if !status.terminal() {
		return lim.result(), statusToError(status)
	}
	return lim.result(), nil
}

// spliceFile is the file-backed dispatcher (spec.md §4.1/§4.2),
// ported from squash_splice_codec_with_options plus the mapped-block
// variant of squash_splice_stream. sink and source must additionally
// satisfy whatever read/write bridging file.go supplies.
func spliceFile(codec *Codec, dir Direction, sink, source fileHandle, length int64, opts Options) (int64, error) {
	if codec == nil {
		return 0, ErrBadParam
	}

	unlock, err := lockEndpoints(sink, source)
	if err != nil {
		return 0, err
	}
	defer unlock()

	read := fileReadFunc(source)
	write := fileWriteFunc(sink)

	if codec.hasNativeSplice() {
		return spliceCustom(codec, dir, write, read, length, opts)
	}

	pref := resolveMmapPreference()
	if pref == prefAlways || (pref == prefYes && !codec.hasStream()) {
		if n, status, attempted := mmapOneShot(codec, dir, sink, source, length, opts); attempted && status == StatusOK {
			return n, nil
		}
	}

	lim := newLimitedIO(dir, read, write, length)
	var status Status
	switch {
	case codec.hasStream():
		mb := newMappedBlockIO(sink, source, dir)
		status = runStreamLoop(codec, dir, lim, opts, mb)
	case codec.hasBuffer():
		status = runAccumulator(codec, dir, lim, opts)
	default:
		return 0, ErrNoCapability
	}

	if !status.terminal() {
		return lim.result(), statusToError(status)
	}
	return lim.result(), nil
}
