package squash

import "github.com/gofrs/flock"

// fder is implemented by handles backed by a real OS file descriptor;
// in-memory test endpoints (memfile.go) do not implement it, and are
// therefore never locked.
type fder interface {
	Fd() uintptr
}

// lockEndpoints acquires an exclusive advisory lock on every endpoint
// backed by a real file, for the duration of a splice call (spec.md
// §4.1/§5), covering every internal tier the dispatcher may walk, not
// just a native-splice call. Locks are taken against a ".squash-lock"
// sidecar rather than the data file itself, since the data file is
// about to be truncated and mapped by the very call holding the lock.
func lockEndpoints(sink, source fileHandle) (func(), error) {
	var locks []*flock.Flock

	unlock := func() {
		for _, l := range locks {
			l.Unlock()
		}
	}

	for _, f := range []fileHandle{sink, source} {
		if _, ok := f.(fder); !ok {
			continue
		}
		name := f.Name()
		if name == "" {
			continue
		}
		l := flock.New(name + ".squash-lock")
		if err := l.Lock(); err != nil {
			unlock()
			return nil, ErrIO
		}
		locks = append(locks, l)
	}

	return unlock, nil
}
