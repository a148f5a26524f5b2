package squash

import "sync"

var (
	registryMu sync.RWMutex
	registry   = make(map[string]*Codec)
)

// Register adds codec to the process-wide registry under codec.Name. It
// rejects a nil codec, an empty name, a descriptor with no usable
// capability tier, and a name that is already taken.
func Register(codec *Codec) error {
	if codec == nil || codec.Name == "" {
		return ErrBadParam
	}
	if !codec.valid() {
		return ErrNoCapability
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[codec.Name]; exists {
		return ErrDuplicateCodec
	}
	registry[codec.Name] = codec
	return nil
}

// MustRegister is Register, panicking on error. Codec packages call this
// from init() so a failed registration surfaces immediately at import time.
func MustRegister(codec *Codec) {
	if err := Register(codec); err != nil {
		panic("squash: " + err.Error())
	}
}

// Lookup returns the codec registered under name, if any.
func Lookup(name string) (*Codec, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	c, ok := registry[name]
	return c, ok
}

// Codecs returns the names of every currently registered codec.
func Codecs() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
