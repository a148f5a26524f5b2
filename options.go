package squash

// Options is the opaque bundle passed to codec vtable entries, replacing
// the C library's NULL-sentinel varargs convention (spec.md Design
// Notes). Each codec package defines its own concrete type implementing
// this marker interface; the engine never inspects Options itself beyond
// the optional LevelOption extension below.
type Options interface {
	isSquashOptions()
}

// OptionsMarker is embedded by a codec package's own Options type to
// satisfy the Options interface; isSquashOptions is unexported, so
// embedding (rather than each codec package redeclaring the method
// itself) is the only way a type defined outside this package can
// implement Options.
type OptionsMarker struct{}

func (OptionsMarker) isSquashOptions() {}

// LevelOption lets a codec's own Options type expose a compression level
// through the same accessor the generic WithLevel knob uses, so codec
// implementations can read the level uniformly regardless of which
// concrete Options type the caller supplied.
type LevelOption interface {
	CompressionLevel() int
}

// LevelFromOptions returns the level recorded in opts if it implements
// LevelOption and the value is non-zero, or def otherwise.
func LevelFromOptions(opts Options, def int) int {
	if lo, ok := opts.(LevelOption); ok {
		if l := lo.CompressionLevel(); l != 0 {
			return l
		}
	}
	return def
}

// Option configures the small set of cross-codec knobs reachable from
// the varargs public entry points (Splice, SpliceCodec). Anything
// codec-specific requires going through SpliceWithOptions /
// SpliceCodecWithOptions with that codec's own Options value.
type Option func(*genericOptions)

// WithLevel sets the compression level on the generic options bundle
// built by the varargs entry points.
func WithLevel(level int) Option {
	return func(o *genericOptions) { o.level = level }
}

type genericOptions struct {
	level int
}

func (genericOptions) isSquashOptions() {}

func (o genericOptions) CompressionLevel() int { return o.level }

func buildOptions(opts []Option) Options {
	g := &genericOptions{}
	for _, opt := range opts {
		opt(g)
	}
	return g
}
