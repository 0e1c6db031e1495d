package xentropy

// DefaultBase is the logarithm base used when WithBase is not given.
const DefaultBase = 10.0

type options struct {
	base float64
	mode Mode
}

type Option func(*options)

// WithBase sets the logarithm base. The base is not validated: a base <= 0
// or equal to 1 produces NaN or infinite results.
func WithBase(base float64) Option {
	return func(o *options) {
		o.base = base
	}
}

// WithMode sets how the dataset is interpreted. Defaults to ProbabilityBased.
func WithMode(mode Mode) Option {
	return func(o *options) {
		o.mode = mode
	}
}

func newOptions(opts []Option) options {
	o := options{
		base: DefaultBase,
		mode: ProbabilityBased,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
