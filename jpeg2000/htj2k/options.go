package htj2k

import "fmt"

// Options configures a Decoder
type Options struct {
	// Engine opens the decoding engine. When nil the engine is looked up in
	// the default registry by EngineName.
	Engine Opener

	// EngineName selects a registered engine. Empty selects the first one.
	EngineName string

	// MaxSamples caps Width*Height*Components of an image. 0 means no cap
	// beyond what the platform can address.
	MaxSamples int
}

// DefaultOptions returns options that use the first registered engine
// without a sample cap
func DefaultOptions() *Options {
	return &Options{}
}

// Validate checks the options
func (o *Options) Validate() error {
	if o.MaxSamples < 0 {
		return fmt.Errorf("htj2k: MaxSamples must not be negative, got %d", o.MaxSamples)
	}
	return nil
}

// WithEngine sets the engine opener and returns the options for chaining
func (o *Options) WithEngine(open Opener) *Options {
	o.Engine = open
	return o
}

// WithEngineName sets the registered engine name and returns the options for chaining
func (o *Options) WithEngineName(name string) *Options {
	o.EngineName = name
	return o
}

// WithMaxSamples sets the sample cap and returns the options for chaining
func (o *Options) WithMaxSamples(n int) *Options {
	o.MaxSamples = n
	return o
}

// opener resolves the engine to use
func (o *Options) opener() (Opener, error) {
	if o.Engine != nil {
		return o.Engine, nil
	}
	return LookupEngine(o.EngineName)
}
