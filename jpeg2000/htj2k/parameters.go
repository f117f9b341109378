package htj2k

import "github.com/cocosip/go-dicom/pkg/imaging/codec"

// Ensure Parameters implements codec.Parameters
var _ codec.Parameters = (*Parameters)(nil)

// Parameters contains decode parameters for the HTJ2K codec
type Parameters struct {
	// Engine names the registered decoding engine.
	// Default: "" (first registered engine)
	Engine string

	// MaxSamples caps Width*Height*SamplesPerPixel of one frame.
	// Default: 0 (no cap)
	MaxSamples int

	// internal storage for compatibility with generic parameter interface
	params map[string]interface{}
}

// NewParameters creates default Parameters for HTJ2K decoding
func NewParameters() *Parameters {
	return &Parameters{
		params: make(map[string]interface{}),
	}
}

// GetParameter retrieves a parameter by name (implements codec.Parameters)
func (p *Parameters) GetParameter(name string) interface{} {
	switch name {
	case "engine":
		return p.Engine
	case "maxSamples":
		return p.MaxSamples
	default:
		return p.params[name]
	}
}

// SetParameter sets a parameter value (implements codec.Parameters)
func (p *Parameters) SetParameter(name string, value interface{}) {
	switch name {
	case "engine":
		if v, ok := value.(string); ok {
			p.Engine = v
		}
	case "maxSamples":
		if v, ok := value.(int); ok {
			p.MaxSamples = v
		}
	default:
		if p.params == nil {
			p.params = make(map[string]interface{})
		}
		p.params[name] = value
	}
}

// Validate checks if the parameters are valid and adjusts them if needed
func (p *Parameters) Validate() error {
	if p.MaxSamples < 0 {
		p.MaxSamples = 0
	}
	return nil
}

// WithEngine sets the engine name and returns the parameters for chaining
func (p *Parameters) WithEngine(name string) *Parameters {
	p.Engine = name
	return p
}

// WithMaxSamples sets the sample cap and returns the parameters for chaining
func (p *Parameters) WithMaxSamples(n int) *Parameters {
	p.MaxSamples = n
	return p
}

// options converts the parameters into decoder options
func (p *Parameters) options() *Options {
	return DefaultOptions().WithEngineName(p.Engine).WithMaxSamples(p.MaxSamples)
}

// parametersFrom reads decode parameters from any codec.Parameters
func parametersFrom(params codec.Parameters) *Parameters {
	if hp, ok := params.(*Parameters); ok && hp != nil {
		return hp
	}
	p := NewParameters()
	if params == nil {
		return p
	}
	if v, ok := params.GetParameter("engine").(string); ok {
		p.Engine = v
	}
	if v, ok := params.GetParameter("maxSamples").(int); ok {
		p.MaxSamples = v
	}
	return p
}
