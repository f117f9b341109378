package htj2k

import (
	"testing"
)

func TestNewParameters(t *testing.T) {
	params := NewParameters()

	if params.Engine != "" {
		t.Errorf("Default Engine = %q, want empty", params.Engine)
	}
	if params.MaxSamples != 0 {
		t.Errorf("Default MaxSamples = %d, want 0", params.MaxSamples)
	}
}

func TestParameters_GetSetParameter(t *testing.T) {
	params := NewParameters()
	params.SetParameter("engine", "openjph")
	params.SetParameter("maxSamples", 1<<20)
	params.SetParameter("maxSamples", "ignored")
	params.SetParameter("custom", 7)

	tests := []struct {
		param string
		want  interface{}
	}{
		{"engine", "openjph"},
		{"maxSamples", 1 << 20},
		{"custom", 7},
		{"missing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			if got := params.GetParameter(tt.param); got != tt.want {
				t.Errorf("GetParameter(%q) = %v, want %v", tt.param, got, tt.want)
			}
		})
	}
}

func TestParameters_Validate(t *testing.T) {
	params := NewParameters().WithMaxSamples(-5)
	if err := params.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if params.MaxSamples != 0 {
		t.Errorf("MaxSamples = %d after Validate, want 0", params.MaxSamples)
	}
}

func TestParameters_Chaining(t *testing.T) {
	params := NewParameters().WithEngine("plane").WithMaxSamples(64)
	opts := params.options()

	if opts.EngineName != "plane" || opts.MaxSamples != 64 || opts.Engine != nil {
		t.Errorf("options = %+v", opts)
	}
}

func TestParametersFrom(t *testing.T) {
	typed := NewParameters().WithEngine("a")
	if parametersFrom(typed) != typed {
		t.Error("typed parameters not reused")
	}
	if p := parametersFrom(nil); p.Engine != "" || p.MaxSamples != 0 {
		t.Errorf("nil parameters: %+v", p)
	}
}

func TestOptionsValidate(t *testing.T) {
	if err := DefaultOptions().Validate(); err != nil {
		t.Errorf("default options invalid: %v", err)
	}
	if err := DefaultOptions().WithMaxSamples(-1).Validate(); err == nil {
		t.Error("expected error for negative MaxSamples")
	}
}
