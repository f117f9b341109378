package htj2k

import (
	"fmt"
	"sync"

	"github.com/cocosip/go-dicom/pkg/imaging/codec"
)

// EngineRegistry manages the available decoding engines
type EngineRegistry struct {
	mu      sync.RWMutex
	openers map[string]Opener
	order   []string
}

// NewEngineRegistry creates an empty registry
func NewEngineRegistry() *EngineRegistry {
	return &EngineRegistry{
		openers: make(map[string]Opener),
	}
}

var defaultRegistry = NewEngineRegistry()

// RegisterEngine registers an engine in the default registry. The first
// engine also registers the HTJ2K codecs with the go-dicom global registry.
func RegisterEngine(name string, open Opener) {
	defaultRegistry.Register(name, open)
	registerCodecsFor(codec.GetGlobalRegistry(), defaultRegistry)
}

// LookupEngine retrieves an engine from the default registry
func LookupEngine(name string) (Opener, error) {
	return defaultRegistry.Lookup(name)
}

// Engines returns the names in the default registry in registration order
func Engines() []string {
	return defaultRegistry.Names()
}

// Register adds or replaces an engine. Replacing keeps the first
// registration position.
func (r *EngineRegistry) Register(name string, open Opener) {
	if open == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.openers[name]; !ok {
		r.order = append(r.order, name)
	}
	r.openers[name] = open
}

// Lookup retrieves an engine by name. An empty name selects the first
// registered engine.
func (r *EngineRegistry) Lookup(name string) (Opener, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if name == "" {
		if len(r.order) == 0 {
			return nil, ErrNoEngine
		}
		name = r.order[0]
	}
	open, ok := r.openers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoEngine, name)
	}
	return open, nil
}

// Names returns the registered engine names in registration order
func (r *EngineRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.order...)
}
