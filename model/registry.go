package model

import (
	"sort"
	"sync"
)

// Factory creates an empty graphic of one kind, ready to restore
// from a record
type Factory func() Graphic

// Registry maps graphic kinds to factory functions. Restoration looks
// a record's classIdentifier up here instead of reflecting on type
// names; unregistered kinds are simply absent and their records get
// dropped during decode.
type Registry struct {
	mu        sync.RWMutex
	factories map[Kind]Factory
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[Kind]Factory),
	}
}

// Register adds a factory for a kind, replacing any previous one
func (r *Registry) Register(kind Kind, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[kind] = factory
}

// Get returns the factory for a kind
func (r *Registry) Get(kind Kind) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, ok := r.factories[kind]
	return factory, ok
}

// List returns the registered kinds in sorted order
func (r *Registry) List() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]Kind, 0, len(r.factories))
	for kind := range r.factories {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// globalRegistry holds the built-in kinds plus anything callers add
var globalRegistry = NewRegistry()

// RegisterKind adds a factory to the global registry
func RegisterKind(kind Kind, factory Factory) {
	globalRegistry.Register(kind, factory)
}

// KindFactory returns a factory from the global registry
func KindFactory(kind Kind) (Factory, bool) {
	return globalRegistry.Get(kind)
}

// RegisteredKinds returns the global registry's kinds in sorted order
func RegisteredKinds() []Kind {
	return globalRegistry.List()
}

func init() {
	RegisterKind(KindRectangle, func() Graphic { return NewRectangle() })
	RegisterKind(KindCircle, func() Graphic { return NewCircle() })
	RegisterKind(KindLine, func() Graphic { return NewLine() })
	RegisterKind(KindText, func() Graphic { return NewText() })
	RegisterKind(KindImage, func() Graphic { return NewImage() })
}
