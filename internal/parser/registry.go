package parser

import (
	"strings"
	"sync"
)

// Registry maps lower-cased language ids to parser instances. Lookups by
// filename scan parsers in registration order, so the first registered
// parser claiming an extension wins ties. All methods are safe for
// concurrent use; the parsers themselves are not (see Parser).
type Registry struct {
	mu      sync.RWMutex
	parsers map[string]Parser
	order   []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register binds id (case-insensitive) to p. Re-registering an id
// replaces the parser but keeps the id's original position in
// registration order. A nil parser is ignored.
func (r *Registry) Register(id string, p Parser) {
	if p == nil {
		return
	}
	id = strings.ToLower(id)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.parsers[id]; !exists {
		r.order = append(r.order, id)
	}
	r.parsers[id] = p
}

// Unregister removes the parser for id, reporting whether one existed.
func (r *Registry) Unregister(id string) bool {
	id = strings.ToLower(id)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.parsers[id]; !exists {
		return false
	}
	delete(r.parsers, id)
	for i, ordered := range r.order {
		if ordered == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Get returns the parser registered for id (case-insensitive).
func (r *Registry) Get(id string) (Parser, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.parsers[strings.ToLower(id)]
	return p, ok
}

// GetByFilename returns the first registered parser, in registration
// order, whose CanParse accepts filename.
func (r *Registry) GetByFilename(filename string) (Parser, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if p := r.parsers[id]; p.CanParse(filename) {
			return p, true
		}
	}
	return nil, false
}

// Languages returns the registered ids in registration order.
func (r *Registry) Languages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Parse dispatches source to the parser registered for id. It returns an
// UnknownLanguageError when no parser is registered; every other failure
// mode lives inside the Result.
func (r *Registry) Parse(source, id, filename string) (*Result, error) {
	p, ok := r.Get(id)
	if !ok {
		return nil, &UnknownLanguageError{Language: id}
	}
	return p.Parse(source, filename), nil
}

// defaultRegistry is the process-wide convenience instance holding the
// built-in heuristic parsers. Constructible registries remain the
// primary API; this exists for callers that just want to parse.
var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the shared registry with the built-in heuristic
// parsers (javascript, python, java, rust) registered.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
		defaultRegistry.Register("javascript", NewJavaScriptParser())
		defaultRegistry.Register("python", NewPythonParser())
		defaultRegistry.Register("java", NewJavaParser())
		defaultRegistry.Register("rust", NewRustParser())
	})
	return defaultRegistry
}
