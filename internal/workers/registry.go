package workers

import (
	"context"
	"fmt"
	"sync"
)

// HandlerFunc executes one task. The payload is the opaque input given at
// submission; the returned bytes become the task result.
type HandlerFunc func(ctx context.Context, payload []byte) ([]byte, error)

// Registry maps task names to their handlers. Registration happens at
// startup, before the worker starts consuming; lookups are concurrent.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]HandlerFunc
}

// NewRegistry creates an empty handler registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]HandlerFunc)}
}

// Register binds a handler to a task name. Registering a name twice is a
// programming error.
func (r *Registry) Register(name string, handler HandlerFunc) error {
	if name == "" {
		return fmt.Errorf("task name is required")
	}
	if handler == nil {
		return fmt.Errorf("handler for task %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[name]; exists {
		return fmt.Errorf("handler for task %q is already registered", name)
	}

	r.handlers[name] = handler
	return nil
}

// Get returns the handler for a task name.
func (r *Registry) Get(name string) (HandlerFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	handler, ok := r.handlers[name]
	return handler, ok
}
