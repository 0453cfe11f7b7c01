package payment

import (
	"fmt"
	"sort"
	"sync"
)

// The registry maps driver names to factories. Factories, not instances:
// a Driver carries per-flow state, so every Resolve hands out a fresh one.

var (
	registryMu sync.RWMutex
	registry   = make(map[string]func() Driver)
)

// Register exposes a driver factory under a named key. Call from the
// driver package's init or from host wiring.
func Register(name string, factory func() Driver) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// Resolve returns a new driver instance for the named key.
func Resolve(name string) (Driver, error) {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unsupported payment driver %q", name)
	}
	return factory(), nil
}

// Names returns the registered driver keys, sorted.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
