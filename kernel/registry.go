package kernel

import "sync"

// Well-known backend names.
const (
	// KernelMesh is the pure-software polyhedral reference backend.
	KernelMesh = "mesh"
	// KernelNull is the always-unavailable fallback.
	KernelNull = "null"
)

// Factory creates a new kernel instance.
type Factory func() Kernel

var (
	registryMu sync.RWMutex
	kernels    = make(map[string]Factory)
	// Priority order for default selection (first available wins).
	// Native B-Rep backends register themselves ahead of the mesh
	// reference backend.
	priority = []string{KernelMesh}
)

func init() {
	Register(KernelMesh, func() Kernel { return NewMeshKernel() })
	Register(KernelNull, func() Kernel { return NullKernel{} })
}

// Register registers a kernel factory with the given name, replacing
// any previous registration. Typically called from init functions in
// backend packages.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	kernels[name] = factory
}

// Unregister removes a kernel from the registry. Useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(kernels, name)
}

// Available returns the names of registered kernels.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(kernels))
	for name := range kernels {
		names = append(names, name)
	}
	return names
}

// IsRegistered reports whether a kernel with the given name exists.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := kernels[name]
	return ok
}

// Get returns a new instance of the named kernel, or nil if it is not
// registered.
func Get(name string) Kernel {
	registryMu.RLock()
	defer registryMu.RUnlock()

	factory, ok := kernels[name]
	if !ok {
		return nil
	}
	return factory()
}

// Default returns the best available kernel based on priority order,
// skipping backends that report themselves unavailable. Returns the
// null kernel if nothing usable is registered.
func Default() Kernel {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range priority {
		if factory, ok := kernels[name]; ok {
			if k := factory(); k != nil && k.IsAvailable() {
				return k
			}
		}
	}

	for name, factory := range kernels {
		if name == KernelNull {
			continue
		}
		if k := factory(); k != nil && k.IsAvailable() {
			return k
		}
	}

	return NullKernel{}
}

// MustDefault returns the default kernel or panics if only the null
// kernel is available.
func MustDefault() Kernel {
	k := Default()
	if !k.IsAvailable() {
		panic("kernel: no kernel available")
	}
	return k
}
