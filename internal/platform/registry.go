package platform

import (
	"regexp"
	"sync"

	"github.com/thoreinstein/mcplat/internal/errors"
)

// Sentinel errors for registry operations.
var (
	// ErrPlatformAlreadyRegistered is returned when attempting to register
	// a platform with a name that is already in use.
	ErrPlatformAlreadyRegistered = errors.New("platform already registered")

	// ErrInvalidPlatformName is returned when attempting to register
	// a platform with an invalid name.
	ErrInvalidPlatformName = errors.New("invalid platform name")

	// ErrNoNamespaces is returned for a descriptor without mapping namespaces.
	ErrNoNamespaces = errors.New("platform has no mapping namespaces")
)

var namePattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// ValidName reports whether name is a well-formed platform identifier:
// lowercase, starting with a letter, then letters, digits, '-' or '_'.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

func isBuiltinName(name string) bool {
	switch name {
	case NameMojang, NameBukkit, NameNeoForge, NameForge:
		return true
	}
	return false
}

// Registry holds descriptors contributed by plugins.
// It is safe for concurrent use.
//
// Registry order is not part of its contract: resolution only guarantees that
// built-ins are consulted first, in their declared order.
type Registry struct {
	mu          sync.RWMutex
	descriptors []Descriptor
	byName      map[string]Descriptor
}

// NewRegistry creates a new empty platform registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]Descriptor),
	}
}

// DefaultRegistry is the registry plugin packages register into from their
// init functions, and the one the default resolver consults.
var DefaultRegistry = NewRegistry()

// Register adds a descriptor to the registry.
// Returns an error if:
//   - The descriptor is nil or its name is invalid (per ValidName)
//   - The descriptor has no mapping namespaces
//   - A descriptor with the same name is already registered, or the name
//     belongs to a built-in
func (r *Registry) Register(d Descriptor) error {
	if d == nil {
		return errors.Wrap(ErrInvalidPlatformName, "nil descriptor")
	}
	name := d.Name()
	if !ValidName(name) {
		return errors.Wrapf(ErrInvalidPlatformName, "%q", name)
	}
	if len(d.MappingNamespaces()) == 0 {
		return errors.Wrapf(ErrNoNamespaces, "%s", name)
	}

	if isBuiltinName(name) {
		return errors.Wrapf(ErrPlatformAlreadyRegistered, "%s is built in", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[name]; exists {
		return errors.Wrapf(ErrPlatformAlreadyRegistered, "%s", name)
	}

	r.byName[name] = d
	r.descriptors = append(r.descriptors, d)
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(d Descriptor) {
	if err := r.Register(d); err != nil {
		panic(err)
	}
}

// Get returns the registered descriptor with the given name.
func (r *Registry) Get(name string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byName[name]
	return d, ok
}

// Descriptors returns a snapshot of all registered descriptors.
// Callers must not rely on the order.
func (r *Registry) Descriptors() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Descriptor, len(r.descriptors))
	copy(out, r.descriptors)
	return out
}

// Len returns the number of registered descriptors.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.descriptors)
}

// Register adds d to DefaultRegistry. Plugin packages call it from init.
func Register(d Descriptor) error {
	return DefaultRegistry.Register(d)
}

// MustRegister adds d to DefaultRegistry and panics on error.
func MustRegister(d Descriptor) {
	DefaultRegistry.MustRegister(d)
}
