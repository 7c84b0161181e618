package platform

import (
	"github.com/thoreinstein/mcplat/internal/errors"
	"github.com/thoreinstein/mcplat/internal/host"
)

// Descriptor defines the contract for one candidate host environment.
// Built-in platforms (Mojang, Bukkit, Forge) and plugin-contributed ones
// implement it; the symbol-remapping layer consumes it.
//
// Implementations must be safe for concurrent use. Detection runs at most
// once per descriptor; every later call reuses the cached outcome.
type Descriptor interface {
	// Name returns the stable platform identifier (mojang, bukkit, forge, ...).
	Name() string

	// IsSupported probes the host on first call and reports whether this
	// platform is the one running. A host that simply lacks the platform's
	// signals yields (false, nil). A host where the signal exists but is
	// broken yields an error wrapping ErrIntegrity.
	IsSupported() (bool, error)

	// Version returns the host version found while probing.
	// It fails with ErrUnsupported when IsSupported is not true.
	Version() (string, error)

	// MappingNamespaces returns the ordered symbol namespaces for this
	// platform. It never probes and never changes.
	MappingNamespaces() []string

	// Loader returns the introspection context used for probing and for
	// symbol lookups by consumers.
	Loader() host.Loader
}

// Deprecated is implemented by descriptors kept only for compatibility.
type Deprecated interface {
	// Replacement returns the name of the descriptor to use instead.
	Replacement() string
}

// Sentinel errors for descriptor operations.
var (
	// ErrUnsupported is returned by Version on a descriptor that is not
	// supported in this environment. It signals caller misuse.
	ErrUnsupported = errors.New("platform is not supported by this environment")

	// ErrIntegrity marks a detection signal that is present but malformed
	// or inaccessible.
	ErrIntegrity = errors.New("platform detection failed")

	// ErrNoVersion is returned by a strategy when the host answered but
	// reported no version. The descriptor is then unsupported.
	ErrNoVersion = errors.New("host reported no version")

	// ErrEmptyVersion is an integrity failure: the host answered with an
	// empty version string.
	ErrEmptyVersion = errors.New("host reported an empty version")
)

// State is the detection state of a descriptor.
type State int

const (
	// Unprobed means detection has not run yet.
	Unprobed State = iota

	// Supported means detection found the platform and recorded its version.
	Supported

	// Unsupported means detection ran and did not find the platform, or
	// failed (see Result.Err).
	Unsupported
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Unprobed:
		return "unprobed"
	case Supported:
		return "supported"
	case Unsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Result is the outcome of probing one descriptor.
type Result struct {
	// State is Supported or Unsupported once probing has run.
	State State

	// Version is set iff State is Supported.
	Version string

	// Err is set when detection hit an integrity failure.
	// State is Unsupported in that case.
	Err error
}
