package platform

import (
	"github.com/thoreinstein/mcplat/internal/host"
)

// Alias is a deprecated descriptor name that forwards every operation to a
// canonical descriptor. It holds no detection state of its own and always
// reports exactly what the canonical descriptor reports.
type Alias struct {
	name      string
	canonical Descriptor
}

var (
	_ Descriptor = (*Alias)(nil)
	_ Deprecated = (*Alias)(nil)
)

// NewAlias creates an alias called name for canonical.
func NewAlias(name string, canonical Descriptor) *Alias {
	return &Alias{name: name, canonical: canonical}
}

// Name returns the alias's own name.
func (a *Alias) Name() string { return a.name }

// IsSupported forwards to the canonical descriptor.
func (a *Alias) IsSupported() (bool, error) { return a.canonical.IsSupported() }

// Version forwards to the canonical descriptor.
func (a *Alias) Version() (string, error) { return a.canonical.Version() }

// MappingNamespaces forwards to the canonical descriptor.
func (a *Alias) MappingNamespaces() []string { return a.canonical.MappingNamespaces() }

// Loader forwards to the canonical descriptor.
func (a *Alias) Loader() host.Loader { return a.canonical.Loader() }

// Replacement implements Deprecated.
func (a *Alias) Replacement() string { return a.canonical.Name() }

// Canonical returns the descriptor this alias forwards to.
func (a *Alias) Canonical() Descriptor { return a.canonical }

// State forwards to the canonical descriptor when it exposes one.
func (a *Alias) State() State {
	return StateOf(a.canonical)
}

// StateOf reports d's detection state without probing. Descriptors that do
// not expose their state are reported as Unprobed.
func StateOf(d Descriptor) State {
	if s, ok := d.(interface{ State() State }); ok {
		return s.State()
	}
	return Unprobed
}
