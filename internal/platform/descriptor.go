package platform

import (
	"slices"

	"github.com/thoreinstein/mcplat/internal/errors"
	"github.com/thoreinstein/mcplat/internal/host"
)

// Option configures a descriptor built by New or one of the built-in constructors.
type Option func(*options)

type options struct {
	loader host.Loader
}

// WithLoader sets the introspection context a descriptor probes.
// The default is host.Default().
func WithLoader(l host.Loader) Option {
	return func(o *options) {
		o.loader = l
	}
}

func buildOptions(opts []Option) options {
	o := options{loader: host.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Base is a Descriptor driven by a Detector. Built-in platforms and
// declarative plugins are Base values; plugin packages may embed it.
type Base struct {
	name       string
	namespaces []string
	probe      *Probe
}

var _ Descriptor = (*Base)(nil)

// New creates a descriptor that detects its platform with detect.
// Namespaces must be non-empty; they are copied and never change.
func New(name string, namespaces []string, detect Detector, opts ...Option) (*Base, error) {
	if !ValidName(name) {
		return nil, errors.Wrapf(ErrInvalidPlatformName, "%q", name)
	}
	if len(namespaces) == 0 {
		return nil, errors.Wrapf(ErrNoNamespaces, "%s", name)
	}
	if detect == nil {
		return nil, errors.Newf("platform %s: nil detector", name)
	}

	o := buildOptions(opts)
	return &Base{
		name:       name,
		namespaces: slices.Clone(namespaces),
		probe:      NewProbe(name, o.loader, detect),
	}, nil
}

// MustNew is like New but panics on error. It is meant for package-level
// descriptor variables in plugin packages.
func MustNew(name string, namespaces []string, detect Detector, opts ...Option) *Base {
	d, err := New(name, namespaces, detect, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

// Name implements Descriptor.
func (b *Base) Name() string {
	return b.name
}

// IsSupported implements Descriptor.
func (b *Base) IsSupported() (bool, error) {
	r := b.probe.Run()
	return r.State == Supported, r.Err
}

// Version implements Descriptor.
func (b *Base) Version() (string, error) {
	r := b.probe.Run()
	if r.State != Supported {
		return "", errors.Wrapf(ErrUnsupported, "%s", b.name)
	}
	return r.Version, nil
}

// MappingNamespaces implements Descriptor. The returned slice is a copy.
func (b *Base) MappingNamespaces() []string {
	return slices.Clone(b.namespaces)
}

// Loader implements Descriptor.
func (b *Base) Loader() host.Loader {
	return b.probe.loader
}

// State reports the detection state without probing.
func (b *Base) State() State {
	return b.probe.State()
}

// Probe runs detection if needed and returns the full Result.
func (b *Base) Probe() Result {
	return b.probe.Run()
}
