package platform

import (
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/thoreinstein/mcplat/internal/errors"
)

// Sentinel errors for resolution.
var (
	// ErrNoSupportedPlatform is returned when no built-in or registered
	// descriptor supports the current environment.
	ErrNoSupportedPlatform = errors.New("failed to find a supported platform")

	// ErrUnknownPlatform is returned by Lookup for a name no candidate has.
	ErrUnknownPlatform = errors.New("unknown platform")
)

// hintSetCurrent is attached to ErrNoSupportedPlatform.
const hintSetCurrent = "specify one manually with SetCurrentPlatform (or --platform on the command line)"

// Resolver determines the active platform: the first supported descriptor
// among the built-ins (in declared order) followed by the registry's
// descriptors. The result is cached for the lifetime of the resolver unless
// overridden with SetCurrent.
//
// A Resolver is safe for concurrent use; the search runs at most once at a
// time and its successful result is never replaced except by SetCurrent.
type Resolver struct {
	builtins []Descriptor
	registry *Registry
	logger   *slog.Logger

	mu     sync.Mutex
	active Descriptor
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithBuiltins replaces the built-in descriptors consulted first, in order.
func WithBuiltins(ds ...Descriptor) ResolverOption {
	return func(r *Resolver) {
		r.builtins = ds
	}
}

// WithRegistry sets the plugin registry consulted after the built-ins.
func WithRegistry(reg *Registry) ResolverOption {
	return func(r *Resolver) {
		r.registry = reg
	}
}

// WithLogger sets the logger used to report probing and resolution.
func WithLogger(l *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = l
	}
}

// NewResolver creates a resolver. By default it uses Builtins(),
// DefaultRegistry, and slog.Default().
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		builtins: Builtins(),
		registry: DefaultRegistry,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.registry == nil {
		r.registry = NewRegistry()
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Current returns the active platform, searching for one on first use.
//
// An integrity failure while probing any candidate aborts the search and is
// returned. If no candidate is supported, the error wraps
// ErrNoSupportedPlatform and carries a hint to set the platform manually.
func (r *Resolver) Current() (Descriptor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active != nil {
		return r.active, nil
	}

	d, err := r.find()
	if err != nil {
		return nil, err
	}

	r.active = d
	r.warnDeprecated(d)
	return d, nil
}

// SetCurrent overrides the active platform, bypassing detection.
// It is meant for initialization code that knows better than detection.
// Passing nil discards the active platform so the next Current searches again.
func (r *Resolver) SetCurrent(d Descriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.active = d
	if d == nil {
		r.logger.Debug("active platform cleared")
		return
	}
	r.logger.Debug("platform set manually", "platform", d.Name())
	r.warnDeprecated(d)
}

// Candidates returns the built-ins in priority order followed by the
// registry's descriptors.
func (r *Resolver) Candidates() []Descriptor {
	plugins := r.registry.Descriptors()
	out := make([]Descriptor, 0, len(r.builtins)+len(plugins))
	out = append(out, r.builtins...)
	return append(out, plugins...)
}

// Lookup returns the candidate called name, without probing it.
func (r *Resolver) Lookup(name string) (Descriptor, error) {
	for _, d := range r.Candidates() {
		if d.Name() == name {
			return d, nil
		}
	}
	return nil, errors.Wrapf(ErrUnknownPlatform, "%q", name)
}

func (r *Resolver) find() (Descriptor, error) {
	candidates := r.Candidates()
	for _, d := range candidates {
		ok, err := d.IsSupported()
		if err != nil {
			r.logger.Error("platform probe failed", "platform", d.Name(), "error", err)
			return nil, errors.Wrapf(err, "probing %s", d.Name())
		}
		r.logger.Debug("probed platform", "platform", d.Name(), "supported", ok)
		if ok {
			return d, nil
		}
	}

	err := errors.Wrapf(ErrNoSupportedPlatform, "checked %d candidates", len(candidates))
	return nil, errors.WithHint(err, hintSetCurrent)
}

func (r *Resolver) warnDeprecated(d Descriptor) {
	if dep, ok := d.(Deprecated); ok {
		r.logger.Warn("platform is deprecated", "platform", d.Name(), "replacement", dep.Replacement())
	}
}

// Report summarizes one candidate after probing.
type Report struct {
	Name        string   `json:"name"`
	State       State    `json:"state"`
	Version     string   `json:"version,omitempty"`
	Namespaces  []string `json:"namespaces"`
	Replacement string   `json:"replacement,omitempty"`
	Active      bool     `json:"active"`
	Err         error    `json:"-"`
	Error       string   `json:"error,omitempty"`
}

// surveyWorkers bounds how many candidates Survey probes at once.
const surveyWorkers = 4

// Survey probes every candidate and reports on each, in candidate order.
// Unlike Current, integrity failures are recorded per candidate instead of
// aborting, and the active platform is not changed. Candidates are probed
// concurrently.
func (r *Resolver) Survey() []Report {
	r.mu.Lock()
	active := r.active
	r.mu.Unlock()

	candidates := r.Candidates()
	reports := make([]Report, len(candidates))

	var g errgroup.Group
	g.SetLimit(surveyWorkers)
	for i, d := range candidates {
		g.Go(func() error {
			reports[i] = survey(d, active)
			return nil
		})
	}
	_ = g.Wait() // probes never fail the group; errors live on each Report

	return reports
}

func survey(d Descriptor, active Descriptor) Report {
	rep := Report{
		Name:       d.Name(),
		Namespaces: d.MappingNamespaces(),
		Active:     active != nil && active.Name() == d.Name(),
	}

	ok, err := d.IsSupported()
	switch {
	case err != nil:
		rep.State = Unsupported
		rep.Err = err
		rep.Error = err.Error()
	case ok:
		rep.State = Supported
		rep.Version, _ = d.Version()
	default:
		rep.State = Unsupported
	}

	if dep, isDep := d.(Deprecated); isDep {
		rep.Replacement = dep.Replacement()
	}
	return rep
}

var (
	defaultResolverOnce sync.Once
	defaultResolver     *Resolver
)

// Default returns the process-wide resolver over Builtins() and DefaultRegistry.
func Default() *Resolver {
	defaultResolverOnce.Do(func() {
		defaultResolver = NewResolver()
	})
	return defaultResolver
}

// CurrentPlatform returns the process-wide active platform.
func CurrentPlatform() (Descriptor, error) {
	return Default().Current()
}

// SetCurrentPlatform overrides the process-wide active platform.
func SetCurrentPlatform(d Descriptor) {
	Default().SetCurrent(d)
}
