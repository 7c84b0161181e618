package platform

import (
	"regexp"
	"sync"
	"sync/atomic"

	"github.com/thoreinstein/mcplat/internal/errors"
	"github.com/thoreinstein/mcplat/internal/host"
)

// Detector inspects a host and returns the platform version.
//
// It returns a host absence error (see host.IsAbsent) when its signal is not
// present, ErrNoVersion when the signal answered with nil, and any other
// error (including ErrEmptyVersion) when the signal is present but broken.
type Detector func(l host.Loader) (string, error)

// Strategy is a named detection method.
type Strategy struct {
	Name   string
	Detect Detector
}

// Fallback chains strategies with graceful degradation: each strategy is tried
// in order, falling through to the next only when its signal is absent.
// The first version found wins. ErrNoVersion and integrity failures stop the
// chain.
func Fallback(strategies ...Strategy) Detector {
	return func(l host.Loader) (string, error) {
		var lastAbsent error
		for _, s := range strategies {
			v, err := s.Detect(l)
			if err == nil {
				return v, nil
			}
			if !host.IsAbsent(err) {
				return "", errors.Wrapf(err, "%s", s.Name)
			}
			lastAbsent = err
		}
		if lastAbsent == nil {
			lastAbsent = host.ErrClassNotFound
		}
		return "", lastAbsent
	}
}

// Strict turns member absence into an integrity failure. Class absence still
// means the platform is not present; once the class exists, the member is
// mandatory.
func Strict(s Strategy) Strategy {
	return Strategy{
		Name: s.Name,
		Detect: func(l host.Loader) (string, error) {
			v, err := s.Detect(l)
			if err != nil && host.IsAbsent(err) && !errors.Is(err, host.ErrClassNotFound) {
				// Flattened so the result no longer matches the absence sentinels.
				return "", errors.Newf("required member missing: %s", err.Error())
			}
			return v, err
		},
	}
}

// StaticCall detects a version by calling a static method.
func StaticCall(class, method string) Strategy {
	return Strategy{
		Name: class + "." + method + "()",
		Detect: func(l host.Loader) (string, error) {
			c, err := l.LoadClass(class)
			if err != nil {
				return "", err
			}
			v, err := host.Call(c, method)
			if err != nil {
				return "", err
			}
			return asVersion(v)
		},
	}
}

// StaticCallThen calls a static method and then an instance method on its result.
func StaticCallThen(class, method, then string) Strategy {
	return Strategy{
		Name: class + "." + method + "()." + then + "()",
		Detect: func(l host.Loader) (string, error) {
			c, err := l.LoadClass(class)
			if err != nil {
				return "", err
			}
			v, err := host.Call(c, method)
			if err != nil {
				return "", err
			}
			obj, ok := v.(host.Object)
			if !ok {
				return "", errors.Newf("%s.%s() returned %T, not an object", class, method, v)
			}
			v, err = host.Call(obj, then)
			if err != nil {
				return "", err
			}
			return asVersion(v)
		},
	}
}

// StaticField detects a version by reading a static field.
func StaticField(class, field string) Strategy {
	return Strategy{
		Name: class + "." + field,
		Detect: func(l host.Loader) (string, error) {
			c, err := l.LoadClass(class)
			if err != nil {
				return "", err
			}
			v, err := host.Get(c, field)
			if err != nil {
				return "", err
			}
			return asVersion(v)
		},
	}
}

// Extract post-processes a strategy's result with pattern, keeping the first
// capture group. A result the pattern does not match is an integrity failure.
func Extract(s Strategy, pattern *regexp.Regexp) Strategy {
	return Strategy{
		Name: s.Name,
		Detect: func(l host.Loader) (string, error) {
			v, err := s.Detect(l)
			if err != nil {
				return "", err
			}
			m := pattern.FindStringSubmatch(v)
			if len(m) < 2 {
				return "", errors.Newf("failed to find version in version string %q", v)
			}
			return m[1], nil
		},
	}
}

func asVersion(v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "", ErrNoVersion
	case string:
		if v == "" {
			return "", ErrEmptyVersion
		}
		return v, nil
	default:
		return "", errors.Newf("version has type %T, want string", v)
	}
}

// Probe runs a detector against a loader exactly once and caches the Result.
// It is safe for concurrent use; concurrent first callers wait for the single
// detection run.
type Probe struct {
	loader host.Loader
	detect Detector
	name   string

	once   sync.Once
	done   atomic.Bool
	result Result
}

// NewProbe creates a probe for the named platform.
func NewProbe(name string, loader host.Loader, detect Detector) *Probe {
	return &Probe{
		loader: loader,
		detect: detect,
		name:   name,
	}
}

// Run performs detection on first call and returns the cached Result.
func (p *Probe) Run() Result {
	p.once.Do(func() {
		p.result = p.run()
		p.done.Store(true)
	})
	return p.result
}

// State returns the detection state without triggering detection.
func (p *Probe) State() State {
	if !p.done.Load() {
		return Unprobed
	}
	return p.result.State
}

func (p *Probe) run() Result {
	v, err := p.detect(p.loader)
	switch {
	case err == nil:
		return Result{State: Supported, Version: v}
	case host.IsAbsent(err), errors.Is(err, ErrNoVersion):
		return Result{State: Unsupported}
	default:
		return Result{
			State: Unsupported,
			Err:   errors.Mark(errors.Wrapf(err, "failed to get %s version", p.name), ErrIntegrity),
		}
	}
}
