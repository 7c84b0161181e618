package host

import (
	"strings"

	"github.com/thoreinstein/mcplat/internal/errors"
)

// chain delegates parent-first: the first loader that does not report
// ErrClassNotFound answers the lookup.
type chain struct {
	loaders []Loader
}

// Chain combines loaders into one. Lookups try each loader in order; a loader
// that fails with anything other than ErrClassNotFound stops the search.
// A chain of one loader returns that loader unchanged.
func Chain(loaders ...Loader) Loader {
	if len(loaders) == 1 {
		return loaders[0]
	}
	return &chain{loaders: loaders}
}

func (c *chain) Name() string {
	names := make([]string, len(c.loaders))
	for i, l := range c.loaders {
		names[i] = l.Name()
	}
	return "chain(" + strings.Join(names, ",") + ")"
}

func (c *chain) LoadClass(name string) (Class, error) {
	for _, l := range c.loaders {
		class, err := l.LoadClass(name)
		if err == nil {
			return class, nil
		}
		if !errors.Is(err, ErrClassNotFound) {
			return nil, err
		}
	}
	return nil, errors.Wrapf(ErrClassNotFound, "%s in %s", name, c.Name())
}
