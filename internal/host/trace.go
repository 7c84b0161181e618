package host

import (
	"context"
	"log/slog"

	"github.com/thoreinstein/mcplat/internal/logging"
)

// Traced wraps l so that every class, method, and field lookup is logged at
// logging.LevelTrace. Values returned by members are not logged.
func Traced(l Loader, logger *slog.Logger) Loader {
	if logger == nil || !logger.Enabled(context.Background(), logging.LevelTrace) {
		return l
	}
	return &tracedLoader{Loader: l, logger: logger.With("loader", l.Name())}
}

type tracedLoader struct {
	Loader
	logger *slog.Logger
}

func (t *tracedLoader) LoadClass(name string) (Class, error) {
	class, err := t.Loader.LoadClass(name)
	t.logger.Log(context.Background(), logging.LevelTrace, "load class", lookupArgs("class", name, err)...)
	if err != nil {
		return nil, err
	}
	return &tracedClass{Class: class, logger: t.logger.With("class", name)}, nil
}

type tracedClass struct {
	Class
	logger *slog.Logger
}

func (c *tracedClass) Method(name string) (Method, error) {
	m, err := c.Class.Method(name)
	c.logger.Log(context.Background(), logging.LevelTrace, "lookup method", lookupArgs("member", name, err)...)
	return m, err
}

func (c *tracedClass) Field(name string) (Field, error) {
	f, err := c.Class.Field(name)
	c.logger.Log(context.Background(), logging.LevelTrace, "lookup field", lookupArgs("member", name, err)...)
	return f, err
}

func lookupArgs(key, name string, err error) []any {
	args := []any{key, name}
	if err != nil {
		args = append(args, "absent", IsAbsent(err), "error", err)
	}
	return args
}
