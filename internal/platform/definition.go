package platform

import (
	"regexp"

	"github.com/thoreinstein/mcplat/internal/errors"
)

// ErrInvalidDefinition is returned when a declarative platform definition is malformed.
var ErrInvalidDefinition = errors.New("invalid platform definition")

// Definition declares a platform without Go code, typically from the
// configuration file. Steps are tried in order with the same fallback rules
// as the built-ins.
type Definition struct {
	Name       string   `mapstructure:"name" yaml:"name" json:"name"`
	Namespaces []string `mapstructure:"namespaces" yaml:"namespaces" json:"namespaces"`
	Detect     []Step   `mapstructure:"detect" yaml:"detect" json:"detect"`
}

// Step is one detection method of a Definition. Exactly one of Method or
// Field must be set. Then calls an instance method on Method's result.
// Pattern, if set, must have a capture group; its first group is the version.
// Strict makes a missing member an integrity failure once Class exists.
type Step struct {
	Class   string `mapstructure:"class" yaml:"class" json:"class"`
	Method  string `mapstructure:"method" yaml:"method,omitempty" json:"method,omitempty"`
	Field   string `mapstructure:"field" yaml:"field,omitempty" json:"field,omitempty"`
	Then    string `mapstructure:"then" yaml:"then,omitempty" json:"then,omitempty"`
	Pattern string `mapstructure:"pattern" yaml:"pattern,omitempty" json:"pattern,omitempty"`
	Strict  bool   `mapstructure:"strict" yaml:"strict,omitempty" json:"strict,omitempty"`
}

// Validate checks the definition without building it.
// It returns every problem found, each wrapping ErrInvalidDefinition.
func (d Definition) Validate() []error {
	var errs []error

	if !ValidName(d.Name) {
		errs = append(errs, errors.Wrapf(ErrInvalidDefinition, "name %q", d.Name))
	} else if isBuiltinName(d.Name) {
		errs = append(errs, errors.Wrapf(ErrInvalidDefinition, "name %q is built in", d.Name))
	}
	if len(d.Namespaces) == 0 {
		errs = append(errs, errors.Wrapf(ErrInvalidDefinition, "%s: no namespaces", d.Name))
	}
	for i, ns := range d.Namespaces {
		if ns == "" {
			errs = append(errs, errors.Wrapf(ErrInvalidDefinition, "%s: namespace #%d is empty", d.Name, i+1))
		}
	}
	if len(d.Detect) == 0 {
		errs = append(errs, errors.Wrapf(ErrInvalidDefinition, "%s: no detection steps", d.Name))
	}
	for i, s := range d.Detect {
		if _, err := s.strategy(); err != nil {
			errs = append(errs, errors.Wrapf(err, "%s: step #%d", d.Name, i+1))
		}
	}

	return errs
}

// FromDefinition builds a descriptor from a declarative definition.
func FromDefinition(def Definition, opts ...Option) (*Base, error) {
	if errs := def.Validate(); len(errs) > 0 {
		return nil, errs[0]
	}

	strategies := make([]Strategy, 0, len(def.Detect))
	for _, s := range def.Detect {
		st, err := s.strategy()
		if err != nil {
			return nil, err
		}
		strategies = append(strategies, st)
	}

	return New(def.Name, def.Namespaces, Fallback(strategies...), opts...)
}

func (s Step) strategy() (Strategy, error) {
	if s.Class == "" {
		return Strategy{}, errors.Wrap(ErrInvalidDefinition, "class is required")
	}
	if (s.Method == "") == (s.Field == "") {
		return Strategy{}, errors.Wrap(ErrInvalidDefinition, "exactly one of method or field is required")
	}
	if s.Then != "" && s.Method == "" {
		return Strategy{}, errors.Wrap(ErrInvalidDefinition, "then requires method")
	}

	var st Strategy
	switch {
	case s.Field != "":
		st = StaticField(s.Class, s.Field)
	case s.Then != "":
		st = StaticCallThen(s.Class, s.Method, s.Then)
	default:
		st = StaticCall(s.Class, s.Method)
	}

	if s.Pattern != "" {
		re, err := regexp.Compile(s.Pattern)
		if err != nil {
			return Strategy{}, errors.Wrapf(ErrInvalidDefinition, "pattern: %s", err.Error())
		}
		if re.NumSubexp() < 1 {
			return Strategy{}, errors.Wrap(ErrInvalidDefinition, "pattern needs a capture group")
		}
		st = Extract(st, re)
	}

	if s.Strict {
		st = Strict(st)
	}
	return st, nil
}

// RegisterDefinitions builds and registers every definition into reg.
// It stops at the first failure.
func RegisterDefinitions(reg *Registry, defs []Definition, opts ...Option) error {
	for _, def := range defs {
		d, err := FromDefinition(def, opts...)
		if err != nil {
			return err
		}
		if err := reg.Register(d); err != nil {
			return err
		}
	}
	return nil
}
