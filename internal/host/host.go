package host

import (
	"github.com/thoreinstein/mcplat/internal/errors"
)

// Absence errors. A lookup that fails with one of these means the symbol is
// simply not part of this host; detection code treats it as a negative
// answer rather than a failure.
var (
	// ErrClassNotFound is returned when the loader has no class by that name.
	ErrClassNotFound = errors.New("class not found")

	// ErrNoSuchMethod is returned when a class or object lacks the method.
	ErrNoSuchMethod = errors.New("no such method")

	// ErrNoSuchField is returned when a class lacks the field.
	ErrNoSuchField = errors.New("no such field")
)

// Integrity errors. The symbol exists but could not be used.
var (
	// ErrIllegalAccess is returned when a member exists but may not be read or called.
	ErrIllegalAccess = errors.New("illegal access")

	// ErrInvocation is returned when a member was called and failed.
	ErrInvocation = errors.New("invocation failed")
)

// Method is a bound, argument-less member. For a class it is a static method;
// for an object it is an instance method with the receiver already captured.
type Method func() (any, error)

// Field is a bound static field reader.
type Field func() (any, error)

// Object is anything that exposes methods by name.
// Values returned from a Method may implement Object to allow call chains.
type Object interface {
	// Method looks up a method by name. It returns ErrNoSuchMethod when the
	// object does not have one.
	Method(name string) (Method, error)
}

// Class is a named type reachable through a Loader.
type Class interface {
	Object

	// Name returns the fully qualified class name.
	Name() string

	// Field looks up a static field by name. It returns ErrNoSuchField when
	// the class does not have one.
	Field(name string) (Field, error)
}

// Loader is an introspection context: it resolves class names to classes.
// Implementations must be safe for concurrent use and must never mutate
// the host they describe.
type Loader interface {
	// Name identifies the loader in logs and error messages.
	Name() string

	// LoadClass resolves a fully qualified class name. It returns
	// ErrClassNotFound when the class is not visible to this loader.
	LoadClass(name string) (Class, error)
}

// IsAbsent reports whether err signals that a symbol is missing from the host,
// as opposed to present but broken.
func IsAbsent(err error) bool {
	return errors.Is(err, ErrClassNotFound) ||
		errors.Is(err, ErrNoSuchMethod) ||
		errors.Is(err, ErrNoSuchField)
}

// Call resolves method on obj and invokes it. Only the lookup can report
// absence; any error from the invocation itself is an ErrInvocation.
func Call(obj Object, method string) (any, error) {
	m, err := obj.Method(method)
	if err != nil {
		return nil, err
	}
	v, err := m()
	return v, invocationError(method, err)
}

// Get resolves field on class and reads it. As with Call, a failing read is
// never reported as absence.
func Get(class Class, field string) (any, error) {
	f, err := class.Field(field)
	if err != nil {
		return nil, err
	}
	v, err := f()
	return v, invocationError(field, err)
}

// invocationError gives err the ErrInvocation identity. A member body that
// fails with an absence error is flattened so it no longer matches the
// absence sentinels.
func invocationError(member string, err error) error {
	switch {
	case err == nil:
		return nil
	case IsAbsent(err):
		return errors.Wrapf(ErrInvocation, "%s: %s", member, err.Error())
	case errors.Is(err, ErrInvocation), errors.Is(err, ErrIllegalAccess):
		return err
	default:
		return errors.Mark(errors.Wrapf(err, "%s", member), ErrInvocation)
	}
}

var defaultTable = NewTable("default")

// Default returns the module's own loading context: a process-wide Table that
// the embedding process populates with the symbols it exposes.
func Default() *Table {
	return defaultTable
}
