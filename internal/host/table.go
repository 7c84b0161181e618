package host

import (
	"maps"
	"slices"
	"sync"

	"github.com/thoreinstein/mcplat/internal/errors"
)

// ErrInvalidClassName is returned when defining a class with an empty name.
var ErrInvalidClassName = errors.New("invalid class name")

// ClassDef describes a class to expose through a Table.
type ClassDef struct {
	// Name is the fully qualified class name.
	Name string

	// Methods maps static method names to their implementations.
	Methods map[string]Method

	// Fields maps static field names to their readers.
	Fields map[string]Field
}

// Table is an in-memory Loader backed by explicitly defined classes.
// It is safe for concurrent use.
type Table struct {
	name string

	mu      sync.RWMutex
	classes map[string]*tableClass
}

// NewTable creates an empty table identified by name.
func NewTable(name string) *Table {
	return &Table{
		name:    name,
		classes: make(map[string]*tableClass),
	}
}

// Name returns the table's identifier.
func (t *Table) Name() string {
	return t.name
}

// Define adds a class to the table, replacing any class with the same name.
// The maps in def are copied; later changes to them are not observed.
func (t *Table) Define(def ClassDef) error {
	if def.Name == "" {
		return ErrInvalidClassName
	}

	c := &tableClass{
		name:    def.Name,
		methods: maps.Clone(def.Methods),
		fields:  maps.Clone(def.Fields),
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.classes[def.Name] = c
	return nil
}

// MustDefine is like Define but panics on error.
// Use it for package-level host setup where a bad name is a programming error.
func (t *Table) MustDefine(def ClassDef) {
	if err := t.Define(def); err != nil {
		panic(err)
	}
}

// Remove deletes a class from the table. It reports whether the class existed.
func (t *Table) Remove(name string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, ok := t.classes[name]
	delete(t.classes, name)
	return ok
}

// Classes returns the defined class names in sorted order.
func (t *Table) Classes() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return slices.Sorted(maps.Keys(t.classes))
}

// LoadClass implements Loader.
func (t *Table) LoadClass(name string) (Class, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	c, ok := t.classes[name]
	if !ok {
		return nil, errors.Wrapf(ErrClassNotFound, "%s in %s", name, t.name)
	}
	return c, nil
}

type tableClass struct {
	name    string
	methods map[string]Method
	fields  map[string]Field
}

func (c *tableClass) Name() string { return c.name }

func (c *tableClass) Method(name string) (Method, error) {
	m, ok := c.methods[name]
	if !ok {
		return nil, errors.Wrapf(ErrNoSuchMethod, "%s.%s", c.name, name)
	}
	return m, nil
}

func (c *tableClass) Field(name string) (Field, error) {
	f, ok := c.fields[name]
	if !ok {
		return nil, errors.Wrapf(ErrNoSuchField, "%s.%s", c.name, name)
	}
	return f, nil
}

// Instance is an ad hoc Object, typically returned from a Method to model a
// host value with instance methods.
type Instance struct {
	typeName string
	methods  map[string]Method
}

// NewInstance creates an object of the named type with the given methods.
func NewInstance(typeName string, methods map[string]Method) *Instance {
	return &Instance{
		typeName: typeName,
		methods:  maps.Clone(methods),
	}
}

// TypeName returns the name of the instance's type.
func (i *Instance) TypeName() string {
	return i.typeName
}

// Method implements Object.
func (i *Instance) Method(name string) (Method, error) {
	m, ok := i.methods[name]
	if !ok {
		return nil, errors.Wrapf(ErrNoSuchMethod, "%s#%s", i.typeName, name)
	}
	return m, nil
}

// Const returns a member that always yields v.
// The result is assignable to both Method and Field.
func Const(v any) func() (any, error) {
	return func() (any, error) { return v, nil }
}

// Throw returns a member that always fails with ErrInvocation carrying msg.
func Throw(msg string) func() (any, error) {
	return func() (any, error) { return nil, errors.Wrap(ErrInvocation, msg) }
}

// Deny returns a member that always fails with ErrIllegalAccess.
func Deny() func() (any, error) {
	return func() (any, error) { return nil, ErrIllegalAccess }
}
