package host

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/mcplat/internal/errors"
	"github.com/thoreinstein/mcplat/pkg/fileutil"
)

// Format is a host manifest encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// Manifest errors.
var (
	// ErrUnknownFormat is returned for an unsupported manifest encoding.
	ErrUnknownFormat = errors.New("unknown manifest format")

	// ErrInvalidManifest is returned when a manifest fails validation.
	ErrInvalidManifest = errors.New("invalid host manifest")
)

// Manifest is a recorded snapshot of the symbols a host exposes. It lets a
// host be described in a file and replayed as a Table, which is how the CLI
// inspects environments it is not embedded in.
//
// Example (YAML):
//
//	name: paper-1.20.4
//	classes:
//	  - name: org.bukkit.Bukkit
//	    methods:
//	      getMinecraftVersion:
//	        value: "1.20.4"
//	  - name: net.minecraft.SharedConstants
//	    methods:
//	      getCurrentVersion:
//	        type: net.minecraft.WorldVersion
//	        methods:
//	          getName:
//	            value: "1.20.4"
type Manifest struct {
	Name    string      `yaml:"name" toml:"name" json:"name"`
	Classes []ClassSpec `yaml:"classes" toml:"classes" json:"classes"`
}

// ClassSpec describes one class in a manifest.
type ClassSpec struct {
	Name    string                `yaml:"name" toml:"name" json:"name"`
	Methods map[string]MemberSpec `yaml:"methods,omitempty" toml:"methods,omitempty" json:"methods,omitempty"`
	Fields  map[string]MemberSpec `yaml:"fields,omitempty" toml:"fields,omitempty" json:"fields,omitempty"`
}

// MemberSpec describes what a method or field yields.
//
// Exactly one outcome applies, checked in this order: Denied makes the member
// fail with ErrIllegalAccess, Throws makes it fail with ErrInvocation, Methods
// makes it return an Instance of Type, otherwise it returns Value (which may
// be absent, modeling a null result).
type MemberSpec struct {
	Value   any                   `yaml:"value,omitempty" toml:"value,omitempty" json:"value,omitempty"`
	Type    string                `yaml:"type,omitempty" toml:"type,omitempty" json:"type,omitempty"`
	Methods map[string]MemberSpec `yaml:"methods,omitempty" toml:"methods,omitempty" json:"methods,omitempty"`
	Throws  string                `yaml:"throws,omitempty" toml:"throws,omitempty" json:"throws,omitempty"`
	Denied  bool                  `yaml:"denied,omitempty" toml:"denied,omitempty" json:"denied,omitempty"`
}

// FormatFromPath picks a format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", errors.Wrapf(ErrUnknownFormat, "extension of %s", path)
	}
}

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatYAML, FormatTOML, FormatJSON:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", errors.Wrapf(ErrUnknownFormat, "%q", s)
	}
}

// LoadManifest reads and validates a manifest file. The format is chosen by
// extension. A manifest without a name is named after its file.
func LoadManifest(path string) (*Manifest, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading host manifest %s", path)
	}

	m, err := DecodeManifest(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding host manifest %s", path)
	}

	if m.Name == "" {
		m.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return m, nil
}

// DecodeManifest parses and validates manifest data in the given format.
// Unknown keys are rejected in every format.
func DecodeManifest(data []byte, format Format) (*Manifest, error) {
	var m Manifest
	var err error

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err = dec.Decode(&m); errors.Is(err, io.EOF) {
			err = nil // empty document
		}
	case FormatTOML:
		err = toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(&m)
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&m)
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "unmarshaling %s", format)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

// Validate checks class names are present and unique.
func (m *Manifest) Validate() error {
	seen := make(map[string]struct{}, len(m.Classes))
	for i, c := range m.Classes {
		if c.Name == "" {
			return errors.Wrapf(ErrInvalidManifest, "class #%d has no name", i+1)
		}
		if _, dup := seen[c.Name]; dup {
			return errors.Wrapf(ErrInvalidManifest, "class %s defined twice", c.Name)
		}
		seen[c.Name] = struct{}{}
	}
	return nil
}

// Encode renders the manifest in the given format.
func (m *Manifest) Encode(format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(m)
	case FormatTOML:
		return toml.Marshal(m)
	case FormatJSON:
		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "marshaling JSON")
		}
		return append(data, '\n'), nil
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
}

// Table builds a Table exposing the manifest's classes.
func (m *Manifest) Table() (*Table, error) {
	t := NewTable(m.Name)
	for _, c := range m.Classes {
		def := ClassDef{
			Name:    c.Name,
			Methods: make(map[string]Method, len(c.Methods)),
			Fields:  make(map[string]Field, len(c.Fields)),
		}
		for name, spec := range c.Methods {
			def.Methods[name] = Method(spec.member())
		}
		for name, spec := range c.Fields {
			def.Fields[name] = Field(spec.member())
		}
		if err := t.Define(def); err != nil {
			return nil, errors.Wrapf(err, "defining %q", c.Name)
		}
	}
	return t, nil
}

// Merge returns a manifest containing the classes of all given manifests.
// Earlier manifests win on conflicting class names, matching Chain order.
func Merge(name string, manifests ...*Manifest) *Manifest {
	out := &Manifest{Name: name}
	seen := make(map[string]struct{})
	for _, m := range manifests {
		for _, c := range m.Classes {
			if _, dup := seen[c.Name]; dup {
				continue
			}
			seen[c.Name] = struct{}{}
			out.Classes = append(out.Classes, c)
		}
	}
	return out
}

func (s MemberSpec) member() func() (any, error) {
	switch {
	case s.Denied:
		return Deny()
	case s.Throws != "":
		return Throw(s.Throws)
	case len(s.Methods) > 0:
		methods := make(map[string]Method, len(s.Methods))
		for name, spec := range s.Methods {
			methods[name] = Method(spec.member())
		}
		return Const(NewInstance(s.Type, methods))
	default:
		return Const(s.Value)
	}
}

// LoadManifests loads every path and chains the resulting tables in order.
// It returns the merged manifest alongside the loader so callers can display
// what was loaded.
func LoadManifests(paths ...string) (Loader, *Manifest, error) {
	if len(paths) == 0 {
		return nil, nil, errors.Wrap(ErrInvalidManifest, "no manifest paths given")
	}

	loaders := make([]Loader, 0, len(paths))
	manifests := make([]*Manifest, 0, len(paths))
	for _, p := range paths {
		m, err := LoadManifest(p)
		if err != nil {
			return nil, nil, err
		}
		t, err := m.Table()
		if err != nil {
			return nil, nil, err
		}
		loaders = append(loaders, t)
		manifests = append(manifests, m)
	}

	merged := manifests[0]
	if len(manifests) > 1 {
		merged = Merge("merged", manifests...)
	}
	return Chain(loaders...), merged, nil
}
