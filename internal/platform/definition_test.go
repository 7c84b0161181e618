package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/mcplat/internal/errors"
	"github.com/thoreinstein/mcplat/internal/host"
)

func fabricDefinition() Definition {
	return Definition{
		Name:       "fabric",
		Namespaces: []string{"intermediary", "named"},
		Detect: []Step{
			{Class: "net.fabricmc.loader.api.FabricLoader", Method: "getInstance", Then: "getRawGameVersion"},
			{Class: "net.fabricmc.loader.launch.knot.Knot", Field: "GAME_VERSION", Strict: true},
			{Class: "net.fabricmc.Legacy", Method: "describe", Pattern: `mc=(\S+)`},
		},
	}
}

func TestDefinition_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Definition)
		wantErr int
	}{
		{name: "valid", mutate: func(*Definition) {}},
		{name: "bad name", mutate: func(d *Definition) { d.Name = "Fabric Loader" }, wantErr: 1},
		{name: "builtin name", mutate: func(d *Definition) { d.Name = NameBukkit }, wantErr: 1},
		{name: "no namespaces", mutate: func(d *Definition) { d.Namespaces = nil }, wantErr: 1},
		{name: "empty namespace", mutate: func(d *Definition) { d.Namespaces = []string{"a", ""} }, wantErr: 1},
		{name: "no steps", mutate: func(d *Definition) { d.Detect = nil }, wantErr: 1},
		{name: "step without class", mutate: func(d *Definition) { d.Detect[0].Class = "" }, wantErr: 1},
		{name: "step with method and field", mutate: func(d *Definition) { d.Detect[1].Method = "x" }, wantErr: 1},
		{name: "step with neither", mutate: func(d *Definition) { d.Detect[2].Method = "" }, wantErr: 1},
		{name: "then on field", mutate: func(d *Definition) { d.Detect[1].Then = "x" }, wantErr: 1},
		{name: "bad pattern", mutate: func(d *Definition) { d.Detect[2].Pattern = "(" }, wantErr: 1},
		{name: "pattern without group", mutate: func(d *Definition) { d.Detect[2].Pattern = `mc=\S+` }, wantErr: 1},
		{
			name: "every problem reported",
			mutate: func(d *Definition) {
				d.Name = ""
				d.Namespaces = nil
				d.Detect[0].Class = ""
				d.Detect[2].Pattern = "("
			},
			wantErr: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := fabricDefinition()
			tt.mutate(&def)

			errs := def.Validate()
			assert.Len(t, errs, tt.wantErr, "%v", errs)
			for _, err := range errs {
				assert.True(t, errors.Is(err, ErrInvalidDefinition), "got %v", err)
			}
		})
	}
}

func TestFromDefinition_Detects(t *testing.T) {
	tests := []struct {
		name        string
		classes     []host.ClassDef
		wantOK      bool
		wantVersion string
		wantErr     bool
	}{
		{
			name: "instance method",
			classes: []host.ClassDef{{
				Name: "net.fabricmc.loader.api.FabricLoader",
				Methods: map[string]host.Method{
					"getInstance": host.Const(host.NewInstance("net.fabricmc.loader.impl.FabricLoaderImpl", map[string]host.Method{
						"getRawGameVersion": host.Const("1.20.1"),
					})),
				},
			}},
			wantOK:      true,
			wantVersion: "1.20.1",
		},
		{
			name: "static field",
			classes: []host.ClassDef{{
				Name:   "net.fabricmc.loader.launch.knot.Knot",
				Fields: map[string]host.Field{"GAME_VERSION": host.Const("1.14.4")},
			}},
			wantOK:      true,
			wantVersion: "1.14.4",
		},
		{
			name:    "strict step with missing field",
			classes: []host.ClassDef{{Name: "net.fabricmc.loader.launch.knot.Knot"}},
			wantErr: true,
		},
		{
			name: "pattern extraction",
			classes: []host.ClassDef{{
				Name:    "net.fabricmc.Legacy",
				Methods: map[string]host.Method{"describe": host.Const("loader=0.4 mc=1.8.9")},
			}},
			wantOK:      true,
			wantVersion: "1.8.9",
		},
		{
			name:    "nothing present",
			classes: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := FromDefinition(fabricDefinition(), WithLoader(newHost(t, tt.classes...)))
			require.NoError(t, err)
			assert.Equal(t, "fabric", d.Name())
			assert.Equal(t, []string{"intermediary", "named"}, d.MappingNamespaces())

			ok, err := d.IsSupported()
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrIntegrity), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)

			if tt.wantOK {
				v, err := d.Version()
				require.NoError(t, err)
				assert.Equal(t, tt.wantVersion, v)
			}
		})
	}
}

func TestFromDefinition_Invalid(t *testing.T) {
	def := fabricDefinition()
	def.Detect = nil

	d, err := FromDefinition(def)
	assert.Nil(t, d)
	assert.True(t, errors.Is(err, ErrInvalidDefinition))
}

func TestRegisterDefinitions(t *testing.T) {
	quilt := fabricDefinition()
	quilt.Name = "quilt"

	t.Run("registers in order", func(t *testing.T) {
		reg := NewRegistry()
		require.NoError(t, RegisterDefinitions(reg, []Definition{fabricDefinition(), quilt}))

		ds := reg.Descriptors()
		require.Len(t, ds, 2)
		assert.Equal(t, "fabric", ds[0].Name())
		assert.Equal(t, "quilt", ds[1].Name())
	})

	t.Run("duplicate stops", func(t *testing.T) {
		reg := NewRegistry()
		err := RegisterDefinitions(reg, []Definition{fabricDefinition(), fabricDefinition(), quilt})
		assert.True(t, errors.Is(err, ErrPlatformAlreadyRegistered))
		assert.Equal(t, 1, reg.Len())
	})

	t.Run("resolver finds definition", func(t *testing.T) {
		h := newHost(t, host.ClassDef{
			Name:   "net.fabricmc.loader.launch.knot.Knot",
			Fields: map[string]host.Field{"GAME_VERSION": host.Const("1.16.5")},
		})
		reg := NewRegistry()
		require.NoError(t, RegisterDefinitions(reg, []Definition{fabricDefinition()}, WithLoader(h)))

		d, err := newTestResolver(t, h, reg).Current()
		require.NoError(t, err)
		assert.Equal(t, "fabric", d.Name())
	})
}
