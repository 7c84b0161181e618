package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"

	"github.com/thoreinstein/mcplat/internal/errors"
	"github.com/thoreinstein/mcplat/internal/paths"
	"github.com/thoreinstein/mcplat/internal/platform"
)

// isolate points the config search at an empty directory so the user's own
// config cannot leak into tests.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(envConfigDir, dir)
	t.Chdir(dir)
	return dir
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestInit(t *testing.T) {
	Init()

	// Check defaults are set
	if viper.GetInt("version") != CurrentVersion {
		t.Errorf("expected version default %d, got %d", CurrentVersion, viper.GetInt("version"))
	}
	if viper.GetString("platform") != "" {
		t.Errorf("expected empty platform default, got %q", viper.GetString("platform"))
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	isolate(t)
	Init()

	// Load with no config file should not error
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() with no config file should not error: %v", err)
	}
	if cfg.Version != CurrentVersion {
		t.Errorf("Version = %d, want %d", cfg.Version, CurrentVersion)
	}
	if FileUsed() != "" {
		t.Errorf("FileUsed() = %q, want empty", FileUsed())
	}
}

func TestLoad_WithConfigFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, t.TempDir(), `
version: 1
platform: fabric
hosts:
  - /srv/paper/host.yaml
plugins:
  - name: fabric
    namespaces: [intermediary, named]
    detect:
      - class: net.fabricmc.loader.api.FabricLoader
        method: getInstance
        then: getRawGameVersion
      - class: net.fabricmc.loader.launch.knot.Knot
        field: GAME_VERSION
        strict: true
`)
	Init()

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Platform != "fabric" {
		t.Errorf("Platform = %q, want fabric", cfg.Platform)
	}
	if len(cfg.Hosts) != 1 || cfg.Hosts[0] != "/srv/paper/host.yaml" {
		t.Errorf("Hosts = %v", cfg.Hosts)
	}
	if len(cfg.Plugins) != 1 {
		t.Fatalf("expected 1 plugin, got %d", len(cfg.Plugins))
	}
	p := cfg.Plugins[0]
	if len(p.Detect) != 2 || p.Detect[0].Then != "getRawGameVersion" || !p.Detect[1].Strict {
		t.Errorf("plugin steps not decoded: %+v", p.Detect)
	}
	if FileUsed() != path {
		t.Errorf("FileUsed() = %q, want %q", FileUsed(), path)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("MCPLAT_PLATFORM", "forge")
	Init()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Platform != "forge" {
		t.Errorf("Platform = %q, want forge from environment", cfg.Platform)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	isolate(t)
	Init()

	// Load with non-existent config file should error
	_, err := Load("/non/existent/path/config.yaml")
	if err == nil {
		t.Fatal("Load() with non-existent explicit path should error")
	}
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "invalid version",
			content: "version: 2\n",
			wantErr: "unsupported config version: 2",
		},
		{
			name:    "unknown platform",
			content: "platform: velocity\n",
			wantErr: "invalid platform: velocity",
		},
		{
			name:    "empty host path",
			content: "hosts:\n  - \"\"\n",
			wantErr: "hosts: invalid path: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			configPath := writeConfig(t, dir, tt.content)
			Init()

			_, err := Load(configPath)
			if err == nil {
				t.Error("Load() expected error, got nil")
			} else if err.Error() != "validating config: "+tt.wantErr {
				t.Errorf("Load() error = %v, want %v", err, "validating config: "+tt.wantErr)
			}
		})
	}
}

func TestRead_SkipsValidation(t *testing.T) {
	dir := isolate(t)
	configPath := writeConfig(t, dir, "version: 2\nplatform: velocity\n")
	Init()

	cfg, err := Read(configPath)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if cfg.Platform != "velocity" {
		t.Errorf("Platform = %q, want velocity", cfg.Platform)
	}
	if errs := Validate(cfg); len(errs) != 2 {
		t.Errorf("Validate() = %v, want 2 errors", errs)
	}
}

func TestInit_ClearsPreviousState(t *testing.T) {
	// 1. Load a specific file.
	isolate(t)
	fileA := writeConfig(t, t.TempDir(), "version: 1\nplatform: bukkit\n")
	Init()
	if _, err := Load(fileA); err != nil {
		t.Fatalf("First Load failed: %v", err)
	}

	// 2. Put a different default config in the search path.
	dirB := t.TempDir()
	t.Setenv(envConfigDir, dirB)
	writeConfig(t, dirB, "version: 1\nplatform: forge\n")

	// 3. Re-Initialize. This SHOULD clear the specific file from step 1.
	Init()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Second Load failed: %v", err)
	}
	if cfg.Platform != "forge" {
		t.Errorf("expected config from default path, got platform %q (file %s)", cfg.Platform, FileUsed())
	}
}

func TestHostFiles(t *testing.T) {
	t.Run("configured paths are expanded", func(t *testing.T) {
		home, err := paths.ResolveHome()
		if err != nil {
			t.Skip("no home directory")
		}
		cfg := &Config{Hosts: []string{"~/paper.yaml", "/srv/forge.toml"}}
		got, err := cfg.HostFiles()
		if err != nil {
			t.Fatal(err)
		}
		want := []string{filepath.Join(home, "paper.yaml"), "/srv/forge.toml"}
		if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
			t.Errorf("HostFiles() = %v, want %v", got, want)
		}
	})

	t.Run("defaults to hosts dir", func(t *testing.T) {
		cfg := &Config{}
		got, err := cfg.HostFiles()
		if err != nil {
			t.Fatal(err)
		}
		want, _ := paths.ManifestFiles(paths.HostsDir())
		if len(got) != len(want) {
			t.Errorf("HostFiles() = %v, want %v", got, want)
		}
	})
}

func TestRegisterPlugins(t *testing.T) {
	cfg := &Config{Plugins: []platform.Definition{{
		Name:       "quilt",
		Namespaces: []string{"hashed"},
		Detect:     []platform.Step{{Class: "org.quiltmc.Loader", Method: "version"}},
	}}}

	reg := platform.NewRegistry()
	if err := cfg.RegisterPlugins(reg); err != nil {
		t.Fatalf("RegisterPlugins() error = %v", err)
	}
	if _, ok := reg.Get("quilt"); !ok {
		t.Error("quilt not registered")
	}
}
