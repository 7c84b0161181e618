package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/thoreinstein/mcplat/internal/cli"
	"github.com/thoreinstein/mcplat/internal/config"
	"github.com/thoreinstein/mcplat/internal/logging"
)

const paperManifest = `name: paper
classes:
  - name: org.bukkit.Bukkit
    methods:
      getMinecraftVersion:
        value: "1.20.4"
      getVersion:
        value: "git-Paper-496 (MC: 1.20.4)"
`

const brokenForgeManifest = `name: broken-forge
classes:
  - name: net.minecraftforge.common.MinecraftForge
`

const emptyManifest = "name: bare\n"

func writeManifest(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func testEnv(t *testing.T, opts cli.Options) *cli.Env {
	t.Helper()
	if opts.Config == nil {
		opts.Config = &config.Config{Version: config.CurrentVersion}
	}
	opts.Logger = logging.ForTest(t)
	env, err := cli.NewEnv(opts)
	if err != nil {
		t.Fatalf("NewEnv() error = %v", err)
	}
	return env
}
