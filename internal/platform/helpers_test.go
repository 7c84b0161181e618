package platform

import (
	"sync/atomic"
	"testing"

	"github.com/thoreinstein/mcplat/internal/host"
)

// newHost builds a fake host exposing the given classes.
func newHost(t *testing.T, defs ...host.ClassDef) *host.Table {
	t.Helper()
	tbl := host.NewTable(t.Name())
	for _, d := range defs {
		if err := tbl.Define(d); err != nil {
			t.Fatalf("defining %s: %v", d.Name, err)
		}
	}
	return tbl
}

// counting wraps a member so tests can assert how often the host was consulted.
func counting(n *atomic.Int32, m func() (any, error)) func() (any, error) {
	return func() (any, error) {
		n.Add(1)
		return m()
	}
}

func mojangClass(version string) host.ClassDef {
	return host.ClassDef{
		Name: "net.minecraft.SharedConstants",
		Methods: map[string]host.Method{
			"getCurrentVersion": host.Const(host.NewInstance("net.minecraft.WorldVersion", map[string]host.Method{
				"getName": host.Const(version),
			})),
		},
	}
}

func paperClass(version string) host.ClassDef {
	return host.ClassDef{
		Name: "org.bukkit.Bukkit",
		Methods: map[string]host.Method{
			"getMinecraftVersion": host.Const(version),
			"getVersion":          host.Const("git-Paper-196 (MC: " + version + ")"),
		},
	}
}

func spigotClass(versionString string) host.ClassDef {
	return host.ClassDef{
		Name: "org.bukkit.Bukkit",
		Methods: map[string]host.Method{
			"getVersion": host.Const(versionString),
		},
	}
}

func modernForgeClass(version string) host.ClassDef {
	return host.ClassDef{
		Name: "net.minecraftforge.versions.mcp.MCPVersion",
		Methods: map[string]host.Method{
			"getMCVersion": host.Const(version),
		},
	}
}

func legacyForgeClass(version string) host.ClassDef {
	return host.ClassDef{
		Name: "net.minecraftforge.common.MinecraftForge",
		Fields: map[string]host.Field{
			"MC_VERSION": host.Const(version),
		},
	}
}
