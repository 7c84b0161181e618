package platform

import (
	"regexp"
	"slices"

	"github.com/thoreinstein/mcplat/internal/host"
)

// Built-in platform names, in resolution priority order.
const (
	NameMojang   = "mojang"
	NameBukkit   = "bukkit"
	NameNeoForge = "neoforge"
	NameForge    = "forge"
)

// Mapping namespaces used by the built-in platforms.
const (
	NamespaceMojang = "mojang"
	NamespaceSpigot = "spigot"
	NamespaceSearge = "searge"
)

// bukkitVersionPattern pulls the game version out of Bukkit.getVersion(),
// e.g. "git-Spigot-79a30d7-f4830a1 (MC: 1.8.8)".
var bukkitVersionPattern = regexp.MustCompile(`\(MC: ([^)]+?)\)`)

// NewMojang creates the descriptor for Mojang software derivatives (Mojang mappings).
func NewMojang(opts ...Option) *Base {
	return MustNew(NameMojang, []string{NamespaceMojang},
		Fallback(
			StaticCallThen("net.minecraft.SharedConstants", "getCurrentVersion", "getName"),
		),
		opts...)
}

// NewBukkit creates the descriptor for hosts implementing the Bukkit API
// (Spigot mappings). Paper's getMinecraftVersion is preferred; plain Bukkit
// falls back to parsing getVersion, which is then mandatory.
//
// Bukkit always resolves through host.Default() first, even when another
// loader is given. A loader passed with WithLoader is only consulted for
// classes the default context lacks.
func NewBukkit(opts ...Option) *Base {
	return MustNew(NameBukkit, []string{NamespaceSpigot},
		Fallback(
			StaticCall("org.bukkit.Bukkit", "getMinecraftVersion"),
			Strict(Extract(StaticCall("org.bukkit.Bukkit", "getVersion"), bukkitVersionPattern)),
		),
		append(slices.Clip(opts), pinDefaultLoader)...)
}

// pinDefaultLoader puts host.Default() ahead of whatever loader was chosen.
func pinDefaultLoader(o *options) {
	def := host.Default()
	switch {
	case o.loader == nil, o.loader == host.Loader(def):
		o.loader = def
	default:
		o.loader = host.Chain(def, o.loader)
	}
}

// NewForge creates the descriptor for Forge-based hosts (Searge mappings).
// Flattening-era Forge exposes MCPVersion; legacy Forge only has the
// MinecraftForge.MC_VERSION field.
func NewForge(opts ...Option) *Base {
	return MustNew(NameForge, []string{NamespaceSearge},
		Fallback(
			StaticCall("net.minecraftforge.versions.mcp.MCPVersion", "getMCVersion"),
			Strict(StaticField("net.minecraftforge.common.MinecraftForge", "MC_VERSION")),
		),
		opts...)
}

// NewNeoForge creates the NeoForge descriptor, a deprecated alias of mojang.
func NewNeoForge(mojang Descriptor) *Alias {
	return NewAlias(NameNeoForge, mojang)
}

// Built-in descriptors bound to host.Default().
var (
	Mojang = NewMojang()
	Bukkit = NewBukkit()

	// Deprecated: NeoForge hosts use Mojang mappings; use Mojang.
	NeoForge = NewNeoForge(Mojang)

	Forge = NewForge()
)

// Builtins returns the package-level built-in descriptors in priority order.
func Builtins() []Descriptor {
	return []Descriptor{Mojang, Bukkit, NeoForge, Forge}
}

// NewBuiltins creates a fresh set of built-in descriptors, in priority order,
// probing the given loader. Tests and tools that inspect a host other than
// the running process use this instead of Builtins.
func NewBuiltins(opts ...Option) []Descriptor {
	mojang := NewMojang(opts...)
	return []Descriptor{
		mojang,
		NewBukkit(opts...),
		NewNeoForge(mojang),
		NewForge(opts...),
	}
}
