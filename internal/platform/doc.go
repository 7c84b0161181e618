// Package platform determines which host environment the library runs in
// and describes it for the symbol-remapping layer.
//
// A [Descriptor] describes one candidate platform: whether it is supported
// here, the host version, and the ordered mapping namespaces consumers use to
// resolve symbols. Built-in descriptors cover Mojang-mapped hosts, Bukkit
// (Spigot mappings), and Forge (Searge mappings); NeoForge remains as a
// deprecated [Alias] of Mojang.
//
// # Detection
//
// Each descriptor probes its host lazily, once, through a [host.Loader].
// Detection is a chain of [Strategy] values built with [Fallback]: a strategy
// whose signal is absent falls through to the next, while a signal that is
// present but broken is an integrity failure reported as an error wrapping
// [ErrIntegrity]. Absence is never an error:
//
//	ok, err := platform.Bukkit.IsSupported()
//	if err != nil {
//	    return err // host is Bukkit-like but broken
//	}
//
// [Descriptor.Version] on an unsupported descriptor returns [ErrUnsupported].
//
// # Resolution
//
// A [Resolver] searches the built-ins in priority order, then the plugin
// [Registry], and caches the first supported descriptor:
//
//	d, err := platform.CurrentPlatform()
//	if errors.Is(err, platform.ErrNoSupportedPlatform) {
//	    platform.SetCurrentPlatform(platform.Forge)
//	}
//
// # Plugins
//
// Packages contribute descriptors by registering them from init:
//
//	func init() {
//	    platform.MustRegister(platform.MustNew("fabric", []string{"intermediary"},
//	        platform.Fallback(platform.StaticCall("net.fabricmc.loader.api.FabricLoader", "getRawGameVersion"))))
//	}
//
// Operators can do the same without Go code through a [Definition].
// Registry order is unspecified; only built-ins have a fixed priority.
//
// # Thread Safety
//
// Descriptors, registries, and resolvers are safe for concurrent use.
package platform
