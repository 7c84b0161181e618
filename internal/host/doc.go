// Package host models the introspection context platform detection runs
// against: the set of classes, methods, and fields an embedding process makes
// reachable.
//
// A [Loader] resolves class names to [Class] values; classes expose static
// [Method] and [Field] members, and method results may themselves be [Object]
// values with instance methods. Lookups report two kinds of failure:
//
//   - Absence ([ErrClassNotFound], [ErrNoSuchMethod], [ErrNoSuchField]): the
//     symbol is not part of this host. [IsAbsent] recognizes these.
//   - Integrity ([ErrIllegalAccess], [ErrInvocation]): the symbol exists but
//     could not be used.
//
// # Loaders
//
// [Table] is an in-memory loader. [Default] returns the module's own table,
// which an embedding process fills with the symbols it exposes:
//
//	host.Default().MustDefine(host.ClassDef{
//		Name: "org.bukkit.Bukkit",
//		Methods: map[string]host.Method{
//			"getMinecraftVersion": host.Const("1.20.4"),
//		},
//	})
//
// [Chain] combines loaders parent-first.
//
// # Manifests
//
// A [Manifest] is a file-backed snapshot of a host in YAML, TOML, or JSON.
// [LoadManifests] turns one or more manifest files into a chained loader.
//
// All loaders are read-only views; nothing in this package mutates the host.
package host
