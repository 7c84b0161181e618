// Package paths resolves the filesystem locations mcplat reads from.
//
// The package wraps github.com/adrg/xdg for XDG Base Directory compliance, so
// the configuration lives under ~/.config/mcplat on Linux and the platform
// equivalent elsewhere:
//
//	paths.ConfigDir() // ~/.config/mcplat
//	paths.HostsDir()  // ~/.config/mcplat/hosts
//
// Host manifests listed in the configuration may use a leading "~"; resolve
// them with [Expand]. When no manifests are configured, [ManifestFiles]
// discovers them in [HostsDir].
package paths
