package doctor

import (
	"fmt"
	"os"
	"runtime"

	"github.com/thoreinstein/mcplat/internal/config"
	"github.com/thoreinstein/mcplat/internal/host"
	"github.com/thoreinstein/mcplat/internal/paths"
	"github.com/thoreinstein/mcplat/internal/platform"
)

// ConfigCheck reads the configuration file and reports every validation
// problem rather than stopping at the first.
type ConfigCheck struct {
	// Path is the explicit config file, or "" to search the default locations.
	Path string
}

var _ Check = (*ConfigCheck)(nil)

// Name returns the unique identifier for this check.
func (c *ConfigCheck) Name() string { return "config" }

// Category returns the grouping for this check.
func (c *ConfigCheck) Category() string { return "config" }

// Run reads and validates the configuration.
func (c *ConfigCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	cfg, err := config.Read(c.Path)
	if err != nil {
		result.Status = SeverityError
		result.Message = err.Error()
		result.FixHint = "Fix or remove the config file in " + paths.ConfigDir()
		return result
	}

	file := config.FileUsed()
	if errs := config.Validate(cfg); len(errs) > 0 {
		problems := make([]string, len(errs))
		for i, e := range errs {
			problems[i] = e.Error()
		}
		result.Status = SeverityError
		result.Message = fmt.Sprintf("%d problem(s) in %s", len(errs), file)
		result.Details = map[string]any{"problems": problems}
		return result
	}

	if file == "" {
		result.Status = SeverityInfo
		result.Message = "no config file found, using defaults"
		return result
	}

	result.Status = SeverityPass
	result.Message = "loaded " + file
	if len(cfg.Plugins) > 0 {
		result.Details = map[string]any{"plugins": len(cfg.Plugins)}
	}
	return result
}

// worldWritable is the permission bit that lets anyone rewrite a manifest.
const worldWritable os.FileMode = 0o002

// ManifestCheck loads each host manifest and checks its permissions.
type ManifestCheck struct {
	Files []string
}

var _ Check = (*ManifestCheck)(nil)

// Name returns the unique identifier for this check.
func (c *ManifestCheck) Name() string { return "host-manifests" }

// Category returns the grouping for this check.
func (c *ManifestCheck) Category() string { return "host" }

// Run loads every manifest. A manifest that fails to load is an error; one
// that anyone can write is a warning.
func (c *ManifestCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	if len(c.Files) == 0 {
		result.Status = SeverityWarning
		result.Message = "no host manifests; only the built-in process host is inspected"
		result.FixHint = "Add a manifest to " + paths.HostsDir() + " or set 'hosts' in the config"
		return result
	}

	var (
		broken   = map[string]string{}
		insecure []string
		classes  int
	)
	for _, f := range c.Files {
		m, err := host.LoadManifest(f)
		if err != nil {
			broken[f] = err.Error()
			continue
		}
		classes += len(m.Classes)

		if runtime.GOOS == "windows" {
			continue
		}
		if info, err := os.Stat(f); err == nil && info.Mode().Perm()&worldWritable != 0 {
			insecure = append(insecure, f)
		}
	}

	switch {
	case len(broken) > 0:
		result.Status = SeverityError
		result.Message = fmt.Sprintf("%d of %d manifest(s) failed to load", len(broken), len(c.Files))
		result.Details = map[string]any{"failures": broken}
		result.FixHint = "Check the files with 'mcplat host show --host <file>'"
	case len(insecure) > 0:
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("%d manifest(s) are world-writable", len(insecure))
		result.Details = map[string]any{"files": insecure}
		result.FixHint = "chmod 644 " + insecure[0]
	default:
		result.Status = SeverityPass
		result.Message = fmt.Sprintf("%d manifest(s), %d class(es)", len(c.Files), classes)
	}
	return result
}

// DetectionCheck surveys every candidate platform against the host.
type DetectionCheck struct {
	Resolver *platform.Resolver

	// Err is set when the resolver could not be built; the survey is skipped.
	Err error
}

var _ Check = (*DetectionCheck)(nil)

// Name returns the unique identifier for this check.
func (c *DetectionCheck) Name() string { return "detection" }

// Category returns the grouping for this check.
func (c *DetectionCheck) Category() string { return "platform" }

// Run probes each candidate. A platform whose API is present but unusable is
// an error; finding no platform at all is a warning.
func (c *DetectionCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	if c.Err != nil || c.Resolver == nil {
		result.Status = SeverityInfo
		result.Message = "skipped: no host to inspect"
		if c.Err != nil {
			result.Message = "skipped: " + c.Err.Error()
		}
		return result
	}

	var (
		failures = map[string]string{}
		first    *platform.Report
	)
	reports := c.Resolver.Survey()
	for i := range reports {
		rep := &reports[i]
		if rep.Err != nil {
			failures[rep.Name] = rep.Error
			continue
		}
		if first == nil && rep.State == platform.Supported {
			first = rep
		}
	}

	switch {
	case len(failures) > 0:
		result.Status = SeverityError
		result.Message = fmt.Sprintf("%d platform(s) are present but unusable", len(failures))
		result.Details = map[string]any{"failures": failures}
		result.FixHint = "Run 'mcplat detect -vvv' to trace the failing lookups"
	case first == nil:
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("none of %d platform(s) matched the host", len(reports))
		result.FixHint = "Set 'platform' in the config or pass --platform"
	default:
		result.Status = SeverityPass
		result.Message = fmt.Sprintf("%s %s", first.Name, first.Version)
		result.Details = map[string]any{"namespaces": first.Namespaces}
	}
	return result
}
