// Package config loads the mcplat configuration file.
//
// The file is config.yaml, searched in $MCPLAT_CONFIG_DIR, the current
// directory, and ~/.config/mcplat, in that order. Every key may be
// overridden from the environment with the MCPLAT_ prefix.
//
//	version: 1
//	platform: forge          # optional: skip detection
//	hosts:                   # optional: defaults to ~/.config/mcplat/hosts/*
//	  - ~/servers/paper.yaml
//	plugins:
//	  - name: fabric
//	    namespaces: [intermediary, named]
//	    detect:
//	      - class: net.fabricmc.loader.api.FabricLoader
//	        method: getInstance
//	        then: getRawGameVersion
//
// Call [Init] once, then [Load]. Loaded configurations are validated; use
// [Validate] directly to collect every problem rather than the first.
package config
