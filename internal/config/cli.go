// Package config declares the shmgen command line.
package config

import (
	"os"
	"strings"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"

	"github.com/intfrr/jankdrone/internal/cmd"
	"github.com/intfrr/jankdrone/internal/configpaths"
	"github.com/intfrr/jankdrone/internal/log"
)

// CLI is the root command tree parsed by kong. Values come from flags, then
// environment variables, then config files.
type CLI struct {
	ConfigFile string           `name:"config" help:"Configuration file (json, yaml or toml)" env:"SHMGEN_CONFIG" placeholder:"FILE"`
	Log        log.Config       `embed:"" prefix:"log."`
	Version    kong.VersionFlag `help:"Print the version and exit"`

	Generate cmd.Generate      `cmd:"" default:"withargs" help:"Render the shared-memory definitions (default)"`
	Check    cmd.Check         `cmd:"" help:"Fail when generated files differ from a fresh render"`
	Config   cmd.ConfigCommand `cmd:"" help:"Configuration helpers"`
}

// Options returns the kong options shmgen parses with. Config files are read
// in priority order: userPath, then the working directory, the user config
// directory and /etc/shmgen. Flags and environment variables override them.
func Options(userPath, version string) []kong.Option {
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userPath)
	return []kong.Option{
		kong.Name("shmgen"),
		kong.Description("Shared-memory layout generator for the jankdrone flight process and its clients"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	}
}

// FindUserConfig returns the --config value from args, falling back to
// SHMGEN_CONFIG. Kong needs the paths before it parses.
func FindUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if v, ok := strings.CutPrefix(a, "--config="); ok {
			return v
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv("SHMGEN_CONFIG")
}
