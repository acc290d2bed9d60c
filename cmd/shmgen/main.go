package main

import (
	"os"

	"github.com/alecthomas/kong"

	"github.com/intfrr/jankdrone/internal/codegen/common"
	"github.com/intfrr/jankdrone/internal/config"
	"github.com/intfrr/jankdrone/internal/log"
)

func main() {
	version, err := common.GetVersion()
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(2)
	}

	var cli config.CLI
	ctx := kong.Parse(&cli, config.Options(config.FindUserConfig(os.Args[1:]), version)...)

	logger, closeFiles, err := log.SetupLogger(cli.Log.Level, cli.Log.File)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}

	ctx.Bind(logger)
	err = ctx.Run()
	// FatalIfErrorf exits without running defers.
	for _, c := range closeFiles {
		_ = c.Close()
	}
	ctx.FatalIfErrorf(err)
}
