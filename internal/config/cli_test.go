package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intfrr/jankdrone/internal/cmd"
)

func parse(t *testing.T, userPath string, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, append(Options(userPath, "1.2.3"), kong.Exit(func(int) { t.Fatal("unexpected exit") }))...)
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return &cli, ctx
}

func TestDefaultCommand(t *testing.T) {
	cli, ctx := parse(t, "")
	assert.Equal(t, "generate", ctx.Command())
	assert.Equal(t, ".", cli.Generate.Root)
	assert.Empty(t, cli.Generate.Schema)
	assert.Equal(t, "info", cli.Log.Level)
}

func TestFlags(t *testing.T) {
	cli, ctx := parse(t, "", "--log.level=debug", "check", "--root", "/src/jankdrone", "--schema", "layout.hcl")
	assert.Equal(t, "check", ctx.Command())
	assert.Equal(t, "/src/jankdrone", cli.Check.Root)
	assert.Equal(t, "layout.hcl", cli.Check.Schema)
	assert.Equal(t, "debug", cli.Log.Level)
}

func TestEnv(t *testing.T) {
	t.Setenv("SHMGEN_ROOT", "/env/root")
	t.Setenv("SHMGEN_TEMPLATES", "/env/templates")
	t.Setenv("SHMGEN_LOG_LEVEL", "warn")

	cli, _ := parse(t, "", "generate")
	assert.Equal(t, "/env/root", cli.Generate.Root)
	assert.Equal(t, "/env/templates", cli.Generate.Templates)
	assert.Equal(t, "warn", cli.Log.Level)
}

func TestConfigFiles(t *testing.T) {
	type testCase struct {
		file    string
		content string
	}

	testCases := []testCase{
		{file: "shmgen.json", content: `{"root": "/from/json", "log": {"level": "trace"}}`},
		{file: "shmgen.yaml", content: "generate:\n  root: /from/yaml\n"},
		{file: "shmgen.toml", content: "root = \"/from/toml\"\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.file, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tc.file)
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o644))

			cli, _ := parse(t, path, "--config", path)
			assert.Equal(t, "/from/"+filepath.Ext(tc.file)[1:], cli.Generate.Root)

			// Flags win over the file.
			cli, _ = parse(t, path, "--config", path, "generate", "--root", "/from/flag")
			assert.Equal(t, "/from/flag", cli.Generate.Root)
		})
	}

	t.Run("nested log section", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "shmgen.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"log": {"level": "trace"}}`), 0o644))
		cli, _ := parse(t, path)
		assert.Equal(t, "trace", cli.Log.Level)
	})
}

var rootValue = regexp.MustCompile(`("?root"?\s*[:=]\s*)("\."|\.)`)

func TestScaffoldedConfigIsRead(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	for _, format := range []string{"json", "yaml", "toml"} {
		t.Run(format, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "shmgen."+format)
			require.NoError(t, (&cmd.ConfigInit{Format: format, Output: path}).Run(logger))

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			edited := rootValue.ReplaceAllString(string(data), `${1}"/scaffolded"`)
			require.NotEqual(t, string(data), edited, "root default not found in:\n%s", data)
			edited = strings.ReplaceAll(edited, "info", "debug")
			require.NoError(t, os.WriteFile(path, []byte(edited), 0o644))

			cli, _ := parse(t, path, "--config", path)
			assert.Equal(t, "/scaffolded", cli.Generate.Root)
			assert.Equal(t, "debug", cli.Log.Level)

			cli, _ = parse(t, path, "--config", path, "check")
			assert.Equal(t, "/scaffolded", cli.Check.Root)
			assert.Equal(t, "debug", cli.Log.Level)
		})
	}
}

func TestFindUserConfig(t *testing.T) {
	t.Setenv("SHMGEN_CONFIG", "")
	assert.Equal(t, "a.yaml", FindUserConfig([]string{"--config", "a.yaml"}))
	assert.Equal(t, "b.toml", FindUserConfig([]string{"check", "--config=b.toml"}))
	assert.Empty(t, FindUserConfig([]string{"generate", "--config"}))

	t.Setenv("SHMGEN_CONFIG", "env.json")
	assert.Equal(t, "env.json", FindUserConfig([]string{"generate"}))
}
