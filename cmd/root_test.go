package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()

	// Collect subcommand names.
	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	// Verify expected subcommands are registered.
	expected := []string{"match", "appstats", "popstats", "migrate", "serve", "runs", "report", "config"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "clickstream-cli", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestMatchCommand_Flags(t *testing.T) {
	for _, flagName := range []string{"primary", "reference", "name-column", "threshold", "workers", "matches-out", "merged-out"} {
		flag := matchCmd.Flags().Lookup(flagName)
		assert.NotNil(t, flag, "match should have --%s flag", flagName)
	}

	top := matchCmd.Flags().Lookup("top")
	require.NotNil(t, top)
	assert.Equal(t, "10", top.DefValue)
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "serve command should have --port flag")
	assert.Equal(t, "0", flag.DefValue)
}

func TestMigrateCommand_Flags(t *testing.T) {
	flag := migrateCmd.Flags().Lookup("date")
	require.NotNil(t, flag, "migrate command should have --date flag")
}

func TestConfigCommand_HasInit(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range configCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["init"])
}
