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
	expected := []string{"resolve", "enrich", "link", "serve"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "wa-widget", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestDocumentCommands_Flags(t *testing.T) {
	for _, cmd := range []string{"resolve", "enrich", "link"} {
		c, _, err := rootCmd.Find([]string{cmd})
		require.NoError(t, err)
		for _, name := range []string{"url", "referrer", "cookie", "title"} {
			assert.NotNil(t, c.Flags().Lookup(name), "%s should have --%s flag", cmd, name)
		}
	}
}

func TestResolveCommand_FormatDefault(t *testing.T) {
	flag := resolveCmd.Flags().Lookup("format")
	require.NotNil(t, flag)
	assert.Equal(t, "json", flag.DefValue)
}

func TestLinkCommand_Flags(t *testing.T) {
	for _, name := range []string{"phone", "message", "no-utm"} {
		assert.NotNil(t, linkCmd.Flags().Lookup(name), "link should have --%s flag", name)
	}
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "serve command should have --port flag")
	assert.Equal(t, "0", flag.DefValue)
}
