package main

import (
	"bytes"
	"encoding/base64"
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/wa-widget/internal/config"
)

// testConfig returns a Config with server defaults populated.
func testConfig() *config.Config {
	return &config.Config{
		Widget: config.WidgetConfig{
			Phone:   "+55 11 99999-9999",
			Message: "Hi! {url}",
			UTM:     true,
		},
		Server: config.ServerConfig{
			Port:           8080,
			AllowedOrigins: []string{"*"},
			RateLimit:      100,
			RateBurst:      100,
		},
		Log: config.LogConfig{Level: "error", Format: "json"},
	}
}

// rdCookie builds a cookie string carrying an RD Station payload.
func rdCookie(payload string) string {
	return "__trf.src=encoded_" + base64.StdEncoding.EncodeToString([]byte(payload))
}

// resetFlags restores every command flag to its default between executions.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// executeCommand runs the CLI in a temp dir with an optional config.yaml and
// returns stdout.
func executeCommand(t *testing.T, configYAML string, args ...string) (string, error) {
	t.Helper()

	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	if configYAML != "" {
		require.NoError(t, os.WriteFile("config.yaml", []byte(configYAML), 0644))
	}
	t.Setenv("WAWIDGET_LOG_LEVEL", "error")

	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}
