//go:build !integration

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// getFreePort returns a free TCP port on localhost.
func getFreePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	l.Close()
	return port
}

func TestBuildRouter_ServerLifecycle(t *testing.T) {
	// Test the full server start + request + graceful shutdown cycle.
	port := getFreePort(t)
	srv := &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", port),
		Handler: buildRouter(testConfig()),
	}

	// Start server in background.
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for server to be ready.
	var ready bool
	for i := 0; i < 20; i++ {
		resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/health", port))
		if err == nil {
			resp.Body.Close()
			ready = true
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	require.True(t, ready, "server did not become ready in time")

	// Make a real link request.
	resp, err := http.Post(
		fmt.Sprintf("http://127.0.0.1:%d/v1/link", port),
		"application/json",
		strings.NewReader(`{"url":"https://shop.com/?gclid=G1"}`),
	)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "https://wa.me/5511999999999?text=Hi!%20https%3A%2F%2Fshop.com%2F%3Fgclid%3DG1", body["link"])

	// Graceful shutdown.
	require.NoError(t, srv.Shutdown(context.Background()))

	// Wait for server to finish.
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not shut down in time")
	}
}

func TestServeCmd_InvalidConfig(t *testing.T) {
	yaml := `
server:
  rate_limit: 0
`
	_, err := executeCommand(t, yaml, "serve", "--port", "8081")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.rate_limit must be > 0")
}
