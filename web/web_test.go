package web

import (
	"net"
	"net/http"
	"os"
	"strconv"
	"testing"

	"melodix/logger"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "melodix-test-*")
	if err != nil {
		panic(err)
	}
	os.Setenv("MELODIX_LOG_FOLDER", dir)
	logger.InitLogger(logging.ERROR)

	code := m.Run()

	_ = os.RemoveAll(dir)
	os.Exit(code)
}

// freePort grabs an ephemeral port and releases it for the server to claim.
func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return port
}

func TestServerStartStop(t *testing.T) {
	t.Setenv("MELODIX_LISTEN", "127.0.0.1")
	t.Setenv("MELODIX_PORT", strconv.Itoa(freePort(t)))

	server := NewServer()
	require.NoError(t, server.Start())

	addr := server.Addr()
	require.NotEmpty(t, addr)

	resp, err := http.Get("http://" + addr + "/api/no-such-route")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	require.NoError(t, server.Stop())

	_, err = http.Get("http://" + addr + "/api/no-such-route")
	assert.Error(t, err)
}
