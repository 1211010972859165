package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"blogcanvas/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	v := config.New()
	v.Set(config.KeySQLitePath, filepath.Join(t.TempDir(), "server.db"))
	v.Set(config.KeyMigrationsPath, "../../../migrations")
	v.Set(config.KeyShutdownTimeout, time.Second)
	cfg, err := config.Load(v)
	require.NoError(t, err)
	return cfg
}

func serve(t *testing.T, cfg *config.Config) (string, func() error) {
	t.Helper()
	app, err := New(context.Background(), cfg, slog.Default())
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Serve(ctx, ln) }()

	stop := func() error {
		cancel()
		err := <-done
		return errors.Join(err, app.Close())
	}
	return "http://" + ln.Addr().String(), stop
}

func TestApp_ServeAndShutdown(t *testing.T) {
	base, stop := serve(t, testConfig(t))

	resp, err := http.Get(base + "/api/v1/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(base + "/api/v1/layouts/default")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `"1"`, resp.Header.Get("ETag"))

	assert.NoError(t, stop())
}

func TestApp_WithRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t)
	cfg.Cache.RedisAddr = mr.Addr()

	base, stop := serve(t, cfg)

	for i := 0; i < 2; i++ {
		resp, err := http.Get(base + "/api/v1/layouts/default")
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode, fmt.Sprintf("request %d", i))
	}
	keys := mr.Keys()
	assert.Contains(t, keys, "blogcanvas:layout:default")

	assert.NoError(t, stop())
}

func TestNew_BadRedis(t *testing.T) {
	cfg := testConfig(t)
	cfg.Cache.RedisAddr = "127.0.0.1:1"

	_, err := New(context.Background(), cfg, slog.Default())
	assert.Error(t, err)
}

func TestNew_LogsConfiguredTokens(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	cfg := testConfig(t)
	cfg.Auth.Tokens = map[string]string{"alice": "$2a$04$abcdefghijklmnopqrstuu"}
	app, err := New(context.Background(), cfg, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	assert.Contains(t, buf.String(), `"msg":"API tokens loaded"`)
	assert.Contains(t, buf.String(), `"users":1`)
	assert.NotContains(t, buf.String(), "no API tokens configured")
}
