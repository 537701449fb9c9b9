package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funkybob/aio-mini-chat/chatterbox"
	"github.com/funkybob/aio-mini-chat/chatterbox/relay"
	"github.com/funkybob/aio-mini-chat/internal/config"
)

func TestResolveConfigFlagsWin(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "chat.yaml")
	require.NoError(t, os.WriteFile(path, []byte("url: http://file.example/\ntransport: ws\nlog:\n  level: debug\n"), 0o644))

	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--config", path, "--transport", "sse"}))

	cfg, err := resolveConfig(cmd, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://file.example/", cfg.URL)
	assert.Equal(t, config.TransportSSE, cfg.Transport)
	assert.Equal(t, "debug", cfg.Log.Level)

	cfg, err = resolveConfig(cmd, []string{"http://arg.example/"})
	require.NoError(t, err)
	assert.Equal(t, "http://arg.example/", cfg.URL)
}

func TestResolveConfigRequiresURL(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := resolveConfig(newRootCmd(), nil)
	assert.Error(t, err)
}

func TestNewSessionPicksTransport(t *testing.T) {
	cfg := config.Default()
	cfg.URL = "http://localhost:8080"

	s, err := newSession(cfg, chatterbox.DiscardLogger())
	require.NoError(t, err)
	assert.NotNil(t, s)

	cfg.Transport = config.TransportWebSocket
	s, err = newSession(cfg, chatterbox.DiscardLogger())
	require.NoError(t, err)
	assert.NotNil(t, s)

	cfg.URL = "not a url"
	_, err = newSession(cfg, chatterbox.DiscardLogger())
	assert.Equal(t, chatterbox.ErrorInvalidConfig, chatterbox.CodeOf(err))

	var _ chatterbox.Transport = (*relay.SSETransport)(nil)
	var _ chatterbox.Transport = (*relay.WebSocketTransport)(nil)
	var _ chatterbox.Sender = (*relay.Client)(nil)
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "chatterbox version dev\n", out.String())
}
