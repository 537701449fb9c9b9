package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/funkybob/aio-mini-chat/chatterbox"
	"github.com/funkybob/aio-mini-chat/chatterbox/relay"
	"github.com/funkybob/aio-mini-chat/internal/config"
	"github.com/funkybob/aio-mini-chat/internal/logging"
	"github.com/funkybob/aio-mini-chat/internal/tui"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chatterbox [relay-url]",
		Short: "Terminal client for a chatterbox relay",
		Long: `chatterbox joins the chat served by a relay at relay-url.

Type to send a message. Commands:
  /nick <name>          change your nickname
  /me <text>            send an action
  /msg <target> <text>  send a directed message
  /names                refresh the participant list
  /topic [text]         show or set the topic

Tab completes nicknames, ctrl+r reconnects, esc quits.

Settings are read from ~/.config/chatterbox/config.yaml (or config.toml),
then from --config, then from flags.`,
		Version:      version,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, args)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
	cmd.SetVersionTemplate(`{{printf "chatterbox version %s\n" .Version}}`)

	cmd.Flags().String("config", "", "config file (.yaml or .toml)")
	cmd.Flags().String("transport", "", "push-stream transport: sse or ws")
	cmd.Flags().String("log-level", "", "log level: debug, info, warn or error")
	cmd.Flags().String("log-file", "", "write logs to this file (default: discard)")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

// resolveConfig layers explicitly set flags and the URL argument over the
// config files.
func resolveConfig(cmd *cobra.Command, args []string) (config.Config, error) {
	fs := cmd.Flags()
	configPath, _ := fs.GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	if len(args) == 1 {
		cfg.URL = args[0]
	}
	for name, dst := range map[string]*string{
		"transport": &cfg.Transport,
		"log-level": &cfg.Log.Level,
		"log-file":  &cfg.Log.File,
	} {
		if fs.Changed(name) {
			*dst, _ = fs.GetString(name)
		}
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func run(ctx context.Context, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	slogger, closer, err := logging.New(level, cfg.Log.File)
	if err != nil {
		return err
	}
	defer closer.Close()
	logger := chatterbox.NewSlogLogger(slogger)

	session, err := newSession(cfg, logger)
	if err != nil {
		return err
	}

	model := tui.New(ctx, session, cfg.URL)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithReportFocus(), tea.WithContext(ctx))
	sink := tui.NewSink(p)
	session.SetDisplay(sink)
	session.SetPendingSink(sink)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	runErr := make(chan error, 1)
	go func() {
		runErr <- session.Run(ctx)
		p.Quit()
	}()

	_, uiErr := p.Run()
	cancel()
	sessionErr := <-runErr
	if uiErr != nil && !errors.Is(uiErr, tea.ErrProgramKilled) {
		return uiErr
	}
	if sessionErr != nil {
		return fmt.Errorf("session: %w", sessionErr)
	}
	return nil
}

func newSession(cfg config.Config, logger chatterbox.Logger) (*chatterbox.Session, error) {
	sc := cfg.Session()
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	client, err := relay.NewClient(sc.URL, cfg.RelayOptions(logger))
	if err != nil {
		return nil, err
	}

	var transport chatterbox.Transport
	switch cfg.Transport {
	case config.TransportWebSocket:
		transport = relay.NewWebSocketTransport(client)
	default:
		transport = relay.NewSSETransport(client)
	}

	session := chatterbox.NewSession(sc, transport, client)
	session.SetLogger(logger)
	return session, nil
}
