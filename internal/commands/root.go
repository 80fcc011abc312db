// Package commands implements the liftlog CLI.
package commands

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"tailscale.com/tsnet"

	"github.com/meltforce/liftlog/internal/api"
	"github.com/meltforce/liftlog/internal/auth"
	"github.com/meltforce/liftlog/internal/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "liftlog",
	Short: "Terminal workout tracker",
	Long: `liftlog is a terminal client for tracking workouts: start a session,
log sets as you lift, and let the client sync your draft to the server
in the background.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// SetVersion sets the version information.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// app bundles everything a command needs: config, logger, token store and
// a ready-to-use API client. Close releases the tailnet node if one was
// started.
type app struct {
	cfg    *config.Config
	log    *slog.Logger
	client *api.Client
	tokens *auth.Store
	token  string

	ts *tsnet.Server
}

// newApp loads config, wires the logger and builds the API client. When
// Tailscale is enabled the client dials the server over the tailnet.
func newApp() (*app, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		level = slog.LevelInfo
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	client := api.NewClient(cfg.Server.URL)

	a := &app{cfg: cfg, log: log, client: client}

	if cfg.Tailscale.Enabled {
		a.ts = &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
			Logf:     func(string, ...any) {},
		}
		if err := a.ts.Start(); err != nil {
			return nil, fmt.Errorf("tsnet start: %w", err)
		}
		hc := a.ts.HTTPClient()
		hc.Timeout = time.Duration(cfg.Server.TimeoutSeconds) * time.Second
		client.SetHTTPClient(hc)
	} else {
		client.SetHTTPClient(&http.Client{
			Timeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		})
	}

	tokenPath := cfg.Auth.TokenPath
	if tokenPath == "" {
		tokenPath, err = auth.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	a.tokens = auth.NewStore(tokenPath)

	token, err := a.tokens.Load()
	if err != nil {
		return nil, err
	}
	a.token = token
	if token != "" {
		client.SetToken(token)
	}

	return a, nil
}

// Close shuts down the tailnet node, if any.
func (a *app) Close() {
	if a.ts != nil {
		a.ts.Close()
	}
}

// requireAuth fails fast when no token is stored.
func (a *app) requireAuth() error {
	if a.token == "" {
		return fmt.Errorf("not logged in — run 'liftlog login' first")
	}
	return nil
}

// runApp wraps a command body with app setup and teardown.
func runApp(fn func(a *app, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(a, cmd, args)
	}
}

// runAuthed is runApp plus the logged-in check.
func runAuthed(fn func(a *app, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return runApp(func(a *app, cmd *cobra.Command, args []string) error {
		if err := a.requireAuth(); err != nil {
			return err
		}
		return fn(a, cmd, args)
	})
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(exerciseCmd)
	rootCmd.AddCommand(splitCmd)
	rootCmd.AddCommand(templateCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(addExerciseCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(finishCmd)
	rootCmd.AddCommand(discardCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
}
