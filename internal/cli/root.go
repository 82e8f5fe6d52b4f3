// Package cli implements the actionboard command tree.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hy4ri/actionboard/internal/api"
	"github.com/hy4ri/actionboard/internal/config"
	"github.com/hy4ri/actionboard/internal/tui"
	"github.com/hy4ri/actionboard/internal/tui/logic"
	"github.com/hy4ri/actionboard/internal/tui/state"
	"github.com/spf13/cobra"
)

// options are the persistent flags shared by every command.
type options struct {
	configPath string
	server     string
	debug      bool
}

// NewRootCmd builds the command tree. Running it without a subcommand starts the board.
func NewRootCmd(version string) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "actionboard",
		Short: "Terminal board for meeting action items",
		Long: `actionboard turns meeting transcripts into action items and lets you
track them from the terminal.

Run without a command to open the interactive board.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(opts)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file (default ~/.config/actionboard/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&opts.server, "server", "s", "", "Backend base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Write diagnostics to debug.log in the data directory")

	rootCmd.AddCommand(submitCmd(opts))
	rootCmd.AddCommand(historyCmd(opts))
	rootCmd.AddCommand(tasksCmd(opts))
	rootCmd.AddCommand(statusChangeCmd(opts, api.StatusDone))
	rootCmd.AddCommand(statusChangeCmd(opts, api.StatusOpen))
	rootCmd.AddCommand(editCmd(opts))
	rootCmd.AddCommand(deleteCmd(opts))
	rootCmd.AddCommand(healthCmd(opts))
	rootCmd.AddCommand(initCmd(opts))
	rootCmd.AddCommand(logoutCmd())
	rootCmd.AddCommand(versionCmd(version))

	return rootCmd
}

// Execute runs the root command.
func Execute(version string) error {
	if err := NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", errorText(err))
		return err
	}
	return nil
}

// errorText is the message printed for err; local validation errors get the board's wording.
func errorText(err error) string {
	if errors.Is(err, errEmptyTranscript) {
		return "Please enter a transcript"
	}
	return state.ValidationMessage(err)
}

// loadConfig reads the config file named by --config (or the default one) and applies --server.
func (o *options) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFile(o.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if o.server != "" {
		cfg.Server.BaseURL = o.server
	}
	if o.debug {
		cfg.UI.Debug = true
	}
	return cfg, nil
}

// newClient loads the config and returns a client for the configured backend.
func (o *options) newClient() (*api.Client, *config.Config, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}

	token, err := config.ResolveToken(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read token: %w", err)
	}

	client := api.NewClient(cfg.Server.BaseURL, token)
	client.SetTimeout(cfg.RequestTimeout())
	return client, cfg, nil
}

// openDebugLog points the board's diagnostics at debug.log. The caller closes the file.
func openDebugLog() (io.Closer, error) {
	dir, err := config.DataDir()
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(filepath.Join(dir, "debug.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open debug log: %w", err)
	}
	logic.SetDebugLog(f)
	return f, nil
}

// runBoard starts the interactive board.
func runBoard(opts *options) error {
	client, cfg, err := opts.newClient()
	if err != nil {
		return err
	}

	if cfg.UI.Debug {
		closer, err := openDebugLog()
		if err != nil {
			return err
		}
		defer closer.Close()
	}

	p := tea.NewProgram(tui.NewApp(client, cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
