package cli

import (
	"fmt"
	"os"

	"github.com/hy4ri/actionboard/internal/config"
	"github.com/spf13/cobra"
)

func initCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a config file",
		Long: `Create a config file with default settings.

--server sets the backend URL written to the file. --token stores a bearer token
in the system keyring (or a credentials file when no keyring is available).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			token, _ := cmd.Flags().GetString("token")
			return initConfig(cmd, opts, force, token)
		},
	}

	cmd.Flags().BoolP("force", "f", false, "Overwrite an existing config file")
	cmd.Flags().String("token", "", "Bearer token to store securely")
	return cmd
}

// initConfig writes a default config file, asking before it overwrites one.
func initConfig(cmd *cobra.Command, opts *options, force bool, token string) error {
	out := cmd.OutOrStdout()

	path := opts.configPath
	if path == "" {
		var err error
		if path, err = config.ConfigPath(); err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
	}

	// Check if config already exists
	if _, err := os.Stat(path); err == nil && !force {
		fmt.Fprintf(out, "Config file already exists: %s\n", path)
		fmt.Fprint(out, "Overwrite? [y/N]: ")
		if !confirmed(cmd.InOrStdin()) {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	cfg := config.DefaultConfig()
	if opts.server != "" {
		cfg.Server.BaseURL = opts.server
	}
	if err := config.SaveFile(path, cfg); err != nil {
		return err
	}
	fmt.Fprintf(out, "Config file created: %s\n", path)

	if token != "" {
		if err := config.SaveToken(token); err != nil {
			return fmt.Errorf("failed to store token: %w", err)
		}
		fmt.Fprintln(out, "Token stored.")
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintf(out, "  1. Start the backend at %s\n", cfg.Server.BaseURL)
	fmt.Fprintln(out, "  2. Run 'actionboard' to open the board")
	return nil
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored bearer token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ClearToken(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Token removed.")
			return nil
		},
	}
}

func versionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "actionboard version %s\n", version)
		},
	}
}
