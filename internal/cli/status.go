package cli

import (
	"fmt"
	"strings"

	"github.com/hy4ri/actionboard/internal/tui/utils"
	"github.com/spf13/cobra"
)

func healthCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show backend, database and LLM health",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := opts.newClient()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Server:    %s\n", client.BaseURL())
			fmt.Fprintln(out, strings.Repeat("=", 40))

			status, err := client.GetStatus()
			if err != nil {
				// Unreachable backend is reported, not fatal
				fmt.Fprintf(out, "Backend:   %s\n", utils.ErrorText(err, "unreachable"))
				return nil
			}

			fmt.Fprintf(out, "Backend:   %s\n", utils.SanitizeLine(status.Backend))
			fmt.Fprintf(out, "Database:  %s\n", utils.SanitizeLine(status.Database))
			fmt.Fprintf(out, "LLM:       %s\n", utils.SanitizeLine(status.LLM))
			return nil
		},
	}
}
