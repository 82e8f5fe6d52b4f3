package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/hy4ri/actionboard/internal/tui/utils"
	"github.com/spf13/cobra"
)

var errEmptyTranscript = errors.New("transcript is empty")

func submitCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "submit [text...]",
		Short: "Extract action items from a transcript",
		Long: `Send a meeting transcript to the backend and print the extracted action items.

The transcript is read from the arguments, or from stdin when none are given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read transcript: %w", err)
				}
				text = string(data)
			}
			text = strings.TrimSpace(text)
			if text == "" {
				return errEmptyTranscript
			}

			client, _, err := opts.newClient()
			if err != nil {
				return err
			}

			resp, err := client.ProcessTranscript(text)
			if err != nil {
				return errors.New(utils.ErrorText(err, "Failed to process transcript"))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, utils.ExtractedMessage(len(resp.Tasks)))
			for _, task := range resp.Tasks {
				printTask(out, task)
			}
			return nil
		},
	}
}

func historyCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently processed transcripts",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := opts.newClient()
			if err != nil {
				return err
			}

			limit, _ := cmd.Flags().GetInt("limit")
			if limit <= 0 {
				limit = cfg.UI.HistoryLimit
			}

			transcripts, err := client.GetTranscripts(limit)
			if err != nil {
				return errors.New(utils.ErrorText(err, "Error loading history."))
			}

			out := cmd.OutOrStdout()
			if len(transcripts) == 0 {
				fmt.Fprintln(out, "No transcripts processed yet.")
				return nil
			}

			now := time.Now()
			for _, tr := range transcripts {
				fmt.Fprintf(out, "#%d  %s  %d task(s)\n", tr.ID, utils.FormatTimestamp(tr.CreatedAt, now), len(tr.Tasks))
				fmt.Fprintf(out, "    %s\n", utils.TruncateString(utils.SanitizeLine(tr.Text), 100))
			}
			return nil
		},
	}

	cmd.Flags().IntP("limit", "n", 0, "Number of transcripts to show (default from config)")
	return cmd
}
