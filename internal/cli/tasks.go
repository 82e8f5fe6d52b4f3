package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hy4ri/actionboard/internal/api"
	"github.com/hy4ri/actionboard/internal/tui/state"
	"github.com/hy4ri/actionboard/internal/tui/utils"
	"github.com/spf13/cobra"
)

// printTask writes one task in the board's card order: checkbox, text, then optional fields.
func printTask(w io.Writer, task api.Task) {
	check := "[ ]"
	if task.IsDone() {
		check = "[x]"
	}
	fmt.Fprintf(w, "%s #%d %s\n", check, task.ID, utils.SanitizeLine(task.Task))
	if task.Owner != nil {
		fmt.Fprintf(w, "      Owner: %s\n", utils.SanitizeLine(*task.Owner))
	}
	if task.DueDate != nil {
		fmt.Fprintf(w, "      Due: %s\n", utils.SanitizeLine(*task.DueDate))
	}
}

// parseID parses a task ID argument.
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}

func tasksCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List action items",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, _ := cmd.Flags().GetString("status")
			filter, err := state.ParseFilter(raw)
			if err != nil {
				return err
			}

			client, _, err := opts.newClient()
			if err != nil {
				return err
			}

			// The backend filters by status itself; "all" sends no parameter.
			var status api.TaskStatus
			if filter != state.FilterAll {
				status = api.TaskStatus(filter)
			}

			tasks, err := client.GetTasks(status)
			if err != nil {
				return errors.New(utils.ErrorText(err, "Error loading tasks."))
			}

			out := cmd.OutOrStdout()
			if len(tasks) == 0 {
				fmt.Fprintln(out, emptyMessage(filter))
				return nil
			}
			for _, task := range tasks {
				printTask(out, task)
			}
			return nil
		},
	}

	cmd.Flags().String("status", "all", "Filter by status: all, open, done")
	return cmd
}

func emptyMessage(filter state.Filter) string {
	if filter == state.FilterAll {
		return "No action items yet. Process a transcript to get started."
	}
	return fmt.Sprintf("No %s tasks.", filter)
}

// statusChangeCmd builds "done" or "reopen", which set a task's status.
func statusChangeCmd(opts *options, status api.TaskStatus) *cobra.Command {
	use, short, verb := "done <id>", "Mark a task as done", "Marked done"
	if status == api.StatusOpen {
		use, short, verb = "reopen <id>", "Reopen a done task", "Reopened"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			client, _, err := opts.newClient()
			if err != nil {
				return err
			}

			task, err := client.SetTaskStatus(id, status)
			if err != nil {
				return errors.New(utils.ErrorText(err, "Failed to update task"))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", verb, utils.SanitizeLine(task.Task))
			return nil
		},
	}
}

func editCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a task's description, owner or due date",
		Long: `Edit a task. Fields not given keep their current value.

An empty --owner or --due clears that field. Due dates use YYYY-MM-DD.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if !flags.Changed("task") && !flags.Changed("owner") && !flags.Changed("due") {
				return errors.New("nothing to change: pass --task, --owner or --due")
			}

			client, _, err := opts.newClient()
			if err != nil {
				return err
			}

			current, err := client.GetTask(id)
			if err != nil {
				return errors.New(utils.ErrorText(err, "Failed to update task"))
			}

			text, owner, due := current.Task, current.OwnerName(), current.Due()
			if flags.Changed("task") {
				text, _ = flags.GetString("task")
			}
			if flags.Changed("owner") {
				owner, _ = flags.GetString("owner")
			}
			if flags.Changed("due") {
				due, _ = flags.GetString("due")
			}

			req, err := state.BuildEditRequest(text, owner, due)
			if err != nil {
				return err
			}

			updated, err := client.EditTask(id, req)
			if err != nil {
				return errors.New(utils.ErrorText(err, "Failed to update task"))
			}

			printTask(cmd.OutOrStdout(), *updated)
			return nil
		},
	}

	cmd.Flags().String("task", "", "New task description")
	cmd.Flags().String("owner", "", "New owner (empty clears)")
	cmd.Flags().String("due", "", "New due date, YYYY-MM-DD (empty clears)")
	return cmd
}

func deleteCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			client, _, err := opts.newClient()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if yes, _ := cmd.Flags().GetBool("yes"); !yes {
				task, err := client.GetTask(id)
				if err != nil {
					return errors.New(utils.ErrorText(err, "Failed to delete task"))
				}
				fmt.Fprintf(out, "%s\nAre you sure you want to delete this task? [y/N]: ", utils.SanitizeLine(task.Task))
				if !confirmed(cmd.InOrStdin()) {
					fmt.Fprintln(out, "Aborted.")
					return nil
				}
			}

			if err := client.DeleteTask(id); err != nil {
				return errors.New(utils.ErrorText(err, "Failed to delete task"))
			}

			fmt.Fprintf(out, "Deleted task #%d\n", id)
			return nil
		},
	}

	cmd.Flags().BoolP("yes", "y", false, "Delete without asking")
	return cmd
}

// confirmed reads one answer line; only y or Y counts as yes.
func confirmed(r io.Reader) bool {
	line, _ := bufio.NewReader(r).ReadString('\n')
	answer := strings.TrimSpace(line)
	return answer == "y" || answer == "Y"
}
