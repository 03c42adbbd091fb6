package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evcraddock/rentdesk/internal/config"
	"github.com/evcraddock/rentdesk/internal/dashboard"
	"github.com/evcraddock/rentdesk/internal/tenancy"
)

// stdinPrompter asks a y/N question on the terminal. Anything but "y" or
// "yes" declines, including end of input.
type stdinPrompter struct {
	in  io.Reader
	out io.Writer
}

func (p stdinPrompter) Confirm(message string) bool {
	fmt.Fprintf(p.out, "%s [y/N]: ", message)
	answer, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && answer == "" {
		fmt.Fprintln(p.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

// promptFor returns the prompter for cmd, or one that always agrees when
// --yes was given.
func promptFor(cmd *cobra.Command, yes bool) dashboard.Prompter {
	if yes {
		return dashboard.PromptFunc(func(string) bool { return true })
	}
	return stdinPrompter{in: cmd.InOrStdin(), out: cmd.OutOrStdout()}
}

func newCompleteMaintenanceCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "complete-maintenance <id>",
		Short: "Set the status of a maintenance request",
		Long:  "Mark a maintenance request completed, or reopen it with --status pending.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if status != tenancy.StatusCompleted && status != tenancy.StatusPending {
				return fmt.Errorf("invalid status %q (must be %s or %s)", status, tenancy.StatusPending, tenancy.StatusCompleted)
			}

			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			board := newAdminBoard(cfg)
			out := board.UpdateMaintenance(cmd.Context(), args[0], status)
			if !out.OK {
				return fmt.Errorf("updating maintenance request %s: %w", args[0], out.Err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Maintenance request %s marked %s.\n", args[0], status)
			return printReloaded(cmd, board.Maintenance, printMaintenanceTable)
		},
	}

	cmd.Flags().StringVar(&status, "status", tenancy.StatusCompleted, "new status (pending|completed)")

	return cmd
}

func newProcessVacateCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "process-vacate <id>",
		Short: "Mark a vacate request processed",
		Long:  "Mark a vacate request completed. Asks for confirmation unless --yes is given.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			board := newAdminBoard(cfg)
			out := board.CompleteVacate(cmd.Context(), args[0], promptFor(cmd, yes))
			switch {
			case out.Declined:
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			case !out.OK:
				return fmt.Errorf("processing vacate request %s: %w", args[0], out.Err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Vacate request %s processed.\n", args[0])
			return printReloaded(cmd, board.Vacate, printVacateTable)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

// newAdminBoard creates an admin board over a detached page. Actions reload
// their table into it, and the reloaded records are printed from there.
func newAdminBoard(cfg *config.Config) *dashboard.AdminBoard {
	return dashboard.NewAdminBoard(dashboard.NewAdminPage(), newAPIClient(cfg))
}

// printReloaded prints what loader fetched after an action, unless the
// reload failed.
func printReloaded[T any](cmd *cobra.Command, loader *dashboard.Loader[T], show func(io.Writer, T) error) error {
	v, ok := loader.Latest()
	if !ok {
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout())
	return show(cmd.OutOrStdout(), v)
}
