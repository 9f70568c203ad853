package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/RichardEWillis/pi-label-inventory/internal/tui"
)

// NewMenuCommand creates the menu command.
func NewMenuCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Open the interactive inventory menu",
		Long: `Open the full-screen menu to load, list, add, edit and save parcels and to
print label sheets. With --file the inventory is loaded before the menu
opens; otherwise start with [o] Open.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(rootOpts, cmd)
		},
	}
}

func runMenu(opts *RootOptions, cmd *cobra.Command) error {
	a, err := newApp(opts, cmd)
	if err != nil {
		return err
	}
	if opts.File != "" {
		if err := a.open(true); err != nil {
			return err
		}
	}

	err = tui.Run(a.session,
		tea.WithAltScreen(),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if err != nil {
		return WrapExitError(ExitFailure, "menu failed", err)
	}
	return nil
}
