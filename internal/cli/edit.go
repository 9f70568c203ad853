package cli

import (
	"github.com/spf13/cobra"

	"github.com/RichardEWillis/pi-label-inventory/internal/inventory"
)

// EditOptions holds flags for the edit command.
type EditOptions struct {
	*RootOptions
	Weight      string
	Description string
}

// NewEditCommand creates the edit command.
func NewEditCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EditOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "edit <serial>",
		Short: "Change a parcel's weight or description",
		Long: `Update the parcel with the given serial number and save the inventory.
Omitted flags keep the current value.

Example:
  linv edit 2 -f moving.csv --weight 31
  linv edit 2 -f moving.csv --desc "Paperbacks"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Weight, "weight", "", "new weight")
	cmd.Flags().StringVar(&opts.Description, "desc", "", "new description")

	return cmd
}

func runEdit(opts *EditOptions, arg string, cmd *cobra.Command) error {
	a, err := newApp(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	sn, err := inventory.ParseSerial(arg)
	if err != nil {
		return a.out.Fail("invalid serial number", err)
	}
	if err := a.open(false); err != nil {
		return err
	}

	r, err := a.session.Edit(sn, opts.Weight, opts.Description)
	if err != nil {
		return a.out.Fail("failed to edit parcel", err)
	}
	if err := a.save(); err != nil {
		return err
	}
	return a.out.Success(r, "Updated "+r.String())
}
