package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/RichardEWillis/pi-label-inventory/internal/inventory"
)

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	Weight      string
	Description string
	Serial      int
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a parcel and save the inventory",
		Long: `Append a parcel to the inventory and save it. The serial number defaults
to one more than the highest serial in use. The inventory file is created
if it does not exist.

Example:
  linv add -f moving.csv --weight 12.5 --desc "Kitchen plates"
  linv add -f moving.csv --serial 40 --weight 3 --desc "Lamp"`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Weight, "weight", "", "parcel weight (required)")
	cmd.Flags().StringVar(&opts.Description, "desc", "", "parcel description (required)")
	cmd.Flags().IntVar(&opts.Serial, "serial", 0, "serial number (default: next free serial)")
	_ = cmd.MarkFlagRequired("weight")
	_ = cmd.MarkFlagRequired("desc")

	return cmd
}

func runAdd(opts *AddOptions, cmd *cobra.Command) error {
	a, err := newApp(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("serial") && opts.Serial < 1 {
		return a.out.Fail("invalid serial number", errors.New("serial must be 1 or more"))
	}
	if err := a.open(true); err != nil {
		return err
	}

	var r inventory.Record
	if cmd.Flags().Changed("serial") {
		r, err = a.session.AddSerial(opts.Serial, opts.Weight, opts.Description)
	} else {
		r, err = a.session.Add(opts.Weight, opts.Description)
	}
	if err != nil {
		return a.out.Fail("failed to add parcel", err)
	}
	if err := a.save(); err != nil {
		return err
	}
	return a.out.Success(r, "Added "+r.String())
}
