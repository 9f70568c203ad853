package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RichardEWillis/pi-label-inventory/internal/session"
)

// LabelsOptions holds flags for the labels command.
type LabelsOptions struct {
	*RootOptions
	By   string
	From int
	To   int
	Out  string
}

// NewLabelsCommand creates the labels command.
func NewLabelsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LabelsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "labels",
		Short: "Print a PDF label sheet",
		Long: `Render one label per parcel into a PDF sheet. The range is inclusive and
addressed by position (--by index, default 0 to the last position) or by
serial number (--by serial, default 1 to the last parcel's serial).

The PDF is written next to the inventory with a .pdf extension unless
--out is given.

Example:
  linv labels -f moving.csv
  linv labels -f moving.csv --by serial --from 10 --to 25 --out box10-25.pdf`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLabels(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.By, "by", "index", "address the range by index or serial")
	cmd.Flags().IntVar(&opts.From, "from", 0, "first index or serial to print")
	cmd.Flags().IntVar(&opts.To, "to", 0, "last index or serial to print")
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "output PDF path")

	return cmd
}

func runLabels(opts *LabelsOptions, cmd *cobra.Command) error {
	a, err := newApp(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	by, err := session.ParseBy(opts.By)
	if err != nil {
		return a.out.Fail("invalid --by", err)
	}
	if err := a.open(false); err != nil {
		return err
	}

	sel := a.session.DefaultSelection(by)
	if cmd.Flags().Changed("from") {
		sel.From = opts.From
	}
	if cmd.Flags().Changed("to") {
		sel.To = opts.To
	}
	a.out.VerboseLog("Printing from %s [%d] to %s [%d]", by, sel.From, by, sel.To)

	res, err := a.session.Labels(sel, opts.Out)
	if err != nil {
		return a.out.Fail("failed to print labels", err)
	}
	return a.out.Success(res, fmt.Sprintf("PDF document %s saved: %d label(s) on %d page(s)", res.Path, res.Labels, res.Pages))
}
