package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/RichardEWillis/pi-label-inventory/internal/inventory"
	"github.com/RichardEWillis/pi-label-inventory/internal/session"
)

// ListResult is the JSON payload of the list command.
type ListResult struct {
	File        string             `json:"file"`
	Count       int                `json:"count"`
	TotalWeight float64            `json:"total_weight"`
	Records     []inventory.Record `json:"records"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every parcel in the inventory",
		Long: `List every parcel with its position, serial number, weight and description,
followed by the record count and the sum of the numeric weights.

Example:
  linv list -f moving.csv
  linv list -f moving.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, cmd)
		},
	}
}

func runList(opts *RootOptions, cmd *cobra.Command) error {
	a, err := newApp(opts, cmd)
	if err != nil {
		return err
	}
	if err := a.open(false); err != nil {
		return err
	}

	s := a.session
	total, skipped := s.TotalWeight()
	result := ListResult{
		File:        s.Filename,
		Count:       s.Inventory.Size(),
		TotalWeight: total,
		Records:     s.Inventory.Records(),
	}
	if result.Records == nil {
		result.Records = []inventory.Record{}
	}
	if skipped > 0 {
		a.out.VerboseLog("%d weight(s) are not numbers and were left out of the total", skipped)
	}

	if result.Count == 0 {
		return a.out.Success(result, "No Records")
	}
	lines := s.Rows()
	lines = append(lines, fmt.Sprintf("Record Count: %d  Total Weight: %s", result.Count, formatWeight(total)))
	return a.out.Success(result, lines...)
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show <serial>",
		Short:         "Show one parcel by serial number",
		Args:          cobra.ExactArgs(1),
		Example:       `  linv show 12 -f moving.csv`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, args[0], cmd)
		},
	}
}

// ShowResult is the JSON payload of the show command.
type ShowResult struct {
	Index  int              `json:"index"`
	Record inventory.Record `json:"record"`
}

func runShow(opts *RootOptions, arg string, cmd *cobra.Command) error {
	a, err := newApp(opts, cmd)
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

	i, r, err := a.session.Find(sn)
	if err != nil {
		return a.out.Fail("failed to find parcel", err)
	}
	return a.out.Success(ShowResult{Index: i, Record: r}, session.Row(i, r))
}
