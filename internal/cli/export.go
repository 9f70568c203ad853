package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ExportResult is the JSON payload of the export and convert commands.
type ExportResult struct {
	Path    string `json:"path"`
	Records int    `json:"records"`
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the inventory as an XLSX spreadsheet",
		Long: `Write the inventory to a spreadsheet with Serial, Description and Weight
columns. Numeric weights are stored as numbers.

Example:
  linv export -f moving.csv
  linv export -f moving.csv --out /tmp/moving.xlsx`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(rootOpts, out, cmd)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default: inventory name with .xlsx)")

	return cmd
}

func runExport(opts *RootOptions, out string, cmd *cobra.Command) error {
	a, err := newApp(opts, cmd)
	if err != nil {
		return err
	}
	if err := a.open(false); err != nil {
		return err
	}

	path, err := a.session.Export(out)
	if err != nil {
		return a.out.Fail("failed to export inventory", err)
	}
	res := ExportResult{Path: path, Records: a.session.Inventory.Size()}
	return a.out.Success(res, fmt.Sprintf("Exported %d record(s) to %s", res.Records, res.Path))
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <src> <dst>",
		Short: "Copy an inventory between the text and SQLite formats",
		Long: `Read the inventory at <src> and write it to <dst>. The format of each side
follows its extension: .db, .sqlite and .sqlite3 are SQLite, anything else
is the text format.

Example:
  linv convert moving.csv moving.db
  linv convert moving.db moving-copy.csv`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(rootOpts, args[0], args[1], cmd)
		},
	}
}

func runConvert(opts *RootOptions, src, dst string, cmd *cobra.Command) error {
	a, err := newApp(opts, cmd)
	if err != nil {
		return err
	}
	if _, err := a.session.Open(src); err != nil {
		return a.out.Fail("failed to open inventory", err)
	}

	path, n, err := a.session.Convert(dst)
	if err != nil {
		return a.out.Fail("failed to convert inventory", err)
	}
	return a.out.Success(ExportResult{Path: path, Records: n},
		fmt.Sprintf("Converted %d record(s) from %s to %s", n, a.session.Filename, path))
}
