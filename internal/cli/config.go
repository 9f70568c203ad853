package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/RichardEWillis/pi-label-inventory/internal/config"
)

// NewConfigCommand creates the config command group.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the linv configuration file",
	}
	cmd.AddCommand(newConfigInitCommand(rootOpts))
	cmd.AddCommand(newConfigShowCommand(rootOpts))
	return cmd
}

func newConfigInitCommand(rootOpts *RootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Long: `Write the default settings as YAML to --config, or to linv.yaml in the
user config directory ($XDG_CONFIG_HOME/linv or ~/.config/linv).
An existing file is kept unless --force is given.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(rootOpts, force, cmd)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	return cmd
}

func runConfigInit(opts *RootOptions, force bool, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), ErrWriter: cmd.ErrOrStderr(), Verbose: opts.Verbose}

	path := opts.ConfigPath
	if path == "" {
		path = config.Path()
	}
	if _, err := os.Stat(path); err == nil && !force {
		return out.Fail("failed to write config", errConfig{fmt.Errorf("%s already exists, use --force to overwrite", path)})
	}
	if err := config.Write(path, config.DefaultConfig()); err != nil {
		return out.Fail("failed to write config", errConfig{err})
	}
	return out.Success(map[string]string{"path": path}, "Wrote "+path)
}

func newConfigShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show",
		Short:         "Print the effective configuration as YAML",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(rootOpts, cmd)
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(a.cfg)
			if err != nil {
				return a.out.Fail("failed to render config", err)
			}
			return a.out.Success(a.cfg, strings.TrimSuffix(string(data), "\n"))
		},
	}
}
