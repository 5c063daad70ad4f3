package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dshills/keychord/internal/combo"
	"github.com/dshills/keychord/internal/config"
	"github.com/dshills/keychord/internal/engine/buffer"
)

func newCheckCommand(v *viper.Viper) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "check [file|-]",
		Short: "Validate a combo file and show what each combo emits",
		Long: `check parses a combo file exactly as the daemon would and prints every
combo in precedence order together with its expanded macro. With "-" the
file is read from standard input in the format given by --format.`,
		Args:    cobra.MaximumNArgs(1),
		PreRunE: bindFlags(v),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath(v)
			if len(args) == 1 {
				path = args[0]
			}

			var (
				cfg *combo.Config
				err error
			)
			if path == "-" {
				switch format {
				case "toml", "yaml":
				default:
					return fmt.Errorf("unknown format %q (must be toml or yaml)", format)
				}
				path = "stdin." + format
				cfg, err = config.LoadReader(path, cmd.InOrStdin())
			} else {
				cfg, err = config.Load(path)
			}
			if err != nil {
				return err
			}
			printConfig(cmd.OutOrStdout(), path, cfg)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "toml", "format of a combo file read from stdin (toml, yaml)")
	return cmd
}

func printConfig(w io.Writer, path string, cfg *combo.Config) {
	fmt.Fprintf(w, "config: %s\n", path)
	if cfg.Delay > 0 {
		fmt.Fprintf(w, "delay:  %s\n", cfg.Delay)
	} else {
		fmt.Fprintf(w, "delay:  %s (default)\n", buffer.DefaultDelay)
	}
	fmt.Fprintf(w, "combos: %d\n", len(cfg.Combos))

	for i := range cfg.Combos {
		c := &cfg.Combos[i]
		fmt.Fprintf(w, "\n%d. %s => %s\n", i+1, c.Name, c.ActionString())
		for _, step := range combo.Expand(c.Actions) {
			fmt.Fprintf(w, "   %8s  %s\n", step.Delay, step.Event)
		}
	}
}
