package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/keychord/internal/device/evdev"
)

func newDevicesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List input devices that look like keyboards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kbds, err := evdev.Keyboards()
			if err != nil {
				return err
			}
			if len(kbds) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no keyboards found (is the user in the input group?)")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PATH\tNAME")
			for _, k := range kbds {
				fmt.Fprintf(w, "%s\t%s\n", k.Path, k.Name)
			}
			return w.Flush()
		},
	}
}
