package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/keychord/internal/input/key"
)

func newKeysCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List the key names accepted in combo files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCODE\tALIASES")
			for _, n := range key.Names() {
				fmt.Fprintf(w, "%s\t%d\t%s\n", n.Names[0], n.Code, strings.Join(n.Names[1:], ", "))
			}
			return w.Flush()
		},
	}
}
