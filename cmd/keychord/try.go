package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/dshills/keychord/internal/app"
	"github.com/dshills/keychord/internal/device/tty"
)

func newTryCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "try",
		Short: "Try a combo file in the terminal without touching any keyboard",
		Long: `try reads keys from the terminal, runs them through the remapper and
prints what would be emitted. Terminals report characters rather than key
transitions, so each key is sent as a press followed by a release.`,
		Args:    cobra.NoArgs,
		PreRunE: bindFlags(v),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				return errors.New("try needs an interactive terminal")
			}

			// Log lines would corrupt the screen.
			log, err := newLogger(v, io.Discard)
			if err != nil {
				return err
			}

			t, err := tty.Open(log)
			if err != nil {
				return app.NewInitError("tty", "open terminal", err)
			}
			defer func() { _ = t.Close() }()

			d, err := app.New(app.Options{
				ConfigPath: configPath(v),
				Delay:      v.GetDuration(keyDelay),
				Watch:      v.GetBool(keyWatch),
				Logger:     log,
			}, t, t)
			if err != nil {
				return err
			}

			err = d.Run(context.Background())
			_ = t.Close()

			s := d.Engine().Stats()
			fmt.Fprintf(cmd.OutOrStdout(), "%d events in, %d combos matched, %d macro events scheduled\n",
				s.Pushed, s.Matched, s.Scheduled)
			return err
		},
	}

	flags := cmd.Flags()
	flags.Duration(keyDelay, 0, "debounce delay, overriding delay_ms from the combo file")
	flags.Bool(keyWatch, false, "reload the combo file when it changes")
	return cmd
}
