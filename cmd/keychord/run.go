package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dshills/keychord/internal/app"
	"github.com/dshills/keychord/internal/device"
	"github.com/dshills/keychord/internal/device/evdev"
	"github.com/dshills/keychord/internal/device/uinput"
)

func newRunCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "run",
		Short:   "Grab a keyboard and remap its combos",
		Args:    cobra.NoArgs,
		PreRunE: bindFlags(v),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDaemon(cmd, v)
		},
	}

	flags := cmd.Flags()
	flags.StringP(keyDevice, "d", "", "evdev node of the keyboard to grab, e.g. /dev/input/event3")
	flags.String(keyUinput, uinput.DefaultPath, "uinput control node")
	flags.String(keyName, uinput.DefaultName, "name of the virtual keyboard")
	flags.Bool(keyNoGrab, false, "read the keyboard without grabbing it")
	flags.Bool(keyWatch, true, "reload the combo file when it changes")
	flags.Duration(keyDelay, 0, "debounce delay, overriding delay_ms from the combo file")
	flags.Bool(keyDryRun, false, "log output events instead of creating a virtual keyboard")
	return cmd
}

func runDaemon(cmd *cobra.Command, v *viper.Viper) error {
	log, err := newLogger(v, os.Stderr)
	if err != nil {
		return err
	}

	devPath := v.GetString(keyDevice)
	if devPath == "" {
		return errors.New("no keyboard given; pass --device (see keychord devices)")
	}

	var sink device.Sink
	if v.GetBool(keyDryRun) {
		sink = device.NewLogSink(log)
	} else {
		s, err := uinput.Open(v.GetString(keyUinput), v.GetString(keyName), log)
		if err != nil {
			return app.NewInitError("uinput", "create virtual keyboard", err)
		}
		sink = s
	}
	defer func() {
		if err := sink.Close(); err != nil {
			log.WithError(err).Warn("closing sink")
		}
	}()

	src, err := evdev.Open(devPath, !v.GetBool(keyNoGrab), log)
	if err != nil {
		return app.NewInitError("evdev", "open "+devPath, err)
	}
	defer func() { _ = src.Close() }()

	d, err := app.New(app.Options{
		ConfigPath: configPath(v),
		Delay:      v.GetDuration(keyDelay),
		Watch:      v.GetBool(keyWatch),
		Logger:     log,
	}, src, sink)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return d.Run(ctx)
}
