package main

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dshills/keychord/internal/app"
	"github.com/dshills/keychord/internal/config"
)

// Setting keys. Each is also a flag name and, upper-cased with dashes
// replaced, a KEYCHORD_ environment variable.
const (
	keyConfig    = "config"
	keyLogLevel  = "log-level"
	keyLogFormat = "log-format"
	keyDevice    = "device"
	keyUinput    = "uinput"
	keyName      = "name"
	keyNoGrab    = "no-grab"
	keyWatch     = "watch"
	keyDelay     = "delay"
	keyDryRun    = "dry-run"
)

func newSettings() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("KEYCHORD")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

func newRootCommand() *cobra.Command {
	v := newSettings()

	root := &cobra.Command{
		Use:   "keychord",
		Short: "Keyboard combo remapping daemon",
		Long: `keychord grabs a keyboard, watches for configured key combinations and
replaces them with timed macros on a virtual keyboard. Keys that are not
part of any combo pass straight through.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringP(keyConfig, "c", "", "combo file (default "+config.DefaultPath()+")")
	flags.String(keyLogLevel, "info", "log level (debug, info, warn, error)")
	flags.String(keyLogFormat, "text", "log format (text, json)")

	root.AddCommand(
		newRunCommand(v),
		newCheckCommand(v),
		newTryCommand(v),
		newKeysCommand(),
		newDevicesCommand(),
		newVersionCommand(),
	)
	return root
}

// bindFlags binds the flags of the executing command, inherited ones
// included. Binding here rather than at construction keeps commands that
// share a flag name from overriding each other.
func bindFlags(v *viper.Viper) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		return v.BindPFlags(cmd.Flags())
	}
}

func configPath(v *viper.Viper) string {
	if p := v.GetString(keyConfig); p != "" {
		return p
	}
	return config.DefaultPath()
}

func newLogger(v *viper.Viper, out io.Writer) (*logrus.Logger, error) {
	return app.NewLogger(app.LoggerConfig{
		Level:  v.GetString(keyLogLevel),
		Format: v.GetString(keyLogFormat),
		Output: out,
	})
}
