package cmd

import (
	"bytes"
	"log/slog"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const levelTrace = slog.Level(-8)

var (
	configFiles    []string
	level, version string

	// loadedConfigFiles lists the config files actually read, lowest
	// priority first.
	loadedConfigFiles []string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = NewRootCommand()

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// SetVersion records the build version reported in config and logs.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "haxedts",
		Short:         "Translate Haxe XML type dumps into TypeScript declarations",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			return initConfig(c)
		},
	}
	root.PersistentFlags().StringVarP(&level, "level", "l", "info", "log level (trace, debug, info, warn, error, debug+1, etc)")
	root.PersistentFlags().StringSliceVar(&configFiles, "config", []string{}, "config file(s) - multiple config files are merged with last specified file having highest priority")

	root.AddCommand(NewTranslateCommand(), NewSnapshotCommand())
	return root
}

func parseLevel(s string) (slog.Level, error) {
	var ll slog.Level
	if strings.EqualFold(s, "trace") {
		return levelTrace, nil
	}
	if err := (&ll).UnmarshalText([]byte(s)); err != nil {
		return ll, errors.WithHint(errors.Newf("invalid log level %q", s), "use trace, debug, info, warn or error")
	}
	return ll, nil
}

func newLogger(ll slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		AddSource:   false,
		Level:       ll,
		ReplaceAttr: nil,
	}))
}

// initConfig reads in config file and ENV variables if set.
func initConfig(c *cobra.Command) error {
	levelChanged := c.Flags().Changed("level")
	ll, err := parseLevel(level)
	if err != nil {
		return err
	}
	l := newLogger(ll)
	slog.SetDefault(l)
	loadedConfigFiles = nil

	if len(configFiles) > 0 {
		// Use config file from the flag.
		viper.SetConfigFile(configFiles[0])
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/haxedts")
		viper.SetConfigType("yaml")
		viper.SetConfigName("haxedts")
	}

	viper.SetEnvPrefix("haxedts")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		loadedConfigFiles = append(loadedConfigFiles, viper.ConfigFileUsed())
		l.With("config", viper.ConfigFileUsed()).Debug("using config file(s)")
	} else if len(configFiles) > 0 {
		return errors.Wrapf(err, "read config %s", configFiles[0])
	} else {
		l.With("error", err, "config", viper.ConfigFileUsed()).Debug("unable to use config file(s)")
	}
	if len(configFiles) > 1 {
		for _, file := range configFiles[1:] {
			if configBytes, err := os.ReadFile(file); err == nil {
				if err = viper.MergeConfig(bytes.NewReader(configBytes)); err != nil {
					l.With("error", err, "file", file).Warn("failed to merge config file")
				} else {
					loadedConfigFiles = append(loadedConfigFiles, file)
					l.With("file", file).Debug("merged config file")
				}
			}
		}
	}
	if len(version) > 0 {
		viper.Set("version", version)
	}

	// a level from config applies unless --level was given explicitly
	if llstr := viper.GetString("log.level"); llstr != "" && !levelChanged {
		if ll, err = parseLevel(llstr); err != nil {
			return errors.Wrap(err, "log.level")
		}
		slog.SetDefault(newLogger(ll))
	}
	return nil
}
