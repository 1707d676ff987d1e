// Package cmd holds the dereval command line.
package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cfg "github.com/maastricht-university/edmo-dereval/config"
)

const envPrefix = "DEREVAL"

// NewRootCommand builds the dereval command tree. Each call gets its own
// viper instance so flags and environment overrides do not leak between
// invocations.
func NewRootCommand() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	var configPath string
	root := &cobra.Command{
		Use:           "dereval",
		Short:         "Score speaker diarization output against RTTM ground truth",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default config/$CONFIG_ENV/config.yaml)")
	root.PersistentFlags().String("log-level", "", "log level: debug|info|warn|error")
	root.PersistentFlags().String("metric-url", "", "DER metric service base URL")
	root.PersistentFlags().Float64("collar", 0, "forgiveness collar in seconds around reference boundaries")
	root.PersistentFlags().Bool("skip-overlap", false, "exclude overlapping speech from scoring")
	bind(v, root.PersistentFlags().Lookup("log-level"), cfg.KeyLogLevel)
	bind(v, root.PersistentFlags().Lookup("metric-url"), cfg.KeyMetricURL)
	bind(v, root.PersistentFlags().Lookup("collar"), cfg.KeyCollar)
	bind(v, root.PersistentFlags().Lookup("skip-overlap"), cfg.KeySkipOverlap)

	load := func() (*cfg.Root, error) {
		c, err := cfg.Load(configPath)
		if err != nil {
			return nil, err
		}
		c.Override(v)
		return c, nil
	}

	root.AddCommand(newRunCommand(v, load), newScoreCommand(load), newInspectCommand(load))
	return root
}

func newLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		log.WithField("level", level).Warn("unknown log level, using info")
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}
