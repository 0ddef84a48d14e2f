package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Bitlatte/spade/internal/config"
	"github.com/Bitlatte/spade/internal/logging"
)

var (
	cfgFile   string
	appConfig config.Config
	logger    = zap.NewNop()
)

// flagKeys maps command line flags onto configuration keys.
var flagKeys = map[string]string{
	"source":       "source",
	"destination":  "destination",
	"theme":        "theme",
	"log-level":    "log.level",
	"log-format":   "log.format",
	"watch":        "watch",
	"port":         "port",
	"dedupe-edges": "graph.dedupeEdges",
}

var rootCmd = &cobra.Command{
	Use:   "spade",
	Short: "spade - digital gardening tool",
	Long: `spade turns a folder of interlinked Markdown notes into a static website.

Notes reference each other with wikilinks ([[note]], [[note|label]] and
![[image.png]]). spade resolves them, renders every note through a theme,
adds backlinks and tag pages, and exports the link graph as JSON.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		errorColor := color.New(color.FgRed, color.Bold)
		errorColor.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./spade.yaml)")
	flags.StringP("source", "s", "", "source folder path")
	flags.StringP("destination", "d", "", "destination folder path (default \"public\")")
	flags.StringP("theme", "t", "", "theme folder path (default \"theme\")")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.String("log-format", "", "log format: console or json")
	flags.Bool("dedupe-edges", false, "emit a single graph edge per linked pair of notes")
}

func initializeConfig(cmd *cobra.Command) error {
	v := viper.New()

	for key, value := range config.Defaults() {
		v.SetDefault(key, value)
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("spade")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("SPADE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("bind flag %s: %w", flag, err)
			}
		}
	}

	configFileUsed := ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		if cfgFile != "" {
			return fmt.Errorf("config file %s not found: %w", cfgFile, err)
		}
	} else {
		configFileUsed = v.ConfigFileUsed()
	}

	if err := v.Unmarshal(&appConfig); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	l, err := logging.New(appConfig.Log)
	if err != nil {
		return err
	}
	logger = l
	if configFileUsed != "" {
		logger.Debug("using config file", zap.String("path", configFileUsed))
	}
	return nil
}
