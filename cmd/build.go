package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Bitlatte/spade/internal/config"
	"github.com/Bitlatte/spade/internal/site"
	"github.com/Bitlatte/spade/internal/watch"
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Builds the site from the source and theme folders",
	Long: `The build command reads every file below the source folder, resolves
wikilinks between notes, renders Markdown through the theme's templates,
copies assets and writes the link graph. With --watch it keeps running and
rebuilds the whole site whenever the source or theme changes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runBuildProcess(cmd, appConfig); err != nil {
			return err
		}
		if !appConfig.Watch {
			return nil
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return watchAndRebuild(ctx, cmd, appConfig)
	},
}

func runBuildProcess(cmd *cobra.Command, cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	res, err := site.New(cfg, logger).Run()
	if err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(),
		"Site generated in %d milliseconds (%d notes, %d assets, %d links)\n",
		res.Duration.Milliseconds(), res.Articles, res.Assets, res.Edges)
	return nil
}

// watchAndRebuild blocks until ctx is done, regenerating the site from
// scratch after every settled burst of changes.
func watchAndRebuild(ctx context.Context, cmd *cobra.Command, cfg config.Config) error {
	w, err := watch.New([]string{cfg.Source, cfg.Theme}, watch.DefaultDebounce, func() {
		logger.Info("rebuilding site due to changes")
		if err := runBuildProcess(cmd, cfg); err != nil {
			logger.Error("rebuild failed", zap.Error(err))
		}
	}, logger)
	if err != nil {
		return err
	}
	return w.Run(ctx)
}

func init() {
	buildCmd.Flags().BoolP("watch", "w", false, "re-generate the site whenever the source or theme folders change")
	rootCmd.AddCommand(buildCmd)
}
