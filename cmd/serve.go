package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Bitlatte/spade/internal/config"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the site locally and watches for changes",
	Long: `The serve command performs an initial build of your site, then starts a local
web server to serve the destination folder. It also watches the source and
theme folders and rebuilds the site from scratch on every change. Generation
metrics are exposed on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Info("performing initial build")
		if err := runBuildProcess(cmd, appConfig); err != nil {
			return fmt.Errorf("initial build failed: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			if err := watchAndRebuild(ctx, cmd, appConfig); err != nil {
				logger.Error("watcher stopped", zap.Error(err))
			}
		}()

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", appConfig.Port),
			Handler:           newSiteHandler(appConfig),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		logger.Info("serving site",
			zap.String("dir", appConfig.Destination),
			zap.String("url", fmt.Sprintf("http://localhost%s", srv.Addr)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	},
}

// newSiteHandler serves the destination folder without directory listings
// or caching, plus the metrics endpoint.
func newSiteHandler(cfg config.Config) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	files := http.FileServer(http.Dir(cfg.Destination))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") && r.URL.Path != "/" {
			if _, err := os.Stat(filepath.Join(cfg.Destination, filepath.FromSlash(r.URL.Path), "index.html")); os.IsNotExist(err) {
				http.NotFound(w, r)
				return
			}
		}
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		files.ServeHTTP(w, r)
	})
	return mux
}

func init() {
	serveCmd.Flags().IntP("port", "p", 1313, "Port to serve the site on")
	rootCmd.AddCommand(serveCmd)
}
