package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/autodeck/internal/config"
	"github.com/ziadkadry99/autodeck/internal/deck"
	"github.com/ziadkadry99/autodeck/internal/progress"
	"github.com/ziadkadry99/autodeck/internal/server"
	"github.com/ziadkadry99/autodeck/internal/site"
)

var siteCmd = &cobra.Command{
	Use:   "site [deck]",
	Short: "Generate a static single-page site from the deck",
	Long: `Renders every section of the deck into one scrolling HTML page with a
navigation rail and progress bar. With --serve the site is served locally;
adding --watch regenerates it on every change and reloads open pages.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSite,
}

func init() {
	siteCmd.Flags().Bool("serve", false, "start a local HTTP server after generating")
	siteCmd.Flags().Int("port", 0, "port for the local dev server (defaults to site.port)")
	siteCmd.Flags().Bool("open", false, "open browser automatically when serving")
	siteCmd.Flags().String("output", "", "override output directory (defaults to site.output_dir)")
	siteCmd.Flags().Bool("watch", false, "regenerate and live reload on changes (implies --serve)")
	rootCmd.AddCommand(siteCmd)
}

func runSite(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	d, deckPath, err := loadDeck(cfg, args)
	if err != nil {
		return err
	}

	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = cfg.Site.OutputDir
	}
	watch, _ := cmd.Flags().GetBool("watch")
	serve, _ := cmd.Flags().GetBool("serve")
	serve = serve || watch

	generator := site.NewGenerator(d, outputDir)
	generator.HighlightStyle = cfg.Site.Highlight
	generator.LiveReload = watch
	generator.Reporter = progress.NewReporter("Rendering sections")
	count, err := generator.Generate()
	if err != nil {
		return fmt.Errorf("generating site: %w", err)
	}

	fmt.Printf("Static site generated: %s (%d sections)\n", outputDir, count)
	if !serve {
		return nil
	}

	port, _ := cmd.Flags().GetInt("port")
	if port == 0 {
		port = cfg.Site.Port
	}
	srv := server.New(server.Config{
		Port:     port,
		Dir:      outputDir,
		AllowAll: cfg.Site.AllowAll,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if watch {
		w, err := site.NewWatcher(deckPath, cfg.Site.Watch)
		if err != nil {
			return err
		}
		defer w.Close()
		go w.Run(ctx, func() { regenerate(cfg, deckPath, outputDir, srv) })
		fmt.Printf("Watching %s for changes\n", deckPath)
	}

	// Graceful shutdown.
	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nShutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	url := fmt.Sprintf("http://localhost:%d", port)
	if open, _ := cmd.Flags().GetBool("open"); open || cfg.Site.Open {
		go openBrowser(url)
	}
	fmt.Printf("Serving at %s (press Ctrl+C to stop)\n", url)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving site: %w", err)
	}
	return nil
}

// regenerate rebuilds the site after a change and reloads connected pages.
// A deck that fails to load leaves the previous site in place.
func regenerate(cfg *config.Config, deckPath, outputDir string, srv *server.Server) {
	d, err := deck.Load(deckPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return
	}
	generator := site.NewGenerator(d, outputDir)
	generator.HighlightStyle = cfg.Site.Highlight
	generator.LiveReload = true
	if _, err := generator.Generate(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: regenerating site: %v\n", err)
		return
	}
	n := srv.Reload()
	if verbose {
		fmt.Printf("Regenerated %d sections, reloaded %d pages\n", d.Len(), n)
	}
}
