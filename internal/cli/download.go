package cli

import (
	"fmt"
	"log/slog"

	"github.com/mmcdole/imgdl/internal/config"
	"github.com/mmcdole/imgdl/internal/domain"
	"github.com/mmcdole/imgdl/internal/download"
	"github.com/mmcdole/imgdl/internal/fetch"
	"github.com/mmcdole/imgdl/internal/httpclient"
	"github.com/mmcdole/imgdl/internal/log"
	"github.com/mmcdole/imgdl/internal/namer"
	"github.com/mmcdole/imgdl/internal/provider"
	"github.com/mmcdole/imgdl/internal/search"
	"github.com/mmcdole/imgdl/internal/service"
	"github.com/mmcdole/imgdl/internal/ui"
	"github.com/mmcdole/imgdl/internal/ui/styles"
	"github.com/spf13/cobra"
)

// runDownload performs one search-and-download run.
// Setup problems are returned before any network activity.
func (app *App) runDownload(cmd *cobra.Command, opts *options, args []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.debug {
		cfg.Logging.Level = "DEBUG"
	}

	logger, closer, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	} else {
		defer closer.Close()
	}
	slog.SetDefault(logger)

	logger.Info("starting imgdl", "version", app.Version)

	query := domain.NewSearchQuery(append(opts.queries, args...)...)
	if query.IsEmpty() {
		return fmt.Errorf("%w: pass terms with -q or as arguments", domain.ErrEmptyQuery)
	}

	source := cfg.Provider
	if cmd.Flags().Changed("source") {
		source = opts.source
	}
	def, err := provider.Lookup(source)
	if err != nil {
		return err
	}

	number := cfg.Download.Count
	if cmd.Flags().Changed("number") {
		number = opts.number
	}
	if number < 1 {
		return fmt.Errorf("%w: --number %d", domain.ErrInvalidLimit, number)
	}

	concurrency := cfg.Download.Concurrency
	if cmd.Flags().Changed("concurrency") {
		concurrency = opts.concurrency
	}

	saveTo := cfg.Download.Dir
	if opts.saveTo != "" {
		saveTo = opts.saveTo
	}
	if saveTo == "" {
		return fmt.Errorf("%w: pass --save-to or set download.dir", domain.ErrInvalidDirectory)
	}

	apiKey, err := cfg.APIKey(def.Name)
	if err != nil {
		return err
	}

	dir, err := service.PrepareDirectory(saveTo)
	if err != nil {
		return err
	}

	httpClient := app.HTTPClient
	if httpClient == nil {
		httpClient = httpclient.New(download.Width(concurrency, number))
	}

	var observer domain.ProgressObserver
	if opts.noProgress || !isTerminal(app.Stderr) {
		observer = ui.NewLineObserver(app.Stdout)
	} else {
		observer = ui.NewBarObserver(app.Stderr)
	}

	searcher := search.NewClient(def, apiKey, cfg.Endpoint(def.Name), httpClient, logger)
	worker := fetch.NewWorker(httpClient, namer.New(), logger)
	svc := service.NewDownloadService(searcher, worker, observer, logger)

	fmt.Fprintf(app.Stdout, "Searching %s for %s...\n",
		styles.AccentStyle.Render(def.Name), styles.TitleStyle.Render(fmt.Sprintf("%q", query.String())))

	report, err := svc.Run(cmd.Context(), service.Request{
		Query:       query,
		Limit:       number,
		Dir:         dir,
		Prefix:      opts.prefix,
		Concurrency: concurrency,
	})
	if err != nil {
		logger.Error("run failed", "error", err)
		return err
	}

	ui.PrintSummary(app.Stdout, report, dir)

	if !report.NoResults && report.Succeeded() == 0 {
		return fmt.Errorf("%w (%d attempted)", domain.ErrAllDownloadsFailed, len(report.Outcomes))
	}
	return nil
}
