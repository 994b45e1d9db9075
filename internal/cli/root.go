// Package cli wires configuration, providers and the download service into the imgdl command.
package cli

import (
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// App holds what the commands need from the outside world
type App struct {
	Version string
	Stdout  io.Writer
	Stderr  io.Writer

	// HTTPClient overrides the tuned default client when set
	HTTPClient *http.Client
}

// options holds the parsed flags of the root command
type options struct {
	queries     []string
	number      int
	saveTo      string
	source      string
	concurrency int
	prefix      string
	noProgress  bool
	configPath  string
	debug       bool
}

// NewRootCommand builds the imgdl command tree
func NewRootCommand(app *App) *cobra.Command {
	if app.Stdout == nil {
		app.Stdout = os.Stdout
	}
	if app.Stderr == nil {
		app.Stderr = os.Stderr
	}

	opts := &options{}

	root := &cobra.Command{
		Use:   "imgdl [flags] [terms...]",
		Short: "Search an image provider and download the results",
		Long: `imgdl queries Pixabay or Pexels for images matching the given terms and
downloads up to --number of them concurrently into --save-to.

API keys are read from API_KEY_PIXABAY / API_KEY_PEXELS (environment or .env),
or from the provider sections of the config file.`,
		Example: `  imgdl -q canada -n 5 --save-to canada-photos/
  imgdl -q "new york" -q night -s pexels -n 10 --save-to nyc/`,
		Args:          cobra.ArbitraryArgs,
		Version:       app.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runDownload(cmd, opts, args)
		},
	}
	root.SetOut(app.Stdout)
	root.SetErr(app.Stderr)
	root.SetVersionTemplate("imgdl {{.Version}}\n")

	flags := root.Flags()
	flags.StringSliceVarP(&opts.queries, "query", "q", nil, "Search terms (repeatable or comma separated; positional args are appended)")
	flags.IntVarP(&opts.number, "number", "n", 0, "Number of images to download (default from config, 1)")
	flags.StringVar(&opts.saveTo, "save-to", "", "Directory to save images into (default from config)")
	flags.StringVarP(&opts.source, "source", "s", "", "Image provider: pixabay or pexels (default from config, pixabay)")
	flags.IntVarP(&opts.concurrency, "concurrency", "c", 0, "Maximum simultaneous downloads (default from config, 10)")
	flags.StringVar(&opts.prefix, "prefix", "", "File name prefix (default: query terms joined with _)")
	flags.BoolVar(&opts.noProgress, "no-progress", false, "Print line progress instead of the progress bar")
	flags.StringVar(&opts.configPath, "config", "", "Path to a config file")
	flags.BoolVar(&opts.debug, "debug", false, "Write debug-level entries to the log file")

	root.AddCommand(newProvidersCommand(app))

	return root
}

// isTerminal reports whether w is a terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
