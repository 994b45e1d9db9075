package cli

import (
	"strings"

	"github.com/mmcdole/imgdl/internal/provider"
	"github.com/mmcdole/imgdl/internal/ui"
	"github.com/spf13/cobra"
)

func newProvidersCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "providers [filter]",
		Short: "List supported image providers",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ui.PrintProviders(app.Stdout, provider.Filter(strings.Join(args, "")))
			return nil
		},
	}
}
