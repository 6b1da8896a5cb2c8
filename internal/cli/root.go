package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/craftbook/internal/app"
)

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	sheetURL   string
	verbose    bool
}

func (g *globalFlags) options() app.Options {
	return app.Options{
		ConfigPath: g.configPath,
		SheetURL:   g.sheetURL,
		Verbose:    g.verbose,
	}
}

func (g *globalFlags) open() (*app.Env, error) {
	return app.Open(g.options())
}

// runBrowser is swapped out in tests.
var runBrowser = app.Run

// NewRootCommand creates the root command. Without a subcommand it runs the
// browser.
func NewRootCommand(version string) *cobra.Command {
	flags := &globalFlags{}
	var link string

	cmd := &cobra.Command{
		Use:   "craftbook",
		Short: "craftbook - browse the guild crafting sheet",
		Long: "craftbook is a terminal browser for the guild crafting sheet: filter by\n" +
			"profession, gear slot, item or crafter, star favourites, and share\n" +
			"filtered views as deep links.",
		Example: "  craftbook --link 'craftbook://browse?profession=Alchemy'\n" +
			"  craftbook --link 'gear=Ring&crafter=Ann'",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options()
			opts.Link = strings.TrimSpace(link)
			opts.Stdout = cmd.OutOrStdout()
			return runBrowser(commandContext(cmd), opts)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default ~/.config/craftbook/config.toml)")
	pf.StringVar(&flags.sheetURL, "sheet", "", "sheet CSV URL or local file, overrides sheet_url")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "debug logging")
	cmd.Flags().StringVar(&link, "link", "", "start from a deep link or bare query string")

	cmd.AddCommand(
		newLinkCommand(flags),
		newFavouritesCommand(flags),
		newIconsCommand(flags),
	)
	return cmd
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
