package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/five82/craftbook/internal/app"
	"github.com/five82/craftbook/internal/icons"
	"github.com/five82/craftbook/internal/sheet"
)

func newIconsCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "icons",
		Short: "Maintain the texture icon table",
		Args:  cobra.NoArgs,
	}
	cmd.AddCommand(newIconsMissingCommand(flags), newIconsResolveCommand(flags))
	return cmd
}

// missingTextures fetches the sheet and returns the texture IDs it uses
// that have no icon mapping, along with the total distinct count.
func missingTextures(cmd *cobra.Command, env *app.Env) ([]int, int, error) {
	rows, err := env.Sheet.Fetch(commandContext(cmd))
	if err != nil {
		return nil, 0, fmt.Errorf("load sheet: %w", err)
	}
	ids := sheet.TextureIDs(rows)
	return env.Icons.Missing(ids), len(ids), nil
}

func newIconsMissingCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "missing",
		Short: "List texture IDs used by the sheet without an icon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := flags.open()
			if err != nil {
				return err
			}
			defer env.Close()

			missing, total, err := missingTextures(cmd, env)
			if err != nil {
				return err
			}
			for _, id := range missing {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d texture IDs unmapped\n", len(missing), total)
			return nil
		},
	}
}

func newIconsResolveCommand(flags *globalFlags) *cobra.Command {
	var (
		outPath  string
		interval time.Duration
		baseURL  string
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Look up missing texture icons and write them to an override file",
		Long: "resolve follows the icon redirect for each texture ID the sheet uses\n" +
			"without a mapping and merges the names found into the [textures]\n" +
			"table of the override file. Point icons_file at it to use them.",
		Example: "  craftbook icons resolve --out ~/.config/craftbook/icons.toml",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := flags.open()
			if err != nil {
				return err
			}
			defer env.Close()

			target := strings.TrimSpace(outPath)
			if target == "" {
				target = env.Config.IconsFile
			}
			if target == "" {
				return errors.New("no output file: pass --out or set icons_file")
			}

			missing, _, err := missingTextures(cmd, env)
			if err != nil {
				return err
			}
			stderr := cmd.ErrOrStderr()
			if len(missing) == 0 {
				fmt.Fprintln(stderr, "No missing texture IDs")
				return nil
			}

			opts := []icons.ResolverOption{icons.WithInterval(interval)}
			if baseURL != "" {
				opts = append(opts, icons.WithBaseURL(baseURL))
			}
			resolver := icons.NewResolver(env.Log, opts...)

			report := func(r icons.Result) {
				switch {
				case errors.Is(r.Err, icons.ErrNotFound):
					fmt.Fprintf(stderr, "%d: not found\n", r.ID)
					return
				case r.Err != nil:
					fmt.Fprintf(stderr, "%d: %v\n", r.ID, r.Err)
					return
				}
				fmt.Fprintf(stderr, "%d: %s\n", r.ID, r.Name)
			}
			found, runErr := resolver.ResolveAll(commandContext(cmd), missing, report)

			// Partial results from an interrupted run are still written.
			if len(found) > 0 {
				if err := icons.WriteTextures(target, found); err != nil {
					return err
				}
				env.Log.Info("icon override written", zap.String("path", target), zap.Int("textures", len(found)))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Resolved %d of %d texture IDs into %s\n", len(found), len(missing), target)
			if runErr != nil {
				return fmt.Errorf("resolve icons: %w", runErr)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "override file to write (default icons_file)")
	cmd.Flags().DurationVar(&interval, "interval", 200*time.Millisecond, "pause between lookups")
	cmd.Flags().StringVar(&baseURL, "wowhead", "", "icon lookup base URL")
	_ = cmd.Flags().MarkHidden("wowhead")
	return cmd
}
