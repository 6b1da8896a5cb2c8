package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/craftbook/internal/controller"
	"github.com/five82/craftbook/internal/favourites"
)

func newFavouritesCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favourites",
		Aliases: []string{"favs"},
		Short:   "Inspect or clear starred rows",
		Args:    cobra.NoArgs,
	}
	cmd.AddCommand(newFavouritesListCommand(flags), newFavouritesClearCommand(flags))
	return cmd
}

func newFavouritesListCommand(flags *globalFlags) *cobra.Command {
	var names bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print starred row identifiers, one per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := flags.open()
			if err != nil {
				return err
			}
			defer env.Close()

			ids := favourites.Load(env.Storage, env.Log).IDs()
			out := cmd.OutOrStdout()
			if !names {
				for _, id := range ids {
					fmt.Fprintln(out, id)
				}
				return nil
			}

			rows, err := env.Sheet.Fetch(commandContext(cmd))
			if err != nil {
				return fmt.Errorf("load sheet: %w", err)
			}
			for _, id := range ids {
				if id < 0 || id >= len(rows) {
					fmt.Fprintf(out, "%d\t(not in sheet)\n", id)
					continue
				}
				r := rows[id]
				fmt.Fprintf(out, "%d\t%s\t%s\t%s\n", id, r.Profession, r.ItemType, r.Name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&names, "names", false, "fetch the sheet and show each row")
	return cmd
}

func newFavouritesClearCommand(flags *globalFlags) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all favourites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !yes && !confirm(cmd.InOrStdin(), out, controller.ClearPrompt) {
				fmt.Fprintln(out, "Cancelled")
				return nil
			}

			env, err := flags.open()
			if err != nil {
				return err
			}
			defer env.Close()

			if err := favourites.Load(env.Storage, env.Log).Clear(); err != nil {
				return fmt.Errorf("clear favourites: %w", err)
			}
			fmt.Fprintln(out, controller.ClearedMessage)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// confirm asks prompt on out and reports whether the answer read from in
// is yes. Anything else, including EOF, declines.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
