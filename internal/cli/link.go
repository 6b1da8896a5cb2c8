package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/craftbook/internal/config"
	"github.com/five82/craftbook/internal/urlstate"
)

func newLinkCommand(flags *globalFlags) *cobra.Command {
	values := make(map[urlstate.Key]*string, len(urlstate.Keys()))

	cmd := &cobra.Command{
		Use:   "link",
		Short: "Print a deep link for the given filters",
		Example: "  craftbook link --profession Alchemy --gear Flask\n" +
			"  craftbook link --crafter Ann",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flags.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			filters := make(map[urlstate.Key]string, len(values))
			for key, v := range values {
				filters[key] = *v
			}
			link, err := urlstate.Build(cfg.ShareURL, filters)
			if err != nil {
				return fmt.Errorf("build link: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), link)
			return nil
		},
	}

	usage := map[urlstate.Key]string{
		urlstate.Profession: "profession filter",
		urlstate.Gear:       "gear slot filter (item type)",
		urlstate.Item:       "item or enchant name filter",
		urlstate.Crafter:    "crafter filter",
	}
	for _, key := range urlstate.Keys() {
		values[key] = cmd.Flags().String(string(key), "", usage[key])
	}
	return cmd
}
