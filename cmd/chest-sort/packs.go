package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/chest-sort/config"
	"github.com/lixenwraith/chest-sort/content"
)

var packsCmd = &cobra.Command{
	Use:   "packs",
	Short: "List available content packs",
	Long: `List the built-in packs and any packs found in --packs-dir.

Packs of the same game can be combined with --packs a,b.`,
	Args: cobra.NoArgs,
	RunE: runPacks,
}

func runPacks(cmd *cobra.Command, _ []string) error {
	lib, err := content.Builtin()
	if err != nil {
		return err
	}
	if cfg.PacksDir != "" {
		if err := lib.LoadDir(cfg.PacksDir); err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tGAME\tCARDS\tDESCRIPTION")
	for _, name := range lib.Names() {
		p, _ := lib.Pack(name)
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", p.Name, p.Game, p.TotalCards(), p.Description)
	}
	return w.Flush()
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print a commented default config file",
	Long: `Print the default configuration as YAML.

Save it as chest-sort.yaml in the working directory or the user config dir
and edit as needed. Every key can also be set through CHEST_SORT_* variables,
e.g. CHEST_SORT_AUDIO_BPM=90.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprint(cmd.OutOrStdout(), config.DefaultConfigTemplate())
	},
}
