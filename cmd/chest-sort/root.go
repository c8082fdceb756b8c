package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/chest-sort/config"
	"github.com/lixenwraith/chest-sort/content"
)

var (
	// configFile is set by the --config flag
	configFile string

	// v carries defaults, environment and bound flags
	v = config.New()

	// cfg is the resolved configuration, loaded in PersistentPreRunE
	cfg config.Config

	// logFile is the debug log, nil when logging is discarded
	logFile *os.File
)

var rootCmd = &cobra.Command{
	Use:   "chest-sort",
	Short: "Sort engineering cards into the right chest",
	Long: `chest-sort is a terminal drag-and-drop sorting game.

Cards drift into the play area and are dragged with the mouse into the
receptacle they belong to. Two rounds per tier, Easy then Hard, and the
soundtrack crossfades on the bar as the session progresses.

Running without a subcommand starts the game.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	PersistentPostRun: func(*cobra.Command, []string) {
		if logFile != nil {
			logFile.Close()
		}
	},
	RunE: runPlay,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (default: ./chest-sort.yaml or <user config dir>/chest-sort/chest-sort.yaml)")
	flags.Bool("debug", false, "write logs to logs/chest-sort.log")
	flags.Int64("seed", 0, "random seed, 0 picks one from the clock")
	flags.StringSlice("packs", nil, "content packs to combine, all of the same game")
	flags.String("packs-dir", "", "directory of additional *.yaml packs")
	flags.Int("quota", 0, "cards per category per round")
	flags.Duration("spawn-delay", 0, "delay between card spawns")
	flags.Float64("bpm", 0, "soundtrack tempo")
	flags.Bool("no-audio", false, "never open the audio device")
	flags.Bool("strict", false, "panic when a consumed card is evaluated again")

	bindings := map[string]string{
		config.KeyDebug:      "debug",
		config.KeySeed:       "seed",
		config.KeyPacks:      "packs",
		config.KeyPacksDir:   "packs-dir",
		config.KeyQuota:      "quota",
		config.KeySpawnDelay: "spawn-delay",
		config.KeyBPM:        "bpm",
		config.KeyStrict:     "strict",
	}
	for key, name := range bindings {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", name, err))
		}
	}

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(packsCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig resolves file, environment and flags into cfg and opens the debug log
func loadConfig(cmd *cobra.Command, _ []string) error {
	if off, _ := cmd.Flags().GetBool("no-audio"); off {
		v.Set(config.KeyAudio, false)
	}

	loaded, err := config.Load(v, configFile)
	if err != nil {
		return err
	}
	cfg = loaded
	logFile = setupLogging(cfg.Debug)
	return nil
}

// loadSelection builds the content selection named by c
func loadSelection(c config.Config) (*content.Selection, error) {
	lib, err := content.Builtin()
	if err != nil {
		return nil, fmt.Errorf("builtin packs: %w", err)
	}
	if c.PacksDir != "" {
		if err := lib.LoadDir(c.PacksDir); err != nil {
			return nil, fmt.Errorf("packs dir: %w", err)
		}
	}
	sel, err := lib.Select(c.Packs...)
	if err != nil {
		return nil, err
	}
	if err := sel.CheckQuota(c.Round.Quota); err != nil {
		return nil, err
	}
	return sel, nil
}
