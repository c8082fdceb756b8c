package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/chest-sort/audio"
	"github.com/lixenwraith/chest-sort/content"
	"github.com/lixenwraith/chest-sort/parameter"
	"github.com/lixenwraith/chest-sort/progression"
	"github.com/lixenwraith/chest-sort/session"
)

var (
	simAccuracy float64
	simTimeout  time.Duration
	simRuns     int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play sessions headless with a bot",
	Long: `Simulate runs complete sessions without a terminal or audio device.

A bot drags every card, choosing the right receptacle with probability
--accuracy. Game time advances in fixed steps so a session finishes in
milliseconds. The summary of each run is printed.`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().Float64Var(&simAccuracy, "accuracy", parameter.BotDefaultAccuracy, "probability the bot picks the right receptacle")
	simulateCmd.Flags().DurationVar(&simTimeout, "timeout", parameter.SimulationTimeout, "game time limit per run")
	simulateCmd.Flags().IntVar(&simRuns, "runs", 1, "number of sessions to play")
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	if simAccuracy < 0 || simAccuracy > 1 {
		return fmt.Errorf("--accuracy must be within [0,1], got %g", simAccuracy)
	}
	if simRuns < 1 {
		return fmt.Errorf("--runs must be positive, got %d", simRuns)
	}

	sel, err := loadSelection(cfg)
	if err != nil {
		return err
	}
	if !sel.HasEnoughCards(cfg.Round.Quota) {
		log.Printf("[main] selection %v cannot fill quota %d for every category", sel.Names(), cfg.Round.Quota)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	out := cmd.OutOrStdout()
	for run := range simRuns {
		sum, err := simulateOnce(sel, seed+int64(run))
		if err != nil {
			return fmt.Errorf("run %d: %w", run+1, err)
		}
		fmt.Fprintf(out, "run %d seed=%d %s\n", run+1, seed+int64(run), sum)
	}
	return nil
}

// simulateOnce plays one session to completion against a silent mixer
func simulateOnce(sel *content.Selection, seed int64) (progression.Summary, error) {
	sess, err := session.New(session.Options{
		Pools:       sel,
		Receptacles: sel.Receptacles(),
		Quota:       cfg.Round.Quota,
		SpawnDelay:  cfg.Round.SpawnDelay,
		Seed:        seed,
		Strict:      cfg.Strict,
		Grid:        audio.Grid{BPM: cfg.Audio.BPM, BeatsPerBar: cfg.Audio.BeatsPerBar},
	})
	if err != nil {
		return progression.Summary{}, err
	}
	defer sess.Close()

	if err := sess.Start(); err != nil {
		return progression.Summary{}, err
	}
	bot := session.NewBot(sess, simAccuracy, rand.New(rand.NewSource(seed)))
	return session.Simulate(sess, bot, parameter.SimulationStep, simTimeout)
}
