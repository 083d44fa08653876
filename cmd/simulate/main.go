package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/stitts-dev/catdraft/internal/models"
	"github.com/stitts-dev/catdraft/internal/simulator"
	"github.com/stitts-dev/catdraft/pkg/config"
	"github.com/stitts-dev/catdraft/pkg/logger"
)

// flags that override config keys
var configFlags = map[string]string{
	"SIMULATION_WORKERS": "workers",
	"NUM_TEAMS":          "teams",
	"NUM_ROUNDS":         "rounds",
	"ADP_SIGMA":          "adp-sigma",
}

type simulateOptions struct {
	poolFile    string
	simulations int
	seed        int64
	slot        int
	jsonOut     bool
}

func newRootCmd() *cobra.Command {
	opts := &simulateOptions{}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Benchmark the draft engine with simulated snake drafts",
		Long: `Run full snake drafts where one team follows the draft engine and every
other team drafts by ADP with gaussian noise, then report expected weekly
category wins.

Examples:
  simulate --pool players.json -n 500
  simulate --pool players.json --slot 3 --teams 12 --json
  simulate --pool players.json --workers 8 --seed 7`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runSimulate(ctx, cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.poolFile, "pool", "", "JSON file holding the player pool (array of players)")
	f.IntVarP(&opts.simulations, "simulations", "n", 100, "number of simulated drafts")
	f.Int64Var(&opts.seed, "seed", 42, "base random seed")
	f.IntVar(&opts.slot, "slot", 0, "1-based draft slot to benchmark; 0 rotates through every slot")
	f.BoolVar(&opts.jsonOut, "json", false, "print the report as JSON")
	f.Int("workers", 0, "simulation workers (SIMULATION_WORKERS)")
	f.Int("teams", 0, "teams in the league (NUM_TEAMS)")
	f.Int("rounds", 0, "draft rounds (NUM_ROUNDS)")
	f.Float64("adp-sigma", 0, "opponent ADP noise (ADP_SIGMA)")
	_ = cmd.MarkFlagRequired("pool")

	return cmd
}

func runSimulate(ctx context.Context, cmd *cobra.Command, opts *simulateOptions) error {
	cfg, err := config.LoadConfigWithFlags(cmd.Flags(), configFlags)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.InitLogger(cfg.LogLevel, cfg.IsDevelopment())
	log := logger.WithSimulationContext(opts.simulations, opts.seed)

	players, err := loadPool(opts.poolFile)
	if err != nil {
		return fmt.Errorf("failed to load player pool: %w", err)
	}
	league, err := cfg.League()
	if err != nil {
		return fmt.Errorf("invalid league config: %w", err)
	}
	if opts.slot < 0 || opts.slot > league.NumTeams {
		return fmt.Errorf("--slot must be between 0 and %d", league.NumTeams)
	}

	sim := simulator.NewSimulator(
		simulator.WithWeights(cfg.Weights()),
		simulator.WithBenchWeights(cfg.BenchWeights()),
		simulator.WithLogger(log),
	)
	report, err := sim.Run(ctx, players, league, simulator.Config{
		Simulations: opts.simulations,
		Workers:     cfg.SimulationWorkers,
		Seed:        opts.seed,
		MySlot:      opts.slot - 1,
	})
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	if opts.jsonOut {
		return writeJSON(cmd.OutOrStdout(), report)
	}
	printReport(log, report)
	return nil
}

func loadPool(path string) ([]models.Player, error) {
	if path == "" {
		return nil, errors.New("no pool file given")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var players []models.Player
	if err := json.Unmarshal(data, &players); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return players, nil
}

func writeJSON(w io.Writer, report *simulator.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func printReport(log *logrus.Entry, report *simulator.Report) {
	log.WithFields(logrus.Fields{
		"mean_wins":          fmt.Sprintf("%.3f", report.MeanWins),
		"std_dev":            fmt.Sprintf("%.3f", report.StdDevWins),
		"mean_hitters":       fmt.Sprintf("%.1f", report.MeanHitters),
		"mean_pitchers":      fmt.Sprintf("%.1f", report.MeanPitchers),
		"first_pitcher_pick": fmt.Sprintf("%.1f", report.MeanFirstPitcher),
		"duration":           report.Duration.String(),
	}).Info("Simulation summary")

	slots := make([]int, 0, len(report.PerSlot))
	for s := range report.PerSlot {
		slots = append(slots, s)
	}
	sort.Ints(slots)
	for _, s := range slots {
		log.WithField("slot", s).Infof("expected wins %.3f", report.PerSlot[s])
	}

	keys := make([]string, 0, len(report.CategoryWinRates))
	for k := range report.CategoryWinRates {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	for _, k := range keys {
		log.WithField("category", k).Infof("win rate %.3f", report.CategoryWinRates[models.StatKey(k)])
	}
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
