package simulator

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/stitts-dev/catdraft/internal/draft"
	"github.com/stitts-dev/catdraft/internal/models"
	"github.com/stitts-dev/catdraft/internal/optimizer"
	"github.com/stitts-dev/catdraft/internal/scoring"
	"github.com/stitts-dev/catdraft/internal/standings"
)

// unknownADP ranks players without an ADP behind everyone else
const unknownADP = 999.0

var ErrInvalidConfig = errors.New("invalid simulation config")

// Config controls a benchmark run
type Config struct {
	Simulations int   `json:"simulations"`
	Workers     int   `json:"workers"`
	Seed        int64 `json:"seed"`
	// MySlot is the 0-based draft slot to benchmark; -1 rotates through every slot
	MySlot int `json:"my_slot"`
}

// DraftResult is the outcome of one simulated draft from my seat
type DraftResult struct {
	Slot              int                        `json:"slot"`
	ExpectedWins      float64                    `json:"expected_wins"`
	CategoryWinProbs  map[models.StatKey]float64 `json:"category_win_probs"`
	Hitters           int                        `json:"hitters"`
	Pitchers          int                        `json:"pitchers"`
	FirstPitcherRound int                        `json:"first_pitcher_round"`
	Picks             []string                   `json:"picks"`
}

// Report aggregates every simulated draft
type Report struct {
	Simulations      int                        `json:"simulations"`
	MeanWins         float64                    `json:"mean_wins"`
	StdDevWins       float64                    `json:"std_dev_wins"`
	PerSlot          map[int]float64            `json:"per_slot"`
	CategoryWinRates map[models.StatKey]float64 `json:"category_win_rates"`
	MeanHitters      float64                    `json:"mean_hitters"`
	MeanPitchers     float64                    `json:"mean_pitchers"`
	MeanFirstPitcher float64                    `json:"mean_first_pitcher_round"`
	Duration         time.Duration              `json:"duration"`
	Results          []DraftResult              `json:"-"`
}

// Simulator runs full snake drafts where my team follows the engine and every
// opponent drafts by ADP with gaussian noise
type Simulator struct {
	weights scoring.Weights
	bench   standings.BenchWeights
	logger  *logrus.Entry
}

type Option func(*Simulator)

func WithWeights(w scoring.Weights) Option {
	return func(s *Simulator) { s.weights = w }
}

func WithBenchWeights(bw standings.BenchWeights) Option {
	return func(s *Simulator) { s.bench = bw }
}

func WithLogger(l *logrus.Entry) Option {
	return func(s *Simulator) { s.logger = l }
}

func NewSimulator(opts ...Option) *Simulator {
	s := &Simulator{
		weights: scoring.DefaultWeights(),
		bench:   standings.DefaultBenchWeights(),
		logger:  logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run simulates cfg.Simulations drafts across a pool of workers. Simulation i
// is seeded with cfg.Seed+i so the report does not depend on scheduling.
func (s *Simulator) Run(ctx context.Context, players []models.Player, league models.LeagueConfig, cfg Config) (*Report, error) {
	start := time.Now()
	if cfg.Simulations <= 0 {
		return nil, fmt.Errorf("%w: simulations must be positive", ErrInvalidConfig)
	}
	if cfg.MySlot < -1 || cfg.MySlot >= league.NumTeams {
		return nil, fmt.Errorf("%w: my_slot %d outside the draft order", ErrInvalidConfig, cfg.MySlot)
	}
	if err := newSnapshot(players, league, 0).Validate(); err != nil {
		return nil, err
	}

	numWorkers := runtime.NumCPU()
	if cfg.Workers > 0 {
		numWorkers = cfg.Workers
	}
	if numWorkers > cfg.Simulations {
		numWorkers = cfg.Simulations
	}

	// each draft already runs in its own goroutine, so the engine scores serially
	engine := draft.NewEngine(
		draft.WithWeights(s.weights),
		draft.WithBenchWeights(s.bench),
		draft.WithWorkers(1),
		draft.WithLogger(s.logger),
	)

	simulationsChan := make(chan int, cfg.Simulations)
	results := make([]DraftResult, cfg.Simulations)
	errs := make([]error, cfg.Simulations)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range simulationsChan {
				if ctx.Err() != nil {
					errs[i] = ctx.Err()
					continue
				}
				slot := cfg.MySlot
				if slot < 0 {
					slot = i % league.NumTeams
				}
				rng := rand.New(rand.NewSource(cfg.Seed + int64(i)))
				results[i], errs[i] = s.simulateDraft(ctx, engine, players, league, slot, rng)
			}
		}()
	}

	for i := 0; i < cfg.Simulations; i++ {
		simulationsChan <- i
	}
	close(simulationsChan)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	report := aggregate(results)
	report.Duration = time.Since(start)

	s.logger.WithFields(logrus.Fields{
		"simulations": report.Simulations,
		"mean_wins":   report.MeanWins,
		"std_dev":     report.StdDevWins,
		"duration":    report.Duration.String(),
	}).Info("Draft simulation completed")

	return report, nil
}

func newSnapshot(players []models.Player, league models.LeagueConfig, mySlot int) *draft.Snapshot {
	teams := make([]draft.TeamRoster, league.NumTeams)
	for i := range teams {
		teams[i] = draft.TeamRoster{TeamID: fmt.Sprintf("team-%d", i+1)}
	}
	myTeamID := ""
	if mySlot >= 0 && mySlot < len(teams) {
		myTeamID = teams[mySlot].TeamID
	}
	available := make([]models.Player, len(players))
	copy(available, players)

	return &draft.Snapshot{
		League:    league,
		MyTeamID:  myTeamID,
		Teams:     teams,
		Available: available,
	}
}

func (s *Simulator) simulateDraft(ctx context.Context, engine *draft.Engine, players []models.Player, league models.LeagueConfig, mySlot int, rng *rand.Rand) (DraftResult, error) {
	slots, err := optimizer.FromSpecs(league.RosterSlots)
	if err != nil {
		return DraftResult{}, fmt.Errorf("%w: %v", draft.ErrInvalidSnapshot, err)
	}

	snap := newSnapshot(players, league, mySlot)
	rosters := make([]*optimizer.Result, league.NumTeams)
	for i := range rosters {
		rosters[i] = optimizer.Optimize(nil, slots)
	}

	result := DraftResult{Slot: mySlot}
	totalPicks := league.NumTeams * league.Rounds

	for snap.PickIndex < totalPicks && len(snap.Available) > 0 {
		if err := ctx.Err(); err != nil {
			return DraftResult{}, err
		}
		team := draft.SnakeTeam(snap.PickIndex, league.NumTeams)

		var chosen *models.Player
		if team == mySlot {
			board, err := engine.Evaluate(ctx, snap)
			if err != nil {
				return DraftResult{}, err
			}
			if len(board.Scores) > 0 {
				p, _ := snap.FindAvailable(board.Scores[0].PlayerID)
				chosen = &p
			}
		} else {
			chosen = opponentPick(snap.Available, rosters[team], rng, s.weights.ADPSigma)
		}

		if chosen == nil {
			// nothing fits this roster, the pick is forfeited
			snap.PickIndex++
			continue
		}

		rosters[team].Add(*chosen)
		if _, err := snap.RecordPick(chosen.ID); err != nil {
			return DraftResult{}, err
		}
		if team == mySlot {
			result.Picks = append(result.Picks, chosen.ID)
			if chosen.IsPitcher() {
				result.Pitchers++
				if result.FirstPitcherRound == 0 {
					result.FirstPitcherRound = len(result.Picks)
				}
			} else {
				result.Hitters++
			}
		}
	}

	evaluateDraft(&result, snap, slots, s.bench)
	return result, nil
}

// opponentPick sorts the pool by ADP plus gaussian noise and takes the first
// player that fits the roster, or the first player at all when nothing fits
func opponentPick(available []models.Player, roster *optimizer.Result, rng *rand.Rand, sigma float64) *models.Player {
	if len(available) == 0 {
		return nil
	}

	type candidate struct {
		noisyADP float64
		idx      int
	}
	candidates := make([]candidate, len(available))
	for i, p := range available {
		adp := unknownADP
		if p.HasADP() {
			adp = p.ADP
		}
		candidates[i] = candidate{noisyADP: adp + rng.NormFloat64()*sigma, idx: i}
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].noisyADP < candidates[j].noisyADP })

	for _, c := range candidates {
		if roster.CanAdd(available[c.idx]) {
			p := available[c.idx]
			return &p
		}
	}
	p := available[candidates[0].idx]
	return &p
}

// evaluateDraft scores the finished league from my seat. Every category
// counts, punted or not.
func evaluateDraft(result *DraftResult, snap *draft.Snapshot, slots []optimizer.RosterSlot, bench standings.BenchWeights) {
	reg, err := snap.League.Registry()
	if err != nil {
		return
	}

	totals := make([]models.TeamTotals, len(snap.Teams))
	for i, team := range snap.Teams {
		res := optimizer.Optimize(team.Players, slots)
		totals[i] = standings.AggregateTeam(team.TeamID, res.Starters, res.Bench, reg, bench)
	}

	ranked := standings.RankTeams(totals, reg, snap.League.NumTeams)
	mine := ranked[result.Slot]
	result.ExpectedWins = mine.ExpectedWins
	result.CategoryWinProbs = make(map[models.StatKey]float64, reg.Len())
	for _, cat := range reg.All() {
		result.CategoryWinProbs[cat.Key] = standings.WinProbability(mine.Ranks[cat.Key], snap.League.NumTeams)
	}
}

func aggregate(results []DraftResult) *Report {
	report := &Report{
		Simulations:      len(results),
		PerSlot:          make(map[int]float64),
		CategoryWinRates: make(map[models.StatKey]float64),
		Results:          results,
	}

	wins := make([]float64, len(results))
	hitters := make([]float64, len(results))
	pitchers := make([]float64, len(results))
	var firstPitcher []float64
	slotWins := make(map[int][]float64)
	catProbs := make(map[models.StatKey][]float64)

	for i, r := range results {
		wins[i] = r.ExpectedWins
		hitters[i] = float64(r.Hitters)
		pitchers[i] = float64(r.Pitchers)
		if r.FirstPitcherRound > 0 {
			firstPitcher = append(firstPitcher, float64(r.FirstPitcherRound))
		}
		slotWins[r.Slot] = append(slotWins[r.Slot], r.ExpectedWins)
		for key, p := range r.CategoryWinProbs {
			catProbs[key] = append(catProbs[key], p)
		}
	}

	report.MeanWins, report.StdDevWins = stat.PopMeanStdDev(wins, nil)
	report.MeanHitters = stat.Mean(hitters, nil)
	report.MeanPitchers = stat.Mean(pitchers, nil)
	if len(firstPitcher) > 0 {
		report.MeanFirstPitcher = stat.Mean(firstPitcher, nil)
	}
	for slot, w := range slotWins {
		report.PerSlot[slot+1] = stat.Mean(w, nil)
	}
	for key, probs := range catProbs {
		report.CategoryWinRates[key] = stat.Mean(probs, nil)
	}

	return report
}
