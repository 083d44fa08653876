package draft

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/catdraft/internal/models"
	"github.com/stitts-dev/catdraft/internal/optimizer"
	"github.com/stitts-dev/catdraft/internal/scoring"
	"github.com/stitts-dev/catdraft/internal/standings"
)

// Board is the full recommendation for the pick on the clock
type Board struct {
	MyTeamID       string                        `json:"my_team_id"`
	PickIndex      int                           `json:"pick_index"`
	Round          int                           `json:"round"`
	OnTheClock     string                        `json:"on_the_clock"`
	PicksUntilMine int                           `json:"picks_until_mine"`
	Confidence     float64                       `json:"confidence"`
	Standings      []standings.CategoryStanding  `json:"standings"`
	Scores         []scoring.DraftScore          `json:"scores"`
	Roster         *optimizer.Result             `json:"roster"`
	Projection     []standings.ProjectedStanding `json:"projection"`
	Tiers          []scoring.Tier                `json:"tiers"`
	Skipped        int                           `json:"skipped"`
}

// Engine scores every available player against the current draft state
type Engine struct {
	weights scoring.Weights
	bench   standings.BenchWeights
	workers int
	logger  *logrus.Entry
}

type Option func(*Engine)

func WithWeights(w scoring.Weights) Option {
	return func(e *Engine) { e.weights = w }
}

func WithBenchWeights(bw standings.BenchWeights) Option {
	return func(e *Engine) { e.bench = bw }
}

// WithWorkers sets the scoring goroutine count; zero or less means runtime.NumCPU
func WithWorkers(n int) Option {
	return func(e *Engine) { e.workers = n }
}

func WithLogger(l *logrus.Entry) Option {
	return func(e *Engine) { e.logger = l }
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		weights: scoring.DefaultWeights(),
		bench:   standings.DefaultBenchWeights(),
		logger:  logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.workers <= 0 {
		e.workers = runtime.NumCPU()
	}
	return e
}

func (e *Engine) Weights() scoring.Weights {
	return e.weights
}

// evaluation is the per-snapshot state shared by every candidate
type evaluation struct {
	reg            *models.CategoryRegistry
	slots          []optimizer.RosterSlot
	rosters        []*optimizer.Result
	totals         []models.TeamTotals
	mySlot         int
	standings      []standings.CategoryStanding
	strategies     map[models.StatKey]models.Strategy
	others         map[models.StatKey][]float64
	board          *scoring.PositionBoard
	levels         scoring.ReplacementLevels
	picksUntilMine int
}

func (e *Engine) prepare(snap *Snapshot) (*evaluation, error) {
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	reg, err := snap.League.Registry()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	slots, err := optimizer.FromSpecs(snap.League.RosterSlots)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}

	ev := &evaluation{
		reg:     reg,
		slots:   slots,
		rosters: make([]*optimizer.Result, len(snap.Teams)),
		totals:  make([]models.TeamTotals, len(snap.Teams)),
		mySlot:  snap.MySlot(),
	}
	for i, team := range snap.Teams {
		res := optimizer.Optimize(team.Players, slots)
		ev.rosters[i] = res
		ev.totals[i] = standings.AggregateTeam(team.TeamID, res.Starters, res.Bench, reg, e.bench)
	}

	numTeams := snap.League.NumTeams
	myTotals := ev.totals[ev.mySlot]
	ev.others = standings.OpponentTotals(ev.totals, snap.MyTeamID, reg.All())
	analyzed := standings.AnalyzeCategories(myTotals.Values, ev.others, reg.All(), numTeams)
	ev.standings = standings.ClassifyStrategies(analyzed, len(snap.Teams[ev.mySlot].Players), numTeams, snap.League.PlayoffSpots)
	ev.strategies = standings.StrategyMap(ev.standings)

	catStats := scoring.ComputeCategoryStats(snap.Available, reg)
	ev.board = scoring.BuildPositionBoard(snap.Available, catStats, reg)
	ev.levels = scoring.ComputeReplacementLevels(ev.board, slots, numTeams)
	ev.picksUntilMine = PicksUntilNextTurn(snap.PickIndex, ev.mySlot, numTeams, snap.League.Rounds)

	return ev, nil
}

func (e *Engine) score(snap *Snapshot, ev *evaluation, p models.Player) scoring.DraftScore {
	myRoster := ev.rosters[ev.mySlot]
	normalized, _ := ev.board.Value(p.ID)

	mcw := scoring.ComputeMCW(
		p.Values,
		ev.totals[ev.mySlot].Values,
		ev.others,
		ev.strategies,
		ev.reg.All(),
		snap.League.NumTeams,
	)

	return scoring.Blend(scoring.ScoreInput{
		PlayerID:        p.ID,
		PlayerName:      p.Name,
		MCW:             mcw,
		VONA:            ev.board.VONA(p),
		SurplusValue:    scoring.SurplusValue(p, normalized, ev.levels),
		ADP:             p.ADP,
		HasStartingNeed: myRoster.HasStartingNeed(p),
		CurrentPick:     snap.PickIndex,
		PicksUntilMine:  ev.picksUntilMine,
		PicksMade:       snap.PickIndex,
		MyPickCount:     len(snap.Teams[ev.mySlot].Players),
		NumTeams:        snap.League.NumTeams,
	}, e.weights)
}

// Evaluate runs the whole pipeline for a snapshot: roster assignment, team
// totals, category standings and strategy, then a score for every available
// player that still fits my roster. Scores come back best first.
func (e *Engine) Evaluate(ctx context.Context, snap *Snapshot) (*Board, error) {
	start := time.Now()
	ev, err := e.prepare(snap)
	if err != nil {
		return nil, err
	}

	myRoster := ev.rosters[ev.mySlot]
	var candidates []models.Player
	for _, p := range snap.Available {
		if myRoster.CanAdd(p) {
			candidates = append(candidates, p)
		}
	}

	scores, err := e.scoreAll(ctx, snap, ev, candidates)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].FinalScore != scores[j].FinalScore {
			return scores[i].FinalScore > scores[j].FinalScore
		}
		return scores[i].PlayerID < scores[j].PlayerID
	})

	board := &Board{
		MyTeamID:       snap.MyTeamID,
		PickIndex:      snap.PickIndex,
		Round:          Round(snap.PickIndex, snap.League.NumTeams),
		OnTheClock:     snap.Teams[SnakeTeam(snap.PickIndex, snap.League.NumTeams)].TeamID,
		PicksUntilMine: ev.picksUntilMine,
		Confidence:     scoring.LeagueConfidence(snap.PickIndex, snap.League.NumTeams, e.weights),
		Standings:      ev.standings,
		Scores:         scores,
		Roster:         myRoster,
		Projection:     e.project(snap, ev),
		Tiers:          e.tiers(snap, ev),
		Skipped:        len(snap.Available) - len(candidates),
	}

	e.logger.WithFields(logrus.Fields{
		"pick_index": snap.PickIndex,
		"candidates": len(candidates),
		"skipped":    board.Skipped,
		"duration":   time.Since(start).String(),
	}).Debug("Draft board evaluated")

	return board, nil
}

// ScorePlayer scores a single available player against the snapshot
func (e *Engine) ScorePlayer(ctx context.Context, snap *Snapshot, playerID string) (*scoring.DraftScore, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ev, err := e.prepare(snap)
	if err != nil {
		return nil, err
	}
	p, ok := snap.FindAvailable(playerID)
	if !ok {
		return nil, fmt.Errorf("%w: player %q is not available", ErrInvalidSnapshot, playerID)
	}
	s := e.score(snap, ev, p)
	return &s, nil
}

// scoreAll fans candidates out to a fixed pool of workers. Each candidate is
// scored independently so results do not depend on scheduling.
func (e *Engine) scoreAll(ctx context.Context, snap *Snapshot, ev *evaluation, candidates []models.Player) ([]scoring.DraftScore, error) {
	scores := make([]scoring.DraftScore, len(candidates))
	if len(candidates) == 0 {
		return scores, nil
	}

	numWorkers := e.workers
	if numWorkers > len(candidates) {
		numWorkers = len(candidates)
	}

	jobs := make(chan int, len(candidates))
	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					continue
				}
				scores[i] = e.score(snap, ev, candidates[i])
			}
		}()
	}

	for i := range candidates {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return scores, nil
}

func (e *Engine) project(snap *Snapshot, ev *evaluation) []standings.ProjectedStanding {
	teams := make([]standings.ProjectionTeam, len(ev.totals))
	for i, totals := range ev.totals {
		teams[i] = standings.ProjectionTeam{
			Totals:                totals,
			RemainingHitterSlots:  ev.rosters[i].RemainingStarting(models.PlayerTypeHitter),
			RemainingPitcherSlots: ev.rosters[i].RemainingStarting(models.PlayerTypePitcher),
		}
	}
	return standings.ProjectStandings(teams, snap.Available, ev.reg, snap.League.NumTeams)
}

func (e *Engine) tiers(snap *Snapshot, ev *evaluation) []scoring.Tier {
	inputs := make([]scoring.TierInput, 0, len(snap.Available))
	for _, p := range snap.Available {
		v, _ := ev.board.Value(p.ID)
		inputs = append(inputs, scoring.TierInput{PlayerID: p.ID, PlayerName: p.Name, Value: v})
	}
	return scoring.DetectTiers(inputs)
}

// Tiers groups the available pool into value tiers. A non-empty position
// restricts the pool to players eligible there, pitchers by role.
func (e *Engine) Tiers(snap *Snapshot, position string) ([]scoring.Tier, error) {
	ev, err := e.prepare(snap)
	if err != nil {
		return nil, err
	}
	if position == "" {
		return e.tiers(snap, ev), nil
	}

	names := make(map[string]string, len(snap.Available))
	for _, p := range snap.Available {
		names[p.ID] = p.Name
	}
	ranked := ev.board.Position(models.NormalizePosition(position))
	inputs := make([]scoring.TierInput, len(ranked))
	for i, r := range ranked {
		inputs[i] = scoring.TierInput{PlayerID: r.PlayerID, PlayerName: names[r.PlayerID], Value: r.Value}
	}
	return scoring.DetectTiers(inputs), nil
}

// Project runs only the standings projection for a snapshot
func (e *Engine) Project(snap *Snapshot) ([]standings.ProjectedStanding, error) {
	ev, err := e.prepare(snap)
	if err != nil {
		return nil, err
	}
	return e.project(snap, ev), nil
}
