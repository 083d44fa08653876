package models

// TeamTotals summarizes a roster: contribution sums per category plus the raw
// accumulators needed to recompute rate stats. It is always derived from a roster.
type TeamTotals struct {
	TeamID string `json:"team_id"`
	// Values are contribution totals, higher is better in every category
	Values map[StatKey]float64 `json:"values"`
	// Counting holds weighted raw sums for counting stats and weight stats (PA, IP)
	Counting map[StatKey]float64 `json:"counting"`
	// RateSums holds rate x weight-stat numerators for rate categories
	RateSums map[StatKey]float64 `json:"rate_sums"`
	// Weights holds the weight-stat denominators for rate categories
	Weights map[StatKey]float64 `json:"weights"`
}

func NewTeamTotals(teamID string) TeamTotals {
	return TeamTotals{
		TeamID:   teamID,
		Values:   make(map[StatKey]float64),
		Counting: make(map[StatKey]float64),
		RateSums: make(map[StatKey]float64),
		Weights:  make(map[StatKey]float64),
	}
}

// AddPlayer folds a player into the totals at the given weight
func (t *TeamTotals) AddPlayer(p Player, weight float64, reg *CategoryRegistry) {
	t.ensure()
	for _, cat := range reg.All() {
		t.Values[cat.Key] += p.Value(cat.Key) * weight
		if !cat.Applies(p.Type) {
			continue
		}
		if cat.IsRateStat {
			w := p.Stat(cat.WeightStat) * weight
			t.RateSums[cat.Key] += p.Stat(cat.Key) * w
			t.Weights[cat.Key] += w
			continue
		}
		t.Counting[cat.Key] += p.Stat(cat.Key) * weight
	}

	switch p.Type {
	case PlayerTypeHitter:
		t.Counting[StatPA] += p.Stat(StatPA) * weight
	case PlayerTypePitcher:
		t.Counting[StatIP] += p.Stat(StatIP) * weight
	}
}

// AddScaled adds scale x other to every accumulator
func (t *TeamTotals) AddScaled(other TeamTotals, scale float64) {
	t.ensure()
	for k, v := range other.Values {
		t.Values[k] += v * scale
	}
	for k, v := range other.Counting {
		t.Counting[k] += v * scale
	}
	for k, v := range other.RateSums {
		t.RateSums[k] += v * scale
	}
	for k, v := range other.Weights {
		t.Weights[k] += v * scale
	}
}

// Stat returns the raw category value: a weighted sum for counting stats, the
// weight-stat weighted mean for rate stats (0 when nothing has been accumulated).
func (t TeamTotals) Stat(cat Category) float64 {
	if !cat.IsRateStat {
		return t.Counting[cat.Key]
	}
	w := t.Weights[cat.Key]
	if w == 0 {
		return 0
	}
	return t.RateSums[cat.Key] / w
}

// StatLine returns every category's raw value keyed by category
func (t TeamTotals) StatLine(reg *CategoryRegistry) map[StatKey]float64 {
	line := make(map[StatKey]float64, reg.Len())
	for _, cat := range reg.All() {
		line[cat.Key] = t.Stat(cat)
	}
	return line
}

func (t TeamTotals) Clone() TeamTotals {
	c := NewTeamTotals(t.TeamID)
	c.AddScaled(t, 1)
	return c
}

func (t *TeamTotals) ensure() {
	if t.Values == nil {
		t.Values = make(map[StatKey]float64)
	}
	if t.Counting == nil {
		t.Counting = make(map[StatKey]float64)
	}
	if t.RateSums == nil {
		t.RateSums = make(map[StatKey]float64)
	}
	if t.Weights == nil {
		t.Weights = make(map[StatKey]float64)
	}
}
