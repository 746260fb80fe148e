package domain

import "sort"

// ScreenMetrics are the optional numeric columns some screen exports carry
type ScreenMetrics struct {
	CompositeScore *float64
	PriceChange5d  *float64
	Volatility30d  *float64
}

// fill takes any metric missing on m from other
func (m ScreenMetrics) fill(other ScreenMetrics) ScreenMetrics {
	if m.CompositeScore == nil {
		m.CompositeScore = other.CompositeScore
	}
	if m.PriceChange5d == nil {
		m.PriceChange5d = other.PriceChange5d
	}
	if m.Volatility30d == nil {
		m.Volatility30d = other.Volatility30d
	}
	return m
}

// ScreenEntry is one row of an externally ranked list. Rank is nil when the
// export had no usable rank, lower is better.
type ScreenEntry struct {
	Ticker  string
	Rank    *int
	Source  string
	Metrics ScreenMetrics
}

type Action string

const (
	ActionBuy    Action = "Buy"
	ActionHold   Action = "Hold"
	ActionReview Action = "Review"
	ActionWatch  Action = "Watch"
	ActionTrim   Action = "Caution/Trim"
	ActionAvoid  Action = "Avoid"
)

type Candidate struct {
	Ticker  string
	Rank    *int
	Sources []string
	Held    bool
	Metrics ScreenMetrics

	Action           Action
	AllocationPct    float64
	AllocationAmount float64

	TacticalScore *float64
	TacticalTag   string
}

// CandidateSet is the de-duplicated union of all screen entries for a date
type CandidateSet struct {
	Date       string
	Candidates []Candidate
}

func (c CandidateSet) IsEmpty() bool {
	return len(c.Candidates) == 0
}

func (c CandidateSet) Tickers() []string {
	out := make([]string, 0, len(c.Candidates))
	for _, candidate := range c.Candidates {
		out = append(out, candidate.Ticker)
	}
	return out
}

func (c CandidateSet) Get(ticker string) (Candidate, bool) {
	for _, candidate := range c.Candidates {
		if candidate.Ticker == ticker {
			return candidate, true
		}
	}
	return Candidate{}, false
}

func (c CandidateSet) WithAction(action Action) []Candidate {
	out := []Candidate{}
	for _, candidate := range c.Candidates {
		if candidate.Action == action {
			out = append(out, candidate)
		}
	}
	return out
}

// RankLess orders ranks with nil last
func RankLess(a, b *int) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return *a < *b
}

// NewCandidateSet unions entries by ticker, keeping the best rank and every
// contributing source. Entries with an empty ticker are skipped. Output is
// ordered by rank, then ticker.
func NewCandidateSet(date string, entries []ScreenEntry) CandidateSet {
	byTicker := map[string]*Candidate{}
	sourcesByTicker := map[string]map[string]struct{}{}
	order := []string{}

	for _, e := range entries {
		if e.Ticker == "" {
			continue
		}
		c, ok := byTicker[e.Ticker]
		if !ok {
			c = &Candidate{
				Ticker:  e.Ticker,
				Rank:    e.Rank,
				Metrics: e.Metrics,
			}
			byTicker[e.Ticker] = c
			sourcesByTicker[e.Ticker] = map[string]struct{}{}
			order = append(order, e.Ticker)
		} else if RankLess(e.Rank, c.Rank) {
			c.Rank = e.Rank
			c.Metrics = e.Metrics.fill(c.Metrics)
		} else {
			c.Metrics = c.Metrics.fill(e.Metrics)
		}
		if e.Source != "" {
			sourcesByTicker[e.Ticker][e.Source] = struct{}{}
		}
	}

	out := CandidateSet{
		Date:       date,
		Candidates: make([]Candidate, 0, len(order)),
	}
	for _, ticker := range order {
		c := byTicker[ticker]
		c.Sources = []string{}
		for s := range sourcesByTicker[ticker] {
			c.Sources = append(c.Sources, s)
		}
		sort.Strings(c.Sources)
		out.Candidates = append(out.Candidates, *c)
	}
	sort.SliceStable(out.Candidates, func(i, j int) bool {
		a, b := out.Candidates[i], out.Candidates[j]
		if RankLess(a.Rank, b.Rank) {
			return true
		}
		if RankLess(b.Rank, a.Rank) {
			return false
		}
		return a.Ticker < b.Ticker
	})

	return out
}
