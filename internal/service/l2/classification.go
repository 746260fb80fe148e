package l2_service

import (
	"foxvalley/internal/domain"
)

// Classify maps rank and held status to an action. it has no memory, every
// run classifies from scratch.
func Classify(rank *int, held bool) domain.Action {
	if rank == nil {
		return domain.ActionReview
	}
	switch {
	case *rank == 1 && !held:
		return domain.ActionBuy
	case *rank == 1 && held:
		return domain.ActionHold
	case *rank == 2 && held:
		return domain.ActionReview
	case *rank == 2 && !held:
		return domain.ActionWatch
	case held:
		return domain.ActionTrim
	default:
		return domain.ActionAvoid
	}
}

func ClassifyAll(set domain.CandidateSet) domain.CandidateSet {
	out := domain.CandidateSet{
		Date:       set.Date,
		Candidates: make([]domain.Candidate, len(set.Candidates)),
	}
	for i, c := range set.Candidates {
		c.Action = Classify(c.Rank, c.Held)
		out.Candidates[i] = c
	}
	return out
}

var rankSignals = map[int]string{
	1: "Strong Buy",
	2: "Buy",
	3: "Hold",
	4: "Trim",
	5: "Sell",
}

func RankSignal(rank *int) string {
	if rank == nil {
		return "No Rating"
	}
	if s, ok := rankSignals[*rank]; ok {
		return s
	}
	return "No Rating"
}

// PositionSignal refines the rank signal of a held position by how far it
// is up or down
func PositionSignal(rank *int, gainPct *float64) string {
	signal := RankSignal(rank)
	if gainPct == nil {
		return signal
	}
	gain := *gainPct
	switch {
	case signal == "Hold" && gain > 20:
		return "Trim"
	case signal == "Sell" && gain > 30:
		return "Sell - Take Profits"
	case signal == "Buy" && gain < -10:
		return "Buy More (Dip Buy)"
	}
	return signal
}
