package l2_service

import (
	"foxvalley/internal/domain"
)

// CrossMatch flags every candidate whose ticker is in the portfolio. it is a
// membership test only, nothing from the holding is copied onto the
// candidate.
func CrossMatch(set domain.CandidateSet, holdings []domain.Holding) domain.CandidateSet {
	held := map[string]bool{}
	for _, h := range holdings {
		held[h.Ticker] = true
	}

	out := domain.CandidateSet{
		Date:       set.Date,
		Candidates: make([]domain.Candidate, len(set.Candidates)),
	}
	for i, c := range set.Candidates {
		c.Held = held[c.Ticker]
		out.Candidates[i] = c
	}
	return out
}
