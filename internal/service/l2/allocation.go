package l2_service

import (
	"math"

	"foxvalley/internal/domain"

	"github.com/shopspring/decimal"
)

type AllocationInput struct {
	TotalValue float64
	// share of total value that may be deployed, the rest is the cash floor
	DeployFraction float64
	// max share of total value for any one new position
	PositionCap float64
}

// PlanAllocation splits the deployable pool evenly across Buy candidates,
// capping each position. candidates must already be classified. when total
// value or the buy count is zero every allocation is zero.
func PlanAllocation(set domain.CandidateSet, in AllocationInput) domain.AllocationPlan {
	buys := []string{}
	seen := map[string]bool{}
	for _, c := range set.Candidates {
		if c.Action != domain.ActionBuy || seen[c.Ticker] {
			continue
		}
		seen[c.Ticker] = true
		buys = append(buys, c.Ticker)
	}

	total := math.Max(in.TotalValue, 0)
	plan := domain.AllocationPlan{
		TotalValue:     decimal.NewFromFloat(total),
		DeployFraction: in.DeployFraction,
		PositionCap:    in.PositionCap,
		Deployable:     decimal.NewFromFloat(total).Mul(decimal.NewFromFloat(in.DeployFraction)).Truncate(2),
		Entries:        []domain.AllocationEntry{},
	}

	n := len(buys)
	pct := 0.0
	if total > 0 && n > 0 {
		pct = math.Min(in.PositionCap, in.DeployFraction/float64(n))
		// float division can land a hair above the true quotient
		limit := decimal.NewFromFloat(in.DeployFraction)
		count := decimal.NewFromInt(int64(n))
		for pct > 0 && (pct*float64(n) > in.DeployFraction || decimal.NewFromFloat(pct).Mul(count).GreaterThan(limit)) {
			pct = math.Nextafter(pct, 0)
		}
	}
	plan.PerPositionPct = pct

	for _, ticker := range buys {
		plan.Entries = append(plan.Entries, domain.AllocationEntry{
			Ticker: ticker,
			Pct:    pct,
			Amount: plan.TotalValue.Mul(decimal.NewFromFloat(pct)).Truncate(2),
		})
	}

	return plan
}

// ApplyAllocation copies plan amounts onto candidates, everything not in the
// plan gets zero
func ApplyAllocation(set domain.CandidateSet, plan domain.AllocationPlan) domain.CandidateSet {
	out := domain.CandidateSet{
		Date:       set.Date,
		Candidates: make([]domain.Candidate, len(set.Candidates)),
	}
	for i, c := range set.Candidates {
		c.AllocationPct = 0
		c.AllocationAmount = 0
		if e, ok := plan.Get(c.Ticker); ok && c.Action == domain.ActionBuy {
			c.AllocationPct = e.Pct
			c.AllocationAmount = e.Amount.InexactFloat64()
		}
		out.Candidates[i] = c
	}
	return out
}
