package domain

import "github.com/shopspring/decimal"

type AllocationEntry struct {
	Ticker string
	Pct    float64
	Amount decimal.Decimal
}

// AllocationPlan splits deployable cash across new rank 1 candidates.
// Pct values are fractions of total value, so 0.15 is 15%.
type AllocationPlan struct {
	TotalValue     decimal.Decimal
	DeployFraction float64
	PositionCap    float64
	Deployable     decimal.Decimal
	PerPositionPct float64
	Entries        []AllocationEntry
}

func (p AllocationPlan) TotalPct() float64 {
	sum := 0.0
	for _, e := range p.Entries {
		sum += e.Pct
	}
	return sum
}

func (p AllocationPlan) TotalAmount() decimal.Decimal {
	sum := decimal.Zero
	for _, e := range p.Entries {
		sum = sum.Add(e.Amount)
	}
	return sum
}

func (p AllocationPlan) Get(ticker string) (AllocationEntry, bool) {
	for _, e := range p.Entries {
		if e.Ticker == ticker {
			return e, true
		}
	}
	return AllocationEntry{}, false
}
