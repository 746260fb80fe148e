package l2_service

import (
	"sort"

	"foxvalley/internal/domain"
)

func tickerSet(tickers []string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, t := range tickers {
		if t != "" {
			out[t] = struct{}{}
		}
	}
	return out
}

func difference(a, b map[string]struct{}) []string {
	out := []string{}
	for t := range a {
		if _, ok := b[t]; !ok {
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}

// CompareTickers reports what is new in today and what dropped out since
// prior. an empty side means there is nothing to compare against, and
// instead of reporting every ticker as changed the report is flagged.
func CompareTickers(today, prior []string) domain.DeltaReport {
	todaySet := tickerSet(today)
	priorSet := tickerSet(prior)

	if len(todaySet) == 0 || len(priorSet) == 0 {
		return domain.DeltaReport{
			Added:               []string{},
			Removed:             []string{},
			InsufficientHistory: true,
		}
	}

	return domain.DeltaReport{
		Added:   difference(todaySet, priorSet),
		Removed: difference(priorSet, todaySet),
	}
}

// CompareCandidateSets runs the delta on two snapshots. prior may be nil.
func CompareCandidateSets(today domain.CandidateSet, prior *domain.CandidateSet) domain.DeltaReport {
	var priorTickers []string
	priorDate := ""
	if prior != nil {
		priorTickers = prior.Tickers()
		priorDate = prior.Date
	}

	out := CompareTickers(today.Tickers(), priorTickers)
	out.Date = today.Date
	out.PriorDate = priorDate
	return out
}
