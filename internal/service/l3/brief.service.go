package l3_service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"foxvalley/internal/domain"
	"foxvalley/internal/repository"

	"github.com/shopspring/decimal"
)

// BriefService renders a reconciliation as a dated markdown brief
type BriefService interface {
	Render(rec domain.Reconciliation) string
	Write(ctx context.Context, rec domain.Reconciliation) (string, error)
	Read(ctx context.Context, date string) (string, bool, error)
}

type briefServiceHandler struct {
	ReportRepository repository.ReportRepository
}

func NewBriefService(reportRepository repository.ReportRepository) BriefService {
	return briefServiceHandler{
		ReportRepository: reportRepository,
	}
}

func (h briefServiceHandler) Write(ctx context.Context, rec domain.Reconciliation) (string, error) {
	path, err := h.ReportRepository.WriteBrief(ctx, rec.Date, h.Render(rec))
	if err != nil {
		return "", fmt.Errorf("failed to write brief for %s: %w", rec.Date, err)
	}
	return path, nil
}

func (h briefServiceHandler) Read(ctx context.Context, date string) (string, bool, error) {
	return h.ReportRepository.ReadBrief(ctx, date)
}

// FormatDollars renders 1234.5 as $1,234.50
func FormatDollars(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	s := d.StringFixed(2)
	whole, frac := s[:len(s)-3], s[len(s)-3:]

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "$" + b.String() + frac
}

func dollars(v float64) string {
	return FormatDollars(decimal.NewFromFloat(v))
}

// FormatPct renders a fraction, 0.15 -> 15.0%
func FormatPct(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

func optionalPct(f *float64) string {
	if f == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", *f)
}

func optionalRank(r *int) string {
	if r == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *r)
}

func optionalScore(c domain.Candidate) string {
	if c.TacticalScore == nil {
		return "-"
	}
	return fmt.Sprintf("%.0f (%s)", *c.TacticalScore, c.TacticalTag)
}

func tickerList(tickers []string) string {
	if len(tickers) == 0 {
		return "none"
	}
	return strings.Join(tickers, ", ")
}

func (h briefServiceHandler) Render(rec domain.Reconciliation) string {
	var b strings.Builder
	line := func(format string, args ...interface{}) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	line("# Brief %s", rec.Date)
	line("")
	if rec.PortfolioFile.Found {
		line("- Portfolio: `%s`", rec.PortfolioFile.Name)
	} else {
		line("- Portfolio: not found")
	}
	for _, s := range rec.Screens {
		if s.File.Found {
			line("- %s: `%s` (%d entries)", s.Label, s.File.Name, s.NumEntries)
		} else {
			line("- %s: not found", s.Label)
		}
	}
	line("")

	line("## Portfolio")
	line("")
	cash := dollars(rec.Summary.CashValue)
	if rec.Summary.ManualCash {
		cash += " (manual)"
	}
	line("| Total Value | Cash | Invested | Avg Gain | Positions |")
	line("|---|---|---|---|---|")
	line(
		"| %s | %s | %s | %s | %d |",
		dollars(rec.Summary.TotalValue),
		cash,
		dollars(rec.Summary.InvestedValue),
		optionalPct(rec.Summary.AvgGainPct),
		rec.Summary.NumPositions,
	)
	line("")

	plan := rec.Allocation
	line("## Buy List")
	line("")
	if len(plan.Entries) == 0 {
		line("No new rank 1 candidates.")
	} else {
		line(
			"Deploying up to %s of %s (%s), %s per position.",
			FormatDollars(plan.Deployable),
			FormatDollars(plan.TotalValue),
			FormatPct(plan.DeployFraction),
			FormatPct(plan.PerPositionPct),
		)
		line("")
		line("| Ticker | Sources | Allocation | Amount | Tactical |")
		line("|---|---|---|---|---|")
		for _, e := range plan.Entries {
			c, _ := rec.Candidates.Get(e.Ticker)
			line(
				"| %s | %s | %s | %s | %s |",
				e.Ticker,
				strings.Join(c.Sources, ", "),
				FormatPct(e.Pct),
				FormatDollars(e.Amount),
				optionalScore(c),
			)
		}
		line("")
		line("Total: %s", FormatDollars(plan.TotalAmount()))
	}
	line("")

	if len(rec.Positions) > 0 {
		line("## Holdings")
		line("")
		line("| Ticker | Value | Allocation | Gain | Trailing Stop | Rank | Signal |")
		line("|---|---|---|---|---|---|---|")
		for _, p := range rec.Positions {
			alloc := "-"
			if p.AllocationPct != nil {
				alloc = FormatPct(*p.AllocationPct)
			}
			stop := "-"
			if p.TrailingStop != nil {
				stop = dollars(*p.TrailingStop)
			}
			signal := p.Signal
			if signal == "" {
				signal = "-"
			}
			line(
				"| %s | %s | %s | %s | %s | %s | %s |",
				p.Ticker,
				dollars(p.MarketValue()),
				alloc,
				optionalPct(p.GainPct()),
				stop,
				optionalRank(p.Rank),
				signal,
			)
		}
		line("")
	}

	line("## Candidates")
	line("")
	for _, action := range []domain.Action{
		domain.ActionHold,
		domain.ActionWatch,
		domain.ActionReview,
		domain.ActionTrim,
		domain.ActionAvoid,
	} {
		tickers := []string{}
		for _, c := range rec.Candidates.WithAction(action) {
			tickers = append(tickers, c.Ticker)
		}
		sort.Strings(tickers)
		line("- **%s**: %s", action, tickerList(tickers))
	}
	line("")

	line("## Changes")
	line("")
	writeDelta(line, "Screens", rec.CandidateDelta)
	writeDelta(line, "Holdings", rec.HoldingsDelta)
	line("")

	line("## Diagnostics")
	line("")
	if len(rec.Diagnostics) == 0 {
		line("None.")
	}
	for _, d := range rec.Diagnostics {
		line("- [%s] %s: %s", d.Severity, d.Type, d.Details)
	}

	return b.String()
}

func writeDelta(line func(string, ...interface{}), label string, d domain.DeltaReport) {
	if d.InsufficientHistory {
		line("- %s: not enough history to compare", label)
		return
	}
	line("- %s since %s: added %s; removed %s", label, d.PriorDate, tickerList(d.Added), tickerList(d.Removed))
}
