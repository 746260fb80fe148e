package domain

import "github.com/google/uuid"

// ScreenSource is the file picked for one configured screen and what came
// out of it
type ScreenSource struct {
	Label      string
	File       SnapshotFile
	PriorFile  SnapshotFile
	NumEntries int
}

// Reconciliation is everything one pipeline run produces. Partial inputs
// still produce a Reconciliation; what went wrong is in Diagnostics.
type Reconciliation struct {
	RunID uuid.UUID
	Date  string

	PortfolioFile      SnapshotFile
	PriorPortfolioFile SnapshotFile
	Screens            []ScreenSource

	Portfolio  Portfolio
	Summary    PortfolioSummary
	Positions  []PositionView
	Candidates CandidateSet
	Allocation AllocationPlan

	CandidateDelta DeltaReport
	HoldingsDelta  DeltaReport

	Diagnostics Diagnostics
}

// InputFiles lists the selected snapshot files that were found
func (r Reconciliation) InputFiles() []SnapshotFile {
	out := []SnapshotFile{}
	if r.PortfolioFile.Found {
		out = append(out, r.PortfolioFile)
	}
	for _, s := range r.Screens {
		if s.File.Found {
			out = append(out, s.File)
		}
	}
	return out
}
