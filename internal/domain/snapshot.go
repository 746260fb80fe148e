package domain

import "time"

// SnapshotFile is the result of picking a dated csv from a directory. Found is
// false when nothing matched, which is a normal state and not an error.
type SnapshotFile struct {
	Found     bool
	Path      string
	Name      string
	DateToken string
	ModTime   time.Time
}

type HistoryPoint struct {
	Label      string   `json:"label"`
	Date       string   `json:"date"`
	TotalValue float64  `json:"totalValue"`
	ChangePct  *float64 `json:"changePct"`
}
