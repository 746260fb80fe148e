package domain

import "time"

type Severity string

const (
	SeverityInfo    Severity = "INFO"
	SeverityWarning Severity = "WARNING"
	SeverityError   Severity = "ERROR"
)

// Diagnostic is a recoverable problem or notable event from a pipeline run.
// These are what the user sees instead of a failed render.
type Diagnostic struct {
	Timestamp time.Time `csv:"timestamp" json:"timestamp"`
	Type      string    `csv:"type" json:"type"`
	Details   string    `csv:"details" json:"details"`
	Severity  Severity  `csv:"severity" json:"severity"`
}

type Diagnostics []Diagnostic

func (d *Diagnostics) Add(eventType string, severity Severity, details string) {
	*d = append(*d, Diagnostic{
		Timestamp: time.Now().UTC(),
		Type:      eventType,
		Details:   details,
		Severity:  severity,
	})
}

func (d Diagnostics) HasSeverity(severity Severity) bool {
	for _, e := range d {
		if e.Severity == severity {
			return true
		}
	}
	return false
}
