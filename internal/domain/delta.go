package domain

// DeltaReport is the ticker set difference between two snapshots
type DeltaReport struct {
	Date      string   `json:"date"`
	PriorDate string   `json:"priorDate"`
	Added     []string `json:"added"`
	Removed   []string `json:"removed"`

	// set when either side is missing or empty, in which case Added and
	// Removed are both empty
	InsufficientHistory bool `json:"insufficientHistory"`
}
