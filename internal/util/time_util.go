package util

import (
	"regexp"
	"time"
)

const layout = "2006-01-02"

// brokerage exports name files like Portfolio_Positions_Nov-12-2025.csv
const brokerageLayout = "Jan-02-2006"

var (
	isoDateRegex       = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	brokerageDateRegex = regexp.MustCompile(`[A-Za-z]{3}-\d{2}-\d{4}`)
)

// DateTokenFromName finds a date embedded in a filename and returns it in
// YYYY-MM-DD form, so tokens from both naming styles sort as strings
func DateTokenFromName(name string) (string, bool) {
	for _, m := range isoDateRegex.FindAllString(name, -1) {
		if _, err := time.Parse(layout, m); err == nil {
			return m, true
		}
	}
	for _, m := range brokerageDateRegex.FindAllString(name, -1) {
		t, err := time.Parse(brokerageLayout, m)
		if err == nil {
			return t.Format(layout), true
		}
	}
	return "", false
}

func Today() string {
	return time.Now().Format(layout)
}
