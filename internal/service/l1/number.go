package l1_service

import (
	"math"
	"strconv"
	"strings"
)

var numberCleaner = strings.NewReplacer("$", "", ",", "", "%", "", "+", "", " ", "")

// ParseNumber cleans brokerage formatting and parses a float. "$1,234.56",
// "(1,234.56)", "$(1,234.56)" and "12.3%" become 1234.56, -1234.56, -1234.56
// and 12.3. anything that does not parse is missing, never an error.
func ParseNumber(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	s = numberCleaner.Replace(s)
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	if strings.HasPrefix(s, "-") {
		negative = !negative
		s = s[1:]
	}
	if s == "" || strings.ContainsAny(s, "+-") {
		return nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	if negative {
		v = -v
	}
	return &v
}

// screens rank on a small scale, anything this large is a stray id or a
// corrupted cell
const maxRank = math.MaxInt32

// ParseRank reads a screen rank. exports write it as "1" or "1-Strong Buy";
// only positive whole numbers are ranks.
func ParseRank(s string) *int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || s[end] == '.') {
		end++
	}
	if end == 0 {
		return nil
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil || v != math.Trunc(v) || v < 1 || v > maxRank {
		return nil
	}
	r := int(v)
	return &r
}

func formatNumber(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatRank(r *int) string {
	if r == nil {
		return ""
	}
	return strconv.Itoa(*r)
}
