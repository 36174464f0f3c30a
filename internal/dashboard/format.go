package dashboard

import (
	"strconv"
	"time"
)

// FormatDate turns a YYYY-MM-DD value into a human-readable form,
// "2024-03-14" -> "14 Mar 2024". Unparseable input is returned as-is.
func FormatDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("2 Jan 2006")
}

// FormatRatePercent renders a fractional rate as a percentage string at
// 4 decimal places: 0.0423 -> "4.2300%".
func FormatRatePercent(rate float64) string {
	return strconv.FormatFloat(rate*100, 'f', 4, 64) + "%"
}

// formatCardRate is the 2-decimal variant the currency cards show.
func formatCardRate(rate float64) string {
	return strconv.FormatFloat(rate*100, 'f', 2, 64) + "%"
}

// formatCount adds thousands separators: 15234 -> "15,234".
func formatCount(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}

	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
