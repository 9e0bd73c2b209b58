package timeutil

import "time"

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// WindowLayout is RFC3339 at second precision with a literal Z, the only
// shape the odds provider accepts for commence-time bounds.
const WindowLayout = "2006-01-02T15:04:05Z"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatWindowBound formats t in UTC using WindowLayout.
func FormatWindowBound(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(WindowLayout)
}

// Window returns the [now, now+lookahead] bounds formatted for the odds provider.
func Window(now time.Time, lookahead time.Duration) (from, to string) {
	return FormatWindowBound(now), FormatWindowBound(now.Add(lookahead))
}

// SeasonYear returns the season to query. Zero means the current year.
func SeasonYear(season int, now time.Time) int {
	if season > 0 {
		return season
	}
	return now.Year()
}
