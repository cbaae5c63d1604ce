package utils

import "time"

// Clock supplies the current time to services so that attempt-delay
// calculations can be pinned in tests.
type Clock func() time.Time

// TunisTime returns the current time in the Tunisian timezone
func TunisTime() time.Time {
	// Tunisia: UTC+1, no daylight saving
	loc, err := time.LoadLocation("Africa/Tunis")
	if err != nil {
		return time.Now().UTC().Add(1 * time.Hour)
	}
	return time.Now().In(loc)
}

// SameDate reports whether two instants fall on the same calendar day.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
