package utils

import "time"

// Brasília time (BRT, -03:00), used for "today" in reports.
var brLoc = func() *time.Location {
	if loc, err := time.LoadLocation("America/Sao_Paulo"); err == nil {
		return loc
	}
	return time.FixedZone("BRT", -3*3600)
}()

// StartOfDayBR returns midnight of t's calendar day in Brasília time.
func StartOfDayBR(t time.Time) time.Time {
	local := t.In(brLoc)
	y, m, d := local.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, brLoc)
}
