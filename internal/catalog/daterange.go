package catalog

import "time"

const dateLayout = "2006-01-02"

// periodDays maps release-period presets to fixed day-count windows.
var periodDays = map[string]int{
	"6months": 180,
	"1year":   365,
	"2years":  730,
	"3years":  1095,
}

// DateRange returns the (from, to) window for a release-period preset,
// formatted YYYY-MM-DD and ending today. "all" and any unknown value
// start at a fixed epoch.
func DateRange(period string) (string, string) {
	now := time.Now()
	if days, ok := periodDays[period]; ok {
		from := now.AddDate(0, 0, -days)
		return from.Format(dateLayout), now.Format(dateLayout)
	}
	epoch := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	return epoch.Format(dateLayout), now.Format(dateLayout)
}
