package profilesync

import (
	"fmt"
	"math"
	"time"

	"github.com/worktrust/backend/internal/types"
)

// CurrentPositionMonths is the assumed duration for positions with no end date.
const CurrentPositionMonths = 12

// dateLayouts are the accepted experience date formats, most specific first.
var dateLayouts = []string{"2006-01-02", "2006"}

// parseExperienceDate parses "YYYY" or "YYYY-MM-DD". A bare year resolves to
// January 1st of that year.
func parseExperienceDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q (want YYYY or YYYY-MM-DD)", value)
}

// durationMonths computes the whole-month duration of an experience:
// round(days/30) clamped to at least 1 when both dates are present, or
// CurrentPositionMonths when the position is ongoing.
func durationMonths(exp types.WorkExperience) (int, error) {
	if exp.Current() {
		return CurrentPositionMonths, nil
	}

	start, err := parseExperienceDate(exp.StartDate)
	if err != nil {
		return 0, fmt.Errorf("invalid start date: %w", err)
	}
	end, err := parseExperienceDate(*exp.EndDate)
	if err != nil {
		return 0, fmt.Errorf("invalid end date: %w", err)
	}
	if end.Before(start) {
		return 0, fmt.Errorf("end date %s precedes start date %s", *exp.EndDate, exp.StartDate)
	}

	days := end.Sub(start).Hours() / 24
	months := int(math.Round(days / 30))
	if months < 1 {
		months = 1
	}
	return months, nil
}
