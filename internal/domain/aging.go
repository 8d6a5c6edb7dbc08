package domain

import "time"

// Aging thresholds for open deals. Deals with a decision expected within
// three weeks need attention now, within two months soon. Open deals
// without any decision date go stale after roughly ten months.
const (
	dealUrgentDays = 21
	dealSoonDays   = 60
	dealStaleDays  = 300
)

// Deal urgency groups, 1 is most urgent. Closed deals are not grouped.
const (
	DealGroupNone    = 0
	DealGroupUrgent  = 1
	DealGroupSoon    = 2
	DealGroupHigh    = 3
	DealGroupNormal  = 4
	DealGroupSomeday = 5
)

var dealGroupTitles = map[int]string{
	DealGroupUrgent:  "Decision imminent",
	DealGroupSoon:    "Decision expected soon",
	DealGroupHigh:    "High probability",
	DealGroupNormal:  "Normal probability",
	DealGroupSomeday: "Someday",
}

// DealGroup classifies an open deal into an urgency bucket for pipeline
// views. A near decision date beats probability; beyond the soon window
// the probability decides.
func DealGroup(d *Deal, today time.Time) int {
	if d.Status != DealOpen {
		return DealGroupNone
	}
	if d.DecisionExpectedOn != nil {
		days := daysBetween(today, *d.DecisionExpectedOn)
		if days <= dealUrgentDays {
			return DealGroupUrgent
		}
		if days <= dealSoonDays {
			return DealGroupSoon
		}
	}
	switch d.Probability {
	case ProbabilityHigh:
		return DealGroupHigh
	case ProbabilityNormal:
		return DealGroupNormal
	}
	return DealGroupSomeday
}

// DealGroupTitle returns the display title for an urgency group
func DealGroupTitle(group int) string {
	if title, ok := dealGroupTitles[group]; ok {
		return title
	}
	return ""
}

// DealBadgeCSS returns the CSS class for a deal badge. Closed deals use
// their status class. Open deals escalate with age: overdue decision
// dates turn the badge to warning, deals sitting in the pipeline for too
// long without any decision date get the caveat class.
func DealBadgeCSS(d *Deal, today time.Time) string {
	if d.Status != DealOpen {
		return d.Status.CSS()
	}
	if d.DecisionExpectedOn != nil {
		if daysBetween(today, *d.DecisionExpectedOn) < 0 {
			return "warning"
		}
		return "info"
	}
	if daysBetween(d.CreatedAt, today) > dealStaleDays {
		return "caveat"
	}
	return "info"
}

// daysBetween returns the number of calendar days from a to b, negative
// when b precedes a. Only the date of each operand counts; both are
// re-anchored in UTC so a UTC-stored date and a local-zone clock never
// differ by a fractional day.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}
