package Compare

import "strings"

// Status is the per-employee reconciliation outcome.
type Status string

const (
	StatusMatch     Status = "Match"
	StatusNoPunch   Status = "No Punch"
	StatusEarly     Status = "Early"
	StatusSingleIn  Status = "Single In Punch"
	StatusSingleOut Status = "Single Out Punch"
	StatusMismatch  Status = "Mismatch"
)

// ShiftCategory groups the free-text shift labels into the three rule
// families. Detection happens once, in CategoryOf, so the classifier
// dispatches on a tag instead of re-scanning the label.
type ShiftCategory int

const (
	CategoryOther ShiftCategory = iota
	CategoryFullNight
	CategoryDayMorning
)

// CategoryOf derives the rule family from a shift label. Labels
// containing "full" or "fn" are full-night shifts, labels containing
// "day" or "morning" are day shifts, anything else (half-day "HF" and
// the rest) falls into CategoryOther.
func CategoryOf(shift string) ShiftCategory {
	s := strings.ToLower(strings.TrimSpace(shift))
	switch {
	case strings.Contains(s, "full") || strings.Contains(s, "fn"):
		return CategoryFullNight
	case strings.Contains(s, "day") || strings.Contains(s, "morning"):
		return CategoryDayMorning
	}
	return CategoryOther
}

// Day/morning shift windows, all bounds inclusive.
var (
	dayInStart  = PunchTime{Hour: 6, Minute: 45}
	dayInEnd    = PunchTime{Hour: 7, Minute: 30}
	dayOutStart = PunchTime{Hour: 15, Minute: 15}
	dayOutEnd   = PunchTime{Hour: 15, Minute: 20}
)

// Classify produces the status for one employee from their shift label
// and the ascending punch lists of the two biometric snapshots.
//
// Full night: any day-1 punch is a Match even when day 2 recorded
// nothing; Single Out Punch fires only when day 1 is entirely empty.
// That asymmetry matches the punch clocks in the field and is load
// bearing, do not "fix" it here.
//
// Day/morning consults only day 1 and requires the first punch inside
// the IN window and the last punch inside the OUT window; an out punch
// before the OUT window is Early.
//
// Other shifts never consult day 2 and decide purely on the day-1 punch
// count and the ten-minute pair rule.
func Classify(shift string, day1, day2 []PunchTime) Status {
	switch CategoryOf(shift) {
	case CategoryFullNight:
		switch {
		case len(day1) > 0:
			return StatusMatch
		case len(day2) > 0:
			return StatusSingleOut
		}
		return StatusNoPunch

	case CategoryDayMorning:
		if len(day1) < 2 {
			return StatusNoPunch
		}
		in, out := day1[0], day1[len(day1)-1]
		if in.Seconds() < dayInStart.Seconds() || in.Seconds() > dayInEnd.Seconds() {
			return StatusNoPunch
		}
		switch {
		case out.Seconds() < dayOutStart.Seconds():
			return StatusEarly
		case out.Seconds() <= dayOutEnd.Seconds():
			return StatusMatch
		}
		return StatusNoPunch
	}

	switch n := len(day1); {
	case n == 0:
		return StatusNoPunch
	case n == 1:
		return StatusSingleIn
	case n == 2:
		return pairStatus(day1[0], day1[1])
	case n == 3:
		return pairStatus(day1[0], day1[2])
	}
	return pairStatus(day1[0], day1[3])
}

// pairStatus applies the ten-minute rule: two punches within ten minutes
// of each other are one smudged clock-in, not an in/out pair.
func pairStatus(a, b PunchTime) Status {
	d := a.Seconds() - b.Seconds()
	if d < 0 {
		d = -d
	}
	if d <= 10*60 {
		return StatusSingleIn
	}
	return StatusMatch
}
