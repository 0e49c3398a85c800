package Compare

import (
	"fmt"
	"strings"
	"time"
)

// PunchTime is a time of day recorded by a punch clock. Only ordering
// and the distance between two punches matter, so it carries no date.
type PunchTime struct {
	Hour   int
	Minute int
	Second int
}

// Seconds returns the offset from midnight.
func (p PunchTime) Seconds() int {
	return p.Hour*3600 + p.Minute*60 + p.Second
}

func (p PunchTime) Before(o PunchTime) bool {
	return p.Seconds() < o.Seconds()
}

func (p PunchTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", p.Hour, p.Minute, p.Second)
}

var punchLayouts = []string{"15:04:05", "15:04"}

// ParsePunch extracts a time of day from a raw punch cell. The exports
// decorate punches with status markers ("23:04:00 - O"), so everything
// except digits and colons is stripped before parsing. Returns false for
// blank, sentinel or unparseable cells; a bad cell is never an error.
func ParsePunch(v string) (PunchTime, bool) {
	if IsMissing(v) {
		return PunchTime{}, false
	}
	var b strings.Builder
	for _, r := range v {
		if (r >= '0' && r <= '9') || r == ':' {
			b.WriteRune(r)
		}
	}
	s := b.String()
	for _, layout := range punchLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return PunchTime{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, true
		}
	}
	return PunchTime{}, false
}
