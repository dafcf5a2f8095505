// Package countdown turns auction deadlines into the remaining-time labels
// shown on catalog cards and on the lot detail.
package countdown

import (
	"fmt"
	"time"
)

// Ended is the label of a lot whose deadline has passed.
const Ended = "Encerrado"

// Precision selects the label format.
type Precision int

const (
	// Coarse is the card format, refreshed once a minute: "2d 3h restam".
	Coarse Precision = iota
	// Fine is the detail format, refreshed every second: "0d 4h 12m 9s".
	Fine
)

// Left is the time remaining until a deadline, split into whole units.
type Left struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
	Ended   bool
}

// Remaining computes the time left at now. A deadline at or before now is
// ended and all units are zero.
func Remaining(now, endsAt time.Time) Left {
	d := endsAt.Sub(now)
	if d <= 0 {
		return Left{Ended: true}
	}
	secs := int64(d / time.Second)
	return Left{
		Days:    int(secs / 86400),
		Hours:   int(secs % 86400 / 3600),
		Minutes: int(secs % 3600 / 60),
		Seconds: int(secs % 60),
	}
}

// Label formats l.
func (l Left) Label(p Precision) string {
	if l.Ended {
		return Ended
	}
	if p == Fine {
		return fmt.Sprintf("%dd %dh %dm %ds", l.Days, l.Hours, l.Minutes, l.Seconds)
	}
	if l.Days > 0 {
		return fmt.Sprintf("%dd %dh restam", l.Days, l.Hours)
	}
	return fmt.Sprintf("%dh %dm restam", l.Hours, l.Minutes)
}

// Label is Remaining(now, endsAt).Label(p).
func Label(now, endsAt time.Time, p Precision) string {
	return Remaining(now, endsAt).Label(p)
}
