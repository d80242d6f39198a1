// Package calendar renders Unix timestamps as the date and time strings
// stored alongside chat messages.
package calendar

import (
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

type Calendar struct {
	loc *time.Location
}

// New returns a Calendar for the named IANA time zone. An empty name means UTC.
func New(timeZone string) (Calendar, error) {
	loc, err := time.LoadLocation(timeZone)
	if err != nil {
		return Calendar{}, fmt.Errorf("load time zone %q: %w", timeZone, err)
	}
	return Calendar{loc: loc}, nil
}

func UTC() Calendar {
	return Calendar{loc: time.UTC}
}

func (c Calendar) Location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}

// DateTime converts seconds since the Unix epoch into a display pair.
func (c Calendar) DateTime(unixtime int64) (string, string) {
	t := time.Unix(unixtime, 0).In(c.Location())
	return t.Format(DateLayout), t.Format(TimeLayout)
}
