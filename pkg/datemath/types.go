package datemath

import (
	"errors"
	"time"
)

// ErrUnrecognized is returned when a relative phrase matches none of the known forms.
var ErrUnrecognized = errors.New("unrecognized relative date")

// explicitLayouts are tried in order against the first token of a phrase.
var explicitLayouts = []string{
	"2006-01-02", // YYYY-MM-DD
	"01/02/2006", // MM/DD/YYYY
	"02/01/2006", // DD/MM/YYYY
}

var weekdayNames = []struct {
	name string
	day  time.Weekday
}{
	{"monday", time.Monday},
	{"tuesday", time.Tuesday},
	{"wednesday", time.Wednesday},
	{"thursday", time.Thursday},
	{"friday", time.Friday},
	{"saturday", time.Saturday},
	{"sunday", time.Sunday},
}
