package extractor

import (
	"time"

	"conversational-task-assistant/pkg/datemath"
)

// Extractor pulls task and project fields out of free text.
type Extractor struct {
	dates *datemath.Parser
	now   Clock
}

// New creates an Extractor. A nil clock means time.Now.
func New(dates *datemath.Parser, clock Clock) *Extractor {
	if clock == nil {
		clock = time.Now
	}
	return &Extractor{
		dates: dates,
		now:   clock,
	}
}
