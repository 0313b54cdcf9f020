package services

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// slowCall is the duration above which a model operation is logged as a
// warning rather than at debug level. Breakeven with curves is the usual
// offender.
const slowCall = 500 * time.Millisecond

// TrackTime logs how long op took.
// Use as: defer TrackTime("Breakeven", time.Now())
func TrackTime(op string, start time.Time) {
	elapsed := time.Since(start)
	entry := log.WithFields(log.Fields{"op": op, "elapsed_us": elapsed.Microseconds()})
	if elapsed > slowCall {
		entry.Warnf("%s took %s", op, elapsed.Round(time.Millisecond))
		return
	}
	entry.Debugf("%s done", op)
}
