package failurehandler

import (
	"context"
	"time"
)

// debugTimeout bounds the time spent gathering debug details so a broken cluster can't hang the test run
const debugTimeout = 2 * time.Minute

// newContext returns a new context object with a timeout to use while gathering failure debug details
func newContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), debugTimeout)
}
