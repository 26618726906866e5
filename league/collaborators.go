package league

import (
	"context"
	"time"

	"github.com/Dosada05/fantasy-league/models"
)

// EventSink receives every committed ledger event in commit order. The engine
// treats emission as an infallible append; implementations that can fail
// (a database, a socket) must handle their own errors.
type EventSink interface {
	Notify(ctx context.Context, event models.Event)
}

// Treasury is the opaque handle over the reserve that holds and disburses
// rewards. The engine never sees the reserve's representation, only its
// balance and a transfer capability.
type Treasury interface {
	Balance(ctx context.Context) (uint64, error)
	Transfer(ctx context.Context, toUserID int, amount uint64) error
}

// Clock is the monotonic timestamp source stamped onto events.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to a Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return ClockFunc(time.Now) }
