// Package eventhandler contains subscribers wired to the in-process
// event bus.
package eventhandler

import (
	"context"

	"github.com/uniguide-hub/uniguide-server/internal/application/query"
	"github.com/uniguide-hub/uniguide-server/internal/domain/shared"
	"github.com/uniguide-hub/uniguide-server/pkg/logger"
)

// journeyEvents are the event types that change what the dashboard
// shows.
var journeyEvents = []shared.EventType{
	shared.EventProfileUpdated,
	shared.EventOnboardingCompleted,
	shared.EventCounsellorCompleted,
	shared.EventShortlistAdded,
	shared.EventShortlistRemoved,
	shared.EventUniversityLocked,
	shared.EventUniversityUnlocked,
}

// Subscriber registers typed handlers on the event bus.
type Subscriber interface {
	Subscribe(eventType shared.EventType, handler shared.EventHandler) error
}

// DashboardInvalidator drops the cached dashboard view whenever a
// journey event for the student commits, so the next read rebuilds it.
type DashboardInvalidator struct {
	cache query.DashboardCache
	log   *logger.Logger
}

// NewDashboardInvalidator creates a new DashboardInvalidator.
func NewDashboardInvalidator(cache query.DashboardCache, log *logger.Logger) *DashboardInvalidator {
	if log == nil {
		log = logger.Default()
	}
	return &DashboardInvalidator{
		cache: cache,
		log:   log.With(logger.Component("dashboard_invalidator")),
	}
}

// Register subscribes the invalidator to every journey event type.
func (i *DashboardInvalidator) Register(bus Subscriber) error {
	for _, et := range journeyEvents {
		if err := bus.Subscribe(et, i.handle); err != nil {
			return err
		}
	}
	return nil
}

func (i *DashboardInvalidator) handle(event shared.Event) error {
	err := i.cache.Invalidate(context.Background(), event.AggregateID())
	if err != nil {
		// Best effort: the TTL bounds staleness when Redis is down.
		i.log.Warn("dashboard cache invalidation failed",
			logger.StudentID(event.AggregateID()),
			logger.Err(err))
	}
	return nil
}
