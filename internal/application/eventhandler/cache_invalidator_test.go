package eventhandler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniguide-hub/uniguide-server/internal/application/query"
	"github.com/uniguide-hub/uniguide-server/internal/domain/shared"
	"github.com/uniguide-hub/uniguide-server/internal/infrastructure/messaging"
)

type fakeDashboardCache struct {
	invalidated []string
	fail        bool
}

func (c *fakeDashboardCache) Get(ctx context.Context, studentID string) (*query.DashboardView, error) {
	return nil, nil
}

func (c *fakeDashboardCache) Set(ctx context.Context, studentID string, view *query.DashboardView) error {
	return nil
}

func (c *fakeDashboardCache) Invalidate(ctx context.Context, studentID string) error {
	if c.fail {
		return errors.New("redis down")
	}
	c.invalidated = append(c.invalidated, studentID)
	return nil
}

func TestDashboardInvalidator_DropsCacheOnJourneyEvents(t *testing.T) {
	cache := &fakeDashboardCache{}
	bus := messaging.NewInMemoryEventBus(nil)
	defer bus.Close()

	require.NoError(t, NewDashboardInvalidator(cache, nil).Register(bus))

	require.NoError(t, bus.Publish(shared.NewStageAdvancedEvent(shared.EventUniversityLocked, "student-1", 4)))
	require.NoError(t, bus.Publish(shared.NewProfileUpdatedEvent("student-2", "academics")))

	assert.Equal(t, []string{"student-1", "student-2"}, cache.invalidated)
}

func TestDashboardInvalidator_IgnoresRegistrationEvents(t *testing.T) {
	cache := &fakeDashboardCache{}
	bus := messaging.NewInMemoryEventBus(nil)
	defer bus.Close()

	require.NoError(t, NewDashboardInvalidator(cache, nil).Register(bus))

	require.NoError(t, bus.Publish(shared.NewStudentRegisteredEvent("student-1", "ada@example.com")))

	assert.Empty(t, cache.invalidated)
}

func TestDashboardInvalidator_CacheFailureDoesNotFailPublish(t *testing.T) {
	cache := &fakeDashboardCache{fail: true}
	bus := messaging.NewInMemoryEventBus(nil)
	defer bus.Close()

	require.NoError(t, NewDashboardInvalidator(cache, nil).Register(bus))

	assert.NoError(t, bus.Publish(shared.NewProfileUpdatedEvent("student-1", "exams")))
}
