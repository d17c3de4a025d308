package progress

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniguide-hub/uniguide-server/internal/domain/shared"
)

func TestNewStartsAtStageOne(t *testing.T) {
	p := New("3f29c49b-87b2-4dbb-a97b-596c7ed99bd0")

	assert.Equal(t, StageBuildingProfile, p.CurrentStage)
	assert.False(t, p.OnboardingCompleted)
	assert.False(t, p.CounsellorCompleted)
	assert.False(t, p.ApplicationLocked)
}

func TestCompleteOnboardingAdvancesAndIsIdempotent(t *testing.T) {
	p := New("s1")

	changed := p.CompleteOnboarding()
	assert.True(t, changed)
	assert.True(t, p.OnboardingCompleted)
	assert.Equal(t, StageDiscovery, p.CurrentStage)

	first := *p
	changed = p.CompleteOnboarding()
	assert.False(t, changed)
	assert.Equal(t, first.CurrentStage, p.CurrentStage)
	assert.Equal(t, first.OnboardingCompleted, p.OnboardingCompleted)
}

func TestCompleteOnboardingNeverRegressesStage(t *testing.T) {
	p := New("s1")
	p.CurrentStage = StageFinalizing

	p.CompleteOnboarding()
	assert.Equal(t, StageFinalizing, p.CurrentStage)
}

func TestCompleteCounsellorRequiresDiscovery(t *testing.T) {
	p := New("s1")

	err := p.CompleteCounsellor()
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrForbidden))
	assert.Equal(t, StageBuildingProfile, p.CurrentStage)
	assert.False(t, p.CounsellorCompleted)
}

func TestCompleteCounsellorAdvancesFromDiscovery(t *testing.T) {
	p := New("s1")
	p.CompleteOnboarding()

	require.NoError(t, p.CompleteCounsellor())
	assert.True(t, p.CounsellorCompleted)
	assert.Equal(t, StageFinalizing, p.CurrentStage)
}

func TestLockRequiresFinalizing(t *testing.T) {
	p := New("s1")
	p.CompleteOnboarding()

	err := p.LockUniversity()
	require.Error(t, err)

	var gateErr *GateError
	require.True(t, errors.As(err, &gateErr))
	assert.Equal(t, StageDiscovery, gateErr.CurrentStage)
	assert.Equal(t, StageFinalizing, gateErr.RequiredStage)
	assert.Equal(t, "/discovery", gateErr.RedirectTo)
	assert.True(t, errors.Is(err, shared.ErrForbidden))
}

func TestLockAdvancesToApplication(t *testing.T) {
	p := New("s1")
	p.CompleteOnboarding()
	require.NoError(t, p.CompleteCounsellor())

	require.NoError(t, p.LockUniversity())
	assert.True(t, p.ApplicationLocked)
	assert.Equal(t, StageApplication, p.CurrentStage)
}

func TestUnlockRollsBackOnlyFromApplication(t *testing.T) {
	p := New("s1")
	p.CompleteOnboarding()
	require.NoError(t, p.CompleteCounsellor())
	require.NoError(t, p.LockUniversity())

	p.UnlockUniversity()
	assert.False(t, p.ApplicationLocked)
	assert.Equal(t, StageFinalizing, p.CurrentStage)

	// A second unlock while already at stage 3 must not roll back further.
	p.UnlockUniversity()
	assert.Equal(t, StageFinalizing, p.CurrentStage)
}

func TestUnlockThenLockReturnsToApplication(t *testing.T) {
	p := New("s1")
	p.CompleteOnboarding()
	require.NoError(t, p.CompleteCounsellor())
	require.NoError(t, p.LockUniversity())

	p.UnlockUniversity()
	require.NoError(t, p.LockUniversity())
	assert.Equal(t, StageApplication, p.CurrentStage)
}

func TestAllowGate(t *testing.T) {
	tests := []struct {
		name     string
		stage    Stage
		required Stage
		blocked  bool
		redirect string
	}{
		{"stage 1 blocked from discovery", StageBuildingProfile, StageDiscovery, true, "/onboarding/profile"},
		{"stage 2 allowed into discovery", StageDiscovery, StageDiscovery, false, ""},
		{"stage 2 blocked from finalizing", StageDiscovery, StageFinalizing, true, "/discovery"},
		{"stage 3 blocked from application", StageFinalizing, StageApplication, true, "/counsellor"},
		{"stage 4 allowed everywhere", StageApplication, StageDiscovery, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New("s1")
			p.CurrentStage = tt.stage

			err := p.Allow(tt.required)
			if !tt.blocked {
				assert.NoError(t, err)
				return
			}
			var gateErr *GateError
			require.True(t, errors.As(err, &gateErr))
			assert.Equal(t, tt.redirect, gateErr.RedirectTo)
		})
	}
}

func TestJourneyView(t *testing.T) {
	p := New("s1")
	p.CompleteOnboarding()

	view := p.Journey()
	require.Len(t, view.All, 4)

	assert.Equal(t, 2, view.Current.ID)
	assert.Equal(t, "Discovery", view.Current.Name)
	assert.Equal(t, 50, view.Current.Progress)

	assert.True(t, view.All[0].IsPassed)
	assert.True(t, view.All[1].IsActive)
	assert.True(t, view.All[2].IsLocked)
	assert.Equal(t, "Complete a session with the AI Counsellor", view.All[2].BlockingReason)
	assert.Equal(t, "Lock a university from your shortlist", view.All[3].BlockingReason)
}

func TestStageMetadata(t *testing.T) {
	assert.Equal(t, "Building Profile", StageBuildingProfile.Name())
	assert.Equal(t, 25, StageBuildingProfile.JourneyPercent())
	assert.Equal(t, "/shortlist", StageApplication.LandingPath())
	assert.False(t, Stage(0).IsValid())
	assert.False(t, Stage(5).IsValid())
}
