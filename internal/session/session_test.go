package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greendilt/footprint/internal/factors"
	"github.com/greendilt/footprint/internal/session"
)

func TestNewInitialState(t *testing.T) {
	s := session.New()

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, session.StageIntro, s.Stage)
	assert.Empty(t, s.Name)
	assert.Empty(t, s.Role)
	assert.True(t, s.Devices.Empty())
	assert.Empty(t, s.EmailPlain)
	assert.Empty(t, s.EmailAttach)
	assert.Empty(t, s.Cloud)
	assert.Zero(t, s.PagesPerWeek)
	assert.InDelta(t, session.DefaultWiFiHours, s.WiFiHours, 1e-9)
	assert.Equal(t, factors.IdleUnset, s.Idle)
	assert.Empty(t, s.Guess)
	assert.Nil(t, s.Results)
	assert.False(t, s.Submitted)
}

func TestResetIssuesFreshIdentity(t *testing.T) {
	s := session.New()
	oldID := s.ID
	s.Name = "Ada"
	s.Stage = session.StageGuess
	require.NoError(t, s.Devices.SetDesiredQuantity(factors.DeviceLaptop, 1))

	s.Reset()

	assert.NotEqual(t, oldID, s.ID)
	assert.Equal(t, session.StageIntro, s.Stage)
	assert.Empty(t, s.Name)
	assert.True(t, s.Devices.Empty())
}

func TestInputsResolvesBuckets(t *testing.T) {
	s := session.New()
	s.Role = factors.RoleStudent
	s.EmailPlain = "1-10"
	s.EmailAttach = ">100"
	s.Cloud = "20-50GB"
	s.ActivityHours["Web browsing"] = 2.5
	s.AIQueries["Generate images"] = 7

	in := s.Inputs()
	assert.InDelta(t, 5, in.EmailPlainPerDay, 1e-9)
	assert.InDelta(t, 150, in.EmailAttachPerDay, 1e-9)
	assert.InDelta(t, 35, in.CloudGB, 1e-9)
	assert.InDelta(t, 2.5, in.ActivityHours["Web browsing"], 1e-9)
	assert.Equal(t, 7, in.AIQueries["Generate images"])

	// The resolved maps are copies; mutating them must not touch the session.
	in.ActivityHours["Web browsing"] = 99
	assert.InDelta(t, 2.5, s.ActivityHours["Web browsing"], 1e-9)
}

func TestInputsUnselectedBucketsReadZero(t *testing.T) {
	s := session.New()
	in := s.Inputs()
	assert.Zero(t, in.EmailPlainPerDay)
	assert.Zero(t, in.EmailAttachPerDay)
	assert.Zero(t, in.CloudGB)
}

func TestActivitiesSelected(t *testing.T) {
	s := session.New()
	assert.False(t, s.ActivitiesSelected())

	s.EmailPlain = "0"
	s.EmailAttach = "0"
	assert.False(t, s.ActivitiesSelected())

	s.Cloud = "<5GB"
	assert.True(t, s.ActivitiesSelected())
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "intro", session.StageIntro.String())
	assert.Equal(t, "results_equiv", session.StageResultsEquiv.String())
	assert.Equal(t, "final", session.StageFinal.String())
	assert.Equal(t, "unknown", session.Stage(99).String())
}
