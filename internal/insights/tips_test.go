package insights_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greendilt/footprint/internal/engine"
	"github.com/greendilt/footprint/internal/factors"
	"github.com/greendilt/footprint/internal/insights"
	"github.com/greendilt/footprint/internal/ledger"
)

// digitalHeavyProfile triggers the cloud, attachment and idle rules and
// makes Digital Activities the top category.
func digitalHeavyProfile() insights.Profile {
	return insights.Profile{
		Inputs: engine.Inputs{
			Role:              factors.RoleStudent,
			EmailAttachPerDay: 60,
			CloudGB:           75,
			Idle:              factors.IdleLeaveOn,
		},
		Result: engine.Result{Devices: 10, DigitalActivities: 500, AITools: 2},
	}
}

func tipsFor(sets []insights.CategoryTips, c factors.Category) []string {
	for _, s := range sets {
		if s.Category == c {
			return s.Tips
		}
	}
	return nil
}

func TestTipsTopCategoryGetsFullSet(t *testing.T) {
	sets := insights.Tips(digitalHeavyProfile(), "ada|Student")
	require.NotEmpty(t, sets)

	top := sets[0]
	assert.True(t, top.Top)
	assert.Equal(t, factors.CategoryDigital, top.Category)

	// All three fired personalized rules plus the generic suggestion.
	assert.Len(t, top.Tips, 4)
	joined := strings.Join(top.Tips, "\n")
	assert.Contains(t, joined, "stored data")
	assert.Contains(t, joined, "attachments emit")
	assert.Contains(t, joined, "idle mode")
	assert.Contains(t, joined, "internet mindfully")
}

func TestTipsSideCategoriesCappedAtTwo(t *testing.T) {
	sets := insights.Tips(digitalHeavyProfile(), "ada|Student")
	for _, s := range sets[1:] {
		assert.False(t, s.Top)
		assert.LessOrEqual(t, len(s.Tips), 2, "category %s", s.Category)
		assert.NotEmpty(t, s.Tips)
	}
}

func TestTipsDeterministicPerSeed(t *testing.T) {
	p := digitalHeavyProfile()
	first := insights.Tips(p, "ada|Student")
	second := insights.Tips(p, "ada|Student")
	assert.Equal(t, first, second, "same identity must sample the same backfill")
}

func TestTipsPersonalizedPreferredInSideCategories(t *testing.T) {
	// AI volume above threshold fires the personalized rule while Digital
	// stays the top category.
	p := digitalHeavyProfile()
	p.Inputs.AIQueries = map[string]int{"Generate images": 40}

	sets := insights.Tips(p, "ada|Student")
	aiTips := tipsFor(sets, factors.CategoryAI)
	require.NotEmpty(t, aiTips)
	assert.Contains(t, aiTips[0], "40 AI queries per day")
}

func TestTipBuyRefurbishedPicksBiggestSaving(t *testing.T) {
	p := insights.Profile{
		Records: []*ledger.Record{
			{
				ID:        ledger.ID{Type: factors.DeviceLaptop, Index: 0},
				Lifespan:  5,
				Condition: ledger.ConditionNew,
				Sharing:   ledger.SharingPersonal,
			},
			{
				ID:        ledger.ID{Type: factors.DeviceDesktop, Index: 0},
				Lifespan:  5,
				Condition: ledger.ConditionNew,
				Sharing:   ledger.SharingPersonal,
			},
		},
		Result: engine.Result{Devices: 100},
	}

	sets := insights.Tips(p, "seed")
	devTips := tipsFor(sets, factors.CategoryDevices)
	require.NotEmpty(t, devTips)
	// The desktop's higher embodied emissions win the comparison.
	assert.Contains(t, devTips[0], "new desktop")
}

func TestTipExtendLifespanIgnoresLongLivedDevices(t *testing.T) {
	p := insights.Profile{
		Records: []*ledger.Record{{
			ID:        ledger.ID{Type: factors.DeviceSmartphone, Index: 0},
			Lifespan:  6,
			Condition: ledger.ConditionUsed,
			Sharing:   ledger.SharingPersonal,
		}},
		Result: engine.Result{Devices: 100},
	}

	sets := insights.Tips(p, "seed")
	for _, tip := range tipsFor(sets, factors.CategoryDevices) {
		assert.NotContains(t, tip, "extend it to")
	}
}

func TestTipStoredAtHomeListsDevices(t *testing.T) {
	p := insights.Profile{
		Records: []*ledger.Record{{
			ID:          ledger.ID{Type: factors.DeviceTablet, Index: 0},
			Lifespan:    4,
			Condition:   ledger.ConditionNew,
			Sharing:     ledger.SharingPersonal,
			Disposition: factors.DispositionStoreAtHome,
		}},
		Result: engine.Result{EWaste: 50},
	}

	sets := insights.Tips(p, "seed")
	ewTips := tipsFor(sets, factors.CategoryEWaste)
	require.NotEmpty(t, ewTips)
	assert.Contains(t, ewTips[0], "Tablet")
	assert.Contains(t, ewTips[0], "stored at home")
}

func TestTipsHalfFilledRecordsStillCount(t *testing.T) {
	// Unset condition and sharing default to New/Personal for estimates.
	p := insights.Profile{
		Records: []*ledger.Record{{
			ID:          ledger.ID{Type: factors.DeviceMonitor, Index: 0},
			Lifespan:    3,
			Disposition: factors.DispositionGeneralWaste,
			State:       ledger.StateUnconfirmed,
		}},
		Result: engine.Result{EWaste: 40},
	}

	sets := insights.Tips(p, "seed")
	ewTips := tipsFor(sets, factors.CategoryEWaste)
	require.NotEmpty(t, ewTips)
	assert.Contains(t, ewTips[0], "general waste")
}

func TestVirtues(t *testing.T) {
	t.Run("full checklist", func(t *testing.T) {
		p := insights.Profile{
			Records: []*ledger.Record{{
				ID:          ledger.ID{Type: factors.DeviceLaptop, Index: 0},
				Lifespan:    6,
				Condition:   ledger.ConditionUsed,
				Sharing:     ledger.SharingPersonal,
				Disposition: factors.DispositionCollectionCenter,
				State:       ledger.StateConfirmed,
			}},
			Inputs: engine.Inputs{
				EmailAttachPerDay: 5,
				CloudGB:           12.5,
				Idle:              factors.IdleTurnOff,
				PagesPerWeek:      0,
			},
			Result: engine.Result{AIQueriesPerDay: 10},
		}

		virtues := insights.Virtues(p)
		assert.Len(t, virtues, 8)
	})

	t.Run("responsible disposal requires a confirmed record", func(t *testing.T) {
		p := insights.Profile{
			Records: []*ledger.Record{{
				ID:          ledger.ID{Type: factors.DeviceLaptop, Index: 0},
				Lifespan:    2,
				Condition:   ledger.ConditionNew,
				Sharing:     ledger.SharingPersonal,
				Disposition: factors.DispositionSellDonate,
				State:       ledger.StateUnconfirmed,
			}},
			Inputs: engine.Inputs{
				EmailAttachPerDay: 50,
				CloudGB:           100,
				PagesPerWeek:      3,
				Idle:              factors.IdleLeaveOn,
			},
			Result: engine.Result{AIQueriesPerDay: 50},
		}

		assert.Empty(t, insights.Virtues(p))
	})

	t.Run("hoarding is not responsible disposal", func(t *testing.T) {
		assert.False(t, factors.DispositionStoreAtHome.Responsible())
		assert.True(t, factors.DispositionManufacturer.Responsible())
	})
}
