package insights_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greendilt/footprint/internal/engine"
	"github.com/greendilt/footprint/internal/factors"
	"github.com/greendilt/footprint/internal/insights"
)

func TestTopCategory(t *testing.T) {
	tests := []struct {
		name string
		res  engine.Result
		want factors.Category
	}{
		{
			name: "clear winner",
			res:  engine.Result{Devices: 10, EWaste: 2, DigitalActivities: 80, AITools: 5},
			want: factors.CategoryDigital,
		},
		{
			name: "negative e-waste never wins",
			res:  engine.Result{Devices: 1, EWaste: -5, DigitalActivities: 0.5, AITools: 0},
			want: factors.CategoryDevices,
		},
		{
			name: "exact tie resolves to the earlier category",
			res:  engine.Result{Devices: 50, EWaste: 1, DigitalActivities: 50, AITools: 50},
			want: factors.CategoryDevices,
		},
		{
			name: "all zero falls back to first",
			res:  engine.Result{},
			want: factors.CategoryDevices,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, insights.TopCategory(tt.res))
		})
	}
}

func TestArchetypeVerdict(t *testing.T) {
	aiHeavy := engine.Result{Devices: 1, AITools: 90}

	t.Run("correct guess keeps the guessed persona", func(t *testing.T) {
		v := insights.ArchetypeVerdict("ai", aiHeavy)
		assert.True(t, v.Correct)
		assert.Equal(t, factors.CategoryAI, v.Top)
		assert.Equal(t, "ai", v.Display.Key)
	})

	t.Run("wrong guess shows the actual persona", func(t *testing.T) {
		v := insights.ArchetypeVerdict("devices", aiHeavy)
		assert.False(t, v.Correct)
		assert.Equal(t, factors.CategoryAI, v.Top)
		assert.Equal(t, "ai", v.Display.Key)
		assert.Equal(t, "devices", v.Guessed.Key)
	})

	t.Run("unknown key still resolves the actual persona", func(t *testing.T) {
		v := insights.ArchetypeVerdict("nonsense", aiHeavy)
		assert.False(t, v.Correct)
		assert.Equal(t, "ai", v.Display.Key)
	})
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name       string
		total      float64
		remoteAvg  float64
		sampleSize int
		remoteOK   bool
		wantSource insights.AverageSource
		wantAvg    float64
		wantRel    insights.Relation
	}{
		{
			name:       "trusted remote average",
			total:      150,
			remoteAvg:  300,
			sampleSize: 25,
			remoteOK:   true,
			wantSource: insights.SourceRemote,
			wantAvg:    300,
			wantRel:    insights.RelationLess,
		},
		{
			name:       "small sample falls back to builtin",
			total:      600,
			remoteAvg:  300,
			sampleSize: insights.MinSampleSize - 1,
			remoteOK:   true,
			wantSource: insights.SourceBuiltin,
			wantAvg:    297,
			wantRel:    insights.RelationMore,
		},
		{
			name:       "remote failure falls back to builtin",
			total:      297,
			remoteOK:   false,
			wantSource: insights.SourceBuiltin,
			wantAvg:    297,
			wantRel:    insights.RelationInLine,
		},
		{
			name:       "non-positive remote average falls back",
			total:      100,
			remoteAvg:  0,
			sampleSize: 100,
			remoteOK:   true,
			wantSource: insights.SourceBuiltin,
			wantAvg:    297,
			wantRel:    insights.RelationLess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := insights.Compare(tt.total, factors.RoleStudent, tt.remoteAvg, tt.sampleSize, tt.remoteOK)
			assert.Equal(t, tt.wantSource, c.Source)
			assert.InDelta(t, tt.wantAvg, c.Average, 1e-9)
			assert.Equal(t, tt.wantRel, c.Relation)
		})
	}

	t.Run("within one percent counts as in line", func(t *testing.T) {
		c := insights.Compare(302, factors.RoleStudent, 300, 50, true)
		assert.Equal(t, insights.RelationInLine, c.Relation)
	})

	t.Run("deviation percent is absolute", func(t *testing.T) {
		c := insights.Compare(150, factors.RoleStudent, 300, 50, true)
		require.Equal(t, insights.RelationLess, c.Relation)
		assert.InDelta(t, 50, c.Percent, 1e-9)
	})

	t.Run("unknown role without remote has no baseline", func(t *testing.T) {
		c := insights.Compare(100, factors.Role("Visitor"), 0, 0, false)
		assert.Equal(t, insights.SourceNone, c.Source)
	})
}
