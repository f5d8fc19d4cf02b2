package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greendilt/footprint/internal/factors"
	"github.com/greendilt/footprint/internal/ledger"
)

// complete fills the fields Confirm validates.
func complete(t *testing.T, l *ledger.Ledger, id ledger.ID) {
	t.Helper()
	rec, ok := l.Record(id)
	require.True(t, ok)
	rec.Condition = ledger.ConditionNew
	rec.Sharing = ledger.SharingPersonal
	rec.Disposition = factors.DispositionCollectionCenter
}

func TestSetDesiredQuantityValidation(t *testing.T) {
	tests := []struct {
		name    string
		device  factors.DeviceType
		n       int
		wantErr error
	}{
		{"unknown device", factors.DeviceType("Toaster"), 1, ledger.ErrUnknownDevice},
		{"negative quantity", factors.DeviceLaptop, -1, ledger.ErrQuantityRange},
		{"above cap", factors.DeviceLaptop, ledger.MaxPerType + 1, ledger.ErrQuantityRange},
		{"at cap", factors.DeviceLaptop, ledger.MaxPerType, nil},
		{"zero on empty", factors.DeviceLaptop, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := ledger.New()
			err := l.SetDesiredQuantity(tt.device, tt.n)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.True(t, l.Empty(), "failed reconcile must not touch the ledger")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.n, l.Count(tt.device))
		})
	}
}

func TestGrowCreatesUnconfirmedDefaults(t *testing.T) {
	l := ledger.New()
	require.NoError(t, l.SetDesiredQuantity(factors.DeviceLaptop, 2))

	recs := l.Records()
	require.Len(t, recs, 2)
	for _, rec := range recs {
		assert.Equal(t, ledger.StateUnconfirmed, rec.State)
		assert.Equal(t, ledger.ConditionUnset, rec.Condition)
		assert.Equal(t, ledger.SharingUnset, rec.Sharing)
		assert.Empty(t, rec.Disposition)
		assert.InDelta(t, ledger.DefaultLifespanYears, rec.Lifespan, 1e-9)
	}

	// Newest record sits at the front of the type's sub-list.
	assert.Equal(t, 1, recs[0].ID.Index)
	assert.Equal(t, 0, recs[1].ID.Index)
}

func TestNewTypeGroupInsertsAtFront(t *testing.T) {
	l := ledger.New()
	require.NoError(t, l.SetDesiredQuantity(factors.DeviceLaptop, 2))
	require.NoError(t, l.SetDesiredQuantity(factors.DeviceSmartphone, 1))

	recs := l.Records()
	require.Len(t, recs, 3)
	assert.Equal(t, factors.DeviceSmartphone, recs[0].ID.Type)
	assert.Equal(t, factors.DeviceLaptop, recs[1].ID.Type)
	assert.Equal(t, factors.DeviceLaptop, recs[2].ID.Type)

	// A later addition to an existing group joins that group, not the
	// global front.
	require.NoError(t, l.SetDesiredQuantity(factors.DeviceLaptop, 3))
	recs = l.Records()
	require.Len(t, recs, 4)
	assert.Equal(t, factors.DeviceSmartphone, recs[0].ID.Type)
	assert.Equal(t, 2, recs[1].ID.Index)
	assert.Equal(t, factors.DeviceLaptop, recs[1].ID.Type)
}

func TestIndicesNeverReused(t *testing.T) {
	l := ledger.New()
	require.NoError(t, l.SetDesiredQuantity(factors.DeviceLaptop, 2))
	require.NoError(t, l.SetDesiredQuantity(factors.DeviceLaptop, 1))
	require.NoError(t, l.SetDesiredQuantity(factors.DeviceLaptop, 2))

	var indices []int
	for _, rec := range l.Records() {
		indices = append(indices, rec.ID.Index)
	}
	assert.Equal(t, []int{2, 0}, indices)
}

func TestShrinkPrefersUnconfirmedHighestIndex(t *testing.T) {
	l := ledger.New()
	require.NoError(t, l.SetDesiredQuantity(factors.DeviceLaptop, 3))

	// Confirm the oldest record; the other two stay unconfirmed.
	oldest := ledger.ID{Type: factors.DeviceLaptop, Index: 0}
	complete(t, l, oldest)
	problems, err := l.Confirm(oldest)
	require.NoError(t, err)
	require.Empty(t, problems)

	require.NoError(t, l.SetDesiredQuantity(factors.DeviceLaptop, 2))
	_, ok := l.Record(ledger.ID{Type: factors.DeviceLaptop, Index: 2})
	assert.False(t, ok, "highest-index unconfirmed record goes first")

	require.NoError(t, l.SetDesiredQuantity(factors.DeviceLaptop, 1))
	rec, ok := l.Record(oldest)
	require.True(t, ok, "confirmed record survives while unconfirmed ones exist")
	assert.Equal(t, ledger.StateConfirmed, rec.State)

	require.NoError(t, l.SetDesiredQuantity(factors.DeviceLaptop, 0))
	assert.True(t, l.Empty())
}

func TestQuantityIsolatedPerType(t *testing.T) {
	l := ledger.New()
	require.NoError(t, l.SetDesiredQuantity(factors.DeviceLaptop, 2))
	require.NoError(t, l.SetDesiredQuantity(factors.DeviceSmartphone, 1))

	require.NoError(t, l.SetDesiredQuantity(factors.DeviceLaptop, 0))
	assert.Equal(t, 0, l.Count(factors.DeviceLaptop))
	assert.Equal(t, 1, l.Count(factors.DeviceSmartphone))
}

func TestConfirm(t *testing.T) {
	t.Run("incomplete record reports every violation", func(t *testing.T) {
		l := ledger.New()
		require.NoError(t, l.SetDesiredQuantity(factors.DeviceLaptop, 1))
		id := ledger.ID{Type: factors.DeviceLaptop, Index: 0}

		rec, ok := l.Record(id)
		require.True(t, ok)
		rec.Lifespan = 0

		problems, err := l.Confirm(id)
		require.NoError(t, err)
		assert.ElementsMatch(t, []ledger.Problem{
			ledger.ProblemConditionUnset,
			ledger.ProblemSharingUnset,
			ledger.ProblemDispositionUnset,
			ledger.ProblemLifespanInvalid,
		}, problems)
		assert.Equal(t, ledger.StateUnconfirmed, rec.State)
		assert.Equal(t, 0, rec.Generation)
	})

	t.Run("complete record transitions and bumps generation", func(t *testing.T) {
		l := ledger.New()
		require.NoError(t, l.SetDesiredQuantity(factors.DeviceLaptop, 1))
		id := ledger.ID{Type: factors.DeviceLaptop, Index: 0}
		complete(t, l, id)

		problems, err := l.Confirm(id)
		require.NoError(t, err)
		assert.Empty(t, problems)

		rec, ok := l.Record(id)
		require.True(t, ok)
		assert.Equal(t, ledger.StateConfirmed, rec.State)
		assert.Equal(t, 1, rec.Generation)
	})

	t.Run("unknown id", func(t *testing.T) {
		l := ledger.New()
		_, err := l.Confirm(ledger.ID{Type: factors.DeviceLaptop, Index: 7})
		assert.ErrorIs(t, err, ledger.ErrNotFound)
	})
}

func TestRemove(t *testing.T) {
	l := ledger.New()
	require.NoError(t, l.SetDesiredQuantity(factors.DeviceLaptop, 2))
	id := ledger.ID{Type: factors.DeviceLaptop, Index: 1}
	complete(t, l, id)
	_, err := l.Confirm(id)
	require.NoError(t, err)

	// Remove drops confirmed records too, and siblings keep their index.
	require.NoError(t, l.Remove(id))
	assert.Equal(t, 1, l.Count(factors.DeviceLaptop))
	_, ok := l.Record(ledger.ID{Type: factors.DeviceLaptop, Index: 0})
	assert.True(t, ok)

	assert.ErrorIs(t, l.Remove(id), ledger.ErrNotFound)
}

func TestApplyDefaultLifespan(t *testing.T) {
	l := ledger.New()
	require.NoError(t, l.SetDesiredQuantity(factors.DeviceMonitor, 1))
	id := ledger.ID{Type: factors.DeviceMonitor, Index: 0}

	require.NoError(t, l.ApplyDefaultLifespan(id))
	rec, ok := l.Record(id)
	require.True(t, ok)
	assert.InDelta(t, factors.DefaultLifespan(factors.DeviceMonitor), rec.Lifespan, 1e-9)

	assert.ErrorIs(t, l.ApplyDefaultLifespan(ledger.ID{Type: factors.DeviceMonitor, Index: 9}), ledger.ErrNotFound)
}

func TestAdjustedYears(t *testing.T) {
	tests := []struct {
		name      string
		years     float64
		condition ledger.Condition
		sharing   ledger.Sharing
		want      float64
	}{
		{"personal new", 4, ledger.ConditionNew, ledger.SharingPersonal, 4},
		{"personal used", 4, ledger.ConditionUsed, ledger.SharingPersonal, 6},
		{"family new", 4, ledger.ConditionNew, ledger.SharingFamily, 12},
		{"family used", 4, ledger.ConditionUsed, ledger.SharingFamily, 18},
		{"university new", 4, ledger.ConditionNew, ledger.SharingUniversity, 40},
		{"university used", 4, ledger.ConditionUsed, ledger.SharingUniversity, 60},
		{"unset sharing keeps identity", 4, ledger.ConditionUsed, ledger.SharingUnset, 4},
		{"zero lifespan", 0, ledger.ConditionNew, ledger.SharingPersonal, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ledger.AdjustedYears(tt.years, tt.condition, tt.sharing)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestHasUnconfirmedAndIncomplete(t *testing.T) {
	l := ledger.New()
	assert.False(t, l.HasUnconfirmed())
	assert.False(t, l.HasIncomplete())

	require.NoError(t, l.SetDesiredQuantity(factors.DeviceLaptop, 1))
	assert.True(t, l.HasUnconfirmed())
	assert.True(t, l.HasIncomplete())

	id := ledger.ID{Type: factors.DeviceLaptop, Index: 0}
	complete(t, l, id)
	assert.True(t, l.HasUnconfirmed())
	assert.False(t, l.HasIncomplete())

	_, err := l.Confirm(id)
	require.NoError(t, err)
	assert.False(t, l.HasUnconfirmed())
}

func TestIDString(t *testing.T) {
	id := ledger.ID{Type: factors.DeviceLaptop, Index: 2}
	assert.Equal(t, "Laptop Computer#2", id.String())
}
