package answers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSet() *Set {
	return NewSet(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), Device{Name: "Chrome on Android", Mobile: true})
}

func TestNewSetInitialisesDetailKeys(t *testing.T) {
	set := testSet()
	require.Len(t, set.AspectDetails, len(AspectOrder))
	for _, aspect := range AspectOrder {
		detail, ok := set.AspectDetails[aspect]
		assert.True(t, ok, aspect)
		assert.Empty(t, detail)
	}
}

func TestFilterUnchecked(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   []string
	}{
		{
			name:   "sentinel removed among real values",
			values: []string{Unchecked, AspectDrugs, AspectMoney},
			want:   []string{AspectDrugs, AspectMoney},
		},
		{
			name:   "all sentinel filters to empty not nil",
			values: []string{Unchecked},
			want:   []string{},
		},
		{
			name:   "empty input stays empty",
			values: nil,
			want:   []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterUnchecked(tc.values)
			assert.NotNil(t, got)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSetAssistanceDropsSentinelAndUnknowns(t *testing.T) {
	set := testSet()
	set.SetAssistance(
		[]string{Unchecked, AspectAlcohol, "SHOPPING", AspectOther},
		map[string]string{AspectAlcohol: "  weekend drinking  ", "SHOPPING": "ignore me"},
	)

	assert.Equal(t, []string{AspectAlcohol, AspectOther}, set.Aspects)
	assert.Equal(t, "weekend drinking", set.AspectDetails[AspectAlcohol])
	_, leaked := set.AspectDetails["SHOPPING"]
	assert.False(t, leaked)
}

func TestSetAssistanceClearsDeselectedDetail(t *testing.T) {
	set := testSet()
	set.SetAssistance([]string{AspectHousing}, map[string]string{AspectHousing: "eviction notice"})
	require.Equal(t, "eviction notice", set.AspectDetails[AspectHousing])

	// Deselecting housing must wipe its detail text.
	set.SetAssistance([]string{AspectMoney}, map[string]string{AspectMoney: "rent arrears"})
	assert.Empty(t, set.AspectDetails[AspectHousing])
	assert.Equal(t, "rent arrears", set.AspectDetails[AspectMoney])

	// Re-applying the same selection changes nothing.
	set.SetAssistance([]string{AspectMoney}, map[string]string{AspectMoney: "rent arrears"})
	assert.Empty(t, set.AspectDetails[AspectHousing])
	assert.Equal(t, "rent arrears", set.AspectDetails[AspectMoney])
}

func TestSetAssistanceAllSentinelClearsEverything(t *testing.T) {
	set := testSet()
	set.SetAssistance([]string{AspectDrugs}, map[string]string{AspectDrugs: "relapse risk"})

	set.SetAssistance([]string{Unchecked}, nil)
	assert.Equal(t, []string{}, set.Aspects)
	for _, aspect := range AspectOrder {
		assert.Empty(t, set.AspectDetails[aspect], aspect)
	}
}

func TestSetCallbackTrims(t *testing.T) {
	set := testSet()
	set.SetCallback("YES", "  after 5pm please  ")
	assert.Equal(t, "YES", set.CallbackRequested)
	assert.Equal(t, "after 5pm please", set.CallbackDetails)
}

func TestSelected(t *testing.T) {
	set := testSet()
	set.SetAssistance([]string{AspectSupport}, nil)
	assert.True(t, set.Selected(AspectSupport))
	assert.False(t, set.Selected(AspectDrugs))
}
