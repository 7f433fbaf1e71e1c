package transit_test

import (
	"testing"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/model/transit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecord(t *testing.T, deliveryType shipment.DeliveryType, routeClass transit.RouteClass) *transit.TransitDetails {
	t.Helper()

	grNo, err := kernel.NewGRNo("A101")
	require.NoError(t, err)

	record, err := transit.NewTransitDetails(
		kernel.NewUUID(),
		grNo,
		kernel.NewUUID(),
		"JPR-000042/A",
		kernel.NewUUID(),
		kernel.NewUUID(),
		deliveryType,
		routeClass,
	)
	require.NoError(t, err)
	return record
}

func TestNewTransitDetails(t *testing.T) {
	record := newRecord(t, shipment.Godown, transit.TwoHop)

	assert.NoError(t, record.Validate())
	assert.True(t, record.IsActive())
	assert.False(t, record.IsDelivered())
	assert.Equal(t, transit.LabelPending, record.StatusLabel())

	for _, m := range record.Path() {
		assert.False(t, record.MilestoneSet(m))
		assert.Nil(t, record.MilestoneAt(m))
	}
}

func TestTransitDetails_Paths(t *testing.T) {
	tests := []struct {
		name         string
		deliveryType shipment.DeliveryType
		routeClass   transit.RouteClass
		want         []transit.Milestone
	}{
		{
			name:         "two-hop godown",
			deliveryType: shipment.Godown,
			routeClass:   transit.TwoHop,
			want: []transit.Milestone{
				transit.OutFromBranch1, transit.DeliveredAtBranch2,
				transit.OutFromBranch2, transit.DeliveredAtDestination,
			},
		},
		{
			name:         "two-hop door",
			deliveryType: shipment.Door,
			routeClass:   transit.TwoHop,
			want: []transit.Milestone{
				transit.OutFromBranch1, transit.DeliveredAtBranch2, transit.OutFromBranch2,
				transit.OutForDoorDelivery, transit.DeliveredAtDestination,
			},
		},
		{
			name:         "direct godown terminates at branch 2",
			deliveryType: shipment.Godown,
			routeClass:   transit.DirectDestination,
			want:         []transit.Milestone{transit.OutFromBranch1, transit.DeliveredAtBranch2},
		},
		{
			name:         "direct door",
			deliveryType: shipment.Door,
			routeClass:   transit.DirectDestination,
			want: []transit.Milestone{
				transit.OutFromBranch1, transit.OutForDoorDelivery, transit.DeliveredAtBranch2,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := newRecord(t, tt.deliveryType, tt.routeClass)
			assert.Equal(t, tt.want, record.Path())
			assert.Equal(t, tt.want[len(tt.want)-1], record.Terminal())
		})
	}
}

func TestTransitDetails_Advance(t *testing.T) {
	now := time.Now()

	t.Run("walks the path in order", func(t *testing.T) {
		record := newRecord(t, shipment.Godown, transit.TwoHop)

		for _, m := range record.Path() {
			require.NoError(t, record.Advance(m, now))
			assert.True(t, record.MilestoneSet(m))
			require.NotNil(t, record.MilestoneAt(m))
			assert.Equal(t, now, *record.MilestoneAt(m))
		}
		assert.True(t, record.IsDelivered())
		assert.Equal(t, transit.LabelDelivered, record.StatusLabel())
	})

	t.Run("rejects skipping ahead", func(t *testing.T) {
		record := newRecord(t, shipment.Godown, transit.TwoHop)

		err := record.Advance(transit.OutFromBranch2, now)
		require.ErrorIs(t, err, transit.ErrMilestoneOutOfOrder)
		assert.False(t, record.MilestoneSet(transit.OutFromBranch2))
	})

	t.Run("monotonic: earlier milestones never unset by later advances", func(t *testing.T) {
		record := newRecord(t, shipment.Door, transit.TwoHop)
		path := record.Path()

		for _, m := range path {
			require.NoError(t, record.Advance(m, now))
			for _, earlier := range path {
				if earlier == m {
					break
				}
				assert.True(t, record.MilestoneSet(earlier))
			}
		}
	})

	t.Run("idempotent re-invocation", func(t *testing.T) {
		record := newRecord(t, shipment.Godown, transit.TwoHop)
		first := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
		second := first.Add(time.Hour)

		require.NoError(t, record.Advance(transit.OutFromBranch1, first))
		require.NoError(t, record.Advance(transit.OutFromBranch1, second))

		// the original timestamp is preserved
		require.NotNil(t, record.MilestoneAt(transit.OutFromBranch1))
		assert.Equal(t, first, *record.MilestoneAt(transit.OutFromBranch1))
	})

	t.Run("milestone off the route is rejected", func(t *testing.T) {
		record := newRecord(t, shipment.Godown, transit.TwoHop)
		require.NoError(t, record.Advance(transit.OutFromBranch1, now))
		require.NoError(t, record.Advance(transit.DeliveredAtBranch2, now))
		require.NoError(t, record.Advance(transit.OutFromBranch2, now))

		err := record.Advance(transit.OutForDoorDelivery, now)
		require.ErrorIs(t, err, transit.ErrMilestoneNotOnRoute)
	})

	t.Run("direct route delivers at branch 2", func(t *testing.T) {
		record := newRecord(t, shipment.Godown, transit.DirectDestination)
		require.NoError(t, record.Advance(transit.OutFromBranch1, now))

		assert.Equal(t, transit.LabelInTransit, record.StatusLabel())

		require.NoError(t, record.Advance(transit.DeliveredAtBranch2, now))
		assert.True(t, record.IsDelivered())
		assert.Equal(t, transit.LabelDelivered, record.StatusLabel())
	})

	t.Run("deactivated record cannot advance", func(t *testing.T) {
		record := newRecord(t, shipment.Godown, transit.TwoHop)
		require.NoError(t, record.Deactivate(now, "misload"))

		err := record.Advance(transit.OutFromBranch1, now)
		require.ErrorIs(t, err, transit.ErrTransitNotActive)
	})
}

func TestTransitDetails_StatusLabel(t *testing.T) {
	now := time.Now()
	record := newRecord(t, shipment.Door, transit.TwoHop)

	assert.Equal(t, transit.LabelPending, record.StatusLabel())

	require.NoError(t, record.Advance(transit.OutFromBranch1, now))
	assert.Equal(t, transit.LabelInTransit, record.StatusLabel())

	require.NoError(t, record.Advance(transit.DeliveredAtBranch2, now))
	assert.Equal(t, transit.LabelAtBranch2, record.StatusLabel())

	require.NoError(t, record.Advance(transit.OutFromBranch2, now))
	assert.Equal(t, transit.LabelOutFromB2, record.StatusLabel())

	require.NoError(t, record.Advance(transit.OutForDoorDelivery, now))
	assert.Equal(t, transit.LabelDoorDelivery, record.StatusLabel())

	require.NoError(t, record.Advance(transit.DeliveredAtDestination, now))
	assert.Equal(t, transit.LabelDelivered, record.StatusLabel())
}

func TestTransitDetails_Deactivate(t *testing.T) {
	now := time.Now()

	t.Run("records removal time and reason", func(t *testing.T) {
		record := newRecord(t, shipment.Godown, transit.TwoHop)

		require.NoError(t, record.Deactivate(now, "wrong challan"))
		assert.False(t, record.IsActive())
		assert.True(t, record.State().IsDeactivated())
		require.NotNil(t, record.State().DeactivatedAt())
		assert.Equal(t, now, *record.State().DeactivatedAt())
		assert.Equal(t, "wrong challan", record.State().Reason())
	})

	t.Run("double removal is rejected", func(t *testing.T) {
		record := newRecord(t, shipment.Godown, transit.TwoHop)

		require.NoError(t, record.Deactivate(now, ""))
		err := record.Deactivate(now, "")
		require.ErrorIs(t, err, transit.ErrTransitAlreadyDeactivated)
	})

	t.Run("zero removal time is rejected", func(t *testing.T) {
		record := newRecord(t, shipment.Godown, transit.TwoHop)
		require.Error(t, record.Deactivate(time.Time{}, ""))
	})
}

func TestRestoreTransitDetails(t *testing.T) {
	now := time.Now()
	grNo, _ := kernel.NewGRNo("B7")
	state, err := transit.DeactivatedState(now, "misload")
	require.NoError(t, err)

	record, err := transit.RestoreTransitDetails(
		kernel.NewUUID(), grNo, kernel.NewUUID(), "JPR-000042/A",
		kernel.NewUUID(), kernel.NewUUID(),
		shipment.Godown, transit.TwoHop,
		state,
		transit.MilestoneFlags{
			OutFromBranch1:     transit.MilestoneFlag{Set: true, At: &now},
			DeliveredAtBranch2: transit.MilestoneFlag{Set: true},
		},
	)
	require.NoError(t, err)

	assert.False(t, record.IsActive())
	assert.True(t, record.MilestoneSet(transit.OutFromBranch1))
	assert.True(t, record.MilestoneSet(transit.DeliveredAtBranch2))
	// historical row with flag set but no timestamp stays readable
	assert.Nil(t, record.MilestoneAt(transit.DeliveredAtBranch2))
	assert.Equal(t, transit.LabelAtBranch2, record.StatusLabel())
}

func TestRouteClassFor(t *testing.T) {
	assert.Equal(t, transit.DirectDestination, transit.RouteClassFor(shipment.ManualEntry, false))
	assert.Equal(t, transit.DirectDestination, transit.RouteClassFor(shipment.Regular, true))
	assert.Equal(t, transit.TwoHop, transit.RouteClassFor(shipment.Regular, false))
}

func TestMilestoneParsing(t *testing.T) {
	for _, m := range []transit.Milestone{
		transit.OutFromBranch1, transit.DeliveredAtBranch2, transit.OutFromBranch2,
		transit.OutForDoorDelivery, transit.DeliveredAtDestination,
	} {
		parsed, err := transit.MilestoneFromString(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}

	_, err := transit.MilestoneFromString("teleported")
	require.Error(t, err)
}
