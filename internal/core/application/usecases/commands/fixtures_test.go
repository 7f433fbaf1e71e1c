package commands_test

import (
	"testing"

	"freight/internal/core/domain/model/challan"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/model/transit"

	"github.com/stretchr/testify/require"
)

func mustGRNo(t *testing.T, value string) kernel.GRNo {
	t.Helper()
	grNo, err := kernel.NewGRNo(value)
	require.NoError(t, err)
	return grNo
}

func newTestShipment(t *testing.T, grNo string, branchID kernel.UUID) *shipment.Shipment {
	t.Helper()
	s, err := shipment.NewShipment(
		kernel.NewUUID(), mustGRNo(t, grNo), branchID, "Jaipur",
		3, 120.5, 1500, shipment.ToPay, shipment.Godown, shipment.Regular, shipment.Saved,
	)
	require.NoError(t, err)
	return s
}

func newTestChallan(t *testing.T, fromBranchID, toBranchID kernel.UUID) *challan.Challan {
	t.Helper()
	c, err := challan.NewChallan(
		kernel.NewUUID(), "JPR-000001/A", fromBranchID, toBranchID,
		"RJ14-GA-1234", "Ramesh", "Suresh",
	)
	require.NoError(t, err)
	return c
}

func newTestBook(t *testing.T, fromBranchID, toBranchID kernel.UUID) *challan.ChallanBook {
	t.Helper()
	b, err := challan.NewChallanBook(kernel.NewUUID(), fromBranchID, toBranchID, "JPR-", "/A", 6)
	require.NoError(t, err)
	return b
}

func newTestTransit(
	t *testing.T,
	grNo string,
	owner *challan.Challan,
) *transit.TransitDetails {
	t.Helper()
	record, err := transit.NewTransitDetails(
		kernel.NewUUID(), mustGRNo(t, grNo), owner.ID(), owner.ChallanNo(),
		owner.FromBranchID(), owner.ToBranchID(), shipment.Godown, transit.TwoHop,
	)
	require.NoError(t, err)
	return record
}
