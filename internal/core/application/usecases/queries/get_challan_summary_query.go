package queries

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrGetChallanSummaryQueryIsNotConstructed = errors.New(
	"GetChallanSummaryQuery must be created via NewGetChallanSummaryQuery constructor",
)

// GetChallanSummaryQuery retrieves the manifest header of one challan: its
// count, freight totals split by payment mode and overall delivery progress.
type GetChallanSummaryQuery struct { //nolint:recvcheck //using for validation
	challanID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetChallanSummaryQuery creates a query for one challan's summary.
func NewGetChallanSummaryQuery(challanID kernel.UUID) (GetChallanSummaryQuery, error) {
	q := GetChallanSummaryQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := q.setChallanID(challanID); err != nil {
		return GetChallanSummaryQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetChallanSummaryQueryIsNotConstructed if validation fails.
func (q GetChallanSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetChallanSummaryQueryIsNotConstructed)
}

// ChallanID returns the challan whose summary is requested.
func (q GetChallanSummaryQuery) ChallanID() kernel.UUID {
	return q.challanID
}

func (q *GetChallanSummaryQuery) setChallanID(challanID kernel.UUID) error {
	if err := challanID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("challanID", err)
	}

	q.challanID = challanID
	return nil
}

// PaymentModeSplit aggregates the freight figures of one payment mode on a challan.
type PaymentModeSplit struct {
	PaymentMode string
	Bilties     int
	Packages    int
	WeightKg    float64
	Amount      float64
}

// GetChallanSummaryQueryResponse is the manifest header read model.
//
// StatusLabel reflects the furthest milestone reached by any active record on
// the challan, "No Transit" when the challan carries none.
type GetChallanSummaryQueryResponse struct {
	ChallanID       kernel.UUID
	ChallanNo       string
	TruckNo         string
	DriverName      string
	OwnerName       string
	TotalBiltyCount int
	IsDispatched    bool
	StatusLabel     string
	Splits          []PaymentModeSplit
	TotalPackages   int
	TotalWeightKg   float64
	TotalAmount     float64
}
