package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrGetTransitRecordsQueryIsNotConstructed = errors.New(
	"GetTransitRecordsQuery must be created via one of its constructors",
)

// transitRecordsScope selects which lane the query filters on.
type transitRecordsScope int

const (
	scopeByChallan transitRecordsScope = iota + 1
	scopeByBranch
)

// GetTransitRecordsQuery retrieves the active transit records of one challan
// or of one origin branch, each with its per-record progress label.
type GetTransitRecordsQuery struct { //nolint:recvcheck //using for validation
	scope     transitRecordsScope
	challanID kernel.UUID
	branchID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetTransitRecordsByChallanQuery creates a query for one challan's active records.
func NewGetTransitRecordsByChallanQuery(challanID kernel.UUID) (GetTransitRecordsQuery, error) {
	if err := challanID.Validate(); err != nil {
		return GetTransitRecordsQuery{}, errs.NewValueIsRequiredErrorWithCause("challanID", err)
	}

	return GetTransitRecordsQuery{
		scope:     scopeByChallan,
		challanID: challanID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// NewGetTransitRecordsByBranchQuery creates a query for every active record
// originating at one branch, across its challans.
func NewGetTransitRecordsByBranchQuery(branchID kernel.UUID) (GetTransitRecordsQuery, error) {
	if err := branchID.Validate(); err != nil {
		return GetTransitRecordsQuery{}, errs.NewValueIsRequiredErrorWithCause("branchID", err)
	}

	return GetTransitRecordsQuery{
		scope:    scopeByBranch,
		branchID: branchID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through a constructor.
// Returns ErrGetTransitRecordsQueryIsNotConstructed if validation fails.
func (q GetTransitRecordsQuery) Validate() error {
	return q.guard.Validate(ErrGetTransitRecordsQueryIsNotConstructed)
}

// ByChallan reports whether the query filters on a challan.
func (q GetTransitRecordsQuery) ByChallan() bool {
	return q.scope == scopeByChallan
}

// ChallanID returns the challan filter; valid only when ByChallan is true.
func (q GetTransitRecordsQuery) ChallanID() kernel.UUID {
	return q.challanID
}

// BranchID returns the branch filter; valid only when ByChallan is false.
func (q GetTransitRecordsQuery) BranchID() kernel.UUID {
	return q.branchID
}

// MilestoneView is one milestone flag with its timestamp in a read model.
type MilestoneView struct {
	Milestone string
	Set       bool
	At        *time.Time
}

// GetTransitRecordsQueryResponse is one active transit record read model.
type GetTransitRecordsQueryResponse struct {
	TransitID    kernel.UUID
	GRNo         string
	ChallanID    kernel.UUID
	ChallanNo    string
	DeliveryType string
	RouteClass   string
	StatusLabel  string
	Delivered    bool
	Milestones   []MilestoneView
}
