package transit

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var (
	// ErrTransitIsNotConstructed is returned when a TransitDetails instance was
	// not created through NewTransitDetails or RestoreTransitDetails.
	ErrTransitIsNotConstructed = errors.New("TransitDetails must be created via NewTransitDetails constructor")

	// ErrTransitNotActive is returned when advancing or deactivating a record
	// that has already been removed from its challan.
	ErrTransitNotActive = errors.New("transit record is not active")

	// ErrTransitAlreadyDeactivated is returned when removing a record twice.
	ErrTransitAlreadyDeactivated = errors.New("transit record is already deactivated")

	// ErrMilestoneNotOnRoute is returned when the requested milestone does not
	// exist on the record's delivery path, e.g. out-for-door-delivery on a
	// godown-delivery shipment.
	ErrMilestoneNotOnRoute = errors.New("milestone is not on the record's delivery route")

	// ErrMilestoneOutOfOrder is returned when an earlier milestone on the path
	// is still unset. Milestones are strictly monotonic: a later flag may only
	// be set once every earlier flag on the same path is set.
	ErrMilestoneOutOfOrder = errors.New("an earlier milestone on the route is not set yet")
)

// Status labels derived from the highest milestone set on a record. The challan
// summary reuses them, with LabelNoTransit for a challan without any active
// records.
const (
	LabelNoTransit    = "No Transit"
	LabelPending      = "Pending"
	LabelInTransit    = "In Transit"
	LabelAtBranch2    = "At Branch 2"
	LabelOutFromB2    = "Out from B2"
	LabelDoorDelivery = "Door Delivery"
	LabelDelivered    = "Delivered"
)

// MilestoneFlag is the persisted shape of one milestone: whether it is set and
// when it was set. The timestamp may be missing on historical rows.
type MilestoneFlag struct {
	Set bool
	At  *time.Time
}

// MilestoneFlags is the persisted snapshot of all five milestones, used when
// restoring a record from the store.
type MilestoneFlags struct {
	OutFromBranch1         MilestoneFlag
	DeliveredAtBranch2     MilestoneFlag
	OutFromBranch2         MilestoneFlag
	OutForDoorDelivery     MilestoneFlag
	DeliveredAtDestination MilestoneFlag
}

// TransitDetails is the assignment of one shipment to one challan, the core
// join entity of the engine. It owns the delivery state machine: an ordered
// set of milestone flags whose shape depends on the record's route class and
// delivery type.
//
// Invariants:
//   - At most one active TransitDetails exists per GR number (exclusivity;
//     also enforced by a partial unique index at the store)
//   - Milestones only move false→true, in path order
//   - A removed record is deactivated, never deleted
type TransitDetails struct {
	id           kernel.UUID
	grNo         kernel.GRNo
	challanID    kernel.UUID
	challanNo    string
	fromBranchID kernel.UUID
	toBranchID   kernel.UUID
	deliveryType shipment.DeliveryType
	routeClass   RouteClass
	state        AssignmentState

	milestoneSet [DeliveredAtDestination + 1]bool
	milestoneAt  [DeliveredAtDestination + 1]*time.Time

	guard guard.ConstructorGuard
}

// NewTransitDetails creates a fresh assignment: active, with every milestone
// unset. Origin is the assigning operator's branch; destination comes from the
// challan book's lane.
func NewTransitDetails(
	id kernel.UUID,
	grNo kernel.GRNo,
	challanID kernel.UUID,
	challanNo string,
	fromBranchID kernel.UUID,
	toBranchID kernel.UUID,
	deliveryType shipment.DeliveryType,
	routeClass RouteClass,
) (*TransitDetails, error) {
	t := &TransitDetails{
		state: ActiveState(),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		t.setID(id),
		t.setGRNo(grNo),
		t.setChallan(challanID, challanNo),
		t.setBranches(fromBranchID, toBranchID),
		t.setRouting(deliveryType, routeClass),
	); err != nil {
		return nil, err
	}

	return t, nil
}

// RestoreTransitDetails reconstructs a record from persistence. Milestone
// flags are restored as stored; historical rows written before the ordering
// rules were enforced may hold gaps, which restore tolerates so they stay
// readable for audit.
func RestoreTransitDetails(
	id kernel.UUID,
	grNo kernel.GRNo,
	challanID kernel.UUID,
	challanNo string,
	fromBranchID kernel.UUID,
	toBranchID kernel.UUID,
	deliveryType shipment.DeliveryType,
	routeClass RouteClass,
	state AssignmentState,
	flags MilestoneFlags,
) (*TransitDetails, error) {
	t, err := NewTransitDetails(id, grNo, challanID, challanNo, fromBranchID, toBranchID,
		deliveryType, routeClass)
	if err != nil {
		return nil, err
	}
	if err := state.Validate(); err != nil {
		return nil, err
	}

	t.state = state
	t.restoreFlag(OutFromBranch1, flags.OutFromBranch1)
	t.restoreFlag(DeliveredAtBranch2, flags.DeliveredAtBranch2)
	t.restoreFlag(OutFromBranch2, flags.OutFromBranch2)
	t.restoreFlag(OutForDoorDelivery, flags.OutForDoorDelivery)
	t.restoreFlag(DeliveredAtDestination, flags.DeliveredAtDestination)
	return t, nil
}

func (t *TransitDetails) restoreFlag(m Milestone, flag MilestoneFlag) {
	t.milestoneSet[m] = flag.Set
	if flag.Set {
		t.milestoneAt[m] = flag.At
	}
}

// Validate ensures the TransitDetails instance was properly constructed.
func (t *TransitDetails) Validate() error {
	if t == nil {
		return ErrTransitIsNotConstructed
	}
	return t.guard.Validate(ErrTransitIsNotConstructed)
}

// IsEqual compares two records by their unique identifiers.
func (t *TransitDetails) IsEqual(other *TransitDetails) bool {
	return other != nil && t.id.IsEqual(other.id)
}

// ID returns the record's unique identifier.
func (t *TransitDetails) ID() kernel.UUID {
	return t.id
}

// GRNo returns the GR number of the assigned shipment.
func (t *TransitDetails) GRNo() kernel.GRNo {
	return t.grNo
}

// ChallanID returns the identifier of the owning challan.
func (t *TransitDetails) ChallanID() kernel.UUID {
	return t.challanID
}

// ChallanNo returns the manifest number of the owning challan.
func (t *TransitDetails) ChallanNo() string {
	return t.challanNo
}

// FromBranchID returns the origin branch of the assignment.
func (t *TransitDetails) FromBranchID() kernel.UUID {
	return t.fromBranchID
}

// ToBranchID returns the destination branch inherited from the challan book.
func (t *TransitDetails) ToBranchID() kernel.UUID {
	return t.toBranchID
}

// DeliveryType returns the destination handover type of the shipment.
func (t *TransitDetails) DeliveryType() shipment.DeliveryType {
	return t.deliveryType
}

// RouteClass returns which delivery graph the record follows.
func (t *TransitDetails) RouteClass() RouteClass {
	return t.routeClass
}

// State returns the assignment lifecycle state.
func (t *TransitDetails) State() AssignmentState {
	return t.state
}

// IsActive reports whether the assignment is live.
func (t *TransitDetails) IsActive() bool {
	return t.state.IsActive()
}

// Path returns the ordered milestones this record walks through.
func (t *TransitDetails) Path() []Milestone {
	return deliveryPath(t.routeClass, t.deliveryType)
}

// Terminal returns the milestone that means "delivered" for this record.
func (t *TransitDetails) Terminal() Milestone {
	path := t.Path()
	return path[len(path)-1]
}

// MilestoneSet reports whether the given milestone flag is set.
func (t *TransitDetails) MilestoneSet(m Milestone) bool {
	if m.Validate() != nil {
		return false
	}
	return t.milestoneSet[m]
}

// MilestoneAt returns when the given milestone was set, or nil if unset or
// missing on a historical row.
func (t *TransitDetails) MilestoneAt(m Milestone) *time.Time {
	if m.Validate() != nil {
		return nil
	}
	return t.milestoneAt[m]
}

// MilestoneFlags returns the persisted snapshot of all five milestones.
func (t *TransitDetails) MilestoneFlags() MilestoneFlags {
	return MilestoneFlags{
		OutFromBranch1:         MilestoneFlag{Set: t.milestoneSet[OutFromBranch1], At: t.milestoneAt[OutFromBranch1]},
		DeliveredAtBranch2:     MilestoneFlag{Set: t.milestoneSet[DeliveredAtBranch2], At: t.milestoneAt[DeliveredAtBranch2]},
		OutFromBranch2:         MilestoneFlag{Set: t.milestoneSet[OutFromBranch2], At: t.milestoneAt[OutFromBranch2]},
		OutForDoorDelivery:     MilestoneFlag{Set: t.milestoneSet[OutForDoorDelivery], At: t.milestoneAt[OutForDoorDelivery]},
		DeliveredAtDestination: MilestoneFlag{Set: t.milestoneSet[DeliveredAtDestination], At: t.milestoneAt[DeliveredAtDestination]},
	}
}

// IsDelivered reports whether the record reached the terminal milestone of its path.
func (t *TransitDetails) IsDelivered() bool {
	return t.milestoneSet[t.Terminal()]
}

// Advance sets the given milestone and its timestamp.
//
// Re-invoking an already-set milestone is a no-op, not an error, so duplicate
// client submissions are harmless and the operation is safe to retry. Advancing
// requires every earlier milestone on the record's path to be set; nothing is
// ever cleared.
func (t *TransitDetails) Advance(m Milestone, now time.Time) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if !t.state.IsActive() {
		return ErrTransitNotActive
	}

	idx := -1
	path := t.Path()
	for i, pm := range path {
		if pm == m {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s for %s/%s route",
			ErrMilestoneNotOnRoute, m, t.routeClass, t.deliveryType)
	}

	if t.milestoneSet[m] {
		return nil
	}

	for _, earlier := range path[:idx] {
		if !t.milestoneSet[earlier] {
			return fmt.Errorf("%w: %s requires %s", ErrMilestoneOutOfOrder, m, earlier)
		}
	}

	at := now
	t.milestoneSet[m] = true
	t.milestoneAt[m] = &at
	return nil
}

// Deactivate removes the assignment from its challan, keeping the row for
// audit. Deactivating twice is an error so callers notice double removals.
func (t *TransitDetails) Deactivate(at time.Time, reason string) error {
	if t.state.IsDeactivated() {
		return ErrTransitAlreadyDeactivated
	}

	state, err := DeactivatedState(at, reason)
	if err != nil {
		return err
	}

	t.state = state
	return nil
}

// StatusLabel returns the operator-facing progress label: the label of the
// highest milestone set on the record's path, or "Pending" when none is set.
func (t *TransitDetails) StatusLabel() string {
	return StatusLabelFor(t.routeClass, t.deliveryType, t.MilestoneFlags())
}

// StatusLabelFor computes the progress label straight from a persisted
// milestone snapshot, so read models can label rows without reconstructing
// full records.
func StatusLabelFor(routeClass RouteClass, deliveryType shipment.DeliveryType, flags MilestoneFlags) string {
	set := map[Milestone]bool{
		OutFromBranch1:         flags.OutFromBranch1.Set,
		DeliveredAtBranch2:     flags.DeliveredAtBranch2.Set,
		OutFromBranch2:         flags.OutFromBranch2.Set,
		OutForDoorDelivery:     flags.OutForDoorDelivery.Set,
		DeliveredAtDestination: flags.DeliveredAtDestination.Set,
	}

	path := deliveryPath(routeClass, deliveryType)
	for i := len(path) - 1; i >= 0; i-- {
		m := path[i]
		if !set[m] {
			continue
		}
		if i == len(path)-1 {
			return LabelDelivered
		}
		return milestoneLabel(m)
	}
	return LabelPending
}

func milestoneLabel(m Milestone) string {
	switch m {
	case OutFromBranch1:
		return LabelInTransit
	case DeliveredAtBranch2:
		return LabelAtBranch2
	case OutFromBranch2:
		return LabelOutFromB2
	case OutForDoorDelivery:
		return LabelDoorDelivery
	case DeliveredAtDestination:
		return LabelDelivered
	default:
		return LabelPending
	}
}

func (t *TransitDetails) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *TransitDetails) setGRNo(grNo kernel.GRNo) error {
	if err := grNo.Validate(); err != nil {
		return err
	}
	t.grNo = grNo
	return nil
}

func (t *TransitDetails) setChallan(challanID kernel.UUID, challanNo string) error {
	if err := challanID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("challanID", err)
	}
	if challanNo == "" {
		return errs.NewValueIsRequiredError("challanNo")
	}

	t.challanID = challanID
	t.challanNo = challanNo
	return nil
}

func (t *TransitDetails) setBranches(fromBranchID, toBranchID kernel.UUID) error {
	if err := fromBranchID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("fromBranchID", err)
	}
	if err := toBranchID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("toBranchID", err)
	}

	t.fromBranchID = fromBranchID
	t.toBranchID = toBranchID
	return nil
}

func (t *TransitDetails) setRouting(deliveryType shipment.DeliveryType, routeClass RouteClass) error {
	if err := deliveryType.Validate(); err != nil {
		return err
	}
	if err := routeClass.Validate(); err != nil {
		return err
	}

	t.deliveryType = deliveryType
	t.routeClass = routeClass
	return nil
}
