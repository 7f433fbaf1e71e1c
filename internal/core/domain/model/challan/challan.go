package challan

import (
	"errors"
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var (
	// ErrChallanIsNotConstructed is returned when a Challan instance was not created
	// through NewChallan or RestoreChallan.
	ErrChallanIsNotConstructed = errors.New("Challan must be created via NewChallan constructor")

	// ErrChallanLocked is returned for any attempted mutation of a dispatched
	// challan: assignment, removal and milestone changes are all frozen once the
	// truck has left. The caller must surface this to the operator; it is never
	// retried automatically.
	ErrChallanLocked = errors.New("challan is dispatched and locked for changes")

	// ErrChallanAlreadyDispatched is returned when dispatching a challan twice.
	ErrChallanAlreadyDispatched = errors.New("challan is already dispatched")

	// ErrChallanInactive is returned when mutating a soft-deleted challan.
	ErrChallanInactive = errors.New("challan is inactive")
)

// Challan is a loading manifest: one truck trip from an origin branch towards a
// destination branch, carrying a batch of shipments. The transit engine owns
// the running bilty count and the dispatch transition; everything else on the
// manifest (truck, driver, owner) is reference data captured at creation.
//
// Invariants:
//   - TotalBiltyCount mirrors the number of active transit records that
//     reference this challan
//   - Once IsDispatched is set, no assignment, removal or milestone change may
//     touch the challan or its transit records
type Challan struct {
	id              kernel.UUID
	challanNo       string
	fromBranchID    kernel.UUID
	toBranchID      kernel.UUID
	truckNo         string
	driverName      string
	ownerName       string
	totalBiltyCount int
	isActive        bool
	isDispatched    bool

	guard guard.ConstructorGuard
}

// NewChallan creates an empty, undispatched challan with the given manifest data.
// The challan number comes from a ChallanBook numbering sequence.
func NewChallan(
	id kernel.UUID,
	challanNo string,
	fromBranchID kernel.UUID,
	toBranchID kernel.UUID,
	truckNo string,
	driverName string,
	ownerName string,
) (*Challan, error) {
	c := &Challan{
		isActive: true,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setChallanNo(challanNo),
		c.setBranches(fromBranchID, toBranchID),
		c.setTruckNo(truckNo),
	); err != nil {
		return nil, err
	}

	c.driverName = driverName
	c.ownerName = ownerName
	return c, nil
}

// RestoreChallan reconstructs a challan from persistence, including its count,
// active flag and dispatch flag.
func RestoreChallan(
	id kernel.UUID,
	challanNo string,
	fromBranchID kernel.UUID,
	toBranchID kernel.UUID,
	truckNo string,
	driverName string,
	ownerName string,
	totalBiltyCount int,
	isActive bool,
	isDispatched bool,
) (*Challan, error) {
	c, err := NewChallan(id, challanNo, fromBranchID, toBranchID, truckNo, driverName, ownerName)
	if err != nil {
		return nil, err
	}
	if totalBiltyCount < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("totalBiltyCount",
			fmt.Errorf("%d is negative", totalBiltyCount))
	}

	c.totalBiltyCount = totalBiltyCount
	c.isActive = isActive
	c.isDispatched = isDispatched
	return c, nil
}

// Validate ensures the Challan instance was properly constructed.
func (c *Challan) Validate() error {
	if c == nil {
		return ErrChallanIsNotConstructed
	}
	return c.guard.Validate(ErrChallanIsNotConstructed)
}

// IsEqual compares two challans by their unique identifiers.
func (c *Challan) IsEqual(other *Challan) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the challan's unique identifier.
func (c *Challan) ID() kernel.UUID {
	return c.id
}

// ChallanNo returns the generated manifest number.
func (c *Challan) ChallanNo() string {
	return c.challanNo
}

// FromBranchID returns the origin branch of the trip.
func (c *Challan) FromBranchID() kernel.UUID {
	return c.fromBranchID
}

// ToBranchID returns the destination branch of the trip.
func (c *Challan) ToBranchID() kernel.UUID {
	return c.toBranchID
}

// TruckNo returns the truck registration number.
func (c *Challan) TruckNo() string {
	return c.truckNo
}

// DriverName returns the driver's name as captured on the manifest.
func (c *Challan) DriverName() string {
	return c.driverName
}

// OwnerName returns the truck owner's name as captured on the manifest.
func (c *Challan) OwnerName() string {
	return c.ownerName
}

// TotalBiltyCount returns the running count of assigned shipments.
func (c *Challan) TotalBiltyCount() int {
	return c.totalBiltyCount
}

// IsActive reports whether the challan has not been soft-deleted.
func (c *Challan) IsActive() bool {
	return c.isActive
}

// IsDispatched reports whether the dispatch lock is set.
func (c *Challan) IsDispatched() bool {
	return c.isDispatched
}

// EnsureMutable returns ErrChallanLocked when the challan is dispatched and
// ErrChallanInactive when it is soft-deleted. Every engine mutation checks this
// before touching the challan or its transit records.
func (c *Challan) EnsureMutable() error {
	if !c.isActive {
		return ErrChallanInactive
	}
	if c.isDispatched {
		return ErrChallanLocked
	}
	return nil
}

// AddBilties increments the running count by the size of an assignment batch.
func (c *Challan) AddBilties(n int) error {
	if err := c.EnsureMutable(); err != nil {
		return err
	}
	if n <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("n", fmt.Errorf("%d is not greater than 0", n))
	}

	c.totalBiltyCount += n
	return nil
}

// RemoveBilty decrements the running count for one removed transit record.
// The count floors at zero to absorb historical drift instead of going negative.
func (c *Challan) RemoveBilty() error {
	if err := c.EnsureMutable(); err != nil {
		return err
	}

	if c.totalBiltyCount > 0 {
		c.totalBiltyCount--
	}
	return nil
}

// Dispatch sets the dispatch lock. After this no assignment, removal or
// milestone change may touch the challan. Dispatching twice is an error.
func (c *Challan) Dispatch() error {
	if !c.isActive {
		return ErrChallanInactive
	}
	if c.isDispatched {
		return ErrChallanAlreadyDispatched
	}

	c.isDispatched = true
	return nil
}

// CorrectBiltyCount overwrites the running count with the value recomputed from
// live transit records. Reconciliation repairs count drift on dispatched
// challans too, so this deliberately does not go through EnsureMutable.
func (c *Challan) CorrectBiltyCount(n int) error {
	if n < 0 {
		return errs.NewValueIsInvalidErrorWithCause("n", fmt.Errorf("%d is negative", n))
	}

	c.totalBiltyCount = n
	return nil
}

func (c *Challan) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Challan) setChallanNo(challanNo string) error {
	if challanNo == "" {
		return errs.NewValueIsRequiredError("challanNo")
	}
	c.challanNo = challanNo
	return nil
}

func (c *Challan) setBranches(fromBranchID, toBranchID kernel.UUID) error {
	if err := fromBranchID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("fromBranchID", err)
	}
	if err := toBranchID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("toBranchID", err)
	}
	if fromBranchID.IsEqual(toBranchID) {
		return errs.NewValueIsInvalidErrorWithCause("toBranchID",
			errors.New("origin and destination branch are the same"))
	}

	c.fromBranchID = fromBranchID
	c.toBranchID = toBranchID
	return nil
}

func (c *Challan) setTruckNo(truckNo string) error {
	if truckNo == "" {
		return errs.NewValueIsRequiredError("truckNo")
	}
	c.truckNo = truckNo
	return nil
}
