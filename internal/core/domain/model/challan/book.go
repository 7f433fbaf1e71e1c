package challan

import (
	"errors"
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

// ErrChallanBookIsNotConstructed is returned when a ChallanBook instance was not
// created through NewChallanBook or RestoreChallanBook.
var ErrChallanBookIsNotConstructed = errors.New("ChallanBook must be created via NewChallanBook constructor")

// maxPadWidth bounds the zero-padding of generated numbers; wider than this is
// certainly a data-entry mistake.
const maxPadWidth = 12

// ChallanBook is a numbering sequence for challans on one origin→destination
// branch lane. Numbers are formatted as prefix + zero-padded counter + postfix
// ("JPR-000042/A"). The counter only moves forward; consuming a number and
// persisting the book happen in the same transaction as the challan insert.
type ChallanBook struct {
	id           kernel.UUID
	fromBranchID kernel.UUID
	toBranchID   kernel.UUID
	prefix       string
	postfix      string
	padWidth     int
	nextCounter  int

	guard guard.ConstructorGuard
}

// NewChallanBook creates a numbering sequence starting at 1.
func NewChallanBook(
	id kernel.UUID,
	fromBranchID kernel.UUID,
	toBranchID kernel.UUID,
	prefix string,
	postfix string,
	padWidth int,
) (*ChallanBook, error) {
	return RestoreChallanBook(id, fromBranchID, toBranchID, prefix, postfix, padWidth, 1)
}

// RestoreChallanBook reconstructs a numbering sequence from persistence.
func RestoreChallanBook(
	id kernel.UUID,
	fromBranchID kernel.UUID,
	toBranchID kernel.UUID,
	prefix string,
	postfix string,
	padWidth int,
	nextCounter int,
) (*ChallanBook, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := fromBranchID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("fromBranchID", err)
	}
	if err := toBranchID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("toBranchID", err)
	}
	if padWidth < 1 || padWidth > maxPadWidth {
		return nil, errs.NewValueIsOutOfRangeError("padWidth", padWidth, 1, maxPadWidth)
	}
	if nextCounter < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause("nextCounter",
			fmt.Errorf("%d is not greater than 0", nextCounter))
	}

	return &ChallanBook{
		id:           id,
		fromBranchID: fromBranchID,
		toBranchID:   toBranchID,
		prefix:       prefix,
		postfix:      postfix,
		padWidth:     padWidth,
		nextCounter:  nextCounter,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the ChallanBook instance was properly constructed.
func (b *ChallanBook) Validate() error {
	if b == nil {
		return ErrChallanBookIsNotConstructed
	}
	return b.guard.Validate(ErrChallanBookIsNotConstructed)
}

// ID returns the book's unique identifier.
func (b *ChallanBook) ID() kernel.UUID {
	return b.id
}

// FromBranchID returns the origin branch of the lane this book numbers.
func (b *ChallanBook) FromBranchID() kernel.UUID {
	return b.fromBranchID
}

// ToBranchID returns the destination branch of the lane this book numbers.
// Assignments routed through this book inherit it as their transit destination.
func (b *ChallanBook) ToBranchID() kernel.UUID {
	return b.toBranchID
}

// Prefix returns the literal prefix of generated numbers.
func (b *ChallanBook) Prefix() string {
	return b.prefix
}

// Postfix returns the literal postfix of generated numbers.
func (b *ChallanBook) Postfix() string {
	return b.postfix
}

// PadWidth returns the zero-padding width of the counter segment.
func (b *ChallanBook) PadWidth() int {
	return b.padWidth
}

// NextCounter returns the counter value the next generated number will use.
func (b *ChallanBook) NextCounter() int {
	return b.nextCounter
}

// NextChallanNo formats the next number in the sequence and advances the counter.
func (b *ChallanBook) NextChallanNo() (string, error) {
	if err := b.Validate(); err != nil {
		return "", err
	}

	challanNo := fmt.Sprintf("%s%0*d%s", b.prefix, b.padWidth, b.nextCounter, b.postfix)
	b.nextCounter++
	return challanNo, nil
}
