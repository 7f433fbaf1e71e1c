package kernel

import (
	"regexp"
	"strings"

	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

// ErrGRNoIsNotConstructed indicates that a GRNo was not created via NewGRNo.
var ErrGRNoIsNotConstructed = errs.NewValueIsRequiredError("GRNo must be created via NewGRNo")

// grPattern splits a GR number into an optional letter prefix, a digit run and
// a remainder. Identifiers without a digit run do not match and are treated as
// malformed by the ordering rules.
var grPattern = regexp.MustCompile(`^([A-Za-z]*)([0-9]+)(.*)$`)

// GRNo is the human-assigned alphanumeric identifier of a shipment ("GR number").
// It is unique among active shipment records and is the key the transit engine
// uses to connect shipments, transit records and availability.
//
// GRNo carries the canonical ordering for shipment lists: the letter prefix is
// compared lexically, the digit run is compared as a number, and any remainder
// is compared lexically. This makes "A10" sort after "A9" instead of between
// "A1" and "A2", and purely numeric identifiers sort before prefixed ones.
//
// GRNo is immutable and safe for concurrent use.
type GRNo struct {
	value string
	guard guard.ConstructorGuard
}

// NewGRNo creates a GRNo from its string form.
// The value must be non-empty after trimming surrounding whitespace.
func NewGRNo(value string) (GRNo, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return GRNo{}, errs.NewValueIsRequiredError("grNo")
	}

	return GRNo{
		value: value,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// String returns the raw GR number.
func (g GRNo) String() string {
	return g.value
}

// IsEqual reports whether two GR numbers are the same identifier.
func (g GRNo) IsEqual(other GRNo) bool {
	return g.value == other.value
}

// Validate ensures the GRNo was created through NewGRNo.
func (g GRNo) Validate() error {
	return g.guard.Validate(ErrGRNoIsNotConstructed)
}

// Compare orders two GR numbers. It returns a negative value when g sorts
// before other, zero when they are equivalent, and a positive value otherwise.
func (g GRNo) Compare(other GRNo) int {
	return CompareGRNos(g.value, other.value)
}

// Less reports whether g sorts before other. Convenience for sort callbacks.
func (g GRNo) Less(other GRNo) bool {
	return g.Compare(other) < 0
}

// CompareGRNos implements the GR ordering over raw strings so the read side can
// sort database rows without reconstructing value objects.
//
// Rules:
//   - Both well-formed (contain a digit run): compare letter prefix lexically,
//     then the digit run as an integer, then the remainder lexically.
//   - One malformed (no digit run): the malformed one sorts after the well-formed one.
//   - Both malformed: plain lexical comparison.
//
// Malformed identifiers sorting last is a recorded policy choice carried over
// from the original numbering scheme, not a validation failure.
func CompareGRNos(a, b string) int {
	ma := grPattern.FindStringSubmatch(a)
	mb := grPattern.FindStringSubmatch(b)

	switch {
	case ma == nil && mb == nil:
		return strings.Compare(a, b)
	case ma == nil:
		return 1
	case mb == nil:
		return -1
	}

	if c := strings.Compare(ma[1], mb[1]); c != 0 {
		return c
	}
	if c := compareDigitRuns(ma[2], mb[2]); c != 0 {
		return c
	}
	return strings.Compare(ma[3], mb[3])
}

// compareDigitRuns compares two runs of decimal digits by numeric value.
// Runs are compared by length after stripping leading zeros, so arbitrarily
// long serials never overflow an integer conversion.
func compareDigitRuns(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")

	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}
