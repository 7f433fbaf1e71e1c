package shipment

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// Source distinguishes the two booking channels that produce shipment records.
// Both variants are unified by the transit engine; manual-entry shipments route
// through the direct-destination delivery graph.
type Source int

const (
	// SourceUnknown represents an invalid or undefined source.
	SourceUnknown Source = iota

	// Regular is a shipment booked through the standard bilty entry flow.
	Regular

	// ManualEntry is a shipment keyed in manually, outside the bilty numbering flow.
	ManualEntry
)

// SourceFromString parses the wire/database representation of a booking source.
func SourceFromString(s string) (Source, error) {
	switch s {
	case "regular":
		return Regular, nil
	case "manual-entry":
		return ManualEntry, nil
	default:
		return SourceUnknown, errs.NewValueIsInvalidErrorWithCause(
			"source", fmt.Errorf("%q is not a valid shipment source", s))
	}
}

// Validate checks if the Source value is valid.
func (s Source) Validate() error {
	if s != Regular && s != ManualEntry {
		return errs.NewValueIsInvalidErrorWithCause(
			"source", fmt.Errorf("%d is not a valid shipment source", s))
	}
	return nil
}

// String returns the canonical name of the source.
func (s Source) String() string {
	switch s {
	case Regular:
		return "regular"
	case ManualEntry:
		return "manual-entry"
	default:
		return "unknown"
	}
}

// Stage is the data-entry lifecycle of a shipment record. Only Saved shipments
// are candidates for loading; Draft records are still being edited.
type Stage int

const (
	// StageUnknown represents an invalid or undefined stage.
	StageUnknown Stage = iota

	// Draft is a partially entered record, invisible to the transit engine.
	Draft

	// Saved is a completed record eligible for challan assignment.
	Saved
)

// StageFromString parses the wire/database representation of a lifecycle stage.
func StageFromString(s string) (Stage, error) {
	switch s {
	case "draft":
		return Draft, nil
	case "saved":
		return Saved, nil
	default:
		return StageUnknown, errs.NewValueIsInvalidErrorWithCause(
			"stage", fmt.Errorf("%q is not a valid shipment stage", s))
	}
}

// Validate checks if the Stage value is valid.
func (s Stage) Validate() error {
	if s != Draft && s != Saved {
		return errs.NewValueIsInvalidErrorWithCause(
			"stage", fmt.Errorf("%d is not a valid shipment stage", s))
	}
	return nil
}

// String returns the canonical name of the stage.
func (s Stage) String() string {
	switch s {
	case Draft:
		return "draft"
	case Saved:
		return "saved"
	default:
		return "unknown"
	}
}
