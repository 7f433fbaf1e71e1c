package services

import (
	"fmt"
	"sort"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/pkg/errs"
)

// SortMode selects the ordering of the availability list.
type SortMode int

const (
	// SortByGR orders purely by the GR number ordering.
	SortByGR SortMode = iota + 1

	// SortByDestination orders by destination city name, then by GR number.
	SortByDestination
)

// Validate checks if the SortMode value is valid.
func (m SortMode) Validate() error {
	if m != SortByGR && m != SortByDestination {
		return errs.NewValueIsInvalidErrorWithCause(
			"sortMode", fmt.Errorf("%d is not a valid sort mode", m))
	}
	return nil
}

// AvailabilityFilter is the domain service that decides which shipments are
// available for loading: shipments from the candidate pool whose GR number is
// not held by any active transit record.
//
// The filter is a pure projection with no side effects. It must run against
// the latest transit state, since exclusivity is a property of current
// assignments rather than of a snapshot: callers re-query after every
// assignment or removal
// and never cache the result across mutations.
type AvailabilityFilter struct{}

// NewAvailabilityFilter creates a new AvailabilityFilter instance.
func NewAvailabilityFilter() AvailabilityFilter {
	return AvailabilityFilter{}
}

// Filter returns the loadable shipments from pool whose GR numbers are absent
// from assignedGRNos, ordered per mode.
//
// Pool entries that are not loadable (draft or cancelled) are dropped rather
// than rejected: the upstream query normally pre-filters them, but the service
// re-checks so a stale pool cannot offer an unloadable shipment.
func (f AvailabilityFilter) Filter(
	pool []*shipment.Shipment,
	assignedGRNos []kernel.GRNo,
	mode SortMode,
) ([]*shipment.Shipment, error) {
	if err := mode.Validate(); err != nil {
		return nil, err
	}

	assigned := make(map[string]struct{}, len(assignedGRNos))
	for _, grNo := range assignedGRNos {
		if err := grNo.Validate(); err != nil {
			return nil, err
		}
		assigned[grNo.String()] = struct{}{}
	}

	available := make([]*shipment.Shipment, 0, len(pool))
	for _, s := range pool {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if !s.IsLoadable() {
			continue
		}
		if _, taken := assigned[s.GRNo().String()]; taken {
			continue
		}
		available = append(available, s)
	}

	sort.SliceStable(available, func(i, j int) bool {
		a, b := available[i], available[j]
		if mode == SortByDestination && a.DestinationCity() != b.DestinationCity() {
			return a.DestinationCity() < b.DestinationCity()
		}
		return a.GRNo().Less(b.GRNo())
	})

	return available, nil
}
