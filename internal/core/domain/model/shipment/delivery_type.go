package shipment

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// DeliveryType describes how a shipment is handed over at its destination.
// Door-delivery shipments pass through an extra "out for door delivery"
// milestone; godown-delivery shipments are collected from the branch godown
// and skip it.
type DeliveryType int

const (
	// DeliveryTypeUnknown represents an invalid or undefined delivery type.
	DeliveryTypeUnknown DeliveryType = iota

	// Godown means the consignee collects the goods at the destination branch godown.
	Godown

	// Door means the goods are carried to the consignee's address.
	Door
)

func getDeliveryTypeStrings() map[DeliveryType]string {
	return map[DeliveryType]string{
		DeliveryTypeUnknown: "unknown",
		Godown:              "godown",
		Door:                "door",
	}
}

// DeliveryTypeFromString parses the wire/database representation of a delivery type.
func DeliveryTypeFromString(s string) (DeliveryType, error) {
	switch s {
	case "godown":
		return Godown, nil
	case "door":
		return Door, nil
	default:
		return DeliveryTypeUnknown, errs.NewValueIsInvalidErrorWithCause(
			"deliveryType", fmt.Errorf("%q is not a valid delivery type", s))
	}
}

// Validate checks if the DeliveryType value is valid.
func (d DeliveryType) Validate() error {
	if d != Godown && d != Door {
		return errs.NewValueIsInvalidErrorWithCause(
			"deliveryType", fmt.Errorf("%d is not a valid delivery type", d))
	}
	return nil
}

// String returns the canonical name of the delivery type.
func (d DeliveryType) String() string {
	if str, ok := getDeliveryTypeStrings()[d]; ok {
		return str
	}
	return "unknown"
}
