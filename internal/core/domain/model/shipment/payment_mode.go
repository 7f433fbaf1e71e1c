package shipment

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// PaymentMode describes how the freight charges of a shipment are settled.
//
// The mode never changes after booking; the challan summary splits its
// packages/weight/amount totals by this value.
type PaymentMode int

const (
	// PaymentModeUnknown represents an invalid or undefined payment mode.
	// This value (0) helps catch uninitialized PaymentMode values.
	PaymentModeUnknown PaymentMode = iota

	// Paid means freight charges were collected at booking.
	Paid

	// ToPay means freight charges are collected from the consignee on delivery.
	ToPay

	// FreeOfCost means no freight charges apply (sample or internal movement).
	FreeOfCost
)

func getPaymentModeStrings() map[PaymentMode]string {
	return map[PaymentMode]string{
		PaymentModeUnknown: "unknown",
		Paid:               "paid",
		ToPay:              "to-pay",
		FreeOfCost:         "free-of-cost",
	}
}

func getValidPaymentModeStrings() map[PaymentMode]string {
	//nolint:exhaustive // PaymentModeUnknown is intentionally excluded as it's invalid
	return map[PaymentMode]string{
		Paid:       "paid",
		ToPay:      "to-pay",
		FreeOfCost: "free-of-cost",
	}
}

// PaymentModeFromString parses the wire/database representation of a payment mode.
func PaymentModeFromString(s string) (PaymentMode, error) {
	for mode, str := range getValidPaymentModeStrings() {
		if str == s {
			return mode, nil
		}
	}
	return PaymentModeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"paymentMode", fmt.Errorf("%q is not a valid payment mode", s))
}

// Validate checks if the PaymentMode value is valid.
func (m PaymentMode) Validate() error {
	if _, ok := getValidPaymentModeStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"paymentMode", fmt.Errorf("%d is not a valid payment mode", m))
	}
	return nil
}

// String returns the canonical name of the payment mode.
// It implements fmt.Stringer and is safe on any value.
func (m PaymentMode) String() string {
	if str, ok := getPaymentModeStrings()[m]; ok {
		return str
	}
	return "unknown"
}
