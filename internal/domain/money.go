package domain

import "fmt"

// USDToINRPaise is the single authoritative USD→INR conversion rate. Both
// cents and paise are 1/100 of their major unit, so paise = cents × rate
// exactly, with no float step.
const USDToINRPaise int64 = 83

// CentsToPaise converts a USD minor-unit amount to INR minor units.
func CentsToPaise(cents int64) int64 {
	return cents * USDToINRPaise
}

// FormatMinorUnits renders a minor-unit amount as a decimal major-unit
// string with two places, e.g. 6497 → "64.97". This is the only place an
// amount becomes decimal text; all arithmetic stays integer.
func FormatMinorUnits(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d", sign, amount/100, amount%100)
}
