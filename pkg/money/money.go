package money

import "strconv"

// Format renders an amount as a fixed two-decimal string, e.g. 250.0 ->
// "250.00". The Nuvende charge schema requires the value as a string in
// exactly this shape; float serialization would drift ("250", "250.0").
func Format(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}
