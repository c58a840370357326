package domain

import "math"

// RoundMoney rounds a monetary amount to 2 decimal places, half-up
func RoundMoney(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

// CalculateTotal computes the reservation total: hourly rate multiplied by the
// duration in fractional hours. The result is frozen on the reservation at
// creation time; later rate changes never affect it.
func CalculateTotal(pricePerHour float64, interval Interval) float64 {
	hours := interval.Duration().Seconds() / 3600
	return RoundMoney(pricePerHour * hours)
}
