package convert

import (
	"math"
)

func OneDecimal(number float64) float64 {
	return RoundFloat64(number, 1)
}

func TwoDecimals(number float64) float64 {
	return RoundFloat64(number, 2)
}

func RoundFloat64(number float64, decimals int) float64 {
	return math.Round(number*math.Pow10(int(decimals))) / math.Pow10(int(decimals))
}

// MWhToKWhPrice converts a market price in EUR/MWh to EUR/kWh.
func MWhToKWhPrice(pricePerMWh float64) float64 {
	return pricePerMWh / 1000.0
}
