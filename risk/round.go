package risk

import "github.com/shopspring/decimal"

// round rounds half away from zero at the given number of decimals.
func round(x float64, places int32) float64 {
	return decimal.NewFromFloat(x).Round(places).InexactFloat64()
}
