package payment

import "autobook/config"

// FeeRateBasisPoints is the default platform cut of every settled payment: 2.5%.
const FeeRateBasisPoints = 250

// ApplicationFee computes the platform fee on an amount in minor currency
// units, rounding half up. 5000 * 2.5% = 125.
func ApplicationFee(amount int64) int64 {
	rate := int64(config.AppConfig.FeeRateBasisPts)
	if rate <= 0 {
		rate = FeeRateBasisPoints
	}
	return (amount*rate + 5000) / 10000
}
