package services

// PostMoneyValuation computes a startup's valuation after a capital
// contribution. A missing pre-money valuation counts as zero; no currency
// conversion or sign checks are applied.
func PostMoneyValuation(preMoney *float64, amount int64) float64 {
	pre := 0.0
	if preMoney != nil {
		pre = *preMoney
	}
	return pre + float64(amount)
}
