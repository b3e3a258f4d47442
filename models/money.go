package models

// Money is a VND amount in whole dong. VND has no minor unit, so integer
// arithmetic is exact for the percentage discounts used across the catalog.
type Money = int64

// ApplyPercent returns price reduced by pct percent, truncated toward zero.
func ApplyPercent(price Money, pct int) Money {
	if pct <= 0 {
		return price
	}
	if pct >= 100 {
		return 0
	}
	return price * Money(100-pct) / 100
}

// PercentOf returns pct percent of amount.
func PercentOf(amount Money, pct int) Money {
	if pct <= 0 {
		return 0
	}
	return amount * Money(pct) / 100
}
