// Package oddsmath converts American odds and measures edge against them.
package oddsmath

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrInvalidOdds is returned for American odds of zero, which have no price.
var ErrInvalidOdds = errors.New("american odds cannot be zero")

// AmericanToImplied returns the break-even probability of an American price.
func AmericanToImplied(odds int) (float64, error) {
	switch {
	case odds > 0:
		return 100 / float64(odds+100), nil
	case odds < 0:
		risk := float64(-odds)
		return risk / (risk + 100), nil
	default:
		return 0, ErrInvalidOdds
	}
}

// AmericanToDecimal returns the total payout per unit staked.
func AmericanToDecimal(odds int) (float64, error) {
	switch {
	case odds > 0:
		return 1 + float64(odds)/100, nil
	case odds < 0:
		return 1 + 100/float64(-odds), nil
	default:
		return 0, ErrInvalidOdds
	}
}

// Edge is the estimated probability minus the price's implied probability.
func Edge(probability, implied float64) float64 {
	return probability - implied
}

// Round rounds half away from zero to places decimals.
func Round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// Round2 rounds to two decimals.
func Round2(v float64) float64 {
	return Round(v, 2)
}
