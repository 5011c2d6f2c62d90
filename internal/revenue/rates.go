package revenue

import (
	"github.com/shopspring/decimal"
)

// CreditsForRevenue converts a revenue amount in cents into platform
// credits: floor(dollars * creditsPerDollar).
func CreditsForRevenue(amountCents, creditsPerDollar int64) int64 {
	dollars := decimal.NewFromInt(amountCents).Div(decimal.NewFromInt(100))
	return dollars.Mul(decimal.NewFromInt(creditsPerDollar)).Floor().IntPart()
}

// SalesNeeded returns how many sale records back a payout of
// amountCents: ceil(amountCents / sellerShareCents).
func SalesNeeded(amountCents, sellerShareCents int64) int64 {
	return (amountCents + sellerShareCents - 1) / sellerShareCents
}
