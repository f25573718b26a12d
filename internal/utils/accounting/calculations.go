package accounting

import (
	"github.com/shopspring/decimal"

	"github.com/SscSPs/kz_bookkeeping/internal/core/domain"
)

// Tolerance is the currency minor unit used when comparing accumulated totals.
var Tolerance = decimal.NewFromFloat(0.01)

// WithinTolerance reports whether |a - b| < Tolerance.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(Tolerance)
}

// SignedAmount returns the net of debit and credit seen from the class's
// natural side. A positive result grows the account.
func SignedAmount(class domain.AccountClass, debit, credit decimal.Decimal) decimal.Decimal {
	if class.IsDebitNormal() {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}

// SplitClosing places a net balance on one side using normal-balance polarity.
// For debit-normal classes the excess of debits closes as a debit and a
// shortfall closes as a credit; credit-normal classes mirror this.
func SplitClosing(class domain.AccountClass, debitSide, creditSide decimal.Decimal) (closingDebit, closingCredit decimal.Decimal) {
	natural := SignedAmount(class, debitSide, creditSide)
	onNatural := decimal.Max(natural, decimal.Zero)
	onOpposite := decimal.Max(natural.Neg(), decimal.Zero)
	if class.IsDebitNormal() {
		return onNatural, onOpposite
	}
	return onOpposite, onNatural
}
