package calculations

import "math"

// AnnuityPayment computes the level payment that amortizes principal P over
// n monthly periods at monthly rate r. The zero-rate case degenerates to
// straight-line division.
func AnnuityPayment(principal float64, monthlyRate float64, months int) float64 {
	if months <= 0 {
		return principal
	}
	if monthlyRate == 0.0 {
		return principal / float64(months)
	}
	pow := math.Pow(1.0+monthlyRate, float64(months))
	return principal * monthlyRate * pow / (pow - 1.0)
}

// requiredPayment derives the required payment for one month.
//
// balanceAfterInflation is the balance with this month's indexation already
// applied, interest the interest accrued on it, inflationFactor the
// cumulative factor at the start of the month, and remainingMonths counts
// the current month. basePayment is the annuity payment on the original loan
// amount, used by the fixed-legacy policies.
func requiredPayment(cfg LoanConfig, policy PaymentPolicy, balanceAfterInflation, interest float64,
	monthlyRate, inflationFactor, basePayment float64, remainingMonths, totalMonths int) float64 {

	switch cfg.LoanType {
	case EqualPrincipal:
		if policy == PolicyFixedLegacy {
			return cfg.LoanAmount/float64(totalMonths) + interest
		}
		if remainingMonths <= 0 {
			return balanceAfterInflation + interest
		}
		return balanceAfterInflation/float64(remainingMonths) + interest

	case IndexedAnnuity:
		if policy == PolicyFixedLegacy {
			// Constant-indexed annuity: the original payment escalated by the
			// cumulative inflation factor, never re-amortized.
			return basePayment * inflationFactor
		}
		// Recalculating annuity: deflate the balance to real terms,
		// amortize over the remaining term, re-inflate.
		realBalance := balanceAfterInflation / inflationFactor
		return AnnuityPayment(realBalance, monthlyRate, remainingMonths) * inflationFactor

	default: // NonIndexedAnnuity
		if policy == PolicyFixedLegacy {
			return basePayment
		}
		return AnnuityPayment(balanceAfterInflation, monthlyRate, remainingMonths)
	}
}
