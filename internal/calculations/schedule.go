package calculations

import (
	"math"

	"github.com/RaxHax/fratak/pkg/utils"
)

// MaxScheduleMonths is the hard cap on simulated periods. It bounds
// configurations whose payment never exceeds the accrued interest, which
// would otherwise never clear the balance under the fixed-legacy policy.
const MaxScheduleMonths = 600

// balanceEpsilon is the rounding guard below which a balance counts as paid
// off.
const balanceEpsilon = 0.01

// CalculateSchedule produces the month-by-month amortization ledger and its
// summary for one loan configuration. It returns nil when the loan amount or
// term is not positive; callers are expected to pre-validate.
func CalculateSchedule(cfg LoanConfig) *ScheduleResult {
	if cfg.LoanAmount <= 0 || cfg.LoanTermYears <= 0 {
		return nil
	}

	totalMonths := cfg.LoanTermYears * 12
	monthlyRate := cfg.AnnualInterestRate / 12.0

	monthlyInflation := 0.0
	if cfg.LoanType == IndexedAnnuity {
		monthlyInflation = math.Pow(1.0+cfg.AnnualInflationRate, 1.0/12.0) - 1.0
	}

	policy := cfg.Policy()
	basePayment := AnnuityPayment(cfg.LoanAmount, monthlyRate, totalMonths)

	schedule := make([]ScheduleEntry, 0, totalMonths)
	summary := ScheduleSummary{}

	balance := cfg.LoanAmount
	inflationFactor := 1.0
	month := 0

	for {
		if policy == PolicyFixedLegacy {
			if balance <= balanceEpsilon {
				break
			}
		} else if month >= totalMonths {
			break
		}
		if month >= MaxScheduleMonths {
			break
		}
		month++

		balanceStart := balance
		inflationAmount := balance * monthlyInflation
		balanceAfterInflation := balance + inflationAmount
		interest := balanceAfterInflation * monthlyRate
		remainingMonths := totalMonths - month + 1

		payment := requiredPayment(cfg, policy, balanceAfterInflation, interest,
			monthlyRate, inflationFactor, basePayment, remainingMonths, totalMonths)

		manualExtra := cfg.ExtraPayment
		if cfg.IndexExtraPayment {
			manualExtra *= inflationFactor
		}

		// A fixed payment replaces both the required payment and the manual
		// extra when it is the larger amount.
		if cfg.FixedPayment > payment {
			payment = cfg.FixedPayment
			manualExtra = 0.0
		}

		rentalContribution := 0.0
		rentBasedExtra := 0.0
		userOutOfPocket := payment + manualExtra
		if r := cfg.RentalIncome; r != nil && r.ApplyToLoan && rentalActive(r, month) {
			netRent := NetRent(*r, inflationFactor)
			if netRent >= payment {
				rentalContribution = payment
				rentBasedExtra = netRent - payment
				userOutOfPocket = manualExtra
			} else {
				rentalContribution = netRent
				userOutOfPocket = payment - netRent + manualExtra
			}
		}

		totalToLoan := payment + manualExtra + rentBasedExtra
		principalPaid := math.Max(0.0, math.Min(totalToLoan-interest, balanceAfterInflation))

		balance = balanceAfterInflation - principalPaid
		if balance < balanceEpsilon {
			balance = 0.0
		}

		entry := ScheduleEntry{
			Month:              month,
			BalanceStart:       utils.Round2(balanceStart),
			InflationAmount:    utils.Round2(inflationAmount),
			Interest:           utils.Round2(interest),
			Principal:          utils.Round2(principalPaid),
			Fee:                utils.Round2(cfg.MonthlyFee),
			RequiredPayment:    utils.Round2(payment),
			ManualExtra:        utils.Round2(manualExtra),
			RentBasedExtra:     utils.Round2(rentBasedExtra),
			RentalContribution: utils.Round2(rentalContribution),
			TotalPaymentToLoan: utils.Round2(totalToLoan),
			UserOutOfPocket:    utils.Round2(userOutOfPocket),
			Balance:            utils.Round2(balance),
		}
		if !cfg.StartDate.IsZero() {
			entry.Date = cfg.StartDate.AddDate(0, month, 0)
		}
		schedule = append(schedule, entry)

		summary.TotalPaidByUser += userOutOfPocket + cfg.MonthlyFee
		summary.TotalPaidToLoan += totalToLoan + cfg.MonthlyFee
		summary.TotalInterest += interest
		summary.TotalInflation += inflationAmount
		summary.TotalFees += cfg.MonthlyFee
		summary.TotalRentalContribution += rentalContribution + rentBasedExtra

		inflationFactor *= 1.0 + monthlyInflation
	}

	summary.TermMonths = len(schedule)
	if n := len(schedule); n > 0 {
		summary.FirstPayment = utils.Round2(schedule[0].TotalPaymentToLoan + cfg.MonthlyFee)
		summary.LastPayment = utils.Round2(schedule[n-1].TotalPaymentToLoan + cfg.MonthlyFee)
		summary.AverageMonthlyPayment = utils.Round2(summary.TotalPaidToLoan / float64(n))
	}
	summary.TotalPaidByUser = utils.Round2(summary.TotalPaidByUser)
	summary.TotalPaidToLoan = utils.Round2(summary.TotalPaidToLoan)
	summary.TotalInterest = utils.Round2(summary.TotalInterest)
	summary.TotalInflation = utils.Round2(summary.TotalInflation)
	summary.TotalFees = utils.Round2(summary.TotalFees)
	summary.TotalRentalContribution = utils.Round2(summary.TotalRentalContribution)

	return &ScheduleResult{Schedule: schedule, Summary: summary}
}

// rentalActive reports whether the rental window covers the given month.
// A non-positive duration means the window never closes.
func rentalActive(r *RentalConfig, month int) bool {
	return r.RentalDurationMonths <= 0 || month <= r.RentalDurationMonths
}

// CompareLoanTypes runs the same base configuration as an indexed and a
// non-indexed annuity and reports the headline deltas. This is the question
// Icelandic borrowers actually face: verðtryggt or óverðtryggt.
func CompareLoanTypes(cfg LoanConfig) *ComparisonResult {
	indexedCfg := cfg
	indexedCfg.LoanType = IndexedAnnuity
	nonIndexedCfg := cfg
	nonIndexedCfg.LoanType = NonIndexedAnnuity

	indexed := CalculateSchedule(indexedCfg)
	nonIndexed := CalculateSchedule(nonIndexedCfg)
	if indexed == nil || nonIndexed == nil {
		return nil
	}

	cheaper := IndexedAnnuity
	if nonIndexed.Summary.TotalPaidToLoan < indexed.Summary.TotalPaidToLoan {
		cheaper = NonIndexedAnnuity
	}

	return &ComparisonResult{
		Indexed:    indexed,
		NonIndexed: nonIndexed,
		Comparison: Comparison{
			TotalPaidDiff:     utils.Round2(indexed.Summary.TotalPaidToLoan - nonIndexed.Summary.TotalPaidToLoan),
			TotalInterestDiff: utils.Round2(indexed.Summary.TotalInterest - nonIndexed.Summary.TotalInterest),
			FirstPaymentDiff:  utils.Round2(indexed.Summary.FirstPayment - nonIndexed.Summary.FirstPayment),
			CheaperType:       cheaper,
		},
	}
}
