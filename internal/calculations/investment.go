package calculations

import (
	"math"

	"github.com/RaxHax/fratak/pkg/utils"
)

// CalculateInvestmentMetrics derives the investor's position over the
// holding period from a generated schedule plus property assumptions. It
// returns nil when no schedule is supplied.
func CalculateInvestmentMetrics(cfg InvestmentConfig) *InvestmentMetrics {
	if cfg.Schedule == nil || len(cfg.Schedule.Schedule) == 0 {
		return nil
	}
	schedule := cfg.Schedule.Schedule

	downPayment := cfg.PropertyPrice * cfg.DownPaymentPercent / 100.0
	totalInvested := downPayment + cfg.LoanFee

	futureValue := cfg.PropertyPrice * math.Pow(1.0+cfg.AppreciationRate, float64(cfg.HoldingYears))
	sellingCosts := futureValue * cfg.SellingCostRate
	loanBalanceAtSale := balanceAtMonth(schedule, cfg.HoldingYears*12-1)

	equityAtSale := futureValue - loanBalanceAtSale - sellingCosts
	totalProfit := equityAtSale - totalInvested

	firstYearRent := firstYearRentalIncome(cfg, schedule)
	firstYearOutOfPocket := 0.0
	for i := 0; i < 12 && i < len(schedule); i++ {
		firstYearOutOfPocket += schedule[i].UserOutOfPocket
	}

	cashOnCash := 0.0
	totalROI := 0.0
	annualizedROI := 0.0
	if totalInvested > 0 {
		cashOnCash = (firstYearRent - firstYearOutOfPocket) / totalInvested * 100.0
		totalROI = totalProfit / totalInvested * 100.0
	}
	if cfg.HoldingYears > 0 {
		base := 1.0 + totalROI/100.0
		if base > 0 {
			annualizedROI = (math.Pow(base, 1.0/float64(cfg.HoldingYears)) - 1.0) * 100.0
		} else {
			annualizedROI = -100.0
		}
	}

	totalCashFromRent := 0.0
	holdingMonths := cfg.HoldingYears * 12
	for i := 0; i < holdingMonths && i < len(schedule); i++ {
		totalCashFromRent += schedule[i].RentalContribution + schedule[i].RentBasedExtra
	}
	totalCashInvested := totalInvested
	for i := 0; i < holdingMonths && i < len(schedule); i++ {
		totalCashInvested += schedule[i].UserOutOfPocket + schedule[i].Fee
	}

	years := int(math.Ceil(float64(len(schedule)) / 12.0))
	breakdown := make([]YearlyPoint, 0, years+1)
	for year := 0; year <= years; year++ {
		propertyValue := cfg.PropertyPrice * math.Pow(1.0+cfg.AppreciationRate, float64(year))
		loanBalance := balanceAtMonth(schedule, year*12-1)
		breakdown = append(breakdown, YearlyPoint{
			Year:          year,
			PropertyValue: utils.Round2(propertyValue),
			LoanBalance:   utils.Round2(loanBalance),
			Equity:        utils.Round2(propertyValue - loanBalance),
		})
	}

	return &InvestmentMetrics{
		TotalInvested:       utils.Round2(totalInvested),
		FuturePropertyValue: utils.Round2(futureValue),
		LoanBalanceAtSale:   utils.Round2(loanBalanceAtSale),
		SellingCosts:        utils.Round2(sellingCosts),
		EquityAtSale:        utils.Round2(equityAtSale),
		TotalProfit:         utils.Round2(totalProfit),
		CashOnCashReturn:    utils.Round2(cashOnCash),
		TotalROI:            utils.Round2(totalROI),
		AnnualizedROI:       utils.Round2(annualizedROI),
		TotalCashInvested:   utils.Round2(totalCashInvested),
		TotalCashFromRent:   utils.Round2(totalCashFromRent),
		BreakdownByYear:     breakdown,
	}
}

// balanceAtMonth looks up the post-payment balance at a 0-based month index.
// A negative index means no payment has happened yet, so the pre-payment
// starting balance applies; an index past the end means the loan is repaid.
func balanceAtMonth(schedule []ScheduleEntry, idx int) float64 {
	if len(schedule) == 0 {
		return 0
	}
	if idx < 0 {
		return schedule[0].BalanceStart
	}
	if idx >= len(schedule) {
		return 0
	}
	return schedule[idx].Balance
}

// firstYearRentalIncome sums the rent the schedule actually recorded over
// the first twelve months. When rent was not blended into the loan, the
// rental model is evaluated at the origination factor instead.
func firstYearRentalIncome(cfg InvestmentConfig, schedule []ScheduleEntry) float64 {
	sum := 0.0
	for i := 0; i < 12 && i < len(schedule); i++ {
		sum += schedule[i].RentalContribution + schedule[i].RentBasedExtra
	}
	if sum > 0 {
		return sum
	}
	if cfg.RentalIncome != nil {
		return NetRent(*cfg.RentalIncome, 1.0) * 12.0
	}
	return 0
}
