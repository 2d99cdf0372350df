package calculations

import "time"

// LoanType selects the amortization scheme.
type LoanType string

const (
	// IndexedAnnuity is a verðtryggt annuity: the balance is inflated by the
	// price index each month before interest accrues.
	IndexedAnnuity LoanType = "indexed_annuity"
	// NonIndexedAnnuity is a plain level-payment annuity.
	NonIndexedAnnuity LoanType = "non_indexed_annuity"
	// EqualPrincipal repays a constant principal slice each month.
	EqualPrincipal LoanType = "equal_principal"
)

// PaymentPolicy selects how the required payment is derived each month.
type PaymentPolicy string

const (
	// PolicyRecalculating re-amortizes the current balance over the remaining
	// term every month, so extra payments lower future required payments (or,
	// for equal-principal loans, keep the total term fixed).
	PolicyRecalculating PaymentPolicy = "recalculating"
	// PolicyFixedLegacy keeps the payment derived from the original loan
	// amount. Extra payments shorten the term instead; the schedule runs
	// until the balance is cleared.
	PolicyFixedLegacy PaymentPolicy = "fixed_legacy"
)

// RentalConfig describes rental income netted against tax, vacancy and
// operating costs. TaxRate and VacancyRate are pointers so an explicit zero
// survives a JSON round trip; nil means the statutory defaults.
type RentalConfig struct {
	GrossRent            float64  `json:"gross_rent"`
	TaxRate              *float64 `json:"tax_rate,omitempty"`
	VacancyRate          *float64 `json:"vacancy_rate,omitempty"`
	OperatingCosts       float64  `json:"operating_costs"`
	Indexed              bool     `json:"indexed"`
	IndexCosts           bool     `json:"index_costs"`
	ApplyToLoan          bool     `json:"apply_to_loan"`
	RentalDurationMonths int      `json:"rental_duration_months,omitempty"`
}

// LoanConfig is the full configuration for one amortization run.
type LoanConfig struct {
	LoanAmount          float64       `json:"loan_amount"`
	AnnualInterestRate  float64       `json:"annual_interest_rate"`
	AnnualInflationRate float64       `json:"annual_inflation_rate,omitempty"`
	LoanTermYears       int           `json:"loan_term_years"`
	MonthlyFee          float64       `json:"monthly_fee,omitempty"`
	LoanType            LoanType      `json:"loan_type"`
	ExtraPayment        float64       `json:"extra_payment,omitempty"`
	IndexExtraPayment   bool          `json:"index_extra_payment,omitempty"`
	FixedPayment        float64       `json:"fixed_payment,omitempty"`
	RentalIncome        *RentalConfig `json:"rental_income,omitempty"`
	StartDate           time.Time     `json:"start_date,omitempty"`
	PaymentPolicy       PaymentPolicy `json:"payment_policy,omitempty"`
	// AcceleratedPayoff is the historical name for the fixed-legacy policy.
	// It is honored only when PaymentPolicy is empty.
	AcceleratedPayoff bool `json:"accelerated_payoff,omitempty"`
}

// Policy resolves the effective payment policy for this configuration.
func (c LoanConfig) Policy() PaymentPolicy {
	if c.PaymentPolicy != "" {
		return c.PaymentPolicy
	}
	if c.AcceleratedPayoff {
		return PolicyFixedLegacy
	}
	return PolicyRecalculating
}

// ScheduleEntry is one month of the amortization ledger.
type ScheduleEntry struct {
	Month              int       `json:"month"`
	Date               time.Time `json:"date,omitempty"`
	BalanceStart       float64   `json:"balance_start"`
	InflationAmount    float64   `json:"inflation_amount"`
	Interest           float64   `json:"interest"`
	Principal          float64   `json:"principal"`
	Fee                float64   `json:"fee"`
	RequiredPayment    float64   `json:"required_payment"`
	ManualExtra        float64   `json:"manual_extra"`
	RentBasedExtra     float64   `json:"rent_based_extra"`
	RentalContribution float64   `json:"rental_contribution"`
	TotalPaymentToLoan float64   `json:"total_payment_to_loan"`
	UserOutOfPocket    float64   `json:"user_out_of_pocket"`
	Balance            float64   `json:"balance"`
}

// ScheduleSummary aggregates a full schedule.
type ScheduleSummary struct {
	TotalPaidByUser         float64 `json:"total_paid_by_user"`
	TotalPaidToLoan         float64 `json:"total_paid_to_loan"`
	TotalInterest           float64 `json:"total_interest"`
	TotalInflation          float64 `json:"total_inflation"`
	TotalFees               float64 `json:"total_fees"`
	TotalRentalContribution float64 `json:"total_rental_contribution"`
	TermMonths              int     `json:"term_months"`
	FirstPayment            float64 `json:"first_payment"`
	LastPayment             float64 `json:"last_payment"`
	AverageMonthlyPayment   float64 `json:"average_monthly_payment"`
}

// ScheduleResult pairs the ledger with its summary.
type ScheduleResult struct {
	Schedule []ScheduleEntry `json:"schedule"`
	Summary  ScheduleSummary `json:"summary"`
}

// InvestmentConfig describes a property position built on top of a
// generated schedule.
type InvestmentConfig struct {
	PropertyPrice      float64         `json:"property_price"`
	DownPaymentPercent float64         `json:"down_payment_percent"`
	LoanFee            float64         `json:"loan_fee,omitempty"`
	Schedule           *ScheduleResult `json:"schedule"`
	HoldingYears       int             `json:"holding_years"`
	AppreciationRate   float64         `json:"appreciation_rate"`
	SellingCostRate    float64         `json:"selling_cost_rate,omitempty"`
	RentalIncome       *RentalConfig   `json:"rental_income,omitempty"`
}

// YearlyPoint is one row of the equity breakdown.
type YearlyPoint struct {
	Year          int     `json:"year"`
	PropertyValue float64 `json:"property_value"`
	LoanBalance   float64 `json:"loan_balance"`
	Equity        float64 `json:"equity"`
}

// InvestmentMetrics is the investor-facing view of a holding period.
type InvestmentMetrics struct {
	TotalInvested       float64       `json:"total_invested"`
	FuturePropertyValue float64       `json:"future_property_value"`
	LoanBalanceAtSale   float64       `json:"loan_balance_at_sale"`
	SellingCosts        float64       `json:"selling_costs"`
	EquityAtSale        float64       `json:"equity_at_sale"`
	TotalProfit         float64       `json:"total_profit"`
	CashOnCashReturn    float64       `json:"cash_on_cash_return"`
	TotalROI            float64       `json:"total_roi"`
	AnnualizedROI       float64       `json:"annualized_roi"`
	TotalCashInvested   float64       `json:"total_cash_invested"`
	TotalCashFromRent   float64       `json:"total_cash_from_rent"`
	BreakdownByYear     []YearlyPoint `json:"breakdown_by_year"`
}

// Comparison is the headline delta between two schedules of the same loan
// amount under different loan types.
type Comparison struct {
	TotalPaidDiff     float64  `json:"total_paid_diff"`
	TotalInterestDiff float64  `json:"total_interest_diff"`
	FirstPaymentDiff  float64  `json:"first_payment_diff"`
	CheaperType       LoanType `json:"cheaper_type"`
}

// ComparisonResult holds an indexed and a non-indexed schedule computed from
// the same base configuration, with the headline deltas.
type ComparisonResult struct {
	Indexed    *ScheduleResult `json:"indexed"`
	NonIndexed *ScheduleResult `json:"non_indexed"`
	Comparison Comparison      `json:"comparison"`
}
