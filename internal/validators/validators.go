package validators

import (
	"fmt"

	"github.com/RaxHax/fratak/internal/calculations"
	"github.com/RaxHax/fratak/internal/config"
	"github.com/RaxHax/fratak/pkg/utils"
)

// ValidatePositiveNumber checks that a value is finite and within the
// inclusive range.
func ValidatePositiveNumber(name string, value, minInclusive, maxInclusive float64) error {
	if !utils.IsFinite(value) {
		return fmt.Errorf("%s: value is not a finite number", name)
	}
	if value < minInclusive {
		return fmt.Errorf("%s: value must be >= %g", name, minInclusive)
	}
	if value > maxInclusive {
		return fmt.Errorf("%s: value is too large (> %g)", name, maxInclusive)
	}
	return nil
}

// ValidateIntRange checks that an integer is within the inclusive range.
func ValidateIntRange(name string, value, minInclusive, maxInclusive int) error {
	if value < minInclusive || value > maxInclusive {
		return fmt.Errorf("%s: value must be in range [%d; %d]", name, minInclusive, maxInclusive)
	}
	return nil
}

// CheckLoanConfig validates a loan configuration against the configured
// limits before the engine runs.
func CheckLoanConfig(cfg *config.Config, lc calculations.LoanConfig) error {
	if err := ValidatePositiveNumber("loan_amount", lc.LoanAmount, 1e-9, cfg.MaxLoanAmount); err != nil {
		return err
	}
	if err := ValidateIntRange("loan_term_years", lc.LoanTermYears, 1, cfg.MaxTermYears); err != nil {
		return err
	}
	if err := ValidatePositiveNumber("annual_interest_rate", lc.AnnualInterestRate, 0.0, cfg.MaxRate); err != nil {
		return err
	}
	if err := ValidatePositiveNumber("annual_inflation_rate", lc.AnnualInflationRate, 0.0, cfg.MaxRate); err != nil {
		return err
	}
	switch lc.LoanType {
	case calculations.IndexedAnnuity, calculations.NonIndexedAnnuity, calculations.EqualPrincipal:
	default:
		return fmt.Errorf("loan_type: unknown value %q", lc.LoanType)
	}
	switch lc.PaymentPolicy {
	case "", calculations.PolicyRecalculating, calculations.PolicyFixedLegacy:
	default:
		return fmt.Errorf("payment_policy: unknown value %q", lc.PaymentPolicy)
	}
	if lc.RentalIncome != nil {
		if err := CheckRentalConfig(*lc.RentalIncome); err != nil {
			return err
		}
	}
	return nil
}

// CheckRentalConfig validates a rental configuration.
func CheckRentalConfig(rc calculations.RentalConfig) error {
	if err := ValidatePositiveNumber("gross_rent", rc.GrossRent, 0.0, 1e12); err != nil {
		return err
	}
	if rc.TaxRate != nil {
		if err := ValidatePositiveNumber("tax_rate", *rc.TaxRate, 0.0, 1.0); err != nil {
			return err
		}
	}
	if rc.VacancyRate != nil {
		if err := ValidatePositiveNumber("vacancy_rate", *rc.VacancyRate, 0.0, 1.0); err != nil {
			return err
		}
	}
	if err := ValidatePositiveNumber("operating_costs", rc.OperatingCosts, 0.0, 1e12); err != nil {
		return err
	}
	return nil
}

// CheckInvestmentConfig validates an investment configuration.
func CheckInvestmentConfig(cfg *config.Config, ic calculations.InvestmentConfig) error {
	if err := ValidatePositiveNumber("property_price", ic.PropertyPrice, 1e-9, cfg.MaxLoanAmount); err != nil {
		return err
	}
	if err := ValidatePositiveNumber("down_payment_percent", ic.DownPaymentPercent, 0.0, 100.0); err != nil {
		return err
	}
	if err := ValidateIntRange("holding_years", ic.HoldingYears, 1, cfg.MaxHoldingYears); err != nil {
		return err
	}
	if !utils.IsFinite(ic.AppreciationRate) {
		return fmt.Errorf("appreciation_rate: value is not a finite number")
	}
	if err := ValidatePositiveNumber("selling_cost_rate", ic.SellingCostRate, 0.0, 1.0); err != nil {
		return err
	}
	return nil
}
