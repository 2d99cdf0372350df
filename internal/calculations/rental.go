package calculations

// Default deduction rates for rental income. The tax rate matches the
// Icelandic capital-income tax on 50% of rental revenue.
const (
	DefaultRentalTaxRate     = 0.11
	DefaultRentalVacancyRate = 0.05
)

// NetRent computes the net monthly rental income after tax, vacancy and
// operating-cost deductions, escalated by inflationFactor where the config
// flags ask for it. The result is floored at zero. Pure: identical inputs
// always produce identical output.
func NetRent(r RentalConfig, inflationFactor float64) float64 {
	gross := r.GrossRent
	if r.Indexed {
		gross *= inflationFactor
	}

	costs := r.OperatingCosts
	if r.IndexCosts {
		costs *= inflationFactor
	}

	taxRate := DefaultRentalTaxRate
	if r.TaxRate != nil {
		taxRate = *r.TaxRate
	}
	vacancyRate := DefaultRentalVacancyRate
	if r.VacancyRate != nil {
		vacancyRate = *r.VacancyRate
	}

	net := gross - gross*taxRate - gross*vacancyRate - costs
	if net < 0 {
		return 0
	}
	return net
}
