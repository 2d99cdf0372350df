package calculations

import (
	"math"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }

func TestCalculateSchedule(t *testing.T) {
	tests := []struct {
		name  string
		cfg   LoanConfig
		check func(*testing.T, *ScheduleResult)
	}{
		{
			name: "non-indexed annuity first month interest",
			cfg: LoanConfig{
				LoanAmount:         10_000_000,
				AnnualInterestRate: 0.08,
				LoanTermYears:      20,
				LoanType:           NonIndexedAnnuity,
			},
			check: func(t *testing.T, result *ScheduleResult) {
				if len(result.Schedule) != 240 {
					t.Fatalf("expected 240 months, got %d", len(result.Schedule))
				}
				first := result.Schedule[0]
				if first.Interest != 66_666.67 {
					t.Errorf("expected first interest 66666.67, got %.2f", first.Interest)
				}
				last := result.Schedule[len(result.Schedule)-1]
				if last.Balance != 0 {
					t.Errorf("expected final balance 0, got %.2f", last.Balance)
				}
			},
		},
		{
			name: "annuity principal sums to loan amount",
			cfg: LoanConfig{
				LoanAmount:         25_000_000,
				AnnualInterestRate: 0.045,
				LoanTermYears:      20,
				LoanType:           NonIndexedAnnuity,
			},
			check: func(t *testing.T, result *ScheduleResult) {
				sum := 0.0
				for _, e := range result.Schedule {
					sum += e.Principal
				}
				if math.Abs(sum-25_000_000) > 1.0 {
					t.Errorf("expected principal sum 25000000, got %.2f", sum)
				}
			},
		},
		{
			name: "equal principal constant slice",
			cfg: LoanConfig{
				LoanAmount:         12_000_000,
				AnnualInterestRate: 0.05,
				LoanTermYears:      10,
				LoanType:           EqualPrincipal,
			},
			check: func(t *testing.T, result *ScheduleResult) {
				if len(result.Schedule) != 120 {
					t.Fatalf("expected 120 months, got %d", len(result.Schedule))
				}
				for _, e := range result.Schedule {
					if math.Abs(e.Principal-100_000) > 0.01 {
						t.Fatalf("month %d: expected principal 100000, got %.2f", e.Month, e.Principal)
					}
				}
			},
		},
		{
			name: "zero rate degenerates to straight-line",
			cfg: LoanConfig{
				LoanAmount:         1_200_000,
				AnnualInterestRate: 0,
				LoanTermYears:      10,
				LoanType:           NonIndexedAnnuity,
			},
			check: func(t *testing.T, result *ScheduleResult) {
				first := result.Schedule[0]
				if first.RequiredPayment != 10_000 {
					t.Errorf("expected payment 10000, got %.2f", first.RequiredPayment)
				}
				if result.Summary.TotalInterest != 0 {
					t.Errorf("expected zero interest, got %.2f", result.Summary.TotalInterest)
				}
			},
		},
		{
			name: "indexed annuity inflates balance before interest",
			cfg: LoanConfig{
				LoanAmount:          30_000_000,
				AnnualInterestRate:  0.035,
				AnnualInflationRate: 0.04,
				LoanTermYears:       25,
				LoanType:            IndexedAnnuity,
			},
			check: func(t *testing.T, result *ScheduleResult) {
				if len(result.Schedule) != 300 {
					t.Fatalf("expected 300 months, got %d", len(result.Schedule))
				}
				for _, e := range result.Schedule {
					if e.Balance > 0 && e.InflationAmount <= 0 {
						t.Fatalf("month %d: expected positive inflation, got %.2f", e.Month, e.InflationAmount)
					}
					if e.Balance < 0 {
						t.Fatalf("month %d: negative balance %.2f", e.Month, e.Balance)
					}
				}
				if result.Summary.TotalInflation <= 0 {
					t.Error("expected positive total inflation")
				}
				if result.Schedule[len(result.Schedule)-1].Balance != 0 {
					t.Error("expected loan repaid at end of term")
				}
			},
		},
		{
			name: "fixed legacy policy shortens term with extra payments",
			cfg: LoanConfig{
				LoanAmount:         10_000_000,
				AnnualInterestRate: 0.06,
				LoanTermYears:      20,
				LoanType:           NonIndexedAnnuity,
				ExtraPayment:       50_000,
				PaymentPolicy:      PolicyFixedLegacy,
			},
			check: func(t *testing.T, result *ScheduleResult) {
				if len(result.Schedule) >= 240 {
					t.Errorf("expected shortened term, got %d months", len(result.Schedule))
				}
				if result.Schedule[len(result.Schedule)-1].Balance != 0 {
					t.Error("expected loan repaid")
				}
			},
		},
		{
			name: "accelerated payoff flag selects fixed legacy",
			cfg: LoanConfig{
				LoanAmount:         10_000_000,
				AnnualInterestRate: 0.06,
				LoanTermYears:      20,
				LoanType:           NonIndexedAnnuity,
				ExtraPayment:       50_000,
				AcceleratedPayoff:  true,
			},
			check: func(t *testing.T, result *ScheduleResult) {
				if len(result.Schedule) >= 240 {
					t.Errorf("expected shortened term, got %d months", len(result.Schedule))
				}
			},
		},
		{
			name: "fixed payment replaces required payment and manual extra",
			cfg: LoanConfig{
				LoanAmount:         10_000_000,
				AnnualInterestRate: 0.04,
				LoanTermYears:      30,
				LoanType:           NonIndexedAnnuity,
				ExtraPayment:       20_000,
				FixedPayment:       100_000,
			},
			check: func(t *testing.T, result *ScheduleResult) {
				first := result.Schedule[0]
				if first.RequiredPayment != 100_000 {
					t.Errorf("expected payment 100000, got %.2f", first.RequiredPayment)
				}
				if first.ManualExtra != 0 {
					t.Errorf("expected manual extra zeroed, got %.2f", first.ManualExtra)
				}
				if first.TotalPaymentToLoan != 100_000 {
					t.Errorf("expected total to loan 100000, got %.2f", first.TotalPaymentToLoan)
				}
			},
		},
		{
			name: "runaway configuration stops at the period cap",
			cfg: LoanConfig{
				LoanAmount:         10_000_000,
				AnnualInterestRate: 0.10,
				LoanTermYears:      30,
				LoanType:           NonIndexedAnnuity,
				ExtraPayment:       -20_000,
				PaymentPolicy:      PolicyFixedLegacy,
			},
			check: func(t *testing.T, result *ScheduleResult) {
				if len(result.Schedule) != MaxScheduleMonths {
					t.Errorf("expected %d months, got %d", MaxScheduleMonths, len(result.Schedule))
				}
				last := result.Schedule[len(result.Schedule)-1]
				if last.Balance <= 0 {
					t.Error("expected unpaid balance at the cap")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateSchedule(tt.cfg)
			if result == nil {
				t.Fatal("result is nil")
			}
			if len(result.Schedule) > MaxScheduleMonths {
				t.Fatalf("schedule exceeds cap: %d months", len(result.Schedule))
			}
			if result.Summary.TermMonths != len(result.Schedule) {
				t.Errorf("summary term %d != schedule length %d", result.Summary.TermMonths, len(result.Schedule))
			}
			tt.check(t, result)
		})
	}
}

func TestCalculateScheduleInvalidConfig(t *testing.T) {
	if got := CalculateSchedule(LoanConfig{LoanAmount: 0, LoanTermYears: 10, LoanType: NonIndexedAnnuity}); got != nil {
		t.Error("expected nil for zero loan amount")
	}
	if got := CalculateSchedule(LoanConfig{LoanAmount: -1, LoanTermYears: 10, LoanType: NonIndexedAnnuity}); got != nil {
		t.Error("expected nil for negative loan amount")
	}
	if got := CalculateSchedule(LoanConfig{LoanAmount: 1_000_000, LoanTermYears: 0, LoanType: NonIndexedAnnuity}); got != nil {
		t.Error("expected nil for zero term")
	}
}

func TestCalculateScheduleRentalBlending(t *testing.T) {
	t.Run("rent covers payment, surplus becomes extra principal", func(t *testing.T) {
		cfg := LoanConfig{
			LoanAmount:         10_000_000,
			AnnualInterestRate: 0.04,
			LoanTermYears:      25,
			LoanType:           NonIndexedAnnuity,
			FixedPayment:       150_000,
			RentalIncome: &RentalConfig{
				GrossRent:   200_000,
				TaxRate:     floatPtr(0),
				VacancyRate: floatPtr(0),
				ApplyToLoan: true,
			},
		}
		result := CalculateSchedule(cfg)
		if result == nil {
			t.Fatal("result is nil")
		}
		first := result.Schedule[0]
		if first.RentalContribution != 150_000 {
			t.Errorf("expected rental contribution 150000, got %.2f", first.RentalContribution)
		}
		if first.RentBasedExtra != 50_000 {
			t.Errorf("expected rent-based extra 50000, got %.2f", first.RentBasedExtra)
		}
		if first.UserOutOfPocket != 0 {
			t.Errorf("expected zero out of pocket, got %.2f", first.UserOutOfPocket)
		}
	})

	t.Run("user pays only manual extra when rent covers payment", func(t *testing.T) {
		cfg := LoanConfig{
			LoanAmount:         20_000_000,
			AnnualInterestRate: 0.04,
			LoanTermYears:      40,
			LoanType:           NonIndexedAnnuity,
			ExtraPayment:       5_000,
			RentalIncome: &RentalConfig{
				GrossRent:   120_000,
				ApplyToLoan: true,
			},
		}
		result := CalculateSchedule(cfg)
		if result == nil {
			t.Fatal("result is nil")
		}
		first := result.Schedule[0]
		if first.RentBasedExtra <= 0 {
			t.Fatalf("expected rent surplus, got %.2f", first.RentBasedExtra)
		}
		if first.UserOutOfPocket != first.ManualExtra {
			t.Errorf("expected out of pocket %.2f to equal manual extra %.2f",
				first.UserOutOfPocket, first.ManualExtra)
		}
	})

	t.Run("partial rent reduces the user's share", func(t *testing.T) {
		cfg := LoanConfig{
			LoanAmount:         20_000_000,
			AnnualInterestRate: 0.08,
			LoanTermYears:      15,
			LoanType:           NonIndexedAnnuity,
			RentalIncome: &RentalConfig{
				GrossRent:   100_000,
				TaxRate:     floatPtr(0),
				VacancyRate: floatPtr(0),
				ApplyToLoan: true,
			},
		}
		result := CalculateSchedule(cfg)
		if result == nil {
			t.Fatal("result is nil")
		}
		first := result.Schedule[0]
		if first.RentalContribution != 100_000 {
			t.Errorf("expected rental contribution 100000, got %.2f", first.RentalContribution)
		}
		want := first.RequiredPayment - 100_000
		if math.Abs(first.UserOutOfPocket-want) > 0.01 {
			t.Errorf("expected out of pocket %.2f, got %.2f", want, first.UserOutOfPocket)
		}
	})

	t.Run("rental window closes after the configured duration", func(t *testing.T) {
		cfg := LoanConfig{
			LoanAmount:         10_000_000,
			AnnualInterestRate: 0.05,
			LoanTermYears:      20,
			LoanType:           NonIndexedAnnuity,
			RentalIncome: &RentalConfig{
				GrossRent:            90_000,
				ApplyToLoan:          true,
				RentalDurationMonths: 12,
			},
		}
		result := CalculateSchedule(cfg)
		if result == nil {
			t.Fatal("result is nil")
		}
		if result.Schedule[11].RentalContribution <= 0 {
			t.Error("expected rental contribution in month 12")
		}
		if result.Schedule[12].RentalContribution != 0 {
			t.Errorf("expected no rental contribution in month 13, got %.2f",
				result.Schedule[12].RentalContribution)
		}
	})
}

func TestCalculateScheduleFees(t *testing.T) {
	cfg := LoanConfig{
		LoanAmount:         10_000_000,
		AnnualInterestRate: 0.05,
		LoanTermYears:      10,
		MonthlyFee:         950,
		LoanType:           NonIndexedAnnuity,
	}
	result := CalculateSchedule(cfg)
	if result == nil {
		t.Fatal("result is nil")
	}
	wantFees := 950.0 * 120
	if math.Abs(result.Summary.TotalFees-wantFees) > 0.01 {
		t.Errorf("expected total fees %.2f, got %.2f", wantFees, result.Summary.TotalFees)
	}
	if result.Summary.TotalPaidByUser <= result.Summary.TotalInterest {
		t.Error("user total should cover interest and principal")
	}
	diff := result.Summary.TotalPaidByUser - result.Summary.TotalPaidToLoan
	if math.Abs(diff) > 0.01 {
		t.Errorf("without rent, user and loan totals should match; diff %.2f", diff)
	}
}

func TestCompareLoanTypes(t *testing.T) {
	cfg := LoanConfig{
		LoanAmount:          30_000_000,
		AnnualInterestRate:  0.04,
		AnnualInflationRate: 0.035,
		LoanTermYears:       25,
	}
	result := CompareLoanTypes(cfg)
	if result == nil {
		t.Fatal("result is nil")
	}
	if result.Comparison.TotalPaidDiff <= 0 {
		t.Errorf("indexed loan should cost more in nominal terms, diff %.2f", result.Comparison.TotalPaidDiff)
	}
	if result.Comparison.CheaperType != NonIndexedAnnuity {
		t.Errorf("expected non-indexed cheaper, got %s", result.Comparison.CheaperType)
	}
	if result.Indexed.Summary.TotalInflation <= 0 {
		t.Error("indexed schedule should accrue inflation")
	}
	if result.NonIndexed.Summary.TotalInflation != 0 {
		t.Error("non-indexed schedule should not accrue inflation")
	}
}
