package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/RaxHax/fratak/internal/calculations"
)

var scheduleHeader = []string{
	"month", "date", "balance_start", "inflation_amount", "interest",
	"principal", "fee", "required_payment", "manual_extra", "rent_based_extra",
	"rental_contribution", "total_payment_to_loan", "user_out_of_pocket",
	"balance",
}

// WriteScheduleCSV renders a schedule to CSV. Numeric fields are written
// exactly as the engine emitted them, not re-derived, so the export round
// trips without loss.
func WriteScheduleCSV(w io.Writer, result *calculations.ScheduleResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(scheduleHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range result.Schedule {
		date := ""
		if !e.Date.IsZero() {
			date = e.Date.Format("2006-01-02")
		}
		record := []string{
			strconv.Itoa(e.Month),
			date,
			num(e.BalanceStart),
			num(e.InflationAmount),
			num(e.Interest),
			num(e.Principal),
			num(e.Fee),
			num(e.RequiredPayment),
			num(e.ManualExtra),
			num(e.RentBasedExtra),
			num(e.RentalContribution),
			num(e.TotalPaymentToLoan),
			num(e.UserOutOfPocket),
			num(e.Balance),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %d: %w", e.Month, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
