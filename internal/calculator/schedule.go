package calculator

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/finblog/backend/internal/errors"
)

// MaxScheduleYears bounds the horizon of a schedule.
const MaxScheduleYears = 100

func checkScheduleYears(years float64) error {
	if years > MaxScheduleYears {
		return errors.Invalid("years", "schedules cover at most %d years", MaxScheduleYears)
	}
	return nil
}

// GrowthPoint is the state of an investment at the end of a year.
type GrowthPoint struct {
	Year     int             `json:"year"`
	Invested decimal.Decimal `json:"invested"`
	Value    decimal.Decimal `json:"value"`
	Gain     decimal.Decimal `json:"gain"`
}

// AmortizationPoint summarises the installments paid during one year.
type AmortizationPoint struct {
	Year          int             `json:"year"`
	PrincipalPaid decimal.Decimal `json:"principalPaid"`
	InterestPaid  decimal.Decimal `json:"interestPaid"`
	Balance       decimal.Decimal `json:"balance"`
}

// GrowthSchedule returns one point per year for the SIP, lumpsum and ROI
// calculators. A fractional horizon ends with a partial final year.
func GrowthSchedule(kind Kind, in Input) ([]GrowthPoint, error) {
	if kind == KindEMI {
		return nil, errors.Invalid("kind", "emi has an amortization schedule, not a growth schedule")
	}
	if err := checkScheduleYears(in.Years); err != nil {
		return nil, err
	}
	if _, err := Calculate(kind, in); err != nil {
		return nil, err
	}

	years := int(math.Ceil(in.Years))
	points := make([]GrowthPoint, 0, years)
	for y := 1; y <= years; y++ {
		t := math.Min(float64(y), in.Years)
		var fv, invested float64
		if kind == KindSIP {
			fv, invested = sipValue(in.Amount, in.AnnualRatePercent, t*12)
		} else {
			fv, invested = compound(in.Amount, in.AnnualRatePercent, t), in.Amount
		}
		res, err := investmentResult(fv, invested)
		if err != nil {
			return nil, err
		}
		points = append(points, GrowthPoint{
			Year:     y,
			Invested: res.InvestedAmount,
			Value:    res.TotalValue,
			Gain:     res.WealthGained,
		})
	}
	return points, nil
}

// AmortizationSchedule groups the monthly installments of a loan by year.
// The last installment settles whatever balance the rounding left over.
func AmortizationSchedule(in Input) ([]AmortizationPoint, error) {
	if err := checkScheduleYears(in.Years); err != nil {
		return nil, err
	}
	if _, err := EMI(in.Amount, in.AnnualRatePercent, in.Years); err != nil {
		return nil, err
	}

	months := int(math.Ceil(in.Years * 12))
	r := in.AnnualRatePercent / 12 / 100
	installment := emiValue(in.Amount, in.AnnualRatePercent, in.Years*12)
	balance := in.Amount

	var points []AmortizationPoint
	var principalPaid, interestPaid float64
	for m := 1; m <= months; m++ {
		interest := balance * r
		principal := installment - interest
		if m == months || principal > balance {
			principal = balance
		}
		balance -= principal
		principalPaid += principal
		interestPaid += interest

		if m%12 == 0 || m == months {
			points = append(points, AmortizationPoint{
				Year:          (m + 11) / 12,
				PrincipalPaid: wholeUnits(principalPaid),
				InterestPaid:  wholeUnits(interestPaid),
				Balance:       wholeUnits(math.Max(balance, 0)),
			})
			principalPaid, interestPaid = 0, 0
		}
	}
	return points, nil
}

// Schedule dispatches to the schedule matching kind.
func Schedule(kind Kind, in Input) (any, error) {
	if kind == KindEMI {
		return AmortizationSchedule(in)
	}
	return GrowthSchedule(kind, in)
}
