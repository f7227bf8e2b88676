// Package calculator implements the closed-form time-value-of-money formulas
// behind the blog's SIP, lumpsum, EMI and ROI calculators.
//
// All inputs are an amount, an annual rate in percent and a horizon in years.
// Currency outputs are rounded to whole units; percentages to two decimals.
package calculator

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finblog/backend/internal/errors"
)

// Kind identifies one of the calculators.
type Kind string

const (
	KindSIP     Kind = "sip"
	KindLumpsum Kind = "lumpsum"
	KindEMI     Kind = "emi"
	KindROI     Kind = "roi"
)

// Kinds lists the supported calculators in display order.
var Kinds = []Kind{KindSIP, KindLumpsum, KindEMI, KindROI}

// ParseKind resolves a calculator name, case-insensitively.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", errors.Invalid("kind", "unknown calculator %q", s)
}

// amountField is the name of the amount input as each calculator calls it.
func (k Kind) amountField() string {
	switch k {
	case KindSIP:
		return "monthlyAmount"
	case KindEMI:
		return "loanAmount"
	default:
		return "principal"
	}
}

// Input is the common input triple of every calculator.
type Input struct {
	Amount            float64 `json:"amount"`
	AnnualRatePercent float64 `json:"rate"`
	Years             float64 `json:"years"`
}

// InvestmentResult is the breakdown returned by SIP and lumpsum.
type InvestmentResult struct {
	TotalValue     decimal.Decimal `json:"totalValue"`
	InvestedAmount decimal.Decimal `json:"investedAmount"`
	WealthGained   decimal.Decimal `json:"wealthGained"`
}

// LoanResult is the breakdown returned by EMI.
type LoanResult struct {
	EMI           decimal.Decimal `json:"emi"`
	TotalPayable  decimal.Decimal `json:"totalPayable"`
	TotalInterest decimal.Decimal `json:"totalInterest"`
}

// ROIResult extends the lumpsum breakdown with the annualized return.
type ROIResult struct {
	InvestmentResult
	AnnualizedReturnPercent decimal.Decimal `json:"annualizedReturnPercent"`
}

// SIP computes the future value of a monthly contribution made at the start
// of every month (annuity due).
func SIP(monthlyAmount, annualRatePercent, years float64) (InvestmentResult, error) {
	if err := validate(KindSIP, monthlyAmount, annualRatePercent, years); err != nil {
		return InvestmentResult{}, err
	}
	fv, invested := sipValue(monthlyAmount, annualRatePercent, years*12)
	return investmentResult(fv, invested)
}

// Lumpsum computes a one-off investment compounded annually.
func Lumpsum(principal, annualRatePercent, years float64) (InvestmentResult, error) {
	if err := validate(KindLumpsum, principal, annualRatePercent, years); err != nil {
		return InvestmentResult{}, err
	}
	return investmentResult(compound(principal, annualRatePercent, years), principal)
}

// EMI computes the equated monthly installment of an amortizing loan.
// TotalPayable is the rounded installment times the number of months.
func EMI(loanAmount, annualRatePercent, years float64) (LoanResult, error) {
	if err := validate(KindEMI, loanAmount, annualRatePercent, years); err != nil {
		return LoanResult{}, err
	}
	n := years * 12
	installment := emiValue(loanAmount, annualRatePercent, n)
	if err := checkFinite(installment); err != nil {
		return LoanResult{}, err
	}

	emi := wholeUnits(installment)
	totalPayable := emi.Mul(decimal.NewFromFloat(n)).Round(0)
	return LoanResult{
		EMI:           emi,
		TotalPayable:  totalPayable,
		TotalInterest: totalPayable.Sub(wholeUnits(loanAmount)),
	}, nil
}

// ROI computes the lumpsum projection together with its annualized return.
func ROI(principal, annualRatePercent, years float64) (ROIResult, error) {
	if err := validate(KindROI, principal, annualRatePercent, years); err != nil {
		return ROIResult{}, err
	}
	fv := compound(principal, annualRatePercent, years)
	res, err := investmentResult(fv, principal)
	if err != nil {
		return ROIResult{}, err
	}
	annualized := (math.Pow(fv/principal, 1/years) - 1) * 100
	if err := checkFinite(annualized); err != nil {
		return ROIResult{}, err
	}
	return ROIResult{
		InvestmentResult:        res,
		AnnualizedReturnPercent: decimal.NewFromFloat(annualized).Round(2),
	}, nil
}

// Calculate dispatches to the calculator named by kind.
func Calculate(kind Kind, in Input) (any, error) {
	switch kind {
	case KindSIP:
		return SIP(in.Amount, in.AnnualRatePercent, in.Years)
	case KindLumpsum:
		return Lumpsum(in.Amount, in.AnnualRatePercent, in.Years)
	case KindEMI:
		return EMI(in.Amount, in.AnnualRatePercent, in.Years)
	case KindROI:
		return ROI(in.Amount, in.AnnualRatePercent, in.Years)
	}
	return nil, errors.Invalid("kind", "unknown calculator %q", string(kind))
}

func validate(kind Kind, amount, annualRatePercent, years float64) error {
	field := kind.amountField()
	switch {
	case !isFinite(amount):
		return errors.Invalid(field, "must be a finite number")
	case amount <= 0:
		return errors.Invalid(field, "must be greater than 0, got %v", amount)
	case !isFinite(annualRatePercent):
		return errors.Invalid("annualRatePercent", "must be a finite number")
	case annualRatePercent < 0:
		return errors.Invalid("annualRatePercent", "must not be negative, got %v", annualRatePercent)
	case !isFinite(years):
		return errors.Invalid("years", "must be a finite number")
	case years <= 0:
		return errors.Invalid("years", "must be greater than 0, got %v", years)
	}
	return nil
}

// sipValue returns the annuity-due future value and the contributed total
// after months contributions.
func sipValue(monthlyAmount, annualRatePercent, months float64) (fv, invested float64) {
	i := annualRatePercent / 12 / 100
	invested = monthlyAmount * months
	if i == 0 || 1+i == 1 {
		return invested, invested
	}
	return monthlyAmount * (math.Pow(1+i, months) - 1) / i * (1 + i), invested
}

func compound(principal, annualRatePercent, years float64) float64 {
	return principal * math.Pow(1+annualRatePercent/100, years)
}

func emiValue(loanAmount, annualRatePercent, months float64) float64 {
	r := annualRatePercent / 12 / 100
	growth := math.Pow(1+r, months)
	if r == 0 || growth == 1 {
		return loanAmount / months
	}
	return loanAmount * r * growth / (growth - 1)
}

func investmentResult(fv, invested float64) (InvestmentResult, error) {
	for _, v := range []float64{fv, invested} {
		if err := checkFinite(v); err != nil {
			return InvestmentResult{}, err
		}
	}
	total := wholeUnits(fv)
	base := wholeUnits(invested)
	return InvestmentResult{
		TotalValue:     total,
		InvestedAmount: base,
		WealthGained:   total.Sub(base),
	}, nil
}

func wholeUnits(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(0)
}

func checkFinite(v float64) error {
	if !isFinite(v) {
		return errors.Invalid("result", "out of range: %v", v)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
