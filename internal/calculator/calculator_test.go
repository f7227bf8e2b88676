package calculator

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finblog/backend/internal/errors"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func assertDecimal(t *testing.T, want, got decimal.Decimal, msg string) {
	t.Helper()
	assert.Truef(t, want.Equal(got), "%s: want %s, got %s", msg, want, got)
}

func TestSIP(t *testing.T) {
	res, err := SIP(5000, 12, 10)
	require.NoError(t, err)
	assertDecimal(t, dec(1161695), res.TotalValue, "total value")
	assertDecimal(t, dec(600000), res.InvestedAmount, "invested")
	assertDecimal(t, dec(561695), res.WealthGained, "gain")
}

func TestSIP_ZeroRate(t *testing.T) {
	tests := []struct {
		name    string
		monthly float64
		years   float64
		want    int64
	}{
		{"whole years", 1000, 10, 120000},
		{"fractional years", 2500, 2.5, 75000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := SIP(tt.monthly, 0, tt.years)
			require.NoError(t, err)
			assertDecimal(t, dec(tt.want), res.TotalValue, "total value")
			assertDecimal(t, dec(tt.want), res.InvestedAmount, "invested")
			assert.True(t, res.WealthGained.IsZero())
		})
	}
}

func TestSIP_GainIsTotalMinusInvested(t *testing.T) {
	inputs := [][3]float64{
		{100, 0.1, 1}, {1234.56, 7.25, 3.5}, {999.99, 15, 25}, {1, 1, 1}, {50000, 9.9, 0.75},
	}
	for _, in := range inputs {
		res, err := SIP(in[0], in[1], in[2])
		require.NoError(t, err)
		assertDecimal(t, res.TotalValue.Sub(res.InvestedAmount), res.WealthGained, "gain")
		assert.True(t, res.WealthGained.GreaterThanOrEqual(decimal.Zero))
	}
}

func TestLumpsum(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		years     float64
		total     int64
	}{
		{"ten years at 12%", 100000, 12, 10, 310585},
		{"five years at 8%", 10000, 8, 5, 14693},
		{"zero rate is identity", 25000, 0, 7, 25000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Lumpsum(tt.principal, tt.rate, tt.years)
			require.NoError(t, err)
			assertDecimal(t, dec(tt.total), res.TotalValue, "total value")
			assertDecimal(t, decimal.NewFromFloat(tt.principal), res.InvestedAmount, "invested")
			assertDecimal(t, res.TotalValue.Sub(res.InvestedAmount), res.WealthGained, "gain")
		})
	}
}

func TestEMI(t *testing.T) {
	res, err := EMI(50000, 8.5, 20)
	require.NoError(t, err)
	assertDecimal(t, dec(434), res.EMI, "emi")
	assertDecimal(t, dec(104160), res.TotalPayable, "total payable")
	assertDecimal(t, dec(54160), res.TotalInterest, "total interest")
}

func TestEMI_Consistency(t *testing.T) {
	inputs := [][3]float64{{50000, 8.5, 20}, {1000000, 7.1, 30}, {2400, 12, 1}, {150000, 0, 5}}
	for _, in := range inputs {
		res, err := EMI(in[0], in[1], in[2])
		require.NoError(t, err)
		months := decimal.NewFromFloat(in[2] * 12)
		assertDecimal(t, res.EMI.Mul(months), res.TotalPayable, "total payable")
		assertDecimal(t, res.TotalPayable.Sub(decimal.NewFromFloat(in[0])), res.TotalInterest, "total interest")
	}
}

func TestEMI_ZeroRate(t *testing.T) {
	res, err := EMI(12000, 0, 1)
	require.NoError(t, err)
	assertDecimal(t, dec(1000), res.EMI, "emi")
	assertDecimal(t, dec(12000), res.TotalPayable, "total payable")
	assert.True(t, res.TotalInterest.IsZero())
}

func TestROI(t *testing.T) {
	res, err := ROI(100000, 12, 10)
	require.NoError(t, err)
	assertDecimal(t, dec(310585), res.TotalValue, "total value")
	assert.Equal(t, "12.00", res.AnnualizedReturnPercent.StringFixed(2))
}

func TestROI_MatchesLumpsum(t *testing.T) {
	inputs := [][3]float64{{100000, 12, 10}, {5000, 3.3, 2.5}, {75, 0, 4}, {1e6, 18, 30}}
	for _, in := range inputs {
		roi, err := ROI(in[0], in[1], in[2])
		require.NoError(t, err)
		lump, err := Lumpsum(in[0], in[1], in[2])
		require.NoError(t, err)
		assertDecimal(t, lump.TotalValue, roi.TotalValue, "total value")
		assertDecimal(t, lump.WealthGained, roi.WealthGained, "gain")
		assert.Equal(t, decimal.NewFromFloat(in[1]).StringFixed(2), roi.AnnualizedReturnPercent.StringFixed(2))
	}
}

func TestValidation(t *testing.T) {
	calculators := map[Kind]func(a, r, y float64) error{
		KindSIP:     func(a, r, y float64) error { _, err := SIP(a, r, y); return err },
		KindLumpsum: func(a, r, y float64) error { _, err := Lumpsum(a, r, y); return err },
		KindEMI:     func(a, r, y float64) error { _, err := EMI(a, r, y); return err },
		KindROI:     func(a, r, y float64) error { _, err := ROI(a, r, y); return err },
	}
	cases := []struct {
		name  string
		in    [3]float64
		field string
	}{
		{"zero amount", [3]float64{0, 10, 5}, ""},
		{"negative amount", [3]float64{-1, 10, 5}, ""},
		{"NaN amount", [3]float64{math.NaN(), 10, 5}, ""},
		{"negative rate", [3]float64{1000, -1, 5}, "annualRatePercent"},
		{"infinite rate", [3]float64{1000, math.Inf(1), 5}, "annualRatePercent"},
		{"zero years", [3]float64{1000, 10, 0}, "years"},
		{"negative years", [3]float64{1000, 10, -2}, "years"},
		{"infinite years", [3]float64{1000, 10, math.Inf(1)}, "years"},
	}
	for kind, calc := range calculators {
		for _, tc := range cases {
			t.Run(string(kind)+"/"+tc.name, func(t *testing.T) {
				err := calc(tc.in[0], tc.in[1], tc.in[2])
				require.Error(t, err)
				v, ok := errors.AsValidation(err)
				require.True(t, ok)
				field := tc.field
				if field == "" {
					field = kind.amountField()
				}
				assert.Equal(t, field, v.Field)
			})
		}
	}
}

func TestOverflowIsRejected(t *testing.T) {
	_, err := Lumpsum(1e300, 1000, 1000)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestCalculateDispatch(t *testing.T) {
	kind, err := ParseKind(" EMI ")
	require.NoError(t, err)
	assert.Equal(t, KindEMI, kind)

	out, err := Calculate(kind, Input{Amount: 50000, AnnualRatePercent: 8.5, Years: 20})
	require.NoError(t, err)
	loan, ok := out.(LoanResult)
	require.True(t, ok)
	assertDecimal(t, dec(434), loan.EMI, "emi")

	_, err = ParseKind("mortgage")
	assert.True(t, errors.IsValidation(err))
	_, err = Calculate(Kind("mortgage"), Input{Amount: 1, AnnualRatePercent: 1, Years: 1})
	assert.True(t, errors.IsValidation(err))
}
