package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/google/subcommands"

	"github.com/finblog/backend/internal/calculator"
)

// calcCmd runs one of the calculators; the same type serves every kind.
type calcCmd struct {
	kind     calculator.Kind
	amount   float64
	rate     float64
	years    float64
	schedule bool
	currency string
}

func (c *calcCmd) Name() string { return string(c.kind) }
func (c *calcCmd) Synopsis() string {
	switch c.kind {
	case calculator.KindSIP:
		return "project a monthly systematic investment plan"
	case calculator.KindLumpsum:
		return "project a one-off investment compounded annually"
	case calculator.KindEMI:
		return "compute the monthly installment of a loan"
	default:
		return "compute the return of a one-off investment"
	}
}
func (c *calcCmd) Usage() string {
	return fmt.Sprintf(`fincalc %s -amount <amount> -rate <percent> -years <years> [-schedule] [-currency <code>]

  %s.
`, c.kind, strings.ToUpper(c.Synopsis()[:1])+c.Synopsis()[1:])
}

func (c *calcCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.amount, "amount", 0, "Monthly amount, principal or loan amount")
	f.Float64Var(&c.rate, "rate", 0, "Annual rate in percent")
	f.Float64Var(&c.years, "years", 0, "Duration in years")
	f.BoolVar(&c.schedule, "schedule", false, "Also print the year by year schedule")
	f.StringVar(&c.currency, "currency", money.USD, "Currency used to display amounts")
}

func (c *calcCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if money.GetCurrency(strings.ToUpper(c.currency)) == nil {
		fmt.Fprintf(stderr, "Error: unknown currency %q\n", c.currency)
		return subcommands.ExitUsageError
	}

	in := calculator.Input{Amount: c.amount, AnnualRatePercent: c.rate, Years: c.years}
	result, err := calculator.Calculate(c.kind, in)
	if err != nil {
		return failure("calculating", err)
	}
	md := calculationMarkdown(c.kind, in, result, c.currency)

	if c.schedule {
		points, err := calculator.Schedule(c.kind, in)
		if err != nil {
			return failure("building schedule", err)
		}
		md += scheduleMarkdown(points, c.currency)
	}

	printMarkdown(md)
	return subcommands.ExitSuccess
}
