package cli

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/finblog/backend/internal/errors"
	"github.com/finblog/backend/internal/models"
	"github.com/finblog/backend/internal/services"
)

// holdingsCmd lists the holdings with their valuation.
type holdingsCmd struct{}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "display every holding with its profit or loss" }
func (*holdingsCmd) Usage() string {
	return `fincalc [-p <portfolio>] holdings

  Displays the holdings of the portfolio, their valuation and the totals.
`
}
func (*holdingsCmd) SetFlags(*flag.FlagSet) {}

func (*holdingsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withService(ctx, func(svc *services.PortfolioService) subcommands.ExitStatus {
		p, err := svc.GetPortfolio(ctx, *portfolioID)
		if err != nil {
			return failure("loading portfolio", err)
		}
		holdings, err := svc.ListHoldings(ctx, *portfolioID)
		if err != nil {
			return failure("valuing holdings", err)
		}
		printMarkdown(holdingsMarkdown(*portfolioID, p, holdings, models.ComputeMetrics(p.Holdings)))
		return subcommands.ExitSuccess
	})
}

// holdingFlags are the fields shared by add and update.
type holdingFlags struct {
	symbol   string
	name     string
	quantity string
	price    string
	date     string
}

func (h *holdingFlags) register(f *flag.FlagSet, defaultDate string) {
	f.StringVar(&h.symbol, "symbol", "", "Ticker symbol")
	f.StringVar(&h.name, "name", "", "Display name")
	f.StringVar(&h.quantity, "quantity", "", "Number of units")
	f.StringVar(&h.price, "price", "", "Buy price per unit")
	f.StringVar(&h.date, "date", defaultDate, "Buy date (YYYY-MM-DD)")
}

func parseDecimal(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.Invalid(field, "%q is not a number", s)
	}
	return d, nil
}

func parseDate(field, s string) (models.Date, error) {
	d, err := models.ParseDate(s)
	if err != nil {
		return models.Date{}, errors.Invalid(field, "%v", err)
	}
	return d, nil
}

// addCmd adds a holding.
type addCmd struct {
	holdingFlags
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a holding to the portfolio" }
func (*addCmd) Usage() string {
	return `fincalc [-p <portfolio>] add -symbol <ticker> -name <name> -quantity <units> -price <buy price> [-date <YYYY-MM-DD>]

  Adds a holding. The buy date defaults to today.
`
}
func (c *addCmd) SetFlags(f *flag.FlagSet) {
	c.register(f, models.DateOf(time.Now()).String())
}

func (c *addCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	in := models.HoldingInput{Symbol: c.symbol, Name: c.name}
	var err error
	if in.Quantity, err = parseDecimal("quantity", c.quantity); err != nil {
		return failure("parsing flags", err)
	}
	if in.BuyPrice, err = parseDecimal("buyPrice", c.price); err != nil {
		return failure("parsing flags", err)
	}
	if in.BuyDate, err = parseDate("buyDate", c.date); err != nil {
		return failure("parsing flags", err)
	}

	return withService(ctx, func(svc *services.PortfolioService) subcommands.ExitStatus {
		h, err := svc.AddHolding(ctx, *portfolioID, in)
		if err != nil {
			return failure("adding holding", err)
		}
		fmt.Fprintf(stdout, "Added %s as holding %s\n", h.Symbol, h.ID)
		return subcommands.ExitSuccess
	})
}

// updateCmd changes the flags given on the command line and keeps the rest.
type updateCmd struct {
	holdingFlags
	current string
}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "change fields of a holding" }
func (*updateCmd) Usage() string {
	return `fincalc [-p <portfolio>] update [-symbol ..] [-name ..] [-quantity ..] [-price ..] [-date ..] [-current ..] <holding id>

  Updates the given fields of a holding. Unset flags keep their value.
`
}
func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	c.register(f, "")
	f.StringVar(&c.current, "current", "", "Current market price per unit")
}

func (c *updateCmd) patch(f *flag.FlagSet) (models.HoldingPatch, error) {
	var (
		patch models.HoldingPatch
		err   error
	)
	f.Visit(func(fl *flag.Flag) {
		if err != nil {
			return
		}
		switch fl.Name {
		case "symbol":
			patch.Symbol = &c.symbol
		case "name":
			patch.Name = &c.name
		case "quantity":
			var d decimal.Decimal
			d, err = parseDecimal("quantity", c.quantity)
			patch.Quantity = &d
		case "price":
			var d decimal.Decimal
			d, err = parseDecimal("buyPrice", c.price)
			patch.BuyPrice = &d
		case "current":
			var d decimal.Decimal
			d, err = parseDecimal("currentPrice", c.current)
			patch.CurrentPrice = &d
		case "date":
			var d models.Date
			d, err = parseDate("buyDate", c.date)
			patch.BuyDate = &d
		}
	})
	return patch, err
}

func (c *updateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(stderr, "Error: update takes exactly one holding id")
		return subcommands.ExitUsageError
	}
	patch, err := c.patch(f)
	if err != nil {
		return failure("parsing flags", err)
	}

	return withService(ctx, func(svc *services.PortfolioService) subcommands.ExitStatus {
		h, err := svc.UpdateHolding(ctx, *portfolioID, f.Arg(0), patch)
		if err != nil {
			return failure("updating holding", err)
		}
		fmt.Fprintf(stdout, "Updated holding %s: %s x %s bought at %s\n", h.ID, h.Quantity, h.Symbol, h.BuyPrice)
		return subcommands.ExitSuccess
	})
}

// deleteCmd removes holdings by id.
type deleteCmd struct{}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "remove holdings from the portfolio" }
func (*deleteCmd) Usage() string {
	return `fincalc [-p <portfolio>] delete <holding id>...

  Removes the holdings. Unknown ids are ignored.
`
}
func (*deleteCmd) SetFlags(*flag.FlagSet) {}

func (*deleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(stderr, "Error: delete needs at least one holding id")
		return subcommands.ExitUsageError
	}
	return withService(ctx, func(svc *services.PortfolioService) subcommands.ExitStatus {
		for _, id := range f.Args() {
			if err := svc.DeleteHolding(ctx, *portfolioID, id); err != nil {
				return failure("deleting holding", err)
			}
		}
		fmt.Fprintf(stdout, "Deleted %d holding(s)\n", f.NArg())
		return subcommands.ExitSuccess
	})
}

// clearCmd resets the portfolio to its empty default.
type clearCmd struct{}

func (*clearCmd) Name() string     { return "clear" }
func (*clearCmd) Synopsis() string { return "remove every holding and reset the settings" }
func (*clearCmd) Usage() string {
	return `fincalc [-p <portfolio>] clear

  Resets the portfolio to its empty default.
`
}
func (*clearCmd) SetFlags(*flag.FlagSet) {}

func (*clearCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withService(ctx, func(svc *services.PortfolioService) subcommands.ExitStatus {
		if err := svc.Clear(ctx, *portfolioID); err != nil {
			return failure("clearing portfolio", err)
		}
		fmt.Fprintf(stdout, "Cleared portfolio %s\n", *portfolioID)
		return subcommands.ExitSuccess
	})
}
