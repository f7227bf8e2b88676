package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"

	"github.com/finblog/backend/internal/errors"
	"github.com/finblog/backend/internal/services"
)

// pricesCmd applies prices given on the command line.
type pricesCmd struct{}

func (*pricesCmd) Name() string     { return "prices" }
func (*pricesCmd) Synopsis() string { return "set the market price of symbols" }
func (*pricesCmd) Usage() string {
	return `fincalc [-p <portfolio>] prices <SYMBOL=price>...

  Sets the current price of every holding of the given symbols.
  Holdings of other symbols keep their price.
`
}
func (*pricesCmd) SetFlags(*flag.FlagSet) {}

func (*pricesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(stderr, "Error: prices needs at least one SYMBOL=price pair")
		return subcommands.ExitUsageError
	}
	table, err := services.ParseStaticPrices(strings.Join(f.Args(), ","))
	if err != nil {
		return failure("parsing prices", errors.Invalid("prices", "%v", err))
	}
	return withService(ctx, func(svc *services.PortfolioService) subcommands.ExitStatus {
		n, err := svc.ApplyPrices(ctx, *portfolioID, table)
		if err != nil {
			return failure("applying prices", err)
		}
		fmt.Fprintf(stdout, "Updated %d holding(s)\n", n)
		return subcommands.ExitSuccess
	})
}

// refreshCmd fetches market prices from the configured provider.
type refreshCmd struct{}

func (*refreshCmd) Name() string     { return "refresh" }
func (*refreshCmd) Synopsis() string { return "fetch market prices for every held symbol" }
func (*refreshCmd) Usage() string {
	return `fincalc [-p <portfolio>] refresh

  Fetches the latest price of every held symbol. Symbols that cannot be
  priced keep their previous price and are reported.
`
}
func (*refreshCmd) SetFlags(*flag.FlagSet) {}

func (*refreshCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withService(ctx, func(svc *services.PortfolioService) subcommands.ExitStatus {
		summary, err := svc.RefreshPrices(ctx, *portfolioID)
		if err != nil {
			return failure("refreshing prices", err)
		}
		printMarkdown(refreshMarkdown(summary))
		return subcommands.ExitSuccess
	})
}
