package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"github.com/finblog/backend/internal/services"
)

// exportCmd writes the portfolio as a JSON snapshot or a CSV report.
type exportCmd struct {
	format string
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the portfolio as JSON or CSV" }
func (*exportCmd) Usage() string {
	return `fincalc [-p <portfolio>] export [-format json|csv] [-o <file>]

  Writes the portfolio to a file, or to stdout when -o is not set.
  A JSON export can be restored with 'fincalc import'.
`
}
func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "json", "Export format: json or csv")
	f.StringVar(&c.output, "o", "", "Output file")
}

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.format != "json" && c.format != "csv" {
		fmt.Fprintf(stderr, "Error: unsupported format %q\n", c.format)
		return subcommands.ExitUsageError
	}

	return withService(ctx, func(svc *services.PortfolioService) subcommands.ExitStatus {
		w := stdout
		if c.output != "" {
			f, err := os.Create(c.output)
			if err != nil {
				return failure("creating output file", err)
			}
			defer f.Close()
			w = f
		}

		if c.format == "csv" {
			if err := svc.ExportCSV(ctx, *portfolioID, w); err != nil {
				return failure("exporting portfolio", err)
			}
			return subcommands.ExitSuccess
		}

		data, err := svc.ExportSnapshot(ctx, *portfolioID)
		if err != nil {
			return failure("exporting portfolio", err)
		}
		if _, err := fmt.Fprintln(w, string(data)); err != nil {
			return failure("writing snapshot", err)
		}
		return subcommands.ExitSuccess
	})
}

// importCmd replaces the portfolio with a JSON snapshot.
type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "replace the portfolio with a JSON snapshot" }
func (*importCmd) Usage() string {
	return `fincalc [-p <portfolio>] import <file|->

  Replaces the portfolio with the snapshot read from file, or stdin for '-'.
  An invalid snapshot leaves the portfolio unchanged.
`
}
func (*importCmd) SetFlags(*flag.FlagSet) {}

// stdin is swapped by tests.
var stdin io.Reader = os.Stdin

func (*importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(stderr, "Error: import takes exactly one file")
		return subcommands.ExitUsageError
	}

	var (
		data []byte
		err  error
	)
	if name := f.Arg(0); name == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return failure("reading snapshot", err)
	}

	return withService(ctx, func(svc *services.PortfolioService) subcommands.ExitStatus {
		p, err := svc.ImportSnapshot(ctx, *portfolioID, data)
		if err != nil {
			return failure("importing snapshot", err)
		}
		fmt.Fprintf(stdout, "Imported %d holding(s) into %s\n", len(p.Holdings), *portfolioID)
		return subcommands.ExitSuccess
	})
}
