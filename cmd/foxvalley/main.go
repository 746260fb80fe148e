package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"foxvalley/cmd"
	"foxvalley/internal/domain"
	"foxvalley/internal/logger"
	l3_service "foxvalley/internal/service/l3"
	"foxvalley/internal/util"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// directory flags override the config file and environment when set
type directoryFlags struct {
	dataDir    string
	archiveDir string
	reportDir  string
}

func (f directoryFlags) loadDependencies() (*cmd.Dependencies, error) {
	cfg, err := util.LoadConfig()
	if err != nil {
		return nil, err
	}
	if f.dataDir != "" {
		cfg.DataDir = f.dataDir
	}
	if f.archiveDir != "" {
		cfg.ArchiveDir = f.archiveDir
	}
	if f.reportDir != "" {
		cfg.ReportDir = f.reportDir
	}
	return cmd.InitializeDependencies(*cfg)
}

func commandContext() context.Context {
	return logger.WithLogger(context.Background(), logger.New())
}

func (f directoryFlags) reconcile(ctx context.Context) (*cmd.Dependencies, *domain.Reconciliation, error) {
	deps, err := f.loadDependencies()
	if err != nil {
		return nil, nil, err
	}
	rec, err := deps.ApiHandler.ReconciliationService.Run(ctx)
	if err != nil {
		return nil, nil, err
	}
	return deps, rec, nil
}

func optionalRank(r *int) string {
	if r == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *r)
}

func printReport(out io.Writer, rec *domain.Reconciliation) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "date\t%s\n", rec.Date)
	fmt.Fprintf(w, "total value\t%s\n", l3_service.FormatDollars(decimal.NewFromFloat(rec.Summary.TotalValue)))
	fmt.Fprintf(w, "cash\t%s\n", l3_service.FormatDollars(decimal.NewFromFloat(rec.Summary.CashValue)))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "TICKER\tVALUE\tALLOCATION\tRANK\tSIGNAL")
	for _, p := range rec.Positions {
		alloc := "-"
		if p.AllocationPct != nil {
			alloc = l3_service.FormatPct(*p.AllocationPct)
		}
		fmt.Fprintf(
			w,
			"%s\t%s\t%s\t%s\t%s\n",
			p.Ticker,
			l3_service.FormatDollars(decimal.NewFromFloat(p.MarketValue())),
			alloc,
			optionalRank(p.Rank),
			p.Signal,
		)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "CANDIDATE\tRANK\tSOURCES\tHELD\tACTION\tAMOUNT\tTACTICAL")
	for _, c := range rec.Candidates.Candidates {
		fmt.Fprintf(
			w,
			"%s\t%s\t%v\t%t\t%s\t%s\t%s\n",
			c.Ticker,
			optionalRank(c.Rank),
			c.Sources,
			c.Held,
			c.Action,
			l3_service.FormatDollars(decimal.NewFromFloat(c.AllocationAmount)),
			c.TacticalTag,
		)
	}
	fmt.Fprintln(w)

	for _, d := range rec.Diagnostics {
		fmt.Fprintf(w, "[%s]\t%s\t%s\n", d.Severity, d.Type, d.Details)
	}
}

func printDelta(out io.Writer, label string, d domain.DeltaReport) {
	if d.InsufficientHistory {
		fmt.Fprintf(out, "%s: not enough history\n", label)
		return
	}
	fmt.Fprintf(out, "%s %s -> %s\n  added:   %v\n  removed: %v\n", label, d.PriorDate, d.Date, d.Added, d.Removed)
}

func newRootCommand() *cobra.Command {
	flags := &directoryFlags{}
	root := &cobra.Command{
		Use:          "foxvalley",
		Short:        "reconcile brokerage holdings against screening exports",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "directory holding the csv exports")
	root.PersistentFlags().StringVar(&flags.archiveDir, "archive-dir", "", "directory superseded exports are moved to")
	root.PersistentFlags().StringVar(&flags.reportDir, "report-dir", "", "directory briefs and bundles are written to")

	root.AddCommand(&cobra.Command{
		Use:   "report",
		Short: "print holdings, candidates and diagnostics",
		RunE: func(c *cobra.Command, args []string) error {
			_, rec, err := flags.reconcile(commandContext())
			if err != nil {
				return err
			}
			printReport(c.OutOrStdout(), rec)
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "delta",
		Short: "print screen and holdings changes since the prior snapshot",
		RunE: func(c *cobra.Command, args []string) error {
			_, rec, err := flags.reconcile(commandContext())
			if err != nil {
				return err
			}
			printDelta(c.OutOrStdout(), "screens", rec.CandidateDelta)
			printDelta(c.OutOrStdout(), "holdings", rec.HoldingsDelta)
			return nil
		},
	})

	var printOnly bool
	briefCmd := &cobra.Command{
		Use:   "brief",
		Short: "write the dated markdown brief",
		RunE: func(c *cobra.Command, args []string) error {
			ctx := commandContext()
			deps, rec, err := flags.reconcile(ctx)
			if err != nil {
				return err
			}
			if printOnly {
				fmt.Fprint(c.OutOrStdout(), deps.ApiHandler.BriefService.Render(*rec))
				return nil
			}
			path, err := deps.ApiHandler.BriefService.Write(ctx, *rec)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), path)
			return nil
		},
	}
	briefCmd.Flags().BoolVar(&printOnly, "print", false, "print to stdout instead of writing a file")
	root.AddCommand(briefCmd)

	root.AddCommand(&cobra.Command{
		Use:   "bundle",
		Short: "zip the inputs, session log and brief",
		RunE: func(c *cobra.Command, args []string) error {
			ctx := commandContext()
			deps, rec, err := flags.reconcile(ctx)
			if err != nil {
				return err
			}
			path, err := deps.ApiHandler.BundleService.Bundle(ctx, *rec)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), path)
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "archive",
		Short: "move superseded exports into the archive",
		RunE: func(c *cobra.Command, args []string) error {
			deps, err := flags.loadDependencies()
			if err != nil {
				return err
			}
			moved, err := deps.ApiHandler.ArchiveService.ArchiveStale(commandContext())
			for _, m := range moved {
				fmt.Fprintln(c.OutOrStdout(), m)
			}
			return err
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "history",
		Short: "print total value per portfolio snapshot",
		RunE: func(c *cobra.Command, args []string) error {
			deps, err := flags.loadDependencies()
			if err != nil {
				return err
			}
			points, stats, err := deps.ApiHandler.ArchiveService.History(commandContext())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(c.OutOrStdout(), 0, 0, 2, ' ', 0)
			defer w.Flush()
			fmt.Fprintln(w, "DATE\tTOTAL\tCHANGE\tFILE")
			for _, p := range points {
				change := "-"
				if p.ChangePct != nil {
					change = l3_service.FormatPct(*p.ChangePct)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Date, l3_service.FormatDollars(decimal.NewFromFloat(p.TotalValue)), change, p.Label)
			}
			if stats != nil {
				fmt.Fprintf(w, "\nhigh %s, low %s, max drawdown %s\n",
					l3_service.FormatDollars(decimal.NewFromFloat(stats.High)),
					l3_service.FormatDollars(decimal.NewFromFloat(stats.Low)),
					l3_service.FormatPct(stats.MaxDrawdown),
				)
			}
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "weekly",
		Short: "run the scheduled weekly job once",
		RunE: func(c *cobra.Command, args []string) error {
			deps, err := flags.loadDependencies()
			if err != nil {
				return err
			}
			out, err := deps.WeeklyBriefApp.Run(commandContext())
			if err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), out.BriefPath)
			if out.BundlePath != "" {
				fmt.Fprintln(c.OutOrStdout(), out.BundlePath)
			}
			return nil
		},
	})

	return root
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
