package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/siereport/internal/accounts"
	"github.com/cleared-dev/siereport/internal/analysis"
	"github.com/cleared-dev/siereport/internal/render"
	"github.com/cleared-dev/siereport/internal/report"
)

func newBalanceCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "balance <document>",
		Short: "Balance sheet (balansräkning)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := a.load(cmd, args[0])
			if err != nil {
				return err
			}
			bs, err := report.Isolate("balance_sheet", func() (*report.BalanceSheet, error) {
				return report.BuildBalanceSheet(rc, a.options()), nil
			})
			if err != nil {
				return a.fail(err)
			}
			return a.emit(cmd, bs, renderers{
				markdown: func() string { return render.BalanceSheet(bs) },
			})
		},
	}
}

func newIncomeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "income <document>",
		Short: "Income statement (resultaträkning)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := a.load(cmd, args[0])
			if err != nil {
				return err
			}
			is, err := report.Isolate("income_statement", func() (*report.IncomeStatement, error) {
				return report.BuildIncomeStatement(rc, a.options()), nil
			})
			if err != nil {
				return a.fail(err)
			}
			return a.emit(cmd, is, renderers{
				markdown: func() string { return render.IncomeStatement(is) },
			})
		},
	}
}

func newLedgerCommand(a *app) *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "ledger <document>",
		Short: "General ledger (huvudbok) with running balances",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := a.load(cmd, args[0])
			if err != nil {
				return err
			}
			if account != "" && !rc.Chart.Exists(account) {
				return fmt.Errorf("unknown account %q", account)
			}
			gl, err := report.Isolate("general_ledger", func() (*report.GeneralLedger, error) {
				return report.BuildGeneralLedger(rc, a.options()), nil
			})
			if err != nil {
				return a.fail(err)
			}
			if account != "" {
				kept := gl.Accounts[:0]
				for _, la := range gl.Accounts {
					if la.Number == account {
						kept = append(kept, la)
					}
				}
				gl.Accounts = kept
			}
			return a.emit(cmd, gl, renderers{
				markdown: func() string { return render.GeneralLedger(gl) },
				csv:      func(w io.Writer) error { return report.WriteLedger(w, gl) },
			})
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "only this account number")

	return cmd
}

func newHistoryCommand(a *app) *cobra.Command {
	var table bool

	cmd := &cobra.Command{
		Use:   "history <document>",
		Short: "Multi-year balance history with key metrics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := a.load(cmd, args[0])
			if err != nil {
				return err
			}
			if table {
				t, err := report.Isolate("balance_table", func() (*analysis.Table, error) {
					return analysis.BuildTable(rc), nil
				})
				if err != nil {
					return a.fail(err)
				}
				return a.emit(cmd, t, renderers{
					markdown: func() string { return render.Table(t, rc.Currency) },
				})
			}
			h, err := report.Isolate("history", func() (*analysis.History, error) {
				return analysis.BuildHistory(rc), nil
			})
			if err != nil {
				return a.fail(err)
			}
			return a.emit(cmd, h, renderers{
				markdown: func() string { return render.History(h) },
			})
		},
	}

	cmd.Flags().BoolVar(&table, "table", false, "per-account IB/UB table instead of yearly totals")

	return cmd
}

func newRatiosCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ratios <document>",
		Short: "Liquidity, solvency, profitability and efficiency ratios",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := a.load(cmd, args[0])
			if err != nil {
				return err
			}
			r, err := report.Isolate("key_ratios", func() (*analysis.Ratios, error) {
				return analysis.BuildRatios(rc, a.options()), nil
			})
			if err != nil {
				return a.fail(err)
			}
			return a.emit(cmd, r, renderers{
				markdown: func() string { return render.Ratios(r) },
			})
		},
	}
}

func newAccountsCommand(a *app) *cobra.Command {
	var synthesized bool

	cmd := &cobra.Command{
		Use:   "accounts <document>",
		Short: "Classified chart of accounts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := a.load(cmd, args[0])
			if err != nil {
				return err
			}
			accts := rc.Chart.All()
			if synthesized {
				accts = rc.Chart.Synthesized()
			}
			if accts == nil {
				accts = []accounts.ClassifiedAccount{}
			}
			return a.emit(cmd, accts, renderers{
				markdown: func() string { return render.Accounts(accts) },
				csv:      func(w io.Writer) error { return accounts.WriteAccounts(w, accts) },
			})
		},
	}

	cmd.Flags().BoolVar(&synthesized, "synthesized", false, "only accounts missing from the chart")

	return cmd
}
