package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// LedgerHeader is the CSV header written by WriteLedger.
const LedgerHeader = "account,account_name,kind,date,verification,text,amount,balance"

const (
	ledgerFields   = 8
	colAccount     = 0
	colAccountName = 1
	colKind        = 2
	colDate        = 3
	colVer         = 4
	colText        = 5
	colAmount      = 6
	colBalance     = 7
)

// WriteLedger writes every ledger row, account by account, as CSV.
func WriteLedger(w io.Writer, gl *GeneralLedger) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(LedgerHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	n := 1
	for _, acct := range gl.Accounts {
		for _, row := range acct.Rows {
			n++
			if err := cw.Write(MarshalLedgerRow(acct, row)); err != nil {
				return fmt.Errorf("writing row %d: %w", n, err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalLedgerRow converts a ledger row to a CSV record.
func MarshalLedgerRow(acct LedgerAccount, row LedgerRow) []string {
	rec := make([]string, ledgerFields)
	rec[colAccount] = acct.Number
	rec[colAccountName] = acct.Name
	rec[colKind] = row.Kind
	rec[colDate] = row.Date
	rec[colVer] = row.Verification
	rec[colText] = row.Text
	rec[colAmount] = row.Amount.StringFixed(2)
	rec[colBalance] = row.Balance.StringFixed(2)
	return rec
}
