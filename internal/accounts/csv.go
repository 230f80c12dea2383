package accounts

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/cleared-dev/siereport/internal/model"
)

const (
	numFields      = 6
	colNumber      = 0
	colName        = 1
	colType        = 2
	colClass       = 3
	colClassName   = 4
	colSynthesized = 5
)

var header = []string{"account_number", "account_name", "account_type", "account_class", "class_name", "synthesized"}

// WriteAccounts writes the classified chart as CSV.
func WriteAccounts(w io.Writer, accts []ClassifiedAccount) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, acct := range accts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalAccount converts a ClassifiedAccount to a CSV row.
func MarshalAccount(acct ClassifiedAccount) []string {
	row := make([]string, numFields)
	row[colNumber] = acct.Number
	row[colName] = acct.Name
	row[colType] = string(acct.Type)
	if acct.Split && acct.Type == model.AccountTypeLiability {
		row[colType] = SplitTypeLabel
	}
	row[colClass] = acct.Class
	row[colClassName] = acct.ClassName
	row[colSynthesized] = strconv.FormatBool(acct.Synthesized)
	return row
}
