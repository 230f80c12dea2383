package model

// Transaction is one signed line of a verification.
type Transaction struct {
	Account     string `json:"account"`
	Amount      Amount `json:"amount"`
	Date        string `json:"date,omitempty"` // YYYYMMDD
	Text        string `json:"text,omitempty"`
	AccountName string `json:"account_name,omitempty"`
}

// Verification is a journal entry grouping signed transactions.
type Verification struct {
	ID           string        `json:"id,omitempty"`
	Series       string        `json:"series,omitempty"`
	Number       string        `json:"number,omitempty"`
	Date         string        `json:"date,omitempty"`
	Text         string        `json:"text,omitempty"`
	Transactions []Transaction `json:"transactions"`
}

// EffectiveDate returns the transaction date, falling back to the verification date.
func (v Verification) EffectiveDate(t Transaction) string {
	if t.Date != "" {
		return t.Date
	}
	return v.Date
}

// EffectiveText returns the transaction text, falling back to the verification text.
func (v Verification) EffectiveText(t Transaction) string {
	if t.Text != "" {
		return t.Text
	}
	return v.Text
}
