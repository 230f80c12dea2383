package export

// DebitCreditExample explains how one account group moves.
type DebitCreditExample struct {
	AccountType string `json:"account_type"`
	Debit       string `json:"debit"`
	Credit      string `json:"credit"`
}

// ExampleEntry is one line of the worked example.
type ExampleEntry struct {
	Account string `json:"account"`
	Debit   int    `json:"debit"`
	Credit  int    `json:"credit"`
}

// ExampleTransaction is a worked double-entry example.
type ExampleTransaction struct {
	Description string         `json:"description"`
	Entries     []ExampleEntry `json:"entries"`
	Explanation string         `json:"explanation"`
}

// AccountingContext tells the reader of an export how to interpret the numbers.
type AccountingContext struct {
	Source                 string               `json:"source"`
	AccountingPrinciples   string               `json:"accounting_principles"`
	DebitCreditExplanation string               `json:"debit_credit_explanation"`
	AccountingEquation     string               `json:"accounting_equation"`
	DebitCreditExamples    []DebitCreditExample `json:"debit_credit_examples"`
	ExampleTransaction     ExampleTransaction   `json:"example_transaction"`
}

func accountingContext() AccountingContext {
	return AccountingContext{
		Source:               "This data comes from Swedish SIE 4 files, which is a standard format for financial data in Sweden.",
		AccountingPrinciples: "The data follows double-entry accounting principles where each transaction affects at least two accounts.",
		DebitCreditExplanation: "In Swedish accounting (BAS), accounts have both debit and credit sides. " +
			"Negative amounts often indicate entries on the credit side. Assets increase with debit entries, " +
			"while Liabilities and Equity increase with credit entries.",
		AccountingEquation: "Assets = Liabilities + Equity",
		DebitCreditExamples: []DebitCreditExample{
			{AccountType: "Assets (1xxx)", Debit: "Increase (+)", Credit: "Decrease (-)"},
			{AccountType: "Liabilities (2xxx)", Debit: "Decrease (-)", Credit: "Increase (+)"},
			{AccountType: "Equity (20xx-21xx)", Debit: "Decrease (-)", Credit: "Increase (+)"},
			{AccountType: "Income (3xxx)", Debit: "Decrease (-)", Credit: "Increase (+)"},
			{AccountType: "Expenses (4xxx-8xxx)", Debit: "Increase (+)", Credit: "Decrease (-)"},
		},
		ExampleTransaction: ExampleTransaction{
			Description: "Purchase of equipment for 10,000 SEK",
			Entries: []ExampleEntry{
				{Account: "1220 (Equipment)", Debit: 10000},
				{Account: "1930 (Bank Account)", Credit: 10000},
			},
			Explanation: "The asset (equipment) increases with a debit entry, while another asset (bank account) decreases with a credit entry.",
		},
	}
}
