package models

// Raw* types mirror the JSON schema the extraction model is asked to fill.
// Pointer fields distinguish "missing" from zero; the model is not guaranteed
// to produce well-formed items, so mapping into entities is best-effort.

type RawTransaction struct {
	Amount      *float64 `json:"amount"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Type        string   `json:"type"`
	Date        *string  `json:"date,omitempty"`
	Account     *string  `json:"account,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

type RawAccount struct {
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Bank    *string  `json:"bank,omitempty"`
	Balance *float64 `json:"balance,omitempty"`
}

type RawGoal struct {
	Title         string   `json:"title"`
	TargetAmount  *float64 `json:"targetAmount"`
	CurrentAmount *float64 `json:"currentAmount"`
	Description   *string  `json:"description,omitempty"`
	TargetDate    *string  `json:"targetDate,omitempty"`
	Category      string   `json:"category"`
}

// RawExtraction is the unfiltered output of the extraction port.
type RawExtraction struct {
	Transactions []RawTransaction `json:"transactions"`
	Accounts     []RawAccount     `json:"accounts"`
	Goals        []RawGoal        `json:"goals"`
	Notes        []string         `json:"notes"`
	Confidence   float64          `json:"confidence"`
}

// ExtractedFinancialData carries only the items that survived entity
// validation, plus the extractor's notes and confidence score.
type ExtractedFinancialData struct {
	Transactions []*Transaction
	Accounts     []*Account
	Goals        []*Goal
	Notes        []string
	Confidence   float64
}

func (d *ExtractedFinancialData) IsEmpty() bool {
	return len(d.Transactions) == 0 && len(d.Accounts) == 0 && len(d.Goals) == 0
}
