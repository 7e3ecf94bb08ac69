package models

// Role is the access level of a user account.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleUser:
		return true
	}
	return false
}

// Frequency is the recurrence period attached to a monetary entry. It is
// descriptive only and takes no part in any computation.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// IsValid reports whether f is a known frequency.
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// InvestmentTerm is the lock-in period of an investment. Each label
// encodes a month count.
type InvestmentTerm string

const (
	InvestmentTermYear       InvestmentTerm = "year"
	InvestmentTermTwoYears   InvestmentTerm = "two_years"
	InvestmentTermThreeYears InvestmentTerm = "three_years"
)

var investmentTermMonths = map[InvestmentTerm]int{
	InvestmentTermYear:       12,
	InvestmentTermTwoYears:   24,
	InvestmentTermThreeYears: 36,
}

// IsValid reports whether t is a known investment term.
func (t InvestmentTerm) IsValid() bool {
	_, ok := investmentTermMonths[t]
	return ok
}

// Months returns the number of months the term stands for, or 0 for an
// unknown term.
func (t InvestmentTerm) Months() int {
	return investmentTermMonths[t]
}

// TipCategory groups financial tips.
type TipCategory string

const (
	TipCategoryInvestment    TipCategory = "Investment"
	TipCategorySavings       TipCategory = "Savings"
	TipCategoryDebtReduction TipCategory = "Debt_reduction"
	TipCategoryCredit        TipCategory = "Credit"
)

// IsValid reports whether c is a known tip category.
func (c TipCategory) IsValid() bool {
	switch c {
	case TipCategoryInvestment, TipCategorySavings, TipCategoryDebtReduction, TipCategoryCredit:
		return true
	}
	return false
}
