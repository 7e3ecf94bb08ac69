package models

import "github.com/shopspring/decimal"

// Columns of financial_statuses that hold derived totals.
const (
	ColumnNetEarnings          = "net_earnings"
	ColumnTotalDebt            = "total_debt"
	ColumnTotalMonthlyExpenses = "total_monthly_expenses"
	ColumnTotalSavings         = "total_savings"
	ColumnTotalFinancialGoal   = "total_financial_goal"
	ColumnTotalInvestments     = "total_investments"
)

// FinancialStatus is the per-user parent of every financial entry. Apart from
// GrossSalary, its monetary fields are aggregates maintained by the entry
// write path and must not be assigned directly.
type FinancialStatus struct {
	Base
	UserID               string          `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	GrossSalary          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"gross_salary" validate:"money"`
	NetEarnings          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"net_earnings"`
	TotalSavings         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total_savings"`
	TotalMonthlyExpenses decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total_monthly_expenses"`
	TotalInvestments     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total_investments"`
	TotalFinancialGoal   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total_financial_goal"`
	TotalDebt            decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total_debt"`

	// Relationships, declared for the cascading foreign keys.
	IncomeSources   []IncomeSource   `gorm:"foreignKey:FinancialStatusID;constraint:OnDelete:CASCADE" json:"-"`
	Debts           []Debt           `gorm:"foreignKey:FinancialStatusID;constraint:OnDelete:CASCADE" json:"-"`
	MonthlyExpenses []MonthlyExpense `gorm:"foreignKey:FinancialStatusID;constraint:OnDelete:CASCADE" json:"-"`
	SavingsPlans    []SavingsPlan    `gorm:"foreignKey:FinancialStatusID;constraint:OnDelete:CASCADE" json:"-"`
	FinancialGoals  []FinancialGoal  `gorm:"foreignKey:FinancialStatusID;constraint:OnDelete:CASCADE" json:"-"`
	Investments     []Investment     `gorm:"foreignKey:FinancialStatusID;constraint:OnDelete:CASCADE" json:"-"`
}

// AggregateValue returns the current value of the aggregate column, and
// false if column is not one of the six derived totals.
func (s *FinancialStatus) AggregateValue(column string) (decimal.Decimal, bool) {
	switch column {
	case ColumnNetEarnings:
		return s.NetEarnings, true
	case ColumnTotalDebt:
		return s.TotalDebt, true
	case ColumnTotalMonthlyExpenses:
		return s.TotalMonthlyExpenses, true
	case ColumnTotalSavings:
		return s.TotalSavings, true
	case ColumnTotalFinancialGoal:
		return s.TotalFinancialGoal, true
	case ColumnTotalInvestments:
		return s.TotalInvestments, true
	}
	return decimal.Zero, false
}

// SetAggregate assigns the aggregate column. Unknown columns are ignored.
func (s *FinancialStatus) SetAggregate(column string, value decimal.Decimal) {
	switch column {
	case ColumnNetEarnings:
		s.NetEarnings = value
	case ColumnTotalDebt:
		s.TotalDebt = value
	case ColumnTotalMonthlyExpenses:
		s.TotalMonthlyExpenses = value
	case ColumnTotalSavings:
		s.TotalSavings = value
	case ColumnTotalFinancialGoal:
		s.TotalFinancialGoal = value
	case ColumnTotalInvestments:
		s.TotalInvestments = value
	}
}
