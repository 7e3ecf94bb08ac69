package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Aggregate declares which parent total an entry type feeds: the sum of
// Column over every row of Table that points at a financial status is
// stored in that status's Target column.
type Aggregate struct {
	Table  string
	Column string
	Target string
}

// Entry is implemented by every record that belongs to a FinancialStatus
// and contributes to one of its aggregates.
type Entry interface {
	GetID() string
	GetFinancialStatusID() string
	SetFinancialStatusID(id string)
	Aggregate() Aggregate
}

// Aggregates lists the rule of every entry type.
var Aggregates = []Aggregate{
	(&IncomeSource{}).Aggregate(),
	(&Debt{}).Aggregate(),
	(&MonthlyExpense{}).Aggregate(),
	(&SavingsPlan{}).Aggregate(),
	(&FinancialGoal{}).Aggregate(),
	(&Investment{}).Aggregate(),
}

// StatusRef links an entry to its parent financial status.
type StatusRef struct {
	FinancialStatusID string `gorm:"type:uuid;not null;index" json:"financial_status_id"`
}

// GetFinancialStatusID returns the parent id.
func (r *StatusRef) GetFinancialStatusID() string { return r.FinancialStatusID }

// SetFinancialStatusID sets the parent id.
func (r *StatusRef) SetFinancialStatusID(id string) { r.FinancialStatusID = id }

// IncomeSource is a recurring income stream; it feeds net earnings.
type IncomeSource struct {
	Base
	StatusRef
	Name      string          `gorm:"column:income_source;size:100" json:"income_source" validate:"max=100"`
	Amount    decimal.Decimal `gorm:"column:income_amount;type:decimal(12,2);not null;default:0" json:"income_amount" validate:"money"`
	Frequency Frequency       `gorm:"size:10;not null;default:'monthly'" json:"frequency" validate:"frequency"`
}

func (IncomeSource) TableName() string { return "income_sources" }

func (*IncomeSource) Aggregate() Aggregate {
	return Aggregate{Table: "income_sources", Column: "income_amount", Target: ColumnNetEarnings}
}

// Debt is an outstanding liability; it feeds total debt.
type Debt struct {
	Base
	StatusRef
	Name      string          `gorm:"column:debt_name;size:500" json:"debt_name" validate:"max=500"`
	Amount    decimal.Decimal `gorm:"column:debt_amount;type:decimal(12,2);not null" json:"debt_amount" validate:"money"`
	Frequency Frequency       `gorm:"column:debt_frequency;size:10" json:"debt_frequency,omitempty" validate:"omitempty,frequency"`
	DueDate   time.Time       `gorm:"column:debt_due_date;type:date;not null" json:"debt_due_date" validate:"required"`
}

func (Debt) TableName() string { return "debts" }

func (*Debt) Aggregate() Aggregate {
	return Aggregate{Table: "debts", Column: "debt_amount", Target: ColumnTotalDebt}
}

// MonthlyExpense is a budgeted expense line; the estimated cost feeds total
// monthly expenses.
type MonthlyExpense struct {
	Base
	StatusRef
	Name          string          `gorm:"column:expense_name;size:500" json:"expense_name" validate:"max=500"`
	EstimatedCost decimal.Decimal `gorm:"column:estimated_expenses_cost;type:decimal(12,2);not null;default:0" json:"estimated_expenses_cost" validate:"money"`
	ActualCost    decimal.Decimal `gorm:"column:actual_expenses_cost;type:decimal(12,2);not null;default:0" json:"actual_expenses_cost" validate:"money"`
	Frequency     Frequency       `gorm:"size:10;not null;default:'monthly'" json:"frequency" validate:"frequency"`
}

func (MonthlyExpense) TableName() string { return "monthly_expenses" }

func (*MonthlyExpense) Aggregate() Aggregate {
	return Aggregate{Table: "monthly_expenses", Column: "estimated_expenses_cost", Target: ColumnTotalMonthlyExpenses}
}

// SavingsPlan tracks money put aside; the actual amount feeds total savings.
type SavingsPlan struct {
	Base
	StatusRef
	Title         string          `gorm:"column:savings_plan_title;size:500" json:"savings_plan_title" validate:"max=500"`
	PlannedAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"planned_amount" validate:"money"`
	ActualAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"actual_amount" validate:"money"`
	Frequency     Frequency       `gorm:"size:10;not null;default:'monthly'" json:"frequency" validate:"frequency"`
	Term          time.Time       `gorm:"column:savings_term;type:date;not null" json:"savings_term" validate:"required"`
}

func (SavingsPlan) TableName() string { return "savings_plans" }

func (*SavingsPlan) Aggregate() Aggregate {
	return Aggregate{Table: "savings_plans", Column: "actual_amount", Target: ColumnTotalSavings}
}

// FinancialGoal is a savings target; the target amount feeds the total
// financial goal.
type FinancialGoal struct {
	Base
	StatusRef
	Title         string          `gorm:"column:goal_title;size:500" json:"goal_title" validate:"max=500"`
	TargetAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"target_amount" validate:"money"`
	CurrentAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"current_amount" validate:"money"`
	Deadline      time.Time       `gorm:"column:goal_deadline;type:date;not null" json:"goal_deadline" validate:"required"`
}

func (FinancialGoal) TableName() string { return "financial_goals" }

func (*FinancialGoal) Aggregate() Aggregate {
	return Aggregate{Table: "financial_goals", Column: "target_amount", Target: ColumnTotalFinancialGoal}
}

// Progress returns CurrentAmount as a percentage of TargetAmount, rounded to
// two places. A zero target yields zero.
func (g *FinancialGoal) Progress() decimal.Decimal {
	if g.TargetAmount.IsZero() {
		return decimal.Zero
	}
	return g.CurrentAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100)).Round(2)
}

// Investment is a holding locked for a fixed term; the currently invested
// amount feeds total investments.
type Investment struct {
	Base
	StatusRef
	Term              InvestmentTerm  `gorm:"column:investment_type;size:500;not null" json:"investment_type" validate:"investment_term"`
	AmountInvested    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"amount_invested" validate:"money"`
	CurrentlyInvested decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"currently_invested" validate:"money"`
	ReturnRate        decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"return_rate" validate:"rate"`
}

func (Investment) TableName() string { return "investments" }

func (*Investment) Aggregate() Aggregate {
	return Aggregate{Table: "investments", Column: "currently_invested", Target: ColumnTotalInvestments}
}

// TermMonths returns the lock-in period in months.
func (i *Investment) TermMonths() int {
	return i.Term.Months()
}

// Defaulter is implemented by entries with fields that fall back to a
// default when left empty.
type Defaulter interface {
	ApplyDefaults()
}

// ApplyDefaults sets the frequency to monthly when empty.
func (s *IncomeSource) ApplyDefaults() {
	if s.Frequency == "" {
		s.Frequency = FrequencyMonthly
	}
}

// ApplyDefaults sets the frequency to monthly when empty.
func (e *MonthlyExpense) ApplyDefaults() {
	if e.Frequency == "" {
		e.Frequency = FrequencyMonthly
	}
}

// ApplyDefaults sets the frequency to monthly when empty.
func (p *SavingsPlan) ApplyDefaults() {
	if p.Frequency == "" {
		p.Frequency = FrequencyMonthly
	}
}
