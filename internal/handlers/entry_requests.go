package handlers

import (
	"github.com/shopspring/decimal"

	"fintrack/internal/models"
)

// IncomeSourceRequest is the payload for creating or replacing an income source.
type IncomeSourceRequest struct {
	Name      string           `json:"income_source" binding:"max=100"`
	Amount    decimal.Decimal  `json:"income_amount" binding:"money" swaggertype:"string" example:"1000.00"`
	Frequency models.Frequency `json:"frequency" binding:"omitempty,frequency"`
}

func (r IncomeSourceRequest) toModel() (*models.IncomeSource, error) {
	return &models.IncomeSource{Name: r.Name, Amount: r.Amount, Frequency: r.Frequency}, nil
}

// DebtRequest is the payload for creating or replacing a debt.
type DebtRequest struct {
	Name      string           `json:"debt_name" binding:"max=500"`
	Amount    decimal.Decimal  `json:"debt_amount" binding:"money" swaggertype:"string" example:"250.00"`
	Frequency models.Frequency `json:"debt_frequency" binding:"omitempty,frequency"`
	DueDate   string           `json:"debt_due_date" binding:"required,datetime=2006-01-02" example:"2025-01-31"`
}

func (r DebtRequest) toModel() (*models.Debt, error) {
	due, err := parseDate("debt_due_date", r.DueDate)
	if err != nil {
		return nil, err
	}
	return &models.Debt{Name: r.Name, Amount: r.Amount, Frequency: r.Frequency, DueDate: due}, nil
}

// MonthlyExpenseRequest is the payload for creating or replacing a monthly expense.
type MonthlyExpenseRequest struct {
	Name          string           `json:"expense_name" binding:"max=500"`
	EstimatedCost decimal.Decimal  `json:"estimated_expenses_cost" binding:"money" swaggertype:"string" example:"300.00"`
	ActualCost    decimal.Decimal  `json:"actual_expenses_cost" binding:"money" swaggertype:"string" example:"320.00"`
	Frequency     models.Frequency `json:"frequency" binding:"omitempty,frequency"`
}

func (r MonthlyExpenseRequest) toModel() (*models.MonthlyExpense, error) {
	return &models.MonthlyExpense{
		Name:          r.Name,
		EstimatedCost: r.EstimatedCost,
		ActualCost:    r.ActualCost,
		Frequency:     r.Frequency,
	}, nil
}

// SavingsPlanRequest is the payload for creating or replacing a savings plan.
type SavingsPlanRequest struct {
	Title         string           `json:"savings_plan_title" binding:"max=500"`
	PlannedAmount decimal.Decimal  `json:"planned_amount" binding:"money" swaggertype:"string" example:"500.00"`
	ActualAmount  decimal.Decimal  `json:"actual_amount" binding:"money" swaggertype:"string" example:"450.00"`
	Frequency     models.Frequency `json:"frequency" binding:"omitempty,frequency"`
	Term          string           `json:"savings_term" binding:"required,datetime=2006-01-02" example:"2026-12-31"`
}

func (r SavingsPlanRequest) toModel() (*models.SavingsPlan, error) {
	term, err := parseDate("savings_term", r.Term)
	if err != nil {
		return nil, err
	}
	return &models.SavingsPlan{
		Title:         r.Title,
		PlannedAmount: r.PlannedAmount,
		ActualAmount:  r.ActualAmount,
		Frequency:     r.Frequency,
		Term:          term,
	}, nil
}

// FinancialGoalRequest is the payload for creating or replacing a financial goal.
type FinancialGoalRequest struct {
	Title         string          `json:"goal_title" binding:"max=500"`
	TargetAmount  decimal.Decimal `json:"target_amount" binding:"money" swaggertype:"string" example:"10000.00"`
	CurrentAmount decimal.Decimal `json:"current_amount" binding:"money" swaggertype:"string" example:"2500.00"`
	Deadline      string          `json:"goal_deadline" binding:"required,datetime=2006-01-02" example:"2027-06-30"`
}

func (r FinancialGoalRequest) toModel() (*models.FinancialGoal, error) {
	deadline, err := parseDate("goal_deadline", r.Deadline)
	if err != nil {
		return nil, err
	}
	return &models.FinancialGoal{
		Title:         r.Title,
		TargetAmount:  r.TargetAmount,
		CurrentAmount: r.CurrentAmount,
		Deadline:      deadline,
	}, nil
}

// InvestmentRequest is the payload for creating or replacing an investment.
type InvestmentRequest struct {
	Term              models.InvestmentTerm `json:"investment_type" binding:"investment_term" example:"two_years"`
	AmountInvested    decimal.Decimal       `json:"amount_invested" binding:"money" swaggertype:"string" example:"1500.00"`
	CurrentlyInvested decimal.Decimal       `json:"currently_invested" binding:"money" swaggertype:"string" example:"1580.00"`
	ReturnRate        decimal.Decimal       `json:"return_rate" binding:"rate" swaggertype:"string" example:"5.25"`
}

func (r InvestmentRequest) toModel() (*models.Investment, error) {
	return &models.Investment{
		Term:              r.Term,
		AmountInvested:    r.AmountInvested,
		CurrentlyInvested: r.CurrentlyInvested,
		ReturnRate:        r.ReturnRate,
	}, nil
}
