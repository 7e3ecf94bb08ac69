package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"fintrack/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plain-text password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates an active user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates an active user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		Role:     models.RoleUser,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestAdmin creates an active admin user.
func CreateTestAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := CreateTestUser(t, db)
	if err := db.Model(user).Update("role", models.RoleAdmin).Error; err != nil {
		t.Fatalf("failed to promote test admin: %v", err)
	}
	user.Role = models.RoleAdmin
	return user
}

// CreateTestFinancialStatus creates the financial status of a user with the
// given gross salary.
func CreateTestFinancialStatus(t *testing.T, db *gorm.DB, userID string, grossSalary int64) *models.FinancialStatus {
	t.Helper()
	status := &models.FinancialStatus{
		UserID:      userID,
		GrossSalary: decimal.NewFromInt(grossSalary),
	}
	if err := db.Create(status).Error; err != nil {
		t.Fatalf("failed to create test financial status: %v", err)
	}
	return status
}

// NewIncomeSource builds an unsaved income source.
func NewIncomeSource(amount string) *models.IncomeSource {
	return &models.IncomeSource{
		Name:      fmt.Sprintf("Income %d", nextID()),
		Amount:    decimal.RequireFromString(amount),
		Frequency: models.FrequencyMonthly,
	}
}

// NewDebt builds an unsaved debt due in a month.
func NewDebt(amount string) *models.Debt {
	return &models.Debt{
		Name:    fmt.Sprintf("Debt %d", nextID()),
		Amount:  decimal.RequireFromString(amount),
		DueDate: time.Now().AddDate(0, 1, 0).Truncate(24 * time.Hour),
	}
}

// NewMonthlyExpense builds an unsaved expense with the given estimated cost.
func NewMonthlyExpense(estimated string) *models.MonthlyExpense {
	return &models.MonthlyExpense{
		Name:          fmt.Sprintf("Expense %d", nextID()),
		EstimatedCost: decimal.RequireFromString(estimated),
		Frequency:     models.FrequencyMonthly,
	}
}

// NewSavingsPlan builds an unsaved savings plan with the given actual amount.
func NewSavingsPlan(actual string) *models.SavingsPlan {
	return &models.SavingsPlan{
		Title:         fmt.Sprintf("Savings %d", nextID()),
		PlannedAmount: decimal.RequireFromString(actual),
		ActualAmount:  decimal.RequireFromString(actual),
		Frequency:     models.FrequencyMonthly,
		Term:          time.Now().AddDate(1, 0, 0).Truncate(24 * time.Hour),
	}
}

// NewFinancialGoal builds an unsaved goal with the given target and current amounts.
func NewFinancialGoal(target, current string) *models.FinancialGoal {
	return &models.FinancialGoal{
		Title:         fmt.Sprintf("Goal %d", nextID()),
		TargetAmount:  decimal.RequireFromString(target),
		CurrentAmount: decimal.RequireFromString(current),
		Deadline:      time.Now().AddDate(2, 0, 0).Truncate(24 * time.Hour),
	}
}

// NewInvestment builds an unsaved one-year investment with the given
// currently invested amount.
func NewInvestment(current string) *models.Investment {
	return &models.Investment{
		Term:              models.InvestmentTermYear,
		AmountInvested:    decimal.RequireFromString(current),
		CurrentlyInvested: decimal.RequireFromString(current),
		ReturnRate:        decimal.RequireFromString("4.5"),
	}
}

// CreateTestTip creates a financial tip in the given category.
func CreateTestTip(t *testing.T, db *gorm.DB, category models.TipCategory) *models.FinancialTip {
	t.Helper()
	tip := &models.FinancialTip{
		Title:    fmt.Sprintf("Tip %d", nextID()),
		Content:  "Automate a transfer on payday.",
		Category: category,
	}
	if err := db.Create(tip).Error; err != nil {
		t.Fatalf("failed to create test tip: %v", err)
	}
	return tip
}
