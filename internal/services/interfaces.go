package services

import (
	"github.com/shopspring/decimal"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, firstName, lastName, password string) (*models.User, error)
	CreateSuperuser(email, firstName, lastName, password string) (*models.User, error)
	Authenticate(email, password string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	ListUsers(page pagination.PageRequest) (*pagination.PageResponse[models.User], error)
	SetActive(id string, active bool) (*models.User, error)
	SetTwoFactor(id string, enabled bool) (*models.User, error)
	DeleteUser(id string) error
	VerifyPassword(user *models.User, password string) bool
}

// GoalProgress reports how far a single financial goal has come.
type GoalProgress struct {
	GoalID        string          `json:"goal_id"`
	Title         string          `json:"goal_title"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Percentage    decimal.Decimal `json:"percentage"`
}

// FinancialSummary combines the stored aggregates with figures derived from them.
type FinancialSummary struct {
	Status           *models.FinancialStatus `json:"financial_status"`
	DisposableIncome decimal.Decimal         `json:"disposable_income"`
	NetWorth         decimal.Decimal         `json:"net_worth"`
	Goals            []GoalProgress          `json:"goals"`
}

// FinancialStatusServicer defines the contract for the per-user financial status.
type FinancialStatusServicer interface {
	Create(userID string, grossSalary decimal.Decimal) (*models.FinancialStatus, error)
	GetForUser(userID string) (*models.FinancialStatus, error)
	UpdateGrossSalary(userID string, grossSalary decimal.Decimal) (*models.FinancialStatus, error)
	Recalculate(userID string) (*models.FinancialStatus, error)
	Summary(userID string) (*FinancialSummary, error)
	Delete(userID string) error
}

// EntryServicer defines the contract for the entries that roll up into a
// financial status. Every write recomputes the entry type's aggregate on the
// parent inside the same transaction.
type EntryServicer[T any] interface {
	Create(userID string, entry *T) (*T, error)
	List(userID string, page pagination.PageRequest) (*pagination.PageResponse[T], error)
	Get(userID, entryID string) (*T, error)
	Update(userID, entryID string, entry *T) (*T, error)
	Delete(userID, entryID string) error
}

// TipServicer defines the contract for the financial tip catalogue.
type TipServicer interface {
	Create(tip *models.FinancialTip) (*models.FinancialTip, error)
	List(page pagination.PageRequest, category *models.TipCategory) (*pagination.PageResponse[models.FinancialTip], error)
	Get(id string) (*models.FinancialTip, error)
	Update(id string, tip *models.FinancialTip) (*models.FinancialTip, error)
	Delete(id string) error
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]any)
}
