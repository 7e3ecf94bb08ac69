package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/validator"
)

// financialStatusService handles the per-user financial status.
type financialStatusService struct {
	db *gorm.DB
}

// NewFinancialStatusService creates a new FinancialStatusServicer.
func NewFinancialStatusService(db *gorm.DB) FinancialStatusServicer {
	return &financialStatusService{db: db}
}

// Create opens the financial status of a user. A user has at most one.
func (s *financialStatusService) Create(userID string, grossSalary decimal.Decimal) (*models.FinancialStatus, error) {
	if err := validator.Var("gross_salary", grossSalary, "money"); err != nil {
		return nil, err
	}

	var userCount int64
	if err := s.db.Model(&models.User{}).Where("id = ?", userID).Count(&userCount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if userCount == 0 {
		return nil, apperrors.ErrUserNotFound
	}

	var count int64
	if err := s.db.Model(&models.FinancialStatus{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrFinancialStatusExists
	}

	status := &models.FinancialStatus{
		UserID:      userID,
		GrossSalary: grossSalary,
	}
	if err := s.db.Create(status).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Wrap(apperrors.ErrFinancialStatusExists, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetForUser(userID)
}

// GetForUser returns the financial status owned by the user.
func (s *financialStatusService) GetForUser(userID string) (*models.FinancialStatus, error) {
	var status models.FinancialStatus
	if err := s.db.Where("user_id = ?", userID).First(&status).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFinancialStatusNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &status, nil
}

// UpdateGrossSalary sets the only user-assigned amount of the status.
func (s *financialStatusService) UpdateGrossSalary(userID string, grossSalary decimal.Decimal) (*models.FinancialStatus, error) {
	if err := validator.Var("gross_salary", grossSalary, "money"); err != nil {
		return nil, err
	}

	var status *models.FinancialStatus
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		status, err = lockStatus(tx, userID)
		if err != nil {
			return err
		}
		if err := tx.Model(status).Update("gross_salary", grossSalary).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		status.GrossSalary = grossSalary
		return nil
	})
	if err != nil {
		return nil, err
	}

	return status, nil
}

// Recalculate recomputes all six aggregates from the current entries.
func (s *financialStatusService) Recalculate(userID string) (*models.FinancialStatus, error) {
	var status *models.FinancialStatus
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		status, err = lockStatus(tx, userID)
		if err != nil {
			return err
		}
		return recomputeAll(tx, status)
	})
	if err != nil {
		return nil, err
	}

	return status, nil
}

// Summary returns the status together with the figures derived from it.
func (s *financialStatusService) Summary(userID string) (*FinancialSummary, error) {
	status, err := s.GetForUser(userID)
	if err != nil {
		return nil, err
	}

	var goals []models.FinancialGoal
	if err := s.db.Where("financial_status_id = ?", status.ID).Order("goal_deadline ASC").Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	progress := make([]GoalProgress, 0, len(goals))
	for i := range goals {
		progress = append(progress, GoalProgress{
			GoalID:        goals[i].ID,
			Title:         goals[i].Title,
			TargetAmount:  goals[i].TargetAmount,
			CurrentAmount: goals[i].CurrentAmount,
			Percentage:    goals[i].Progress(),
		})
	}

	return &FinancialSummary{
		Status:           status,
		DisposableIncome: status.NetEarnings.Sub(status.TotalMonthlyExpenses),
		NetWorth:         status.TotalSavings.Add(status.TotalInvestments).Sub(status.TotalDebt),
		Goals:            progress,
	}, nil
}

// Delete removes the status of the user together with every entry.
func (s *financialStatusService) Delete(userID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		status, err := lockStatus(tx, userID)
		if err != nil {
			return err
		}
		return deleteStatusCascade(tx, status.ID)
	})
}
